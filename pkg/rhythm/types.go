// Package rhythm converts tapped key-press timestamps into quantized MIDI rhythm tracks
package rhythm

import "errors"

// Magic is the required first token of the tap text format.
const Magic = "naive-rhythm"

// MinTempo and MaxTempo bound the accepted tempo in beats per minute.
// Above MaxTempo the millisecond beat period (60000/tempo) truncates to
// zero and the quantizer would divide by zero. Below MinTempo the tempo
// meta value (60,000,000/tempo microseconds per quarter) exceeds the three
// bytes the MIDI tempo event carries.
const (
	MinTempo = 4
	MaxTempo = 60000
)

// Input holds a parsed tap document: a tempo and the raw key-press
// timestamps in milliseconds. Keys may be unordered and contain duplicates.
type Input struct {
	Tempo uint32
	Keys  []uint32
}

// Output is a quantized rhythm: beat indices sorted ascending with no
// duplicates, plus the tempo they were quantized against.
type Output struct {
	Tempo uint32
	Beats []uint32
}

// Parse and build error kinds. All errors returned from this package wrap
// one of these sentinels, so callers can match with errors.Is.
var (
	ErrBadMagic   = errors.New("bad magic")
	ErrBadBPM     = errors.New("bad bpm")
	ErrBadKey     = errors.New("bad key time")
	ErrTempoRange = errors.New("tempo out of range")
	ErrWrite      = errors.New("failed to write MIDI")
)
