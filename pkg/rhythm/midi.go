package rhythm

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// beatTickScale converts a beat-index gap at a given tempo into MIDI delta
// ticks: delta = gap * beatTickScale / tempo. The value is fixed by the
// file format contract and must not change.
const beatTickScale = 115200

// Builder serializes a quantized rhythm into a standard MIDI file. The
// fixed MIDI parameters live here as fields so they can be audited in one
// place.
type Builder struct {
	ticksPerQuarter uint16
	note            uint8
	velocityOn      uint8
	channel         uint8
}

// NewBuilder creates a Builder with the standard parameters: 480 PPQ,
// middle C at full velocity on channel 0.
func NewBuilder() *Builder {
	return &Builder{
		ticksPerQuarter: 480,
		note:            60,
		velocityOn:      127,
		channel:         0,
	}
}

// Build serializes out into a two-track MIDI file (format 1): a metadata
// track carrying name, time signature and tempo, and a note track with one
// note-on/off pair per beat. The result is byte-for-byte reproducible for
// a given Output.
func (b *Builder) Build(out Output) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(b.ticksPerQuarter)

	// Track 0: metadata only, every event at delta 0.
	var meta smf.Track
	meta.Add(0, smf.Message([]byte{0xFF, 0x03, 0x00})) // empty track name

	// Time signature 4/4, 24 MIDI clocks per metronome tick, eight
	// 32nd notes per quarter.
	meta.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	microsPerQuarter := 60_000_000 / out.Tempo
	meta.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsPerQuarter >> 16),
		byte(microsPerQuarter >> 8),
		byte(microsPerQuarter),
	}))
	meta.Close(0)

	// Track 1: a note-on/off pair per beat. The first note-on carries the
	// offset of the first beat; every later note-on fires at the moment
	// the previous note-off lands, so its delta is 0 and the gap to the
	// next beat rides on the note-off. The last note is held for one beat.
	var notes smf.Track
	numBeats := len(out.Beats)
	for i := 0; i < numBeats; i++ {
		var onDelta uint32
		if i == 0 {
			onDelta = out.Beats[0]
		}
		notes.Add(b.beatTicks(onDelta, out.Tempo), midi.NoteOn(b.channel, b.note, b.velocityOn))

		offDelta := uint32(1)
		if i < numBeats-1 {
			offDelta = out.Beats[i+1] - out.Beats[i]
		}
		notes.Add(b.beatTicks(offDelta, out.Tempo), midi.NoteOff(b.channel, b.note))
	}
	notes.Close(0)

	if err := s.Add(meta); err != nil {
		return nil, fmt.Errorf("failed to add meta track: %w", err)
	}
	if err := s.Add(notes); err != nil {
		return nil, fmt.Errorf("failed to add note track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return buf.Bytes(), nil
}

// beatTicks converts a gap measured in beats into MIDI ticks at the given
// tempo. The multiplication is widened to uint64 so a large beat index
// cannot overflow before the division.
func (b *Builder) beatTicks(beats, tempo uint32) uint32 {
	return uint32(uint64(beats) * beatTickScale / uint64(tempo))
}

// Converter runs the full text-to-MIDI pipeline.
type Converter struct {
	builder *Builder
}

// New creates a Converter with the standard Builder parameters.
func New() *Converter {
	return &Converter{builder: NewBuilder()}
}

// Convert parses a tap document, quantizes it and returns the MIDI bytes.
func (c *Converter) Convert(text string) ([]byte, error) {
	in, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(Solve(in))
}

// ConvertFile reads a tap document from inputPath and writes the MIDI file
// to outputPath. The output file is only written once the full buffer has
// been built, so a failed conversion never leaves a partial file behind.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	out, err := c.Convert(string(data))
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
