package rhythm

import (
	"fmt"
	"strconv"
	"strings"
)

func isSeparator(r rune) bool {
	return r == ' ' || r == '\n'
}

// Parse reads a tap document of the form
//
//	naive-rhythm bpm <tempo>
//	<ms> <ms> ... (any count, any order)
//
// into an Input. Tokens are separated by spaces or newlines; empty tokens
// are skipped. Tempos outside MinTempo-MaxTempo are rejected with
// ErrTempoRange.
func Parse(s string) (Input, error) {
	tokens := strings.FieldsFunc(s, isSeparator)

	if len(tokens) < 1 || tokens[0] != Magic {
		return Input{}, fmt.Errorf("%w: expected %q header", ErrBadMagic, Magic)
	}
	if len(tokens) < 2 || tokens[1] != "bpm" {
		return Input{}, fmt.Errorf("%w: expected \"bpm\" keyword", ErrBadBPM)
	}
	if len(tokens) < 3 {
		return Input{}, fmt.Errorf("%w: missing tempo value", ErrBadBPM)
	}

	tempo, err := strconv.ParseUint(tokens[2], 10, 32)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrBadBPM, tokens[2])
	}
	if tempo < MinTempo || tempo > MaxTempo {
		return Input{}, fmt.Errorf("%w: %d (must be %d-%d)", ErrTempoRange, tempo, MinTempo, MaxTempo)
	}

	keys := make([]uint32, 0, len(tokens)-3)
	for _, tok := range tokens[3:] {
		key, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %q is not an unsigned integer", ErrBadKey, tok)
		}
		keys = append(keys, uint32(key))
	}

	return Input{Tempo: uint32(tempo), Keys: keys}, nil
}
