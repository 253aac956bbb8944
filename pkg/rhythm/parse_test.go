package rhythm

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTempo uint32
		wantKeys  []uint32
		wantErr   error
	}{
		{
			name:      "basic document",
			input:     "naive-rhythm bpm 120\n0 250 500 750",
			wantTempo: 120,
			wantKeys:  []uint32{0, 250, 500, 750},
		},
		{
			name:      "no keys",
			input:     "naive-rhythm bpm 90",
			wantTempo: 90,
			wantKeys:  []uint32{},
		},
		{
			name:      "keys keep document order",
			input:     "naive-rhythm bpm 60\n900 100 500",
			wantTempo: 60,
			wantKeys:  []uint32{900, 100, 500},
		},
		{
			name:      "extra whitespace skipped",
			input:     "naive-rhythm  bpm  120\n\n100  200\n",
			wantTempo: 120,
			wantKeys:  []uint32{100, 200},
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: ErrBadMagic,
		},
		{
			name:    "wrong magic",
			input:   "clever-rhythm bpm 120\n0 100",
			wantErr: ErrBadMagic,
		},
		{
			name:    "missing bpm keyword",
			input:   "naive-rhythm 120\n0 100",
			wantErr: ErrBadBPM,
		},
		{
			name:    "missing tempo value",
			input:   "naive-rhythm bpm",
			wantErr: ErrBadBPM,
		},
		{
			name:    "tempo not a number",
			input:   "naive-rhythm bpm abc\n0 100",
			wantErr: ErrBadBPM,
		},
		{
			name:    "negative tempo",
			input:   "naive-rhythm bpm -5",
			wantErr: ErrBadBPM,
		},
		{
			name:    "key not a number",
			input:   "naive-rhythm bpm 120\n0 abc 100",
			wantErr: ErrBadKey,
		},
		{
			name:    "negative key",
			input:   "naive-rhythm bpm 120\n0 -100",
			wantErr: ErrBadKey,
		},
		{
			name:    "zero tempo rejected",
			input:   "naive-rhythm bpm 0\n100",
			wantErr: ErrTempoRange,
		},
		{
			// 60,000,000/3 does not fit the 3-byte tempo meta value.
			name:    "tempo below limit rejected",
			input:   "naive-rhythm bpm 3\n100",
			wantErr: ErrTempoRange,
		},
		{
			name:    "tempo above limit rejected",
			input:   "naive-rhythm bpm 60001\n100",
			wantErr: ErrTempoRange,
		},
		{
			name:      "tempo at lower limit accepted",
			input:     "naive-rhythm bpm 4\n5",
			wantTempo: 4,
			wantKeys:  []uint32{5},
		},
		{
			name:      "tempo at upper limit accepted",
			input:     "naive-rhythm bpm 60000\n5",
			wantTempo: 60000,
			wantKeys:  []uint32{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Parse(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}

			if in.Tempo != tt.wantTempo {
				t.Errorf("Tempo = %d, want %d", in.Tempo, tt.wantTempo)
			}
			if len(in.Keys) != len(tt.wantKeys) {
				t.Fatalf("Keys = %v, want %v", in.Keys, tt.wantKeys)
			}
			for i, k := range tt.wantKeys {
				if in.Keys[i] != k {
					t.Errorf("Keys[%d] = %d, want %d", i, in.Keys[i], k)
				}
			}
		})
	}
}
