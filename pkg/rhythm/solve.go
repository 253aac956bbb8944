package rhythm

import "sort"

// Solve quantizes each key-press timestamp to its nearest beat boundary and
// returns the resulting beat indices sorted ascending with duplicates
// removed. Ties exactly halfway between two beats resolve to the earlier
// beat. Solve is total for any Input accepted by Parse (tempo
// MinTempo-MaxTempo).
func Solve(in Input) Output {
	// Beat period in milliseconds, floor division. Tempo bounds are
	// enforced by Parse so period is always >= 1.
	period := 60000 / in.Tempo

	beats := make([]uint32, 0, len(in.Keys))
	for _, key := range in.Keys {
		lower := key / period
		upper := lower + 1
		// lower*period <= key, so the left difference never
		// underflows. Within one period of the top of the uint32
		// range upper*period wraps and the comparison resolves to
		// lower.
		if key-lower*period <= upper*period-key {
			beats = append(beats, lower)
		} else {
			beats = append(beats, upper)
		}
	}

	sort.Slice(beats, func(i, j int) bool {
		return beats[i] < beats[j]
	})

	// Drop adjacent duplicates in place; requires the sort above.
	deduped := beats[:0]
	var prev uint32
	for i, b := range beats {
		if i == 0 || b != prev {
			deduped = append(deduped, b)
		}
		prev = b
	}

	return Output{Tempo: in.Tempo, Beats: deduped}
}
