package analysis

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/pitwall/f1insight/pkg/model"
)

// SegmentStints derives the stint sequence from a driver's laps.
// Laps are grouped by their stint id, each stint starts at the lowest
// lap number of its group and spans up to the highest one. Gaps in the
// lap numbering of a stint (red flags, missing laps) are covered by the
// enclosing stint. The input order does not matter.
func SegmentStints(laps []model.Lap) []model.Stint {
	if len(laps) == 0 {
		return []model.Stint{}
	}
	sorted := make([]model.Lap, len(laps))
	copy(sorted, laps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LapNumber < sorted[j].LapNumber
	})

	groups := lo.GroupBy(sorted, func(l model.Lap) int { return l.Stint })
	ids := lo.Keys(groups)
	sort.Ints(ids)

	stints := make([]model.Stint, 0, len(ids))
	for _, id := range ids {
		group := groups[id]
		first := group[0].LapNumber
		last := group[len(group)-1].LapNumber
		stints = append(stints, model.Stint{
			Number:   id,
			Compound: group[0].Compound,
			StartLap: first,
			Laps:     last - first + 1,
		})
	}
	return stints
}

// FastestLap returns the quickest timed lap. The second return value
// is false when no lap has a time.
func FastestLap(laps []model.Lap) (model.Lap, bool) {
	var best model.Lap
	found := false
	for _, l := range laps {
		if l.LapTime == nil {
			continue
		}
		if !found || *l.LapTime < *best.LapTime {
			best = l
			found = true
		}
	}
	return best, found
}

// AverageLapTime returns the mean of all timed laps. The second return
// value is false when no lap has a time.
func AverageLapTime(laps []model.Lap) (time.Duration, bool) {
	var sum time.Duration
	count := 0
	for _, l := range laps {
		if l.LapTime == nil {
			continue
		}
		sum += *l.LapTime
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / time.Duration(count), true
}
