package activity

import (
	"maps"
	"slices"
)

// Normalize cleans a raw provider series: invalid dates are dropped,
// negative counts become 0, and duplicate dates are summed so that every
// date appears once. The result is sorted by date and carries no levels.
func Normalize(series []Record) []Record {
	if len(series) == 0 {
		return []Record{}
	}

	byDate := make(map[string]int, len(series))
	for _, r := range series {
		date, ok := parseDate(r.Date)
		if !ok {
			continue
		}
		byDate[date] += max(r.Count, 0)
	}
	return fromCounts(byDate)
}

// Relevel returns a copy of series with every level recomputed against the
// series' own maximum.
func Relevel(series []Record) []Record {
	out := make([]Record, len(series))
	m := MaxCount(series)
	for i, r := range series {
		out[i] = Record{Date: r.Date, Count: r.Count, Level: Level(r.Count, m)}
	}
	return out
}

// Combine sums counts per date across all series and levels the result
// against the combined maximum. Output is sorted ascending by date.
func Combine(series ...[]Record) []Record {
	acc := make(map[string]int)
	for _, s := range series {
		for _, r := range s {
			acc[r.Date] += r.Count
		}
	}
	return Relevel(fromCounts(acc))
}

// Aggregate normalizes and levels each provider series independently and
// builds the combined series. It never fails: an absent, nil or malformed
// provider series yields an empty series. The input is not modified.
func Aggregate(in Input) Output {
	github := Relevel(Normalize(in[GitHub]))
	leetcode := Relevel(Normalize(in[LeetCode]))
	codeforces := Relevel(Normalize(in[Codeforces]))

	return Output{
		GitHub:     github,
		LeetCode:   leetcode,
		Codeforces: codeforces,
		Combined:   Combine(github, leetcode, codeforces),
	}
}

// fromCounts converts a date→count map into a date-sorted series.
func fromCounts(byDate map[string]int) []Record {
	dates := slices.Sorted(maps.Keys(byDate))
	out := make([]Record, 0, len(dates))
	for _, d := range dates {
		out = append(out, Record{Date: d, Count: byDate[d]})
	}
	return out
}
