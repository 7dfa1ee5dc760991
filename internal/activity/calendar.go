package activity

import "time"

// Fill materializes every date in [from, to] (UTC days) using counts and
// levels from series; dates the series lacks get count 0 and level 0.
// Returns nil if to precedes from.
func Fill(series []Record, from, to time.Time) []Record {
	from = truncateDay(from)
	to = truncateDay(to)
	if to.Before(from) {
		return nil
	}

	byDate := make(map[string]Record, len(series))
	for _, r := range series {
		byDate[r.Date] = r
	}

	days := int(to.Sub(from).Hours()/24) + 1
	out := make([]Record, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		if r, ok := byDate[key]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, Record{Date: key})
	}
	return out
}

// Weeks groups a contiguous run of days into Sunday-first columns, the
// layout of a contribution heatmap. The first column is padded with
// zero-value records (empty Date) before the first day's weekday.
func Weeks(days []Record) [][]Record {
	if len(days) == 0 {
		return nil
	}

	first, err := time.Parse(DateLayout, days[0].Date)
	if err != nil {
		return nil
	}

	var weeks [][]Record
	week := make([]Record, int(first.Weekday()), 7)
	for _, d := range days {
		week = append(week, d)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Record, 0, 7)
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
