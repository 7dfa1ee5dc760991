package activity

// MaxLevel is the highest heatmap intensity.
const MaxLevel = 4

// lowActivityCeiling is the largest count always shown at level 1, so a quiet
// day never disappears into level 0 on a series with a large maximum.
const lowActivityCeiling = 2

// Level buckets count into 0..4 relative to maxCount, the largest count in
// the same series.
//
//	count == 0            → 0
//	count <= 2            → 1
//	count <= max/4        → 1
//	count <= max/2        → 2
//	count <= 3*max/4      → 3
//	otherwise             → 4
func Level(count, maxCount int) int {
	if count <= 0 {
		return 0
	}
	if count <= lowActivityCeiling {
		return 1
	}
	if maxCount < 1 {
		maxCount = 1
	}

	q := float64(maxCount) / 4
	c := float64(count)
	switch {
	case c <= q:
		return 1
	case c <= 2*q:
		return 2
	case c <= 3*q:
		return 3
	default:
		return MaxLevel
	}
}

// MaxCount returns the largest count in series, never less than 1.
func MaxCount(series []Record) int {
	m := 1
	for _, r := range series {
		if r.Count > m {
			m = r.Count
		}
	}
	return m
}
