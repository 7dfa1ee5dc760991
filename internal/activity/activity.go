// Package activity turns per-provider daily activity counts into levelled
// heatmap series and a combined series across providers.
//
// Everything in this package is a pure function of its input: fetching,
// retries and provider-specific parsing live in internal/providers.
package activity

import "time"

// DateLayout is the ISO calendar date format used as the series key.
const DateLayout = "2006-01-02"

// Provider names a source of activity data.
type Provider string

const (
	GitHub     Provider = "github"
	LeetCode   Provider = "leetcode"
	Codeforces Provider = "codeforces"

	// Combined is the synthetic series summing every provider.
	Combined Provider = "combined"
)

// Providers lists the real providers in display order.
var Providers = []Provider{GitHub, LeetCode, Codeforces}

// Valid reports whether p is a real provider or the combined series.
func (p Provider) Valid() bool {
	switch p {
	case GitHub, LeetCode, Codeforces, Combined:
		return true
	}
	return false
}

// Record is one day of activity.
// Level is always derived from Count and the series maximum; any level
// supplied by a provider is ignored.
type Record struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Input maps each provider to its raw series. Missing providers are empty.
type Input map[Provider][]Record

// Output holds the levelled series for each provider plus the combined view.
type Output struct {
	GitHub     []Record `json:"github"`
	LeetCode   []Record `json:"leetcode"`
	Codeforces []Record `json:"codeforces"`
	Combined   []Record `json:"combined"`
}

// Series returns the series for p, or nil for an unknown provider.
func (o *Output) Series(p Provider) []Record {
	switch p {
	case GitHub:
		return o.GitHub
	case LeetCode:
		return o.LeetCode
	case Codeforces:
		return o.Codeforces
	case Combined:
		return o.Combined
	}
	return nil
}

// Total sums the counts of a series.
func Total(series []Record) int {
	total := 0
	for _, r := range series {
		total += r.Count
	}
	return total
}

// parseDate returns the canonical form of an ISO date, or false if it is not one.
func parseDate(s string) (string, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}
