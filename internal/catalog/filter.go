package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tab values accepted in Criteria.Category besides the concrete categories.
const (
	TabAll      = "all"
	TabFeatured = "featured"
)

// Criteria is one combination of project filters. All active facets must match.
type Criteria struct {
	// Category is "all", "featured" or a Category. Empty or unknown values mean "all".
	Category string `json:"category"`

	// Search is free text matched as a case-insensitive substring.
	Search string `json:"search"`

	// Technologies must all be present on a project (case-insensitive, exact).
	Technologies []string `json:"technologies"`
}

// HasTechnology reports whether p lists name, ignoring case.
func HasTechnology(p *Project, name string) bool {
	for _, tech := range p.Technologies {
		if strings.EqualFold(tech, name) {
			return true
		}
	}
	return false
}

// Filter returns the projects matching c, featured first and then by title.
// The input slice is never modified; the result is always non-nil.
func Filter(projects []Project, c Criteria) []Project {
	out := make([]Project, 0, len(projects))
	required := cleanTechnologies(c.Technologies)
	query := strings.ToLower(strings.TrimSpace(c.Search))

	for i := range projects {
		p := &projects[i]
		if !matchesCategory(p, c.Category) {
			continue
		}
		if !hasAllTechnologies(p, required) {
			continue
		}
		if query != "" && !matchesSearch(p, query) {
			continue
		}
		out = append(out, *p)
	}

	SortProjects(out)
	return out
}

// SortProjects orders projects in place: featured first, then by title using
// English collation. Equal keys keep their relative order.
func SortProjects(projects []Project) {
	col := collate.New(language.English)
	slices.SortStableFunc(projects, func(a, b Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return col.CompareString(a.Title, b.Title)
	})
}

func matchesCategory(p *Project, tab string) bool {
	switch {
	case tab == TabFeatured:
		return p.Featured
	case Category(tab).Valid():
		return p.Category == Category(tab)
	default:
		return true
	}
}

func hasAllTechnologies(p *Project, required []string) bool {
	for _, name := range required {
		if !HasTechnology(p, name) {
			return false
		}
	}
	return true
}

func matchesSearch(p *Project, query string) bool {
	fields := []string{p.Title, p.Description, p.Tagline, p.LongDescription, string(p.Category)}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), query) {
			return true
		}
	}
	return false
}

// cleanTechnologies trims names and drops blanks.
func cleanTechnologies(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
