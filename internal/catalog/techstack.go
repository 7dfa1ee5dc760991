package catalog

// TechCount is the number of projects using one tech-stack entry.
type TechCount struct {
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Category string `json:"category"`
	Projects int    `json:"projects"`
}

// TechCounts counts, for every tech-stack entry, the projects listing it.
// Matching is exact and case-insensitive. Order follows the tech stack.
func TechCounts(stack []TechCategory, projects []Project) []TechCount {
	out := make([]TechCount, 0)
	for _, cat := range stack {
		for _, tech := range cat.Technologies {
			n := 0
			for i := range projects {
				if HasTechnology(&projects[i], tech.Name) {
					n++
				}
			}
			out = append(out, TechCount{
				Name:     tech.Name,
				Logo:     tech.Logo,
				Category: cat.Category,
				Projects: n,
			})
		}
	}
	return out
}
