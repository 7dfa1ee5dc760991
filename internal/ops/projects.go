package ops

import (
	"strings"

	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/errors"
)

// ProjectsInput contains parameters for the Projects operation.
type ProjectsInput struct {
	Category     string   // "all", "featured" or a category; unknown means all
	Search       string   // free text, case-insensitive
	Technologies []string // every listed technology must be present
}

// ProjectsOutput contains the result of the Projects operation.
type ProjectsOutput struct {
	Items    []catalog.Project `json:"items"`
	Total    int               `json:"total"`
	Criteria Criteria          `json:"criteria"`
}

// Criteria echoes the normalized filter that produced a result.
type Criteria struct {
	Category     string   `json:"category"`
	Search       string   `json:"search"`
	Technologies []string `json:"technologies"`
}

// Projects filters and sorts the catalog's projects.
func Projects(cat *catalog.Catalog, input ProjectsInput) *ProjectsOutput {
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" || !isKnownTab(category) {
		category = catalog.TabAll
	}

	techs := []string{}
	for _, t := range input.Technologies {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}

	search := strings.TrimSpace(input.Search)
	items := catalog.Filter(cat.Projects, catalog.Criteria{
		Category:     category,
		Search:       search,
		Technologies: techs,
	})

	return &ProjectsOutput{
		Items: items,
		Total: len(items),
		Criteria: Criteria{
			Category:     category,
			Search:       search,
			Technologies: techs,
		},
	}
}

// Project returns one project by id.
func Project(cat *catalog.Catalog, id string) (*catalog.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return cat.Project(id)
}

// Tabs lists the category tabs in display order.
func Tabs() []string {
	tabs := []string{catalog.TabAll, catalog.TabFeatured}
	for _, c := range catalog.Categories {
		tabs = append(tabs, string(c))
	}
	return tabs
}

func isKnownTab(tab string) bool {
	return tab == catalog.TabAll || tab == catalog.TabFeatured || catalog.Category(tab).Valid()
}
