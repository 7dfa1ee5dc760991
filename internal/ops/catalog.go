package ops

import (
	"slices"
	"strings"

	"github.com/contributorsambhav/portfolio/internal/catalog"
)

// TechStackOutput contains the tech stack and per-technology project counts.
type TechStackOutput struct {
	Categories []catalog.TechCategory `json:"categories"`
	Counts     []catalog.TechCount    `json:"counts"`
}

// TechStack returns the tech stack with project counts.
func TechStack(cat *catalog.Catalog) *TechStackOutput {
	categories := cat.TechStack
	if categories == nil {
		categories = []catalog.TechCategory{}
	}
	return &TechStackOutput{
		Categories: categories,
		Counts:     catalog.TechCounts(cat.TechStack, cat.Projects),
	}
}

// Web3Output contains filtered Web3 entries and stats over all entries.
type Web3Output struct {
	Items  []catalog.Web3Project `json:"items"`
	Filter string                `json:"filter"`
	Stats  catalog.Web3Stats     `json:"stats"`
}

// Web3 filters Web3 entries. Stats always cover the whole catalog.
func Web3(cat *catalog.Catalog, filter string) *Web3Output {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if !slices.Contains(catalog.Web3Filters, filter) && filter != catalog.Web3StatusRejected {
		filter = "all"
	}
	return &Web3Output{
		Items:  catalog.FilterWeb3(cat.Web3, filter),
		Filter: filter,
		Stats:  catalog.Stats(cat.Web3),
	}
}
