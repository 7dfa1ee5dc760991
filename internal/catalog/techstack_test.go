package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechCounts(t *testing.T) {
	stack := []TechCategory{
		{Category: "Languages", Technologies: []Technology{{Name: "Solidity"}, {Name: "Go"}}},
		{Category: "Databases", Technologies: []Technology{{Name: "mongodb", Logo: "mongo.svg"}}},
	}

	got := TechCounts(stack, sampleProjects())

	require.Len(t, got, 3)
	assert.Equal(t, TechCount{Name: "Solidity", Category: "Languages", Projects: 1}, got[0])
	assert.Equal(t, TechCount{Name: "Go", Category: "Languages", Projects: 0}, got[1])
	assert.Equal(t, TechCount{Name: "mongodb", Logo: "mongo.svg", Category: "Databases", Projects: 1}, got[2])
}

func TestTechCounts_Empty(t *testing.T) {
	got := TechCounts(nil, sampleProjects())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogTechNames(t *testing.T) {
	c := &Catalog{TechStack: []TechCategory{
		{Category: "A", Technologies: []Technology{{Name: "x"}, {Name: "y"}}},
		{Category: "B", Technologies: []Technology{{Name: "z"}}},
	}}
	assert.Equal(t, []string{"x", "y", "z"}, c.TechNames())
}
