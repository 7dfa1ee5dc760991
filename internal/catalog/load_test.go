package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contributorsambhav/portfolio/internal/errors"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Profile.Name)
	assert.Len(t, c.Projects, 6)
	assert.NotEmpty(t, c.Web3)
	assert.NotEmpty(t, c.TechStack)

	p, err := c.Project("proj-2")
	require.NoError(t, err)
	assert.Equal(t, CategoryAI, p.Category)
	assert.True(t, p.Featured)
	require.Len(t, p.Metrics, 3)
	assert.Equal(t, "80%", p.Metrics[0].Value)
}

func TestDefault_FeaturedFirst(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	got := Filter(c.Projects, Criteria{Category: TabAll})
	require.Len(t, got, 6)
	for i, p := range got[:3] {
		assert.True(t, p.Featured, "position %d", i)
	}
	for i, p := range got[3:] {
		assert.False(t, p.Featured, "position %d", i+3)
	}
}

func TestCatalogProject_NotFound(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Project("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCatalogProject_ReturnsCopy(t *testing.T) {
	c := &Catalog{Projects: []Project{{ID: "a", Title: "Original"}}}

	p, err := c.Project("a")
	require.NoError(t, err)
	p.Title = "Changed"

	assert.Equal(t, "Original", c.Projects[0].Title)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
profile:
  name: Test Person
projects:
  - id: a
    title: Alpha
    category: web
  - id: b
    title: Beta
    category: ai
    featured: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Person", c.Profile.Name)
	assert.Len(t, c.Projects, 2)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Projects, 6)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "duplicate project id",
			content: `
profile: {name: X}
projects:
  - {id: a, title: One, category: web}
  - {id: a, title: Two, category: web}
`,
			want: `duplicate project id "a"`,
		},
		{
			name: "unknown category",
			content: `
profile: {name: X}
projects:
  - {id: a, title: One, category: games}
`,
			want: "Projects[0].Category must be one of",
		},
		{
			name: "missing title",
			content: `
profile: {name: X}
projects:
  - {id: a, category: web}
`,
			want: "Projects[0].Title is required",
		},
		{
			name: "bad web3 status",
			content: `
profile: {name: X}
web3:
  - {id: w, title: W, type: grant, status: pending}
`,
			want: "Web3[0].Status must be one of",
		},
		{
			name:    "unknown key",
			content: "profile: {name: X}\nprojets: []\n",
			want:    "projets",
		},
		{
			name:    "missing profile name",
			content: "projects: []\n",
			want:    "Profile.Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
