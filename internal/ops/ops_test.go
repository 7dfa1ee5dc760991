package ops

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/db"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestParseTechParam(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"React", []string{"React"}},
		{"a, b,,c", []string{"a", "b", "c"}},
		{" , ,", []string{}},
		{"Next.js ,  Prisma ORM", []string{"Next.js", "Prisma ORM"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTechParam(tt.in), "ParseTechParam(%q)", tt.in)
	}
}

func TestGenerateULID(t *testing.T) {
	a, err := generateULID()
	require.NoError(t, err)
	b, err := generateULID()
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestTabs(t *testing.T) {
	assert.Equal(t, []string{"all", "featured", "web", "web3", "ai", "fullstack", "blockchain"}, Tabs())
}
