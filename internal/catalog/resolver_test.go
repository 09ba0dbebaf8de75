package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultAliases)
	require.NoError(t, err)
	return r
}

func TestResolveAliases(t *testing.T) {
	r := newDefaultResolver(t)

	cases := []struct {
		label string
		want  Table
	}{
		{"men", TableMen},
		{"Men", TableMen},
		{" MEN ", TableMen},
		{"men-tshirt", TableMenTshirt},
		{"MenTshirt", TableMenTshirt},
		{"Tshirts", TableMenTshirt},
		{"Tshirt", TableMenTshirt},
		{"women", TableWomen},
		{"WOMEN", TableWomen},
		{"watch", TableWatch},
		{"watches", TableWatch},
		{"Watch", TableWatch},
		{"watch-new", TableWatchNew},
		{"WatchNew", TableWatchNew},
		{"lens", TableLens},
		{"lenses", TableLens},
		{"accessory", TableAccessory},
		{"Accessories", TableAccessory},
		{"shoes", TableShoes},
		{"Shoe", TableShoes},
	}

	for _, tc := range cases {
		got, err := r.Resolve(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}

func TestResolveCaseSensitiveWatchAliases(t *testing.T) {
	r := newDefaultResolver(t)

	// The all-caps labels are deliberately case-sensitive and pick the
	// newer watch table; every other casing falls through to the legacy
	// one.
	upper, err := r.Resolve("WATCH")
	require.NoError(t, err)
	assert.Equal(t, TableWatchNew, upper)

	upperPlural, err := r.Resolve("WATCHES")
	require.NoError(t, err)
	assert.Equal(t, TableWatchNew, upperPlural)

	lower, err := r.Resolve("watch")
	require.NoError(t, err)
	assert.Equal(t, TableWatch, lower)

	mixed, err := r.Resolve("Watches")
	require.NoError(t, err)
	assert.Equal(t, TableWatch, mixed)
}

func TestResolveUnsupported(t *testing.T) {
	r := newDefaultResolver(t)

	for _, label := range []string{"", "electronics", "kid-shoes", "watchx"} {
		_, err := r.Resolve(label)
		assert.ErrorIs(t, err, ErrUnsupportedCategory, "label %q", label)
	}
}

func TestNewResolverRejectsCollisions(t *testing.T) {
	_, err := NewResolver([]Alias{
		{Label: "watch", Table: TableWatch},
		{Label: "Watch ", Table: TableWatchNew},
	})
	require.Error(t, err)

	_, err = NewResolver([]Alias{
		{Label: "WATCH", Table: TableWatchNew, CaseSensitive: true},
		{Label: "WATCH", Table: TableWatch, CaseSensitive: true},
	})
	require.Error(t, err)
}

func TestNewResolverAllowsRepeatedPair(t *testing.T) {
	// The same (alias, table) pair twice is redundant, not a collision.
	_, err := NewResolver([]Alias{
		{Label: "watch", Table: TableWatch},
		{Label: "WATCH ", Table: TableWatch},
	})
	require.NoError(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "mentshirt", Normalize(" Men-Tshirt "))
	assert.Equal(t, "watchnew", Normalize("WATCH-NEW"))
	assert.Equal(t, "shoes", Normalize("shoes"))
	assert.Equal(t, "formalshoes", Normalize("Formal Shoes"))
}

func TestTablesAreDistinct(t *testing.T) {
	r := newDefaultResolver(t)

	seen := make(map[string]bool)
	for _, table := range r.Tables() {
		assert.False(t, seen[table.Name], "table %s listed twice", table.Name)
		seen[table.Name] = true
	}
	assert.Len(t, r.Tables(), 8)
}
