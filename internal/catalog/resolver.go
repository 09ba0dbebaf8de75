package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedCategory is returned when a label matches no known alias.
var ErrUnsupportedCategory = errors.New("unsupported category")

// Table identifies one per-category product table.
type Table struct {
	// Category is the canonical category slug used in API responses.
	Category string
	// Name is the SQL table the category's products live in.
	Name string
}

var (
	TableMen       = Table{Category: "men", Name: "men_products"}
	TableMenTshirt = Table{Category: "men-tshirt", Name: "men_tshirt_products"}
	TableWomen     = Table{Category: "women", Name: "women_products"}
	TableWatch     = Table{Category: "watch", Name: "watch_products"}
	TableWatchNew  = Table{Category: "watch-new", Name: "watch_new_products"}
	TableLens      = Table{Category: "lens", Name: "lens_products"}
	TableAccessory = Table{Category: "accessory", Name: "accessory_products"}
	TableShoes     = Table{Category: "shoes", Name: "shoes_products"}
)

// Alias binds one user-facing label to a table. CaseSensitive aliases are
// matched verbatim before normalization runs, which is how the all-caps
// watch labels select the newer watch table while every other casing of
// "watch" selects the legacy one.
type Alias struct {
	Label         string
	Table         Table
	CaseSensitive bool
}

// DefaultAliases is the alias set the storefront ships with.
var DefaultAliases = []Alias{
	{Label: "WATCH", Table: TableWatchNew, CaseSensitive: true},
	{Label: "WATCHES", Table: TableWatchNew, CaseSensitive: true},

	{Label: "men", Table: TableMen},
	{Label: "men-tshirt", Table: TableMenTshirt},
	{Label: "tshirt", Table: TableMenTshirt},
	{Label: "tshirts", Table: TableMenTshirt},
	{Label: "women", Table: TableWomen},
	{Label: "watch", Table: TableWatch},
	{Label: "watches", Table: TableWatch},
	{Label: "watch-new", Table: TableWatchNew},
	{Label: "lens", Table: TableLens},
	{Label: "lenses", Table: TableLens},
	{Label: "accessory", Table: TableAccessory},
	{Label: "accessories", Table: TableAccessory},
	{Label: "shoes", Table: TableShoes},
	{Label: "shoe", Table: TableShoes},
}

// Resolver maps free-form category labels to product tables.
type Resolver struct {
	exact      map[string]Table
	normalized map[string]Table
	tables     []Table
}

// NewResolver builds a resolver from alias pairs and rejects alias sets
// where two pairs collapse to the same key but different tables.
func NewResolver(aliases []Alias) (*Resolver, error) {
	r := &Resolver{
		exact:      make(map[string]Table),
		normalized: make(map[string]Table),
	}

	seen := make(map[string]bool)
	for _, a := range aliases {
		if a.Label == "" {
			return nil, errors.New("catalog: empty alias label")
		}

		if a.CaseSensitive {
			if existing, ok := r.exact[a.Label]; ok && existing != a.Table {
				return nil, fmt.Errorf("catalog: alias %q maps to both %s and %s", a.Label, existing.Name, a.Table.Name)
			}
			r.exact[a.Label] = a.Table
		} else {
			key := Normalize(a.Label)
			if existing, ok := r.normalized[key]; ok && existing != a.Table {
				return nil, fmt.Errorf("catalog: alias %q maps to both %s and %s", a.Label, existing.Name, a.Table.Name)
			}
			r.normalized[key] = a.Table
		}

		if !seen[a.Table.Name] {
			seen[a.Table.Name] = true
			r.tables = append(r.tables, a.Table)
		}
	}

	return r, nil
}

// MustNewResolver is NewResolver for static alias sets known at compile time.
func MustNewResolver(aliases []Alias) *Resolver {
	r, err := NewResolver(aliases)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the product table for a category label. Exact-match
// aliases win over normalized ones.
func (r *Resolver) Resolve(label string) (Table, error) {
	if label == "" {
		return Table{}, fmt.Errorf("%w: empty label", ErrUnsupportedCategory)
	}

	if t, ok := r.exact[label]; ok {
		return t, nil
	}
	if t, ok := r.normalized[Normalize(label)]; ok {
		return t, nil
	}

	return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedCategory, label)
}

// Tables lists every distinct product table, in alias-declaration order.
func (r *Resolver) Tables() []Table {
	out := make([]Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Normalize lowercases, trims, and de-hyphenates a label so that
// "Men-Tshirt", " mentshirt " and "MEN-TSHIRT" all compare equal.
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
