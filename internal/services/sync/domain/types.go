// Package domain holds the core types for vendor synchronization
package domain

import (
	"strings"

	"posbridge/internal/core/normalize"
)

// Entity names one synchronized vendor feed
type Entity string

// Entities in their fixed run order. RunAll walks this order: catalogs
// first so sales and transactions land against known products and orgs.
const (
	EntityOrganizations Entity = "organizations"
	EntityProducts      Entity = "products"
	EntitySales         Entity = "sales"
	EntityTransactions  Entity = "transactions"
)

// All returns every entity in run order
func All() []Entity {
	return []Entity{EntityOrganizations, EntityProducts, EntitySales, EntityTransactions}
}

// Parse resolves a user-supplied entity name
func Parse(s string) (Entity, bool) {
	e := Entity(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case EntityOrganizations, EntityProducts, EntitySales, EntityTransactions:
		return e, true
	default:
		return "", false
	}
}

// Table returns the entity's normalization table
func (e Entity) Table() normalize.Table {
	tbl, _ := normalize.TableByName(string(e))
	return tbl
}

// Snapshot reports whether the vendor feed ignores time bounds. Snapshot
// entities sync through one whole-range window instead of daily windows.
func (e Entity) Snapshot() bool { return e.Table().TimeField == "" }

// String implements fmt.Stringer
func (e Entity) String() string { return string(e) }

// CacheTags returns the report cache tags a changed entity invalidates
func (e Entity) CacheTags() []string {
	switch e {
	case EntityOrganizations:
		return []string{"reports"}
	case EntityProducts:
		return []string{"reports", "menu"}
	default:
		return []string{"reports", "analytics"}
	}
}

// Result accumulates sync counters across windows and entities
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Errors  int `json:"errors"`
}

// Add returns the field-wise sum of r and o
func (r Result) Add(o Result) Result {
	return Result{
		Created: r.Created + o.Created,
		Updated: r.Updated + o.Updated,
		Deleted: r.Deleted + o.Deleted,
		Errors:  r.Errors + o.Errors,
	}
}

// Clean reports whether the run saw no errors
func (r Result) Clean() bool { return r.Errors == 0 }
