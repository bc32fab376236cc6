package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stockroom/internal/schema"
)

// AliasTable maps a canonical semantic concept to the ordered list of
// raw extraction keys accepted for it. The table is injected data,
// not code: deployments can extend it from a YAML file without
// touching the mapper.
type AliasTable map[string][]string

// DefaultAliasTable returns the built-in table covering the concepts
// extraction sources commonly emit.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		"sku":         {"sku", "model", "item_number", "product_id", "upc", "barcode"},
		"brand":       {"brand", "manufacturer", "make", "vendor"},
		"category":    {"category", "department", "product_type", "type"},
		"price":       {"price", "cost", "msrp", "list_price", "sale_price"},
		"weight":      {"weight", "item_weight", "shipping_weight", "mass"},
		"dimensions":  {"dimensions", "size", "product_dimensions", "measurements"},
		"color":       {"color", "colour", "finish"},
		"material":    {"material", "fabric", "composition"},
		"warranty":    {"warranty", "guarantee", "warranty_period"},
		"condition":   {"condition", "item_condition", "state"},
		"status":      {"status", "availability", "stock_status", "in_stock"},
		"unit":        {"unit", "unit_of_measure", "uom", "sold_by"},
		"supplier":    {"supplier", "seller", "sold_by_store", "distributor"},
		"date_added":  {"date_added", "listed_date", "first_available", "release_date"},
		"expiry_date": {"expiry_date", "expiration_date", "best_before", "use_by"},
	}
}

// LoadAliasTable reads an alias table from a YAML file, merged over
// the defaults so a partial file only extends or overrides the
// concepts it names.
func LoadAliasTable(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias table: %w", err)
	}

	var loaded AliasTable
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}

	table := DefaultAliasTable()
	for concept, aliases := range loaded {
		table[concept] = aliases
	}
	return table, nil
}

// Resolver answers "which raw extraction value belongs to this
// field". Resolution is deterministic: a field-specific key always
// beats a semantic alias.
type Resolver struct {
	table AliasTable
	// conceptOf indexes every alias (and the concept itself) back to
	// its canonical concept for O(1) membership checks.
	conceptOf map[string]string
}

func NewResolver(table AliasTable) *Resolver {
	r := &Resolver{
		table:     table,
		conceptOf: make(map[string]string),
	}
	for concept, aliases := range table {
		r.conceptOf[concept] = concept
		for _, alias := range aliases {
			r.conceptOf[alias] = concept
		}
	}
	return r
}

// Resolve finds the raw value for a field. Lookup order: the field
// slug as a literal key, the normalized field name as a literal key,
// then the canonical concept the slug or name belongs to. The first
// hit wins.
func (r *Resolver) Resolve(slug, name string, data map[string]any) (any, bool) {
	if v, ok := data[slug]; ok {
		return v, true
	}

	normalized := schema.NormalizeKey(name)
	if v, ok := data[normalized]; ok {
		return v, true
	}

	if concept, ok := r.ConceptFor(slug, name); ok {
		if v, ok := data[concept]; ok {
			return v, true
		}
	}
	return nil, false
}

// ConceptFor returns the canonical concept the field is semantically
// identified with, via its slug or normalized name.
func (r *Resolver) ConceptFor(slug, name string) (string, bool) {
	if concept, ok := r.conceptOf[slug]; ok {
		return concept, true
	}
	if concept, ok := r.conceptOf[schema.NormalizeKey(name)]; ok {
		return concept, true
	}
	return "", false
}
