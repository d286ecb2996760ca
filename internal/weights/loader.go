// Package weights loads the per-role bonus weight tables.
package weights

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/godilite/bonus-report/internal/engine"
	"github.com/godilite/bonus-report/pkg/textnorm"
	"gopkg.in/yaml.v3"
)

var (
	ErrLoadWeights   = errors.New("load weights failed")
	ErrRoleNotFound  = errors.New("role not found in weights")
	ErrInvalidWeight = errors.New("invalid weight")
)

// indicatorsKey is the role sub-object holding the indicator weights.
const indicatorsKey = "METAS"

// Book holds one weight table per normalized role name. It is immutable
// once loaded.
type Book struct {
	tables map[string]engine.WeightTable
}

// Load reads and parses the weight file at path.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadWeights, path, err)
	}
	book, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}

// Parse decodes a weight document. The document is a JSON (or YAML) object
// keyed by role; each role holds its indicator weights either under "metas"
// or directly. Indicator order is preserved.
func Parse(data []byte) (*Book, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadWeights, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrLoadWeights)
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected an object keyed by role", ErrLoadWeights)
	}

	book := &Book{tables: make(map[string]engine.WeightTable)}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		role := doc.Content[i].Value
		body := doc.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: role %q: expected an object", ErrLoadWeights, role)
		}
		if metas := lookup(body, indicatorsKey); metas != nil {
			body = metas
		}

		entries, err := parseEntries(role, body)
		if err != nil {
			return nil, err
		}
		book.tables[textnorm.Normalize(role)] = engine.NewWeightTable(entries...)
	}
	return book, nil
}

func parseEntries(role string, node *yaml.Node) ([]engine.Weight, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: role %q: indicators must be an object", ErrLoadWeights, role)
	}

	entries := make([]engine.Weight, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var fraction float64
		if err := node.Content[i+1].Decode(&fraction); err != nil {
			return nil, fmt.Errorf("%w: role %q indicator %q: %v", ErrInvalidWeight, role, name, err)
		}
		if math.IsNaN(fraction) || math.IsInf(fraction, 0) || fraction < 0 {
			return nil, fmt.Errorf("%w: role %q indicator %q: %v", ErrInvalidWeight, role, name, fraction)
		}
		entries = append(entries, engine.Weight{Name: name, Fraction: fraction})
	}
	return entries, nil
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if textnorm.Normalize(node.Content[i].Value) == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// ForRole returns the weight table of role, matched after normalization.
func (b *Book) ForRole(role string) (engine.WeightTable, error) {
	table, ok := b.tables[textnorm.Normalize(role)]
	if !ok {
		return engine.WeightTable{}, fmt.Errorf("%w: %q", ErrRoleNotFound, role)
	}
	return table, nil
}

// Roles lists the normalized roles in the book.
func (b *Book) Roles() []string {
	out := make([]string, 0, len(b.tables))
	for r := range b.tables {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
