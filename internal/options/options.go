// Package options provides the job position catalog offered by the registration form.
package options

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/jonathan/member-form/internal/types"
)

// Catalog is an ordered list of selectable job positions.
type Catalog struct {
	Positions []types.JobPosition `json:"job_positions"`
}

// catalogEntry mirrors types.JobPosition with validation tags for loaded files.
type catalogEntry struct {
	Key   string `json:"key" validate:"required"`
	Label string `json:"label" validate:"required"`
}

type catalogFile struct {
	Positions []catalogEntry `json:"job_positions" validate:"required,min=1,dive"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{Positions: []types.JobPosition{
		{Key: "1", Label: "Desenvolvedor(a) Front-end"},
		{Key: "2", Label: "Desenvolvedor(a) Back-end"},
		{Key: "3", Label: "Desenvolvedor(a) Full Stack"},
		{Key: "4", Label: "Designer UX/UI"},
		{Key: "5", Label: "Analista de Dados"},
		{Key: "6", Label: "Engenheiro(a) DevOps"},
		{Key: "7", Label: "Gerente de Projetos"},
		{Key: "8", Label: "Analista de QA"},
	}}
}

// Load reads a catalog from a JSON file of the form {"job_positions": [{"key": ..., "label": ...}]}.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job positions file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job positions: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid job positions: %w", err)
	}

	dupes := lo.FindDuplicatesBy(f.Positions, func(e catalogEntry) string { return e.Key })
	if len(dupes) > 0 {
		return nil, fmt.Errorf("invalid job positions: duplicate key %q", dupes[0].Key)
	}

	return &Catalog{Positions: lo.Map(f.Positions, func(e catalogEntry, _ int) types.JobPosition {
		return types.JobPosition{Key: e.Key, Label: e.Label}
	})}, nil
}

// All returns a copy of every position in order.
func (c *Catalog) All() []types.JobPosition {
	out := make([]types.JobPosition, len(c.Positions))
	copy(out, c.Positions)
	return out
}

// Label returns the label of key, or "" when the key is not in the catalog.
func (c *Catalog) Label(key string) string {
	p, ok := lo.Find(c.Positions, func(p types.JobPosition) bool { return p.Key == key })
	if !ok {
		return ""
	}
	return p.Label
}

// Contains reports whether key is a selectable option.
func (c *Catalog) Contains(key string) bool {
	return lo.ContainsBy(c.Positions, func(p types.JobPosition) bool { return p.Key == key })
}

// Search filters positions whose label contains term, ignoring case.
// An empty term matches everything.
func (c *Catalog) Search(term string) []types.JobPosition {
	needle := strings.ToLower(term)
	return lo.Filter(c.Positions, func(p types.JobPosition, _ int) bool {
		return strings.Contains(strings.ToLower(p.Label), needle)
	})
}
