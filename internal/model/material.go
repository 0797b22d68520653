package model

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// PriceUnit determines how a material's PricePerUnit is applied.
type PriceUnit string

const (
	PriceUnitArea   PriceUnit = "m2"    // Priced per square meter of sheet
	PriceUnitLength PriceUnit = "m"     // Priced per linear meter of placed part
	PriceUnitPiece  PriceUnit = "piece" // Priced per placed unit part
)

// Valid reports whether the price unit is one of the supported values.
func (u PriceUnit) Valid() bool {
	switch u {
	case PriceUnitArea, PriceUnitLength, PriceUnitPiece:
		return true
	}
	return false
}

// SheetSize is one standard stock size for a material, in mm.
type SheetSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Material describes a stock material in the catalog. A material is
// immutable once a cutting plan references it; re-optimization works on a
// fresh copy of the catalog rather than editing one in place.
type Material struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Thickness     float64     `json:"thickness" yaml:"thickness"`             // mm
	PricePerUnit  float64     `json:"price_per_unit" yaml:"price_per_unit"`   // in catalog currency
	PriceUnit     PriceUnit   `json:"price_unit" yaml:"price_unit"`           // m2, m or piece
	Density       float64     `json:"density" yaml:"density"`                 // kg/m3
	StandardSizes []SheetSize `json:"standard_sizes" yaml:"standard_sizes"`   // ordered, first size drives allocation
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewMaterial creates a material with a generated short id.
func NewMaterial(name string, thickness, price float64, unit PriceUnit, sizes ...SheetSize) Material {
	return Material{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Thickness:     thickness,
		PricePerUnit:  price,
		PriceUnit:     unit,
		StandardSizes: sizes,
	}
}

// Catalog is a read-only lookup over a material list.
type Catalog struct {
	materials []Material
	byID      map[string]Material
}

// NewCatalog builds a catalog from a material list. Later duplicates of an
// id shadow earlier ones.
func NewCatalog(materials []Material) Catalog {
	byID := make(map[string]Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}
	return Catalog{materials: materials, byID: byID}
}

// Resolve returns the material for an id.
func (c Catalog) Resolve(id string) (Material, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Materials returns the catalog contents in their original order.
func (c Catalog) Materials() []Material {
	return c.materials
}

// Len returns the number of materials in the catalog.
func (c Catalog) Len() int {
	return len(c.materials)
}

// DefaultMaterials returns the built-in material library: common carpentry
// stock with Brazilian market prices.
func DefaultMaterials() []Material {
	return []Material{
		{
			ID:            "mdf-15",
			Name:          "MDF 15mm",
			Thickness:     15.0,
			PricePerUnit:  80.00,
			PriceUnit:     PriceUnitArea,
			Density:       750.0,
			StandardSizes: []SheetSize{{Width: 2750, Height: 1830}, {Width: 2440, Height: 1220}},
			Description:   "Medium density fiberboard, general furniture work",
		},
		{
			ID:            "plywood-18",
			Name:          "Compensado 18mm",
			Thickness:     18.0,
			PricePerUnit:  120.00,
			PriceUnit:     PriceUnitArea,
			Density:       600.0,
			StandardSizes: []SheetSize{{Width: 2200, Height: 1600}},
			Description:   "Multi-laminated plywood",
		},
		{
			ID:            "edgeband-pvc",
			Name:          "Fita de Borda PVC",
			Thickness:     0.5,
			PricePerUnit:  2.50,
			PriceUnit:     PriceUnitLength,
			Density:       1400.0,
			StandardSizes: []SheetSize{{Width: 50000, Height: 22}},
			Description:   "PVC edge banding roll",
		},
		{
			ID:            "pine-2x4",
			Name:          "Pinus 2x4",
			Thickness:     38.0,
			PricePerUnit:  15.00,
			PriceUnit:     PriceUnitLength,
			Density:       500.0,
			StandardSizes: []SheetSize{{Width: 3000, Height: 89}},
			Description:   "Pine lumber for framing",
		},
	}
}

// catalogFile is the YAML layout of a material catalog file.
type catalogFile struct {
	Materials []Material `yaml:"materials"`
}

// LoadMaterials reads a material catalog from a YAML file.
func LoadMaterials(path string) ([]Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Materials) == 0 {
		return nil, fmt.Errorf("catalog %s contains no materials", path)
	}

	for i, m := range file.Materials {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog material %d (%s) has no id", i, m.Name)
		}
		if !m.PriceUnit.Valid() {
			return nil, fmt.Errorf("catalog material %s has invalid price unit %q", m.ID, m.PriceUnit)
		}
	}

	return file.Materials, nil
}
