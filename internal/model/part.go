package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PartSpec is one required part as entered by the user or an importer:
// dimensions in mm plus the number of copies to cut. The spec itself is
// read-only during packing; the normalizer expands it into unit parts.
type PartSpec struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Length     float64 `json:"length"` // mm, mapped to the sheet X axis
	Width      float64 `json:"width"`  // mm, mapped to the sheet Y axis
	Thickness  float64 `json:"thickness"`
	Quantity   int     `json:"quantity"`
	MaterialID string  `json:"material_id"`
	Rotatable  bool    `json:"rotatable"` // false when grain forbids 90 degree rotation
	Order      int     `json:"order"`     // original position, tie-break key for all sorts
}

// NewPartSpec creates a part spec with a generated short id. Parts are
// rotatable unless a grain constraint says otherwise.
func NewPartSpec(name string, length, width float64, qty int, materialID string) PartSpec {
	return PartSpec{
		ID:         uuid.New().String()[:8],
		Name:       name,
		Length:     length,
		Width:      width,
		Quantity:   qty,
		MaterialID: materialID,
		Rotatable:  true,
	}
}

// UnitPart is a single physical instance of a PartSpec after quantity
// expansion. Copy is the zero-based index among that spec's instances.
type UnitPart struct {
	Spec PartSpec `json:"spec"`
	Copy int      `json:"copy"`
}

// Footprint returns the unrotated width and height the unit occupies on a
// sheet, in mm.
func (u UnitPart) Footprint() (w, h float64) {
	return u.Spec.Length, u.Spec.Width
}

// Area returns the unit's area in square mm.
func (u UnitPart) Area() float64 {
	return u.Spec.Length * u.Spec.Width
}

// Label returns a display name, suffixed with the copy number when the spec
// has more than one copy.
func (u UnitPart) Label() string {
	if u.Spec.Quantity > 1 {
		return fmt.Sprintf("%s %d", u.Spec.Name, u.Copy+1)
	}
	return u.Spec.Name
}
