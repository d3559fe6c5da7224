package fbxmeta

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"fbx-scene-importer/internal/axis"
	"fbx-scene-importer/internal/settings"
)

// Decode reads the axis and unit properties. Missing keys keep Default values.
func Decode(props Properties) (Metadata, error) {
	m := Default
	ints := []struct {
		name string
		dst  *int
	}{
		{PropUpAxis, &m.UpAxis},
		{PropUpAxisSign, &m.UpAxisSign},
		{PropFrontAxis, &m.FrontAxis},
		{PropFrontAxisSign, &m.FrontAxisSign},
		{PropCoordAxis, &m.CoordAxis},
		{PropCoordAxisSign, &m.CoordAxisSign},
		{PropOriginalUpAxis, &m.OriginalUpAxis},
		{PropOriginalUpAxisSign, &m.OriginalUpAxisSign},
	}
	for _, p := range ints {
		v, ok := props[p.name]
		if !ok {
			continue
		}
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return Metadata{}, fmt.Errorf("fbxmeta: %s=%v is not an integer", p.name, v)
		}
		*p.dst = int(v)
	}

	if v, ok := props[PropUnitScaleFactor]; ok {
		m.UnitScaleFactor = v
	}
	if v, ok := props[PropOriginalUnitScaleFactor]; ok {
		m.OriginalUnitScaleFactor = v
	} else {
		m.OriginalUnitScaleFactor = m.UnitScaleFactor
	}
	return m, nil
}

// LoadJSON reads a properties dump: a JSON object of property name to number.
func LoadJSON(r io.Reader) (Properties, error) {
	var props Properties
	if err := json.NewDecoder(r).Decode(&props); err != nil {
		return nil, fmt.Errorf("fbxmeta: parse properties: %w", err)
	}
	return props, nil
}

// System decodes the stored data's axis convention.
func (m Metadata) System() (axis.System, error) {
	return axis.FromAxes(m.UpAxis, m.UpAxisSign, m.FrontAxis, m.FrontAxisSign, m.CoordAxis, m.CoordAxisSign)
}

// ConvertedOnExport reports whether the exporter recorded an authoring
// convention that differs from the stored data.
func (m Metadata) ConvertedOnExport() bool {
	if m.OriginalUpAxis >= 0 && (m.OriginalUpAxis != m.UpAxis || m.OriginalUpAxisSign != m.UpAxisSign) {
		return true
	}
	return m.OriginalUnitScaleFactor != m.UnitScaleFactor
}

// Populate writes the original* fields of gs. Target fields are left to the
// caller's configuration. An inconsistent axis triple is an
// *axis.ConfigurationError and leaves gs untouched.
func (m Metadata) Populate(gs *settings.GlobalSettings) error {
	s, err := m.System()
	if err != nil {
		return fmt.Errorf("fbxmeta: %w", err)
	}
	gs.SetOriginalUpVector(s.Up)
	gs.SetOriginalFrontVector(s.Front)
	gs.SetOriginalCoordinateSystem(s.Hand)
	gs.SetOriginalUnitScaleFactor(m.UnitScaleFactor)
	return nil
}
