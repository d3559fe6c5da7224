package config

import (
	"fmt"
	"strings"

	"fbx-scene-importer/internal/settings"
)

// ApplyMode selects where the correction transform ends up.
type ApplyMode int

const (
	// ApplyRoot composes the correction into parentless nodes only.
	ApplyRoot ApplyMode = iota
	// ApplyVertices bakes the correction into vertex data.
	ApplyVertices
)

func (m ApplyMode) String() string {
	switch m {
	case ApplyRoot:
		return "root"
	case ApplyVertices:
		return "vertices"
	default:
		return fmt.Sprintf("ApplyMode(%d)", int(m))
	}
}

func ParseApplyMode(s string) (ApplyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "root", "":
		return ApplyRoot, nil
	case "vertices", "vertex", "bake":
		return ApplyVertices, nil
	}
	return 0, fmt.Errorf("config: unknown apply mode %q", s)
}

// Target is the importer's resolved target convention.
type Target struct {
	UpVector         settings.UpVector
	FrontVector      settings.FrontVector
	CoordinateSystem settings.CoordinateSystem
	UnitScaleFactor  float64
	Apply            ApplyMode
}

// DefaultTarget returns the target produced by an empty config.
func DefaultTarget() Target {
	var c Config
	c.Resolve(Flags{})
	t, err := c.Target()
	if err != nil {
		panic(err)
	}
	return t
}

// ApplyTo writes the target convention into gs. Original fields are untouched.
func (t Target) ApplyTo(gs *settings.GlobalSettings) {
	gs.SetUpVector(t.UpVector)
	gs.SetFrontVector(t.FrontVector)
	gs.SetCoordinateSystem(t.CoordinateSystem)
	gs.SetUnitScaleFactor(t.UnitScaleFactor)
}
