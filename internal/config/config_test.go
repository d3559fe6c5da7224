package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbx-scene-importer/internal/settings"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importer.json")
	writeFile(t, path, `{"up_vector":"z","unit_scale_factor":1,"apply":"vertices","log_json":true}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "z", cfg.UpVector)
	assert.Equal(t, 1.0, cfg.UnitScaleFactor)
	assert.Equal(t, "vertices", cfg.Apply)
	assert.True(t, cfg.LogJSON)
	assert.Empty(t, cfg.FrontVector)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importer.yaml")
	writeFile(t, path, "up_vector: x\nfront_vector: even\ncoordinate_system: right\nunit_scale_factor: 2.54\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.UpVector)
	assert.Equal(t, "even", cfg.FrontVector)
	assert.Equal(t, "right", cfg.CoordinateSystem)
	assert.Equal(t, 2.54, cfg.UnitScaleFactor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")

	path := filepath.Join(t.TempDir(), "broken.json")
	writeFile(t, path, `{"up_vector":`)
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	tgt, err := cfg.Target()
	require.NoError(t, err)
	assert.Equal(t, Target{
		UpVector:         settings.Y,
		FrontVector:      settings.Odd,
		CoordinateSystem: settings.LeftHand,
		UnitScaleFactor:  100,
		Apply:            ApplyRoot,
	}, tgt)
	assert.Equal(t, tgt, DefaultTarget())
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{UpVector: "z", UnitScaleFactor: 2.54, Apply: "vertices"}
	cfg.Resolve(Flags{UpVector: "x", UnitScaleFactor: 1})

	assert.Equal(t, "x", cfg.UpVector)
	assert.Equal(t, 1.0, cfg.UnitScaleFactor)
	assert.Equal(t, "vertices", cfg.Apply)
}

func TestTargetInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		msg  string
	}{
		{"up", Config{UpVector: "w"}, "up_vector"},
		{"front", Config{FrontVector: "diagonal"}, "front_vector"},
		{"hand", Config{CoordinateSystem: "both"}, "coordinate_system"},
		{"apply", Config{Apply: "sometimes"}, "apply mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Resolve(Flags{})
			_, err := cfg.Target()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestTargetApplyTo(t *testing.T) {
	gs := settings.Create()
	defer gs.Release()
	gs.SetOriginalUnitScaleFactor(2.54)

	Target{UpVector: settings.Z, FrontVector: settings.Even, CoordinateSystem: settings.LeftHand, UnitScaleFactor: 100}.ApplyTo(gs)

	assert.Equal(t, settings.Z, gs.UpVector())
	assert.Equal(t, settings.Even, gs.FrontVector())
	assert.Equal(t, settings.LeftHand, gs.CoordinateSystem())
	assert.Equal(t, 100.0, gs.UnitScaleFactor())
	assert.Equal(t, 2.54, gs.OriginalUnitScaleFactor())
	assert.Equal(t, settings.Y, gs.OriginalUpVector())
}
