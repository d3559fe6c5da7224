package session

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbx-scene-importer/internal/axis"
	"fbx-scene-importer/internal/config"
	"fbx-scene-importer/internal/fbxmeta"
	"fbx-scene-importer/internal/logger"
	"fbx-scene-importer/internal/mathutil"
	"fbx-scene-importer/internal/scene"
	"fbx-scene-importer/internal/settings"
)

func zUpMetres() config.Target {
	return config.Target{
		UpVector:         settings.Z,
		FrontVector:      settings.Odd,
		CoordinateSystem: settings.RightHand,
		UnitScaleFactor:  100,
		Apply:            config.ApplyRoot,
	}
}

func TestOpenDefaultTargetMirrorsX(t *testing.T) {
	s, err := Open("maya.fbx", fbxmeta.Default, config.DefaultTarget(), Options{})
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Correction()
	require.NoError(t, err)

	assert.True(t, c.Reflects())
	assert.InDelta(t, 0.01, c.Scale, 1e-12)
	got := c.Apply(mathutil.Vec3{100, 200, 300})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{-1, 2, 3}, 1e-12), "got %v", got)
}

func TestRootTransformYUpToZUp(t *testing.T) {
	s, err := Open("doc", fbxmeta.Default, zUpMetres(), Options{})
	require.NoError(t, err)
	defer s.Close()

	m, err := s.RootTransform()
	require.NoError(t, err)
	assert.True(t, m.MulPoint(mathutil.Vec3{0, 100, 0}).ApproxEqual(mathutil.Vec3{0, 0, 1}, mathutil.Epsilon))

	nodes := []scene.Node{{Name: "root", Parent: -1, Local: mathutil.Mat4Identity()}}
	require.NoError(t, s.ApplyRoot(nodes))
	assert.Equal(t, m, nodes[0].Local)

	verts := [][3]float32{{0, 100, 0}}
	require.NoError(t, s.BakeVertices(verts, nil))
	assert.Equal(t, [3]float32{0, 100, 0}, verts[0], "root mode leaves vertices alone")
}

func TestVertexMode(t *testing.T) {
	tgt := zUpMetres()
	tgt.Apply = config.ApplyVertices
	s, err := Open("doc", fbxmeta.Default, tgt, Options{})
	require.NoError(t, err)
	defer s.Close()

	nodes := []scene.Node{{Name: "root", Parent: -1, Local: mathutil.Mat4Identity()}}
	require.NoError(t, s.ApplyRoot(nodes))
	assert.True(t, nodes[0].Local.ApproxEqual(mathutil.Mat4Identity(), mathutil.Epsilon))

	m, err := s.RootTransform()
	require.NoError(t, err)
	assert.True(t, m.IsIdentity())

	verts := [][3]float32{{0, 100, 0}}
	normals := [][3]float32{{0, 1, 0}}
	require.NoError(t, s.BakeVertices(verts, normals))
	assert.InDelta(t, 1.0, verts[0][2], 1e-6)
	assert.InDelta(t, 1.0, normals[0][2], 1e-6)
}

func TestVertexModeMatchesRootMode(t *testing.T) {
	build := func() []scene.Node {
		return []scene.Node{
			{Name: "root", Parent: -1, Local: mathutil.Mat4Identity()},
			{Name: "child", Parent: 0, Local: mathutil.FromMat3Translation(mathutil.Mat3Identity(), mathutil.Vec3{0, 100, 0})},
		}
	}
	placed := func(mode config.ApplyMode) mathutil.Vec3 {
		tgt := zUpMetres()
		tgt.Apply = mode
		s, err := Open("doc", fbxmeta.Default, tgt, Options{})
		require.NoError(t, err)
		defer s.Close()

		nodes := build()
		verts := [][3]float32{{0, 0, 0}}
		require.NoError(t, s.ApplyRoot(nodes))
		require.NoError(t, s.BakeVertices(verts, nil))

		world := scene.WorldMatrices(nodes, mathutil.Mat4Identity())
		v := mathutil.Vec3{float64(verts[0][0]), float64(verts[0][1]), float64(verts[0][2])}
		return world[1].MulPoint(v)
	}

	root := placed(config.ApplyRoot)
	baked := placed(config.ApplyVertices)
	assert.True(t, root.ApproxEqual(mathutil.Vec3{0, 0, 1}, 1e-9), "root mode: %v", root)
	assert.True(t, baked.ApproxEqual(root, 1e-6), "vertex mode: %v", baked)
}

func TestNegativeFrontSignTurnsDataAndWarns(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: &buf, JSON: true})

	// 3ds Max export: Z up, forward down -Y, right along +X.
	meta := fbxmeta.Default
	meta.UpAxis, meta.FrontAxis, meta.FrontAxisSign, meta.CoordAxis = 2, 1, -1, 0
	tgt := config.Target{
		UpVector:         settings.Y,
		FrontVector:      settings.Odd,
		CoordinateSystem: settings.RightHand,
		UnitScaleFactor:  1,
	}

	s, err := Open("max.fbx", meta, tgt, Options{Logger: log})
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Correction()
	require.NoError(t, err)
	assert.True(t, c.ApplyDirection(mathutil.Vec3{0, -1, 0}).ApproxEqual(mathutil.AxisZ, mathutil.Epsilon))
	assert.True(t, c.ApplyDirection(mathutil.AxisZ).ApproxEqual(mathutil.AxisY, mathutil.Epsilon))
	assert.True(t, c.ApplyDirection(mathutil.AxisX).ApproxEqual(mathutil.AxisX, mathutil.Epsilon))

	assert.Contains(t, buf.String(), "warn")
	assert.Contains(t, buf.String(), "half turn about up")
	assert.Contains(t, buf.String(), "FrontAxisSign")
}

func TestOpenInvalidMetadataFreesRecord(t *testing.T) {
	alloc := &settings.TrackingAllocator{}
	meta := fbxmeta.Default
	meta.FrontAxis = meta.UpAxis

	s, err := Open("bad.fbx", meta, zUpMetres(), Options{Allocator: alloc})
	require.Error(t, err)
	assert.Nil(t, s)

	var ce *axis.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, err.Error(), "bad.fbx")
	assert.Contains(t, err.Error(), "UpAxis/FrontAxis")
	assert.Equal(t, 1, alloc.Allocs())
	assert.Equal(t, 0, alloc.Live())
}

func TestOpenAllocationFailure(t *testing.T) {
	alloc := &settings.TrackingAllocator{Fail: errors.New("arena exhausted")}

	_, err := Open("doc", fbxmeta.Default, zUpMetres(), Options{Allocator: alloc})
	var ce *settings.ConstructionError
	require.ErrorAs(t, err, &ce)
}

func TestCorrectionConfigurationErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf, JSON: true})

	tgt := zUpMetres()
	tgt.UnitScaleFactor = 0
	s, err := Open("doc", fbxmeta.Default, tgt, Options{Logger: log})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Correction()
	var ce *axis.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "unitScaleFactor", ce.Field)

	require.Error(t, s.ApplyRoot(nil))
	assert.Contains(t, buf.String(), "normalization failed")
	assert.Contains(t, buf.String(), `"document"`)
}

func TestSharedSettingsOutliveSession(t *testing.T) {
	alloc := &settings.TrackingAllocator{}
	s, err := Open("doc", fbxmeta.Default, zUpMetres(), Options{Allocator: alloc})
	require.NoError(t, err)

	gs := s.Settings()
	assert.Equal(t, int32(2), gs.Refs())

	s.Close()
	s.Close()
	assert.Equal(t, 0, alloc.Frees(gs))
	assert.Equal(t, settings.Z, gs.UpVector())

	c, err := axis.Normalize(gs)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, c.Scale, 1e-12)

	gs.Release()
	assert.Equal(t, 1, alloc.Frees(gs))
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	scales := []float64{1, 2.54, 10, 30.48, 100, 1000}
	alloc := &settings.TrackingAllocator{}

	var wg sync.WaitGroup
	results := make([]float64, len(scales))
	errs := make([]error, len(scales))
	for i, sc := range scales {
		i, sc := i, sc
		wg.Add(1)
		go func() {
			defer wg.Done()
			meta := fbxmeta.Default
			meta.UnitScaleFactor = sc
			s, err := Open(fmt.Sprintf("doc-%d", i), meta, zUpMetres(), Options{Allocator: alloc})
			if err != nil {
				errs[i] = err
				return
			}
			defer s.Close()
			c, err := s.Correction()
			errs[i] = err
			results[i] = c.Scale
		}()
	}
	wg.Wait()

	for i, sc := range scales {
		require.NoError(t, errs[i])
		assert.InDelta(t, sc/100, results[i], 1e-12)
	}
	assert.Equal(t, len(scales), alloc.Allocs())
	assert.Equal(t, 0, alloc.Live())
}
