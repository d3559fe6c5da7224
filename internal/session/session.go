package session

import (
	"fmt"

	"fbx-scene-importer/internal/axis"
	"fbx-scene-importer/internal/config"
	"fbx-scene-importer/internal/fbxmeta"
	"fbx-scene-importer/internal/logger"
	"fbx-scene-importer/internal/mathutil"
	"fbx-scene-importer/internal/scene"
	"fbx-scene-importer/internal/settings"
)

// Session is the import of one document. It owns one reference to the
// document's GlobalSettings; concurrent imports each open their own Session.
type Session struct {
	name     string
	meta     fbxmeta.Metadata
	target   config.Target
	settings *settings.GlobalSettings
	log      logger.Logger
	closed   bool
}

// Options tunes Open. The zero value is usable.
type Options struct {
	Allocator settings.Allocator
	Logger    logger.Logger
}

// Open creates the document's record, fills the original convention from
// meta and the working convention from target.
func Open(name string, meta fbxmeta.Metadata, target config.Target, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("document", name)

	gs, err := settings.CreateWith(opts.Allocator)
	if err != nil {
		log.Error("cannot create global settings", "err", err)
		return nil, fmt.Errorf("session: %s: %w", name, err)
	}
	if err := meta.Populate(gs); err != nil {
		gs.Release()
		log.Error("invalid axis metadata", "err", err)
		return nil, fmt.Errorf("session: %s: %w", name, err)
	}
	target.ApplyTo(gs)

	if meta.FrontAxisSign < 0 {
		log.Warn("front axis is negative; data gets a half turn about up",
			"field", fbxmeta.PropFrontAxisSign,
			"front_axis", meta.FrontAxis,
			"front_axis_sign", meta.FrontAxisSign)
	}
	if meta.ConvertedOnExport() {
		log.Info("exporter converted scene before writing",
			"original_up_axis", meta.OriginalUpAxis,
			"original_unit_scale", meta.OriginalUnitScaleFactor)
	}
	log.Debug("global settings populated",
		"original", axis.Original(gs).String(),
		"original_scale", gs.OriginalUnitScaleFactor(),
		"target", axis.Target(gs).String(),
		"target_scale", gs.UnitScaleFactor())

	return &Session{
		name:     name,
		meta:     meta,
		target:   target,
		settings: gs,
		log:      log,
	}, nil
}

// Name returns the document name given to Open.
func (s *Session) Name() string { return s.name }

// Metadata returns the decoded source metadata.
func (s *Session) Metadata() fbxmeta.Metadata { return s.meta }

// Settings returns the record with an extra reference; the caller releases it.
func (s *Session) Settings() *settings.GlobalSettings {
	return s.settings.Retain()
}

// Correction runs the normalizer over the session's record. A
// configuration error aborts this document's import. A negative front sign
// in the metadata is turned onto its parity axis before normalizing.
func (s *Session) Correction() (axis.Correction, error) {
	c, err := axis.Normalize(s.settings)
	if err == nil && s.meta.FrontAxisSign < 0 {
		var h axis.Correction
		h, err = axis.HalfTurn(s.settings.OriginalUpVector())
		c = h.Then(c)
	}
	if err != nil {
		s.log.Error("normalization failed", "err", err)
		return axis.Correction{}, fmt.Errorf("session: %s: %w", s.name, err)
	}
	s.log.Debug("normalized", "scale", c.Scale, "reflects", c.Reflects())
	return c, nil
}

// ApplyRoot brings the hierarchy into the target convention. In root mode
// the correction is composed into parentless nodes. In vertex mode every
// local is conjugated by it, to match vertices passed to BakeVertices.
func (s *Session) ApplyRoot(nodes []scene.Node) error {
	c, err := s.Correction()
	if err != nil {
		return err
	}
	switch s.target.Apply {
	case config.ApplyRoot:
		scene.ComposeRoot(nodes, c.Matrix())
	case config.ApplyVertices:
		scene.ConjugateNodes(nodes, c.Matrix(), c.Inverse().Matrix())
	}
	return nil
}

// BakeVertices applies the correction to vertex positions and normals when
// the session is in vertex mode. normals may be nil.
func (s *Session) BakeVertices(verts, normals [][3]float32) error {
	if s.target.Apply != config.ApplyVertices {
		return nil
	}
	c, err := s.Correction()
	if err != nil {
		return err
	}
	scene.BakeVertices(verts, c.Matrix())
	scene.BakeNormals(normals, c.Rotation)
	return nil
}

// RootTransform returns the correction as a matrix, or identity in vertex mode.
func (s *Session) RootTransform() (mathutil.Mat4, error) {
	if s.target.Apply != config.ApplyRoot {
		return mathutil.Mat4Identity(), nil
	}
	c, err := s.Correction()
	if err != nil {
		return mathutil.Mat4{}, err
	}
	return c.Matrix(), nil
}

// Close releases the session's reference. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.settings.Release()
	s.log.Debug("session closed", "refs", s.settings.Refs())
}
