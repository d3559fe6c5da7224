package settings

import "sync/atomic"

// Default convention for a freshly created record: Y up, Odd front
// (Z forward), right-handed, centimetres. This is the FBX default axis system.
const (
	DefaultUpVector         = Y
	DefaultFrontVector      = Odd
	DefaultCoordinateSystem = RightHand
	DefaultUnitScaleFactor  = 1.0
)

// GlobalSettings records the convention a document was authored in and the
// convention the importer presents downstream.
//
// The original* fields are the audit trail: they are written once while the
// document is populated and read afterwards. The working fields come from
// configuration. Setters store values only; the axis package derives the
// correction transform.
//
// Field access is not synchronized. Populate first, then share read-only.
type GlobalSettings struct {
	unitScaleFactor          float64
	originalScaleFactor      float64
	upVector                 UpVector
	originalUpVector         UpVector
	frontVector              FrontVector
	originalFrontVector      FrontVector
	coordinateSystem         CoordinateSystem
	originalCoordinateSystem CoordinateSystem

	refs  atomic.Int32
	alloc Allocator
}

// Create returns a new record with default fields and one holder.
func Create() *GlobalSettings {
	gs, err := CreateWith(HeapAllocator{})
	if err != nil {
		// HeapAllocator never fails.
		panic(err)
	}
	return gs
}

// CreateWith returns a new record owned through alloc. Allocation failures
// come back as *ConstructionError.
func CreateWith(alloc Allocator) (*GlobalSettings, error) {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	gs, err := alloc.Alloc()
	if err != nil {
		return nil, &ConstructionError{Err: err}
	}
	if gs == nil {
		return nil, &ConstructionError{Err: errNilRecord}
	}
	gs.reset()
	gs.alloc = alloc
	gs.refs.Store(1)
	return gs, nil
}

func (g *GlobalSettings) reset() {
	g.unitScaleFactor = DefaultUnitScaleFactor
	g.originalScaleFactor = DefaultUnitScaleFactor
	g.upVector = DefaultUpVector
	g.originalUpVector = DefaultUpVector
	g.frontVector = DefaultFrontVector
	g.originalFrontVector = DefaultFrontVector
	g.coordinateSystem = DefaultCoordinateSystem
	g.originalCoordinateSystem = DefaultCoordinateSystem
}

func (g *GlobalSettings) SetUnitScaleFactor(v float64)         { g.unitScaleFactor = v }
func (g *GlobalSettings) SetOriginalUnitScaleFactor(v float64) { g.originalScaleFactor = v }
func (g *GlobalSettings) SetUpVector(v UpVector)               { g.upVector = v }
func (g *GlobalSettings) SetOriginalUpVector(v UpVector)       { g.originalUpVector = v }
func (g *GlobalSettings) SetFrontVector(v FrontVector)         { g.frontVector = v }
func (g *GlobalSettings) SetOriginalFrontVector(v FrontVector) { g.originalFrontVector = v }
func (g *GlobalSettings) SetCoordinateSystem(v CoordinateSystem) { g.coordinateSystem = v }
func (g *GlobalSettings) SetOriginalCoordinateSystem(v CoordinateSystem) {
	g.originalCoordinateSystem = v
}

// UnitScaleFactor is centimetres per unit in the target convention.
func (g *GlobalSettings) UnitScaleFactor() float64 { return g.unitScaleFactor }

// OriginalUnitScaleFactor is centimetres per unit as stored in the source file.
func (g *GlobalSettings) OriginalUnitScaleFactor() float64 { return g.originalScaleFactor }

func (g *GlobalSettings) UpVector() UpVector                 { return g.upVector }
func (g *GlobalSettings) OriginalUpVector() UpVector         { return g.originalUpVector }
func (g *GlobalSettings) FrontVector() FrontVector           { return g.frontVector }
func (g *GlobalSettings) OriginalFrontVector() FrontVector   { return g.originalFrontVector }
func (g *GlobalSettings) CoordinateSystem() CoordinateSystem { return g.coordinateSystem }

// OriginalCoordinateSystem defaults to the target handedness when the source
// never recorded one.
func (g *GlobalSettings) OriginalCoordinateSystem() CoordinateSystem {
	return g.originalCoordinateSystem
}
