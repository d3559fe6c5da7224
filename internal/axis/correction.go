package axis

import (
	"fmt"
	"math"

	"fbx-scene-importer/internal/mathutil"
	"fbx-scene-importer/internal/settings"
)

// Correction is a rotation (a signed permutation) followed by a uniform scale.
// It carries no translation.
type Correction struct {
	Rotation mathutil.Mat3
	Scale    float64
}

// Identity returns the correction that changes nothing.
func Identity() Correction {
	return Correction{Rotation: mathutil.Mat3Identity(), Scale: 1}
}

// Normalize computes the correction from the record's original convention to
// its target convention. It reads gs and never writes it.
func Normalize(gs *settings.GlobalSettings) (Correction, error) {
	from, err := Original(gs).basis(originalFields)
	if err != nil {
		return Correction{}, err
	}
	to, err := Target(gs).basis(targetFields)
	if err != nil {
		return Correction{}, err
	}
	orig, dst, err := scaleFactors(gs)
	if err != nil {
		return Correction{}, err
	}
	return between(from, to, orig/dst), nil
}

// Revert computes the correction from the record's target convention back to
// its original one.
func Revert(gs *settings.GlobalSettings) (Correction, error) {
	from, err := Target(gs).basis(targetFields)
	if err != nil {
		return Correction{}, err
	}
	to, err := Original(gs).basis(originalFields)
	if err != nil {
		return Correction{}, err
	}
	orig, dst, err := scaleFactors(gs)
	if err != nil {
		return Correction{}, err
	}
	return between(from, to, dst/orig), nil
}

// Between computes the correction from one convention and unit to another.
// Scale factors are centimetres per unit.
func Between(from, to System, fromScale, toScale float64) (Correction, error) {
	fb, err := from.basis(originalFields)
	if err != nil {
		return Correction{}, err
	}
	tb, err := to.basis(targetFields)
	if err != nil {
		return Correction{}, err
	}
	if err := checkScale("fromScale", fromScale); err != nil {
		return Correction{}, err
	}
	if err := checkScale("toScale", toScale); err != nil {
		return Correction{}, err
	}
	return between(fb, tb, fromScale/toScale), nil
}

func between(from, to Basis, s float64) Correction {
	return Correction{
		Rotation: mathutil.Mat3Mul(to.Matrix(), from.Matrix().Transpose()),
		Scale:    s,
	}
}

func scaleFactors(gs *settings.GlobalSettings) (orig, dst float64, err error) {
	orig, dst = gs.OriginalUnitScaleFactor(), gs.UnitScaleFactor()
	if err := checkScale("originalScaleFactor", orig); err != nil {
		return 0, 0, err
	}
	if err := checkScale("unitScaleFactor", dst); err != nil {
		return 0, 0, err
	}
	return orig, dst, nil
}

// HalfTurn returns the 180° rotation about up. It maps a convention whose
// forward runs down the negative front axis onto the System FromAxes
// reports for it.
func HalfTurn(up settings.UpVector) (Correction, error) {
	i, err := upIndex(up)
	if err != nil {
		return Correction{}, configErr("upVector", up.String(), err.Error())
	}
	d := [3]float64{-1, -1, -1}
	d[i] = 1
	return Correction{Rotation: mathutil.Mat3Diag(d[0], d[1], d[2]), Scale: 1}, nil
}

func checkScale(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return configErr(field, fmt.Sprint(v), "scale factor must be positive and finite")
	}
	return nil
}

// Matrix returns the correction as a 4×4 transform for composing into a root
// node.
func (c Correction) Matrix() mathutil.Mat4 {
	r := c.Rotation
	for i := range r {
		r[i] *= c.Scale
	}
	return mathutil.FromMat3Translation(r, mathutil.Vec3{})
}

// Apply maps a point from the source convention to the target one.
func (c Correction) Apply(p mathutil.Vec3) mathutil.Vec3 {
	return c.Rotation.MulVec3(p).Scale(c.Scale)
}

// ApplyDirection maps a direction such as a normal; no scale is applied.
func (c Correction) ApplyDirection(v mathutil.Vec3) mathutil.Vec3 {
	return c.Rotation.MulVec3(v)
}

// Inverse returns the correction undoing c.
func (c Correction) Inverse() Correction {
	return Correction{Rotation: c.Rotation.Transpose(), Scale: 1 / c.Scale}
}

// Then returns the correction applying c first and next second.
func (c Correction) Then(next Correction) Correction {
	return Correction{
		Rotation: mathutil.Mat3Mul(next.Rotation, c.Rotation),
		Scale:    c.Scale * next.Scale,
	}
}

// IsIdentity reports whether c is the identity within mathutil.Epsilon.
func (c Correction) IsIdentity() bool {
	return c.Rotation.ApproxEqual(mathutil.Mat3Identity(), mathutil.Epsilon) &&
		math.Abs(c.Scale-1) <= mathutil.Epsilon
}

// Reflects reports whether c flips handedness.
func (c Correction) Reflects() bool {
	return c.Rotation.Det() < 0
}

// Quaternion returns the rotation part for TRS consumers. It reports false
// when c flips handedness, since no rotation expresses a mirror.
func (c Correction) Quaternion() (mathutil.Quat, bool) {
	if c.Reflects() {
		return mathutil.Quat{}, false
	}
	return mathutil.Mat3ToQuat(c.Rotation), true
}
