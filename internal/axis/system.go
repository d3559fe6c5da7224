package axis

import (
	"errors"
	"fmt"

	"fbx-scene-importer/internal/mathutil"
	"fbx-scene-importer/internal/settings"
)

// System is one axis convention.
type System struct {
	Up    settings.UpVector
	Front settings.FrontVector
	Hand  settings.CoordinateSystem
}

func (s System) String() string {
	return fmt.Sprintf("%s-up/%s/%s", s.Up, s.Front, s.Hand)
}

// Original returns the convention the document's data is stored in.
func Original(gs *settings.GlobalSettings) System {
	return System{gs.OriginalUpVector(), gs.OriginalFrontVector(), gs.OriginalCoordinateSystem()}
}

// Target returns the convention the importer presents downstream.
func Target(gs *settings.GlobalSettings) System {
	return System{gs.UpVector(), gs.FrontVector(), gs.CoordinateSystem()}
}

// Basis holds the signed unit axes of a convention.
type Basis struct {
	Right, Up, Front mathutil.Vec3
}

// Matrix returns the basis as columns [Right Up Front].
func (b Basis) Matrix() mathutil.Mat3 {
	return mathutil.Mat3FromColumns(b.Right, b.Up, b.Front)
}

// fieldNames name the record fields a System was read from, for errors.
type fieldNames struct {
	up, front, hand string
}

var (
	targetFields   = fieldNames{"upVector", "frontVector", "coordinateSystem"}
	originalFields = fieldNames{"originalUpVector", "originalFrontVector", "originalCoordinateSystem"}
)

// Basis resolves the convention to its basis.
func (s System) Basis() (Basis, error) {
	return s.basis(targetFields)
}

func (s System) basis(f fieldNames) (Basis, error) {
	up, err := upIndex(s.Up)
	if err != nil {
		return Basis{}, configErr(f.up, s.Up.String(), err.Error())
	}
	front, err := frontIndex(up, s.Front)
	if err != nil {
		return Basis{}, configErr(f.front, s.Front.String(), err.Error())
	}
	if front == up {
		return Basis{}, configErr(f.up+"/"+f.front, s.Up.String()+"/"+s.Front.String(),
			"up and front resolve to the same axis")
	}

	var want float64
	switch s.Hand {
	case settings.RightHand:
		want = 1
	case settings.LeftHand:
		want = -1
	default:
		return Basis{}, configErr(f.hand, s.Hand.String(), "not a known handedness")
	}

	b := Basis{Up: unit(up), Front: unit(front)}
	b.Right = b.Up.Cross(b.Front).Scale(want)
	return b, nil
}

func upIndex(u settings.UpVector) (int, error) {
	switch u {
	case settings.X:
		return 0, nil
	case settings.Y:
		return 1, nil
	case settings.Z:
		return 2, nil
	}
	return 0, errors.New("not an axis")
}

func frontIndex(up int, p settings.FrontVector) (int, error) {
	switch p {
	case settings.Even:
		switch up {
		case 0:
			return 1, nil
		case 1, 2:
			return 0, nil
		}
	case settings.Odd:
		switch up {
		case 0, 1:
			return 2, nil
		case 2:
			return 1, nil
		}
	default:
		return 0, errors.New("not a known parity")
	}
	return 0, fmt.Errorf("no front axis for up index %d", up)
}

func unit(i int) mathutil.Vec3 {
	var v mathutil.Vec3
	v[i] = 1
	return v
}

var axisNames = [3]string{"X", "Y", "Z"}

// FromAxes decodes FBX integer axis metadata (UpAxis, FrontAxis, CoordAxis
// with their signs) into a System.
//
// The front sign is absorbed into the parity: a convention whose forward
// points down the negative axis maps to the same System, differing by
// HalfTurn about up. A negative up sign cannot be represented and is
// rejected.
func FromAxes(up, upSign, front, frontSign, coord, coordSign int) (System, error) {
	for _, a := range []struct {
		field string
		v     int
	}{{"UpAxis", up}, {"FrontAxis", front}, {"CoordAxis", coord}} {
		if a.v < 0 || a.v > 2 {
			return System{}, configErr(a.field, fmt.Sprint(a.v), "axis index must be 0, 1 or 2")
		}
	}
	for _, s := range []struct {
		field string
		v     int
	}{{"UpAxisSign", upSign}, {"FrontAxisSign", frontSign}, {"CoordAxisSign", coordSign}} {
		if s.v != 1 && s.v != -1 {
			return System{}, configErr(s.field, fmt.Sprint(s.v), "sign must be +1 or -1")
		}
	}
	if up == front {
		return System{}, configErr("UpAxis/FrontAxis", axisNames[up]+"/"+axisNames[front],
			"up and front resolve to the same axis")
	}
	if coord == up || coord == front {
		return System{}, configErr("CoordAxis", axisNames[coord],
			"coord axis must differ from up and front")
	}
	if upSign < 0 {
		return System{}, configErr("UpAxisSign", fmt.Sprint(upSign), "negative up axis is not supported")
	}

	var s System
	switch up {
	case 0:
		s.Up = settings.X
	case 1:
		s.Up = settings.Y
	case 2:
		s.Up = settings.Z
	}
	for _, p := range []settings.FrontVector{settings.Even, settings.Odd} {
		if i, _ := frontIndex(up, p); i == front {
			s.Front = p
		}
	}

	m := mathutil.Mat3FromColumns(
		unit(coord).Scale(sign(coordSign)),
		unit(up).Scale(sign(upSign)),
		unit(front).Scale(sign(frontSign)),
	)
	if m.Det() > 0 {
		s.Hand = settings.RightHand
	} else {
		s.Hand = settings.LeftHand
	}
	return s, nil
}

func sign(v int) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
