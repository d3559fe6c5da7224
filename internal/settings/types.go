package settings

import (
	"fmt"
	"strings"
)

// UpVector selects the axis treated as up.
type UpVector int

const (
	X UpVector = iota
	Y
	Z
)

// FrontVector selects which of the two non-up axes is forward.
// Once the up axis is fixed, Odd and Even pick between the two remaining axes.
type FrontVector int

const (
	Odd FrontVector = iota
	Even
)

// CoordinateSystem is the handedness of a convention.
type CoordinateSystem int

const (
	LeftHand CoordinateSystem = iota
	RightHand
)

func (u UpVector) String() string {
	switch u {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("UpVector(%d)", int(u))
	}
}

func (f FrontVector) String() string {
	switch f {
	case Odd:
		return "Odd"
	case Even:
		return "Even"
	default:
		return fmt.Sprintf("FrontVector(%d)", int(f))
	}
}

func (c CoordinateSystem) String() string {
	switch c {
	case LeftHand:
		return "LeftHand"
	case RightHand:
		return "RightHand"
	default:
		return fmt.Sprintf("CoordinateSystem(%d)", int(c))
	}
}

// ParseUpVector accepts "x", "y" or "z" (case-insensitive).
func ParseUpVector(s string) (UpVector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return 0, fmt.Errorf("settings: unknown up vector %q", s)
}

// ParseFrontVector accepts "odd" or "even" (case-insensitive).
func ParseFrontVector(s string) (FrontVector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "odd":
		return Odd, nil
	case "even":
		return Even, nil
	}
	return 0, fmt.Errorf("settings: unknown front vector %q", s)
}

// ParseCoordinateSystem accepts "left", "lefthand", "right" or "righthand".
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "lefthand", "left-hand", "lh":
		return LeftHand, nil
	case "right", "righthand", "right-hand", "rh":
		return RightHand, nil
	}
	return 0, fmt.Errorf("settings: unknown coordinate system %q", s)
}
