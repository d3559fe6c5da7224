// Package axis derives the correction transform between the convention an FBX
// document was stored in and the convention the importer presents.
//
// A convention is an up axis, a front parity and a handedness. Its basis is the
// triple (Right, Up, Front) of signed unit axes:
//
//	up X: Even front = Y, Odd front = Z
//	up Y: Even front = X, Odd front = Z
//	up Z: Even front = X, Odd front = Y
//
// Right is the remaining axis, signed so det[Right Up Front] is +1 for a
// right-handed system and -1 for a left-handed one.
//
// The correction maps a point in source units and source axes to target units
// and target axes: p' = s·R·p with R = T·Oᵀ and
// s = originalScaleFactor / unitScaleFactor.
package axis
