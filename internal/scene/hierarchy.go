package scene

import "fbx-scene-importer/internal/mathutil"

// Node is one transform in a parent-before-child node list.
// Parent < 0 marks a root.
type Node struct {
	Name   string
	Parent int
	Local  mathutil.Mat4
}

// WorldMatrices computes each node's world transform. root is composed into
// parentless nodes only, so children inherit it through the hierarchy and
// their local transforms keep their meaning.
// Nodes whose parent does not precede them are treated as roots.
func WorldMatrices(nodes []Node, root mathutil.Mat4) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(nodes))
	for i, n := range nodes {
		if n.Parent >= 0 && n.Parent < i {
			worlds[i] = mathutil.Mat4Mul(worlds[n.Parent], n.Local)
		} else {
			worlds[i] = mathutil.Mat4Mul(root, n.Local)
		}
	}
	return worlds
}

// ComposeRoot rewrites the local transform of every parentless node as
// root × local, in place.
func ComposeRoot(nodes []Node, root mathutil.Mat4) {
	if root.IsIdentity() {
		return
	}
	for i := range nodes {
		if nodes[i].Parent < 0 || nodes[i].Parent >= i {
			nodes[i].Local = mathutil.Mat4Mul(root, nodes[i].Local)
		}
	}
}

// ConjugateNodes rewrites every local transform as m × local × inv, in
// place. inv must be the inverse of m. With vertices baked by m, world
// positions come out as if m had been composed into the roots.
func ConjugateNodes(nodes []Node, m, inv mathutil.Mat4) {
	if m.IsIdentity() {
		return
	}
	for i := range nodes {
		nodes[i].Local = mathutil.Mat4Mul(mathutil.Mat4Mul(m, nodes[i].Local), inv)
	}
}

// BakeVertices transforms vertex positions in place.
func BakeVertices(verts [][3]float32, m mathutil.Mat4) {
	if m.IsIdentity() {
		return
	}
	for i := range verts {
		v := mathutil.Vec3{float64(verts[i][0]), float64(verts[i][1]), float64(verts[i][2])}
		t := m.MulPoint(v)
		verts[i] = [3]float32{float32(t[0]), float32(t[1]), float32(t[2])}
	}
}

// BakeNormals rotates normals in place by the rotation r, renormalizing them
// so a uniform scale folded into r does not leak into their length.
func BakeNormals(normals [][3]float32, r mathutil.Mat3) {
	if r.ApproxEqual(mathutil.Mat3Identity(), mathutil.Epsilon) {
		return
	}
	for i := range normals {
		v := mathutil.Vec3{float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2])}
		t := r.MulVec3(v)
		if l := t.Len(); l > 0 {
			t = t.Scale(1 / l)
		}
		normals[i] = [3]float32{float32(t[0]), float32(t[1]), float32(t[2])}
	}
}
