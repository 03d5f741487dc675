// Package shape carries the element shape table used by the topology
// conversion and generation code: topological dimension, vertex arity,
// and the edge/face embeddings that factor a cell into its constituent
// lower-dimensional entities in a fixed, orientation-preserving order.
package shape

// Shape describes one element shape. Indices is the fixed vertex count
// per element, or 0 for the polygonal/polyhedral shapes whose arity is
// carried per element in the topology's sizes array.
type Shape struct {
	Name    string
	Dim     int
	Indices int
	// Edges lists each edge as an ordered local vertex pair.
	Edges [][2]int
	// Faces lists each face as an ordered local vertex loop, outward
	// oriented. Populated for 3D shapes only.
	Faces [][]int
}

var shapes = map[string]Shape{
	"point": {Name: "point", Dim: 0, Indices: 1},
	"line":  {Name: "line", Dim: 1, Indices: 2, Edges: [][2]int{{0, 1}}},
	"tri": {
		Name: "tri", Dim: 2, Indices: 3,
		Edges: [][2]int{{0, 1}, {1, 2}, {2, 0}},
	},
	"quad": {
		Name: "quad", Dim: 2, Indices: 4,
		Edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	},
	"tet": {
		Name: "tet", Dim: 3, Indices: 4,
		Edges: [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
		Faces: [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {2, 0, 3}},
	},
	"hex": {
		Name: "hex", Dim: 3, Indices: 8,
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
		Faces: [][]int{
			{0, 3, 2, 1}, {4, 5, 6, 7},
			{0, 1, 5, 4}, {1, 2, 6, 5},
			{2, 3, 7, 6}, {3, 0, 4, 7},
		},
	},
	"wedge": {
		Name: "wedge", Dim: 3, Indices: 6,
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 0},
			{3, 4}, {4, 5}, {5, 3},
			{0, 3}, {1, 4}, {2, 5},
		},
		Faces: [][]int{
			{0, 2, 1}, {3, 4, 5},
			{0, 1, 4, 3}, {1, 2, 5, 4}, {2, 0, 3, 5},
		},
	},
	"pyramid": {
		Name: "pyramid", Dim: 3, Indices: 5,
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{0, 4}, {1, 4}, {2, 4}, {3, 4},
		},
		Faces: [][]int{
			{0, 3, 2, 1},
			{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
		},
	},
	"polygonal":  {Name: "polygonal", Dim: 2},
	"polyhedral": {Name: "polyhedral", Dim: 3},
}

// ByName resolves a shape name.
func ByName(name string) (Shape, bool) {
	s, ok := shapes[name]
	return s, ok
}

// Names returns the full set of recognized shape names.
func Names() []string {
	return []string{
		"point", "line", "tri", "quad", "tet", "hex",
		"wedge", "pyramid", "polygonal", "polyhedral",
	}
}

// IsPoly reports whether the shape's arity is carried per element.
func (s Shape) IsPoly() bool { return s.Name == "polygonal" || s.Name == "polyhedral" }

// IsPolygonal reports whether the shape is the 2D variable-arity shape.
func (s Shape) IsPolygonal() bool { return s.Name == "polygonal" }

// IsPolyhedral reports whether the shape is the 3D face-indexed shape.
func (s Shape) IsPolyhedral() bool { return s.Name == "polyhedral" }

// ImplicitCellShape returns the cell shape of a regular grid of the
// given spatial dimension.
func ImplicitCellShape(dim int) string {
	switch dim {
	case 1:
		return "line"
	case 2:
		return "quad"
	case 3:
		return "hex"
	}
	return ""
}

// EntityShape returns the canonical single shape of dimension dim
// derived from cells of shape s: its faces' shape for dim 2, line for
// dim 1, point for dim 0, and s itself at its own dimension. Shapes
// with mixed face arities (wedge, pyramid) and poly shapes report
// "polygonal" at dimension 2.
func (s Shape) EntityShape(dim int) string {
	switch {
	case dim <= 0:
		return "point"
	case dim == 1:
		return "line"
	case dim == s.Dim:
		return s.Name
	case dim == 2:
		switch s.Name {
		case "tet":
			return "tri"
		case "hex":
			return "quad"
		default:
			return "polygonal"
		}
	}
	return ""
}
