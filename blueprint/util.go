package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/internal/o2m"
	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

// logicalAxes are the grid index axes, in order.
var logicalAxes = []string{"i", "j", "k"}

// coordinateAxes are the recognized coordinate axis names across the
// cartesian, cylindrical, and spherical systems.
var coordinateAxes = []string{"x", "y", "z", "r", "theta", "phi"}

var coordTypes = []string{"uniform", "rectilinear", "explicit"}
var coordSystems = []string{"cartesian", "cylindrical", "spherical"}
var topoTypes = []string{"points", "uniform", "rectilinear", "structured", "unstructured"}
var associations = []string{"vertex", "element"}
var nestsetTypes = []string{"parent", "child"}

// CoordsetAxes returns the coordinate axis names of a coordset in
// declaration order.
func CoordsetAxes(coordset *node.Node) []string {
	if coordset.HasChild("values") {
		return coordset.ChildByName("values").ChildNames()
	}
	// uniform: prefer explicit origin/spacing names, else derive from
	// the dims count
	if coordset.HasChild("origin") {
		return coordset.ChildByName("origin").ChildNames()
	}
	if coordset.HasChild("spacing") {
		names := coordset.ChildByName("spacing").ChildNames()
		axes := make([]string, len(names))
		for i, n := range names {
			if len(n) > 1 && n[0] == 'd' {
				n = n[1:]
			}
			axes[i] = n
		}
		return axes
	}
	ndims := 0
	if coordset.HasChild("dims") {
		ndims = coordset.ChildByName("dims").NumChildren()
	}
	return []string{"x", "y", "z"}[:ndims]
}

// CoordsetDims returns the spatial dimension of a coordset.
func CoordsetDims(coordset *node.Node) int {
	return len(CoordsetAxes(coordset))
}

// CoordsetLength returns the number of vertices a coordset describes.
func CoordsetLength(coordset *node.Node) int64 {
	switch coordset.FetchString("type") {
	case "uniform":
		length := int64(1)
		for _, d := range coordset.FetchExisting("dims").Children() {
			length *= node.As[int64](d).At(0)
		}
		return length
	case "rectilinear":
		length := int64(1)
		for _, axis := range coordset.FetchExisting("values").Children() {
			length *= axis.DType().NumElements
		}
		return length
	default: // explicit
		values := coordset.FetchExisting("values")
		if values.NumChildren() == 0 {
			return 0
		}
		return values.Child(0).DType().NumElements
	}
}

// CoordsetSystem returns the coordinate system implied by a coordset's
// axis names.
func CoordsetSystem(coordset *node.Node) string {
	axes := CoordsetAxes(coordset)
	for _, a := range axes {
		switch a {
		case "theta", "phi":
			return "spherical"
		case "r":
			// r alone (with z) is cylindrical; with theta/phi the loop
			// above already decided spherical
			continue
		}
	}
	for _, a := range axes {
		if a == "r" {
			return "cylindrical"
		}
	}
	return "cartesian"
}

// TopologyDims returns the topological dimension of a topology.
func TopologyDims(topo, coordset *node.Node) int {
	if topo.FetchString("type") == "unstructured" {
		if s, ok := shape.ByName(topo.FetchString("elements/shape")); ok {
			return s.Dim
		}
		return 0
	}
	return CoordsetDims(coordset)
}

// TopologyLength returns the number of elements a topology describes.
// Implicit topologies need their referenced coordset for the count;
// unstructured ones do not.
func TopologyLength(topo, coordset *node.Node) int64 {
	switch topo.FetchString("type") {
	case "points":
		return CoordsetLength(coordset)
	case "uniform":
		length := int64(1)
		for _, d := range coordset.FetchExisting("dims").Children() {
			if n := node.As[int64](d).At(0); n > 1 {
				length *= n - 1
			}
		}
		return length
	case "rectilinear":
		length := int64(1)
		for _, axis := range coordset.FetchExisting("values").Children() {
			if n := axis.DType().NumElements; n > 1 {
				length *= n - 1
			}
		}
		return length
	case "structured":
		length := int64(1)
		for _, d := range topo.FetchExisting("elements/dims").Children() {
			length *= node.As[int64](d).At(0)
		}
		return length
	default: // unstructured
		elements := topo.FetchExisting("elements")
		s, _ := shape.ByName(elements.FetchString("shape"))
		if s.IsPoly() {
			return elements.FetchExisting("sizes").DType().NumElements
		}
		return elements.FetchExisting("connectivity").DType().NumElements / int64(s.Indices)
	}
}

// findReferenceCoordset resolves a topology's coordset by name within
// the enclosing mesh tree. Resolution failure is fatal; converters
// require conforming input.
func findReferenceCoordset(topo *node.Node) *node.Node {
	name := topo.FetchString("coordset")
	mesh := topo.Parent()
	if mesh != nil {
		mesh = mesh.Parent()
	}
	if mesh == nil || !mesh.HasPath("coordsets/"+name) {
		node.Fatalf("topology %q references missing coordset %q", topo.Name(), name)
	}
	return mesh.FetchExisting("coordsets/" + name)
}

// widestIntKind returns the widest integer leaf kind found under the
// given nodes, or int32 when none carries an integer leaf.
func widestIntKind(nodes ...*node.Node) node.Kind {
	best := node.Kind(node.Empty)
	var bestBytes int64
	for _, n := range nodes {
		node.Walk(n, func(_ string, c *node.Node) error {
			k := c.Kind()
			if k.IsInteger() && k.ElementBytes() > bestBytes {
				best, bestBytes = k, k.ElementBytes()
			}
			return nil
		})
	}
	if best == node.Empty {
		return node.Int32
	}
	return best
}

// widestFloatKind returns the widest floating-point leaf kind found
// under the given nodes, or float64 when none carries a float leaf.
func widestFloatKind(nodes ...*node.Node) node.Kind {
	best := node.Kind(node.Empty)
	var bestBytes int64
	for _, n := range nodes {
		node.Walk(n, func(_ string, c *node.Node) error {
			k := c.Kind()
			if k.IsFloat() && k.ElementBytes() > bestBytes {
				best, bestBytes = k, k.ElementBytes()
			}
			return nil
		})
	}
	if best == node.Empty {
		return node.Float64
	}
	return best
}

// setIntSlice writes vals into dst converted to kind k.
func setIntSlice(dst *node.Node, vals []int64, k node.Kind) {
	tmp := node.New()
	node.SetSlice(tmp, vals)
	tmp.ToKindInto(k, dst)
}

// setFloatSlice writes vals into dst converted to kind k.
func setFloatSlice(dst *node.Node, vals []float64, k node.Kind) {
	tmp := node.New()
	node.SetSlice(tmp, vals)
	tmp.ToKindInto(k, dst)
}

// GenerateOffsets fills an unstructured topology's elements/offsets
// (and, for polyhedral topologies, subelements/offsets) from the
// corresponding sizes, creating sizes first for fixed-arity shapes that
// lack them.
func GenerateOffsets(topo *node.Node) {
	elements := topo.FetchExisting("elements")
	ensureSizes(elements)
	o2m.GenerateOffsets(elements)
	if topo.HasChild("subelements") {
		sub := topo.ChildByName("subelements")
		ensureSizes(sub)
		o2m.GenerateOffsets(sub)
	}
}

func ensureSizes(elements *node.Node) {
	if elements.HasChild("sizes") {
		return
	}
	s, ok := shape.ByName(elements.FetchString("shape"))
	if !ok || s.IsPoly() {
		node.Fatalf("cannot derive sizes for shape %q without an explicit sizes array",
			elements.FetchString("shape"))
	}
	count := elements.FetchExisting("connectivity").DType().NumElements / int64(s.Indices)
	sizes := make([]int64, count)
	for i := range sizes {
		sizes[i] = int64(s.Indices)
	}
	setIntSlice(elements.Fetch("sizes"), sizes, elements.FetchExisting("connectivity").Kind())
}
