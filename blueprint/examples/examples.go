// Package examples builds small conforming meshes used by tests, the
// command-line tool, and documentation. Basic returns a complete
// single-domain mesh tree with a coordset named "coords", a topology
// named "mesh", and an element-associated field named "field". Venn
// returns a single-domain mesh over coordset "coords" and topology
// "topo" with an "overlap" field; JuliaNestsetsSimple returns a
// two-domain mesh whose domains use coordset "coords", topology "topo",
// and an "iters" field.
package examples

import (
	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/node"
)

// Basic builds a regular grid mesh of the requested flavor. meshType is
// one of: uniform, rectilinear, structured, tris, quads, polygons,
// tets, hexs, polyhedra. npx/npy/npz are per-axis point counts; pass
// npz 0 for 2D flavors.
func Basic(meshType string, npx, npy, npz int64) *node.Node {
	mesh := node.New()
	cset := mesh.Fetch("coordsets/coords")
	topo := mesh.Fetch("topologies/mesh")

	uniformCoordset(cset, npx, npy, npz)

	switch meshType {
	case "uniform":
		topo.Fetch("type").SetString("uniform")
		topo.Fetch("coordset").SetString("coords")
	case "rectilinear":
		cset.SetNode(blueprint.CoordsetUniformToRectilinear(cset))
		topo.Fetch("type").SetString("rectilinear")
		topo.Fetch("coordset").SetString("coords")
	case "structured":
		tmp := node.New()
		tmpTopo := tmp.Fetch("topologies/tmp")
		tmpTopo.Fetch("type").SetString("uniform")
		tmpTopo.Fetch("coordset").SetString("coords")
		tmp.Fetch("coordsets/coords").SetNode(cset)
		newTopo, newCset := blueprint.TopologyToStructured(tmpTopo, "coords")
		topo.SetNode(newTopo)
		cset.SetNode(newCset)
	case "quads", "hexs", "tris", "tets", "polygons", "polyhedra":
		tmp := node.New()
		tmpTopo := tmp.Fetch("topologies/tmp")
		tmpTopo.Fetch("type").SetString("uniform")
		tmpTopo.Fetch("coordset").SetString("coords")
		tmp.Fetch("coordsets/coords").SetNode(cset)
		newTopo, newCset := blueprint.TopologyToUnstructured(tmpTopo, "coords")
		cset.SetNode(newCset)
		switch meshType {
		case "quads", "hexs":
			topo.SetNode(newTopo)
		case "tris":
			topo.SetNode(splitQuadsToTris(newTopo))
		case "tets":
			topo.SetNode(splitHexsToTets(newTopo))
		case "polygons", "polyhedra":
			topo.SetNode(blueprint.UnstructuredToPolytopal(mountTopo(newTopo, cset)))
		}
	default:
		node.Fatalf("unknown basic mesh type %q", meshType)
	}

	addElementField(mesh)
	return mesh
}

// mountTopo places a topology in a throwaway mesh so that coordset
// references resolve during conversion.
func mountTopo(topo, cset *node.Node) *node.Node {
	tmp := node.New()
	tmp.Fetch("coordsets/coords").SetNode(cset)
	tmp.Fetch("topologies/tmp").SetNode(topo)
	return tmp.FetchExisting("topologies/tmp")
}

func uniformCoordset(cset *node.Node, npx, npy, npz int64) {
	cset.Fetch("type").SetString("uniform")
	node.Set(cset.Fetch("dims/i"), npx)
	if npy > 0 {
		node.Set(cset.Fetch("dims/j"), npy)
	}
	if npz > 0 {
		node.Set(cset.Fetch("dims/k"), npz)
	}
	node.Set(cset.Fetch("origin/x"), 0.0)
	node.Set(cset.Fetch("spacing/dx"), 1.0)
	if npy > 0 {
		node.Set(cset.Fetch("origin/y"), 0.0)
		node.Set(cset.Fetch("spacing/dy"), 1.0)
	}
	if npz > 0 {
		node.Set(cset.Fetch("origin/z"), 0.0)
		node.Set(cset.Fetch("spacing/dz"), 1.0)
	}
}

// splitQuadsToTris halves every quad along its 0-2 diagonal.
func splitQuadsToTris(topo *node.Node) *node.Node {
	conn := node.As[int64](topo.FetchExisting("elements/connectivity")).Slice()
	out := make([]int64, 0, len(conn)/4*6)
	for base := 0; base < len(conn); base += 4 {
		a, b, c, d := conn[base], conn[base+1], conn[base+2], conn[base+3]
		out = append(out, a, b, c, a, c, d)
	}
	dest := node.New()
	dest.SetNode(topo)
	dest.FetchExisting("elements/shape").SetString("tri")
	node.SetSlice(dest.FetchExisting("elements/connectivity"), out)
	return dest
}

// splitHexsToTets splits every hex into the six tetrahedra sharing its
// 0-6 diagonal.
func splitHexsToTets(topo *node.Node) *node.Node {
	conn := node.As[int64](topo.FetchExisting("elements/connectivity")).Slice()
	tets := [][4]int{
		{0, 1, 2, 6}, {0, 2, 3, 6}, {0, 3, 7, 6},
		{0, 7, 4, 6}, {0, 4, 5, 6}, {0, 5, 1, 6},
	}
	out := make([]int64, 0, len(conn)/8*24)
	for base := 0; base < len(conn); base += 8 {
		for _, t := range tets {
			for _, li := range t {
				out = append(out, conn[base+li])
			}
		}
	}
	dest := node.New()
	dest.SetNode(topo)
	dest.FetchExisting("elements/shape").SetString("tet")
	node.SetSlice(dest.FetchExisting("elements/connectivity"), out)
	return dest
}

func addElementField(mesh *node.Node) {
	topo := mesh.FetchExisting("topologies/mesh")
	cset := mesh.FetchExisting("coordsets/coords")
	numElems := blueprint.TopologyLength(topo, cset)

	field := mesh.Fetch("fields/field")
	field.Fetch("association").SetString("element")
	field.Fetch("topology").SetString("mesh")
	vals := make([]float64, numElems)
	for i := range vals {
		vals[i] = float64(i)
	}
	node.SetSlice(field.Fetch("values"), vals)
}
