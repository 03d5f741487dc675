package blueprint

import (
	"fmt"
	"sort"

	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

// faceKey builds an order-insensitive identity for a face's vertex set.
func faceKey(verts []int64) string {
	sorted := append([]int64(nil), verts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := make([]byte, 0, len(sorted)*8)
	for _, v := range sorted {
		key = fmt.Appendf(key, "%d,", v)
	}
	return string(key)
}

// UnstructuredToPolygonal rewrites a single-shape unstructured topology
// in the explicitly-sized polytopal form: polygonal for 2D shapes,
// polyhedral (with a deduplicated polygonal subelements block) for 3D
// shapes. Topologies that are already polytopal are deep-copied.
func UnstructuredToPolygonal(topo *node.Node) *node.Node {
	s, ok := shape.ByName(topo.FetchString("elements/shape"))
	if !ok {
		node.Fatalf("unknown element shape %q", topo.FetchString("elements/shape"))
	}

	dest := node.New()
	if s.IsPoly() {
		dest.SetNode(topo)
		return dest
	}

	intKind := widestIntKind(topo)
	conn := node.As[int64](topo.FetchExisting("elements/connectivity")).Slice()
	numElems := int64(len(conn)) / int64(s.Indices)

	// copy everything but the elements block
	for _, c := range topo.Children() {
		if c.Name() != "elements" && c.Name() != "subelements" {
			dest.Fetch(c.Name()).SetNode(c)
		}
	}

	if s.Dim < 3 {
		// the polygonal topology inherits the implicit connectivity, and
		// with it the winding of the source
		dest.Fetch("elements/shape").SetString("polygonal")
		setIntSlice(dest.Fetch("elements/connectivity"), conn, intKind)
		sizes := make([]int64, numElems)
		for i := range sizes {
			sizes[i] = int64(s.Indices)
		}
		setIntSlice(dest.Fetch("elements/sizes"), sizes, intKind)
		GenerateOffsets(dest)
		return dest
	}

	// polyhedral: factor each cell into faces, deduplicating by
	// unordered vertex set so shared faces keep their first id
	dest.Fetch("elements/shape").SetString("polyhedral")

	var cellFaces []int64
	var faceConn []int64
	var faceSizes []int64
	faceIDs := map[string]int64{}

	faceVerts := make([]int64, 0, 8)
	for e := int64(0); e < numElems; e++ {
		base := e * int64(s.Indices)
		for _, face := range s.Faces {
			faceVerts = faceVerts[:0]
			for _, li := range face {
				faceVerts = append(faceVerts, conn[base+int64(li)])
			}
			key := faceKey(faceVerts)
			id, seen := faceIDs[key]
			if !seen {
				id = int64(len(faceSizes))
				faceIDs[key] = id
				faceSizes = append(faceSizes, int64(len(faceVerts)))
				faceConn = append(faceConn, faceVerts...)
			}
			cellFaces = append(cellFaces, id)
		}
	}

	setIntSlice(dest.Fetch("elements/connectivity"), cellFaces, intKind)
	cellSizes := make([]int64, numElems)
	for i := range cellSizes {
		cellSizes[i] = int64(len(s.Faces))
	}
	setIntSlice(dest.Fetch("elements/sizes"), cellSizes, intKind)

	dest.Fetch("subelements/shape").SetString("polygonal")
	setIntSlice(dest.Fetch("subelements/connectivity"), faceConn, intKind)
	setIntSlice(dest.Fetch("subelements/sizes"), faceSizes, intKind)

	GenerateOffsets(dest)
	return dest
}

// UnstructuredToPolytopal is the dimension-dispatching name for
// UnstructuredToPolygonal.
func UnstructuredToPolytopal(topo *node.Node) *node.Node {
	return UnstructuredToPolygonal(topo)
}
