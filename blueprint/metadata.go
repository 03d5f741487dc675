package blueprint

import (
	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

// TopologyMetadata derives the full dimensional cascade of an
// unstructured topology: for each dimension k up to the topology's
// dimension D it holds the globally deduplicated k-entities, a local
// (per-occurrence, orientation-preserving) association table from each
// entity to its immediate constituents, a global association table for
// every dimension pair, and local-to-global id maps.
//
// Two k-entities are identified when their unordered vertex sets match;
// global ids follow first-encounter order, except points, whose global
// ids are the coordset vertex ids.
type TopologyMetadata struct {
	topo     *node.Node
	coordset *node.Node

	dim       int
	intKind   node.Kind
	floatKind node.Kind

	// global entities per dimension, as oriented vertex lists from their
	// first occurrence
	entities [4][][]int64
	dedup    [4]map[string]int64

	// local occurrences: le2ge maps local ids to global ids, and
	// localKids holds, per local entity of dimension d > 0, the ordered
	// local ids of its (d-1)-dimensional constituents
	le2ge     [4][]int64
	localKids [4][][]int64

	// globalAssoc[s][t] holds, per global s-entity, the ordered global
	// t-entity ids (s != t)
	globalAssoc [4][4][][]int64
}

// NewTopologyMetadata builds the cascade for an unstructured topology
// and its coordset. Non-unstructured input is fatal.
func NewTopologyMetadata(topo, coordset *node.Node) *TopologyMetadata {
	if topo.FetchString("type") != "unstructured" {
		node.Fatalf("topology metadata requires an unstructured topology, got %q",
			topo.FetchString("type"))
	}
	s, ok := shape.ByName(topo.FetchString("elements/shape"))
	if !ok {
		node.Fatalf("unknown element shape %q", topo.FetchString("elements/shape"))
	}

	md := &TopologyMetadata{
		topo:      topo,
		coordset:  coordset,
		dim:       s.Dim,
		intKind:   widestIntKind(topo, coordset),
		floatKind: widestFloatKind(topo, coordset),
	}
	for d := 0; d <= 3; d++ {
		md.dedup[d] = map[string]int64{}
	}

	// points take the coordset's numbering so that entity ids double as
	// coordinate indices
	numVerts := CoordsetLength(coordset)
	for v := int64(0); v < numVerts; v++ {
		md.entities[0] = append(md.entities[0], []int64{v})
		md.dedup[0][faceKey([]int64{v})] = v
	}

	md.build(s)
	md.deriveGlobalAssocs()
	return md
}

// Dim returns the topological dimension of the input cells.
func (md *TopologyMetadata) Dim() int { return md.dim }

// IntKind and FloatKind are the widest source kinds, used for emitted
// connectivity and coordinates.
func (md *TopologyMetadata) IntKind() node.Kind   { return md.intKind }
func (md *TopologyMetadata) FloatKind() node.Kind { return md.floatKind }

// Length returns the number of globally deduplicated entities of
// dimension d.
func (md *TopologyMetadata) Length(d int) int64 {
	return int64(len(md.entities[d]))
}

// TotalLength returns the summed global entity count over dimensions
// 0..Dim.
func (md *TopologyMetadata) TotalLength() int64 {
	var total int64
	for d := 0; d <= md.dim; d++ {
		total += md.Length(d)
	}
	return total
}

// LocalLength returns the number of local (per-occurrence) entities of
// dimension d; for d < Dim this counts every traversal path from the
// cells down to that dimension.
func (md *TopologyMetadata) LocalLength(d int) int64 {
	return int64(len(md.le2ge[d]))
}

// LocalToGlobal returns the local-to-global id map for dimension d.
func (md *TopologyMetadata) LocalToGlobal(d int) []int64 {
	return md.le2ge[d]
}

// LocalAssoc returns, for the local entity lid of dimension d, the
// ordered local ids of its (d-1)-dimensional constituents, retaining
// the entity's orientation.
func (md *TopologyMetadata) LocalAssoc(d int, lid int64) []int64 {
	return md.localKids[d][lid]
}

// GlobalAssoc returns the ordered global t-entity ids associated with
// the global s-entity gid: constituents when t < s, containing entities
// when t > s, and the entity itself when t == s.
func (md *TopologyMetadata) GlobalAssoc(s int, gid int64, t int) []int64 {
	if s == t {
		return []int64{gid}
	}
	return md.globalAssoc[s][t][gid]
}

// EntityVertices returns the oriented vertex list of a global entity.
func (md *TopologyMetadata) EntityVertices(d int, gid int64) []int64 {
	return md.entities[d][gid]
}

// register records one occurrence of a d-entity with the given oriented
// vertex list and child local ids, deduplicating into the global table.
func (md *TopologyMetadata) register(d int, verts, kids []int64) (lid, gid int64) {
	key := faceKey(verts)
	gid, seen := md.dedup[d][key]
	if !seen {
		gid = int64(len(md.entities[d]))
		md.dedup[d][key] = gid
		md.entities[d] = append(md.entities[d], append([]int64(nil), verts...))
	}
	lid = int64(len(md.le2ge[d]))
	md.le2ge[d] = append(md.le2ge[d], gid)
	md.localKids[d] = append(md.localKids[d], kids)
	return lid, gid
}

// registerLine adds a line occurrence and its two point occurrences.
func (md *TopologyMetadata) registerLine(a, b int64) int64 {
	pa, _ := md.register(0, []int64{a}, nil)
	pb, _ := md.register(0, []int64{b}, nil)
	lid, _ := md.register(1, []int64{a, b}, []int64{pa, pb})
	return lid
}

// registerFace adds a face occurrence (an oriented vertex ring), its
// line occurrences, and their points.
func (md *TopologyMetadata) registerFace(ring []int64) int64 {
	kids := make([]int64, len(ring))
	for i := range ring {
		kids[i] = md.registerLine(ring[i], ring[(i+1)%len(ring)])
	}
	lid, _ := md.register(2, ring, kids)
	return lid
}

func (md *TopologyMetadata) build(s shape.Shape) {
	elements := md.topo.FetchExisting("elements")
	conn := node.As[int64](elements.FetchExisting("connectivity")).Slice()

	var sizes, offsets []int64
	if s.IsPoly() {
		sizes = node.As[int64](elements.FetchExisting("sizes")).Slice()
		offsets = make([]int64, len(sizes))
		var cursor int64
		if elements.HasChild("offsets") {
			offsets = node.As[int64](elements.ChildByName("offsets")).Slice()
		} else {
			for i, sz := range sizes {
				offsets[i] = cursor
				cursor += sz
			}
		}
	}

	var subConn, subSizes, subOffsets []int64
	if s.IsPolyhedral() {
		sub := md.topo.FetchExisting("subelements")
		subConn = node.As[int64](sub.FetchExisting("connectivity")).Slice()
		subSizes = node.As[int64](sub.FetchExisting("sizes")).Slice()
		if sub.HasChild("offsets") {
			subOffsets = node.As[int64](sub.ChildByName("offsets")).Slice()
		} else {
			subOffsets = make([]int64, len(subSizes))
			var cursor int64
			for i, sz := range subSizes {
				subOffsets[i] = cursor
				cursor += sz
			}
		}
	}

	numElems := TopologyLength(md.topo, md.coordset)
	for e := int64(0); e < numElems; e++ {
		switch {
		case s.Dim == 1:
			base := e * int64(s.Indices)
			md.registerLine(conn[base], conn[base+1])
		case s.IsPolygonal():
			md.registerFace(conn[offsets[e] : offsets[e]+sizes[e]])
		case s.IsPolyhedral():
			faceIDs := conn[offsets[e] : offsets[e]+sizes[e]]
			rings := make([][]int64, len(faceIDs))
			for i, f := range faceIDs {
				rings[i] = subConn[subOffsets[f] : subOffsets[f]+subSizes[f]]
			}
			md.registerCell3D(rings)
		case s.Dim == 2:
			base := e * int64(s.Indices)
			md.registerFace(conn[base : base+int64(s.Indices)])
		default: // fixed 3D shape
			base := e * int64(s.Indices)
			rings := make([][]int64, len(s.Faces))
			for i, face := range s.Faces {
				ring := make([]int64, len(face))
				for j, li := range face {
					ring[j] = conn[base+int64(li)]
				}
				rings[i] = ring
			}
			md.registerCell3D(rings)
		}
	}
}

func (md *TopologyMetadata) registerCell3D(rings [][]int64) {
	kids := make([]int64, len(rings))
	verts := make([]int64, 0, 8)
	seen := roaring64.NewBitmap()
	for i, ring := range rings {
		kids[i] = md.registerFace(ring)
		for _, v := range ring {
			if !seen.Contains(uint64(v)) {
				seen.Add(uint64(v))
				verts = append(verts, v)
			}
		}
	}
	md.register(3, verts, kids)
}

// deriveGlobalAssocs fills the global association tables from the local
// cascade: first each dimension's immediate constituents from the first
// occurrence of each global entity, then transitive closures, then
// transposes.
func (md *TopologyMetadata) deriveGlobalAssocs() {
	// immediate constituents (s -> s-1), from first occurrences
	firstSeen := [4][]bool{}
	for d := 1; d <= md.dim; d++ {
		firstSeen[d] = make([]bool, len(md.entities[d]))
		md.globalAssoc[d][d-1] = make([][]int64, len(md.entities[d]))
		for lid, gid := range md.le2ge[d] {
			if firstSeen[d][gid] {
				continue
			}
			firstSeen[d][gid] = true
			kids := md.localKids[d][lid]
			gkids := make([]int64, len(kids))
			for i, k := range kids {
				gkids[i] = md.le2ge[d-1][k]
			}
			md.globalAssoc[d][d-1][gid] = gkids
		}
	}

	// transitive constituents (s -> t, t < s-1), deduplicated in
	// first-encounter order
	for s := 2; s <= md.dim; s++ {
		for t := s - 2; t >= 0; t-- {
			md.globalAssoc[s][t] = make([][]int64, len(md.entities[s]))
			for gid := range md.entities[s] {
				seen := roaring64.NewBitmap()
				var out []int64
				for _, mid := range md.globalAssoc[s][s-1][gid] {
					for _, low := range md.globalAssoc[s-1][t][mid] {
						if !seen.Contains(uint64(low)) {
							seen.Add(uint64(low))
							out = append(out, low)
						}
					}
				}
				md.globalAssoc[s][t][int64(gid)] = out
			}
		}
	}

	// transposes (t -> s, t < s)
	for s := 1; s <= md.dim; s++ {
		for t := 0; t < s; t++ {
			md.globalAssoc[t][s] = make([][]int64, len(md.entities[t]))
			for gid, kids := range md.globalAssoc[s][t] {
				for _, k := range kids {
					md.globalAssoc[t][s][k] = append(md.globalAssoc[t][s][k], int64(gid))
				}
			}
		}
	}
}

// EmbedLength returns the number of distinct traversal paths from the
// s-dimensional cells down to dimension t, counting multiplicity; for
// t == s it is the global cell count.
func (md *TopologyMetadata) EmbedLength(s, t int) int64 {
	if t == s {
		return md.Length(s)
	}
	return md.LocalLength(t)
}

// DimTopo emits the unstructured topology whose elements are the global
// d-entities, referencing the same coordset as the input by name.
func (md *TopologyMetadata) DimTopo(d int) *node.Node {
	dest := node.New()
	dest.Fetch("type").SetString("unstructured")
	dest.Fetch("coordset").SetString(md.topo.FetchString("coordset"))

	var shapeName string
	if inShape, _ := shape.ByName(md.topo.FetchString("elements/shape")); d == inShape.Dim {
		shapeName = inShape.Name
	} else {
		shapeName = inShape.EntityShape(d)
	}
	dest.Fetch("elements/shape").SetString(shapeName)

	var conn []int64
	var sizes []int64
	for _, verts := range md.entities[d] {
		conn = append(conn, verts...)
		sizes = append(sizes, int64(len(verts)))
	}
	setIntSlice(dest.Fetch("elements/connectivity"), conn, md.intKind)

	s, _ := shape.ByName(shapeName)
	if s.IsPoly() {
		setIntSlice(dest.Fetch("elements/sizes"), sizes, md.intKind)
		GenerateOffsets(dest)
	}
	if s.IsPolyhedral() {
		// polyhedral cells pass through unchanged from the input
		dest.Reset()
		dest.SetNode(md.topo)
	}
	return dest
}
