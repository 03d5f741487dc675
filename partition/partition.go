package partition

import (
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"

	"github.com/robert-malhotra/go-meshdata/blueprint"
	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

// logger receives per-phase progress at debug level; the default
// discards. Install a real logger with SetLogger.
var logger = charmlog.New(io.Discard)

// SetLogger installs the logger used for driver progress reporting.
// Passing nil restores the discarding default.
func SetLogger(l *charmlog.Logger) {
	if l == nil {
		l = charmlog.New(io.Discard)
	}
	logger = l
}

// domainInfo caches the per-domain nodes the driver revisits.
type domainInfo struct {
	dom      *node.Node
	topo     *node.Node
	coordset *node.Node
	numEles  int64
	numVerts int64
}

// collectDomains gathers the local domains carrying the chosen
// topology, with their element and vertex counts.
func collectDomains(mesh *node.Node, topoName string) []domainInfo {
	var out []domainInfo
	if mesh.Kind() == node.Empty {
		return out
	}
	for _, dom := range blueprint.Domains(mesh) {
		if !dom.HasPath("topologies/" + topoName) {
			continue
		}
		topo := dom.FetchExisting("topologies/" + topoName)
		cset := dom.FetchExisting("coordsets/" + topo.FetchString("coordset"))
		out = append(out, domainInfo{
			dom:      dom,
			topo:     topo,
			coordset: cset,
			numEles:  blueprint.TopologyLength(topo, cset),
			numVerts: blueprint.CoordsetLength(cset),
		})
	}
	return out
}

// resolveTopologyName applies the "topology" option or falls back to
// the first topology of the first local domain.
func resolveTopologyName(mesh *node.Node, opts options) string {
	if opts.hasTopology {
		return opts.topology
	}
	if mesh.Kind() != node.Empty {
		for _, dom := range blueprint.Domains(mesh) {
			if dom.HasChild("topologies") && dom.ChildByName("topologies").NumChildren() > 0 {
				return dom.ChildByName("topologies").Child(0).Name()
			}
		}
	}
	return ""
}

// globalSum sums a per-rank contribution across all workers using the
// max reduction: each rank deposits its value at its own slot, the
// reduction fills every slot, and the slots are summed.
func globalSum(tr Transport, value int64) (total int64, perRank []int64, err error) {
	local := make([]int64, tr.Size())
	global := make([]int64, tr.Size())
	local[tr.Rank()] = value
	if err := tr.MaxAllReduceInt64(local, global); err != nil {
		return 0, nil, fmt.Errorf("max reduction: %w", err)
	}
	for _, v := range global {
		total += v
	}
	return total, global, nil
}

// exclusivePrefix returns the sum of perRank below rank.
func exclusivePrefix(perRank []int64, rank int) int64 {
	var offset int64
	for i := 0; i < rank; i++ {
		offset += perRank[i]
	}
	return offset
}

// GenerateGlobalIDs writes `{prefix}global_vertex_ids` and
// `{prefix}global_element_ids` int64 fields onto every local domain
// carrying the chosen topology, numbering vertices and elements
// contiguously across all workers. A globally empty mesh is a silent
// no-op.
func GenerateGlobalIDs(mesh, optsNode *node.Node, tr Transport) error {
	opts := parseOptions(optsNode)
	return generateGlobalIDs(mesh, opts, tr)
}

func generateGlobalIDs(mesh *node.Node, opts options, tr Transport) error {
	globalDoms, _, err := globalSum(tr, int64(localDomainCount(mesh)))
	if err != nil {
		return err
	}
	if globalDoms == 0 {
		return nil
	}

	topoName := resolveTopologyName(mesh, opts)
	domains := collectDomains(mesh, topoName)

	var localVerts, localEles int64
	vertOffsets := make([]int64, len(domains))
	eleOffsets := make([]int64, len(domains))
	for i, di := range domains {
		vertOffsets[i] = localVerts
		eleOffsets[i] = localEles
		localVerts += di.numVerts
		localEles += di.numEles
	}

	_, vertsPerRank, err := globalSum(tr, localVerts)
	if err != nil {
		return err
	}
	_, elesPerRank, err := globalSum(tr, localEles)
	if err != nil {
		return err
	}
	vertBase := exclusivePrefix(vertsPerRank, tr.Rank())
	eleBase := exclusivePrefix(elesPerRank, tr.Rank())

	logger.Debug("assigned global id bases",
		"rank", tr.Rank(), "vert_base", vertBase, "ele_base", eleBase)

	for i, di := range domains {
		verts := di.dom.Fetch("fields").Fetch(opts.fieldPrefix + "global_vertex_ids")
		verts.Fetch("association").SetString("vertex")
		verts.Fetch("topology").SetString(topoName)
		vertIDs := make([]int64, di.numVerts)
		base := vertBase + vertOffsets[i]
		for v := range vertIDs {
			vertIDs[v] = base + int64(v)
		}
		node.SetSlice(verts.Fetch("values"), vertIDs)

		eles := di.dom.Fetch("fields").Fetch(opts.fieldPrefix + "global_element_ids")
		eles.Fetch("association").SetString("element")
		eles.Fetch("topology").SetString(topoName)
		eleIDs := make([]int64, di.numEles)
		ebase := eleBase + eleOffsets[i]
		for e := range eleIDs {
			eleIDs[e] = ebase + int64(e)
		}
		node.SetSlice(eles.Fetch("values"), eleIDs)
	}
	return nil
}

func localDomainCount(mesh *node.Node) int {
	if mesh.Kind() == node.Empty {
		return 0
	}
	return blueprint.NumberOfDomains(mesh)
}

// elementVertexLists returns, per element of a domain's topology, the
// list of local vertex ids, walking {sizes, connectivity} as a
// one-to-many relation for unstructured topologies and using implicit
// index math for the structured families.
func elementVertexLists(di domainInfo) [][]int64 {
	topo := di.topo
	switch topo.FetchString("type") {
	case "points":
		n := blueprint.CoordsetLength(di.coordset)
		lists := make([][]int64, n)
		for i := int64(0); i < n; i++ {
			lists[i] = []int64{i}
		}
		return lists
	case "unstructured":
		return unstructuredVertexLists(topo)
	default:
		converted, _ := blueprint.TopologyToUnstructured(topo, topo.FetchString("coordset"))
		return fixedArityVertexLists(converted)
	}
}

func unstructuredVertexLists(topo *node.Node) [][]int64 {
	elements := topo.FetchExisting("elements")
	if elements.HasChild("sizes") {
		conn := node.As[int64](elements.FetchExisting("connectivity")).Slice()
		sizes := node.As[int64](elements.FetchExisting("sizes")).Slice()
		lists := make([][]int64, len(sizes))
		// polyhedral connectivity indexes faces, not vertices; resolve
		// each cell's vertex set through the subelements
		if elements.FetchString("shape") == "polyhedral" {
			return polyhedralVertexLists(topo, conn, sizes)
		}
		var cursor int64
		for i, sz := range sizes {
			lists[i] = conn[cursor : cursor+sz]
			cursor += sz
		}
		return lists
	}
	return fixedArityVertexLists(topo)
}

func polyhedralVertexLists(topo *node.Node, conn, sizes []int64) [][]int64 {
	sub := topo.FetchExisting("subelements")
	subConn := node.As[int64](sub.FetchExisting("connectivity")).Slice()
	subSizes := node.As[int64](sub.FetchExisting("sizes")).Slice()
	subOffsets := make([]int64, len(subSizes))
	var cursor int64
	for i, sz := range subSizes {
		subOffsets[i] = cursor
		cursor += sz
	}

	lists := make([][]int64, len(sizes))
	var off int64
	for e, sz := range sizes {
		seen := map[int64]bool{}
		var verts []int64
		for _, f := range conn[off : off+sz] {
			for _, v := range subConn[subOffsets[f] : subOffsets[f]+subSizes[f]] {
				if !seen[v] {
					seen[v] = true
					verts = append(verts, v)
				}
			}
		}
		lists[e] = verts
		off += sz
	}
	return lists
}

func fixedArityVertexLists(topo *node.Node) [][]int64 {
	conn := node.As[int64](topo.FetchExisting("elements/connectivity")).Slice()
	s, ok := shape.ByName(topo.FetchString("elements/shape"))
	if !ok || s.IsPoly() || s.Indices == 0 {
		node.Fatalf("shape %q has no fixed arity", topo.FetchString("elements/shape"))
	}
	arity := int64(s.Indices)
	lists := make([][]int64, int64(len(conn))/arity)
	for i := range lists {
		base := int64(i) * arity
		lists[i] = conn[base : base+arity]
	}
	return lists
}

// GeneratePartitionField assigns every element across all workers to
// one of N partitions and writes the assignment back to each domain as
// an integer `{prefix}parmetis_result` element field. A globally empty
// mesh is a silent no-op; a topology present on no rank is fatal.
func GeneratePartitionField(mesh, optsNode *node.Node, tr Transport, p Partitioner) error {
	opts := parseOptions(optsNode)

	if err := generateGlobalIDs(mesh, opts, tr); err != nil {
		return err
	}

	globalDoms, _, err := globalSum(tr, int64(localDomainCount(mesh)))
	if err != nil {
		return err
	}
	if globalDoms == 0 {
		return nil
	}

	topoName := resolveTopologyName(mesh, opts)
	domains := collectDomains(mesh, topoName)

	globalWithTopo, _, err := globalSum(tr, int64(len(domains)))
	if err != nil {
		return err
	}
	if globalWithTopo == 0 {
		node.Fatalf("topology %q is not present on any rank", topoName)
	}

	nparts := globalDoms
	if opts.hasPartitions {
		nparts = opts.partitions
	}
	ncommon := int64(0)
	if opts.hasNcommon {
		ncommon = opts.ncommonNodes
	} else if len(domains) > 0 {
		// zones are adjacent when they share an edge (2D) or a plane
		// (3D); 1D coordsets yield 1, which the partitioner accepts
		ncommon = int64(blueprint.CoordsetDims(domains[0].coordset))
	}
	if ncommon == 0 {
		ncommon = 1
	}

	// per-element vertex lists across all local domains, with vertex
	// ids lifted to the global numbering
	var localEles int64
	var eptr, eind []Idx
	eptr = append(eptr, 0)
	for _, di := range domains {
		globalVerts := node.As[int64](di.dom.FetchExisting(
			"fields/" + opts.fieldPrefix + "global_vertex_ids/values"))
		for _, verts := range elementVertexLists(di) {
			for _, v := range verts {
				eind = append(eind, Idx(globalVerts.At(v)))
			}
			eptr = append(eptr, Idx(len(eind)))
			localEles++
		}
	}

	// eldist: exclusive prefix over the per-rank element counts
	_, elesPerRank, err := globalSum(tr, localEles)
	if err != nil {
		return err
	}
	eldist := make([]Idx, tr.Size()+1)
	for i := 0; i < tr.Size(); i++ {
		eldist[i+1] = eldist[i] + Idx(elesPerRank[i])
	}

	tpwgts := make([]Real, nparts)
	for i := range tpwgts {
		tpwgts[i] = 1.0 / Real(nparts)
	}
	const ubvec = 1.05

	logger.Debug("invoking partitioner",
		"rank", tr.Rank(), "local_elements", localEles,
		"nparts", nparts, "ncommonnodes", ncommon)

	part, edgecut, err := p.PartMeshKway(eldist, eptr, eind, Idx(ncommon), Idx(nparts), tpwgts, ubvec)
	if err != nil {
		return fmt.Errorf("partitioner invocation: %w", err)
	}
	if int64(len(part)) != localEles {
		node.Fatalf("partitioner returned %d assignments for %d local elements", len(part), localEles)
	}
	logger.Debug("partitioner finished", "rank", tr.Rank(), "edgecut", edgecut)

	// writeback: slice the assignment per domain, in walk order
	cursor := int64(0)
	for _, di := range domains {
		field := di.dom.Fetch("fields").Fetch(opts.fieldPrefix + "parmetis_result")
		field.Fetch("association").SetString("element")
		field.Fetch("topology").SetString(topoName)
		vals := make([]int64, di.numEles)
		for i := range vals {
			vals[i] = int64(part[cursor])
			cursor++
		}
		node.SetSlice(field.Fetch("values"), vals)
	}
	return nil
}
