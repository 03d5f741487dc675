package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/node"
)

// o2mFromLists packs a list-of-lists relation into the one-to-many
// {values, sizes, offsets} encoding with the given integer kind.
func o2mFromLists(lists [][]int64, kind node.Kind) *node.Node {
	var values []int64
	sizes := make([]int64, len(lists))
	offsets := make([]int64, len(lists))
	var cursor int64
	for i, l := range lists {
		sizes[i] = int64(len(l))
		offsets[i] = cursor
		cursor += int64(len(l))
		values = append(values, l...)
	}
	dest := node.New()
	setIntSlice(dest.Fetch("values"), values, kind)
	setIntSlice(dest.Fetch("sizes"), sizes, kind)
	setIntSlice(dest.Fetch("offsets"), offsets, kind)
	return dest
}

// identityO2M builds the 1:1 relation over n entries.
func identityO2M(n int64, kind node.Kind) *node.Node {
	lists := make([][]int64, n)
	for i := int64(0); i < n; i++ {
		lists[i] = []int64{i}
	}
	return o2mFromLists(lists, kind)
}

// globalAssocO2M packs the global association (s -> t) of every
// s-entity into a relation node.
func globalAssocO2M(md *TopologyMetadata, s, t int) *node.Node {
	n := md.Length(s)
	lists := make([][]int64, n)
	for gid := int64(0); gid < n; gid++ {
		lists[gid] = md.GlobalAssoc(s, gid, t)
	}
	return o2mFromLists(lists, md.IntKind())
}

// generateDimTopo is the shared body of GeneratePoints, GenerateLines,
// and GenerateFaces: the pass-through of the metadata's entity topology
// at one dimension, plus source<->derived maps.
func generateDimTopo(topo *node.Node, dim int) (dest, s2d, d2s *node.Node) {
	coordset := findReferenceCoordset(topo)
	md := NewTopologyMetadata(topo, coordset)
	dest = md.DimTopo(dim)
	s2d = globalAssocO2M(md, md.Dim(), dim)
	d2s = globalAssocO2M(md, dim, md.Dim())
	return dest, s2d, d2s
}

// GeneratePoints emits the point topology of an unstructured topology
// along with cell->point (s2d) and point->cell (d2s) relations.
func GeneratePoints(topo *node.Node) (dest, s2d, d2s *node.Node) {
	return generateDimTopo(topo, 0)
}

// GenerateLines emits the deduplicated edge topology along with
// cell->edge and edge->cell relations.
func GenerateLines(topo *node.Node) (dest, s2d, d2s *node.Node) {
	return generateDimTopo(topo, 1)
}

// GenerateFaces emits the deduplicated face topology along with
// cell->face and face->cell relations.
func GenerateFaces(topo *node.Node) (dest, s2d, d2s *node.Node) {
	return generateDimTopo(topo, 2)
}

// GenerateCentroids emits a points topology holding one centroid vertex
// per cell, its explicit coordset (mounted by the caller under
// coordsetName), and the identity 1:1 source<->derived maps.
func GenerateCentroids(topo *node.Node, coordsetName string) (dest, cdest, s2d, d2s *node.Node) {
	coordset := findReferenceCoordset(topo)
	intKind := widestIntKind(topo, coordset)
	dest, cdest = calculateCentroids(topo, coordset, coordsetName)
	n := TopologyLength(topo, coordset)
	s2d = identityO2M(n, intKind)
	d2s = identityO2M(n, intKind)
	return dest, cdest, s2d, d2s
}
