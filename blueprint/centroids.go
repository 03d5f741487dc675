package blueprint

import (
	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

// elementVertexSets returns, per element of an unstructured topology,
// the unique vertex ids it references in first-encounter order. For
// polyhedral cells the vertices are discovered through the subelements.
func elementVertexSets(topo, coordset *node.Node) [][]int64 {
	s, ok := shape.ByName(topo.FetchString("elements/shape"))
	if !ok {
		node.Fatalf("unknown element shape %q", topo.FetchString("elements/shape"))
	}
	elements := topo.FetchExisting("elements")
	conn := node.As[int64](elements.FetchExisting("connectivity")).Slice()
	numElems := TopologyLength(topo, coordset)

	sets := make([][]int64, 0, numElems)
	appendUnique := func(dst []int64, seen *roaring64.Bitmap, verts []int64) []int64 {
		for _, v := range verts {
			if !seen.Contains(uint64(v)) {
				seen.Add(uint64(v))
				dst = append(dst, v)
			}
		}
		return dst
	}

	switch {
	case s.IsPolyhedral():
		sizes := node.As[int64](elements.FetchExisting("sizes")).Slice()
		offsets := prefixOffsets(elements, sizes)
		sub := topo.FetchExisting("subelements")
		subConn := node.As[int64](sub.FetchExisting("connectivity")).Slice()
		subSizes := node.As[int64](sub.FetchExisting("sizes")).Slice()
		subOffsets := prefixOffsets(sub, subSizes)
		for e := int64(0); e < numElems; e++ {
			seen := roaring64.NewBitmap()
			var verts []int64
			for _, f := range conn[offsets[e] : offsets[e]+sizes[e]] {
				verts = appendUnique(verts, seen, subConn[subOffsets[f]:subOffsets[f]+subSizes[f]])
			}
			sets = append(sets, verts)
		}
	case s.IsPolygonal():
		sizes := node.As[int64](elements.FetchExisting("sizes")).Slice()
		offsets := prefixOffsets(elements, sizes)
		for e := int64(0); e < numElems; e++ {
			seen := roaring64.NewBitmap()
			sets = append(sets, appendUnique(nil, seen, conn[offsets[e]:offsets[e]+sizes[e]]))
		}
	default:
		for e := int64(0); e < numElems; e++ {
			seen := roaring64.NewBitmap()
			base := e * int64(s.Indices)
			sets = append(sets, appendUnique(nil, seen, conn[base:base+int64(s.Indices)]))
		}
	}
	return sets
}

// prefixOffsets reads an o2m block's offsets, deriving them from sizes
// when absent.
func prefixOffsets(block *node.Node, sizes []int64) []int64 {
	if block.HasChild("offsets") {
		return node.As[int64](block.ChildByName("offsets")).Slice()
	}
	offsets := make([]int64, len(sizes))
	var cursor int64
	for i, sz := range sizes {
		offsets[i] = cursor
		cursor += sz
	}
	return offsets
}

// calculateCentroids builds a points topology whose vertices are the
// element centroids of an unstructured topology: per cell, the mean of
// the coordinates of its unique vertices. Coordinates use the widest
// float kind in the sources, connectivity the widest integer kind.
func calculateCentroids(topo, coordset *node.Node, coordsetName string) (*node.Node, *node.Node) {
	axes := CoordsetAxes(coordset)
	intKind := widestIntKind(topo, coordset)
	floatKind := widestFloatKind(topo, coordset)

	sets := elementVertexSets(topo, coordset)
	numElems := int64(len(sets))

	axisVals := make([][]float64, len(axes))
	for ai, axis := range axes {
		axisVals[ai] = node.As[float64](coordset.FetchExisting("values").FetchExisting(axis)).Slice()
	}

	cdest := node.New()
	cdest.Fetch("type").SetString("explicit")

	dest := node.New()
	dest.Fetch("type").SetString("unstructured")
	dest.Fetch("coordset").SetString(coordsetName)
	dest.Fetch("elements/shape").SetString("point")

	conn := make([]int64, numElems)
	cents := make([][]float64, len(axes))
	for ai := range axes {
		cents[ai] = make([]float64, numElems)
	}

	for e, verts := range sets {
		for ai := range axes {
			var sum float64
			for _, v := range verts {
				sum += axisVals[ai][v]
			}
			cents[ai][e] = sum / float64(len(verts))
		}
		conn[e] = int64(e)
	}

	setIntSlice(dest.Fetch("elements/connectivity"), conn, intKind)
	for ai, axis := range axes {
		setFloatSlice(cdest.Fetch("values").Fetch(axis), cents[ai], floatKind)
	}
	return dest, cdest
}
