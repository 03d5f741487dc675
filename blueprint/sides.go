package blueprint

import (
	"math"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/robert-malhotra/go-meshdata/node"
)

// SidesOptions selects and prefixes the fields mapped onto a generated
// side topology. An empty FieldNames maps every field on the source
// topology.
type SidesOptions struct {
	FieldPrefix string
	FieldNames  []string
}

// GenerateSides partitions every cell of a 2D or 3D unstructured
// topology into simplices: triangles in 2D (line-start, line-end,
// cell-center), tetrahedra in 3D (line-start, line-end, face-center,
// cell-center), retaining the original element orientation. The new
// coordset holds the original vertices followed by the face (3D) and
// cell centroids. s2d maps each cell to its sides, d2s each side to its
// parent cell.
func GenerateSides(topo *node.Node, coordsetName string) (dest, cdest, s2d, d2s *node.Node) {
	coordset := findReferenceCoordset(topo)
	md := NewTopologyMetadata(topo, coordset)
	if md.Dim() < 2 {
		node.Fatalf("side generation requires a topologically 2D or 3D input")
	}
	dim := md.Dim()
	axes := CoordsetAxes(coordset)

	// centroid coordinates per dimension; lines contribute none because
	// sides never reference edge midpoints
	dimCentCoords := make([]*node.Node, dim+1)
	for di := 2; di <= dim; di++ {
		_, c := calculateCentroids(md.DimTopo(di), coordset, coordsetName)
		dimCentCoords[di] = c
	}

	// assemble the destination coordset and per-dimension coordinate
	// offsets: original vertices first, then centroids by dimension
	dimCoordOffsets := make([]int64, dim+1)
	cdest = node.New()
	cdest.Fetch("type").SetString("explicit")
	for _, axis := range axes {
		var merged []float64
		var doffset int64
		for di := 0; di <= dim; di++ {
			dimCoordOffsets[di] = doffset
			var vals []float64
			if di == 0 {
				vals = node.As[float64](coordset.FetchExisting("values").FetchExisting(axis)).Slice()
			} else if dimCentCoords[di] != nil {
				vals = node.As[float64](dimCentCoords[di].FetchExisting("values").FetchExisting(axis)).Slice()
			}
			merged = append(merged, vals...)
			doffset += int64(len(vals))
		}
		setFloatSlice(cdest.Fetch("values").Fetch(axis), merged, md.FloatKind())
	}

	sideShape := "tri"
	sideDegree := 3
	if dim == 3 {
		sideShape = "tet"
		sideDegree = 4
	}

	numElems := md.Length(dim)
	var conn []int64
	s2dLists := make([][]int64, numElems)
	var d2sLists [][]int64
	sideIndex := int64(0)

	emitSide := func(elem int64, lineLID int64, parents []int64) {
		pts := md.LocalAssoc(1, lineLID)
		side := make([]int64, 0, sideDegree)
		side = append(side,
			md.LocalToGlobal(0)[pts[0]],
			md.LocalToGlobal(0)[pts[1]])
		// parents outermost-last: face center (3D), then cell center
		for pi := len(parents) - 1; pi >= 0; pi-- {
			parentDim := 1 + (len(parents) - pi)
			parentGID := md.LocalToGlobal(parentDim)[parents[pi]]
			side = append(side, dimCoordOffsets[parentDim]+parentGID)
		}
		conn = append(conn, side...)
		s2dLists[elem] = append(s2dLists[elem], sideIndex)
		d2sLists = append(d2sLists, []int64{elem})
		sideIndex++
	}

	for e := int64(0); e < numElems; e++ {
		if dim == 2 {
			for _, lineLID := range md.LocalAssoc(2, e) {
				emitSide(e, lineLID, []int64{e})
			}
		} else {
			for _, faceLID := range md.LocalAssoc(3, e) {
				for _, lineLID := range md.LocalAssoc(2, faceLID) {
					emitSide(e, lineLID, []int64{e, faceLID})
				}
			}
		}
	}

	dest = node.New()
	dest.Fetch("type").SetString("unstructured")
	dest.Fetch("coordset").SetString(coordsetName)
	dest.Fetch("elements/shape").SetString(sideShape)
	setIntSlice(dest.Fetch("elements/connectivity"), conn, md.IntKind())

	s2d = o2mFromLists(s2dLists, md.IntKind())
	d2s = o2mFromLists(d2sLists, md.IntKind())
	return dest, cdest, s2d, d2s
}

// GenerateSidesWithFields generates sides and maps the selected source
// fields onto the side topology per the association and volume
// dependence of each field. It also emits the original_element_ids /
// original_vertex_ids bookkeeping fields and, when any field is volume
// dependent, a per-side volume field.
func GenerateSidesWithFields(topo *node.Node, coordsetName string, opts *SidesOptions) (dest, cdest, fieldsDest, s2d, d2s *node.Node) {
	if opts == nil {
		opts = &SidesOptions{}
	}
	topoName := topo.Name()
	mesh := topo.Parent()
	if mesh != nil {
		mesh = mesh.Parent()
	}
	if mesh == nil {
		node.Fatalf("side field mapping requires a topology inside a mesh tree")
	}
	coordset := findReferenceCoordset(topo)
	var fieldsSrc *node.Node
	if mesh.HasChild("fields") {
		fieldsSrc = mesh.ChildByName("fields")
	} else {
		fieldsSrc = node.New()
	}
	for _, name := range opts.FieldNames {
		if !fieldsSrc.HasChild(name) {
			node.Fatalf("field %q not found in target", name)
		}
	}

	dest, cdest, s2d, d2s = GenerateSides(topo, coordsetName)
	fieldsDest = node.New()

	dims := 2
	degree := int64(3)
	if dest.FetchString("elements/shape") == "tet" {
		dims = 3
		degree = 4
	}

	sideToCell := node.As[int64](s2dInverse(d2s)).Slice()
	numSides := int64(len(sideToCell))
	numCells := TopologyLength(topo, coordset)

	origNumPoints := CoordsetLength(coordset)
	newNumPoints := CoordsetLength(cdest)

	// bookkeeping fields
	orig := fieldsDest.Fetch(opts.FieldPrefix + "original_element_ids")
	orig.Fetch("topology").SetString(topoName)
	orig.Fetch("association").SetString("element")
	orig.Fetch("volume_dependent").SetString("false")
	setIntSlice(orig.Fetch("values"), sideToCell, node.Int32)

	origVerts := fieldsDest.Fetch(opts.FieldPrefix + "original_vertex_ids")
	origVerts.Fetch("topology").SetString(topoName)
	origVerts.Fetch("association").SetString("vertex")
	origVerts.Fetch("volume_dependent").SetString("false")
	vertIDs := make([]int64, newNumPoints)
	for i := range vertIDs {
		if int64(i) < origNumPoints {
			vertIDs[i] = int64(i)
		} else {
			vertIDs[i] = -1
		}
	}
	setIntSlice(origVerts.Fetch("values"), vertIDs, node.Int32)

	var volumeRatio []float64
	volumesDone := false
	connOut := node.As[int64](dest.FetchExisting("elements/connectivity")).Slice()

	for _, field := range fieldsSrc.Children() {
		selected := len(opts.FieldNames) == 0
		for _, name := range opts.FieldNames {
			if name == field.Name() {
				selected = true
			}
		}
		if !selected {
			continue
		}
		if !field.HasChild("topology") || field.FetchString("topology") != topoName {
			if len(opts.FieldNames) != 0 {
				node.Fatalf("field %q does not use %q", field.Name(), topoName)
			}
			continue
		}

		vertAssoc := field.HasChild("association") && field.FetchString("association") == "vertex"
		volDep := field.HasChild("volume_dependent") && field.FetchString("volume_dependent") == "true"
		if volDep && vertAssoc {
			node.Fatalf("volume-dependent vertex-associated fields are not supported")
		}

		out := fieldsDest.Fetch(opts.FieldPrefix + field.Name())
		for _, c := range field.Children() {
			if c.Name() != "values" {
				out.Fetch(c.Name()).SetNode(c)
			}
		}

		if volDep && !volumesDone {
			volumesDone = true
			sideVolumes := simplexVolumes(connOut, cdest, dims, degree)
			cellVolumes := make([]float64, numCells)
			for si, v := range sideVolumes {
				cellVolumes[sideToCell[si]] += v
			}
			volumeRatio = make([]float64, numSides)
			for si := range volumeRatio {
				volumeRatio[si] = sideVolumes[si] / cellVolumes[sideToCell[si]]
			}

			volField := fieldsDest.Fetch(opts.FieldPrefix + "volume")
			volField.Fetch("topology").SetString(topoName)
			volField.Fetch("association").SetString("element")
			volField.Fetch("volume_dependent").SetString("true")
			node.SetSlice(volField.Fetch("values"), sideVolumes)
		}

		srcVals := node.As[float64](field.FetchExisting("values"))
		switch {
		case vertAssoc:
			outVals := mapVertexField(srcVals, connOut, origNumPoints, newNumPoints, degree)
			node.SetSlice(out.Fetch("values"), outVals)
		case volDep:
			outVals := make([]float64, numSides)
			for si := int64(0); si < numSides; si++ {
				outVals[si] = srcVals.At(sideToCell[si]) * volumeRatio[si]
			}
			node.SetSlice(out.Fetch("values"), outVals)
		default:
			// element association: copy the parent cell's value to each
			// side, preserving the source kind
			cellVals := node.New()
			cellVals.SetNode(field.FetchExisting("values"))
			lifted := make([]float64, numSides)
			srcAcc := node.As[float64](cellVals)
			for si := int64(0); si < numSides; si++ {
				lifted[si] = srcAcc.At(sideToCell[si])
			}
			tmp := node.New()
			node.SetSlice(tmp, lifted)
			tmp.ToKindInto(field.FetchExisting("values").Kind(), out.Fetch("values"))
		}
	}

	return dest, cdest, fieldsDest, s2d, d2s
}

// s2dInverse flattens a one-to-one d2s relation's values array.
func s2dInverse(d2s *node.Node) *node.Node {
	return d2s.FetchExisting("values")
}

// simplexVolumes computes the area (2D, signed) or volume (3D) of each
// simplex in a tri/tet connectivity over an explicit coordset.
func simplexVolumes(conn []int64, cset *node.Node, dims int, degree int64) []float64 {
	xs := node.As[float64](cset.FetchExisting("values/x")).Slice()
	ys := node.As[float64](cset.FetchExisting("values/y")).Slice()
	n := int64(len(conn)) / degree
	out := make([]float64, n)
	if dims == 2 {
		for i := int64(0); i < n; i++ {
			a, b, c := conn[i*3], conn[i*3+1], conn[i*3+2]
			out[i] = 0.5 * (xs[a]*(ys[b]-ys[c]) + xs[b]*(ys[c]-ys[a]) + xs[c]*(ys[a]-ys[b]))
		}
		return out
	}
	zs := node.As[float64](cset.FetchExisting("values/z")).Slice()
	for i := int64(0); i < n; i++ {
		a, b, c, d := conn[i*4], conn[i*4+1], conn[i*4+2], conn[i*4+3]
		adx, ady, adz := xs[a]-xs[d], ys[a]-ys[d], zs[a]-zs[d]
		bdx, bdy, bdz := xs[b]-xs[d], ys[b]-ys[d], zs[b]-zs[d]
		cdx, cdy, cdz := xs[c]-xs[d], ys[c]-ys[d], zs[c]-zs[d]
		cx := bdy*cdz - bdz*cdy
		cy := bdz*cdx - bdx*cdz
		cz := bdx*cdy - bdy*cdx
		out[i] = math.Abs(adx*cx+ady*cy+adz*cz) / 6.0
	}
	return out
}

// mapVertexField copies original vertex values and assigns each new
// vertex (a centroid) the mean of the adjacent original vertices found
// by scanning the derived connectivity; new vertices with no original
// neighbor receive 0.
func mapVertexField(src node.Accessor[float64], conn []int64, origNumPoints, newNumPoints, degree int64) []float64 {
	out := make([]float64, newNumPoints)
	for i := int64(0); i < origNumPoints; i++ {
		out[i] = src.At(i)
	}

	neighbors := map[int64]*roaring64.Bitmap{}
	for base := int64(0); base < int64(len(conn)); base += degree {
		for j := base; j < base+degree; j++ {
			if conn[j] < origNumPoints {
				continue
			}
			set, ok := neighbors[conn[j]]
			if !ok {
				set = roaring64.NewBitmap()
				neighbors[conn[j]] = set
			}
			for k := base; k < base+degree; k++ {
				if k != j {
					set.Add(uint64(conn[k]))
				}
			}
		}
	}

	for p := origNumPoints; p < newNumPoints; p++ {
		set, ok := neighbors[p]
		if !ok {
			out[p] = 0
			continue
		}
		var sum, count float64
		it := set.Iterator()
		for it.HasNext() {
			v := int64(it.Next())
			if v < origNumPoints {
				sum += src.At(v)
				count++
			}
		}
		if count > 0 {
			out[p] = sum / count
		}
	}
	return out
}
