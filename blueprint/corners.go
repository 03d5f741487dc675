package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/node"
)

// intersectOrdered returns the members of a that also appear in b,
// preserving a's order.
func intersectOrdered(a, b []int64) []int64 {
	inB := map[int64]bool{}
	for _, v := range b {
		inB[v] = true
	}
	var out []int64
	for _, v := range a {
		if inB[v] {
			out = append(out, v)
		}
	}
	return out
}

type lineKey struct{ face, line int64 }

// GenerateCorners emits the median-dual topology of a 2D or 3D
// unstructured input: one polygon (2D) or polyhedron (3D) per
// (cell, vertex) pair, whose quad faces pass through edge midpoints,
// face centers, and (in 3D) cell centers. Faces are deduplicated by
// vertex set across corners. The new coordset holds the original
// vertices followed by the edge, face, and cell centroids. s2d maps
// each cell to its corners, d2s each corner to its parent cell.
func GenerateCorners(topo *node.Node, coordsetName string) (dest, cdest, s2d, d2s *node.Node) {
	coordset := findReferenceCoordset(topo)
	md := NewTopologyMetadata(topo, coordset)
	if md.Dim() < 2 {
		node.Fatalf("corner generation requires a topologically 2D or 3D input")
	}
	dim := md.Dim()
	is3D := dim == 3
	axes := CoordsetAxes(coordset)

	// destination coordset: original vertices, then centroids of every
	// dimension in order
	dimCoordOffsets := make([]int64, dim+1)
	cdest = node.New()
	cdest.Fetch("type").SetString("explicit")
	centCoords := make([]*node.Node, dim+1)
	for di := 1; di <= dim; di++ {
		_, c := calculateCentroids(md.DimTopo(di), coordset, coordsetName)
		centCoords[di] = c
	}
	for _, axis := range axes {
		var merged []float64
		var doffset int64
		for di := 0; di <= dim; di++ {
			dimCoordOffsets[di] = doffset
			var vals []float64
			if di == 0 {
				vals = node.As[float64](coordset.FetchExisting("values").FetchExisting(axis)).Slice()
			} else {
				vals = node.As[float64](centCoords[di].FetchExisting("values").FetchExisting(axis)).Slice()
			}
			merged = append(merged, vals...)
			doffset += int64(len(vals))
		}
		setFloatSlice(cdest.Fetch("values").Fetch(axis), merged, md.FloatKind())
	}

	numElems := md.Length(dim)
	var connData, sizeData []int64
	var subConnData, subSizeData []int64
	subFaceIDs := map[string]int64{}
	s2dLists := make([][]int64, numElems)
	var d2sLists [][]int64
	cornerIndex := int64(0)

	const toFace, fromFace = true, false

	for e := int64(0); e < numElems; e++ {
		// per-face, per-line orientation constraints from the cell's
		// own traversal order
		elemOrient := map[lineKey][2]int64{}
		var faceLIDs []int64
		if is3D {
			faceLIDs = md.LocalAssoc(3, e)
		} else {
			faceLIDs = []int64{e}
		}
		for _, faceLID := range faceLIDs {
			faceGID := md.LocalToGlobal(2)[faceLID]
			for _, lineLID := range md.LocalAssoc(2, faceLID) {
				lineGID := md.LocalToGlobal(1)[lineLID]
				pts := md.LocalAssoc(1, lineLID)
				startGID := md.LocalToGlobal(0)[pts[0]]
				endGID := md.LocalToGlobal(0)[pts[1]]
				elemOrient[lineKey{faceGID, lineGID}] = [2]int64{startGID, endGID}
			}
		}

		elemLines := md.GlobalAssoc(dim, e, 1)
		elemFaces := md.GlobalAssoc(dim, e, 2)
		elemPoints := md.GlobalAssoc(dim, e, 0)

		for _, pointGID := range elemPoints {
			pointFaces := md.GlobalAssoc(0, pointGID, 2)
			pointLines := md.GlobalAssoc(0, pointGID, 1)
			elemPointFaces := intersectOrdered(elemFaces, pointFaces)
			elemPointLines := intersectOrdered(elemLines, pointLines)

			facesPerCorner := len(elemPointFaces)
			if is3D {
				facesPerCorner *= 2
			}
			cornerFaces := make([][]int64, facesPerCorner)
			cornerOrient := map[lineKey]bool{}

			// vertex-to-face-center quads, oriented by the cell's own
			// line directions
			for fi, faceGID := range elemPointFaces {
				faceLines := md.GlobalAssoc(2, faceGID, 1)
				cornerFaceLines := intersectOrdered(faceLines, pointLines)

				first := cornerFaceLines[0]
				second := cornerFaceLines[len(cornerFaceLines)-1]
				firstKey := lineKey{faceGID, first}
				secondKey := lineKey{faceGID, second}

				isFirstForward := elemOrient[firstKey][0] == pointGID
				face := make([]int64, 4)
				face[0] = pointGID + dimCoordOffsets[0]
				face[2] = faceGID + dimCoordOffsets[2]
				if isFirstForward {
					face[1] = first + dimCoordOffsets[1]
					face[3] = second + dimCoordOffsets[1]
					cornerOrient[firstKey] = toFace
					cornerOrient[secondKey] = fromFace
				} else {
					face[1] = second + dimCoordOffsets[1]
					face[3] = first + dimCoordOffsets[1]
					cornerOrient[firstKey] = fromFace
					cornerOrient[secondKey] = toFace
				}
				cornerFaces[fi] = face
			}

			// mid-edge-to-cell-center quads (3D only), using the
			// co-edge of the constraints established above
			if is3D {
				for li, lineGID := range elemPointLines {
					lineFaces := md.GlobalAssoc(1, lineGID, 2)
					cornerLineFaces := intersectOrdered(elemFaces, lineFaces)

					firstFace := cornerLineFaces[0]
					secondFace := cornerLineFaces[len(cornerLineFaces)-1]

					isFirstForward := !cornerOrient[lineKey{firstFace, lineGID}]
					face := make([]int64, 4)
					face[0] = lineGID + dimCoordOffsets[1]
					face[2] = e + dimCoordOffsets[3]
					if isFirstForward {
						face[1] = firstFace + dimCoordOffsets[2]
						face[3] = secondFace + dimCoordOffsets[2]
					} else {
						face[1] = secondFace + dimCoordOffsets[2]
						face[3] = firstFace + dimCoordOffsets[2]
					}
					cornerFaces[len(elemPointFaces)+li] = face
				}
			}

			if !is3D {
				face := cornerFaces[0]
				sizeData = append(sizeData, int64(len(face)))
				connData = append(connData, face...)
			} else {
				sizeData = append(sizeData, int64(len(cornerFaces)))
				for _, face := range cornerFaces {
					key := faceKey(face)
					id, seen := subFaceIDs[key]
					if !seen {
						id = int64(len(subSizeData))
						subFaceIDs[key] = id
						subSizeData = append(subSizeData, int64(len(face)))
						subConnData = append(subConnData, face...)
					}
					connData = append(connData, id)
				}
			}

			s2dLists[e] = append(s2dLists[e], cornerIndex)
			d2sLists = append(d2sLists, []int64{e})
			cornerIndex++
		}
	}

	dest = node.New()
	dest.Fetch("type").SetString("unstructured")
	dest.Fetch("coordset").SetString(coordsetName)
	if is3D {
		dest.Fetch("elements/shape").SetString("polyhedral")
		dest.Fetch("subelements/shape").SetString("polygonal")
	} else {
		dest.Fetch("elements/shape").SetString("polygonal")
	}
	setIntSlice(dest.Fetch("elements/connectivity"), connData, md.IntKind())
	setIntSlice(dest.Fetch("elements/sizes"), sizeData, md.IntKind())
	if is3D {
		setIntSlice(dest.Fetch("subelements/connectivity"), subConnData, md.IntKind())
		setIntSlice(dest.Fetch("subelements/sizes"), subSizeData, md.IntKind())
	}
	GenerateOffsets(dest)

	s2d = o2mFromLists(s2dLists, md.IntKind())
	d2s = o2mFromLists(d2sLists, md.IntKind())
	return dest, cdest, s2d, d2s
}
