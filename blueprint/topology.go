package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/internal/shape"
	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyTopology(topo, info *node.Node) bool {
	const protocol = "mesh::topology"
	res := true

	if !(verifyFieldExists(protocol, topo, info, "type") &&
		verifyTopologyType(topo.ChildByName("type"), info.Fetch("type"))) {
		res = false
	} else {
		switch topo.FetchString("type") {
		case "points":
			res = verifyTopologyPoints(topo, info) && res
		case "uniform":
			res = verifyTopologyUniform(topo, info) && res
		case "rectilinear":
			res = verifyTopologyRectilinear(topo, info) && res
		case "structured":
			res = verifyTopologyStructured(topo, info) && res
		case "unstructured":
			res = verifyTopologyUnstructured(topo, info) && res
		}
	}

	if topo.HasChild("grid_function") {
		logOptional(info, protocol, "includes grid_function")
		res = verifyStringField(protocol, topo, info, "grid_function") && res
	}

	logValidation(info, res)
	return res
}

func verifyTopologyType(t, info *node.Node) bool {
	res := verifyEnumField("mesh::topology::type", t, info, "", topoTypes)
	logValidation(info, res)
	return res
}

func verifyTopologyShape(s, info *node.Node) bool {
	res := verifyEnumField("mesh::topology::shape", s, info, "", shape.Names())
	logValidation(info, res)
	return res
}

func verifyTopologyPoints(topo, info *node.Node) bool {
	const protocol = "mesh::topology::points"
	res := verifyStringField(protocol, topo, info, "coordset")
	res = verifyEnumField(protocol, topo, info, "type", []string{"points"}) && res
	logValidation(info, res)
	return res
}

func verifyTopologyUniform(topo, info *node.Node) bool {
	const protocol = "mesh::topology::uniform"
	res := verifyStringField(protocol, topo, info, "coordset")
	res = verifyEnumField(protocol, topo, info, "type", []string{"uniform"}) && res
	logValidation(info, res)
	return res
}

func verifyTopologyRectilinear(topo, info *node.Node) bool {
	const protocol = "mesh::topology::rectilinear"
	res := verifyStringField(protocol, topo, info, "coordset")
	res = verifyEnumField(protocol, topo, info, "type", []string{"rectilinear"}) && res
	logValidation(info, res)
	return res
}

func verifyTopologyStructured(topo, info *node.Node) bool {
	const protocol = "mesh::topology::structured"
	res := verifyStringField(protocol, topo, info, "coordset")
	res = verifyEnumField(protocol, topo, info, "type", []string{"structured"}) && res

	if !verifyObjectField(protocol, topo, info, "elements", objectOpts{}) {
		res = false
	} else {
		elements := topo.ChildByName("elements")
		elementsInfo := info.Fetch("elements")
		elemRes := verifyObjectField(protocol, elements, elementsInfo, "dims", objectOpts{}) &&
			verifyLogicalDims(elements.ChildByName("dims"), elementsInfo.Fetch("dims"))
		logValidation(elementsInfo, elemRes)
		res = res && elemRes
	}

	logValidation(info, res)
	return res
}

func verifyTopologyUnstructured(topo, info *node.Node) bool {
	const protocol = "mesh::topology::unstructured"
	res := verifyStringField(protocol, topo, info, "coordset")
	res = verifyEnumField(protocol, topo, info, "type", []string{"unstructured"}) && res

	if !verifyObjectField(protocol, topo, info, "elements", objectOpts{}) {
		res = false
	} else {
		elements := topo.ChildByName("elements")
		elementsInfo := info.Fetch("elements")
		elemRes := true

		switch {
		case elements.HasChild("shape"):
			elemRes = verifyFieldExists(protocol, elements, elementsInfo, "shape") &&
				verifyTopologyShape(elements.ChildByName("shape"), elementsInfo.Fetch("shape"))
			elemRes = verifyIntegerField(protocol, elements, elementsInfo, "connectivity") && elemRes
			elemRes = verifyPolyElements(elements, elementsInfo, topo, info, elemRes) && elemRes
		case elements.NumChildren() > 0:
			// mixed-shape construction: one named block per shape
			for _, chld := range elements.Children() {
				chldInfo := elementsInfo.Fetch(chld.Name())
				chldRes := verifyFieldExists(protocol, chld, chldInfo, "shape") &&
					verifyTopologyShape(chld.ChildByName("shape"), chldInfo.Fetch("shape"))
				chldRes = verifyIntegerField(protocol, chld, chldInfo, "connectivity") && chldRes
				logValidation(chldInfo, chldRes)
				elemRes = elemRes && chldRes
			}
		default:
			logError(info, protocol, "invalid child 'elements'")
			res = false
		}

		logValidation(elementsInfo, elemRes)
		res = res && elemRes
	}

	logValidation(info, res)
	return res
}

// verifyPolyElements adds the polygonal/polyhedral requirements: the
// elements block is a one-to-many relation, and polyhedral topologies
// carry a polygonal subelements block.
func verifyPolyElements(elements, elementsInfo, topo, info *node.Node, elemsOK bool) bool {
	const protocol = "mesh::topology::unstructured"
	res := true

	shapeName := ""
	if elements.HasChild("shape") && elements.ChildByName("shape").DType().IsString() {
		shapeName = elements.ChildByName("shape").AsString()
	}
	if shapeName != "polygonal" && shapeName != "polyhedral" {
		return elemsOK
	}

	res = verifyO2MRelationField(protocol, topo, info, "elements") && res

	if shapeName == "polyhedral" {
		subRes := true
		if !verifyObjectField(protocol, topo, info, "subelements", objectOpts{}) {
			subRes = false
		} else {
			sub := topo.ChildByName("subelements")
			subInfo := info.Fetch("subelements")
			if sub.HasChild("shape") {
				subRes = verifyFieldExists(protocol, sub, subInfo, "shape") &&
					verifyTopologyShape(sub.ChildByName("shape"), subInfo.Fetch("shape"))
				subRes = verifyIntegerField(protocol, sub, subInfo, "connectivity") && subRes
				subRes = sub.FetchString("shape") == "polygonal" && subRes
				subRes = verifyO2MRelationField(protocol, topo, info, "subelements") && subRes
			} else {
				subRes = false
			}
			logValidation(subInfo, subRes)
		}
		res = res && subRes
	}

	return elemsOK && res
}

func verifyTopologyIndex(idx, info *node.Node) bool {
	const protocol = "mesh::topology::index"
	res := verifyFieldExists(protocol, idx, info, "type") &&
		verifyTopologyType(idx.ChildByName("type"), info.Fetch("type"))
	res = verifyStringField(protocol, idx, info, "coordset") && res
	res = verifyStringField(protocol, idx, info, "path") && res
	if idx.HasChild("grid_function") {
		logOptional(info, protocol, "includes grid_function")
		res = verifyStringField(protocol, idx, info, "grid_function") && res
	}
	logValidation(info, res)
	return res
}

// gridIJKToID flattens a logical (i,j,k) index against per-axis counts,
// first axis fastest.
func gridIJKToID(ijk, dims []int64) int64 {
	id, stride := int64(0), int64(1)
	for d := range dims {
		id += ijk[d] * stride
		stride *= dims[d]
	}
	return id
}

// gridIDToIJK inverts gridIJKToID.
func gridIDToIJK(id int64, dims, ijk []int64) {
	for d := range dims {
		ijk[d] = id % dims[d]
		id /= dims[d]
	}
}

// TopologyToRectilinear converts a uniform topology (and its referenced
// coordset) to the rectilinear flavor. The new topology references the
// coordset by the given name.
func TopologyToRectilinear(topo *node.Node, coordsetName string) (*node.Node, *node.Node) {
	coordset := findReferenceCoordset(topo)
	if topo.FetchString("type") != "uniform" {
		node.Fatalf("cannot convert %q topology to rectilinear", topo.FetchString("type"))
	}
	cdest := CoordsetUniformToRectilinear(coordset)

	dest := node.New()
	dest.SetNode(topo)
	dest.FetchExisting("type").SetString("rectilinear")
	dest.FetchExisting("coordset").SetString(coordsetName)
	return dest, cdest
}

// TopologyToStructured converts a uniform or rectilinear topology to
// structured form over an explicit coordset.
func TopologyToStructured(topo *node.Node, coordsetName string) (*node.Node, *node.Node) {
	coordset := findReferenceCoordset(topo)
	baseType := topo.FetchString("type")
	cdest := CoordsetToExplicit(coordset)

	dest := node.New()
	dest.Fetch("type").SetString("structured")
	dest.Fetch("coordset").SetString(coordsetName)
	if topo.HasChild("origin") {
		dest.Fetch("origin").SetNode(topo.ChildByName("origin"))
	}

	intKind := widestIntKind(topo)
	axes := CoordsetAxes(coordset)
	for ai := range axes {
		var vertCount int64
		if baseType == "uniform" {
			vertCount = node.As[int64](coordset.FetchExisting("dims/" + logicalAxes[ai])).At(0)
		} else {
			vertCount = coordset.FetchExisting("values").FetchExisting(axes[ai]).DType().NumElements
		}
		setIntSlice(dest.Fetch("elements/dims").Fetch(logicalAxes[ai]),
			[]int64{vertCount - 1}, intKind)
	}
	return dest, cdest
}

// TopologyToUnstructured converts a uniform, rectilinear, or structured
// topology to explicit unstructured connectivity over an explicit
// coordset. Cells follow the canonical quad/hex vertex ordering.
func TopologyToUnstructured(topo *node.Node, coordsetName string) (*node.Node, *node.Node) {
	coordset := findReferenceCoordset(topo)
	baseType := topo.FetchString("type")

	var cdest *node.Node
	if baseType == "structured" {
		cdest = node.New()
		cdest.SetNode(coordset)
	} else {
		cdest = CoordsetToExplicit(coordset)
	}

	dest := node.New()
	dest.Fetch("type").SetString("unstructured")
	dest.Fetch("coordset").SetString(coordsetName)
	if topo.HasChild("origin") {
		dest.Fetch("origin").SetNode(topo.ChildByName("origin"))
	}

	axes := CoordsetAxes(coordset)
	dims := len(axes)
	dest.Fetch("elements/shape").SetString(shape.ImplicitCellShape(dims))

	// per-axis element counts
	edims := make([]int64, dims)
	for ai := range axes {
		switch baseType {
		case "structured":
			edims[ai] = node.As[int64](topo.FetchExisting("elements/dims/" + logicalAxes[ai])).At(0)
		case "rectilinear":
			edims[ai] = coordset.FetchExisting("values").FetchExisting(axes[ai]).DType().NumElements - 1
		default: // uniform
			edims[ai] = node.As[int64](coordset.FetchExisting("dims/"+logicalAxes[ai])).At(0) - 1
		}
	}

	vdims := make([]int64, dims)
	numElems := int64(1)
	for d := range edims {
		numElems *= edims[d]
		vdims[d] = edims[d] + 1
	}
	indicesPerElem := int64(1) << dims

	conn := make([]int64, numElems*indicesPerElem)
	curElem := make([]int64, dims)
	curVert := make([]int64, dims)
	for e := int64(0); e < numElems; e++ {
		gridIDToIJK(e, edims, curElem)
		// The bit pattern of each per-element index encodes the step
		// direction along each axis (e.g. 101 means +1 on axes 0 and 2).
		for i := int64(0); i < indicesPerElem; i++ {
			copy(curVert, curElem)
			for d := 0; d < dims; d++ {
				curVert[d] += (i >> d) & 1
			}
			conn[e*indicesPerElem+i] = gridIJKToID(curVert, vdims)
		}
		// swap the trailing pair of each face-quad to obtain the
		// canonical winding
		for p := e*indicesPerElem + 2; p < (e+1)*indicesPerElem; p += 4 {
			conn[p], conn[p+1] = conn[p+1], conn[p]
		}
	}

	intKind := widestIntKind(topo)
	setIntSlice(dest.Fetch("elements/connectivity"), conn, intKind)
	return dest, cdest
}
