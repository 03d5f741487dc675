package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyCoordset(coordset, info *node.Node) bool {
	const protocol = "mesh::coordset"
	res := verifyFieldExists(protocol, coordset, info, "type") &&
		verifyCoordsetType(coordset.ChildByName("type"), info.Fetch("type"))

	if res {
		switch coordset.FetchString("type") {
		case "uniform":
			res = verifyCoordsetUniform(coordset, info)
		case "rectilinear":
			res = verifyCoordsetRectilinear(coordset, info)
		case "explicit":
			res = verifyCoordsetExplicit(coordset, info)
		}
	}

	logValidation(info, res)
	return res
}

func verifyCoordsetType(t, info *node.Node) bool {
	res := verifyEnumField("mesh::coordset::type", t, info, "", coordTypes)
	logValidation(info, res)
	return res
}

func verifyCoordsetUniform(coordset, info *node.Node) bool {
	const protocol = "mesh::coordset::uniform"
	res := verifyEnumField(protocol, coordset, info, "type", []string{"uniform"})

	res = verifyObjectField(protocol, coordset, info, "dims", objectOpts{}) &&
		verifyLogicalDims(coordset.ChildByName("dims"), info.Fetch("dims")) && res

	if coordset.HasChild("origin") {
		logOptional(info, protocol, "has origin")
		res = verifyCoordsetUniformOrigin(coordset.ChildByName("origin"), info.Fetch("origin")) && res
	}
	if coordset.HasChild("spacing") {
		logOptional(info, protocol, "has spacing")
		res = verifyCoordsetUniformSpacing(coordset.ChildByName("spacing"), info.Fetch("spacing")) && res
	}

	logValidation(info, res)
	return res
}

func verifyCoordsetUniformOrigin(origin, info *node.Node) bool {
	const protocol = "mesh::coordset::uniform::origin"
	res := true
	for _, axis := range coordinateAxes {
		if origin.HasChild(axis) {
			res = verifyNumberField(protocol, origin, info, axis) && res
		}
	}
	logValidation(info, res)
	return res
}

func verifyCoordsetUniformSpacing(spacing, info *node.Node) bool {
	const protocol = "mesh::coordset::uniform::spacing"
	res := true
	for _, axis := range coordinateAxes {
		name := "d" + axis
		if spacing.HasChild(name) {
			res = verifyNumberField(protocol, spacing, info, name) && res
		}
	}
	logValidation(info, res)
	return res
}

func verifyCoordsetRectilinear(coordset, info *node.Node) bool {
	const protocol = "mesh::coordset::rectilinear"
	res := verifyEnumField(protocol, coordset, info, "type", []string{"rectilinear"})

	if !verifyObjectField(protocol, coordset, info, "values", objectOpts{allowList: true}) {
		res = false
	} else {
		for _, chld := range coordset.ChildByName("values").Children() {
			if !chld.DType().IsNumber() {
				logError(info, protocol, "value child "+quote(chld.Name())+"is not a number array")
				res = false
			}
		}
	}

	logValidation(info, res)
	return res
}

func verifyCoordsetExplicit(coordset, info *node.Node) bool {
	const protocol = "mesh::coordset::explicit"
	res := verifyEnumField(protocol, coordset, info, "type", []string{"explicit"})
	res = verifyMcarrayField(protocol, coordset, info, "values") && res
	logValidation(info, res)
	return res
}

func verifyCoordsetCoordSystem(coordSys, info *node.Node) bool {
	const protocol = "mesh::coordset::coord_system"
	res := true

	sysName := "unknown"
	if !verifyEnumField(protocol, coordSys, info, "type", coordSystems) {
		res = false
	} else {
		sysName = coordSys.FetchString("type")
	}

	if !verifyObjectField(protocol, coordSys, info, "axes", objectOpts{}) {
		res = false
	} else if sysName != "unknown" {
		for _, axis := range coordSys.ChildByName("axes").Children() {
			ok := true
			switch sysName {
			case "cartesian":
				ok = axis.Name() == "x" || axis.Name() == "y" || axis.Name() == "z"
			case "cylindrical":
				ok = axis.Name() == "r" || axis.Name() == "z"
			case "spherical":
				ok = axis.Name() == "r" || axis.Name() == "theta" || axis.Name() == "phi"
			}
			if !ok {
				logError(info, protocol, "unsupported "+sysName+" axis name: "+axis.Name())
				res = false
			}
		}
	}

	logValidation(info, res)
	return res
}

func verifyCoordsetIndex(idx, info *node.Node) bool {
	const protocol = "mesh::coordset::index"
	res := verifyFieldExists(protocol, idx, info, "type") &&
		verifyCoordsetType(idx.ChildByName("type"), info.Fetch("type"))
	res = verifyStringField(protocol, idx, info, "path") && res
	res = verifyObjectField(protocol, idx, info, "coord_system", objectOpts{}) &&
		verifyCoordsetCoordSystem(idx.ChildByName("coord_system"), info.Fetch("coord_system")) && res
	logValidation(info, res)
	return res
}

// uniformAxisSpec reads one axis of a uniform coordset: origin (default
// 0), spacing (default 1), and vertex count.
func uniformAxisSpec(coordset *node.Node, axis, logical string) (origin, spacing float64, count int64) {
	origin, spacing = 0.0, 1.0
	if coordset.HasPath("origin/" + axis) {
		origin = node.As[float64](coordset.FetchExisting("origin/" + axis)).At(0)
	}
	if coordset.HasPath("spacing/d" + axis) {
		spacing = node.As[float64](coordset.FetchExisting("spacing/d" + axis)).At(0)
	}
	count = node.As[int64](coordset.FetchExisting("dims/" + logical)).At(0)
	return origin, spacing, count
}

// CoordsetUniformToRectilinear materializes a uniform coordset's
// per-axis value arrays: v[i] = origin + i*spacing.
func CoordsetUniformToRectilinear(coordset *node.Node) *node.Node {
	dest := node.New()
	dest.Fetch("type").SetString("rectilinear")

	floatKind := widestFloatKind(coordset)
	axes := CoordsetAxes(coordset)
	for ai, axis := range axes {
		origin, spacing, count := uniformAxisSpec(coordset, axis, logicalAxes[ai])
		vals := make([]float64, count)
		for i := int64(0); i < count; i++ {
			vals[i] = origin + float64(i)*spacing
		}
		setFloatSlice(dest.Fetch("values").Fetch(axis), vals, floatKind)
	}
	return dest
}

// CoordsetToExplicit emits the Cartesian product of a uniform or
// rectilinear coordset's axis values in column-major (first axis
// fastest) order, one tuple per vertex.
func CoordsetToExplicit(coordset *node.Node) *node.Node {
	csType := coordset.FetchString("type")
	if csType == "explicit" {
		dest := node.New()
		dest.SetNode(coordset)
		return dest
	}

	dest := node.New()
	dest.Fetch("type").SetString("explicit")

	floatKind := widestFloatKind(coordset)
	axes := CoordsetAxes(coordset)

	// per-axis coordinate values
	axisVals := make([][]float64, len(axes))
	for ai, axis := range axes {
		if csType == "rectilinear" {
			axisVals[ai] = node.As[float64](coordset.FetchExisting("values").FetchExisting(axis)).Slice()
		} else {
			origin, spacing, count := uniformAxisSpec(coordset, axis, logicalAxes[ai])
			vals := make([]float64, count)
			for i := int64(0); i < count; i++ {
				vals[i] = origin + float64(i)*spacing
			}
			axisVals[ai] = vals
		}
	}

	total := int64(1)
	for _, vals := range axisVals {
		total *= int64(len(vals))
	}

	for ai, axis := range axes {
		blockSize := int64(1)
		for j := 0; j < ai; j++ {
			blockSize *= int64(len(axisVals[j]))
		}
		out := make([]float64, total)
		for i := int64(0); i < total; i++ {
			out[i] = axisVals[ai][(i/blockSize)%int64(len(axisVals[ai]))]
		}
		setFloatSlice(dest.Fetch("values").Fetch(axis), out, floatKind)
	}
	return dest
}
