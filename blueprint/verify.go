package blueprint

import "github.com/robert-malhotra/go-meshdata/node"

// Verify checks n against one of the named sub-protocols and records
// diagnostics in info. The protocol set is closed: coordset, topology,
// matset, specset, field, adjset, nestset, index, and "<entity>/index"
// for each of the first seven. Unknown protocol names simply fail.
func Verify(protocol string, n, info *node.Node) bool {
	info.Reset()
	switch protocol {
	case "coordset":
		return verifyCoordset(n, info)
	case "topology":
		return verifyTopology(n, info)
	case "matset":
		return verifyMatset(n, info)
	case "specset":
		return verifySpecset(n, info)
	case "field":
		return verifyField(n, info)
	case "adjset":
		return verifyAdjset(n, info)
	case "nestset":
		return verifyNestset(n, info)
	case "index":
		return verifyIndex(n, info)
	case "coordset/index":
		return verifyCoordsetIndex(n, info)
	case "topology/index":
		return verifyTopologyIndex(n, info)
	case "matset/index":
		return verifyMatsetIndex(n, info)
	case "specset/index":
		return verifySpecsetIndex(n, info)
	case "field/index":
		return verifyFieldIndex(n, info)
	case "adjset/index":
		return verifyAdjsetIndex(n, info)
	case "nestset/index":
		return verifyNestsetIndex(n, info)
	}
	logError(info, "mesh", "unknown protocol "+quote(protocol))
	logValidation(info, false)
	return false
}

func verifyLogicalDims(dims, info *node.Node) bool {
	const protocol = "mesh::logical_dims"
	res := verifyIntegerField(protocol, dims, info, "i")
	if dims.HasChild("j") {
		res = verifyIntegerField(protocol, dims, info, "j") && res
	}
	if dims.HasChild("k") {
		res = verifyIntegerField(protocol, dims, info, "k") && res
	}
	logValidation(info, res)
	return res
}

func verifyAssociation(assoc, info *node.Node) bool {
	const protocol = "mesh::association"
	res := verifyEnumField(protocol, assoc, info, "", associations)
	logValidation(info, res)
	return res
}
