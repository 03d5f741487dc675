package blueprint

import (
	"fmt"

	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyField(field, info *node.Node) bool {
	const protocol = "mesh::field"
	res := true

	hasAssoc := field.HasChild("association")
	hasBasis := field.HasChild("basis")
	if !hasAssoc && !hasBasis {
		logError(info, protocol, "missing child 'association' or 'basis'")
		res = false
	}
	if hasAssoc {
		res = verifyAssociation(field.ChildByName("association"), info.Fetch("association")) && res
	}
	if hasBasis {
		res = verifyFieldBasis(field.ChildByName("basis"), info.Fetch("basis")) && res
	}

	hasTopo := field.HasChild("topology")
	hasMatset := field.HasChild("matset")
	hasValues := field.HasChild("values")
	hasMatsetValues := field.HasChild("matset_values")
	if !hasTopo && !hasMatset {
		logError(info, protocol, "missing child 'topology' or 'matset'")
		res = false
	}

	if hasTopo != hasValues {
		present, missing := "topology", "values"
		if hasValues {
			present, missing = "values", "topology"
		}
		logError(info, protocol, fmt.Sprintf(
			"'%s' is present, but its companion '%s' is missing", present, missing))
		res = false
	} else if hasTopo {
		res = verifyStringField(protocol, field, info, "topology") && res
		res = verifyFieldValues(protocol, field, info, "values") && res
	}

	if hasMatset != hasMatsetValues {
		present, missing := "matset", "matset_values"
		if hasMatsetValues {
			present, missing = "matset_values", "matset"
		}
		logError(info, protocol, fmt.Sprintf(
			"'%s' is present, but its companion '%s' is missing", present, missing))
		res = false
	} else if hasMatset {
		res = verifyStringField(protocol, field, info, "matset") && res
		res = verifyFieldValues(protocol, field, info, "matset_values") && res
	}

	logValidation(info, res)
	return res
}

// verifyFieldValues accepts a numeric array or an mcarray of components.
func verifyFieldValues(protocol string, field, info *node.Node, name string) bool {
	res := verifyFieldExists(protocol, field, info, name)
	if res {
		values := field.ChildByName(name)
		if values.DType().IsNumber() {
			logValidation(info.Fetch(name), true)
		} else if values.Kind() == node.Object || values.Kind() == node.List {
			res = verifyMcarrayField(protocol, field, info, name)
		} else {
			logError(info, protocol, quote(name)+"is not a number or an mcarray")
			res = false
			logValidation(info.Fetch(name), false)
		}
	}
	return res
}

func verifyFieldBasis(basis, info *node.Node) bool {
	const protocol = "mesh::field::basis"
	res := verifyStringField(protocol, basis, info, "")
	logValidation(info, res)
	return res
}

func verifyFieldIndex(idx, info *node.Node) bool {
	const protocol = "mesh::field::index"
	res := true

	hasAssoc := idx.HasChild("association")
	hasBasis := idx.HasChild("basis")
	if !hasAssoc && !hasBasis {
		logError(info, protocol, "missing child 'association' or 'basis'")
		res = false
	}
	if hasAssoc {
		res = verifyAssociation(idx.ChildByName("association"), info.Fetch("association")) && res
	}
	if hasBasis {
		res = verifyFieldBasis(idx.ChildByName("basis"), info.Fetch("basis")) && res
	}

	hasTopo := idx.HasChild("topology")
	hasMatset := idx.HasChild("matset")
	if !hasTopo && !hasMatset {
		logError(info, protocol, "missing child 'topology' or 'matset'")
		res = false
	}
	if hasTopo {
		res = verifyStringField(protocol, idx, info, "topology") && res
	}
	if hasMatset {
		res = verifyStringField(protocol, idx, info, "matset") && res
	}

	res = verifyIntegerField(protocol, idx, info, "number_of_components") && res
	res = verifyStringField(protocol, idx, info, "path") && res

	logValidation(info, res)
	return res
}
