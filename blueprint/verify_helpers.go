package blueprint

import (
	"fmt"

	"github.com/robert-malhotra/go-meshdata/internal/o2m"
	"github.com/robert-malhotra/go-meshdata/node"
)

// The helpers below follow one pattern: check a (possibly nested) child
// of n, record diagnostics under the matching child of info, and mark
// the child's validity. An empty fieldName checks n itself.

func verifyFieldExists(protocol string, n, info *node.Node, fieldName string) bool {
	res := true
	if fieldName != "" {
		if !n.HasChild(fieldName) {
			logError(info, protocol, "missing child "+quote(fieldName))
			res = false
		}
		logValidation(info.Fetch(fieldName), res)
	}
	return res
}

func fieldAndInfo(n, info *node.Node, fieldName string) (*node.Node, *node.Node) {
	if fieldName == "" {
		return n, info
	}
	return n.ChildByName(fieldName), info.Fetch(fieldName)
}

func verifyIntegerField(protocol string, n, info *node.Node, fieldName string) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res && !field.DType().IsInteger() {
		logError(info, protocol, quote(fieldName)+"is not an integer (array)")
		res = false
	}
	logValidation(fieldInfo, res)
	return res
}

func verifyNumberField(protocol string, n, info *node.Node, fieldName string) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res && !field.DType().IsNumber() {
		logError(info, protocol, quote(fieldName)+"is not a number")
		res = false
	}
	logValidation(fieldInfo, res)
	return res
}

func verifyStringField(protocol string, n, info *node.Node, fieldName string) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res && !field.DType().IsString() {
		logError(info, protocol, quote(fieldName)+"is not a string")
		res = false
	}
	logValidation(fieldInfo, res)
	return res
}

type objectOpts struct {
	allowList   bool
	allowEmpty  bool
	numChildren int
}

func verifyObjectField(protocol string, n, info *node.Node, fieldName string, opts objectOpts) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res {
		switch {
		case !(field.Kind() == node.Object || (opts.allowList && field.Kind() == node.List)):
			suffix := ""
			if opts.allowList {
				suffix = " or a list"
			}
			logError(info, protocol, quote(fieldName)+"is not an object"+suffix)
			res = false
		case !opts.allowEmpty && field.NumChildren() == 0:
			logError(info, protocol, "has no children")
			res = false
		case opts.numChildren > 0 && field.NumChildren() != opts.numChildren:
			logError(info, protocol, fmt.Sprintf("has incorrect number of children (%d vs %d)",
				field.NumChildren(), opts.numChildren))
			res = false
		}
	}
	logValidation(fieldInfo, res)
	return res
}

func verifyEnumField(protocol string, n, info *node.Node, fieldName string, enumValues []string) bool {
	res := verifyStringField(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res {
		value := field.AsString()
		found := false
		for _, v := range enumValues {
			if value == v {
				found = true
				break
			}
		}
		if found {
			logInfo(info, protocol, quote(fieldName)+"has valid value "+quote(value))
		} else {
			logError(info, protocol, quote(fieldName)+"has invalid value "+quote(value))
			res = false
		}
	}
	logValidation(fieldInfo, res)
	return res
}

// verifyMcarrayField checks that fieldName is a multi-component array:
// sibling numeric arrays of equal length.
func verifyMcarrayField(protocol string, n, info *node.Node, fieldName string) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res {
		res = verifyMcarray(field, fieldInfo)
		if res {
			logInfo(info, protocol, quote(fieldName)+"is an mcarray")
		} else {
			logError(info, protocol, quote(fieldName)+"is not an mcarray")
		}
	}
	logValidation(fieldInfo, res)
	return res
}

func verifyMcarray(n, info *node.Node) bool {
	res := true
	if n.Kind() != node.Object && n.Kind() != node.List {
		logError(info, "mcarray", "is not an object or a list")
		res = false
	} else if n.NumChildren() == 0 {
		logError(info, "mcarray", "has no components")
		res = false
	} else {
		length := int64(-1)
		for _, c := range n.Children() {
			if !c.DType().IsNumber() {
				logError(info, "mcarray", "component "+quote(c.Name())+"is not numeric")
				res = false
				continue
			}
			if length < 0 {
				length = c.DType().NumElements
			} else if c.DType().NumElements != length {
				logError(info, "mcarray", "component "+quote(c.Name())+"has mismatched length")
				res = false
			}
		}
	}
	logValidation(info, res)
	return res
}

func verifyO2MRelationField(protocol string, n, info *node.Node, fieldName string) bool {
	res := verifyFieldExists(protocol, n, info, fieldName)
	field, fieldInfo := fieldAndInfo(n, info, fieldName)
	if res {
		res = o2m.Verify(field, fieldInfo)
		if res {
			logInfo(info, protocol, quote(fieldName)+"describes a one-to-many relation")
		} else {
			logError(info, protocol, quote(fieldName)+"doesn't describe a one-to-many relation")
		}
	}
	logValidation(fieldInfo, res)
	return res
}

// verifyReferenceField checks that n's fieldName child is a string
// naming an existing, already-validated entry under refPath of the
// enclosing tree.
func verifyReferenceField(protocol string, tree, treeInfo, n, info *node.Node, fieldName, refPath string) bool {
	res := verifyStringField(protocol, n, info, fieldName)
	if res {
		refName := n.ChildByName(fieldName).AsString()
		refParent := tree.ChildByName(refPath)
		if refParent == nil || !refParent.HasChild(refName) {
			logError(info, protocol, "reference to non-existent "+fieldName+" "+quote(refName))
			res = false
		} else if treeInfo.Fetch(refPath).Fetch(refName).FetchExisting("valid").AsString() != "true" {
			logError(info, protocol, "reference to invalid "+fieldName+" "+quote(refName))
			res = false
		}
	}
	logValidation(info.Fetch(fieldName), res)
	logValidation(info, res)
	return res
}
