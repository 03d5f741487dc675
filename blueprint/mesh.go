package blueprint

import "github.com/robert-malhotra/go-meshdata/node"

// VerifyMesh checks a full mesh tree: a single domain when it carries a
// "coordsets" child, otherwise a multi-domain parent whose children are
// each single domains. An empty tree is a valid (empty) mesh.
func VerifyMesh(mesh, info *node.Node) bool {
	info.Reset()
	if mesh.HasChild("coordsets") {
		return verifySingleDomain(mesh, info)
	}
	return verifyMultiDomain(mesh, info)
}

func verifySingleDomain(n, info *node.Node) bool {
	const protocol = "mesh"
	res := true

	if !verifyObjectField(protocol, n, info, "coordsets", objectOpts{}) {
		res = false
	} else {
		csetRes := true
		for _, chld := range n.ChildByName("coordsets").Children() {
			csetRes = verifyCoordset(chld, info.Fetch("coordsets").Fetch(chld.Name())) && csetRes
		}
		logValidation(info.Fetch("coordsets"), csetRes)
		res = res && csetRes
	}

	if !verifyObjectField(protocol, n, info, "topologies", objectOpts{}) {
		res = false
	} else {
		topoRes := true
		for _, chld := range n.ChildByName("topologies").Children() {
			chldInfo := info.Fetch("topologies").Fetch(chld.Name())
			topoRes = verifyTopology(chld, chldInfo) && topoRes
			topoRes = verifyReferenceField(protocol, n, info, chld, chldInfo,
				"coordset", "coordsets") && topoRes
		}
		logValidation(info.Fetch("topologies"), topoRes)
		res = res && topoRes
	}

	optional := []struct {
		name   string
		verify func(*node.Node, *node.Node) bool
		ref    [2]string // reference field name, reference section
	}{
		{"matsets", verifyMatset, [2]string{"topology", "topologies"}},
		{"specsets", verifySpecset, [2]string{"matset", "matsets"}},
		{"adjsets", verifyAdjset, [2]string{"topology", "topologies"}},
		{"nestsets", verifyNestset, [2]string{"topology", "topologies"}},
	}
	for _, sec := range optional {
		if !n.HasChild(sec.name) {
			continue
		}
		if !verifyObjectField(protocol, n, info, sec.name, objectOpts{}) {
			res = false
			continue
		}
		secRes := true
		for _, chld := range n.ChildByName(sec.name).Children() {
			chldInfo := info.Fetch(sec.name).Fetch(chld.Name())
			secRes = sec.verify(chld, chldInfo) && secRes
			secRes = verifyReferenceField(protocol, n, info, chld, chldInfo,
				sec.ref[0], sec.ref[1]) && secRes
		}
		logValidation(info.Fetch(sec.name), secRes)
		res = res && secRes
	}

	// fields reference either a topology or a matset
	if n.HasChild("fields") {
		if !verifyObjectField(protocol, n, info, "fields", objectOpts{}) {
			res = false
		} else {
			fieldRes := true
			for _, chld := range n.ChildByName("fields").Children() {
				chldInfo := info.Fetch("fields").Fetch(chld.Name())
				fieldRes = verifyField(chld, chldInfo) && fieldRes
				if chld.HasChild("topology") {
					fieldRes = verifyReferenceField(protocol, n, info, chld, chldInfo,
						"topology", "topologies") && fieldRes
				}
				if chld.HasChild("matset") {
					fieldRes = verifyReferenceField(protocol, n, info, chld, chldInfo,
						"matset", "matsets") && fieldRes
				}
			}
			logValidation(info.Fetch("fields"), fieldRes)
			res = res && fieldRes
		}
	}

	// a topology's grid_function must name a valid field
	if n.HasChild("topologies") {
		gfRes := true
		for _, chld := range n.ChildByName("topologies").Children() {
			if chld.HasChild("grid_function") {
				gfRes = verifyReferenceField(protocol, n, info, chld,
					info.Fetch("topologies").Fetch(chld.Name()),
					"grid_function", "fields") && gfRes
			}
		}
		logValidation(info.Fetch("topologies"), gfRes)
		res = res && gfRes
	}

	logValidation(info, res)
	return res
}

func verifyMultiDomain(n, info *node.Node) bool {
	const protocol = "mesh"
	res := true

	switch n.Kind() {
	case node.Object, node.List, node.Empty:
		if n.NumChildren() == 0 {
			logInfo(info, protocol, "is an empty mesh")
		} else {
			for _, chld := range n.Children() {
				var chldInfo *node.Node
				if n.Kind() == node.Object {
					chldInfo = info.Fetch("domains").Fetch(chld.Name())
				} else {
					chldInfo = info.Fetch("domains").Append()
				}
				res = verifySingleDomain(chld, chldInfo) && res
			}
		}
		logInfo(info, protocol, "is a multi domain mesh")
	default:
		logError(info, protocol, "not an object, a list, or empty")
		res = false
	}

	logValidation(info, res)
	return res
}

// IsMultiDomain reports whether a (valid) mesh tree is the multi-domain
// parent form. The check mirrors VerifyMesh: a single domain always has
// a "coordsets" child.
func IsMultiDomain(mesh *node.Node) bool {
	return !mesh.HasChild("coordsets")
}

// NumberOfDomains returns the local domain count of a valid mesh tree.
func NumberOfDomains(mesh *node.Node) int {
	if !IsMultiDomain(mesh) {
		return 1
	}
	return mesh.NumChildren()
}

// Domains returns the domain nodes of a valid mesh tree in order.
func Domains(mesh *node.Node) []*node.Node {
	if !IsMultiDomain(mesh) {
		return []*node.Node{mesh}
	}
	return append([]*node.Node(nil), mesh.Children()...)
}

// ToMultiDomain rewrites dest as the multi-domain form of mesh, aliasing
// rather than copying domain data.
func ToMultiDomain(mesh, dest *node.Node) {
	dest.Reset()
	if IsMultiDomain(mesh) {
		dest.SetExternalNode(mesh)
		return
	}
	dest.Append().SetExternalNode(mesh)
}
