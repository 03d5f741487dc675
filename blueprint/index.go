package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyIndex(n, info *node.Node) bool {
	const protocol = "mesh::index"
	res := true

	if !verifyObjectField(protocol, n, info, "coordsets", objectOpts{}) {
		res = false
	} else {
		csetRes := true
		for _, chld := range n.ChildByName("coordsets").Children() {
			csetRes = verifyCoordsetIndex(chld, info.Fetch("coordsets").Fetch(chld.Name())) && csetRes
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
			topoRes = verifyTopologyIndex(chld, chldInfo) && topoRes
			topoRes = verifyReferenceField(protocol, n, info, chld, chldInfo,
				"coordset", "coordsets") && topoRes
		}
		logValidation(info.Fetch("topologies"), topoRes)
		res = res && topoRes
	}

	optional := []struct {
		name   string
		verify func(*node.Node, *node.Node) bool
		ref    [2]string
	}{
		{"matsets", verifyMatsetIndex, [2]string{"topology", "topologies"}},
		{"specsets", verifySpecsetIndex, [2]string{"matset", "matsets"}},
		{"adjsets", verifyAdjsetIndex, [2]string{"topology", "topologies"}},
		{"nestsets", verifyNestsetIndex, [2]string{"topology", "topologies"}},
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

	if n.HasChild("fields") {
		if !verifyObjectField(protocol, n, info, "fields", objectOpts{}) {
			res = false
		} else {
			fieldRes := true
			for _, chld := range n.ChildByName("fields").Children() {
				chldInfo := info.Fetch("fields").Fetch(chld.Name())
				fieldRes = verifyFieldIndex(chld, chldInfo) && fieldRes
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

	logValidation(info, res)
	return res
}

// GenerateIndex builds the index tree that lets a consumer locate and
// type every entity of a mesh without loading its data. Multi-domain
// meshes contribute the union of their domains' entries. refPath is
// prepended to each entry's data path.
func GenerateIndex(mesh *node.Node, refPath string, numberOfDomains int) *node.Node {
	if mesh.Kind() == node.Empty {
		node.Fatalf("cannot generate mesh index for empty mesh")
	}
	out := node.New()
	if IsMultiDomain(mesh) {
		for _, dom := range mesh.Children() {
			mergeIndex(out, generateDomainIndex(dom, refPath))
		}
	} else {
		mergeIndex(out, generateDomainIndex(mesh, refPath))
	}
	node.Set(out.Fetch("state/number_of_domains"), int64(numberOfDomains))
	return out
}

// mergeIndex adds entries of src missing from dst; domains may carry
// different fields, so the index is the union.
func mergeIndex(dst, src *node.Node) {
	for _, c := range src.Children() {
		if !dst.HasChild(c.Name()) {
			dst.Fetch(c.Name()).SetNode(c)
			continue
		}
		if c.Kind() == node.Object {
			mergeIndex(dst.ChildByName(c.Name()), c)
		}
	}
}

func generateDomainIndex(mesh *node.Node, refPath string) *node.Node {
	if !mesh.HasChild("coordsets") {
		node.Fatalf("cannot generate mesh index: input mesh missing 'coordsets'")
	}
	out := node.New()

	if mesh.HasChild("state") {
		if mesh.HasPath("state/cycle") {
			out.Fetch("state/cycle").SetNode(mesh.FetchExisting("state/cycle"))
		}
		if mesh.HasPath("state/time") {
			out.Fetch("state/time").SetNode(mesh.FetchExisting("state/time"))
		}
		out.Fetch("state/path").SetString(node.JoinPath(refPath, "state"))
	}

	for _, coordset := range mesh.ChildByName("coordsets").Children() {
		idx := out.Fetch("coordsets").Fetch(coordset.Name())
		idx.Fetch("type").SetString(coordset.FetchString("type"))
		for _, axis := range CoordsetAxes(coordset) {
			idx.Fetch("coord_system/axes").Fetch(axis)
		}
		idx.Fetch("coord_system/type").SetString(CoordsetSystem(coordset))
		idx.Fetch("path").SetString(node.JoinPath(refPath, "coordsets", coordset.Name()))
	}

	if mesh.HasChild("topologies") {
		for _, topo := range mesh.ChildByName("topologies").Children() {
			idx := out.Fetch("topologies").Fetch(topo.Name())
			idx.Fetch("type").SetString(topo.FetchString("type"))
			idx.Fetch("coordset").SetString(topo.FetchString("coordset"))
			idx.Fetch("path").SetString(node.JoinPath(refPath, "topologies", topo.Name()))
			if topo.HasChild("grid_function") {
				idx.Fetch("grid_function").SetString(topo.FetchString("grid_function"))
			}
		}
	}

	if mesh.HasChild("matsets") {
		for _, matset := range mesh.ChildByName("matsets").Children() {
			idx := out.Fetch("matsets").Fetch(matset.Name())
			idx.Fetch("topology").SetString(matset.FetchString("topology"))
			switch {
			case matset.HasChild("material_map"):
				idx.Fetch("material_map").SetNode(matset.ChildByName("material_map"))
			case matset.HasChild("volume_fractions"):
				// derive the map from volume-fraction child order
				for mi, mat := range matset.ChildByName("volume_fractions").Children() {
					node.Set(idx.Fetch("material_map").Fetch(mat.Name()), int64(mi))
				}
			default:
				node.Fatalf("invalid matset flavor: input does not conform to the mesh protocol")
			}
			idx.Fetch("path").SetString(node.JoinPath(refPath, "matsets", matset.Name()))
		}
	}

	if mesh.HasChild("specsets") {
		for _, specset := range mesh.ChildByName("specsets").Children() {
			idx := out.Fetch("specsets").Fetch(specset.Name())
			idx.Fetch("matset").SetString(specset.FetchString("matset"))
			for _, spec := range specset.FetchExisting("matset_values").Child(0).Children() {
				idx.Fetch("species").Fetch(spec.Name())
			}
			idx.Fetch("path").SetString(node.JoinPath(refPath, "specsets", specset.Name()))
		}
	}

	if mesh.HasChild("fields") {
		for _, fld := range mesh.ChildByName("fields").Children() {
			idx := out.Fetch("fields").Fetch(fld.Name())
			ncomps := int64(1)
			if fld.HasChild("values") {
				if fld.ChildByName("values").Kind() == node.Object {
					ncomps = int64(fld.ChildByName("values").NumChildren())
				}
			} else if fld.HasChild("matset_values") {
				if fld.FetchExisting("matset_values").Child(0).Kind() == node.Object {
					ncomps = int64(fld.FetchExisting("matset_values").Child(0).NumChildren())
				}
			}
			node.Set(idx.Fetch("number_of_components"), ncomps)

			if fld.HasChild("topology") {
				idx.Fetch("topology").SetString(fld.FetchString("topology"))
			}
			if fld.HasChild("matset") {
				idx.Fetch("matset").SetString(fld.FetchString("matset"))
			}
			if fld.HasChild("association") {
				idx.Fetch("association").SetNode(fld.ChildByName("association"))
			} else {
				idx.Fetch("basis").SetNode(fld.ChildByName("basis"))
			}
			idx.Fetch("path").SetString(node.JoinPath(refPath, "fields", fld.Name()))
		}
	}

	if mesh.HasChild("adjsets") {
		for _, adjset := range mesh.ChildByName("adjsets").Children() {
			idx := out.Fetch("adjsets").Fetch(adjset.Name())
			idx.Fetch("association").SetString(adjset.FetchString("association"))
			idx.Fetch("topology").SetString(adjset.FetchString("topology"))
			idx.Fetch("path").SetString(node.JoinPath(refPath, "adjsets", adjset.Name()))
		}
	}

	if mesh.HasChild("nestsets") {
		for _, nestset := range mesh.ChildByName("nestsets").Children() {
			idx := out.Fetch("nestsets").Fetch(nestset.Name())
			idx.Fetch("association").SetString(nestset.FetchString("association"))
			idx.Fetch("topology").SetString(nestset.FetchString("topology"))
			idx.Fetch("path").SetString(node.JoinPath(refPath, "nestsets", nestset.Name()))
		}
	}

	return out
}
