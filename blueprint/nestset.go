package blueprint

import "github.com/robert-malhotra/go-meshdata/node"

func verifyNestset(nestset, info *node.Node) bool {
	const protocol = "mesh::nestset"
	res := verifyStringField(protocol, nestset, info, "topology")
	res = verifyFieldExists(protocol, nestset, info, "association") &&
		verifyAssociation(nestset.ChildByName("association"), info.Fetch("association")) && res

	if !verifyObjectField(protocol, nestset, info, "windows", objectOpts{}) {
		res = false
	} else {
		windowsRes := true
		for _, wndw := range nestset.ChildByName("windows").Children() {
			wndwInfo := info.Fetch("windows").Fetch(wndw.Name())

			windowRes := verifyIntegerField(protocol, wndw, wndwInfo, "domain_id")
			windowRes = verifyFieldExists(protocol, wndw, wndwInfo, "domain_type") &&
				verifyNestsetType(wndw.ChildByName("domain_type"), wndwInfo.Fetch("domain_type")) && windowRes

			windowRes = verifyFieldExists(protocol, wndw, wndwInfo, "ratio") &&
				verifyLogicalDims(wndw.ChildByName("ratio"), wndwInfo.Fetch("ratio")) && windowRes
			if wndw.HasChild("origin") {
				windowRes = verifyLogicalDims(wndw.ChildByName("origin"), wndwInfo.Fetch("origin")) && windowRes
			}
			if wndw.HasChild("dims") {
				windowRes = verifyLogicalDims(wndw.ChildByName("dims"), wndwInfo.Fetch("dims")) && windowRes
			}

			// ratio, origin, and dims must agree in dimension
			if windowRes {
				windowDim := wndw.ChildByName("ratio").NumChildren()
				if wndw.HasChild("origin") {
					windowRes = verifyObjectField(protocol, wndw, wndwInfo, "origin",
						objectOpts{allowEmpty: true, numChildren: windowDim}) && windowRes
				}
				if wndw.HasChild("dims") {
					windowRes = verifyObjectField(protocol, wndw, wndwInfo, "dims",
						objectOpts{allowEmpty: true, numChildren: windowDim}) && windowRes
				}
			}

			logValidation(wndwInfo, windowRes)
			windowsRes = windowsRes && windowRes
		}
		logValidation(info.Fetch("windows"), windowsRes)
		res = res && windowsRes
	}

	logValidation(info, res)
	return res
}

func verifyNestsetType(t, info *node.Node) bool {
	res := verifyEnumField("mesh::nestset::type", t, info, "", nestsetTypes)
	logValidation(info, res)
	return res
}

func verifyNestsetIndex(idx, info *node.Node) bool {
	const protocol = "mesh::nestset::index"
	res := verifyStringField(protocol, idx, info, "topology")
	res = verifyFieldExists(protocol, idx, info, "association") &&
		verifyAssociation(idx.ChildByName("association"), info.Fetch("association")) && res
	res = verifyStringField(protocol, idx, info, "path") && res
	logValidation(info, res)
	return res
}
