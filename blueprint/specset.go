package blueprint

import "github.com/robert-malhotra/go-meshdata/node"

func verifySpecset(specset, info *node.Node) bool {
	const protocol = "mesh::specset"
	res := verifyStringField(protocol, specset, info, "matset")

	if !verifyObjectField(protocol, specset, info, "matset_values", objectOpts{}) {
		res = false
	} else {
		specmatsRes := true
		var specmatsLen int64

		specmats := specset.ChildByName("matset_values")
		specmatsInfo := info.Fetch("matset_values")
		for _, specmat := range specmats.Children() {
			if !verifyMcarrayField(protocol, specmats, specmatsInfo, specmat.Name()) {
				specmatsRes = false
				continue
			}
			// per-material species mcarrays must agree in length
			matLen := specmat.Child(0).DType().NumElements
			if specmatsLen == 0 {
				specmatsLen = matLen
			} else if specmatsLen != matLen {
				logError(specmatsInfo, protocol, quote(specmat.Name())+
					"has mismatched length relative to other material mcarrays in this specset")
				specmatsRes = false
			}
		}

		logValidation(specmatsInfo, specmatsRes)
		res = res && specmatsRes
	}

	logValidation(info, res)
	return res
}

func verifySpecsetIndex(idx, info *node.Node) bool {
	const protocol = "mesh::specset::index"
	res := verifyStringField(protocol, idx, info, "matset")
	res = verifyObjectField(protocol, idx, info, "species", objectOpts{}) && res
	res = verifyStringField(protocol, idx, info, "path") && res
	logValidation(info, res)
	return res
}
