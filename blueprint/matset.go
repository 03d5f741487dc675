package blueprint

import (
	"github.com/robert-malhotra/go-meshdata/internal/o2m"
	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyMatsetMaterialMap(protocol string, matset, info *node.Node) bool {
	res := verifyObjectField(protocol, matset, info, "material_map", objectOpts{})
	if res {
		for _, chld := range matset.ChildByName("material_map").Children() {
			if !chld.DType().IsInteger() {
				logError(info, protocol,
					quote("material_map")+"child "+quote(chld.Name())+"is not an integer leaf")
				res = false
			}
		}
	}
	logValidation(info, res)
	return res
}

func verifyMatset(matset, info *node.Node) bool {
	const protocol = "mesh::matset"
	res := true
	matMapOptional := true

	res = verifyStringField(protocol, matset, info, "topology") && res

	vfsRes := verifyFieldExists(protocol, matset, info, "volume_fractions")
	res = res && vfsRes
	if vfsRes {
		vfs := matset.ChildByName("volume_fractions")
		switch {
		case vfs.DType().IsNumber():
			logInfo(info, protocol, "detected uni-buffer matset")
			// uni-buffer: interleaved sparse values with material ids and
			// a required material map
			matMapOptional = false
			vfsRes = verifyIntegerField(protocol, matset, info, "material_ids") && vfsRes
			vfsRes = o2m.Verify(matset, info) && vfsRes
			res = res && vfsRes
		case vfs.Kind() == node.Object:
			logInfo(info, protocol, "detected multi-buffer matset")
			if verifyObjectField(protocol, matset, info, "volume_fractions", objectOpts{}) {
				vfsInfo := info.Fetch("volume_fractions")
				for _, mat := range vfs.Children() {
					if mat.Kind() == node.Object {
						vfsRes = verifyO2MRelationField(protocol, vfs, vfsInfo, mat.Name()) && vfsRes
					} else {
						vfsRes = verifyNumberField(protocol, vfs, vfsInfo, mat.Name()) && vfsRes
					}
				}
				logValidation(vfsInfo, vfsRes)
			} else {
				vfsRes = false
			}
			res = res && vfsRes
		default:
			logError(info, protocol, "'volume_fractions' isn't the correct type")
			res = false
			vfsRes = false
		}
	}

	if !matMapOptional && !matset.HasChild("material_map") {
		logError(info, protocol, "'material_map' is missing (required for uni-buffer matsets)")
		res = false
	}
	if matset.HasChild("material_map") {
		if matMapOptional {
			logOptional(info, protocol, "includes material_map")
		}
		res = verifyMatsetMaterialMap(protocol, matset, info) && res

		// multi-buffer material maps must name a subset of the volume
		// fraction children
		if matset.HasChild("volume_fractions") &&
			matset.ChildByName("volume_fractions").Kind() == node.Object {
			for _, chld := range matset.ChildByName("material_map").Children() {
				if !matset.ChildByName("volume_fractions").HasChild(chld.Name()) {
					logError(info, protocol, "'material_map' hierarchy must be a subset of "+
						"'volume_fractions'; missing child "+quote(chld.Name()))
					res = false
				}
			}
		}
	}

	if matset.HasChild("element_ids") && vfsRes {
		eids := matset.ChildByName("element_ids")
		vfs := matset.ChildByName("volume_fractions")
		switch {
		case eids.Kind() == node.Object && vfs.Kind() == node.Object:
			eidsRes := true
			if !sameChildNames(eids, vfs) {
				logError(info, protocol, "'element_ids' hierarchy must match 'volume_fractions'")
				eidsRes = false
			}
			eidsInfo := info.Fetch("element_ids")
			for _, mat := range eids.Children() {
				eidsRes = verifyIntegerField(protocol, eids, eidsInfo, mat.Name()) && eidsRes
			}
			logValidation(eidsInfo, eidsRes)
			res = res && eidsRes
		case eids.DType().IsInteger() && vfs.DType().IsNumber():
			res = verifyIntegerField(protocol, matset, info, "element_ids") && res
		default:
			logError(info, protocol, "'element_ids' hierarchy must match 'volume_fractions'")
			res = false
		}
	}

	logValidation(info, res)
	return res
}

func sameChildNames(a, b *node.Node) bool {
	if a.NumChildren() != b.NumChildren() {
		return false
	}
	for _, c := range a.Children() {
		if !b.HasChild(c.Name()) {
			return false
		}
	}
	return true
}

// MatsetIsMultiBuffer reports whether a (valid) matset stores per-
// material volume-fraction arrays.
func MatsetIsMultiBuffer(matset *node.Node) bool {
	return matset.FetchExisting("volume_fractions").Kind() == node.Object
}

// MatsetIsUniBuffer reports whether a (valid) matset stores one sparse
// interleaved volume-fraction array.
func MatsetIsUniBuffer(matset *node.Node) bool {
	return matset.FetchExisting("volume_fractions").DType().IsNumber()
}

// MatsetIsElementDominant reports whether material data is ordered by
// element (no element_ids indirection).
func MatsetIsElementDominant(matset *node.Node) bool {
	return !matset.HasChild("element_ids")
}

// MatsetIsMaterialDominant reports whether material data is ordered by
// material with an element_ids indirection.
func MatsetIsMaterialDominant(matset *node.Node) bool {
	return matset.HasChild("element_ids")
}

func verifyMatsetIndex(idx, info *node.Node) bool {
	const protocol = "mesh::matset::index"
	res := verifyStringField(protocol, idx, info, "topology")
	if idx.HasChild("material_map") {
		res = verifyMatsetMaterialMap(protocol, idx, info) && res
	} else {
		res = verifyObjectField(protocol, idx, info, "materials", objectOpts{}) && res
	}
	res = verifyStringField(protocol, idx, info, "path") && res
	logValidation(info, res)
	return res
}
