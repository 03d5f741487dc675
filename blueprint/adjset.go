package blueprint

import (
	"sort"
	"strconv"

	"github.com/robert-malhotra/go-meshdata/node"
)

func verifyAdjset(adjset, info *node.Node) bool {
	const protocol = "mesh::adjset"
	res := verifyStringField(protocol, adjset, info, "topology")
	res = verifyFieldExists(protocol, adjset, info, "association") &&
		verifyAssociation(adjset.ChildByName("association"), info.Fetch("association")) && res

	if !verifyObjectField(protocol, adjset, info, "groups", objectOpts{allowEmpty: true}) {
		res = false
	} else {
		groupsRes := true
		for _, group := range adjset.ChildByName("groups").Children() {
			groupInfo := info.Fetch("groups").Fetch(group.Name())
			groupRes := verifyIntegerField(protocol, group, groupInfo, "neighbors")

			switch {
			case group.HasChild("values"):
				groupRes = verifyIntegerField(protocol, group, groupInfo, "values") && groupRes
			case group.HasChild("windows"):
				groupRes = verifyObjectField(protocol, group, groupInfo, "windows", objectOpts{}) && groupRes
				windowsRes := true
				for _, wndw := range group.ChildByName("windows").Children() {
					wndwInfo := groupInfo.Fetch("windows").Fetch(wndw.Name())
					windowRes := verifyFieldExists(protocol, wndw, wndwInfo, "origin") &&
						verifyLogicalDims(wndw.ChildByName("origin"), wndwInfo.Fetch("origin"))
					windowRes = verifyFieldExists(protocol, wndw, wndwInfo, "dims") &&
						verifyLogicalDims(wndw.ChildByName("dims"), wndwInfo.Fetch("dims")) && windowRes
					windowRes = verifyFieldExists(protocol, wndw, wndwInfo, "ratio") &&
						verifyLogicalDims(wndw.ChildByName("ratio"), wndwInfo.Fetch("ratio")) && windowRes

					// origin, dims, and ratio must agree in dimension
					if windowRes {
						windowDim := wndw.ChildByName("origin").NumChildren()
						windowRes = verifyObjectField(protocol, wndw, wndwInfo, "dims",
							objectOpts{numChildren: windowDim}) && windowRes
						windowRes = verifyObjectField(protocol, wndw, wndwInfo, "ratio",
							objectOpts{numChildren: windowDim}) && windowRes
					}

					logValidation(wndwInfo, windowRes)
					windowsRes = windowsRes && windowRes
				}
				logValidation(groupInfo.Fetch("windows"), windowsRes)
				groupRes = groupRes && windowsRes

				if group.HasChild("orientation") {
					groupRes = verifyIntegerField(protocol, group, groupInfo, "orientation") && groupRes
				}
			}

			logValidation(groupInfo, groupRes)
			groupsRes = groupsRes && groupRes
		}
		logValidation(info.Fetch("groups"), groupsRes)
		res = res && groupsRes
	}

	logValidation(info, res)
	return res
}

// AdjsetIsPairwise reports whether every group of a (valid) adjset names
// exactly one neighbor.
func AdjsetIsPairwise(adjset *node.Node) bool {
	for _, group := range adjset.FetchExisting("groups").Children() {
		if group.FetchExisting("neighbors").DType().NumElements != 1 {
			return false
		}
	}
	return true
}

// AdjsetIsMaxshare reports whether no entity id appears in more than one
// group of a (valid) adjset.
func AdjsetIsMaxshare(adjset *node.Node) bool {
	seen := map[int64]bool{}
	for _, group := range adjset.FetchExisting("groups").Children() {
		values := node.As[int64](group.FetchExisting("values"))
		for i := int64(0); i < values.Len(); i++ {
			id := values.At(i)
			if seen[id] {
				return false
			}
			seen[id] = true
		}
	}
	return true
}

// sortedGroupNames returns an adjset's group names lexicographically,
// the canonical processing order shared across domains.
func sortedGroupNames(adjset *node.Node) []string {
	names := adjset.FetchExisting("groups").ChildNames()
	sort.Strings(names)
	return names
}

// AdjsetToPairwise rewrites an adjset into the pairwise canonical form:
// one group per neighbor, holding every entity shared with that
// neighbor in canonical group-name order.
func AdjsetToPairwise(adjset *node.Node) *node.Node {
	intKind := widestIntKind(adjset)

	neighborOrder := []int64{}
	neighborValues := map[int64][]int64{}
	for _, name := range sortedGroupNames(adjset) {
		group := adjset.FetchExisting("groups").FetchExisting(name)
		neighbors := node.As[int64](group.FetchExisting("neighbors")).Slice()
		values := node.As[int64](group.FetchExisting("values")).Slice()
		for _, nbr := range neighbors {
			if _, ok := neighborValues[nbr]; !ok {
				neighborOrder = append(neighborOrder, nbr)
			}
			neighborValues[nbr] = append(neighborValues[nbr], values...)
		}
	}
	sort.Slice(neighborOrder, func(i, j int) bool { return neighborOrder[i] < neighborOrder[j] })

	dest := node.New()
	for _, c := range adjset.Children() {
		if c.Name() != "groups" {
			dest.Fetch(c.Name()).SetNode(c)
		}
	}
	groups := dest.Fetch("groups")
	for gi, nbr := range neighborOrder {
		group := groups.Fetch(strconv.Itoa(gi))
		setIntSlice(group.Fetch("neighbors"), []int64{nbr}, intKind)
		setIntSlice(group.Fetch("values"), neighborValues[nbr], intKind)
	}
	return dest
}

// AdjsetToMaxshare rewrites an adjset into the max-share canonical
// form: one group per distinct neighbor set, each entity appearing in
// exactly the group of all neighbors that share it.
func AdjsetToMaxshare(adjset *node.Node) *node.Node {
	intKind := widestIntKind(adjset)

	// per entity: the union of neighbors over all groups naming it
	entityOrder := []int64{}
	entityNeighbors := map[int64]map[int64]bool{}
	for _, name := range sortedGroupNames(adjset) {
		group := adjset.FetchExisting("groups").FetchExisting(name)
		neighbors := node.As[int64](group.FetchExisting("neighbors")).Slice()
		values := node.As[int64](group.FetchExisting("values")).Slice()
		for _, id := range values {
			set, ok := entityNeighbors[id]
			if !ok {
				set = map[int64]bool{}
				entityNeighbors[id] = set
				entityOrder = append(entityOrder, id)
			}
			for _, nbr := range neighbors {
				set[nbr] = true
			}
		}
	}

	// group entities by neighbor set, keeping entity encounter order
	groupOrder := []string{}
	groupNeighbors := map[string][]int64{}
	groupValues := map[string][]int64{}
	for _, id := range entityOrder {
		nbrs := make([]int64, 0, len(entityNeighbors[id]))
		for nbr := range entityNeighbors[id] {
			nbrs = append(nbrs, nbr)
		}
		sort.Slice(nbrs, func(i, j int) bool { return nbrs[i] < nbrs[j] })
		key := faceKey(nbrs)
		if _, ok := groupNeighbors[key]; !ok {
			groupOrder = append(groupOrder, key)
			groupNeighbors[key] = nbrs
		}
		groupValues[key] = append(groupValues[key], id)
	}

	dest := node.New()
	for _, c := range adjset.Children() {
		if c.Name() != "groups" {
			dest.Fetch(c.Name()).SetNode(c)
		}
	}
	groups := dest.Fetch("groups")
	for gi, key := range groupOrder {
		group := groups.Fetch(strconv.Itoa(gi))
		setIntSlice(group.Fetch("neighbors"), groupNeighbors[key], intKind)
		setIntSlice(group.Fetch("values"), groupValues[key], intKind)
	}
	return dest
}

func verifyAdjsetIndex(idx, info *node.Node) bool {
	const protocol = "mesh::adjset::index"
	res := verifyStringField(protocol, idx, info, "topology")
	res = verifyFieldExists(protocol, idx, info, "association") &&
		verifyAssociation(idx.ChildByName("association"), info.Fetch("association")) && res
	res = verifyStringField(protocol, idx, info, "path") && res
	logValidation(info, res)
	return res
}
