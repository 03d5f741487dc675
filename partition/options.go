package partition

import "github.com/robert-malhotra/go-meshdata/node"

// options are the recognized keys of the configuration subtree passed
// to the driver.
type options struct {
	topology     string
	fieldPrefix  string
	partitions   int64
	ncommonNodes int64

	hasTopology   bool
	hasPartitions bool
	hasNcommon    bool
}

// parseOptions reads the recognized keys from an options node; nil
// means all defaults.
func parseOptions(opts *node.Node) options {
	var out options
	if opts == nil {
		return out
	}
	if opts.HasChild("topology") {
		out.topology = opts.FetchString("topology")
		out.hasTopology = true
	}
	if opts.HasChild("field_prefix") {
		out.fieldPrefix = opts.FetchString("field_prefix")
	}
	if opts.HasChild("partitions") {
		out.partitions = node.As[int64](opts.FetchExisting("partitions")).At(0)
		out.hasPartitions = true
	}
	if opts.HasChild("parmetis_ncommonnodes") {
		out.ncommonNodes = node.As[int64](opts.FetchExisting("parmetis_ncommonnodes")).At(0)
		out.hasNcommon = true
	}
	return out
}
