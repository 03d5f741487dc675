package partition

import "github.com/robert-malhotra/go-meshdata/node"

// Idx is the integer type exchanged with the external graph
// partitioner, matching the width the external library was built with.
// Real is its floating-point counterpart.
type Idx = int64
type Real = float64

// IdxWidth is the bit width of Idx.
const IdxWidth = 64

// IdxKind is the element kind used for arrays exchanged with the
// partitioner.
func IdxKind() node.Kind {
	if IdxWidth == 64 {
		return node.Int64
	}
	return node.Int32
}

// RealKind is the element kind matching Real.
func RealKind() node.Kind {
	return node.Float64
}

// Partitioner is the external graph-partitioning routine, seen as an
// opaque call. eldist has one entry per worker plus one, eptr one entry
// per local element plus one, and eind holds global vertex ids in
// per-element order. It returns the per-element partition assignment
// and the edge-cut count.
type Partitioner interface {
	PartMeshKway(eldist, eptr, eind []Idx,
		ncommonNodes, nparts Idx,
		tpwgts []Real, ubvec Real) (part []Idx, edgecut Idx, err error)
}

// Transport is the parallel communication surface the driver needs:
// worker identity plus one collective.
type Transport interface {
	// Rank returns this worker's index in [0, Size).
	Rank() int
	// Size returns the worker count.
	Size() int
	// MaxAllReduceInt64 overwrites global with the element-wise maximum
	// of local across all workers. Both slices have equal length.
	MaxAllReduceInt64(local, global []int64) error
}

// SelfTransport is the single-process transport: one worker, reductions
// are copies.
type SelfTransport struct{}

func (SelfTransport) Rank() int { return 0 }
func (SelfTransport) Size() int { return 1 }

func (SelfTransport) MaxAllReduceInt64(local, global []int64) error {
	copy(global, local)
	return nil
}
