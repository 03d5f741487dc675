// Package node provides a self-describing, hierarchical, typed data tree.
//
// A Node is a tree whose interior entries are ordered objects (named
// children) or lists (anonymous children), and whose leaves are typed
// numeric arrays or scalars described by a DataType. Leaves either own
// their backing buffer, alias externally owned memory, or - for interior
// nodes - carry no data at all. The three states are tracked explicitly;
// only an owning leaf ever frees (drops) its buffer.
//
// The package also provides:
//
//   - Schema: a standalone layout description that can total the byte
//     extent of a contiguous buffer and drive allocation of a Node whose
//     leaves all point into a single owned buffer.
//   - Accessor: a strided, coercing, read/write view over a leaf that
//     converts each element to a requested arithmetic type on access.
//   - Lossless structural conversion between numeric representations
//     (ToKind), deep and shallow assignment, element-wise diffing, and a
//     canonical annotated-JSON text form that round-trips structure,
//     names, kinds, and values exactly.
//
// Failures that indicate programming errors (out-of-range access, strict
// type mismatches, fetches of missing paths) are routed through a
// process-wide error handler; see SetErrorHandler.
package node
