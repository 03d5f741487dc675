// Package blueprint implements the mesh conventions layer over the node
// tree: validation of mesh-conforming trees, conversion between coordset
// and topology flavors, derivation of the full dimensional cascade of an
// unstructured topology, and generation of derived topologies (points,
// lines, faces, centroids, sides, corners).
//
// Validation never raises on invalid input: Verify and VerifyMesh return
// false and record structured diagnostics in a parallel info tree, with
// a "valid" marker at every inspected node. Converters and generators
// produce new conforming subtrees without mutating their sources;
// calling them on non-conforming input is fatal.
package blueprint
