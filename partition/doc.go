// Package partition assigns every element of a distributed multi-domain
// mesh to one of N partitions by preparing the flat element arrays an
// external graph partitioner expects, invoking it across a parallel
// transport, and writing the resulting assignment back into each domain
// as a new element field.
//
// The transport and the partitioner are both interfaces: the driver
// needs only a rank/size query, an element-wise max reduction over
// integer vectors, and one blocking partitioning call. SelfTransport
// serves the single-process case.
package partition
