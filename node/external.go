package node

import "unsafe"

// castToBytes reinterprets a numeric slice as its backing bytes without
// copying. Element order follows the platform byte order, which matches
// DefaultEndian on all supported targets.
func castToBytes[T Numeric](vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*size)
}
