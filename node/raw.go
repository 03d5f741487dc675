package node

import (
	"encoding/binary"
	"math"
)

// Numeric constrains the arithmetic types an Accessor can coerce to and
// that the generic set/get helpers accept.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func byteOrder(e Endianness) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// rawRead decodes one element of kind k from b (which must hold at least
// k.ElementBytes() bytes) into the widest representation of its class:
// signed values widen to int64, unsigned to uint64, floats to float64.
// The class is returned via exactly one of the three results being
// meaningful; cls is 0 for signed, 1 for unsigned, 2 for float.
func rawRead(b []byte, k Kind, order binary.ByteOrder) (i int64, u uint64, f float64, cls int) {
	switch k {
	case Int8:
		return int64(int8(b[0])), 0, 0, 0
	case Int16:
		return int64(int16(order.Uint16(b))), 0, 0, 0
	case Int32:
		return int64(int32(order.Uint32(b))), 0, 0, 0
	case Int64:
		return int64(order.Uint64(b)), 0, 0, 0
	case UInt8, Char8:
		return 0, uint64(b[0]), 0, 1
	case UInt16:
		return 0, uint64(order.Uint16(b)), 0, 1
	case UInt32:
		return 0, uint64(order.Uint32(b)), 0, 1
	case UInt64:
		return 0, order.Uint64(b), 0, 1
	case Float32:
		return 0, 0, float64(math.Float32frombits(order.Uint32(b))), 2
	case Float64:
		return 0, 0, math.Float64frombits(order.Uint64(b)), 2
	}
	fatalf("rawRead: kind %s is not a leaf kind", k)
	return 0, 0, 0, 0
}

// isFloatType reports whether T is one of the floating-point types.
func isFloatType[T Numeric]() bool {
	var t T
	switch any(t).(type) {
	case float32, float64:
		return true
	}
	return false
}

// convertRead coerces a decoded element to T following the promotion
// table: integer widening is exact, narrowing truncates, signed and
// unsigned reinterpret the bit pattern, and integer/float crossings use
// round to nearest.
func convertRead[T Numeric](i int64, u uint64, f float64, cls int) T {
	switch cls {
	case 0:
		return T(i)
	case 1:
		return T(u)
	default:
		if isFloatType[T]() {
			return T(f)
		}
		return T(int64(math.Round(f)))
	}
}

// readElement decodes one element of kind k at b and coerces it to T.
func readElement[T Numeric](b []byte, k Kind, order binary.ByteOrder) T {
	i, u, f, cls := rawRead(b, k, order)
	return convertRead[T](i, u, f, cls)
}

// writeElement encodes v as kind k at b, coercing by the same promotion
// table used for reads.
func writeElement[T Numeric](b []byte, k Kind, order binary.ByteOrder, v T) {
	if isFloatType[T]() {
		f := float64(v)
		switch k {
		case Float32:
			order.PutUint32(b, math.Float32bits(float32(f)))
			return
		case Float64:
			order.PutUint64(b, math.Float64bits(f))
			return
		}
		// float -> integer rounds to nearest
		writeInt(b, k, order, int64(math.Round(f)))
		return
	}
	switch k {
	case Float32:
		order.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		order.PutUint64(b, math.Float64bits(float64(v)))
	default:
		writeInt(b, k, order, int64(v))
	}
}

func writeInt(b []byte, k Kind, order binary.ByteOrder, v int64) {
	switch k {
	case Int8, UInt8, Char8:
		b[0] = byte(v)
	case Int16, UInt16:
		order.PutUint16(b, uint16(v))
	case Int32, UInt32:
		order.PutUint32(b, uint32(v))
	case Int64, UInt64:
		order.PutUint64(b, uint64(v))
	default:
		fatalf("writeInt: kind %s is not a leaf kind", k)
	}
}

// kindOf maps a Go arithmetic type to its element kind.
func kindOf[T Numeric]() Kind {
	var t T
	switch any(t).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return UInt8
	case uint16:
		return UInt16
	case uint32:
		return UInt32
	case uint64:
		return UInt64
	case float32:
		return Float32
	default:
		return Float64
	}
}
