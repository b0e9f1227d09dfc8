package field

import "math/bits"

// BigInt is an ordered little-endian (by limb) sequence of NLimbs words,
// interpreted as a non-negative integer < 2^(NLimbs*BitsPerLimb).
// Equality is bitwise; ordering is lexicographic from the most-significant
// limb down, per spec.md section 3.
type BigInt [NLimbs]Limb

// CMov sets z = x if flag is non-zero, else leaves z unchanged, without
// branching on flag — the exported constant-time selection primitive for
// callers outside this package (curve point and scalar selection).
func CMov(z, x *BigInt, flag uint64) {
	cmov(z, x, flag)
}

// IsZero reports whether z is the all-zero BigInt.
func (z *BigInt) IsZero() bool {
	var acc Limb
	for _, l := range z {
		acc |= l
	}
	return acc == 0
}

// Equal reports whether z == x, bitwise.
func (z *BigInt) Equal(x *BigInt) bool {
	var acc Limb
	for i := range z {
		acc |= z[i] ^ x[i]
	}
	return acc == 0
}

// Cmp returns -1, 0 or 1 as z <, ==, > x, comparing from the most
// significant limb down. Not constant-time; only used on public data
// (bucket indices, serialization bounds checks).
func (z *BigInt) Cmp(x *BigInt) int {
	for i := NLimbs - 1; i >= 0; i-- {
		if z[i] != x[i] {
			if z[i] > x[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Bit returns the i-th bit of z (0 or 1).
func (z *BigInt) Bit(i int) uint {
	limb := i / BitsPerLimb
	if limb >= NLimbs {
		return 0
	}
	return uint((z[limb] >> uint(i%BitsPerLimb)) & 1)
}

// BitLen returns the number of bits required to represent z, i.e. the
// position of the highest set bit plus one, or 0 if z is zero.
func (z *BigInt) BitLen() int {
	for i := NLimbs - 1; i >= 0; i-- {
		if z[i] != 0 {
			return i*BitsPerLimb + bits.Len64(z[i])
		}
	}
	return 0
}

// addRaw computes z = x+y over the full NLimbs width, ignoring the modulus,
// and returns the final carry-out. Used internally by modular add/sub.
func addRaw(z, x, y *BigInt) Limb {
	var c Limb
	for i := 0; i < NLimbs; i++ {
		z[i], c = addc(x[i], y[i], c)
	}
	return c
}

// subRaw computes z = x-y over the full NLimbs width, ignoring the modulus,
// and returns the final borrow-out (1 if x < y).
func subRaw(z, x, y *BigInt) Limb {
	var b Limb
	for i := 0; i < NLimbs; i++ {
		z[i], b = subb(x[i], y[i], b)
	}
	return b
}

// SetBytesBE sets z from a big-endian byte slice, which must be no longer
// than NLimbs*8 bytes. Excess leading bytes beyond the capacity are not
// permitted; callers validating wire formats check length themselves first
// (spec.md section 6).
func (z *BigInt) SetBytesBE(b []byte) {
	for i := range z {
		z[i] = 0
	}
	for i, bi := 0, len(b)-1; bi >= 0; i, bi = i+1, bi-1 {
		limb := i / 8
		shift := uint(i%8) * 8
		if limb >= NLimbs {
			break
		}
		z[limb] |= Limb(b[bi]) << shift
	}
}

// BytesBE returns z as a big-endian byte slice of the given width (the
// caller picks width based on the curve's field size, e.g. 48 for
// BLS12-381 Fp, 32 for its Fr). Truncates leading limbs that don't fit;
// callers must pick a width large enough for their modulus.
func (z *BigInt) BytesBE(width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		limb := i / 8
		shift := uint(i%8) * 8
		if limb >= NLimbs {
			continue
		}
		out[width-1-i] = byte(z[limb] >> shift)
	}
	return out
}
