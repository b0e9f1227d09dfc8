package bls12381

import "github.com/eth2030/curvecore/field"

// Fp is a BLS12-381 base-field element, stored in Montgomery form (spec.md
// section 3). It is a plain array value: copyable, comparable by Equal,
// and zero-valued as the additive identity's *non-Montgomery* zero (0*R =
// 0, so the zero value of Fp correctly represents 0 with no explicit
// constructor needed).
type Fp field.BigInt

// FpZero returns the additive identity.
func FpZero() Fp { return Fp{} }

// FpOne returns the multiplicative identity.
func FpOne() Fp { return Fp(fpModulus.ROne) }

// FpFromUint64 lifts a small integer into Montgomery form.
func FpFromUint64(v uint64) Fp {
	plain := field.BigInt{v}
	var mont field.BigInt
	field.ToMontgomery(&mont, &plain, fpModulus)
	return Fp(mont)
}

// FpFromBytesBE decodes a big-endian 48-byte field element, rejecting
// values >= p (spec.md section 6/7, Codec error kind).
func FpFromBytesBE(b []byte) (Fp, bool) {
	var plain field.BigInt
	plain.SetBytesBE(b)
	if plain.Cmp(&fpModulus.Value) >= 0 {
		return Fp{}, false
	}
	var mont field.BigInt
	field.ToMontgomery(&mont, &plain, fpModulus)
	return Fp(mont), true
}

// BytesBE encodes z as a big-endian 48-byte field element.
func (z Fp) BytesBE() [48]byte {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, fpModulus)
	var out [48]byte
	copy(out[:], plain.BytesBE(48))
	return out
}

func (z *Fp) Add(x, y *Fp) *Fp {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.Add(&r, &xb, &yb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) Sub(x, y *Fp) *Fp {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.Sub(&r, &xb, &yb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) Neg(x *Fp) *Fp {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.Neg(&r, &xb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) Mul(x, y *Fp) *Fp {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.MontMul(&r, &xb, &yb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) Square(x *Fp) *Fp {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.MontSquare(&r, &xb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) Double(x *Fp) *Fp {
	return z.Add(x, x)
}

// MulSmall multiplies by a small plain (non-Montgomery) integer, used for
// curve-formula constants like 3 and 4 where a full Montgomery multiply
// by a constant would otherwise require that constant in Montgomery form.
func (z *Fp) MulSmall(x *Fp, c uint64) *Fp {
	cc := FpFromUint64(c)
	return z.Mul(x, &cc)
}

func (z *Fp) Inv(x *Fp) *Fp {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.Inv(&r, &xb, fpModulus)
	*z = Fp(r)
	return z
}

func (z *Fp) InvVartime(x *Fp) *Fp {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.InvVartime(&r, &xb, fpModulus)
	*z = Fp(r)
	return z
}

func (z Fp) IsZero() bool {
	zz := field.BigInt(z)
	return zz.IsZero()
}

func (z Fp) Equal(x Fp) bool {
	zz, xz := field.BigInt(z), field.BigInt(x)
	return zz.Equal(&xz)
}

// Sgn0 returns the hash-to-curve "sign" of z: the parity of its unique
// representative in [0, p).
func (z Fp) Sgn0() int {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, fpModulus)
	return int(plain.Bit(0))
}

// Sqrt returns a square root of z, if one exists.
func (z Fp) Sqrt() (Fp, bool) {
	zz := field.BigInt(z)
	r, ok := field.Sqrt(&zz, fpModulus)
	return Fp(r), ok
}

// IsSquare reports whether z is a quadratic residue.
func (z Fp) IsSquare() bool {
	zz := field.BigInt(z)
	return field.IsSquare(&zz, fpModulus)
}

// CMov sets z = x if flag is true, else z = y, using a mask-and-blend
// selection rather than a data-dependent branch (spec.md section 5).
func (z *Fp) CMov(x, y *Fp, flag bool) *Fp {
	f := uint64(0)
	if flag {
		f = 1
	}
	*z = *y
	zb, xb := field.BigInt(*z), field.BigInt(*x)
	field.CMov(&zb, &xb, f)
	*z = Fp(zb)
	return z
}
