package bls12381

import (
	"math/big"

	"github.com/eth2030/curvecore/field"
)

// Fr is a BLS12-381 scalar-field element (the subgroup order r), stored in
// Montgomery form. Used for all secret/public scalars: BLS secret keys,
// MSM coefficients, KZG evaluation points.
type Fr field.BigInt

func FrZero() Fr { return Fr{} }
func FrOne() Fr  { return Fr(frModulus.ROne) }

// FrModulus returns the scalar-field order r as a big.Int. Exposed for
// callers (package kzg's roots-of-unity domain construction) that need to
// do big.Int exponent arithmetic outside the Montgomery representation.
func FrModulus() *big.Int {
	return new(big.Int).Set(rBig)
}

func FrFromUint64(v uint64) Fr {
	plain := field.BigInt{v}
	var mont field.BigInt
	field.ToMontgomery(&mont, &plain, frModulus)
	return Fr(mont)
}

// FrFromBytesBE decodes a big-endian 32-byte scalar, rejecting values >= r.
func FrFromBytesBE(b []byte) (Fr, bool) {
	var plain field.BigInt
	plain.SetBytesBE(b)
	if plain.Cmp(&frModulus.Value) >= 0 {
		return Fr{}, false
	}
	var mont field.BigInt
	field.ToMontgomery(&mont, &plain, frModulus)
	return Fr(mont), true
}

// FrFromBytesReduced reduces an arbitrary-length big-endian byte string
// mod r rather than rejecting out-of-range input — used for deriving
// scalars from hash output (key derivation, Fiat-Shamir challenges),
// where reduction rather than rejection is the correct behaviour.
func FrFromBytesReduced(b []byte) Fr {
	var plain field.BigInt
	// Reduce via iterative shift-and-subtract over the full byte string,
	// 8 bits at a time, since b may be wider than field.BigInt's capacity.
	for _, byt := range b {
		// plain = plain*256 + byt, reduced mod r after each step.
		var shifted field.BigInt
		mul256(&shifted, &plain)
		var withByte field.BigInt
		field.Add(&withByte, &shifted, &field.BigInt{uint64(byt)}, frModulus)
		plain = withByte
	}
	var mont field.BigInt
	field.ToMontgomery(&mont, &plain, frModulus)
	return Fr(mont)
}

// mul256 computes z = (x*256) mod r by eight doublings.
func mul256(z, x *field.BigInt) {
	acc := *x
	for i := 0; i < 8; i++ {
		var next field.BigInt
		field.Add(&next, &acc, &acc, frModulus)
		acc = next
	}
	*z = acc
}

func (z Fr) BytesBE() [32]byte {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, frModulus)
	var out [32]byte
	copy(out[:], plain.BytesBE(32))
	return out
}

func (z *Fr) Add(x, y *Fr) *Fr {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.Add(&r, &xb, &yb, frModulus)
	*z = Fr(r)
	return z
}

func (z *Fr) Sub(x, y *Fr) *Fr {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.Sub(&r, &xb, &yb, frModulus)
	*z = Fr(r)
	return z
}

func (z *Fr) Neg(x *Fr) *Fr {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.Neg(&r, &xb, frModulus)
	*z = Fr(r)
	return z
}

func (z *Fr) Mul(x, y *Fr) *Fr {
	xb, yb := field.BigInt(*x), field.BigInt(*y)
	var r field.BigInt
	field.MontMul(&r, &xb, &yb, frModulus)
	*z = Fr(r)
	return z
}

func (z *Fr) Square(x *Fr) *Fr {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.MontSquare(&r, &xb, frModulus)
	*z = Fr(r)
	return z
}

func (z *Fr) Inv(x *Fr) *Fr {
	xb := field.BigInt(*x)
	var r field.BigInt
	field.Inv(&r, &xb, frModulus)
	*z = Fr(r)
	return z
}

func (z Fr) IsZero() bool {
	zz := field.BigInt(z)
	return zz.IsZero()
}

func (z Fr) Equal(x Fr) bool {
	zz, xz := field.BigInt(z), field.BigInt(x)
	return zz.Equal(&xz)
}

// BitLen returns the bit length of z's plain (non-Montgomery) representative.
func (z Fr) BitLen() int {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, frModulus)
	return plain.BitLen()
}

// Bit returns the i-th bit of z's plain representative.
func (z Fr) Bit(i int) uint {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, frModulus)
	return plain.Bit(i)
}
