// Package bls12381 implements the field, curve, pairing and GT arithmetic
// for the BLS12-381 curve, the flagship curve of this module (spec.md
// section 2, components C-K). It is the curve every BLS signature (package
// bls) and KZG (package kzg) operation in this repository runs over.
//
// Layout mirrors the teacher's per-curve file split (bls12381_fp.go,
// bls12381_fp2.go, bls12381_g1.go, bls12381_g2.go, bls12381_pairing.go in
// the source this package is adapted from) but replaces their math/big
// arithmetic with the fixed-width Montgomery arithmetic of package field,
// per spec.md section 4.B.
package bls12381

import (
	"math/big"

	"github.com/eth2030/curvecore/field"
)

// Curve parameters. p is the base-field modulus, r the scalar-field
// (subgroup) order, b/b2 the short-Weierstrass coefficients for G1 and
// the G2 twist. x is the BLS parameter; the pairing loop count and the
// cofactors are all derived from it.
var (
	pHex = "1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab"
	rHex = "73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001"

	// Set by initializers rather than in init(), so that Go's dependency
	// ordering computes them before any other file's package-level
	// variables or init functions that use them.
	fpModulus = field.NewModulus(mustBig(pHex, 16).Bytes())
	frModulus = field.NewModulus(mustBig(rHex, 16).Bytes())

	// xParam is the BLS12-381 curve seed, -0xd201000000010000 (negative).
	xParamAbs = mustBig("d201000000010000", 16)
	xNegative = true

	// curve coefficients: G1: y^2 = x^3 + 4. G2 twist: y^2 = x^3 + 4(1+u).
	bG1 = FpFromUint64(4)

	// h1, h2 are the G1/G2 cofactors.
	h1Big = mustBig("396c8c005555e1568c00aaab0000aaab", 16)
	h2Big = mustBig("5d543a95414e7f1091d50792876a202cd91de4547085abaa68a205b2e5a7ddfa628f1cb4d9e82ef21537e293a6691ae1616ec6e786f0c70cf1c38e31c7238e5", 16)

	// finalExpHardExponent is (p^4-p^2+1)/r, the hard part of the final
	// exponentiation; finalexp.go raises to it directly instead of using
	// an addition chain.
	finalExpHardExponent *big.Int
	p12Minus2            *big.Int
	p2Big                *big.Int
	p6Minus2             *big.Int
	pBig                 = mustBig(pHex, 16)
	rBig                 = mustBig(rHex, 16)
)

func mustBig(s string, base int) *big.Int {
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		panic("bls12381: bad constant " + s)
	}
	return v
}

func init() {
	p := pBig
	r := rBig
	p2 := new(big.Int).Mul(p, p)
	p2Big = p2
	p4 := new(big.Int).Mul(p2, p2)
	p6 := new(big.Int).Mul(p4, p2)
	p12 := new(big.Int).Mul(p6, p6)

	p12Minus1 := new(big.Int).Sub(p12, big.NewInt(1))
	finalExpAll := new(big.Int).Div(p12Minus1, r)
	_ = finalExpAll // kept for reference; pairing.go splits easy/hard

	hard := new(big.Int).Sub(p4, p2)
	hard.Add(hard, big.NewInt(1))
	hard.Div(hard, r)
	finalExpHardExponent = hard

	p12Minus2 = new(big.Int).Sub(p12, big.NewInt(2))
	p6Minus2 = new(big.Int).Sub(p6, big.NewInt(2))
}
