// Package bn254 implements the BN254 (alt_bn128) curve: field, curve and
// pairing arithmetic, matching EIP-196/EIP-197's parameters. BN254 is a
// secondary curve in this module — every BLS signature and KZG operation
// runs over BLS12-381 — so unlike package bls12381 this package is kept
// on math/big rather than given a fixed-width Montgomery rewrite: no
// component in this repository's hot path (signing, verification, MSM)
// runs over BN254, so the performance case for Montgomery arithmetic
// doesn't apply here the way it does for bls12381 (see DESIGN.md).
//
// Grounded on the teacher's bn254_fp.go/bn254_fp2.go/bn254_fp6.go/
// bn254_fp12.go.
package bn254

import "math/big"

var (
	P, _ = new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
	R, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)
	B    = big.NewInt(3)

	pMinus2 = new(big.Int).Sub(P, big.NewInt(2))
)

func fpAdd(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Add(a, b), P) }
func fpSub(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Sub(a, b), P) }
func fpMul(a, b *big.Int) *big.Int { return new(big.Int).Mod(new(big.Int).Mul(a, b), P) }
func fpSqr(a *big.Int) *big.Int    { return fpMul(a, a) }
func fpNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(P, new(big.Int).Mod(a, P))
}

// fpInv uses Fermat's little theorem (a^(p-2)) via big.Int.Exp rather
// than big.Int.ModInverse's extended-Euclid path: keeps every inversion
// in this package on the same square-and-multiply code path as the rest
// of the tower, for one fewer distinct algorithm to reason about.
func fpInv(a *big.Int) *big.Int { return new(big.Int).Exp(a, pMinus2, P) }

func fpFromInt64(v int64) *big.Int { return new(big.Int).Mod(big.NewInt(v), P) }

// Fp2 is Fp[i]/(i^2+1).
type Fp2 struct {
	A0, A1 *big.Int
}

func Fp2Zero() *Fp2 { return &Fp2{A0: new(big.Int), A1: new(big.Int)} }
func Fp2One() *Fp2  { return &Fp2{A0: big.NewInt(1), A1: new(big.Int)} }

func (z *Fp2) IsZero() bool { return z.A0.Sign() == 0 && z.A1.Sign() == 0 }
func (z *Fp2) Equal(x *Fp2) bool { return z.A0.Cmp(x.A0) == 0 && z.A1.Cmp(x.A1) == 0 }

func Fp2Add(a, b *Fp2) *Fp2 { return &Fp2{fpAdd(a.A0, b.A0), fpAdd(a.A1, b.A1)} }
func Fp2Sub(a, b *Fp2) *Fp2 { return &Fp2{fpSub(a.A0, b.A0), fpSub(a.A1, b.A1)} }
func Fp2Neg(a *Fp2) *Fp2    { return &Fp2{fpNeg(a.A0), fpNeg(a.A1)} }
func Fp2Double(a *Fp2) *Fp2 { return Fp2Add(a, a) }

func Fp2Mul(a, b *Fp2) *Fp2 {
	v0 := fpMul(a.A0, b.A0)
	v1 := fpMul(a.A1, b.A1)
	c0 := fpSub(v0, v1)
	c1 := fpSub(fpSub(fpMul(fpAdd(a.A0, a.A1), fpAdd(b.A0, b.A1)), v0), v1)
	return &Fp2{c0, c1}
}

func Fp2Sqr(a *Fp2) *Fp2 {
	sum := fpAdd(a.A0, a.A1)
	diff := fpSub(a.A0, a.A1)
	c0 := fpMul(sum, diff)
	c1 := fpMul(fpMul(a.A0, a.A1), big.NewInt(2))
	return &Fp2{c0, fpMod(c1)}
}

func fpMod(v *big.Int) *big.Int { return new(big.Int).Mod(v, P) }

func Fp2Conj(a *Fp2) *Fp2 { return &Fp2{new(big.Int).Set(a.A0), fpNeg(a.A1)} }

func Fp2Inv(a *Fp2) *Fp2 {
	norm := fpAdd(fpSqr(a.A0), fpSqr(a.A1))
	normInv := fpInv(norm)
	return &Fp2{fpMul(a.A0, normInv), fpMul(fpNeg(a.A1), normInv)}
}

// xi = 9+i is the non-residue used to build Fp6 = Fp2[v]/(v^3-xi).
var xi = &Fp2{A0: big.NewInt(9), A1: big.NewInt(1)}

func Fp2MulByNonResidue(a *Fp2) *Fp2 { return Fp2Mul(a, xi) }

func Fp2MulByFp(a *Fp2, c *big.Int) *Fp2 { return &Fp2{fpMul(a.A0, c), fpMul(a.A1, c)} }

// Fp6 is Fp2[v]/(v^3-xi).
type Fp6 struct {
	C0, C1, C2 *Fp2
}

func Fp6Zero() *Fp6 { return &Fp6{Fp2Zero(), Fp2Zero(), Fp2Zero()} }
func Fp6One() *Fp6  { return &Fp6{Fp2One(), Fp2Zero(), Fp2Zero()} }

func (z *Fp6) Equal(x *Fp6) bool {
	return z.C0.Equal(x.C0) && z.C1.Equal(x.C1) && z.C2.Equal(x.C2)
}

func Fp6Add(a, b *Fp6) *Fp6 {
	return &Fp6{Fp2Add(a.C0, b.C0), Fp2Add(a.C1, b.C1), Fp2Add(a.C2, b.C2)}
}
func Fp6Sub(a, b *Fp6) *Fp6 {
	return &Fp6{Fp2Sub(a.C0, b.C0), Fp2Sub(a.C1, b.C1), Fp2Sub(a.C2, b.C2)}
}
func Fp6Neg(a *Fp6) *Fp6 {
	return &Fp6{Fp2Neg(a.C0), Fp2Neg(a.C1), Fp2Neg(a.C2)}
}

// Fp6MulByV shifts coefficients by one tower degree: (c0,c1,c2)*v =
// (xi*c2, c0, c1), the "MulTau" step the teacher's Miller loop depends on.
func Fp6MulByV(a *Fp6) *Fp6 {
	return &Fp6{Fp2MulByNonResidue(a.C2), a.C0, a.C1}
}

// Fp6Mul is the schoolbook Karatsuba-6 product (same structure as
// bls12381's Fp6.Mul, here over BN254's Fp2/xi).
func Fp6Mul(a, b *Fp6) *Fp6 {
	a0b0 := Fp2Mul(a.C0, b.C0)
	a1b1 := Fp2Mul(a.C1, b.C1)
	a2b2 := Fp2Mul(a.C2, b.C2)

	cross0 := Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(a.C1, a.C2), Fp2Add(b.C1, b.C2)), a1b1), a2b2)
	c0 := Fp2Add(a0b0, Fp2MulByNonResidue(cross0))

	cross1 := Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(a.C0, a.C1), Fp2Add(b.C0, b.C1)), a0b0), a1b1)
	c1 := Fp2Add(cross1, Fp2MulByNonResidue(a2b2))

	cross2 := Fp2Sub(Fp2Sub(Fp2Mul(Fp2Add(a.C0, a.C2), Fp2Add(b.C0, b.C2)), a0b0), a2b2)
	c2 := Fp2Add(cross2, a1b1)

	return &Fp6{c0, c1, c2}
}

func Fp6Sqr(a *Fp6) *Fp6 { return Fp6Mul(a, a) }

func Fp6MulByFp2(a *Fp6, c *Fp2) *Fp6 {
	return &Fp6{Fp2Mul(a.C0, c), Fp2Mul(a.C1, c), Fp2Mul(a.C2, c)}
}

// Fp6Inv uses generic Fermat exponentiation (x^(p^6-2)) rather than the
// classical closed-form cubic-extension inverse, for the same reason as
// package bls12381's Fp6.Inv: fewer hand-derived formulas with no test
// oracle to check them against.
func Fp6Inv(a *Fp6) *Fp6 {
	return powFp6(a, p6Minus2())
}

func powFp6(x *Fp6, e *big.Int) *Fp6 {
	result := Fp6One()
	base := x
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = Fp6Sqr(result)
		if e.Bit(i) == 1 {
			result = Fp6Mul(result, base)
		}
	}
	return result
}

var cachedP6Minus2 *big.Int

func p6Minus2() *big.Int {
	if cachedP6Minus2 == nil {
		p2 := new(big.Int).Mul(P, P)
		p4 := new(big.Int).Mul(p2, p2)
		p6 := new(big.Int).Mul(p4, p2)
		cachedP6Minus2 = new(big.Int).Sub(p6, big.NewInt(2))
	}
	return cachedP6Minus2
}

// Fp12 is Fp6[w]/(w^2-v).
type Fp12 struct {
	C0, C1 *Fp6
}

func Fp12Zero() *Fp12 { return &Fp12{Fp6Zero(), Fp6Zero()} }
func Fp12One() *Fp12  { return &Fp12{Fp6One(), Fp6Zero()} }

func (z *Fp12) IsOne() bool { return z.Equal(Fp12One()) }
func (z *Fp12) Equal(x *Fp12) bool { return z.C0.Equal(x.C0) && z.C1.Equal(x.C1) }

func Fp12Add(a, b *Fp12) *Fp12 { return &Fp12{Fp6Add(a.C0, b.C0), Fp6Add(a.C1, b.C1)} }
func Fp12Sub(a, b *Fp12) *Fp12 { return &Fp12{Fp6Sub(a.C0, b.C0), Fp6Sub(a.C1, b.C1)} }

func Fp12Conj(a *Fp12) *Fp12 { return &Fp12{a.C0, Fp6Neg(a.C1)} }

func Fp12Mul(a, b *Fp12) *Fp12 {
	v0 := Fp6Mul(a.C0, b.C0)
	v1 := Fp6Mul(a.C1, b.C1)
	c1 := Fp6Sub(Fp6Sub(Fp6Mul(Fp6Add(a.C0, a.C1), Fp6Add(b.C0, b.C1)), v0), v1)
	c0 := Fp6Add(v0, Fp6MulByV(v1))
	return &Fp12{c0, c1}
}

func Fp12Sqr(a *Fp12) *Fp12 { return Fp12Mul(a, a) }

// Fp12Frobenius raises to the p-th power via generic exponentiation
// (same tradeoff as bls12381.Fp12.Frobenius: slower, no coefficient
// tables to get wrong).
func Fp12Frobenius(a *Fp12) *Fp12 { return powFp12(a, P) }

func Fp12FrobeniusSquare(a *Fp12) *Fp12 { return Fp12Frobenius(Fp12Frobenius(a)) }

func Fp12Inv(a *Fp12) *Fp12 { return powFp12(a, p12Minus2()) }

func powFp12(x *Fp12, e *big.Int) *Fp12 {
	result := Fp12One()
	base := x
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = Fp12Sqr(result)
		if e.Bit(i) == 1 {
			result = Fp12Mul(result, base)
		}
	}
	return result
}

func Fp12Exp(x *Fp12, e *big.Int) *Fp12 { return powFp12(x, e) }

var cachedP12Minus2 *big.Int

func p12Minus2() *big.Int {
	if cachedP12Minus2 == nil {
		p2 := new(big.Int).Mul(P, P)
		p6 := new(big.Int).Mul(new(big.Int).Mul(p2, p2), p2)
		p12 := new(big.Int).Mul(p6, p6)
		cachedP12Minus2 = new(big.Int).Sub(p12, big.NewInt(2))
	}
	return cachedP12Minus2
}

// mulLine multiplies ret by the sparse line element c+(b+a*v)*w by
// building a full Fp12 and calling Fp12Mul, the same always-correct
// simplification used in package bls12381's mulLine.
func mulLine(ret *Fp12, a, b, c *Fp2) *Fp12 {
	line := &Fp12{
		C0: &Fp6{C0: c, C1: Fp2Zero(), C2: Fp2Zero()},
		C1: &Fp6{C0: b, C1: a, C2: Fp2Zero()},
	}
	return Fp12Mul(ret, line)
}
