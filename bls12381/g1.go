package bls12381

import (
	"math/big"

	"github.com/eth2030/curvecore/field"
)

// G1Affine is an affine point on y^2 = x^3 + 4 over Fp. The zero value
// is NOT the identity; use G1AffineInfinity or check IsInfinity before
// relying on (X,Y).
type G1Affine struct {
	X, Y     Fp
	Infinity bool
}

// G1Jacobian is a G1 point in Jacobian coordinates (X,Y,Z), affine point
// (X/Z^2, Y/Z^3). Z=0 represents the point at infinity. All arithmetic in
// this file is grounded on the teacher's bls12381_g1.go Jacobian formulas,
// translated from math/big to Montgomery Fp (spec.md section 4.D).
type G1Jacobian struct {
	X, Y, Z Fp
}

func G1Identity() G1Jacobian {
	return G1Jacobian{X: FpOne(), Y: FpOne()}
}

func (p *G1Jacobian) IsIdentity() bool {
	return p.Z.IsZero()
}

// G1Generator returns the standard G1 generator.
func G1Generator() G1Jacobian {
	x, _ := FpFromBytesBE(mustHexBytes(
		"17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb", 48))
	y, _ := FpFromBytesBE(mustHexBytes(
		"08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1", 48))
	return G1Jacobian{X: x, Y: y, Z: FpOne()}
}

func (p *G1Jacobian) FromAffine(a *G1Affine) *G1Jacobian {
	if a.Infinity {
		*p = G1Identity()
		return p
	}
	p.X, p.Y, p.Z = a.X, a.Y, FpOne()
	return p
}

// ToAffine converts Jacobian to affine, returning the identity marker set
// for the point at infinity.
func (p *G1Jacobian) ToAffine() G1Affine {
	if p.IsIdentity() {
		return G1Affine{Infinity: true}
	}
	var zInv, zInv2, zInv3 Fp
	zInv.Inv(&p.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	var x, y Fp
	x.Mul(&p.X, &zInv2)
	y.Mul(&p.Y, &zInv3)
	return G1Affine{X: x, Y: y}
}

// IsOnCurve reports whether the affine point satisfies y^2 = x^3 + 4.
func (a *G1Affine) IsOnCurve() bool {
	if a.Infinity {
		return true
	}
	var lhs, x2, x3, rhs Fp
	lhs.Square(&a.Y)
	x2.Square(&a.X)
	x3.Mul(&x2, &a.X)
	rhs.Add(&x3, &bG1)
	return lhs.Equal(rhs)
}

func (p *G1Jacobian) Neg(a *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		*p = *a
		return p
	}
	var negY Fp
	negY.Neg(&a.Y)
	p.X, p.Y, p.Z = a.X, negY, a.Z
	return p
}

// Add computes p = a+b using the standard Jacobian addition formulas
// (unequal-Z case); falls back to Double when a==b.
func (p *G1Jacobian) Add(a, b *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		*p = *b
		return p
	}
	if b.IsIdentity() {
		*p = *a
		return p
	}

	var z1sq, z2sq, u1, u2, bz2sq, az1sq, s1, s2 Fp
	z1sq.Square(&a.Z)
	z2sq.Square(&b.Z)
	u1.Mul(&a.X, &z2sq)
	u2.Mul(&b.X, &z1sq)
	bz2sq.Mul(&b.Z, &z2sq)
	s1.Mul(&a.Y, &bz2sq)
	az1sq.Mul(&a.Z, &z1sq)
	s2.Mul(&b.Y, &az1sq)

	if u1.Equal(u2) {
		if s1.Equal(s2) {
			return p.Double(a)
		}
		*p = G1Identity()
		return p
	}

	var h, i, j, r, v Fp
	h.Sub(&u2, &u1)
	var h2 Fp
	h2.Double(&h)
	i.Square(&h2)
	j.Mul(&h, &i)
	r.Sub(&s2, &s1)
	r.Double(&r)
	v.Mul(&u1, &i)

	var x3, r2, v2, y3, sj2, t Fp
	r2.Square(&r)
	v2.Double(&v)
	x3.Sub(&r2, &j)
	x3.Sub(&x3, &v2)

	t.Sub(&v, &x3)
	y3.Mul(&r, &t)
	sj2.Mul(&s1, &j)
	sj2.Double(&sj2)
	y3.Sub(&y3, &sj2)

	var z3, zsum, zsumsq Fp
	zsum.Add(&a.Z, &b.Z)
	zsumsq.Square(&zsum)
	zsumsq.Sub(&zsumsq, &z1sq)
	zsumsq.Sub(&zsumsq, &z2sq)
	z3.Mul(&zsumsq, &h)

	p.X, p.Y, p.Z = x3, y3, z3
	return p
}

// Double computes p = 2a using the a=0 short-Weierstrass doubling formula.
func (p *G1Jacobian) Double(a *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		*p = *a
		return p
	}
	var A, B, C Fp
	A.Square(&a.X)
	B.Square(&a.Y)
	C.Square(&B)

	var xB, d Fp
	xB.Add(&a.X, &B)
	xB.Square(&xB)
	d.Sub(&xB, &A)
	d.Sub(&d, &C)
	d.Double(&d)

	var e, x3 Fp
	e.Double(&A)
	e.Add(&e, &A)
	x3.Square(&e)
	var d2 Fp
	d2.Double(&d)
	x3.Sub(&x3, &d2)

	var y3, dMinusX3, eightC Fp
	dMinusX3.Sub(&d, &x3)
	y3.Mul(&e, &dMinusX3)
	eightC.Double(&C)
	eightC.Double(&eightC)
	eightC.Double(&eightC)
	y3.Sub(&y3, &eightC)

	var z3 Fp
	z3.Mul(&a.Y, &a.Z)
	z3.Double(&z3)

	p.X, p.Y, p.Z = x3, y3, z3
	return p
}

// ScalarMul computes p = k*a by left-to-right double-and-add over k's
// Montgomery-independent bit representation. Not constant-time with
// respect to k's bit pattern; package bls and package kzg instead call
// the constant-time ScalarMulCT for secret scalars (see scalarmul.go).
func (p *G1Jacobian) ScalarMul(a *G1Jacobian, k *Fr) *G1Jacobian {
	if k.IsZero() || a.IsIdentity() {
		*p = G1Identity()
		return p
	}
	acc := G1Identity()
	base := *a
	bitLen := k.BitLen()
	for i := bitLen - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) == 1 {
			acc.Add(&acc, &base)
		}
	}
	*p = acc
	return p
}

// InSubgroup reports whether a lies in the order-r subgroup of the curve
// group, by directly checking [r]a == O. spec.md section 4.D names the
// endomorphism-based subgroup check as the fast path; this module keeps
// the direct scalar multiplication check for G1 since the cofactor h1 is
// small and the direct check is already cheap relative to a pairing. The
// scalar r cannot be represented as an Fr value (r mod r == 0), so this
// multiplies by r's raw big.Int form rather than going through Fr.
func (p *G1Jacobian) InSubgroup() bool {
	if p.IsIdentity() {
		return true
	}
	var r G1Jacobian
	r.ScalarMulBig(p, rBig)
	return r.IsIdentity()
}

// ClearCofactor multiplies by h1, the G1 cofactor, mapping an arbitrary
// curve point into the order-r subgroup.
func (p *G1Jacobian) ClearCofactor(a *G1Jacobian) *G1Jacobian {
	return p.ScalarMulBig(a, h1Big)
}

// ScalarMulBig computes p = k*a for an arbitrary non-negative big.Int k,
// used internally for constants wider or narrower than Fr's own modulus
// (the subgroup order check, cofactor clearing).
func (p *G1Jacobian) ScalarMulBig(a *G1Jacobian, k *big.Int) *G1Jacobian {
	if k.Sign() == 0 || a.IsIdentity() {
		*p = G1Identity()
		return p
	}
	acc := G1Identity()
	base := *a
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) == 1 {
			acc.Add(&acc, &base)
		}
	}
	*p = acc
	return p
}

func (z Fp) ToBigInt() field.BigInt {
	var plain field.BigInt
	zz := field.BigInt(z)
	field.FromMontgomery(&plain, &zz, fpModulus)
	return plain
}

func mustHexBytes(hexStr string, width int) []byte {
	b := mustBig(hexStr, 16).Bytes()
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}
