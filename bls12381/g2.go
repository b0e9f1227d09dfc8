package bls12381

import "math/big"

// G2Affine is an affine point on the twist curve y^2 = x^3 + 4(1+u) over
// Fp2.
type G2Affine struct {
	X, Y     Fp2
	Infinity bool
}

// G2Jacobian mirrors G1Jacobian over Fp2 instead of Fp (spec.md section
// 4.D), grounded on the teacher's bls12381_g2.go.
type G2Jacobian struct {
	X, Y, Z Fp2
}

var bG2 Fp2

func init() {
	bG2 = Fp2{C0: FpFromUint64(4), C1: FpFromUint64(4)}
}

func G2Identity() G2Jacobian {
	return G2Jacobian{X: Fp2One(), Y: Fp2One()}
}

func (p *G2Jacobian) IsIdentity() bool {
	return p.Z.IsZero()
}

func G2Generator() G2Jacobian {
	xc0, _ := FpFromBytesBE(mustHexBytes("024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8", 48))
	xc1, _ := FpFromBytesBE(mustHexBytes("13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e", 48))
	yc0, _ := FpFromBytesBE(mustHexBytes("0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801", 48))
	yc1, _ := FpFromBytesBE(mustHexBytes("0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be", 48))
	return G2Jacobian{
		X: Fp2{C0: xc0, C1: xc1},
		Y: Fp2{C0: yc0, C1: yc1},
		Z: Fp2One(),
	}
}

func (p *G2Jacobian) FromAffine(a *G2Affine) *G2Jacobian {
	if a.Infinity {
		*p = G2Identity()
		return p
	}
	p.X, p.Y, p.Z = a.X, a.Y, Fp2One()
	return p
}

func (p *G2Jacobian) ToAffine() G2Affine {
	if p.IsIdentity() {
		return G2Affine{Infinity: true}
	}
	var zInv, zInv2, zInv3 Fp2
	zInv.Inv(&p.Z)
	zInv2.Square(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	var x, y Fp2
	x.Mul(&p.X, &zInv2)
	y.Mul(&p.Y, &zInv3)
	return G2Affine{X: x, Y: y}
}

func (a *G2Affine) IsOnCurve() bool {
	if a.Infinity {
		return true
	}
	var lhs, x2, x3, rhs Fp2
	lhs.Square(&a.Y)
	x2.Square(&a.X)
	x3.Mul(&x2, &a.X)
	rhs.Add(&x3, &bG2)
	return lhs.Equal(rhs)
}

func (p *G2Jacobian) Neg(a *G2Jacobian) *G2Jacobian {
	if a.IsIdentity() {
		*p = *a
		return p
	}
	var negY Fp2
	negY.Neg(&a.Y)
	p.X, p.Y, p.Z = a.X, negY, a.Z
	return p
}

func (p *G2Jacobian) Add(a, b *G2Jacobian) *G2Jacobian {
	if a.IsIdentity() {
		*p = *b
		return p
	}
	if b.IsIdentity() {
		*p = *a
		return p
	}

	var z1sq, z2sq, u1, u2, bz2sq, az1sq, s1, s2 Fp2
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
		*p = G2Identity()
		return p
	}

	var h, i, j, r, v Fp2
	h.Sub(&u2, &u1)
	var h2 Fp2
	h2.Double(&h)
	i.Square(&h2)
	j.Mul(&h, &i)
	r.Sub(&s2, &s1)
	r.Double(&r)
	v.Mul(&u1, &i)

	var x3, r2, v2, y3, sj2, t Fp2
	r2.Square(&r)
	v2.Double(&v)
	x3.Sub(&r2, &j)
	x3.Sub(&x3, &v2)

	t.Sub(&v, &x3)
	y3.Mul(&r, &t)
	sj2.Mul(&s1, &j)
	sj2.Double(&sj2)
	y3.Sub(&y3, &sj2)

	var z3, zsum, zsumsq Fp2
	zsum.Add(&a.Z, &b.Z)
	zsumsq.Square(&zsum)
	zsumsq.Sub(&zsumsq, &z1sq)
	zsumsq.Sub(&zsumsq, &z2sq)
	z3.Mul(&zsumsq, &h)

	p.X, p.Y, p.Z = x3, y3, z3
	return p
}

func (p *G2Jacobian) Double(a *G2Jacobian) *G2Jacobian {
	if a.IsIdentity() {
		*p = *a
		return p
	}
	var A, B, C Fp2
	A.Square(&a.X)
	B.Square(&a.Y)
	C.Square(&B)

	var xB, d Fp2
	xB.Add(&a.X, &B)
	xB.Square(&xB)
	d.Sub(&xB, &A)
	d.Sub(&d, &C)
	d.Double(&d)

	var e, x3 Fp2
	e.Double(&A)
	e.Add(&e, &A)
	x3.Square(&e)
	var d2 Fp2
	d2.Double(&d)
	x3.Sub(&x3, &d2)

	var y3, dMinusX3, eightC Fp2
	dMinusX3.Sub(&d, &x3)
	y3.Mul(&e, &dMinusX3)
	eightC.Double(&C)
	eightC.Double(&eightC)
	eightC.Double(&eightC)
	y3.Sub(&y3, &eightC)

	var z3 Fp2
	z3.Mul(&a.Y, &a.Z)
	z3.Double(&z3)

	p.X, p.Y, p.Z = x3, y3, z3
	return p
}

func (p *G2Jacobian) ScalarMul(a *G2Jacobian, k *Fr) *G2Jacobian {
	if k.IsZero() || a.IsIdentity() {
		*p = G2Identity()
		return p
	}
	acc := G2Identity()
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

func (p *G2Jacobian) ScalarMulBig(a *G2Jacobian, k *big.Int) *G2Jacobian {
	if k.Sign() == 0 || a.IsIdentity() {
		*p = G2Identity()
		return p
	}
	acc := G2Identity()
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

// InSubgroup checks [r]a == O directly, as with G1. BLS12-381's G2
// cofactor h2 is large enough that a production implementation would
// want the Scott et al. endomorphism-based fast check; this module takes
// the direct, definitely-correct check and notes the faster variant as a
// possible follow-up (see DESIGN.md).
func (p *G2Jacobian) InSubgroup() bool {
	if p.IsIdentity() {
		return true
	}
	var r G2Jacobian
	r.ScalarMulBig(p, rBig)
	return r.IsIdentity()
}

// ClearCofactor multiplies by h2, the G2 cofactor.
func (p *G2Jacobian) ClearCofactor(a *G2Jacobian) *G2Jacobian {
	return p.ScalarMulBig(a, h2Big)
}
