package bn254

import "math/big"

// G1Affine is an affine point on y^2 = x^3 + 3 over Fp.
type G1Affine struct {
	X, Y     *big.Int
	Infinity bool
}

// G1Jacobian mirrors package bls12381's G1Jacobian, grounded on the
// teacher's bn254_g1.go Jacobian formulas.
type G1Jacobian struct {
	X, Y, Z *big.Int
}

func G1Identity() *G1Jacobian {
	return &G1Jacobian{X: big.NewInt(1), Y: big.NewInt(1), Z: new(big.Int)}
}

func (p *G1Jacobian) IsIdentity() bool { return p.Z.Sign() == 0 }

func G1Generator() *G1Jacobian {
	return &G1Jacobian{X: big.NewInt(1), Y: big.NewInt(2), Z: big.NewInt(1)}
}

func (p *G1Jacobian) ToAffine() G1Affine {
	if p.IsIdentity() {
		return G1Affine{Infinity: true}
	}
	zInv := fpInv(p.Z)
	zInv2 := fpSqr(zInv)
	zInv3 := fpMul(zInv2, zInv)
	return G1Affine{X: fpMul(p.X, zInv2), Y: fpMul(p.Y, zInv3)}
}

func (a *G1Affine) IsOnCurve() bool {
	if a.Infinity {
		return true
	}
	lhs := fpSqr(a.Y)
	rhs := fpAdd(fpMul(fpSqr(a.X), a.X), B)
	return lhs.Cmp(rhs) == 0
}

func G1Add(a, b *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		return &G1Jacobian{new(big.Int).Set(b.X), new(big.Int).Set(b.Y), new(big.Int).Set(b.Z)}
	}
	if b.IsIdentity() {
		return &G1Jacobian{new(big.Int).Set(a.X), new(big.Int).Set(a.Y), new(big.Int).Set(a.Z)}
	}
	z1sq := fpSqr(a.Z)
	z2sq := fpSqr(b.Z)
	u1 := fpMul(a.X, z2sq)
	u2 := fpMul(b.X, z1sq)
	s1 := fpMul(a.Y, fpMul(b.Z, z2sq))
	s2 := fpMul(b.Y, fpMul(a.Z, z1sq))

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			return G1Double(a)
		}
		return G1Identity()
	}

	h := fpSub(u2, u1)
	i := fpSqr(fpAdd(h, h))
	j := fpMul(h, i)
	r := fpAdd(fpSub(s2, s1), fpSub(s2, s1))
	v := fpMul(u1, i)

	x3 := fpSub(fpSub(fpSqr(r), j), fpAdd(v, v))
	y3 := fpSub(fpMul(r, fpSub(v, x3)), fpAdd(fpMul(s1, j), fpMul(s1, j)))
	z3 := fpMul(fpSub(fpSub(fpSqr(fpAdd(a.Z, b.Z)), z1sq), z2sq), h)

	return &G1Jacobian{x3, y3, z3}
}

func G1Double(a *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		return G1Identity()
	}
	A := fpSqr(a.X)
	Bv := fpSqr(a.Y)
	C := fpSqr(Bv)

	D := fpSub(fpSub(fpSqr(fpAdd(a.X, Bv)), A), C)
	D = fpAdd(D, D)

	E := fpAdd(fpAdd(A, A), A)
	x3 := fpSub(fpSqr(E), fpAdd(D, D))

	eightC := fpAdd(fpAdd(fpAdd(C, C), fpAdd(C, C)), fpAdd(fpAdd(C, C), fpAdd(C, C)))
	y3 := fpSub(fpMul(E, fpSub(D, x3)), eightC)
	z3 := fpMul(fpAdd(a.Y, a.Y), a.Z)

	return &G1Jacobian{x3, y3, z3}
}

func G1ScalarMul(a *G1Jacobian, k *big.Int) *G1Jacobian {
	if k.Sign() == 0 || a.IsIdentity() {
		return G1Identity()
	}
	kMod := new(big.Int).Mod(k, R)
	if kMod.Sign() == 0 {
		return G1Identity()
	}
	acc := G1Identity()
	for i := kMod.BitLen() - 1; i >= 0; i-- {
		acc = G1Double(acc)
		if kMod.Bit(i) == 1 {
			acc = G1Add(acc, a)
		}
	}
	return acc
}

func G1Neg(a *G1Jacobian) *G1Jacobian {
	if a.IsIdentity() {
		return G1Identity()
	}
	return &G1Jacobian{new(big.Int).Set(a.X), fpNeg(a.Y), new(big.Int).Set(a.Z)}
}

// InSubgroup checks [r]a == O. BN254's G1 is prime-order (cofactor 1), so
// unlike BLS12-381 this is checking the full curve order, not clearing a
// cofactor first.
func (p *G1Jacobian) InSubgroup() bool {
	if p.IsIdentity() {
		return true
	}
	return G1ScalarMul(p, R).IsIdentity()
}

// G2Affine is an affine point on the twist y^2 = x^3 + 3/(9+i) over Fp2.
type G2Affine struct {
	X, Y     *Fp2
	Infinity bool
}

type G2Jacobian struct {
	X, Y, Z *Fp2
}

var twistB = &Fp2{
	A0: mustDec("19485874751759354771024239261021720505790618469301721065564631296452457478373"),
	A1: mustDec("266929791119991161246907387137283842545076965332900288569378510910307636690"),
}

func mustDec(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bn254: bad decimal constant " + s)
	}
	return v
}

func G2Identity() *G2Jacobian {
	return &G2Jacobian{X: Fp2One(), Y: Fp2One(), Z: Fp2Zero()}
}

func (p *G2Jacobian) IsIdentity() bool { return p.Z.IsZero() }

func G2Generator() *G2Jacobian {
	return &G2Jacobian{
		X: &Fp2{mustDec("10857046999023057135944570762232829481370756359578518086990519993285655852781"), mustDec("11559732032986387107991004021392285783925812861821192530917403151452391805634")},
		Y: &Fp2{mustDec("8495653923123431417604973247489272438418190587263600148770280649306958101930"), mustDec("4082367875863433681332203403145435568316851327593401208105741076214120093531")},
		Z: Fp2One(),
	}
}

func (p *G2Jacobian) ToAffine() G2Affine {
	if p.IsIdentity() {
		return G2Affine{Infinity: true}
	}
	zInv := Fp2Inv(p.Z)
	zInv2 := Fp2Sqr(zInv)
	zInv3 := Fp2Mul(zInv2, zInv)
	return G2Affine{X: Fp2Mul(p.X, zInv2), Y: Fp2Mul(p.Y, zInv3)}
}

func (a *G2Affine) IsOnCurve() bool {
	if a.Infinity {
		return true
	}
	lhs := Fp2Sqr(a.Y)
	rhs := Fp2Add(Fp2Mul(Fp2Sqr(a.X), a.X), twistB)
	return lhs.Equal(rhs)
}

func G2Add(a, b *G2Jacobian) *G2Jacobian {
	if a.IsIdentity() {
		return b
	}
	if b.IsIdentity() {
		return a
	}
	z1sq := Fp2Sqr(a.Z)
	z2sq := Fp2Sqr(b.Z)
	u1 := Fp2Mul(a.X, z2sq)
	u2 := Fp2Mul(b.X, z1sq)
	s1 := Fp2Mul(a.Y, Fp2Mul(b.Z, z2sq))
	s2 := Fp2Mul(b.Y, Fp2Mul(a.Z, z1sq))

	if u1.Equal(u2) {
		if s1.Equal(s2) {
			return G2Double(a)
		}
		return G2Identity()
	}

	h := Fp2Sub(u2, u1)
	i := Fp2Sqr(Fp2Add(h, h))
	j := Fp2Mul(h, i)
	r := Fp2Double(Fp2Sub(s2, s1))
	v := Fp2Mul(u1, i)

	x3 := Fp2Sub(Fp2Sub(Fp2Sqr(r), j), Fp2Double(v))
	y3 := Fp2Sub(Fp2Mul(r, Fp2Sub(v, x3)), Fp2Double(Fp2Mul(s1, j)))
	z3 := Fp2Mul(Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(a.Z, b.Z)), z1sq), z2sq), h)

	return &G2Jacobian{x3, y3, z3}
}

func G2Double(a *G2Jacobian) *G2Jacobian {
	if a.IsIdentity() {
		return a
	}
	A := Fp2Sqr(a.X)
	Bv := Fp2Sqr(a.Y)
	C := Fp2Sqr(Bv)

	D := Fp2Double(Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(a.X, Bv)), A), C))
	E := Fp2Add(Fp2Double(A), A)
	x3 := Fp2Sub(Fp2Sqr(E), Fp2Double(D))
	eightC := Fp2Double(Fp2Double(Fp2Double(C)))
	y3 := Fp2Sub(Fp2Mul(E, Fp2Sub(D, x3)), eightC)
	z3 := Fp2Double(Fp2Mul(a.Y, a.Z))

	return &G2Jacobian{x3, y3, z3}
}

func G2ScalarMul(a *G2Jacobian, k *big.Int) *G2Jacobian {
	if k.Sign() == 0 || a.IsIdentity() {
		return G2Identity()
	}
	kMod := new(big.Int).Mod(k, R)
	acc := G2Identity()
	for i := kMod.BitLen() - 1; i >= 0; i-- {
		acc = G2Double(acc)
		if kMod.Bit(i) == 1 {
			acc = G2Add(acc, a)
		}
	}
	return acc
}

func (p *G2Jacobian) InSubgroup() bool {
	if p.IsIdentity() {
		return true
	}
	return G2ScalarMul(p, R).IsIdentity()
}
