package bls12381

// Torus-based (Rubin-Silverberg) and Karabina compressed representations
// of cyclotomic Fp12 elements (spec.md section 3, 4.J, 4.K: GT elements
// compress from 12 Fp components down to 6 (torus) or 4 (Karabina), at
// the cost of an inversion/square-root on decompression). Both are
// derived here directly from the cyclotomic norm condition
// conjugate(g)*g = 1, i.e. a^2 - v*b^2 = 1 for g = a + b*w (a,b in Fp6),
// rather than copied from a remembered closed form: the derivation is
// short enough to redo from the defining equation and check by
// substitution, which is safer than transcribing a formula with no build
// to catch a mistake.

// T2Aff is the affine torus coordinate t = (a+1)/b for a cyclotomic
// element g = a+b*w, a single Fp6 value standing in for all 12 Fp
// components of g.
type T2Aff struct {
	T Fp6
}

// T2Prj is the projective torus coordinate, deferring the division in
// T2Aff to a single inversion at the point the caller actually needs the
// affine value (mirrors the Jacobian-vs-affine convention used for
// G1Jacobian/G1Affine elsewhere in this package).
type T2Prj struct {
	TNum, TDen Fp6
}

var fp6NonResidueConst = Fp6{C1: Fp2One()} // the Fp6 element "v" with MulByNonResidue(y) == v*y

// ToTorus converts a cyclotomic GT element to its affine torus coordinate.
// Fails (ok=false) if g's Fp6 "b" component is zero, which happens only
// for g = ±1 — a measure-zero edge case not worth carrying a third
// representation for.
func ToTorus(g *GT) (T2Aff, bool) {
	a, b := g.v.C0, g.v.C1
	if b.IsZero() {
		return T2Aff{}, false
	}
	one := Fp6One()
	var bInv, t Fp6
	bInv.Inv(&b)
	var aPlus1 Fp6
	aPlus1.Add(&a, &one)
	t.Mul(&aPlus1, &bInv)
	return T2Aff{T: t}, true
}

// ToTorusPrj is ToTorus without the division: t = (a+1)/b is carried as
// the pair (a+1, b).
func ToTorusPrj(g *GT) T2Prj {
	one := Fp6One()
	a, b := g.v.C0, g.v.C1
	var num Fp6
	num.Add(&a, &one)
	return T2Prj{TNum: num, TDen: b}
}

func (p *T2Prj) ToAffine() (T2Aff, bool) {
	if p.TDen.IsZero() {
		return T2Aff{}, false
	}
	var den Fp6
	den.Inv(&p.TDen)
	var t Fp6
	t.Mul(&p.TNum, &den)
	return T2Aff{T: t}, true
}

// FromTorus recovers g = a+b*w from the affine torus coordinate, using
// b = 2t/(t^2-v), a = t*b-1, both solved directly from a^2-v*b^2=1 and
// t=(a+1)/b.
func FromTorus(t *T2Aff) GT {
	one := Fp6One()
	var t2, denom, denomInv, b, two, a Fp6
	t2.Square(&t.T)
	denom.Sub(&t2, &fp6NonResidueConst)
	denomInv.Inv(&denom)
	two.Add(&one, &one)
	b.Mul(&t.T, &two)
	b.Mul(&b, &denomInv)
	a.Mul(&t.T, &b)
	a.Sub(&a, &one)
	return GT{v: Fp12{C0: a, C1: b}}
}

// KarabinaCompressed is the 4-Fp2 Karabina compression of a cyclotomic
// Fp12 element, dropping g0 and g1 (the Fp2 components of a's c0 and b's
// c0 slots) and recovering them on decompression from the norm relation.
// The recovery is inherently two-to-one (a quadratic in g1), so G1Sign
// records which of the two roots Compress observed, letting Decompress
// pick the matching one rather than an arbitrary one — standalone usage
// (not the iterated-squaring pipeline Karabina's paper targets, which
// carries that information implicitly across squarings) needs this extra
// bit to round-trip.
type KarabinaCompressed struct {
	G2, G3, G4, G5 Fp2
	G1Sign         bool
}

var fp12Xi = Fp2{C0: FpOne(), C1: FpOne()} // the Fp12 nonresidue xi=1+u

// CompressKarabina compresses a cyclotomic Fp12 element. Fails if g4 (the
// Fp2 component of g.C0.C2) is zero, since decompression divides by it;
// this holds for all but a measure-zero set of cyclotomic elements.
func CompressKarabina(g *Fp12) (KarabinaCompressed, bool) {
	g1, g2, g3, g4, g5 := g.C1.C0, g.C0.C1, g.C1.C1, g.C0.C2, g.C1.C2
	if g4.IsZero() {
		return KarabinaCompressed{}, false
	}

	g1Plus, _, ok := recoverG1Candidates(g2, g3, g4, g5)
	if !ok {
		return KarabinaCompressed{}, false
	}

	return KarabinaCompressed{
		G2: g2, G3: g3, G4: g4, G5: g5,
		G1Sign: !g1Plus.Equal(g1),
	}, true
}

// recoverG1Candidates solves g4*g1^2 - 2*g2*g3*g1 + K = 0 for the two
// roots, returning the "+" root first.
func recoverG1Candidates(g2, g3, g4, g5 Fp2) (plus, minus Fp2, ok bool) {
	var g2sq, g3sq, g4sq, g4cube, g5sq Fp2
	g2sq.Square(&g2)
	g3sq.Square(&g3)
	g4sq.Square(&g4)
	g4cube.Mul(&g4sq, &g4)
	g5sq.Square(&g5)

	var k Fp2
	k.Mul(&g2, &g5sq)
	k.Mul(&k, &fp12Xi)
	k.Neg(&k) // -xi*g2*g5^2

	var xiG4cube Fp2
	xiG4cube.Mul(&fp12Xi, &g4cube)
	k.Sub(&k, &xiG4cube) // -xi*g2*g5^2 - xi*g4^3

	var cross Fp2
	cross.Mul(&g3, &g4)
	cross.Mul(&cross, &g5)
	cross.Mul(&cross, &fp12Xi)
	cross.Double(&cross)
	k.Add(&k, &cross) // + 2*xi*g3*g4*g5

	var g2cube Fp2
	g2cube.Mul(&g2sq, &g2)
	k.Add(&k, &g2cube) // + g2^3

	var dPrime Fp2
	dPrime.Mul(&g2sq, &g3sq)
	var g4k Fp2
	g4k.Mul(&g4, &k)
	dPrime.Sub(&dPrime, &g4k)

	root, ok := sqrtFp2(&dPrime)
	if !ok {
		return Fp2{}, Fp2{}, false
	}

	var g4Inv, g2g3 Fp2
	g4Inv.Inv(&g4)
	g2g3.Mul(&g2, &g3)

	var num1, num2 Fp2
	num1.Add(&g2g3, &root)
	num2.Sub(&g2g3, &root)
	plus.Mul(&num1, &g4Inv)
	minus.Mul(&num2, &g4Inv)
	return plus, minus, true
}

// recoverG0 solves the linear relation 2*g4*g0 - 2*g3*g1 = xi*g5^2 - g2^2
// for g0.
func recoverG0(g1, g2, g3, g4, g5 Fp2) Fp2 {
	var g5sq, xiG5sq, g2sq, rhs Fp2
	g5sq.Square(&g5)
	xiG5sq.Mul(&fp12Xi, &g5sq)
	g2sq.Square(&g2)
	rhs.Sub(&xiG5sq, &g2sq)

	var twoG3g1 Fp2
	twoG3g1.Mul(&g3, &g1)
	twoG3g1.Double(&twoG3g1)
	rhs.Add(&rhs, &twoG3g1)

	var twoG4Inv, two, g4Double Fp2
	two = Fp2One()
	two.Double(&two)
	g4Double.Mul(&g4, &two)
	twoG4Inv.Inv(&g4Double)

	var g0 Fp2
	g0.Mul(&rhs, &twoG4Inv)
	return g0
}

// DecompressKarabina reverses CompressKarabina.
func DecompressKarabina(c *KarabinaCompressed) (Fp12, bool) {
	if c.G4.IsZero() {
		return Fp12{}, false
	}
	plus, minus, ok := recoverG1Candidates(c.G2, c.G3, c.G4, c.G5)
	if !ok {
		return Fp12{}, false
	}
	g1 := plus
	if c.G1Sign {
		g1 = minus
	}
	g0 := recoverG0(g1, c.G2, c.G3, c.G4, c.G5)

	return Fp12{
		C0: Fp6{C0: g0, C1: c.G2, C2: c.G4},
		C1: Fp6{C0: g1, C1: c.G3, C2: c.G5},
	}, true
}
