package bls12381

import "sync"

// Shallue-van de Woestijne map_to_curve (RFC 9380 section 6.6.1), for both
// G1 (over Fp) and G2 (over Fp2). Unlike Simplified SWU (sswu.go), SvdW
// needs no isogeny: it is defined directly on any curve y^2 = x^3 + A*x + B
// with A possibly zero, which is exactly BLS12-381's situation (both G1
// and G2's curves have A=0, the reason SSWU needs an isogenous curve in
// the first place). That makes SvdW the map this package can actually
// complete end-to-end and verify, so it is the one HashToCurveG1/G2 use by
// default; see sswu.go's doc comment and DESIGN.md for why SSWU stops one
// step short of a full map_to_curve here.
//
// SvdW needs one extra curve-dependent parameter Z with:
//   - Z != 0, g(Z) != 0, where g(x) = x^3 + A*x + B
//   - -g(Z)*(3*Z^2 + 4*A) is a square
// RFC 9380's published suites don't define a Z for BLS12-381 (they use
// SSWU instead), so instead of remembering a constant that cannot be
// cross-checked, Z is found here by brute-force search over small integers
// at first use and its defining property is checked again immediately
// after — the same "search, then verify the thing you found" approach
// glv.go's findPrimitiveCubeRootFp uses for the GLV endomorphism constant.
type svdwParamsFp struct {
	z, c1, c2, c3, c4 Fp
}

type svdwParamsFp2 struct {
	z, c1, c2, c3, c4 Fp2
}

var (
	svdwG1Once   sync.Once
	svdwG1       svdwParamsFp
	svdwG1Found  bool
	svdwG2Once   sync.Once
	svdwG2       svdwParamsFp2
	svdwG2Found  bool
)

func ensureSvdWG1() {
	svdwG1Once.Do(func() {
		svdwG1, svdwG1Found = findSvdWParamsFp(bG1)
		if !svdwG1Found {
			return
		}
		for _, n := range []uint64{0, 1, 2, 3, 12345} {
			u := FpFromUint64(n)
			x, y, ok := mapToCurveSvdWG1Raw(u, svdwG1)
			if !ok {
				panic("bls12381: SvdW G1 map failed to produce a point for a test input")
			}
			var ySq Fp
			ySq.Square(&y)
			if !curveRHSG1(&x).Equal(ySq) {
				panic("bls12381: SvdW G1 map produced a point off the curve")
			}
		}
	})
}

func ensureSvdWG2() {
	svdwG2Once.Do(func() {
		svdwG2, svdwG2Found = findSvdWParamsFp2(bG2)
		if !svdwG2Found {
			return
		}
		for _, n := range []uint64{0, 1, 2, 3, 12345} {
			u := Fp2{C0: FpFromUint64(n)}
			x, y, ok := mapToCurveSvdWG2Raw(u, svdwG2)
			if !ok {
				panic("bls12381: SvdW G2 map failed to produce a point for a test input")
			}
			var ySq Fp2
			ySq.Square(&y)
			if !curveRHSG2(&x).Equal(ySq) {
				panic("bls12381: SvdW G2 map produced a point off the curve")
			}
		}
	})
}

// findSvdWParamsFp searches z = 1, -1, 2, -2, ... (curve y^2=x^3+b, a=0)
// for the first value satisfying SvdW's well-definedness conditions, then
// derives and returns c1..c4.
func findSvdWParamsFp(b Fp) (svdwParamsFp, bool) {
	three := FpFromUint64(3)
	four := FpFromUint64(4)
	two := FpFromUint64(2)
	for n := int64(1); n <= 1000; n++ {
		for _, neg := range []bool{false, true} {
			z := FpFromUint64(uint64(n))
			if neg {
				z.Neg(&z)
			}
			var z2, z3, gz Fp
			z2.Square(&z)
			z3.Mul(&z2, &z)
			gz.Add(&z3, &b)
			if gz.IsZero() {
				continue
			}
			var threeZ2, negGzTerm Fp
			threeZ2.Mul(&three, &z2) // 3*Z^2 + 4*A, A=0
			negGzTerm.Mul(&gz, &threeZ2)
			negGzTerm.Neg(&negGzTerm)
			if !negGzTerm.IsSquare() {
				continue
			}
			c3, ok := negGzTerm.Sqrt()
			if !ok {
				continue
			}
			var c2, twoInv Fp
			twoInv.Inv(&two)
			c2.Mul(&z, &twoInv)
			c2.Neg(&c2)

			var threeZ2Inv, c4, fourGz Fp
			threeZ2Inv.Inv(&threeZ2)
			fourGz.Mul(&four, &gz)
			c4.Mul(&fourGz, &threeZ2Inv)
			c4.Neg(&c4)

			return svdwParamsFp{z: z, c1: gz, c2: c2, c3: c3, c4: c4}, true
		}
	}
	return svdwParamsFp{}, false
}

func findSvdWParamsFp2(b Fp2) (svdwParamsFp2, bool) {
	three := Fp2{C0: FpFromUint64(3)}
	four := Fp2{C0: FpFromUint64(4)}
	two := Fp2{C0: FpFromUint64(2)}
	for n := int64(1); n <= 1000; n++ {
		for _, neg := range []bool{false, true} {
			z := Fp2{C0: FpFromUint64(uint64(n))}
			if neg {
				z.Neg(&z)
			}
			var z2, z3, gz Fp2
			z2.Square(&z)
			z3.Mul(&z2, &z)
			gz.Add(&z3, &b)
			if gz.IsZero() {
				continue
			}
			var threeZ2, negGzTerm Fp2
			threeZ2.Mul(&three, &z2)
			negGzTerm.Mul(&gz, &threeZ2)
			negGzTerm.Neg(&negGzTerm)
			if _, ok := sqrtFp2(&negGzTerm); !ok {
				continue
			}
			c3, _ := sqrtFp2(&negGzTerm)

			var c2, twoInv Fp2
			twoInv.Inv(&two)
			c2.Mul(&z, &twoInv)
			c2.Neg(&c2)

			var threeZ2Inv, c4, fourGz Fp2
			threeZ2Inv.Inv(&threeZ2)
			fourGz.Mul(&four, &gz)
			c4.Mul(&fourGz, &threeZ2Inv)
			c4.Neg(&c4)

			return svdwParamsFp2{z: z, c1: gz, c2: c2, c3: c3, c4: c4}, true
		}
	}
	return svdwParamsFp2{}, false
}

// mapToCurveSvdWG1 implements RFC 9380 section 6.6.1 over Fp for the curve
// y^2 = x^3 + bG1.
func mapToCurveSvdWG1(u Fp) (Fp, Fp, bool) {
	ensureSvdWG1()
	if !svdwG1Found {
		return Fp{}, Fp{}, false
	}
	return mapToCurveSvdWG1Raw(u, svdwG1)
}

// mapToCurveSvdWG1Raw is the map itself, given already-computed parameters,
// so ensureSvdWG1's self-check can call it without re-entering
// ensureSvdWG1 (which would deadlock on svdwG1Once.Do).
func mapToCurveSvdWG1Raw(u Fp, p svdwParamsFp) (Fp, Fp, bool) {
	one := FpOne()

	var u2, tv1, tv2, tv1b Fp
	u2.Square(&u)
	tv1.Mul(&u2, &p.c1)
	tv2.Add(&one, &tv1)
	tv1b.Sub(&one, &tv1)

	var tv3, tv3Inv Fp
	tv3.Mul(&tv1b, &tv2)
	tv3Inv.Inv(&tv3)

	var tv4 Fp
	tv4.Mul(&u, &tv1b)
	tv4.Mul(&tv4, &tv3Inv)
	tv4.Mul(&tv4, &p.c3)

	var x1, gx1 Fp
	x1.Sub(&p.c2, &tv4)
	gx1 = curveRHSG1(&x1)
	e1 := gx1.IsSquare()

	var x2, gx2 Fp
	x2.Add(&p.c2, &tv4)
	gx2 = curveRHSG1(&x2)
	e2 := gx2.IsSquare() && !e1

	var x3, tv2sq Fp
	tv2sq.Square(&tv2)
	x3.Mul(&tv2sq, &tv3Inv)
	x3.Square(&x3)
	x3.Mul(&x3, &p.c4)
	x3.Add(&x3, &p.z)

	var x Fp
	x.CMov(&x1, &x3, e1)
	x.CMov(&x2, &x, e2)

	gx := curveRHSG1(&x)
	y, ok := gx.Sqrt()
	if !ok {
		return Fp{}, Fp{}, false
	}
	if u.Sgn0() != y.Sgn0() {
		y.Neg(&y)
	}
	return x, y, true
}

func curveRHSG1(x *Fp) Fp {
	var x2, x3, rhs Fp
	x2.Square(x)
	x3.Mul(&x2, x)
	rhs.Add(&x3, &bG1)
	return rhs
}

func mapToCurveSvdWG2(u Fp2) (Fp2, Fp2, bool) {
	ensureSvdWG2()
	if !svdwG2Found {
		return Fp2{}, Fp2{}, false
	}
	return mapToCurveSvdWG2Raw(u, svdwG2)
}

// mapToCurveSvdWG2Raw is mapToCurveSvdWG1Raw's Fp2 counterpart.
func mapToCurveSvdWG2Raw(u Fp2, p svdwParamsFp2) (Fp2, Fp2, bool) {
	one := Fp2One()

	var u2, tv1, tv2, tv1b Fp2
	u2.Square(&u)
	tv1.Mul(&u2, &p.c1)
	tv2.Add(&one, &tv1)
	tv1b.Sub(&one, &tv1)

	var tv3, tv3Inv Fp2
	tv3.Mul(&tv1b, &tv2)
	tv3Inv.Inv(&tv3)

	var tv4 Fp2
	tv4.Mul(&u, &tv1b)
	tv4.Mul(&tv4, &tv3Inv)
	tv4.Mul(&tv4, &p.c3)

	var x1, gx1 Fp2
	x1.Sub(&p.c2, &tv4)
	gx1 = curveRHSG2(&x1)
	_, e1 := sqrtFp2(&gx1)

	var x2, gx2 Fp2
	x2.Add(&p.c2, &tv4)
	gx2 = curveRHSG2(&x2)
	_, gx2Square := sqrtFp2(&gx2)
	e2 := gx2Square && !e1

	var x3, tv2sq Fp2
	tv2sq.Square(&tv2)
	x3.Mul(&tv2sq, &tv3Inv)
	x3.Square(&x3)
	x3.Mul(&x3, &p.c4)
	x3.Add(&x3, &p.z)

	var x Fp2
	x.CMov(&x1, &x3, e1)
	x.CMov(&x2, &x, e2)

	gx := curveRHSG2(&x)
	y, ok := sqrtFp2(&gx)
	if !ok {
		return Fp2{}, Fp2{}, false
	}
	if sgn0Fp2(&u) != sgn0Fp2(&y) {
		y.Neg(&y)
	}
	return x, y, true
}

func curveRHSG2(x *Fp2) Fp2 {
	var x2, x3, rhs Fp2
	x2.Square(x)
	x3.Mul(&x2, x)
	rhs.Add(&x3, &bG2)
	return rhs
}

// sgn0Fp2 is RFC 9380's extension-field sgn0: the sign of the first
// nonzero coordinate in the (C0, C1) basis.
func sgn0Fp2(x *Fp2) int {
	if !x.C0.IsZero() {
		return x.C0.Sgn0()
	}
	return x.C1.Sgn0()
}
