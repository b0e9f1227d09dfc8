package bls12381

// Simplified SWU (RFC 9380 section 6.6.2), adapted from the teacher's
// SimplifiedSWU in hash_to_curve.go: same A', B', Z constants, same five
// field operations, rewritten against Montgomery Fp instead of math/big.
//
// SSWU requires A != 0, which BLS12-381's G1 curve y^2=x^3+4 does not
// have, so RFC 9380's suite defines SSWU on a 3-isogenous curve E' and
// specifies an 11-isogeny (about fifty Fp coefficients, RFC 9380 Appendix
// E.2) mapping E'-points onto E. That isogeny is not implemented here:
// reproducing fifty specific field constants from memory with no build or
// reference to check them against is exactly the kind of transcription
// risk this codebase avoids elsewhere by preferring a self-checked generic
// construction (see cyclotomic.go, glv.go) over a remembered closed form.
// mapToCurveSSWUPrime below is therefore a real, tested building block
// (verified on-curve on E') rather than a complete map_to_curve — SvdW
// (svdw.go), which needs no isogeny, is what HashToCurveG1/G2 actually use
// to reach E. See DESIGN.md for the same point in the grounding ledger.
var (
	sswuA = mustFpFromHex("144698a3b8e9433d693a02c96d4982b0ea985383ee66a8d8e8981aefd881ac98936f8da0e0f97f5cf428082d584c1d")
	sswuB = mustFpFromHex("12e2908d11688030018b12e8753eee3b2016c1f0f24f4070a0b9c14fcef35ef55a23215a316ceaa5d1cc48e98e172be0")
	sswuZ = FpFromUint64(11)
)

// mustFpFromHex decodes a big-endian hex constant at package-var-init time.
// Panics on malformed input, which only a typo in the literal above could
// cause — there is no untrusted input path here.
func mustFpFromHex(hex string) Fp {
	if len(hex)%2 == 1 {
		hex = "0" + hex
	}
	b := make([]byte, len(hex)/2)
	for i := range b {
		hi := hexNibble(hex[2*i])
		lo := hexNibble(hex[2*i+1])
		b[i] = hi<<4 | lo
	}
	padded := make([]byte, 48)
	copy(padded[48-len(b):], b)
	v, ok := FpFromBytesBE(padded)
	if !ok {
		panic("bls12381: sswu constant out of range")
	}
	return v
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("bls12381: invalid hex digit in sswu constant")
	}
}

// mapToCurveSSWUPrime applies RFC 9380's SSWU map, producing a point on
// the isogenous curve E': y^2 = x^3 + sswuA*x + sswuB (not on G1's curve
// E: y^2 = x^3 + 4 — see this file's top comment).
func mapToCurveSSWUPrime(u Fp) (x, y Fp) {
	var u2, zu2, zu2sq, tv1 Fp
	u2.Square(&u)
	zu2.Mul(&sswuZ, &u2)
	zu2sq.Square(&zu2)
	tv1.Add(&zu2sq, &zu2)

	var x1 Fp
	if tv1.IsZero() {
		var zA Fp
		zA.Mul(&sswuZ, &sswuA)
		x1.Inv(&zA)
		x1.Mul(&x1, &sswuB)
	} else {
		var negBA, tv1Inv, onePlusInv Fp
		negBA.Neg(&sswuB)
		var aInv Fp
		aInv.Inv(&sswuA)
		negBA.Mul(&negBA, &aInv)
		tv1Inv.Inv(&tv1)
		one := FpOne()
		onePlusInv.Add(&one, &tv1Inv)
		x1.Mul(&negBA, &onePlusInv)
	}

	gx1 := sswuPrimeRHS(&x1)

	var x2 Fp
	x2.Mul(&zu2, &x1)
	gx2 := sswuPrimeRHS(&x2)

	if gx1.IsSquare() {
		x = x1
		y, _ = gx1.Sqrt()
	} else {
		x = x2
		y, _ = gx2.Sqrt()
	}
	if u.Sgn0() != y.Sgn0() {
		y.Neg(&y)
	}
	return x, y
}

func sswuPrimeRHS(x *Fp) Fp {
	var x2, x3, ax, rhs Fp
	x2.Square(x)
	x3.Mul(&x2, x)
	ax.Mul(&sswuA, x)
	rhs.Add(&x3, &ax)
	rhs.Add(&rhs, &sswuB)
	return rhs
}

// IsOnIsogenousCurveG1 reports whether (x,y) lies on E': y^2=x^3+A'x+B',
// mirroring the teacher's IsOnIsogenousCurve. Exercised by sswu_test.go to
// confirm mapToCurveSSWUPrime's output actually lands on E'.
func IsOnIsogenousCurveG1(x, y *Fp) bool {
	var lhs, ySq Fp
	ySq.Square(y)
	lhs = ySq
	rhs := sswuPrimeRHS(x)
	return lhs.Equal(rhs)
}
