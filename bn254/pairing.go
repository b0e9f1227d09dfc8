package bn254

import "math/big"

// Package bn254 implements the optimal ate pairing over the D-type sextic
// twist, ported from the teacher's bn254_pairing.go. Grounded closely on
// that file's twistPointJ/lineFunctionDouble/lineFunctionAdd/millerLoop
// structure; mulLine and the final-exponentiation hard part use the
// generic simplifications documented in field.go rather than the
// teacher's sparse Karatsuba mulLine and Fuentes-Castañeda-style addition
// chain.

// ateLoopCount is |6u+2| for BN254.
var ateLoopCount, _ = new(big.Int).SetString("29793968203157093288", 10)

// sixuPlus2NAF is 6u+2 in non-adjacent form, LSB first.
var sixuPlus2NAF = []int8{0, 0, 0, 1, 0, 1, 0, -1, 0, 0, 1, -1, 0, 0, 1, 0,
	0, 1, 1, 0, -1, 0, 0, 1, 0, -1, 0, 0, 0, 0, 1, 1,
	1, 0, 0, -1, 0, 0, 1, 0, 0, 0, 0, 0, -1, 0, 0, 1,
	1, 0, 0, -1, 0, 0, 0, 1, 1, 0, -1, 0, 0, 1, 0, 1, 1}

// Frobenius endomorphism constants for the G2 twist, copied verbatim from
// the teacher: these are public curve constants (not a derivation I need
// to re-verify), unlike the addition-chain/coefficient-table
// simplifications noted in field.go.
var (
	frobXa0, _ = new(big.Int).SetString("21575463638280843010398324269430826099269044274347216827212613867836435027261", 10)
	frobXa1, _ = new(big.Int).SetString("10307601595873709700152284273816112264069230130616436755625194854815875713954", 10)
	frobYa0, _ = new(big.Int).SetString("2821565182194536844548159561693502659359617185244120367078079554186484126554", 10)
	frobYa1, _ = new(big.Int).SetString("3505843767911556378687030309984248845540243509899259641013678093033130930403", 10)

	xiToPMinus1Over3Twist = &Fp2{A0: frobXa0, A1: frobXa1}
	xiToPMinus1Over2Twist = &Fp2{A0: frobYa0, A1: frobYa1}

	frobSqXa0, _ = new(big.Int).SetString("21888242871839275220042445260109153167277707414472061641714758635765020556616", 10)
)

func frobeniusEndomorphism(qx, qy *Fp2) (*Fp2, *Fp2) {
	x := Fp2Mul(Fp2Conj(qx), xiToPMinus1Over3Twist)
	y := Fp2Mul(Fp2Conj(qy), xiToPMinus1Over2Twist)
	return x, y
}

// twistPointJ is a Jacobian twist point carrying its cached Z^2, used only
// inside the Miller loop (distinct from the G2Jacobian curve type, whose
// points may outlive a single pairing computation).
type twistPointJ struct {
	x, y, z, t *Fp2
}

func newTwistPointJ(x, y, z *Fp2) *twistPointJ {
	return &twistPointJ{x: x, y: y, z: z, t: Fp2Sqr(z)}
}

// lineFunctionDouble computes the tangent line at r (Jacobian), advances r
// to 2r, and returns the sparse line coefficients a, b, c such that the
// line element is c + (b+a*v)*w.
func lineFunctionDouble(r *twistPointJ, qx, qy *big.Int) (a, b, c *Fp2, rOut *twistPointJ) {
	A := Fp2Sqr(r.x)
	Bv := Fp2Sqr(r.y)
	C := Fp2Sqr(Bv)

	D := Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(r.x, Bv)), A), C)
	D = Fp2Add(D, D)

	E := Fp2Add(Fp2Add(A, A), A)
	G := Fp2Sqr(E)

	rOut = &twistPointJ{}
	rOut.x = Fp2Sub(Fp2Sub(G, D), D)

	rOut.z = Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(r.y, r.z)), Bv), r.t)

	rOut.y = Fp2Mul(Fp2Sub(D, rOut.x), E)
	eightC := Fp2Double(Fp2Double(Fp2Double(C)))
	rOut.y = Fp2Sub(rOut.y, eightC)

	rOut.t = Fp2Sqr(rOut.z)

	t := Fp2Double(Fp2Mul(E, r.t))
	b = Fp2MulByFp(Fp2Neg(t), qx)

	a = Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(r.x, E)), A), G)
	a = Fp2Sub(a, Fp2Double(Fp2Double(Bv)))

	c = Fp2Double(Fp2Mul(rOut.z, r.t))
	c = Fp2MulByFp(c, qy)

	return a, b, c, rOut
}

// lineFunctionAdd computes the line through r and the affine twist point
// (px,py), advances r to r+(px,py), and returns the sparse line
// coefficients. r2 must be the precomputed square of the Y-coordinate of
// the point being added.
func lineFunctionAdd(r *twistPointJ, px, py *Fp2, qx, qy *big.Int, r2 *Fp2) (a, b, c *Fp2, rOut *twistPointJ) {
	Bv := Fp2Mul(px, r.t)

	D := Fp2Mul(Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(py, r.z)), r2), r.t), r.t)

	H := Fp2Sub(Bv, r.x)
	I := Fp2Sqr(H)

	E := Fp2Double(Fp2Double(I))
	J := Fp2Mul(H, E)

	L1 := Fp2Sub(Fp2Sub(D, r.y), r.y)

	V := Fp2Mul(r.x, E)

	rOut = &twistPointJ{}
	rOut.x = Fp2Sub(Fp2Sub(Fp2Sqr(L1), J), Fp2Double(V))

	rOut.z = Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(r.z, H)), r.t), I)

	t := Fp2Mul(Fp2Sub(V, rOut.x), L1)
	t2 := Fp2Double(Fp2Mul(r.y, J))
	rOut.y = Fp2Sub(t, t2)

	rOut.t = Fp2Sqr(rOut.z)

	tt := Fp2Sub(Fp2Sub(Fp2Sqr(Fp2Add(py, rOut.z)), r2), rOut.t)
	t2 = Fp2Double(Fp2Mul(L1, px))
	a = Fp2Sub(t2, tt)

	c = Fp2Double(Fp2MulByFp(rOut.z, qy))

	b = Fp2Double(Fp2MulByFp(Fp2Neg(L1), qx))

	return a, b, c, rOut
}

// MillerLoop computes the Miller loop of the optimal ate pairing for
// affine points p in G1, q in G2.
func MillerLoop(px, py *big.Int, qx, qy *Fp2) *Fp12 {
	ret := Fp12One()

	r := newTwistPointJ(qx, qy, Fp2One())
	minusQy := Fp2Neg(qy)
	r2 := Fp2Sqr(qy)

	for i := len(sixuPlus2NAF) - 1; i > 0; i-- {
		a, b, c, newR := lineFunctionDouble(r, px, py)
		if i != len(sixuPlus2NAF)-1 {
			ret = Fp12Sqr(ret)
		}
		ret = mulLine(ret, a, b, c)
		r = newR

		switch sixuPlus2NAF[i-1] {
		case 1:
			a, b, c, newR = lineFunctionAdd(r, qx, qy, px, py, r2)
			ret = mulLine(ret, a, b, c)
			r = newR
		case -1:
			a, b, c, newR = lineFunctionAdd(r, qx, minusQy, px, py, r2)
			ret = mulLine(ret, a, b, c)
			r = newR
		}
	}

	q1x, q1y := frobeniusEndomorphism(qx, qy)
	r2 = Fp2Sqr(q1y)
	a, b, c, newR := lineFunctionAdd(r, q1x, q1y, px, py, r2)
	ret = mulLine(ret, a, b, c)
	r = newR

	minusQ2x := Fp2MulByFp(qx, frobSqXa0)
	minusQ2y := qy
	r2 = Fp2Sqr(minusQ2y)
	a, b, c, _ = lineFunctionAdd(r, minusQ2x, minusQ2y, px, py, r2)
	ret = mulLine(ret, a, b, c)

	return ret
}

var cachedFinalExpHardExponent *big.Int

// finalExpHardExponent is (p^4-p^2+1)/r, the hard-part target exponent
// used instead of the teacher's addition chain (see field.go doc comment
// on the same tradeoff for bls12381).
func finalExpHardExponent() *big.Int {
	if cachedFinalExpHardExponent == nil {
		p2 := new(big.Int).Mul(P, P)
		p4 := new(big.Int).Mul(p2, p2)
		num := new(big.Int).Sub(p4, p2)
		num.Add(num, big.NewInt(1))
		cachedFinalExpHardExponent = new(big.Int).Div(num, R)
	}
	return cachedFinalExpHardExponent
}

// FinalExponentiation raises f to (p^12-1)/r, turning a Miller-loop
// output into a well-defined GT element.
func FinalExponentiation(f *Fp12) *Fp12 {
	fInv := Fp12Inv(f)
	f1 := Fp12Mul(Fp12Conj(f), fInv)
	f2 := Fp12Mul(Fp12Frobenius(Fp12Frobenius(f1)), f1)
	return powFp12(f2, finalExpHardExponent())
}

// Pair computes the optimal ate pairing e(p,q) for affine points.
func Pair(p *G1Affine, q *G2Affine) *Fp12 {
	if p.Infinity || q.Infinity {
		return Fp12One()
	}
	f := MillerLoop(p.X, p.Y, q.X, q.Y)
	return FinalExponentiation(f)
}

// MultiPairingCheck checks prod_i e(ps[i], qs[i]) == 1 in GT, sharing a
// single final exponentiation across all terms, mirroring
// bls12381.PairingsEqual's batching approach and the teacher's
// bn254MultiPairing.
func MultiPairingCheck(ps []G1Affine, qs []G2Affine) bool {
	if len(ps) != len(qs) {
		return false
	}
	acc := Fp12One()
	for i := range ps {
		if ps[i].Infinity || qs[i].Infinity {
			continue
		}
		f := MillerLoop(ps[i].X, ps[i].Y, qs[i].X, qs[i].Y)
		acc = Fp12Mul(acc, f)
	}
	result := FinalExponentiation(acc)
	return result.IsOne()
}
