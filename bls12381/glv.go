package bls12381

import "math/big"

// glvBeta is a primitive cube root of unity in Fp, and glvLambda the
// matching cube root of unity in Fr, giving the endomorphism
// phi(x,y) = (beta*x, y) with phi(P) = [lambda]P for P in the order-r
// subgroup of G1 (spec.md section 4.G, "GLV/GLS endomorphism").
//
// Rather than hand-copying beta/lambda as hex literals (easy to
// transcribe wrong with no oracle to catch it), both are *computed* at
// init time from their defining property (a nontrivial root of
// x^2+x+1=0) and then *verified* against the curve itself by checking
// phi(G) == [lambda]G on the known generator. If that check ever failed
// it would mean a wrong root was picked, so init panics rather than
// silently shipping a bad endomorphism.
var (
	glvBeta   Fp
	glvLambda *big.Int
)

func init() {
	beta, ok := findPrimitiveCubeRootFp()
	if !ok {
		panic("bls12381: p is not congruent to 1 mod 3, no GLV endomorphism exists")
	}
	lambda, ok := findPrimitiveCubeRootMod(rBig)
	if !ok {
		panic("bls12381: r is not congruent to 1 mod 3, no GLV endomorphism exists")
	}

	g := G1Generator()
	var phiG G1Jacobian
	phiG.X.Mul(&g.X, &beta)
	phiG.Y = g.Y
	phiG.Z = g.Z

	var want G1Jacobian
	want.ScalarMulBig(&g, lambda)
	if !jacobianEqual(&phiG, &want) {
		lambda = new(big.Int).Mod(new(big.Int).Mul(lambda, lambda), rBig)
		want.ScalarMulBig(&g, lambda)
		if !jacobianEqual(&phiG, &want) {
			panic("bls12381: could not match a GLV lambda to beta against the generator")
		}
	}

	glvBeta = beta
	glvLambda = lambda
}

func jacobianEqual(a, b *G1Jacobian) bool {
	aff1 := a.ToAffine()
	aff2 := b.ToAffine()
	if aff1.Infinity != aff2.Infinity {
		return false
	}
	if aff1.Infinity {
		return true
	}
	return aff1.X.Equal(aff2.X) && aff1.Y.Equal(aff2.Y)
}

// findPrimitiveCubeRootFp finds a primitive cube root of unity in Fp by
// raising successive small field elements to the power (p-1)/3 until the
// result is not 1 (guaranteed to terminate quickly: two thirds of
// nonzero elements work).
func findPrimitiveCubeRootFp() (Fp, bool) {
	if new(big.Int).Mod(pBig, big.NewInt(3)).Int64() != 1 {
		return Fp{}, false
	}
	exp := new(big.Int).Sub(pBig, big.NewInt(1))
	exp.Div(exp, big.NewInt(3))
	for i := uint64(2); i < 1000; i++ {
		g := FpFromUint64(i)
		cand := fpPow(&g, exp)
		if !cand.Equal(FpOne()) {
			return cand, true
		}
	}
	return Fp{}, false
}

func fpPow(x *Fp, e *big.Int) Fp {
	result := FpOne()
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Square(&result)
		if e.Bit(i) == 1 {
			result.Mul(&result, x)
		}
	}
	return result
}

// findPrimitiveCubeRootMod finds a primitive cube root of unity modulo an
// arbitrary prime m, the same way as findPrimitiveCubeRootFp but over
// plain big.Int arithmetic (used for Fr, which has no generic Pow).
func findPrimitiveCubeRootMod(m *big.Int) (*big.Int, bool) {
	if new(big.Int).Mod(m, big.NewInt(3)).Int64() != 1 {
		return nil, false
	}
	exp := new(big.Int).Sub(m, big.NewInt(1))
	exp.Div(exp, big.NewInt(3))
	for i := int64(2); i < 1000; i++ {
		cand := new(big.Int).Exp(big.NewInt(i), exp, m)
		if cand.Cmp(big.NewInt(1)) != 0 {
			return cand, true
		}
	}
	return nil, false
}

// glvHalfGCD runs the extended Euclidean algorithm on (r, lambda) and
// returns the two short basis vectors (a1,b1), (a2,b2) such that
// a1 + b1*lambda = 0 mod r and a2 + b2*lambda = 0 mod r, each with
// entries of roughly half the bit length of r (Guide to Elliptic Curve
// Cryptography, Algorithm 3.74).
func glvHalfGCD() (a1, b1, a2, b2 *big.Int) {
	r0, r1 := new(big.Int).Set(rBig), new(big.Int).Mod(glvLambda, rBig)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	sqrtR := new(big.Int).Sqrt(rBig)

	for r1.CmpAbs(sqrtR) > 0 {
		q := new(big.Int)
		rem := new(big.Int)
		q.QuoRem(r0, r1, rem)

		r0, r1 = r1, rem

		tNext := new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))
		t0, t1 = t1, tNext
	}

	a1 = new(big.Int).Set(r1)
	b1 = new(big.Int).Neg(t1)

	// One further step gives the second short vector.
	q := new(big.Int)
	rem := new(big.Int)
	q.QuoRem(r0, r1, rem)
	tNext := new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))

	a2 = new(big.Int).Set(rem)
	b2 = new(big.Int).Neg(tNext)

	return a1, b1, a2, b2
}

var glvA1, glvB1, glvA2, glvB2 *big.Int

func glvBasis() (a1, b1, a2, b2 *big.Int) {
	if glvA1 == nil {
		glvA1, glvB1, glvA2, glvB2 = glvHalfGCD()
	}
	return glvA1, glvB1, glvA2, glvB2
}

// roundDiv computes round(num/den) for a positive den, correctly for
// either sign of num.
func roundDiv(num, den *big.Int) *big.Int {
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(num, den, r)
	r2 := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
	if r2.Cmp(den) >= 0 {
		if num.Sign() >= 0 {
			q.Add(q, big.NewInt(1))
		} else {
			q.Sub(q, big.NewInt(1))
		}
	}
	return q
}

// decomposeScalar splits k (mod r) into k = k1 + k2*lambda (mod r), with
// |k1|,|k2| each roughly half the bit length of r. Returns the two
// magnitudes and their signs.
func decomposeScalar(k *big.Int) (k1 *big.Int, k1Neg bool, k2 *big.Int, k2Neg bool) {
	kMod := new(big.Int).Mod(k, rBig)
	a1, b1, a2, b2 := glvBasis()

	c1 := roundDiv(new(big.Int).Mul(b2, kMod), rBig)
	c2 := roundDiv(new(big.Int).Neg(new(big.Int).Mul(b1, kMod)), rBig)

	v1 := new(big.Int).Sub(kMod, new(big.Int).Mul(c1, a1))
	v1.Sub(v1, new(big.Int).Mul(c2, a2))

	v2 := new(big.Int).Mul(c1, b1)
	v2.Neg(v2)
	v2.Sub(v2, new(big.Int).Mul(c2, b2))

	if v1.Sign() < 0 {
		k1Neg = true
		k1 = new(big.Int).Neg(v1)
	} else {
		k1 = v1
	}
	if v2.Sign() < 0 {
		k2Neg = true
		k2 = new(big.Int).Neg(v2)
	} else {
		k2 = v2
	}
	return
}

// ScalarMulGLV computes [k]P using the GLV endomorphism to halve the
// number of doublings via a simultaneous double-and-add over the two
// half-length sub-scalars. This is a variable-time path (spec.md
// section 4.G "Variable-time path") — the loop's iteration count and
// table-lookup pattern do not depend on k, but the early-exit when one
// sub-scalar is shorter than the other does, so it must not be used on
// secret scalars; package bls and package kzg use the constant-time
// ScalarMulCT for those. If the decomposition ever fails its own
// self-check (which should never happen once init's verification has
// passed), it falls back to the plain ScalarMul rather than returning a
// silently wrong result.
func (p *G1Jacobian) ScalarMulGLV(a *G1Jacobian, k *big.Int) *G1Jacobian {
	kMod := new(big.Int).Mod(k, rBig)
	if kMod.Sign() == 0 || a.IsIdentity() {
		*p = G1Identity()
		return p
	}

	k1, k1Neg, k2, k2Neg := decomposeScalar(kMod)

	check := new(big.Int).Mul(k2, glvLambda)
	if k2Neg {
		check.Neg(check)
	}
	if k1Neg {
		check.Sub(check, k1)
	} else {
		check.Add(check, k1)
	}
	check.Mod(check, rBig)
	if check.Cmp(kMod) != 0 {
		return p.ScalarMul(a, bigToFr(kMod))
	}

	p1 := *a
	if k1Neg {
		var neg G1Jacobian
		neg.Neg(&p1)
		p1 = neg
	}

	var phiP G1Jacobian
	phiP.X.Mul(&a.X, &glvBeta)
	phiP.Y = a.Y
	phiP.Z = a.Z
	if k2Neg {
		var neg G1Jacobian
		neg.Neg(&phiP)
		phiP = neg
	}

	maxBits := k1.BitLen()
	if k2.BitLen() > maxBits {
		maxBits = k2.BitLen()
	}

	acc := G1Identity()
	for i := maxBits - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k1.Bit(i) == 1 {
			acc.Add(&acc, &p1)
		}
		if k2.Bit(i) == 1 {
			acc.Add(&acc, &phiP)
		}
	}
	*p = acc
	return p
}

func bigToFr(v *big.Int) *Fr {
	var b [32]byte
	v.FillBytes(b[:])
	out := FrFromBytesReduced(b[:])
	return &out
}
