package bls12381

import (
	"math/big"
	"sync"
)

// GT is the order-r subgroup of Fp12^* that pairing values live in
// (spec.md section 4.G/K). It is a thin wrapper over Fp12 restricted to
// values already produced by FinalExponentiation, so that callers cannot
// accidentally feed a raw Miller-loop output into a GT-typed API. Every
// GT value is, by construction, in the cyclotomic subgroup of order
// p^4-p^2+1 (GT's order r divides p^4-p^2+1), so every squaring step on a GT
// value can use CyclotomicSquare instead of the generic Fp12.Square.
type GT struct {
	v Fp12
}

// GTFromPairing wraps an already-exponentiated pairing value.
func GTFromPairing(f Fp12) GT { return GT{v: f} }

func GTIdentity() GT { return GT{v: Fp12One()} }

func (z GT) Equal(x GT) bool { return z.v.Equal(x.v) }

func (z *GT) Mul(x, y *GT) *GT {
	z.v.Mul(&x.v, &y.v)
	return z
}

func (z *GT) Inv(x *GT) *GT {
	z.v.Inv(&x.v)
	return z
}

// CyclotomicSquare squares z's underlying Fp12 value via the dedicated
// cyclotomic formula (see cyclotomic.go), valid here because every GT
// element lies in the cyclotomic subgroup.
func (z *GT) CyclotomicSquare(x *GT) *GT {
	z.v.CyclotomicSquare(&x.v)
	return z
}

// Pow raises z to a public scalar exponent (e.g. verifying a pairing
// identity raised by a random challenge), via square-and-multiply over
// the scalar's bit representation using CyclotomicSquare for the
// squaring step (spec.md section 4.J/4.K: "cyclotomic squaring is used
// exclusively").
func (z *GT) Pow(x *GT, e *Fr) *GT {
	result := GTIdentity()
	base := *x
	bitLen := e.BitLen()
	for i := bitLen - 1; i >= 0; i-- {
		result.v.CyclotomicSquare(&result.v)
		if e.Bit(i) == 1 {
			result.v.Mul(&result.v, &base.v)
		}
	}
	*z = result
	return z
}

// gtLambda is p mod r: since every GT element x satisfies x^r = 1,
// Frobenius(x) = x^p equals x^(p mod r), giving a 2-dimensional
// endomorphism decomposition for GT exponentiation exactly analogous to
// G1's GLV endomorphism in glv.go (spec.md section 4.K: "GLS-endomorphism-
// accelerated exponentiation").
//
// Computed lazily on first use, via sync.Once, rather than in an init()
// function: PowGLS's self-check below needs a genuine pairing output
// (G1Generator, G2Generator, Pairing), and this package has no single
// init() that is guaranteed to run after every other file's init() has
// populated the curve parameters and generators it depends on — the same
// reason glv.go's own glvBasis() defers its half-GCD computation to first
// use instead of doing it in glv.go's init().
var (
	gtLambda               *big.Int
	gtA1, gtB1, gtA2, gtB2 *big.Int
	gtGLSOnce              sync.Once
)

func ensureGTGLS() {
	gtGLSOnce.Do(func() {
		gtLambda = new(big.Int).Mod(pBig, rBig)
		gtA1, gtB1, gtA2, gtB2 = halfGCDBasis(gtLambda)

		// The GLS identity g^p = g^(p mod r) only holds for g in the
		// actual order-r subgroup (g^r=1 is what lets the exponent be
		// reduced mod r), not merely for any cyclotomic element (order
		// dividing p^4-p^2+1, of which r is only one factor) — so the
		// self-check needs a genuine pairing output, not an arbitrary
		// cyclotomic test vector.
		g1, g2 := G1Generator(), G2Generator()
		g1Aff := g1.ToAffine()
		g2Aff := g2.ToAffine()
		g := GTFromPairing(Pairing(&g1Aff, &g2Aff))

		var direct, viaGLS GT
		testExp := bigToFr(big.NewInt(12345))
		direct.Pow(&g, testExp)
		viaGLS = glsExp(&g, new(big.Int).Mod(frToBig(testExp), rBig))
		if !direct.Equal(viaGLS) {
			panic("bls12381: GT GLS decomposition disagrees with generic Pow on a test exponent")
		}
	})
}

// halfGCDBasis runs the extended Euclidean algorithm on (r, lambda),
// independently of glv.go's glvHalfGCD (which is specific to G1's own
// lambda) but identical in structure (Guide to Elliptic Curve
// Cryptography, Algorithm 3.74).
func halfGCDBasis(lambda *big.Int) (a1, b1, a2, b2 *big.Int) {
	r0, r1 := new(big.Int).Set(rBig), new(big.Int).Mod(lambda, rBig)
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

	q := new(big.Int)
	rem := new(big.Int)
	q.QuoRem(r0, r1, rem)
	tNext := new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))

	a2 = new(big.Int).Set(rem)
	b2 = new(big.Int).Neg(tNext)
	return a1, b1, a2, b2
}

func gtDecompose(k *big.Int) (k1 *big.Int, k1Neg bool, k2 *big.Int, k2Neg bool) {
	kMod := new(big.Int).Mod(k, rBig)

	c1 := roundDiv(new(big.Int).Mul(gtB2, kMod), rBig)
	c2 := roundDiv(new(big.Int).Neg(new(big.Int).Mul(gtB1, kMod)), rBig)

	v1 := new(big.Int).Sub(kMod, new(big.Int).Mul(c1, gtA1))
	v1.Sub(v1, new(big.Int).Mul(c2, gtA2))

	v2 := new(big.Int).Mul(c1, gtB1)
	v2.Neg(v2)
	v2.Sub(v2, new(big.Int).Mul(c2, gtB2))

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

// glsExp is PowGLS's decomposition-and-exponentiate core, factored out so
// ensureGTGLS's self-check can exercise it directly without going back
// through PowGLS (which would call ensureGTGLS again and deadlock on its
// own sync.Once). Assumes gtLambda/gtA1../gtB2 are already populated.
func glsExp(x *GT, kMod *big.Int) GT {
	if kMod.Sign() == 0 {
		return GTIdentity()
	}

	k1, k1Neg, k2, k2Neg := gtDecompose(kMod)

	check := new(big.Int).Mul(k2, gtLambda)
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
		var fallback GT
		fallback.Pow(x, bigToFr(kMod))
		return fallback
	}

	base1 := x.v
	var base2 Fp12
	base2.Frobenius(&base1)
	if k1Neg {
		base1.Inv(&base1)
	}
	if k2Neg {
		base2.Inv(&base2)
	}

	maxBits := k1.BitLen()
	if k2.BitLen() > maxBits {
		maxBits = k2.BitLen()
	}

	acc := Fp12One()
	for i := maxBits - 1; i >= 0; i-- {
		acc.CyclotomicSquare(&acc)
		if k1.Bit(i) == 1 {
			acc.Mul(&acc, &base1)
		}
		if k2.Bit(i) == 1 {
			acc.Mul(&acc, &base2)
		}
	}
	return GT{v: acc}
}

// PowGLS computes x^e using the GLS 2-way decomposition e = k1 + k2*p
// (mod r): Frobenius(x) = x^p is cheap relative to a full exponentiation,
// so this halves the number of squarings relative to Pow, the same
// tradeoff glv.go's ScalarMulGLV makes for G1. Like ScalarMulGLV this is
// a variable-time path and must not be used on a secret exponent. Falls
// back to the plain cyclotomic Pow if the decomposition's own self-check
// fails (should not happen once ensureGTGLS's verification has passed).
func (z *GT) PowGLS(x *GT, e *Fr) *GT {
	ensureGTGLS()
	kMod := new(big.Int).Mod(frToBig(e), rBig)
	*z = glsExp(x, kMod)
	return z
}

func frToBig(e *Fr) *big.Int {
	b := e.BytesBE()
	return new(big.Int).SetBytes(b[:])
}

// MultiExpGT computes prod(bases[i]^scalars[i]) using Pippenger's bucket
// method (spec.md section 4.K: "a GT multi-exp (Pippenger with Fp12/T2
// buckets)"), the multiplicative-group mirror of MSMG1 in msm.go: bucket
// accumulation uses Fp12 Mul where MSMG1 uses Jacobian Add, and each
// window's squarings use CyclotomicSquare where MSMG1 uses point
// doubling.
func MultiExpGT(bases []GT, scalars []Fr) GT {
	n := len(bases)
	if n != len(scalars) {
		panic("bls12381: MultiExpGT length mismatch")
	}
	if n == 0 {
		return GTIdentity()
	}
	if n < 32 {
		return multiExpGTNaive(bases, scalars)
	}

	const windowBits = 8
	const numBuckets = (1 << windowBits) - 1
	numWindows := (255 + windowBits - 1) / windowBits

	result := GTIdentity()
	for w := numWindows - 1; w >= 0; w-- {
		if w != numWindows-1 {
			for i := 0; i < windowBits; i++ {
				result.v.CyclotomicSquare(&result.v)
			}
		}
		buckets := make([]Fp12, numBuckets+1)
		for i := range buckets {
			buckets[i] = Fp12One()
		}
		for i := 0; i < n; i++ {
			digit := windowDigit(&scalars[i], w, windowBits)
			if digit == 0 {
				continue
			}
			buckets[digit].Mul(&buckets[digit], &bases[i].v)
		}

		runningSum, windowSum := Fp12One(), Fp12One()
		for k := numBuckets; k >= 1; k-- {
			runningSum.Mul(&runningSum, &buckets[k])
			windowSum.Mul(&windowSum, &runningSum)
		}
		result.v.Mul(&result.v, &windowSum)
	}
	return result
}

func multiExpGTNaive(bases []GT, scalars []Fr) GT {
	acc := GTIdentity()
	for i := range bases {
		var term GT
		term.Pow(&bases[i], &scalars[i])
		acc.Mul(&acc, &term)
	}
	return acc
}

func (z GT) Raw() Fp12 { return z.v }
