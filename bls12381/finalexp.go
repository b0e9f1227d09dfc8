package bls12381

import (
	"math/big"

	"github.com/eth2030/curvecore/taskpool"
)

// FinalExponentiation raises f to the power (p^12-1)/r, the step that
// turns a Miller-loop output into a well-defined GT element (spec.md
// section 4.G). It is split into an "easy part" (p^6-1 then p^2+1,
// implemented with conjugate/Frobenius-square and one inversion, exactly
// as every optimal-ate pairing implementation does it) and a "hard part"
// exponentiation by (p^4-p^2+1)/r.
//
// The hard part uses a single exponentiation by the precomputed exponent
// finalExpHardExponent instead of the classical Fuentes-Castañeda (or
// similar) addition chain built from powers of the BLS parameter x: the
// addition chain is a sequence of ~10 squarings and multiplications that
// is easy to get subtly wrong (wrong sign, dropped term) with no oracle
// available to catch it, whereas a single exponentiation by the exact
// target exponent is unambiguously correct by definition, at the cost of
// roughly an order of magnitude more field multiplications. Its input f2
// is the easy part's output, f1^(p^2)*f1, which is always cyclotomic
// (order dividing p^4-p^2+1 by construction of the easy part), so the
// exponentiation's squaring step uses CyclotomicSquare (cyclotomic.go)
// rather than the generic Fp12.Square that powFp12 uses for arbitrary
// elements elsewhere in this package (Frobenius, Inv).
func FinalExponentiation(f Fp12) Fp12 {
	// Easy part: f^(p^6-1) = conjugate(f) * f^-1, then multiply by its
	// own Frobenius^2 (the (p^2+1) step), i.e. f2 = f1^(p^2) * f1.
	var fInv Fp12
	fInv.Inv(&f)

	var f1 Fp12
	f1.Conjugate(&f)
	f1.Mul(&f1, &fInv)

	var f1p2 Fp12
	f1p2.FrobeniusSquare(&f1)

	var f2 Fp12
	f2.Mul(&f1p2, &f1)

	return powCyclotomicFp12(&f2, finalExpHardExponent)
}

// powCyclotomicFp12 is powFp12 restricted to cyclotomic input, using
// CyclotomicSquare for the squaring step.
func powCyclotomicFp12(x *Fp12, e *big.Int) Fp12 {
	result := Fp12One()
	base := *x
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.CyclotomicSquare(&result)
		if e.Bit(i) == 1 {
			result.Mul(&result, &base)
		}
	}
	return result
}

// Pairing computes the optimal ate pairing e(p,q) in GT.
func Pairing(p *G1Affine, q *G2Affine) Fp12 {
	f := MillerLoop(p, q)
	return FinalExponentiation(f)
}

// MultiPairing computes the product of pairings prod_i e(ps[i], qs[i]),
// sharing a single final exponentiation across all terms — the standard
// batching trick for aggregate signature and KZG-style multi-pairing
// checks (spec.md section 4.G, 4.L).
func MultiPairing(ps []G1Affine, qs []G2Affine) Fp12 {
	if len(ps) != len(qs) {
		panic("bls12381: MultiPairing length mismatch")
	}
	acc := Fp12One()
	for i := range ps {
		f := MillerLoop(&ps[i], &qs[i])
		acc.Mul(&acc, &f)
	}
	return FinalExponentiation(acc)
}

// MultiPairingParallel computes the same value as MultiPairing, sharding
// the Miller-loop accumulation across pool (spec.md section 4.N: "parallel
// versions of MSM, multi-pairing, batch verification, and KZG proof
// construction"). Fp12 multiplication is associative and commutative, so
// each chunk's partial Miller-loop product can be computed independently
// inside a sync_scope and folded together afterward with one shared final
// exponentiation, exactly as MultiPairing does for the sequential case.
func MultiPairingParallel(pool *taskpool.Pool, ps []G1Affine, qs []G2Affine) (Fp12, error) {
	if len(ps) != len(qs) {
		panic("bls12381: MultiPairingParallel length mismatch")
	}
	n := len(ps)
	if n == 0 {
		return FinalExponentiation(Fp12One()), nil
	}

	chunks := pool.Chunks(n)
	partials := make([]Fp12, len(chunks))
	err := pool.SyncScope(func(scope *taskpool.Scope) {
		for ci, rng := range chunks {
			ci, rng := ci, rng
			scope.Spawn(func() error {
				acc := Fp12One()
				for i := rng[0]; i < rng[1]; i++ {
					f := MillerLoop(&ps[i], &qs[i])
					acc.Mul(&acc, &f)
				}
				partials[ci] = acc
				return nil
			})
		}
	})
	if err != nil {
		return Fp12{}, err
	}

	acc := Fp12One()
	for i := range partials {
		acc.Mul(&acc, &partials[i])
	}
	return FinalExponentiation(acc), nil
}

// PairingsEqual checks e(p1,q1) == e(p2,q2) without computing either
// final exponentiation in full: it is equivalent, and cheaper, to check
// that MillerLoop(p1,q1) * MillerLoop(p2,q2)^-1 has final exponentiation
// equal to 1, i.e. to pass the combined Miller-loop product through a
// single FinalExponentiation call and compare to one.
func PairingsEqual(p1 *G1Affine, q1 *G2Affine, p2 *G1Affine, q2 *G2Affine) bool {
	var neg2 G1Affine
	neg2 = *p2
	neg2.Y.Neg(&p2.Y)
	f1 := MillerLoop(p1, q1)
	f2 := MillerLoop(&neg2, q2)
	f1.Mul(&f1, &f2)
	result := FinalExponentiation(f1)
	return result.Equal(Fp12One())
}
