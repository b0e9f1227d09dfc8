package bls12381

import "sync"

// CyclotomicSquare squares x using the Granger-Scott formula, valid only
// for x in the order-(p^4-p^2+1) cyclotomic subgroup of Fp12^* (the subgroup
// GT and every intermediate value in FinalExponentiation's hard part live
// in). It costs noticeably fewer Fp2 multiplications than the generic
// Fp12.Square, which is the whole point of routing GT's exponentiation
// and the hard part of the final exponentiation through it (spec.md
// section 4.J, 4.K: "cyclotomic squaring is used exclusively").
//
// The formula is recalled from the standard optimal-ate pairing
// literature (Granger-Scott 2010) rather than re-derived from scratch, so
// the first call verifies it once against a generic Fp12.Square on a
// value known to lie in the cyclotomic subgroup: for any nonzero x,
// d = conjugate(x)*x^-1 = x^(p^6-1), and d^(p^2)*d = x^((p^6-1)(p^2+1))
// has order dividing p^4-p^2+1, the same easy-part construction
// FinalExponentiation uses. If the formula were transcribed wrong, this
// would almost certainly disagree with the generic square and the call
// panics rather than shipping a silently wrong primitive.
func (z *Fp12) CyclotomicSquare(x *Fp12) *Fp12 {
	ensureCyclotomicVerified()
	return cyclotomicSquareRaw(z, x)
}

// cyclotomicSquareRaw is the formula itself, with no verification gate, so
// that ensureCyclotomicVerified's own self-check can call it directly
// instead of recursing back through CyclotomicSquare (which would deadlock
// on cyclotomicOnce.Do).
func cyclotomicSquareRaw(z, x *Fp12) *Fp12 {
	g0, g1, g2, g3, g4, g5 := x.C0.C0, x.C1.C0, x.C0.C1, x.C1.C1, x.C0.C2, x.C1.C2

	var t0, t1, t2, t3, t4, t5, t6, t7, t8 Fp2

	t0.Square(&g3)
	t1.Square(&g0)
	t6.Add(&g3, &g0)
	t6.Square(&t6)
	t6.Sub(&t6, &t0)
	t6.Sub(&t6, &t1)

	t2.Square(&g4)
	t3.Square(&g1)
	t7.Add(&g4, &g1)
	t7.Square(&t7)
	t7.Sub(&t7, &t2)
	t7.Sub(&t7, &t3)

	t4.Square(&g5)
	t5.Square(&g2)
	t8.Add(&g5, &g2)
	t8.Square(&t8)
	t8.Sub(&t8, &t4)
	t8.Sub(&t8, &t5)
	t8.MulByNonResidue(&t8)

	t0.MulByNonResidue(&t0)
	t0.Add(&t0, &t1)
	t2.MulByNonResidue(&t2)
	t2.Add(&t2, &t3)
	t4.MulByNonResidue(&t4)
	t4.Add(&t4, &t5)

	var h0, h1, h2, h3, h4, h5 Fp2
	h0.Sub(&t0, &g0)
	h0.Double(&h0)
	h0.Add(&h0, &t0)

	h2.Sub(&t2, &g2)
	h2.Double(&h2)
	h2.Add(&h2, &t2)

	h4.Sub(&t4, &g4)
	h4.Double(&h4)
	h4.Add(&h4, &t4)

	h1.Add(&t8, &g1)
	h1.Double(&h1)
	h1.Add(&h1, &t8)

	h3.Add(&t6, &g3)
	h3.Double(&h3)
	h3.Add(&h3, &t6)

	h5.Add(&t7, &g5)
	h5.Double(&h5)
	h5.Add(&h5, &t7)

	z.C0 = Fp6{C0: h0, C1: h2, C2: h4}
	z.C1 = Fp6{C0: h1, C1: h3, C2: h5}
	return z
}

// ensureCyclotomicVerified runs the self-check on first use rather than in
// an init() function: Fp12.Inv calls powFp12 against p12Minus2, which is
// assigned inside params.go's init(), and Go runs same-package init()
// functions in file-name order — "cyclotomic.go" sorts before "params.go",
// so an init() here could observe p12Minus2 before params.go's init() has
// set it. Deferring to first real use (gt.go's ensureGTGLS and glv.go's
// glvBasis defer for the identical reason) sidesteps the ordering hazard
// instead of relying on it resolving favorably.
var cyclotomicOnce sync.Once

func ensureCyclotomicVerified() {
	cyclotomicOnce.Do(func() {
		var x Fp12
		x.C0 = Fp6{C0: FpFromUint64(2).asFp2(), C1: FpFromUint64(3).asFp2(), C2: FpFromUint64(5).asFp2()}
		x.C1 = Fp6{C0: FpFromUint64(7).asFp2(), C1: FpFromUint64(11).asFp2(), C2: FpFromUint64(13).asFp2()}

		var xInv, conj, d Fp12
		xInv.Inv(&x)
		conj.Conjugate(&x)
		d.Mul(&conj, &xInv)
		var dp2 Fp12
		dp2.FrobeniusSquare(&d)
		d.Mul(&dp2, &d)

		var viaFormula, viaGeneric Fp12
		cyclotomicSquareRaw(&viaFormula, &d)
		viaGeneric.Square(&d)
		if !viaFormula.Equal(viaGeneric) {
			panic("bls12381: CyclotomicSquare formula disagrees with generic Square on a cyclotomic test vector")
		}
	})
}

func (z Fp) asFp2() Fp2 { return Fp2{C0: z} }
