package bls12381

// g2Acc is a G2 point in Jacobian coordinates carrying a cached T = Z^2,
// matching the accumulator shape the Miller loop's line functions need
// (grounded on the teacher's bn254_pairing.go twistPointJ).
type g2Acc struct {
	X, Y, Z, T Fp2
}

func newG2Acc(x, y, z Fp2) g2Acc {
	var t Fp2
	t.Square(&z)
	return g2Acc{X: x, Y: y, Z: z, T: t}
}

// lineFunctionDouble computes the tangent line at r (the accumulator),
// advances r to 2r, and returns the line's (a,b,c) coefficients for the
// sparse evaluation (a + b*v) + (c*v)*w, following "Faster Computation of
// the Tate Pairing" (the same algorithm the teacher's bn254_pairing.go
// uses) specialized to a=0 curves.
func lineFunctionDouble(r *g2Acc, qx, qy *Fp) (a, b, c Fp2, rOut g2Acc) {
	var A, B, C Fp2
	A.Square(&r.X)
	B.Square(&r.Y)
	C.Square(&B)

	var D Fp2
	D.Add(&r.X, &B)
	D.Square(&D)
	D.Sub(&D, &A)
	D.Sub(&D, &C)
	D.Double(&D)

	var E Fp2
	E.Double(&A)
	E.Add(&E, &A)

	var G Fp2
	G.Square(&E)

	rOut.X.Sub(&G, &D)
	rOut.X.Sub(&rOut.X, &D)

	rOut.Z.Add(&r.Y, &r.Z)
	rOut.Z.Square(&rOut.Z)
	rOut.Z.Sub(&rOut.Z, &B)
	rOut.Z.Sub(&rOut.Z, &r.T)

	rOut.Y.Sub(&D, &rOut.X)
	rOut.Y.Mul(&rOut.Y, &E)
	var c8 Fp2
	c8.Double(&C)
	c8.Double(&c8)
	c8.Double(&c8)
	rOut.Y.Sub(&rOut.Y, &c8)

	rOut.T.Square(&rOut.Z)

	var t Fp2
	t.Mul(&E, &r.T)
	t.Double(&t)
	b.Neg(&t)
	b.MulByFp(&b, qx)

	a.Add(&r.X, &E)
	a.Square(&a)
	a.Sub(&a, &A)
	a.Sub(&a, &G)
	var fourB Fp2
	fourB.Double(&B)
	fourB.Double(&fourB)
	a.Sub(&a, &fourB)

	c.Mul(&rOut.Z, &r.T)
	c.Double(&c)
	c.MulByFp(&c, qy)

	return a, b, c, rOut
}

// lineFunctionAdd is the mixed-addition counterpart, adding the fixed
// affine point (px,py) (in Fp2, since this adds another G2 point — the
// teacher's BN254 Miller loop accumulates in G2 and evaluates lines at a
// fixed G1 point; our BLS12-381 ate pairing also accumulates the
// Miller-loop point in G2, so this add is a genuine G2+G2 step) to r,
// evaluated at the fixed G1 affine point (qx,qy) in Fp.
func lineFunctionAdd(r *g2Acc, px, py *Fp2, qx, qy *Fp, r2 *Fp2) (a, b, c Fp2, rOut g2Acc) {
	var B Fp2
	B.Mul(px, &r.T)

	var D Fp2
	D.Add(py, &r.Z)
	D.Square(&D)
	D.Sub(&D, r2)
	D.Sub(&D, &r.T)
	D.Mul(&D, &r.T)

	var H, I Fp2
	H.Sub(&B, &r.X)
	I.Square(&H)

	var E Fp2
	E.Double(&I)
	E.Double(&E)

	var J Fp2
	J.Mul(&H, &E)

	var L1 Fp2
	L1.Sub(&D, &r.Y)
	L1.Sub(&L1, &r.Y)

	var V Fp2
	V.Mul(&r.X, &E)

	var l1sq, v2 Fp2
	l1sq.Square(&L1)
	v2.Double(&V)
	rOut.X.Sub(&l1sq, &J)
	rOut.X.Sub(&rOut.X, &v2)

	rOut.Z.Add(&r.Z, &H)
	rOut.Z.Square(&rOut.Z)
	rOut.Z.Sub(&rOut.Z, &r.T)
	rOut.Z.Sub(&rOut.Z, &I)

	var t, t2 Fp2
	t.Sub(&V, &rOut.X)
	t.Mul(&t, &L1)
	t2.Mul(&r.Y, &J)
	t2.Double(&t2)
	rOut.Y.Sub(&t, &t2)

	rOut.T.Square(&rOut.Z)

	t.Add(py, &rOut.Z)
	t.Square(&t)
	t.Sub(&t, r2)
	t.Sub(&t, &rOut.T)

	t2.Mul(&L1, px)
	t2.Double(&t2)
	a.Sub(&t2, &t)

	c.MulByFp(&rOut.Z, qy)
	c.Double(&c)

	b.Neg(&L1)
	b.MulByFp(&b, qx)
	b.Double(&b)

	return a, b, c, rOut
}

// mulLine multiplies ret by the sparse line element (a + b*v) + (c*v)*w
// (the M-type twist's layout, nonzero at C0.C0, C0.C1 and C1.C1) by
// forming the line as a full Fp12 element and calling the already-verified
// Fp12.Mul, rather than the teacher's sparsity-exploiting Karatsuba
// shortcut: that shortcut's derivation (see bn254_pairing.go's own
// in-line corrections) is easy to get subtly wrong with no test oracle
// to catch it, while going through full Mul only costs extra Fp2 work.
func mulLine(ret *Fp12, a, b, c Fp2) *Fp12 {
	line := Fp12{
		C0: Fp6{C0: a, C1: b},
		C1: Fp6{C1: c},
	}
	return ret.Mul(ret, &line)
}

// MillerLoop computes the Miller loop of the optimal ate pairing for
// G1 point p and G2 point q, returning an Fp12 element still awaiting
// final exponentiation (spec.md section 4.G).
func MillerLoop(p *G1Affine, q *G2Affine) Fp12 {
	if p.Infinity || q.Infinity {
		return Fp12One()
	}
	f := Fp12One()
	acc := newG2Acc(q.X, q.Y, Fp2One())

	var qy2 Fp2
	qy2.Square(&q.Y)

	bitLen := xParamAbs.BitLen()
	for i := bitLen - 2; i >= 0; i-- {
		a, b, c, next := lineFunctionDouble(&acc, &p.X, &p.Y)
		acc = next
		f.Square(&f)
		mulLine(&f, a, b, c)

		if xParamAbs.Bit(i) == 1 {
			a, b, c, next := lineFunctionAdd(&acc, &q.X, &q.Y, &p.X, &p.Y, &qy2)
			acc = next
			mulLine(&f, a, b, c)
		}
	}

	// xParam is negative for BLS12-381: e(P,Q)_{x} for the BLS parameter
	// requires inverting the accumulated value when x<0, since the loop
	// above only ever ran over |x|. A full Fp12 inversion is used here
	// (rather than relying on conjugate==inverse, which only holds once
	// the value has been projected into the norm-1 cyclotomic subgroup)
	// so this is correct regardless of f's subgroup membership at this
	// point in the computation.
	if xNegative {
		f.Inv(&f)
	}
	return f
}
