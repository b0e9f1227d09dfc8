package bls12381

// Fp12 is the quadratic extension Fp6[w]/(w^2 - v), elements c0 + c1*w
// with c0,c1 in Fp6. This is the pairing target group's underlying ring
// (spec.md section 4.C, component K: GT is the order-r subgroup of
// Fp12^*).
type Fp12 struct {
	C0, C1 Fp6
}

func Fp12Zero() Fp12 { return Fp12{} }
func Fp12One() Fp12  { return Fp12{C0: Fp6One()} }

func (z *Fp12) IsZero() bool { return z.C0.IsZero() && z.C1.IsZero() }

func (z Fp12) Equal(x Fp12) bool { return z.C0.Equal(x.C0) && z.C1.Equal(x.C1) }

func (z *Fp12) Add(x, y *Fp12) *Fp12 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

func (z *Fp12) Sub(x, y *Fp12) *Fp12 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

func (z *Fp12) Neg(x *Fp12) *Fp12 {
	z.C0.Neg(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

// Conjugate negates C1, i.e. raises to the p^6-th power (the unique
// nontrivial automorphism fixing Fp6): used for the final exponentiation's
// easy part and for cheap inversion on the norm-1 subgroup GT.
func (z *Fp12) Conjugate(x *Fp12) *Fp12 {
	z.C0 = x.C0
	z.C1.Neg(&x.C1)
	return z
}

// Mul computes (a0+a1 w)(b0+b1 w) = (a0 b0 + v a1 b1) + ((a0+a1)(b0+b1) -
// a0 b0 - a1 b1) w, the Karatsuba form over Fp6.
func (z *Fp12) Mul(x, y *Fp12) *Fp12 {
	var v0, v1 Fp6
	v0.Mul(&x.C0, &y.C0)
	v1.Mul(&x.C1, &y.C1)

	var sum0, sum1, t Fp6
	sum0.Add(&x.C0, &x.C1)
	sum1.Add(&y.C0, &y.C1)
	t.Mul(&sum0, &sum1)

	var c1 Fp6
	c1.Sub(&t, &v0)
	c1.Sub(&c1, &v1)

	var nrV1 Fp6
	nrV1.MulByNonResidue(&v1)
	var c0 Fp6
	c0.Add(&v0, &nrV1)

	z.C0, z.C1 = c0, c1
	return z
}

func (z *Fp12) Square(x *Fp12) *Fp12 {
	return z.Mul(x, x)
}

// Frobenius raises z to the p-th power via generic exponentiation (see
// pow.go) instead of the classical Frobenius coefficient tables.
func (z *Fp12) Frobenius(x *Fp12) *Fp12 {
	return powFp12(z, x, p12FrobeniusExp())
}

// FrobeniusSquare applies Frobenius twice (p^2-th power); used by the
// final exponentiation's easy part.
func (z *Fp12) FrobeniusSquare(x *Fp12) *Fp12 {
	var t Fp12
	t.Frobenius(x)
	return z.Frobenius(&t)
}

// Inv computes the multiplicative inverse via Fermat's little theorem,
// x^(p^12-2), using generic square-and-multiply rather than the classical
// norm-based Fp12 inversion formula (norm into Fp6, invert there, scale
// back) — slower, but avoids hand-deriving a second closed form with no
// test oracle.
func (z *Fp12) Inv(x *Fp12) *Fp12 {
	return powFp12(z, x, p12Minus2)
}

// Pow computes z = x^e for a public, non-secret exponent e (bit length
// capped to 64 bits, sufficient for the BLS parameter x used in the
// pairing's cyclotomic exponentiations).
func (z *Fp12) Pow(x *Fp12, e uint64) *Fp12 {
	result := Fp12One()
	base := *x
	for i := 63; i >= 0; i-- {
		result.Square(&result)
		if (e>>uint(i))&1 == 1 {
			result.Mul(&result, &base)
		}
	}
	*z = result
	return z
}

// MulBy014 multiplies x by a sparse Fp12 element of the form
// (c0 + c1*v) + (c4*v)*w, i.e. C0 = (c0,c1,0) and C1 = (0,c4,0). The
// naming follows the common "014"-sparse convention (nonzero components
// at tower indices 0,1,4 out of 6). The Miller loop's line evaluation
// uses its own mulLine instead of this helper.
func (z *Fp12) MulBy014(x *Fp12, c0, c1, c4 *Fp2) *Fp12 {
	var sparse Fp12
	sparse.C0.C0 = *c0
	sparse.C0.C1 = *c1
	sparse.C1.C1 = *c4
	return z.Mul(x, &sparse)
}
