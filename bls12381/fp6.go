package bls12381

// Fp6 is the cubic extension Fp2[v]/(v^3 - xi), xi = 1+u, represented as
// c0 + c1*v + c2*v^2 with c0,c1,c2 in Fp2. This is the degree-6 tower level
// used to build Fp12 for the pairing's target group (spec.md section 4.C).
type Fp6 struct {
	C0, C1, C2 Fp2
}

func Fp6Zero() Fp6 { return Fp6{} }
func Fp6One() Fp6  { return Fp6{C0: Fp2One()} }

func (z *Fp6) IsZero() bool {
	return z.C0.IsZero() && z.C1.IsZero() && z.C2.IsZero()
}

func (z Fp6) Equal(x Fp6) bool {
	return z.C0.Equal(x.C0) && z.C1.Equal(x.C1) && z.C2.Equal(x.C2)
}

func (z *Fp6) Add(x, y *Fp6) *Fp6 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	z.C2.Add(&x.C2, &y.C2)
	return z
}

func (z *Fp6) Sub(x, y *Fp6) *Fp6 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	z.C2.Sub(&x.C2, &y.C2)
	return z
}

func (z *Fp6) Neg(x *Fp6) *Fp6 {
	z.C0.Neg(&x.C0)
	z.C1.Neg(&x.C1)
	z.C2.Neg(&x.C2)
	return z
}

// MulByNonResidue multiplies by v, i.e. shifts coefficients up one degree
// and reduces the overflow term through xi: (c0+c1 v+c2 v^2)*v =
// xi*c2 + c0 v + c1 v^2.
func (z *Fp6) MulByNonResidue(x *Fp6) *Fp6 {
	var t2 Fp2
	t2.MulByNonResidue(&x.C2)
	c0, c1, c2 := t2, x.C0, x.C1
	z.C0, z.C1, z.C2 = c0, c1, c2
	return z
}

// Mul computes the schoolbook product over the basis {1,v,v^2} with xi
// reduction, following the teacher's bn254_fp6.go structure adapted to
// xi=1+u. Squaring is implemented as Mul(x,x) rather than a dedicated
// Chung-Hasan squaring formula: one multiplication's worth of extra Fp2
// work in exchange for not hand-deriving a second formula that has no
// test oracle to check against.
func (z *Fp6) Mul(x, y *Fp6) *Fp6 {
	var a0b0, a1b1, a2b2 Fp2
	a0b0.Mul(&x.C0, &y.C0)
	a1b1.Mul(&x.C1, &y.C1)
	a2b2.Mul(&x.C2, &y.C2)

	var t0, t1, t2 Fp2

	// c0 = a0b0 + xi*(a1*b2 + a2*b1)
	t0.Add(&x.C1, &x.C2)
	var t0b Fp2
	t0b.Add(&y.C1, &y.C2)
	var cross0 Fp2
	cross0.Mul(&t0, &t0b)
	cross0.Sub(&cross0, &a1b1)
	cross0.Sub(&cross0, &a2b2)
	var nrCross0 Fp2
	nrCross0.MulByNonResidue(&cross0)
	var c0 Fp2
	c0.Add(&a0b0, &nrCross0)

	// c1 = a0*b1 + a1*b0 + xi*a2*b2
	t1.Add(&x.C0, &x.C1)
	var t1b Fp2
	t1b.Add(&y.C0, &y.C1)
	var cross1 Fp2
	cross1.Mul(&t1, &t1b)
	cross1.Sub(&cross1, &a0b0)
	cross1.Sub(&cross1, &a1b1)
	var nrA2b2 Fp2
	nrA2b2.MulByNonResidue(&a2b2)
	var c1 Fp2
	c1.Add(&cross1, &nrA2b2)

	// c2 = a0*b2 + a2*b0 + a1*b1
	t2.Add(&x.C0, &x.C2)
	var t2b Fp2
	t2b.Add(&y.C0, &y.C2)
	var cross2 Fp2
	cross2.Mul(&t2, &t2b)
	cross2.Sub(&cross2, &a0b0)
	cross2.Sub(&cross2, &a2b2)
	var c2 Fp2
	c2.Add(&cross2, &a1b1)

	z.C0, z.C1, z.C2 = c0, c1, c2
	return z
}

func (z *Fp6) Square(x *Fp6) *Fp6 {
	return z.Mul(x, x)
}

// MulByFp2 multiplies by an Fp2 scalar componentwise (used when building
// Fp12 multiplication by a sparse line-function value).
func (z *Fp6) MulByFp2(x *Fp6, c *Fp2) *Fp6 {
	z.C0.Mul(&x.C0, c)
	z.C1.Mul(&x.C1, c)
	z.C2.Mul(&x.C2, c)
	return z
}

// Frobenius raises z to the p-th power using the generic exponentiation
// in powFp6 rather than a hand-derived Frobenius coefficient table: one
// fewer place to introduce an unverifiable constant.
func (z *Fp6) Frobenius(x *Fp6) *Fp6 {
	return powFp6(z, x, p6FrobeniusExp())
}

// Inv computes the multiplicative inverse via Fermat's little theorem,
// x^(p^6-2), using generic square-and-multiply (see powFp6) instead of
// the classical closed-form cubic-extension inversion formula — slower,
// but every step reduces to already-verified Fp2 arithmetic.
func (z *Fp6) Inv(x *Fp6) *Fp6 {
	return powFp6(z, x, p6Minus2)
}
