package bls12381

// Fp2 is the quadratic extension F_p[u]/(u^2+1): elements are c0 + c1*u.
// Multiplication uses the 3-multiplication Karatsuba form named in
// spec.md section 4.C rather than the schoolbook 4-multiplication one;
// squaring uses the complex-squaring identity (a special case of
// Chung-Hasan SQR2 for a quadratic tower).
//
// Grounded on bls12381_fp2.go's blsFp2Mul/blsFp2Sqr, translated from
// math/big arithmetic to Montgomery Fp.
type Fp2 struct {
	C0, C1 Fp
}

func Fp2Zero() Fp2 { return Fp2{} }
func Fp2One() Fp2  { return Fp2{C0: FpOne()} }

func (z *Fp2) IsZero() bool { return z.C0.IsZero() && z.C1.IsZero() }

func (z Fp2) Equal(x Fp2) bool { return z.C0.Equal(x.C0) && z.C1.Equal(x.C1) }

func (z *Fp2) Add(x, y *Fp2) *Fp2 {
	z.C0.Add(&x.C0, &y.C0)
	z.C1.Add(&x.C1, &y.C1)
	return z
}

func (z *Fp2) Sub(x, y *Fp2) *Fp2 {
	z.C0.Sub(&x.C0, &y.C0)
	z.C1.Sub(&x.C1, &y.C1)
	return z
}

func (z *Fp2) Neg(x *Fp2) *Fp2 {
	z.C0.Neg(&x.C0)
	z.C1.Neg(&x.C1)
	return z
}

func (z *Fp2) Double(x *Fp2) *Fp2 {
	return z.Add(x, x)
}

// Mul computes (a0+a1 u)(b0+b1 u) = (a0 b0 - a1 b1) + ((a0+a1)(b0+b1) - a0 b0 - a1 b1) u,
// the Karatsuba form: 3 Fp multiplications instead of 4.
func (z *Fp2) Mul(x, y *Fp2) *Fp2 {
	var v0, v1, sum0, sum1, t Fp
	v0.Mul(&x.C0, &y.C0)
	v1.Mul(&x.C1, &y.C1)
	sum0.Add(&x.C0, &x.C1)
	sum1.Add(&y.C0, &y.C1)
	t.Mul(&sum0, &sum1)
	var c1 Fp
	c1.Sub(&t, &v0)
	c1.Sub(&c1, &v1)
	var c0 Fp
	c0.Sub(&v0, &v1)
	z.C0, z.C1 = c0, c1
	return z
}

// Square computes (a0+a1 u)^2 = (a0+a1)(a0-a1) + 2 a0 a1 u.
func (z *Fp2) Square(x *Fp2) *Fp2 {
	var sum, diff, ab Fp
	sum.Add(&x.C0, &x.C1)
	diff.Sub(&x.C0, &x.C1)
	ab.Mul(&x.C0, &x.C1)
	var c0, c1 Fp
	c0.Mul(&sum, &diff)
	c1.Double(&ab)
	z.C0, z.C1 = c0, c1
	return z
}

// MulByNonResidue multiplies by the Fp6 non-residue (1+u) wherever a
// caller in the Fp6 layer needs it; kept here since it operates purely on
// Fp2 values.
func (z *Fp2) MulByNonResidue(x *Fp2) *Fp2 {
	// (a0+a1 u)(1+u) = (a0 - a1) + (a0 + a1) u
	var c0, c1 Fp
	c0.Sub(&x.C0, &x.C1)
	c1.Add(&x.C0, &x.C1)
	z.C0, z.C1 = c0, c1
	return z
}

// MulByFp multiplies an Fp2 element by an Fp scalar componentwise.
func (z *Fp2) MulByFp(x *Fp2, c *Fp) *Fp2 {
	z.C0.Mul(&x.C0, c)
	z.C1.Mul(&x.C1, c)
	return z
}

// Conjugate computes the Fp-Frobenius conjugate (a0+a1 u) -> (a0-a1 u),
// i.e. raising to the p-th power (since u^p = -u for p ≡ 3 mod 4).
func (z *Fp2) Conjugate(x *Fp2) *Fp2 {
	z.C0 = x.C0
	z.C1.Neg(&x.C1)
	return z
}

// Inv computes the multiplicative inverse via the norm: (a0+a1 u)^-1 =
// (a0-a1 u)/(a0^2+a1^2).
func (z *Fp2) Inv(x *Fp2) *Fp2 {
	var a0sq, a1sq, norm, normInv Fp
	a0sq.Square(&x.C0)
	a1sq.Square(&x.C1)
	norm.Add(&a0sq, &a1sq)
	normInv.Inv(&norm)
	var c0, c1, negA1 Fp
	c0.Mul(&x.C0, &normInv)
	negA1.Neg(&x.C1)
	c1.Mul(&negA1, &normInv)
	z.C0, z.C1 = c0, c1
	return z
}

// CMov sets z = x if flag is true, else z = y.
func (z *Fp2) CMov(x, y *Fp2, flag bool) *Fp2 {
	z.C0.CMov(&x.C0, &y.C0, flag)
	z.C1.CMov(&x.C1, &y.C1, flag)
	return z
}
