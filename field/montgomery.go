package field

// Modulus bundles a compile-time-fixed prime with its Montgomery
// constants. Each curve package declares exactly one Modulus per field
// (its Fp, its Fr, ...) as a package-level var computed once in an init
// function, and every Element method for that field closes over a
// pointer to it — the modulus is never threaded through call sites as a
// run-time argument to hot-path arithmetic, matching the "never dispatch
// on curve at run time" discipline of spec.md section 9.
type Modulus struct {
	// Value is the prime p itself, little-endian limbs.
	Value BigInt
	// NPrime is -p^-1 mod 2^64, the CIOS reduction constant.
	NPrime Limb
	// R2 is R^2 mod p, R = 2^(NLimbs*64), used to enter Montgomery form.
	R2 BigInt
	// ROne is R mod p, i.e. the Montgomery representation of 1.
	ROne BigInt
	// BitLen is p.BitLen(), cached.
	BitLen int
	// PMinus2 is p-2, the Fermat inversion exponent (plain, non-Montgomery).
	PMinus2 BigInt
	// PPlus1Div4 is (p+1)/4, valid only when p ≡ 3 (mod 4); used by Sqrt.
	PPlus1Div4 BigInt
	// PMinus1Div2 is (p-1)/2, the Euler's-criterion exponent used by IsSquare.
	PMinus1Div2 BigInt
}

// NewModulus derives every Montgomery constant for p from its raw
// big-endian byte representation. Called once per field, at package init.
func NewModulus(pBytes []byte) *Modulus {
	m := &Modulus{}
	m.Value.SetBytesBE(pBytes)
	m.BitLen = m.Value.BitLen()
	m.NPrime = negModInverseWord(m.Value[0])

	// R mod p and R^2 mod p are obtained by repeated doubling starting
	// from 1, rather than by a general-purpose big-integer division —
	// this file has no reduce-by-arbitrary-modulus primitive, only the
	// Montgomery ladder itself, so we bootstrap with doubling-and-conditional-subtract.
	one := BigInt{1}
	r := one
	for i := 0; i < NLimbs*BitsPerLimb; i++ {
		addModRaw(&r, &r, &r, &m.Value)
	}
	m.ROne = r
	r2 := r
	for i := 0; i < NLimbs*BitsPerLimb; i++ {
		addModRaw(&r2, &r2, &r2, &m.Value)
	}
	m.R2 = r2

	subSmall(&m.PMinus2, &m.Value, 2)
	var pPlus1 BigInt
	addSmall(&pPlus1, &m.Value, 1)
	m.PPlus1Div4 = shiftRightN(&pPlus1, 2)
	var pMinus1 BigInt
	subSmall(&pMinus1, &m.Value, 1)
	m.PMinus1Div2 = shiftRightN(&pMinus1, 1)
	return m
}

// subSmall computes z = x - s for a small constant s < 2^64, assuming x >= s.
func subSmall(z, x *BigInt, s Limb) {
	small := BigInt{s}
	subRaw(z, x, &small)
}

// addSmall computes z = x + s for a small constant s < 2^64.
func addSmall(z, x *BigInt, s Limb) {
	small := BigInt{s}
	addRaw(z, x, &small)
}

// shiftRightN computes x >> n for small n (n < 64), as a plain integer
// shift (not modular).
func shiftRightN(x *BigInt, n uint) BigInt {
	var out BigInt
	for i := 0; i < NLimbs; i++ {
		out[i] = x[i] >> n
		if i+1 < NLimbs {
			out[i] |= x[i+1] << (64 - n)
		}
	}
	return out
}

// negModInverseWord computes -p0^-1 mod 2^64 via Newton-Raphson (Dumas'
// iteration, doubling the number of correct bits each step): for odd p0,
// x_{i+1} = x_i * (2 - p0*x_i) converges to p0^-1 mod 2^64 in 6 steps.
func negModInverseWord(p0 Limb) Limb {
	x := p0 // correct mod 2^3 already since p0 is odd
	for i := 0; i < 6; i++ {
		x = x * (2 - p0*x)
	}
	return -x
}

// addModRaw computes z = (x+y) mod p for x,y < p, using one conditional
// subtraction after a full-width add.
func addModRaw(z, x, y, p *BigInt) {
	var t BigInt
	carry := addRaw(&t, x, y)
	condSub(&t, p, carry)
	*z = t
}

// condSub subtracts p from z if z >= p (detected either by an incoming
// carry from a wider add, or by comparison), constant-time in the common
// case where carry already disambiguates it.
func condSub(z, p *BigInt, carry Limb) {
	var t BigInt
	borrow := subRaw(&t, z, p)
	// keep the subtracted value when either the pre-existing carry was
	// set (z was actually >= 2^(NLimbs*64), so z-p is the right residue)
	// or the subtraction did not borrow (z >= p without the extra carry).
	take := carry | (1 - borrow)
	cmov(z, &t, take)
}

// Add computes z = (x+y) mod p.
func Add(z, x, y *BigInt, mod *Modulus) {
	var t BigInt
	carry := addRaw(&t, x, y)
	condSub(&t, &mod.Value, carry)
	*z = t
}

// Sub computes z = (x-y) mod p.
func Sub(z, x, y *BigInt, mod *Modulus) {
	var t BigInt
	borrow := subRaw(&t, x, y)
	var added BigInt
	addRaw(&added, &t, &mod.Value)
	cmov(&t, &added, borrow)
	*z = t
}

// Neg computes z = (-x) mod p.
func Neg(z, x *BigInt, mod *Modulus) {
	if x.IsZero() {
		*z = BigInt{}
		return
	}
	var t BigInt
	subRaw(&t, &mod.Value, x)
	*z = t
}

// MontMul computes z = x*y*R^-1 mod p using coarsely-integrated operand
// scanning (CIOS): for each limb of y, multiply-accumulate across x into
// a running accumulator, then fold in one Montgomery reduction step keyed
// by mod.NPrime, per spec.md section 4.B. The accumulator carries two
// limbs of headroom above the result width (t[NLimbs] and t[NLimbs+1])
// so that the multiply-accumulate and reduction carry chains never lose
// a bit; both are reset to (small-value, 0) by the per-iteration shift.
func MontMul(z, x, y *BigInt, mod *Modulus) {
	var t [NLimbs + 2]Limb
	for i := 0; i < NLimbs; i++ {
		// Multiply-accumulate: t += x * y[i].
		yi := y[i]
		var carry Limb
		for j := 0; j < NLimbs; j++ {
			hi, lo := mulw(x[j], yi)
			lo, c := addc(lo, t[j], 0)
			hi += c
			lo, c = addc(lo, carry, 0)
			hi += c
			t[j] = lo
			carry = hi
		}
		sum, c := addc(t[NLimbs], carry, 0)
		t[NLimbs] = sum
		t[NLimbs+1] += c

		// Reduction: choose m so that t[0]+m*p[0] == 0 mod 2^64, then
		// t += m*p (which is now a multiple of 2^64 in its low limb).
		m := t[0] * mod.NPrime
		var carry2 Limb
		for j := 0; j < NLimbs; j++ {
			hi, lo := mulw(m, mod.Value[j])
			lo, c := addc(lo, t[j], 0)
			hi += c
			lo, c = addc(lo, carry2, 0)
			hi += c
			t[j] = lo
			carry2 = hi
		}
		sum2, c2 := addc(t[NLimbs], carry2, 0)
		t[NLimbs] = sum2
		t[NLimbs+1] += c2

		// Shift the accumulator right by one limb (t[0] is now 0 and
		// dropped); t[NLimbs+1] resets to 0 for the next iteration.
		for j := 0; j < NLimbs; j++ {
			t[j] = t[j+1]
		}
		t[NLimbs] = t[NLimbs+1]
		t[NLimbs+1] = 0
	}
	var out BigInt
	copy(out[:], t[:NLimbs])
	condSub(&out, &mod.Value, t[NLimbs])
	*z = out
}

// MontSquare computes z = x*x*R^-1 mod p. Exploits no special symmetry
// over MontMul in this implementation (the Comba-diagonal speedup noted
// in spec.md section 4.B is a ~30% constant-factor win, not a correctness
// concern) — kept as a thin alias so call sites read like the spec's
// square(a) entry point and a future optimization has a single seam.
func MontSquare(z, x *BigInt, mod *Modulus) {
	MontMul(z, x, x, mod)
}

// ToMontgomery computes z = x*R mod p, i.e. enters Montgomery form.
func ToMontgomery(z, x *BigInt, mod *Modulus) {
	MontMul(z, x, &mod.R2, mod)
}

// FromMontgomery computes z = x*R^-1 mod p, i.e. leaves Montgomery form.
func FromMontgomery(z, x *BigInt, mod *Modulus) {
	one := BigInt{1}
	MontMul(z, x, &one, mod)
}
