package field

// Sqrt computes a square root of x mod p, choosing among the strategies
// spec.md section 4.B lists by the shape of p: the (p+1)/4 shortcut when
// p ≡ 3 (mod 4) (true for BLS12-381's Fp), falling back to Tonelli-Shanks
// otherwise (BLS12-381's Fr is 1 mod 4 and takes this branch). Returns
// (root, true) if x is a quadratic residue, else (undefined, false).
//
// Atkin's p ≡ 5 (mod 8) variant named in spec.md is not implemented
// separately: moduli that are not 3 mod 4 all go through Tonelli-Shanks.
func Sqrt(x *BigInt, mod *Modulus) (BigInt, bool) {
	if mod.Value[0]&3 == 3 {
		return sqrt3Mod4(x, mod)
	}
	return tonelliShanks(x, mod)
}

func sqrt3Mod4(x *BigInt, mod *Modulus) (BigInt, bool) {
	var root BigInt
	Pow(&root, x, &mod.PPlus1Div4, mod)
	var check BigInt
	MontSquare(&check, &root, mod)
	if !check.Equal(x) {
		return BigInt{}, false
	}
	return root, true
}

// IsSquare reports whether x is a quadratic residue mod p via Euler's
// criterion: x^((p-1)/2) == 1.
func IsSquare(x *BigInt, mod *Modulus) bool {
	if x.IsZero() {
		return true
	}
	var r BigInt
	Pow(&r, x, &mod.PMinus1Div2, mod)
	return r.Equal(&mod.ROne)
}

// tonelliShanks is the general square-root algorithm, used for any
// modulus not congruent to 3 mod 4. Not constant-time (loop bound depends
// on the 2-adic valuation of p-1, a public constant, but the inner
// search for a quadratic non-residue touches data in a value-dependent
// way) — acceptable since square roots in this module are only ever taken
// of public values (hash-to-curve map outputs, deserialization checks).
func tonelliShanks(x *BigInt, mod *Modulus) (BigInt, bool) {
	if !IsSquare(x, mod) {
		return BigInt{}, false
	}
	if x.IsZero() {
		return BigInt{}, true
	}

	// Factor p-1 = q * 2^s with q odd.
	var pMinus1 BigInt
	subSmall(&pMinus1, &mod.Value, 1)
	s := 0
	q := pMinus1
	for q[0]&1 == 0 {
		q = shiftRightN(&q, 1)
		s++
	}

	// Find a quadratic non-residue z.
	var z BigInt
	candidate := BigInt{2}
	for {
		if !IsSquare(&candidate, mod) {
			ToMontgomery(&z, &candidate, mod)
			break
		}
		var next BigInt
		addSmall(&next, &candidate, 1)
		candidate = next
	}

	var m int = s
	var c BigInt
	Pow(&c, &z, &q, mod) // z is already Montgomery-encoded input to Pow? Pow expects Montgomery-domain x.
	var t BigInt
	Pow(&t, x, &q, mod)
	var qPlus1Div2 BigInt
	addSmall(&qPlus1Div2, &q, 1)
	qPlus1Div2 = shiftRightN(&qPlus1Div2, 1)
	var r BigInt
	Pow(&r, x, &qPlus1Div2, mod)

	for {
		if t.Equal(&mod.ROne) {
			return r, true
		}
		// Find least i, 0 < i < m, such that t^(2^i) == 1.
		i := 0
		tt := t
		for !tt.Equal(&mod.ROne) {
			MontSquare(&tt, &tt, mod)
			i++
			if i == m {
				return BigInt{}, false
			}
		}
		// b = c^(2^(m-i-1))
		b := c
		for j := 0; j < m-i-1; j++ {
			MontSquare(&b, &b, mod)
		}
		m = i
		MontSquare(&c, &b, mod)
		MontMul(&t, &t, &c, mod)
		MontMul(&r, &r, &b, mod)
	}
}
