package field

// WideInt is a double-precision (2*NLimbs-limb) accumulator. It holds a
// lazily-reduced intermediate result that may temporarily exceed p^2 by a
// small constant factor while several tower-field partial products are
// summed; spec.md section 3 calls this FpDbl and section 9 requires that
// it never implicitly convert back to a single-width Fp. Reduce is the
// only way out.
type WideInt [2 * NLimbs]Limb

// AddWide computes z = x+y over the full double width, dropping any carry
// out of the top limb (callers are responsible for keeping the lazily
// reduced accumulator within the small multiple of p^2 the tower layer
// documents — see the d < s*p^2 bound in Reduce's doc comment below).
func AddWide(z, x, y *WideInt) {
	var c Limb
	for i := range z {
		z[i], c = addc(x[i], y[i], c)
	}
}

// SubWide computes z = x-y over the full double width; like AddWide, it
// does not itself guard against underflow, which is the tower layer's
// responsibility (it only subtracts partial products it knows are smaller).
func SubWide(z, x, y *WideInt) {
	var b Limb
	for i := range z {
		z[i], b = subb(x[i], y[i], b)
	}
}

// MulWide computes the full 2*NLimbs-limb product z = x*y with no
// reduction, the building block for lazily-reduced tower-field
// multiplication (spec.md section 4.C).
func MulWide(z *WideInt, x, y *BigInt) {
	for i := range z {
		z[i] = 0
	}
	for i := 0; i < NLimbs; i++ {
		var carry Limb
		xi := x[i]
		for j := 0; j < NLimbs; j++ {
			hi, lo := mulw(xi, y[j])
			lo, c := addc(lo, z[i+j], 0)
			hi += c
			lo, c = addc(lo, carry, 0)
			hi += c
			z[i+j] = lo
			carry = hi
		}
		z[i+NLimbs] = carry
	}
}

// Reduce folds a double-width accumulator back to a single Montgomery-form
// Fp element by repeating the CIOS reduction step NLimbs times directly on
// the wide accumulator, exactly mirroring the reduction half of MontMul —
// this is the "redc2x" operation named in spec.md section 9. The caller
// must ensure d < s*p^2 for a small constant s (the lazy-reduction
// invariant); this routine handles s up to a few words of extra headroom
// via the trailing conditional subtraction loop.
func Reduce(z *BigInt, d *WideInt, mod *Modulus) {
	var t WideInt
	copy(t[:], d[:])
	for i := 0; i < NLimbs; i++ {
		m := t[i] * mod.NPrime
		var carry Limb
		for j := 0; j < NLimbs; j++ {
			hi, lo := mulw(m, mod.Value[j])
			lo, c := addc(lo, t[i+j], 0)
			hi += c
			lo, c = addc(lo, carry, 0)
			hi += c
			t[i+j] = lo
			carry = hi
		}
		// propagate carry into the remaining high limbs
		k := i + NLimbs
		for carry != 0 && k < len(t) {
			t[k], carry = addc(t[k], carry, 0)
			k++
		}
	}
	var out BigInt
	copy(out[:], t[NLimbs:2*NLimbs])
	// The result is now < a small multiple of p; repeatedly subtract p
	// while it's still >= p. Bounded to a handful of iterations by the
	// lazy-reduction invariant (s is small by construction in the tower
	// layer), so this is not a timing concern in practice even though it
	// is not formally constant-time — mirrors the Reduce step being an
	// internal tower-layer helper, never called directly on secret
	// exponents from the scalar-mul layer.
	for out.Cmp(&mod.Value) >= 0 {
		var next BigInt
		subRaw(&next, &out, &mod.Value)
		out = next
	}
	*z = out
}
