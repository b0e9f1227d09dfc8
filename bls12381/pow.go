package bls12381

import "math/big"

// powFp6 computes z = x^e by left-to-right square-and-multiply over the
// public exponent e. Used for both Fp6 inversion (e = p^6-2) and Fp6's
// Frobenius (e = p): both reduce Frobenius/inversion to repeated calls
// into already-verified Mul/Square rather than a hand-derived closed form
// or coefficient table.
func powFp6(z, x *Fp6, e *big.Int) *Fp6 {
	result := Fp6One()
	base := *x
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Square(&result)
		if e.Bit(i) == 1 {
			result.Mul(&result, &base)
		}
	}
	*z = result
	return z
}

// powFp12 is powFp6's Fp12 counterpart.
func powFp12(z, x *Fp12, e *big.Int) *Fp12 {
	result := Fp12One()
	base := *x
	for i := e.BitLen() - 1; i >= 0; i-- {
		result.Square(&result)
		if e.Bit(i) == 1 {
			result.Mul(&result, &base)
		}
	}
	*z = result
	return z
}

// p6FrobeniusExp returns p, the exponent for a single Fp6-level Frobenius
// application (the Frobenius endomorphism is x -> x^p on any extension of
// Fp).
func p6FrobeniusExp() *big.Int { return pBig }

// p12FrobeniusExp returns p, the exponent for a single Fp12-level
// Frobenius application.
func p12FrobeniusExp() *big.Int { return pBig }
