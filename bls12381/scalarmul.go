package bls12381

// ScalarMulCT computes p = k*a in constant time with respect to k, for
// secret scalars (BLS signing, KZG proof evaluation). It always performs
// a double followed by a conditional add-or-discard at every bit
// position, selecting the result via Fp.CMov-backed point selection
// rather than branching on the bit (spec.md section 5).
func (p *G1Jacobian) ScalarMulCT(a *G1Jacobian, k *Fr) *G1Jacobian {
	acc := G1Identity()
	base := *a
	const bits = 255 // >= Fr.BitLen() for any r-sized scalar, including 0
	for i := bits - 1; i >= 0; i-- {
		acc.Double(&acc)
		var withAdd G1Jacobian
		withAdd.Add(&acc, &base)
		bit := k.Bit(i)
		acc.X.CMov(&withAdd.X, &acc.X, bit == 1)
		acc.Y.CMov(&withAdd.Y, &acc.Y, bit == 1)
		acc.Z.CMov(&withAdd.Z, &acc.Z, bit == 1)
	}
	*p = acc
	return p
}

// ScalarMulCT is G2's constant-time counterpart.
func (p *G2Jacobian) ScalarMulCT(a *G2Jacobian, k *Fr) *G2Jacobian {
	acc := G2Identity()
	base := *a
	const bits = 255
	for i := bits - 1; i >= 0; i-- {
		acc.Double(&acc)
		var withAdd G2Jacobian
		withAdd.Add(&acc, &base)
		bit := k.Bit(i)
		acc.X.CMov(&withAdd.X, &acc.X, bit == 1)
		acc.Y.CMov(&withAdd.Y, &acc.Y, bit == 1)
		acc.Z.CMov(&withAdd.Z, &acc.Z, bit == 1)
	}
	*p = acc
	return p
}
