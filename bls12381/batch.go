package bls12381

// BatchInvertFp inverts every element of xs in place using Montgomery's
// trick: one accumulated product, one inversion, then an unwind pass —
// turning n inversions into 1 inversion and 3n multiplications. Used by
// AffineBatchG1 (spec.md section 4.D/E); MSMG1 keeps its buckets in
// Jacobian form and does not call it.
func BatchInvertFp(xs []Fp) {
	n := len(xs)
	if n == 0 {
		return
	}
	prefix := make([]Fp, n)
	acc := FpOne()
	for i, x := range xs {
		prefix[i] = acc
		acc.Mul(&acc, &x)
	}
	var accInv Fp
	accInv.Inv(&acc)
	for i := n - 1; i >= 0; i-- {
		var xInv Fp
		xInv.Mul(&accInv, &prefix[i])
		accInv.Mul(&accInv, &xs[i])
		xs[i] = xInv
	}
}

// AffineBatchG1 converts many Jacobian G1 points to affine using a single
// batched inversion rather than one inversion per point.
func AffineBatchG1(pts []G1Jacobian) []G1Affine {
	out := make([]G1Affine, len(pts))
	zs := make([]Fp, len(pts))
	for i := range pts {
		if pts[i].IsIdentity() {
			zs[i] = FpOne()
		} else {
			zs[i] = pts[i].Z
		}
	}
	BatchInvertFp(zs)
	for i := range pts {
		if pts[i].IsIdentity() {
			out[i] = G1Affine{Infinity: true}
			continue
		}
		var zInv2, zInv3 Fp
		zInv2.Square(&zs[i])
		zInv3.Mul(&zInv2, &zs[i])
		var x, y Fp
		x.Mul(&pts[i].X, &zInv2)
		y.Mul(&pts[i].Y, &zInv3)
		out[i] = G1Affine{X: x, Y: y}
	}
	return out
}
