package bls12381

import (
	"github.com/eth2030/curvecore/errs"
	"github.com/eth2030/curvecore/field"
)

// Compressed point encodings per the zcash/IETF BLS12-381 serialization
// convention (the same convention the teacher's bls_aggregate.go
// SerializeG1/DeserializeG1 use): the top 3 bits of the first byte carry
// flags, the remaining 381/377 bits carry the x-coordinate.
const (
	compressedFlag  = 0x80
	infinityFlag    = 0x40
	ySignFlag       = 0x20
)

// CompressG1 encodes a into the 48-byte compressed form.
func CompressG1(a *G1Affine) [48]byte {
	var out [48]byte
	if a.Infinity {
		out[0] = compressedFlag | infinityFlag
		return out
	}
	xb := a.X.BytesBE()
	copy(out[:], xb[:])
	out[0] |= compressedFlag
	if ySign(a.Y.ToBigInt()) {
		out[0] |= ySignFlag
	}
	return out
}

// DecompressG1 decodes a 48-byte compressed G1 point. It does not check
// subgroup membership; callers needing a guaranteed-in-subgroup point
// must call InSubgroup themselves (spec.md section 6/7, Subgroup error
// kind is the caller's responsibility to raise).
func DecompressG1(b []byte) (G1Affine, bool) {
	if len(b) != 48 {
		return G1Affine{}, false
	}
	flags := b[0] & 0xe0
	if flags&compressedFlag == 0 {
		return G1Affine{}, false
	}
	if flags&infinityFlag != 0 {
		return G1Affine{Infinity: true}, true
	}
	var xBytes [48]byte
	copy(xBytes[:], b)
	xBytes[0] &^= 0xe0
	x, ok := FpFromBytesBE(xBytes[:])
	if !ok {
		return G1Affine{}, false
	}
	var x2, x3, rhs Fp
	x2.Square(&x)
	x3.Mul(&x2, &x)
	rhs.Add(&x3, &bG1)
	y, ok := rhs.Sqrt()
	if !ok {
		return G1Affine{}, false
	}
	wantSign := flags&ySignFlag != 0
	if ySign(y.ToBigInt()) != wantSign {
		y.Neg(&y)
	}
	return G1Affine{X: x, Y: y}, true
}

// DeserializeG1 decodes a 48-byte compressed G1 point at the API
// boundary (spec.md section 7): a malformed, off-curve, or non-canonical
// encoding is tagged errs.Codec; an on-curve point outside the r-order
// subgroup is tagged errs.Subgroup. DecompressG1 itself performs only
// the cheaper on-curve check, since internal arithmetic paths (spec.md
// section 7: "internal arithmetic paths assume validated inputs") often
// already know their inputs are subgroup-checked and shouldn't pay for
// a redundant InSubgroup call.
func DeserializeG1(b []byte) (G1Affine, error) {
	a, ok := DecompressG1(b)
	if !ok {
		return G1Affine{}, errs.New(errs.Codec, "DeserializeG1", nil)
	}
	if a.Infinity {
		return a, nil
	}
	var j G1Jacobian
	j.FromAffine(&a)
	if !j.InSubgroup() {
		return G1Affine{}, errs.New(errs.Subgroup, "DeserializeG1", nil)
	}
	return a, nil
}

// DeserializeG2 is DeserializeG1's G2 counterpart.
func DeserializeG2(b []byte) (G2Affine, error) {
	a, ok := DecompressG2(b)
	if !ok {
		return G2Affine{}, errs.New(errs.Codec, "DeserializeG2", nil)
	}
	if a.Infinity {
		return a, nil
	}
	var j G2Jacobian
	j.FromAffine(&a)
	if !j.InSubgroup() {
		return G2Affine{}, errs.New(errs.Subgroup, "DeserializeG2", nil)
	}
	return a, nil
}

// CompressG2 encodes a into the 96-byte compressed form (C1 || C0 order,
// matching the IETF draft's convention of placing the higher-degree
// coefficient first).
func CompressG2(a *G2Affine) [96]byte {
	var out [96]byte
	if a.Infinity {
		out[0] = compressedFlag | infinityFlag
		return out
	}
	c1 := a.X.C1.BytesBE()
	c0 := a.X.C0.BytesBE()
	copy(out[:48], c1[:])
	copy(out[48:], c0[:])
	out[0] |= compressedFlag
	if ySign(a.Y.C0.ToBigInt()) {
		out[0] |= ySignFlag
	}
	return out
}

// DecompressG2 decodes a 96-byte compressed G2 point.
func DecompressG2(b []byte) (G2Affine, bool) {
	if len(b) != 96 {
		return G2Affine{}, false
	}
	flags := b[0] & 0xe0
	if flags&compressedFlag == 0 {
		return G2Affine{}, false
	}
	if flags&infinityFlag != 0 {
		return G2Affine{Infinity: true}, true
	}
	var c1Bytes [48]byte
	copy(c1Bytes[:], b[:48])
	c1Bytes[0] &^= 0xe0
	c1, ok := FpFromBytesBE(c1Bytes[:])
	if !ok {
		return G2Affine{}, false
	}
	c0, ok := FpFromBytesBE(b[48:])
	if !ok {
		return G2Affine{}, false
	}
	x := Fp2{C0: c0, C1: c1}
	var x2, x3, rhs Fp2
	x2.Square(&x)
	x3.Mul(&x2, &x)
	rhs.Add(&x3, &bG2)
	y, ok := sqrtFp2(&rhs)
	if !ok {
		return G2Affine{}, false
	}
	wantSign := flags&ySignFlag != 0
	if ySign(y.C0.ToBigInt()) != wantSign {
		y.Neg(&y)
	}
	return G2Affine{X: x, Y: y}, true
}

func ySign(v field.BigInt) bool {
	return v.Bit(0) == 1
}

// sqrtFp2 finds a square root in Fp2 via the standard Fp2-sqrt reduction:
// compute the norm's sqrt in Fp, then lift. Since p ≡ 3 mod 4, Fp2 sqrt
// is derived from two Fp sqrts rather than a generic Tonelli-Shanks over
// the tower, keeping this on the already-verified Fp path.
func sqrtFp2(a *Fp2) (Fp2, bool) {
	if a.C1.IsZero() {
		s, ok := a.C0.Sqrt()
		if ok {
			return Fp2{C0: s}, true
		}
		var negC0 Fp
		negC0.Neg(&a.C0)
		s2, ok2 := negC0.Sqrt()
		if !ok2 {
			return Fp2{}, false
		}
		return Fp2{C1: s2}, true
	}
	var a0sq, a1sq, norm Fp
	a0sq.Square(&a.C0)
	a1sq.Square(&a.C1)
	norm.Add(&a0sq, &a1sq)
	normSqrt, ok := norm.Sqrt()
	if !ok {
		return Fp2{}, false
	}
	var twoInv, c0sq Fp
	two := FpFromUint64(2)
	twoInv.Inv(&two)

	var c0Candidate1, c0Candidate2 Fp
	c0Candidate1.Add(&a.C0, &normSqrt)
	c0Candidate1.Mul(&c0Candidate1, &twoInv)
	c0sq, ok = c0Candidate1.Sqrt()
	if !ok {
		c0Candidate2.Sub(&a.C0, &normSqrt)
		c0Candidate2.Mul(&c0Candidate2, &twoInv)
		c0sq, ok = c0Candidate2.Sqrt()
		if !ok {
			return Fp2{}, false
		}
	}
	var c0Inv, c1 Fp
	c0Inv.Inv(&c0sq)
	c1.Mul(&a.C1, &c0Inv)
	c1.Mul(&c1, &twoInv)
	return Fp2{C0: c0sq, C1: c1}, true
}
