// Package precompile implements EVM precompile byte adapters (spec.md
// section 4.O): fixed-layout input validation and canonical output
// encoding around the arithmetic core, no gas metering (the spec leaves
// cost scheduling to the caller).
//
// Grounded on the teacher's pkg/core/vm/precompiles_bls.go, which already
// has the EIP-2537 address list, gas table, and 64-byte-padded wire
// layout worked out but stubs every actual curve operation with a "not
// yet implemented" error (the teacher never wired a BLS12-381 arithmetic
// library in). This package keeps the teacher's byte layout and
// validation shape and replaces every stub with a real call into
// bls12381.
package precompile

import (
	"errors"
	"math/big"

	"github.com/eth2030/curvecore/bls12381"
)

const (
	fpPadSize  = 64 // EIP-2537 zero-pads every 48-byte Fp element to 64 bytes
	fpRawSize  = 48
	g1Size     = 2 * fpPadSize
	g2Size     = 2 * 2 * fpPadSize
	scalarSize = 32
)

var (
	ErrInputLength   = errors.New("precompile: invalid input length")
	ErrInvalidPoint  = errors.New("precompile: invalid point encoding")
	ErrNotOnCurve    = errors.New("precompile: point not on curve")
	ErrNotInSubgroup = errors.New("precompile: point not in correct subgroup")
)

func decodeFp(b []byte) (bls12381.Fp, error) {
	for _, v := range b[:fpPadSize-fpRawSize] {
		if v != 0 {
			return bls12381.Fp{}, ErrInvalidPoint
		}
	}
	fe, ok := bls12381.FpFromBytesBE(b[fpPadSize-fpRawSize:])
	if !ok {
		return bls12381.Fp{}, ErrInvalidPoint
	}
	return fe, nil
}

func encodeFp(fe bls12381.Fp) [fpPadSize]byte {
	var out [fpPadSize]byte
	raw := fe.BytesBE()
	copy(out[fpPadSize-fpRawSize:], raw[:])
	return out
}

// decodeG1 decodes a 128-byte padded (x,y) pair, accepting the all-zero
// encoding as the point at infinity (EIP-2537 convention) and otherwise
// requiring the point to satisfy the curve equation.
func decodeG1(b []byte) (bls12381.G1Affine, error) {
	if len(b) != g1Size {
		return bls12381.G1Affine{}, ErrInputLength
	}
	x, err := decodeFp(b[:fpPadSize])
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	y, err := decodeFp(b[fpPadSize:])
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	if x.IsZero() && y.IsZero() {
		return bls12381.G1Affine{Infinity: true}, nil
	}
	a := bls12381.G1Affine{X: x, Y: y}
	if !a.IsOnCurve() {
		return bls12381.G1Affine{}, ErrNotOnCurve
	}
	return a, nil
}

func encodeG1(a bls12381.G1Affine) []byte {
	out := make([]byte, g1Size)
	if a.Infinity {
		return out
	}
	xb := encodeFp(a.X)
	yb := encodeFp(a.Y)
	copy(out[:fpPadSize], xb[:])
	copy(out[fpPadSize:], yb[:])
	return out
}

// decodeG2 decodes a 256-byte padded (x_c0,x_c1,y_c0,y_c1) quadruple, in
// EIP-2537's c0-then-c1 order (the precompile wire format, distinct from
// bls12381.CompressG2's c1-then-c0 IETF signature-serialization order).
func decodeG2(b []byte) (bls12381.G2Affine, error) {
	if len(b) != g2Size {
		return bls12381.G2Affine{}, ErrInputLength
	}
	xc0, err := decodeFp(b[0*fpPadSize : 1*fpPadSize])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	xc1, err := decodeFp(b[1*fpPadSize : 2*fpPadSize])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	yc0, err := decodeFp(b[2*fpPadSize : 3*fpPadSize])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	yc1, err := decodeFp(b[3*fpPadSize : 4*fpPadSize])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	x := bls12381.Fp2{C0: xc0, C1: xc1}
	y := bls12381.Fp2{C0: yc0, C1: yc1}
	if (&x).IsZero() && (&y).IsZero() {
		return bls12381.G2Affine{Infinity: true}, nil
	}
	a := bls12381.G2Affine{X: x, Y: y}
	if !a.IsOnCurve() {
		return bls12381.G2Affine{}, ErrNotOnCurve
	}
	return a, nil
}

func encodeG2(a bls12381.G2Affine) []byte {
	out := make([]byte, g2Size)
	if a.Infinity {
		return out
	}
	xc0 := encodeFp(a.X.C0)
	xc1 := encodeFp(a.X.C1)
	yc0 := encodeFp(a.Y.C0)
	yc1 := encodeFp(a.Y.C1)
	copy(out[0*fpPadSize:], xc0[:])
	copy(out[1*fpPadSize:], xc1[:])
	copy(out[2*fpPadSize:], yc0[:])
	copy(out[3*fpPadSize:], yc1[:])
	return out
}

// BLS12G1Add implements EIP-2537's BLS12_G1ADD: input is two 128-byte G1
// points, output is their 128-byte sum.
func BLS12G1Add(input []byte) ([]byte, error) {
	if len(input) != 2*g1Size {
		return nil, ErrInputLength
	}
	a, err := decodeG1(input[:g1Size])
	if err != nil {
		return nil, err
	}
	b, err := decodeG1(input[g1Size:])
	if err != nil {
		return nil, err
	}
	var ja, jb, sum bls12381.G1Jacobian
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	sum.Add(&ja, &jb)
	return encodeG1(sum.ToAffine()), nil
}

// BLS12G1Mul implements EIP-2537's BLS12_G1MSM for k=1: a 128-byte G1
// point followed by a 32-byte unsigned scalar (not required to be
// canonically reduced mod r — any 256-bit integer is a valid exponent).
func BLS12G1Mul(input []byte) ([]byte, error) {
	if len(input) != g1Size+scalarSize {
		return nil, ErrInputLength
	}
	a, err := decodeG1(input[:g1Size])
	if err != nil {
		return nil, err
	}
	k := new(big.Int).SetBytes(input[g1Size:])

	var ja, result bls12381.G1Jacobian
	ja.FromAffine(&a)
	result.ScalarMulBig(&ja, k)
	return encodeG1(result.ToAffine()), nil
}

// BLS12G1MSM implements EIP-2537's BLS12_G1MSM for general k: k pairs of
// (128-byte point, 32-byte scalar), output their combined scalar sum.
func BLS12G1MSM(input []byte) ([]byte, error) {
	pairSize := g1Size + scalarSize
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, ErrInputLength
	}
	k := len(input) / pairSize

	acc := bls12381.G1Identity()
	for i := 0; i < k; i++ {
		offset := i * pairSize
		a, err := decodeG1(input[offset : offset+g1Size])
		if err != nil {
			return nil, err
		}
		scalar := new(big.Int).SetBytes(input[offset+g1Size : offset+pairSize])

		var ja, term bls12381.G1Jacobian
		ja.FromAffine(&a)
		term.ScalarMulBig(&ja, scalar)
		acc.Add(&acc, &term)
	}
	return encodeG1(acc.ToAffine()), nil
}

// BLS12G2Add implements EIP-2537's BLS12_G2ADD.
func BLS12G2Add(input []byte) ([]byte, error) {
	if len(input) != 2*g2Size {
		return nil, ErrInputLength
	}
	a, err := decodeG2(input[:g2Size])
	if err != nil {
		return nil, err
	}
	b, err := decodeG2(input[g2Size:])
	if err != nil {
		return nil, err
	}
	var ja, jb, sum bls12381.G2Jacobian
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	sum.Add(&ja, &jb)
	return encodeG2(sum.ToAffine()), nil
}

// BLS12G2Mul implements EIP-2537's BLS12_G2MSM for k=1.
func BLS12G2Mul(input []byte) ([]byte, error) {
	if len(input) != g2Size+scalarSize {
		return nil, ErrInputLength
	}
	a, err := decodeG2(input[:g2Size])
	if err != nil {
		return nil, err
	}
	k := new(big.Int).SetBytes(input[g2Size:])

	var ja, result bls12381.G2Jacobian
	ja.FromAffine(&a)
	result.ScalarMulBig(&ja, k)
	return encodeG2(result.ToAffine()), nil
}

// BLS12G2MSM implements EIP-2537's BLS12_G2MSM for general k.
func BLS12G2MSM(input []byte) ([]byte, error) {
	pairSize := g2Size + scalarSize
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, ErrInputLength
	}
	k := len(input) / pairSize

	acc := bls12381.G2Identity()
	for i := 0; i < k; i++ {
		offset := i * pairSize
		a, err := decodeG2(input[offset : offset+g2Size])
		if err != nil {
			return nil, err
		}
		scalar := new(big.Int).SetBytes(input[offset+g2Size : offset+pairSize])

		var ja, term bls12381.G2Jacobian
		ja.FromAffine(&a)
		term.ScalarMulBig(&ja, scalar)
		acc.Add(&acc, &term)
	}
	return encodeG2(acc.ToAffine()), nil
}

// BLS12Pairing implements EIP-2537's BLS12_PAIRING_CHECK: k pairs of
// (128-byte G1, 256-byte G2) points; returns 32 bytes holding 1 if the
// product of pairings is the GT identity, 0 otherwise. Every G1 and G2
// point here must additionally be in its r-order subgroup, unlike
// BLS12G1Add/BLS12G1MSM, because a mixed-subgroup input can make the
// pairing product misleadingly collapse to 1.
func BLS12Pairing(input []byte) ([]byte, error) {
	pairSize := g1Size + g2Size
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, ErrInputLength
	}
	k := len(input) / pairSize

	ps := make([]bls12381.G1Affine, k)
	qs := make([]bls12381.G2Affine, k)
	for i := 0; i < k; i++ {
		offset := i * pairSize
		g1a, err := decodeG1(input[offset : offset+g1Size])
		if err != nil {
			return nil, err
		}
		g2a, err := decodeG2(input[offset+g1Size : offset+pairSize])
		if err != nil {
			return nil, err
		}
		var g1j bls12381.G1Jacobian
		g1j.FromAffine(&g1a)
		var g2j bls12381.G2Jacobian
		g2j.FromAffine(&g2a)
		if !g1a.Infinity && !g1j.InSubgroup() {
			return nil, ErrNotInSubgroup
		}
		if !g2a.Infinity && !g2j.InSubgroup() {
			return nil, ErrNotInSubgroup
		}
		ps[i] = g1a
		qs[i] = g2a
	}

	result := bls12381.MultiPairing(ps, qs)
	out := make([]byte, 32)
	if result.Equal(bls12381.Fp12One()) {
		out[31] = 1
	}
	return out, nil
}

// BLS12MapFpToG1 implements EIP-2537's BLS12_MAP_FP_TO_G1: a single
// 64-byte padded Fp element maps directly onto G1 (no hashing).
func BLS12MapFpToG1(input []byte) ([]byte, error) {
	if len(input) != fpPadSize {
		return nil, ErrInputLength
	}
	fe, err := decodeFp(input)
	if err != nil {
		return nil, err
	}
	p := bls12381.MapFpToG1(fe)
	return encodeG1(p.ToAffine()), nil
}

// BLS12MapFp2ToG2 implements EIP-2537's BLS12_MAP_FP2_TO_G2.
func BLS12MapFp2ToG2(input []byte) ([]byte, error) {
	if len(input) != 2*fpPadSize {
		return nil, ErrInputLength
	}
	c0, err := decodeFp(input[:fpPadSize])
	if err != nil {
		return nil, err
	}
	c1, err := decodeFp(input[fpPadSize:])
	if err != nil {
		return nil, err
	}
	p := bls12381.MapFp2ToG2(bls12381.Fp2{C0: c0, C1: c1})
	return encodeG2(p.ToAffine()), nil
}
