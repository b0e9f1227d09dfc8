package field

import (
	"math/big"
	"testing"
)

// bls12381PBytes is the BLS12-381 base field modulus, used here purely as
// a realistic 381-bit test modulus for the generic Montgomery layer.
var bls12381PBytes = mustHex("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")

func mustHex(s string) []byte {
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bad hex")
	}
	return b.Bytes()
}

func toBig(x *BigInt) *big.Int {
	return new(big.Int).SetBytes(x.BytesBE(NLimbs * 8))
}

func fromBig(b *big.Int) BigInt {
	var z BigInt
	z.SetBytesBE(b.Bytes())
	return z
}

func TestMontgomeryRoundTrip(t *testing.T) {
	mod := NewModulus(bls12381PBytes)
	p := toBig(&mod.Value)

	vals := []*big.Int{
		big.NewInt(0), big.NewInt(1), big.NewInt(2), big.NewInt(12345),
		new(big.Int).Sub(p, big.NewInt(1)),
	}
	for _, v := range vals {
		x := fromBig(v)
		var mont, back BigInt
		ToMontgomery(&mont, &x, mod)
		FromMontgomery(&back, &mont, mod)
		if toBig(&back).Cmp(v) != 0 {
			t.Errorf("round trip failed for %s: got %s", v, toBig(&back))
		}
	}
}

func TestMontMulMatchesBig(t *testing.T) {
	mod := NewModulus(bls12381PBytes)
	p := toBig(&mod.Value)

	a := new(big.Int).SetInt64(123456789)
	b := new(big.Int).SetInt64(987654321)
	want := new(big.Int).Mod(new(big.Int).Mul(a, b), p)

	ax, bx := fromBig(a), fromBig(b)
	var am, bm, rm, r BigInt
	ToMontgomery(&am, &ax, mod)
	ToMontgomery(&bm, &bx, mod)
	MontMul(&rm, &am, &bm, mod)
	FromMontgomery(&r, &rm, mod)

	if toBig(&r).Cmp(want) != 0 {
		t.Errorf("MontMul mismatch: got %s want %s", toBig(&r), want)
	}
}

func TestAddSubNeg(t *testing.T) {
	mod := NewModulus(bls12381PBytes)
	p := toBig(&mod.Value)
	a := new(big.Int).SetInt64(111)
	b := new(big.Int).SetInt64(222)

	ax, bx := fromBig(a), fromBig(b)
	var sum, diff, neg BigInt
	Add(&sum, &ax, &bx, mod)
	Sub(&diff, &ax, &bx, mod)
	Neg(&neg, &ax, mod)

	if toBig(&sum).Cmp(new(big.Int).Mod(new(big.Int).Add(a, b), p)) != 0 {
		t.Errorf("Add mismatch")
	}
	wantDiff := new(big.Int).Mod(new(big.Int).Sub(a, b), p)
	if toBig(&diff).Cmp(wantDiff) != 0 {
		t.Errorf("Sub mismatch: got %s want %s", toBig(&diff), wantDiff)
	}
	wantNeg := new(big.Int).Mod(new(big.Int).Neg(a), p)
	if toBig(&neg).Cmp(wantNeg) != 0 {
		t.Errorf("Neg mismatch")
	}
}

func TestInv(t *testing.T) {
	mod := NewModulus(bls12381PBytes)
	p := toBig(&mod.Value)
	a := new(big.Int).SetInt64(424242)
	ax := fromBig(a)
	var am, invM, invPlain BigInt
	ToMontgomery(&am, &ax, mod)
	Inv(&invM, &am, mod)
	FromMontgomery(&invPlain, &invM, mod)

	want := new(big.Int).ModInverse(a, p)
	if toBig(&invPlain).Cmp(want) != 0 {
		t.Errorf("Inv mismatch: got %s want %s", toBig(&invPlain), want)
	}

	var invV, invVPlain BigInt
	InvVartime(&invV, &am, mod)
	FromMontgomery(&invVPlain, &invV, mod)
	if toBig(&invVPlain).Cmp(want) != 0 {
		t.Errorf("InvVartime mismatch: got %s want %s", toBig(&invVPlain), want)
	}
}

func TestSqrt(t *testing.T) {
	mod := NewModulus(bls12381PBytes)
	a := new(big.Int).SetInt64(4)
	ax := fromBig(a)
	var am BigInt
	ToMontgomery(&am, &ax, mod)

	root, ok := Sqrt(&am, mod)
	if !ok {
		t.Fatal("expected 4 to be a square")
	}
	var sq BigInt
	MontSquare(&sq, &root, mod)
	if !sq.Equal(&am) {
		t.Errorf("sqrt(4)^2 != 4")
	}
}

func TestBigIntCodec(t *testing.T) {
	var x BigInt
	x.SetBytesBE([]byte{0x01, 0x02, 0x03})
	out := x.BytesBE(3)
	if out[0] != 0x01 || out[1] != 0x02 || out[2] != 0x03 {
		t.Errorf("codec round trip failed: %x", out)
	}
}
