package precompile

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/eth2030/curvecore/bls12381"
)

func encodeScalar(v int64) []byte {
	out := make([]byte, scalarSize)
	b := big.NewInt(v).Bytes()
	copy(out[scalarSize-len(b):], b)
	return out
}

func TestBLS12G1AddAndMul(t *testing.T) {
	g := bls12381.G1Generator()
	gAff := g.ToAffine()
	gBytes := encodeG1(gAff)

	var two bls12381.G1Jacobian
	two.Add(&g, &g)
	wantDouble := encodeG1(two.ToAffine())

	input := append(append([]byte{}, gBytes...), gBytes...)
	got, err := BLS12G1Add(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, wantDouble) {
		t.Fatal("BLS12G1Add(G,G) != 2G")
	}

	mulInput := append(append([]byte{}, gBytes...), encodeScalar(2)...)
	gotMul, err := BLS12G1Mul(mulInput)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotMul, wantDouble) {
		t.Fatal("BLS12G1Mul(G,2) != 2G")
	}
}

func TestBLS12G1AddIdentity(t *testing.T) {
	zero := make([]byte, g1Size)
	g := bls12381.G1Generator()
	gBytes := encodeG1(g.ToAffine())

	input := append(append([]byte{}, zero...), gBytes...)
	got, err := BLS12G1Add(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, gBytes) {
		t.Fatal("BLS12G1Add(0,G) != G")
	}
}

func TestBLS12G1MSM(t *testing.T) {
	g := bls12381.G1Generator()
	gBytes := encodeG1(g.ToAffine())

	var input []byte
	input = append(input, gBytes...)
	input = append(input, encodeScalar(3)...)
	input = append(input, gBytes...)
	input = append(input, encodeScalar(4)...)

	got, err := BLS12G1MSM(input)
	if err != nil {
		t.Fatal(err)
	}

	var want bls12381.G1Jacobian
	want.ScalarMulBig(&g, big.NewInt(7))
	wantBytes := encodeG1(want.ToAffine())
	if !bytes.Equal(got, wantBytes) {
		t.Fatal("BLS12G1MSM(3G + 4G) != 7G")
	}
}

func TestBLS12G2AddAndMul(t *testing.T) {
	g := bls12381.G2Generator()
	gBytes := encodeG2(g.ToAffine())

	var three bls12381.G2Jacobian
	three.ScalarMulBig(&g, big.NewInt(3))
	want := encodeG2(three.ToAffine())

	mulInput := append(append([]byte{}, gBytes...), encodeScalar(3)...)
	got, err := BLS12G2Mul(mulInput)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("BLS12G2Mul(G,3) != 3G")
	}
}

func TestBLS12PairingCheckTrivial(t *testing.T) {
	g1 := bls12381.G1Generator()
	g2 := bls12381.G2Generator()

	var negG1 bls12381.G1Jacobian
	negG1.Neg(&g1)

	input := append(append([]byte{}, encodeG1(g1.ToAffine())...), encodeG2(g2.ToAffine())...)
	input = append(input, encodeG1(negG1.ToAffine())...)
	input = append(input, encodeG2(g2.ToAffine())...)

	out, err := BLS12Pairing(input)
	if err != nil {
		t.Fatal(err)
	}
	if out[31] != 1 {
		t.Fatal("e(G1,G2)*e(-G1,G2) should equal 1")
	}
}

func TestBLS12MapFpToG1(t *testing.T) {
	fe, ok := bls12381.FpFromBytesBE(bytes.Repeat([]byte{0x03}, 48))
	if !ok {
		t.Fatal("test field element should be canonical")
	}
	var padded [fpPadSize]byte
	raw := fe.BytesBE()
	copy(padded[fpPadSize-fpRawSize:], raw[:])

	out, err := BLS12MapFpToG1(padded[:])
	if err != nil {
		t.Fatal(err)
	}
	aff, err := decodeG1(out)
	if err != nil {
		t.Fatal(err)
	}
	var j bls12381.G1Jacobian
	j.FromAffine(&aff)
	if !j.InSubgroup() {
		t.Fatal("mapped point is not in the G1 subgroup")
	}
}

func TestModExp(t *testing.T) {
	header := make([]byte, 96)
	copy(header[31:32], big.NewInt(1).Bytes()) // base_len = 1, left-padded
	header[31] = 1
	header[63] = 1 // exp_len = 1
	header[95] = 1 // mod_len = 1

	input := append(header, 3, 2, 5) // 3^2 mod 5 = 4
	out, err := ModExp(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Fatalf("3^2 mod 5 = %v, want [4]", out)
	}
}

func TestModExpZeroModulus(t *testing.T) {
	header := make([]byte, 96)
	header[31] = 1
	header[63] = 1
	header[95] = 1
	input := append(header, 3, 2, 0)
	out, err := ModExp(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 0 {
		t.Fatalf("modexp with modulus 0 should return zero, got %v", out)
	}
}
