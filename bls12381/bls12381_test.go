package bls12381

import (
	"math/big"
	"testing"
)

func TestFp2MulSquareAgree(t *testing.T) {
	a := Fp2{C0: FpFromUint64(3), C1: FpFromUint64(5)}
	var bySquare, byMul Fp2
	bySquare.Square(&a)
	byMul.Mul(&a, &a)
	if !bySquare.Equal(byMul) {
		t.Fatal("Fp2 Square and Mul(x,x) disagree")
	}
}

func TestFp2InvRoundTrip(t *testing.T) {
	a := Fp2{C0: FpFromUint64(7), C1: FpFromUint64(11)}
	var inv, prod Fp2
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	if !prod.Equal(Fp2One()) {
		t.Fatal("Fp2 Inv did not produce a multiplicative inverse")
	}
}

func TestFp6MulSquareAgree(t *testing.T) {
	a := Fp6{
		C0: Fp2{C0: FpFromUint64(1), C1: FpFromUint64(2)},
		C1: Fp2{C0: FpFromUint64(3), C1: FpFromUint64(4)},
		C2: Fp2{C0: FpFromUint64(5), C1: FpFromUint64(6)},
	}
	var bySquare, byMul Fp6
	bySquare.Square(&a)
	byMul.Mul(&a, &a)
	if !bySquare.Equal(byMul) {
		t.Fatal("Fp6 Square and Mul(x,x) disagree")
	}
}

func TestFp6InvRoundTrip(t *testing.T) {
	a := Fp6{
		C0: Fp2{C0: FpFromUint64(1), C1: FpFromUint64(2)},
		C1: Fp2{C0: FpFromUint64(3)},
		C2: Fp2{C1: FpFromUint64(4)},
	}
	var inv, prod Fp6
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	if !prod.Equal(Fp6One()) {
		t.Fatal("Fp6 Inv did not produce a multiplicative inverse")
	}
}

func TestFp12InvRoundTrip(t *testing.T) {
	a := Fp12{
		C0: Fp6{C0: Fp2{C0: FpFromUint64(2)}, C1: Fp2{C0: FpFromUint64(3)}},
		C1: Fp6{C2: Fp2{C0: FpFromUint64(1), C1: FpFromUint64(1)}},
	}
	var inv, prod Fp12
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	if !prod.Equal(Fp12One()) {
		t.Fatal("Fp12 Inv did not produce a multiplicative inverse")
	}
}

func TestG1GeneratorOnCurve(t *testing.T) {
	g := G1Generator()
	a := g.ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("G1 generator fails curve equation")
	}
}

func TestG1AddDoubleConsistency(t *testing.T) {
	g := G1Generator()
	var sum, dbl G1Jacobian
	sum.Add(&g, &g)
	dbl.Double(&g)
	if !sum.ToAffine().X.Equal(dbl.ToAffine().X) || !sum.ToAffine().Y.Equal(dbl.ToAffine().Y) {
		t.Fatal("G1 Add(g,g) and Double(g) disagree")
	}
}

func TestG1ScalarMulMatchesRepeatedAdd(t *testing.T) {
	g := G1Generator()
	k := FrFromUint64(5)
	var byScalar G1Jacobian
	byScalar.ScalarMul(&g, &k)

	acc := G1Identity()
	for i := 0; i < 5; i++ {
		acc.Add(&acc, &g)
	}
	if !byScalar.ToAffine().X.Equal(acc.ToAffine().X) {
		t.Fatal("ScalarMul(5) does not match 5 repeated adds")
	}
}

func TestG1ScalarMulCTMatchesScalarMul(t *testing.T) {
	g := G1Generator()
	k := FrFromUint64(12345)
	var want, got G1Jacobian
	want.ScalarMul(&g, &k)
	got.ScalarMulCT(&g, &k)
	if !want.ToAffine().X.Equal(got.ToAffine().X) || !want.ToAffine().Y.Equal(got.ToAffine().Y) {
		t.Fatal("ScalarMulCT disagrees with ScalarMul")
	}
}

func TestG1GeneratorInSubgroup(t *testing.T) {
	g := G1Generator()
	if !g.InSubgroup() {
		t.Fatal("G1 generator should be in the order-r subgroup")
	}
}

func TestG2GeneratorOnCurve(t *testing.T) {
	g := G2Generator()
	a := g.ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("G2 generator fails curve equation")
	}
}

func TestG2GeneratorInSubgroup(t *testing.T) {
	g := G2Generator()
	if !g.InSubgroup() {
		t.Fatal("G2 generator should be in the order-r subgroup")
	}
}

func TestG1CompressDecompressRoundTrip(t *testing.T) {
	g := G1Generator()
	a := g.ToAffine()
	enc := CompressG1(&a)
	dec, ok := DecompressG1(enc[:])
	if !ok {
		t.Fatal("DecompressG1 rejected a valid encoding")
	}
	if !dec.X.Equal(a.X) || !dec.Y.Equal(a.Y) {
		t.Fatal("G1 compress/decompress round trip mismatch")
	}
}

func TestG1CompressInfinity(t *testing.T) {
	a := G1Affine{Infinity: true}
	enc := CompressG1(&a)
	dec, ok := DecompressG1(enc[:])
	if !ok || !dec.Infinity {
		t.Fatal("G1 infinity did not round-trip")
	}
}

func TestPairingBilinearInFirstArgument(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	var p2 G1Jacobian
	two := FrFromUint64(2)
	p2.ScalarMul(&p, &two)

	pa := p.ToAffine()
	p2a := p2.ToAffine()
	qa := q.ToAffine()

	lhs := Pairing(&p2a, &qa)
	base := Pairing(&pa, &qa)
	var rhs Fp12
	rhs.Square(&base)

	if !lhs.Equal(rhs) {
		t.Fatal("e(2P,Q) != e(P,Q)^2")
	}
}

func TestPairingBilinearInSecondArgument(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	var q3 G2Jacobian
	three := FrFromUint64(3)
	q3.ScalarMul(&q, &three)

	pa := p.ToAffine()
	qa := q.ToAffine()
	q3a := q3.ToAffine()

	lhs := Pairing(&pa, &q3a)
	base := Pairing(&pa, &qa)
	var rhs Fp12
	rhs.Square(&base)
	rhs.Mul(&rhs, &base)

	if !lhs.Equal(rhs) {
		t.Fatal("e(P,3Q) != e(P,Q)^3")
	}
}

func TestPairingsEqualSanity(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	pa := p.ToAffine()
	qa := q.ToAffine()
	if !PairingsEqual(&pa, &qa, &pa, &qa) {
		t.Fatal("PairingsEqual should hold for identical inputs")
	}
}

func TestMSMG1MatchesNaive(t *testing.T) {
	g := G1Generator()
	points := make([]G1Jacobian, 40)
	scalars := make([]Fr, 40)
	for i := range points {
		points[i] = g
		scalars[i] = FrFromUint64(uint64(i + 1))
	}
	got := MSMG1(points, scalars)
	want := msmNaive(points, scalars)
	if !got.ToAffine().X.Equal(want.ToAffine().X) {
		t.Fatal("MSMG1 (Pippenger path) disagrees with naive MSM")
	}
}

func TestScalarMulGLVMatchesScalarMul(t *testing.T) {
	g := G1Generator()
	k := big.NewInt(123456789)
	kFr := FrFromUint64(123456789)

	var want, got G1Jacobian
	want.ScalarMul(&g, &kFr)
	got.ScalarMulGLV(&g, k)

	wa, ga := want.ToAffine(), got.ToAffine()
	if !wa.X.Equal(ga.X) || !wa.Y.Equal(ga.Y) {
		t.Fatal("ScalarMulGLV disagrees with ScalarMul")
	}
}

func TestHashToCurveG1Deterministic(t *testing.T) {
	dst := []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_TEST_")
	p1, err := HashToCurveG1([]byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := HashToCurveG1([]byte("hello"), dst)
	if err != nil {
		t.Fatal(err)
	}
	if !p1.ToAffine().X.Equal(p2.ToAffine().X) {
		t.Fatal("HashToCurveG1 is not deterministic")
	}
	a := p1.ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("HashToCurveG1 produced an off-curve point")
	}
	if !p1.InSubgroup() {
		t.Fatal("HashToCurveG1 output not in the order-r subgroup")
	}
}
