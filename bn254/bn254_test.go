package bn254

import (
	"math/big"
	"testing"
)

func TestFp2MulSquareAgree(t *testing.T) {
	a := &Fp2{A0: big.NewInt(3), A1: big.NewInt(5)}
	if !Fp2Sqr(a).Equal(Fp2Mul(a, a)) {
		t.Fatal("Fp2 Sqr and Mul(x,x) disagree")
	}
}

func TestFp2InvRoundTrip(t *testing.T) {
	a := &Fp2{A0: big.NewInt(7), A1: big.NewInt(11)}
	prod := Fp2Mul(a, Fp2Inv(a))
	if !prod.Equal(Fp2One()) {
		t.Fatal("Fp2 Inv did not produce a multiplicative inverse")
	}
}

func TestFp6MulSquareAgree(t *testing.T) {
	a := &Fp6{
		C0: &Fp2{big.NewInt(1), big.NewInt(2)},
		C1: &Fp2{big.NewInt(3), big.NewInt(4)},
		C2: &Fp2{big.NewInt(5), big.NewInt(6)},
	}
	if !Fp6Sqr(a).Equal(Fp6Mul(a, a)) {
		t.Fatal("Fp6 Sqr and Mul(x,x) disagree")
	}
}

func TestFp6InvRoundTrip(t *testing.T) {
	a := &Fp6{
		C0: &Fp2{big.NewInt(1), big.NewInt(2)},
		C1: &Fp2{big.NewInt(3), new(big.Int)},
		C2: &Fp2{new(big.Int), big.NewInt(4)},
	}
	prod := Fp6Mul(a, Fp6Inv(a))
	if !prod.Equal(Fp6One()) {
		t.Fatal("Fp6 Inv did not produce a multiplicative inverse")
	}
}

func TestFp12InvRoundTrip(t *testing.T) {
	a := &Fp12{
		C0: &Fp6{C0: &Fp2{big.NewInt(2), new(big.Int)}, C1: &Fp2{big.NewInt(3), new(big.Int)}, C2: Fp2Zero()},
		C1: &Fp6{C0: Fp2Zero(), C1: Fp2Zero(), C2: &Fp2{big.NewInt(1), big.NewInt(1)}},
	}
	prod := Fp12Mul(a, Fp12Inv(a))
	if !prod.Equal(Fp12One()) {
		t.Fatal("Fp12 Inv did not produce a multiplicative inverse")
	}
}

func TestG1GeneratorOnCurve(t *testing.T) {
	a := G1Generator().ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("G1 generator fails curve equation")
	}
}

func TestG1AddDoubleConsistency(t *testing.T) {
	g := G1Generator()
	sum := G1Add(g, g)
	dbl := G1Double(g)
	sa, da := sum.ToAffine(), dbl.ToAffine()
	if sa.X.Cmp(da.X) != 0 || sa.Y.Cmp(da.Y) != 0 {
		t.Fatal("G1 Add(g,g) and Double(g) disagree")
	}
}

func TestG1ScalarMulMatchesRepeatedAdd(t *testing.T) {
	g := G1Generator()
	byScalar := G1ScalarMul(g, big.NewInt(5))
	acc := G1Identity()
	for i := 0; i < 5; i++ {
		acc = G1Add(acc, g)
	}
	if byScalar.ToAffine().X.Cmp(acc.ToAffine().X) != 0 {
		t.Fatal("ScalarMul(5) does not match 5 repeated adds")
	}
}

func TestG1GeneratorInSubgroup(t *testing.T) {
	if !G1Generator().InSubgroup() {
		t.Fatal("G1 generator should be in the order-r subgroup")
	}
}

func TestG2GeneratorOnCurve(t *testing.T) {
	a := G2Generator().ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("G2 generator fails curve equation")
	}
}

func TestG2GeneratorInSubgroup(t *testing.T) {
	if !G2Generator().InSubgroup() {
		t.Fatal("G2 generator should be in the order-r subgroup")
	}
}

func TestPairingBilinearInFirstArgument(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	p2 := G1ScalarMul(p, big.NewInt(2))

	pa, p2a, qa := p.ToAffine(), p2.ToAffine(), q.ToAffine()

	lhs := Pair(&p2a, &qa)
	base := Pair(&pa, &qa)
	rhs := Fp12Sqr(base)

	if !lhs.Equal(rhs) {
		t.Fatal("e(2P,Q) != e(P,Q)^2")
	}
}

func TestPairingBilinearInSecondArgument(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	q3 := G2ScalarMul(q, big.NewInt(3))

	pa, qa, q3a := p.ToAffine(), q.ToAffine(), q3.ToAffine()

	lhs := Pair(&pa, &q3a)
	base := Pair(&pa, &qa)
	rhs := Fp12Mul(Fp12Sqr(base), base)

	if !lhs.Equal(rhs) {
		t.Fatal("e(P,3Q) != e(P,Q)^3")
	}
}

func TestMultiPairingCheckSanity(t *testing.T) {
	p := G1Generator()
	q := G2Generator()
	pa := p.ToAffine()
	qa := q.ToAffine()

	negP := G1Neg(p)
	negPa := negP.ToAffine()

	if !MultiPairingCheck([]G1Affine{pa, negPa}, []G2Affine{qa, qa}) {
		t.Fatal("e(P,Q) * e(-P,Q) should equal 1")
	}
}
