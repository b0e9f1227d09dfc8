package bls12381

import "testing"

func TestSvdWG1ProducesOnCurvePoints(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 7, 999} {
		u := FpFromUint64(n)
		x, y, ok := mapToCurveSvdWG1(u)
		if !ok {
			t.Fatalf("mapToCurveSvdWG1(%d) reported failure", n)
		}
		var ySq Fp
		ySq.Square(&y)
		if !curveRHSG1(&x).Equal(ySq) {
			t.Fatalf("mapToCurveSvdWG1(%d) produced an off-curve point", n)
		}
	}
}

func TestSvdWG2ProducesOnCurvePoints(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 7, 999} {
		u := Fp2{C0: FpFromUint64(n)}
		x, y, ok := mapToCurveSvdWG2(u)
		if !ok {
			t.Fatalf("mapToCurveSvdWG2(%d) reported failure", n)
		}
		var ySq Fp2
		ySq.Square(&y)
		if !curveRHSG2(&x).Equal(ySq) {
			t.Fatalf("mapToCurveSvdWG2(%d) produced an off-curve point", n)
		}
	}
}

func TestHashToCurveG1UsesSvdWAndStaysInSubgroup(t *testing.T) {
	dst := []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SVDW_TEST_")
	p, err := HashToCurveG1([]byte("svdw default path"), dst)
	if err != nil {
		t.Fatal(err)
	}
	a := p.ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("HashToCurveG1 produced an off-curve point")
	}
	if !p.InSubgroup() {
		t.Fatal("HashToCurveG1 output not in the order-r subgroup")
	}
}

func TestHashToCurveG2StaysInSubgroup(t *testing.T) {
	dst := []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SVDW_TEST_")
	p, err := HashToCurveG2([]byte("svdw default path"), dst)
	if err != nil {
		t.Fatal(err)
	}
	a := p.ToAffine()
	if !a.IsOnCurve() {
		t.Fatal("HashToCurveG2 produced an off-curve point")
	}
	if !p.InSubgroup() {
		t.Fatal("HashToCurveG2 output not in the order-r subgroup")
	}
}
