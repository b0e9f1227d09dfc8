package bls12381

import "testing"

func TestSSWUPrimeLandsOnIsogenousCurve(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 5, 1000} {
		u := FpFromUint64(n)
		x, y := mapToCurveSSWUPrime(u)
		if !IsOnIsogenousCurveG1(&x, &y) {
			t.Fatalf("mapToCurveSSWUPrime(%d) did not land on E'", n)
		}
	}
}

func TestSSWUPrimeSignMatchesInputSgn0(t *testing.T) {
	u := FpFromUint64(7)
	_, y := mapToCurveSSWUPrime(u)
	if u.Sgn0() != y.Sgn0() {
		t.Fatal("mapToCurveSSWUPrime output sign should match Sgn0(u)")
	}
}
