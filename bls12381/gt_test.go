package bls12381

import "testing"

func TestGTPowGLSMatchesPow(t *testing.T) {
	g := genuineGTElement()
	e := FrFromUint64(123456789)

	var want, got GT
	want.Pow(&g, &e)
	got.PowGLS(&g, &e)

	if !want.Equal(got) {
		t.Fatal("PowGLS disagrees with generic Pow")
	}
}

func TestGTPowGLSZeroExponent(t *testing.T) {
	g := genuineGTElement()
	e := FrFromUint64(0)

	var got GT
	got.PowGLS(&g, &e)
	if !got.Equal(GTIdentity()) {
		t.Fatal("PowGLS(g, 0) should be the identity")
	}
}

func TestMultiExpGTMatchesNaive(t *testing.T) {
	g := genuineGTElement()
	n := 40
	bases := make([]GT, n)
	scalars := make([]Fr, n)
	for i := range bases {
		bases[i] = g
		scalars[i] = FrFromUint64(uint64(i + 1))
	}
	got := MultiExpGT(bases, scalars)
	want := multiExpGTNaive(bases, scalars)
	if !got.Equal(want) {
		t.Fatal("MultiExpGT (Pippenger path) disagrees with naive multi-exp")
	}
}

func TestMultiExpGTEmpty(t *testing.T) {
	got := MultiExpGT(nil, nil)
	if !got.Equal(GTIdentity()) {
		t.Fatal("MultiExpGT of an empty input should be the identity")
	}
}
