package bls12381

import (
	"math/big"
	"testing"
)

func TestCyclotomicSquareMatchesGenericSquare(t *testing.T) {
	g1, g2 := G1Generator(), G2Generator()
	p := g1.ToAffine()
	q := g2.ToAffine()
	g := Pairing(&p, &q)

	var viaCyclotomic, viaGeneric Fp12
	viaCyclotomic.CyclotomicSquare(&g)
	viaGeneric.Square(&g)
	if !viaCyclotomic.Equal(viaGeneric) {
		t.Fatal("CyclotomicSquare disagrees with generic Square on a genuine pairing output")
	}
}

func TestCyclotomicSquareIteratedMatchesPow(t *testing.T) {
	g1, g2 := G1Generator(), G2Generator()
	p := g1.ToAffine()
	q := g2.ToAffine()
	g := Pairing(&p, &q)

	acc := g
	for i := 0; i < 6; i++ {
		acc.CyclotomicSquare(&acc)
	}

	want := powCyclotomicFp12(&g, big.NewInt(64))
	if !acc.Equal(want) {
		t.Fatal("six CyclotomicSquare calls should equal raising to the 64th power")
	}
}
