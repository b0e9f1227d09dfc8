package bls12381

import "testing"

func genuineGTElement() GT {
	g1, g2 := G1Generator(), G2Generator()
	p := g1.ToAffine()
	q := g2.ToAffine()
	return GTFromPairing(Pairing(&p, &q))
}

func TestTorusRoundTrip(t *testing.T) {
	g := genuineGTElement()
	aff, ok := ToTorus(&g)
	if !ok {
		t.Fatal("ToTorus rejected a genuine GT element")
	}
	back := FromTorus(&aff)
	if !back.Equal(g) {
		t.Fatal("FromTorus(ToTorus(g)) != g")
	}
}

func TestTorusProjectiveMatchesAffine(t *testing.T) {
	g := genuineGTElement()
	prj := ToTorusPrj(&g)
	gotAff, ok := prj.ToAffine()
	if !ok {
		t.Fatal("T2Prj.ToAffine rejected a genuine GT element")
	}
	wantAff, ok := ToTorus(&g)
	if !ok {
		t.Fatal("ToTorus rejected a genuine GT element")
	}
	if !gotAff.T.Equal(wantAff.T) {
		t.Fatal("ToTorusPrj disagrees with ToTorus after division")
	}
}

func TestKarabinaCompressRoundTrip(t *testing.T) {
	g := genuineGTElement()
	raw := g.Raw()
	compressed, ok := CompressKarabina(&raw)
	if !ok {
		t.Fatal("CompressKarabina rejected a genuine cyclotomic element")
	}
	decompressed, ok := DecompressKarabina(&compressed)
	if !ok {
		t.Fatal("DecompressKarabina rejected its own compressed output")
	}
	if !decompressed.Equal(raw) {
		t.Fatal("Karabina compress/decompress round trip mismatch")
	}
}

func TestKarabinaCompressRoundTripAfterSquaring(t *testing.T) {
	g := genuineGTElement()
	raw := g.Raw()
	var squared Fp12
	squared.CyclotomicSquare(&raw)

	compressed, ok := CompressKarabina(&squared)
	if !ok {
		t.Fatal("CompressKarabina rejected a squared cyclotomic element")
	}
	decompressed, ok := DecompressKarabina(&compressed)
	if !ok {
		t.Fatal("DecompressKarabina rejected its own compressed output")
	}
	if !decompressed.Equal(squared) {
		t.Fatal("Karabina compress/decompress round trip mismatch after squaring")
	}
}
