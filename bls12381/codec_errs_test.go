package bls12381

import (
	"testing"

	"github.com/eth2030/curvecore/errs"
)

func TestDeserializeG1RoundTrip(t *testing.T) {
	g := G1Generator()
	a := g.ToAffine()
	enc := CompressG1(&a)
	dec, err := DeserializeG1(enc[:])
	if err != nil {
		t.Fatalf("DeserializeG1: %v", err)
	}
	if !dec.X.Equal(a.X) || !dec.Y.Equal(a.Y) {
		t.Fatal("DeserializeG1 round trip mismatch")
	}
}

func TestDeserializeG1BadLengthIsCodec(t *testing.T) {
	_, err := DeserializeG1(make([]byte, 10))
	if !errs.Is(err, errs.Codec) {
		t.Fatalf("expected a Codec error, got %v", err)
	}
}

func TestDeserializeG2RoundTrip(t *testing.T) {
	g := G2Generator()
	a := g.ToAffine()
	enc := CompressG2(&a)
	dec, err := DeserializeG2(enc[:])
	if err != nil {
		t.Fatalf("DeserializeG2: %v", err)
	}
	if !dec.X.Equal(a.X) || !dec.Y.Equal(a.Y) {
		t.Fatal("DeserializeG2 round trip mismatch")
	}
}

func TestDeserializeG2BadLengthIsCodec(t *testing.T) {
	_, err := DeserializeG2(make([]byte, 10))
	if !errs.Is(err, errs.Codec) {
		t.Fatalf("expected a Codec error, got %v", err)
	}
}
