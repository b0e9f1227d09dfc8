package kzg

import (
	"math/big"
	"testing"

	"github.com/eth2030/curvecore/errs"
)

func TestSetupBytesRoundTrip(t *testing.T) {
	setup, err := BuildTestSetup(8, big.NewInt(42))
	if err != nil {
		t.Fatal(err)
	}
	data := setup.Bytes()
	loaded, err := LoadSetup(data)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.N != setup.N {
		t.Fatalf("N = %d, want %d", loaded.N, setup.N)
	}
	for i := 0; i < setup.N; i++ {
		want := setup.G1Lagrange[i].ToAffine()
		got := loaded.G1Lagrange[i].ToAffine()
		if !got.X.Equal(want.X) || !got.Y.Equal(want.Y) {
			t.Fatalf("G1Lagrange[%d] mismatch after round trip", i)
		}
	}
	setupTau, loadedTau := setup.G2Tau(), loaded.G2Tau()
	wantTau := setupTau.ToAffine()
	gotTau := loadedTau.ToAffine()
	if !gotTau.X.Equal(wantTau.X) || !gotTau.Y.Equal(wantTau.Y) {
		t.Fatal("G2Tau mismatch after round trip")
	}
}

func TestLoadSetupTruncatedIsSetupError(t *testing.T) {
	_, err := LoadSetup([]byte{0, 0, 0})
	if !errs.Is(err, errs.Setup) {
		t.Fatalf("expected a Setup error, got %v", err)
	}
}

func TestLoadSetupWrongSizeIsSetupError(t *testing.T) {
	setup, err := BuildTestSetup(8, big.NewInt(42))
	if err != nil {
		t.Fatal(err)
	}
	data := setup.Bytes()
	_, err = LoadSetup(data[:len(data)-1])
	if !errs.Is(err, errs.Setup) {
		t.Fatalf("expected a Setup error, got %v", err)
	}
}

func TestLoadSetupNonPowerOfTwoIsSetupError(t *testing.T) {
	data := make([]byte, 4+3*48+3*96)
	data[3] = 3 // N = 3, not a power of two
	_, err := LoadSetup(data)
	if !errs.Is(err, errs.Setup) {
		t.Fatalf("expected a Setup error, got %v", err)
	}
}
