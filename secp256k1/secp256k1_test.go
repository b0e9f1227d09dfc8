package secp256k1

import (
	"crypto/sha256"
	"math/big"
	"testing"
)

func TestGeneratorOnCurve(t *testing.T) {
	c := S256()
	params := c.Params()
	if !c.IsOnCurve(params.Gx, params.Gy) {
		t.Fatal("secp256k1 generator fails curve equation")
	}
}

func TestAddDoubleConsistency(t *testing.T) {
	c := S256()
	params := c.Params()
	sx, sy := c.Add(params.Gx, params.Gy, params.Gx, params.Gy)
	dx, dy := c.Double(params.Gx, params.Gy)
	if sx.Cmp(dx) != 0 || sy.Cmp(dy) != 0 {
		t.Fatal("Add(G,G) and Double(G) disagree")
	}
}

func TestScalarMultMatchesRepeatedAdd(t *testing.T) {
	c := S256()
	params := c.Params()
	k := big.NewInt(7)
	kx, ky := c.ScalarMult(params.Gx, params.Gy, k.Bytes())

	rx, ry := new(big.Int), new(big.Int)
	for i := 0; i < 7; i++ {
		rx, ry = c.Add(rx, ry, params.Gx, params.Gy)
	}
	if kx.Cmp(rx) != 0 || ky.Cmp(ry) != 0 {
		t.Fatal("ScalarMult(7) does not match 7 repeated adds")
	}
}

func TestScalarMultGLVMatchesPlain(t *testing.T) {
	c := S256().(*secp256k1Curve)
	params := c.Params()
	k := big.NewInt(123456789)

	gx, gy := c.scalarMultGLV(params.Gx, params.Gy, k)
	px, py := c.scalarMultPlain(params.Gx, params.Gy, k)
	if gx.Cmp(px) != 0 || gy.Cmp(py) != 0 {
		t.Fatal("scalarMultGLV disagrees with scalarMultPlain")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := sha256.Sum256([]byte("hello secp256k1"))

	sig, err := Sign(hash[:], priv)
	if err != nil {
		t.Fatal(err)
	}

	pubBytes := FromECDSAPub(&priv.PublicKey)
	if !ValidateSignature(pubBytes, hash[:], sig[:64]) {
		t.Fatal("signature failed to validate against the signer's own public key")
	}
}

func TestEcrecoverMatchesSigner(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	hash := sha256.Sum256([]byte("recover me"))

	sig, err := Sign(hash[:], priv)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := Ecrecover(hash[:], sig)
	if err != nil {
		t.Fatal(err)
	}
	want := FromECDSAPub(&priv.PublicKey)
	if len(recovered) != len(want) {
		t.Fatal("recovered pubkey length mismatch")
	}
	for i := range want {
		if recovered[i] != want[i] {
			t.Fatal("Ecrecover did not recover the signer's public key")
		}
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	priv, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	compressed := CompressPubkey(&priv.PublicKey)
	pub, err := DecompressPubkey(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if pub.X.Cmp(priv.X) != 0 || pub.Y.Cmp(priv.Y) != 0 {
		t.Fatal("compress/decompress round trip mismatch")
	}
}
