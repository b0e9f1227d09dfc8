package secp256k1

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"math/big"
)

// This file replaces the teacher's secp256k1.go, which signed against
// elliptic.P256() as an explicitly marked placeholder ("Go stdlib does
// not include secp256k1; using P256 as a placeholder") and left
// ecrecover unimplemented ("requires secp256k1 curve"). curve.go now
// provides a real secp256k1 elliptic.Curve, so every one of those
// placeholders is replaced with the real curve and a working recovery
// path built from the teacher's own recoverPublicKey sketch in
// secp256k1_curve.go.

func n() *big.Int     { return S256().Params().N }
func halfN() *big.Int { return new(big.Int).Rsh(n(), 1) }

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(S256(), rand.Reader)
}

// Sign produces a 65-byte [R || S || V] signature over a 32-byte hash,
// determining V by trial recovery (the teacher's Sign left V as a fixed
// 0 placeholder with a TODO to do exactly this).
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, errors.New("secp256k1: hash must be 32 bytes")
	}
	r, s, err := ecdsa.Sign(rand.Reader, prv, hash)
	if err != nil {
		return nil, err
	}
	if s.Cmp(halfN()) > 0 {
		s = new(big.Int).Sub(n(), s)
	}

	sig := make([]byte, 65)
	r.FillBytes(sig[0:32])
	s.FillBytes(sig[32:64])

	for v := byte(0); v < 2; v++ {
		sig[64] = v
		x, y, err := recoverPublicKey(hash, r, s, v)
		if err != nil {
			continue
		}
		if x.Cmp(prv.X) == 0 && y.Cmp(prv.Y) == 0 {
			return sig, nil
		}
	}
	return nil, errors.New("secp256k1: could not determine recovery id")
}

// Ecrecover recovers the 65-byte uncompressed public key from hash and
// signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return FromECDSAPub(pub), nil
}

// SigToPub recovers the public key from a 65-byte [R || S || V] signature.
func SigToPub(hash, sig []byte) (*ecdsa.PublicKey, error) {
	if len(sig) != 65 {
		return nil, errors.New("secp256k1: signature must be 65 bytes [R || S || V]")
	}
	if len(hash) != 32 {
		return nil, errors.New("secp256k1: hash must be 32 bytes")
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	v := sig[64]

	x, y, err := recoverPublicKey(hash, r, s, v)
	if err != nil {
		return nil, err
	}
	return &ecdsa.PublicKey{Curve: S256(), X: x, Y: y}, nil
}

// recoverPublicKey recovers Q from (hash, r, s, v) via
// Q = r^-1 * (s*R - e*G), grounded on the teacher's own
// secp256k1_curve.go recoverPublicKey, now running against the real
// curve instead of being stranded unreachable behind the P256 placeholder.
func recoverPublicKey(hash []byte, r, s *big.Int, v byte) (*big.Int, *big.Int, error) {
	c := S256().(*secp256k1Curve)

	x := new(big.Int).Set(r)
	if x.Cmp(c.p) >= 0 {
		return nil, nil, errInvalidRecoveryID
	}

	y := computeY(x, c.p)
	if y == nil {
		return nil, nil, errInvalidSignature
	}
	if y.Bit(0) != uint(v&1) {
		y = new(big.Int).Sub(c.p, y)
	}
	if !c.IsOnCurve(x, y) {
		return nil, nil, errInvalidSignature
	}

	rInv := new(big.Int).ModInverse(r, c.n)
	if rInv == nil {
		return nil, nil, errInvalidSignature
	}

	e := new(big.Int).SetBytes(hash)

	sRx, sRy := c.ScalarMult(x, y, s.Bytes())
	eGx, eGy := c.ScalarBaseMult(e.Bytes())
	negEGy := new(big.Int).Sub(c.p, eGy)

	diffX, diffY := c.Add(sRx, sRy, eGx, negEGy)
	qx, qy := c.ScalarMult(diffX, diffY, rInv.Bytes())

	if qx.Sign() == 0 && qy.Sign() == 0 {
		return nil, nil, errInvalidSignature
	}
	return qx, qy, nil
}

// ValidateSignature verifies a 64-byte [R || S] signature against a
// 65-byte uncompressed public key and a 32-byte hash.
func ValidateSignature(pubkey, hash, sig []byte) bool {
	if len(sig) != 64 || len(hash) != 32 || len(pubkey) != 65 || pubkey[0] != 0x04 {
		return false
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	x := new(big.Int).SetBytes(pubkey[1:33])
	y := new(big.Int).SetBytes(pubkey[33:65])
	pub := &ecdsa.PublicKey{Curve: S256(), X: x, Y: y}
	return ecdsa.Verify(pub, hash, r, s)
}

// ValidateSignatureValues checks r, s, v per Homestead rules: if
// homestead is true, s must be in the lower half of the curve order.
func ValidateSignatureValues(v byte, r, s *big.Int, homestead bool) bool {
	if r == nil || s == nil || v > 1 {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	if r.Cmp(n()) >= 0 || s.Cmp(n()) >= 0 {
		return false
	}
	if homestead && s.Cmp(halfN()) > 0 {
		return false
	}
	return true
}

// CompressPubkey compresses a 65-byte uncompressed public key to 33 bytes.
func CompressPubkey(pubkey *ecdsa.PublicKey) []byte {
	if pubkey == nil || pubkey.X == nil || pubkey.Y == nil {
		return nil
	}
	return elliptic.MarshalCompressed(S256(), pubkey.X, pubkey.Y)
}

// DecompressPubkey decompresses a 33-byte compressed public key.
func DecompressPubkey(pubkey []byte) (*ecdsa.PublicKey, error) {
	if len(pubkey) != 33 {
		return nil, errors.New("secp256k1: invalid compressed public key length")
	}
	c := S256().(*secp256k1Curve)
	if pubkey[0] != 0x02 && pubkey[0] != 0x03 {
		return nil, errors.New("secp256k1: invalid compressed public key")
	}
	x := new(big.Int).SetBytes(pubkey[1:])
	if x.Cmp(c.p) >= 0 {
		return nil, errors.New("secp256k1: invalid compressed public key")
	}
	y := computeY(x, c.p)
	if y == nil {
		return nil, errors.New("secp256k1: invalid compressed public key")
	}
	if y.Bit(0) != uint(pubkey[0]&1) {
		y.Sub(c.p, y)
	}
	return &ecdsa.PublicKey{Curve: S256(), X: x, Y: y}, nil
}

// FromECDSAPub marshals a public key to 65-byte uncompressed format.
func FromECDSAPub(pub *ecdsa.PublicKey) []byte {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return nil
	}
	return elliptic.Marshal(pub.Curve, pub.X, pub.Y)
}
