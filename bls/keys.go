// Package bls implements BLS signatures over BLS12-381 in the Ethereum
// consensus-layer convention: secret keys and signatures live in the
// scalar field and G2, public keys live in G1. Grounded on the teacher's
// bls_aggregate.go / bls_aggregate_batch.go / bls_aggregate_extended.go /
// bls_integration.go, but built on top of the bls12381 package's own
// curve and pairing arithmetic (RFC 9380 hash-to-curve, the GLV-checked
// scalar multiplication, the zcash-style point codecs) rather than
// re-deriving a second, simpler copy of that math the way the teacher's
// crypto package did internally.
package bls

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/eth2030/curvecore/bls12381"
)

// SecretKey is a BLS secret scalar in [1, r).
type SecretKey struct {
	s bls12381.Fr
}

// PublicKey is a point in G1.
type PublicKey struct {
	p bls12381.G1Jacobian
}

// Signature is a point in G2.
type Signature struct {
	p bls12381.G2Jacobian
}

const (
	// PubkeySize is the length of a compressed G1 public key.
	PubkeySize = 48
	// SignatureSize is the length of a compressed G2 signature.
	SignatureSize = 96
)

// hkdfKeygenSalt is the EIP-2333 salt used to derive the master secret key
// from a seed, per "BLS12381_KEYGEN_SALT".
var hkdfKeygenSalt = []byte("BLS-SIG-KEYGEN-SALT-")

// KeyGen derives a BLS secret key from a seed using HKDF-SHA256, following
// EIP-2333's master-key derivation: extract with the fixed salt, expand to
// L=48 bytes, reduce mod r. The seed must have at least 32 bytes of
// entropy (EIP-2333 requires >= 32 bytes); shorter seeds are rejected.
func KeyGen(seed []byte) (*SecretKey, error) {
	if len(seed) < 32 {
		return nil, errors.New("bls: seed must be at least 32 bytes")
	}
	okm := make([]byte, 48)
	ikm := append(append([]byte{}, seed...), 0x00)
	kdf := hkdf.New(sha256.New, ikm, hkdfKeygenSalt, nil)
	if _, err := io.ReadFull(kdf, okm); err != nil {
		return nil, err
	}
	fr := bls12381.FrFromBytesReduced(okm)
	return &SecretKey{s: fr}, nil
}

// GenerateKey generates a fresh random secret key using crypto/rand as the
// seed source, for callers that don't need deterministic EIP-2333 derivation.
func GenerateKey() (*SecretKey, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return KeyGen(seed)
}

// PublicKey derives the public key pk = [s]G1. Uses the constant-time
// scalar multiplication since s is secret — GLV's variable-time ladder
// (bls12381.G1Jacobian.ScalarMulGLV) must not touch a secret scalar.
func (sk *SecretKey) PublicKey() *PublicKey {
	g := bls12381.G1Generator()
	var pk bls12381.G1Jacobian
	s := sk.s
	pk.ScalarMulCT(&g, &s)
	return &PublicKey{p: pk}
}

// Bytes serializes the secret key as a 32-byte big-endian scalar.
func (sk *SecretKey) Bytes() [32]byte {
	return sk.s.BytesBE()
}

// SecretKeyFromBytes parses a 32-byte big-endian scalar as a secret key.
// Out-of-range input is reduced mod r rather than rejected, matching
// FrFromBytesReduced's key-derivation semantics.
func SecretKeyFromBytes(b []byte) *SecretKey {
	return &SecretKey{s: bls12381.FrFromBytesReduced(b)}
}

// ToBigInt exposes the secret scalar as a big.Int, for EIP-2333-style
// hierarchical derivation callers that need to do big.Int arithmetic on it.
func (sk *SecretKey) ToBigInt() *big.Int {
	b := sk.s.BytesBE()
	return new(big.Int).SetBytes(b[:])
}

// Bytes serializes the public key to 48 bytes (compressed G1, zcash flags).
func (pk *PublicKey) Bytes() [PubkeySize]byte {
	a := pk.p.ToAffine()
	return bls12381.CompressG1(&a)
}

// PublicKeyFromBytes decompresses a 48-byte public key. Returns false if
// the encoding is malformed, the point is off-curve, not in the G1
// subgroup, or is the identity (an invalid BLS public key).
func PublicKeyFromBytes(b []byte) (*PublicKey, bool) {
	if len(b) != PubkeySize {
		return nil, false
	}
	a, ok := bls12381.DecompressG1(b)
	if !ok || a.Infinity {
		return nil, false
	}
	var j bls12381.G1Jacobian
	j.FromAffine(&a)
	if !j.InSubgroup() {
		return nil, false
	}
	return &PublicKey{p: j}, true
}

// Bytes serializes the signature to 96 bytes (compressed G2, zcash flags).
func (sig *Signature) Bytes() [SignatureSize]byte {
	a := sig.p.ToAffine()
	return bls12381.CompressG2(&a)
}

// SignatureFromBytes decompresses a 96-byte signature. Returns false if
// the encoding is malformed, the point is off-curve, or not in the G2
// subgroup (the identity IS accepted here — an all-zero aggregate arises
// naturally from aggregating zero signatures in some callers' bookkeeping,
// and subgroup membership, not non-identity, is what protects verification).
func SignatureFromBytes(b []byte) (*Signature, bool) {
	if len(b) != SignatureSize {
		return nil, false
	}
	a, ok := bls12381.DecompressG2(b)
	if !ok {
		return nil, false
	}
	var j bls12381.G2Jacobian
	j.FromAffine(&a)
	if !j.InSubgroup() {
		return nil, false
	}
	return &Signature{p: j}, true
}
