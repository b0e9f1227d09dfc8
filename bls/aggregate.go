package bls

import (
	"crypto/sha256"
	"errors"

	"github.com/eth2030/curvecore/bls12381"
)

// Domain separation tags for the distinct Ethereum consensus-layer signing
// contexts, grounded on the teacher's bls_aggregate_extended.go DST*
// variables — a signature made under one DST can never be replayed as
// valid under another.
var (
	DSTBeaconAttestation = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_ATTESTATION")
	DSTBeaconProposal    = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_PROPOSAL")
	DSTSyncCommittee     = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_SYNC_COMMITTEE")
	DSTPoPMessage        = []byte("BLS_POP_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")
	DSTRandao            = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_RANDAO")
	DSTVoluntaryExit     = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_VOLUNTARY_EXIT")
)

var (
	ErrNoPubkeys         = errors.New("bls: no public keys provided")
	ErrNoSignatures      = errors.New("bls: no signatures provided")
	ErrMismatchedLengths = errors.New("bls: pubkey/signature/message counts differ")
	ErrInvalidPubkey     = errors.New("bls: invalid public key")
	ErrInvalidSignature  = errors.New("bls: invalid signature")
	ErrPopVerifyFailed   = errors.New("bls: proof of possession verification failed")
)

// AggregatePublicKeys sums public keys in G1. Invalid keys are skipped,
// matching the teacher's AggregatePublicKeys silently-skip behaviour —
// callers who need strict validation should use AggregatePublicKeysStrict.
func AggregatePublicKeys(pks []*PublicKey) *PublicKey {
	agg := bls12381.G1Identity()
	for _, pk := range pks {
		if pk == nil {
			continue
		}
		agg.Add(&agg, &pk.p)
	}
	return &PublicKey{p: agg}
}

// AggregatePublicKeysStrict aggregates public keys, rejecting the
// identity (an invalid BLS public key) among the inputs.
func AggregatePublicKeysStrict(pks []*PublicKey) (*PublicKey, error) {
	if len(pks) == 0 {
		return nil, ErrNoPubkeys
	}
	agg := bls12381.G1Identity()
	for _, pk := range pks {
		if pk == nil || pk.p.IsIdentity() {
			return nil, ErrInvalidPubkey
		}
		agg.Add(&agg, &pk.p)
	}
	return &PublicKey{p: agg}, nil
}

// AggregateSignatures sums signatures in G2.
func AggregateSignatures(sigs []*Signature) *Signature {
	agg := bls12381.G2Identity()
	for _, s := range sigs {
		if s == nil {
			continue
		}
		agg.Add(&agg, &s.p)
	}
	return &Signature{p: agg}
}

// FastAggregateVerify verifies an aggregate signature where every signer
// signed the identical message: aggregate the public keys first, then run
// one ordinary Verify.
func FastAggregateVerify(pks []*PublicKey, msg []byte, aggSig *Signature) bool {
	if len(pks) == 0 {
		return false
	}
	agg := AggregatePublicKeys(pks)
	if agg.p.IsIdentity() {
		return false
	}
	return Verify(agg, msg, aggSig)
}

// VerifyAggregate verifies an aggregate signature where each signer signed
// a distinct message: checks
//
//	prod_i e(pk_i, H(m_i)) * e(-G1, aggSig) == 1
//
// in a single shared final exponentiation, following the teacher's
// VerifyAggregate / AggregateVerifyDistinct.
func VerifyAggregate(pks []*PublicKey, msgs [][]byte, aggSig *Signature) bool {
	if len(pks) == 0 || len(pks) != len(msgs) {
		return false
	}
	g1Points := make([]bls12381.G1Affine, len(pks)+1)
	g2Points := make([]bls12381.G2Affine, len(pks)+1)

	for i, pk := range pks {
		if pk == nil || pk.p.IsIdentity() {
			return false
		}
		hm, err := bls12381.HashToCurveG2(msgs[i], DefaultDST)
		if err != nil {
			return false
		}
		g1Points[i] = pk.p.ToAffine()
		g2Points[i] = hm.ToAffine()
	}

	g1 := bls12381.G1Generator()
	var negG1 bls12381.G1Jacobian
	negG1.Neg(&g1)
	g1Points[len(pks)] = negG1.ToAffine()
	g2Points[len(pks)] = aggSig.p.ToAffine()

	result := bls12381.MultiPairing(g1Points, g2Points)
	return result.Equal(bls12381.Fp12One())
}

// ProofOfPossession is a signature over the signer's own serialized public
// key, proving possession of the matching secret key and guarding
// aggregate verification against rogue-key attacks.
type ProofOfPossession struct {
	sig Signature
}

// GeneratePoP signs the holder's own public key under DSTPoPMessage.
func GeneratePoP(sk *SecretKey) (*ProofOfPossession, error) {
	pk := sk.PublicKey()
	pkBytes := pk.Bytes()
	sig, err := SignWithDST(sk, pkBytes[:], DSTPoPMessage)
	if err != nil {
		return nil, err
	}
	return &ProofOfPossession{sig: *sig}, nil
}

// VerifyPoP checks a proof of possession against a public key.
func VerifyPoP(pk *PublicKey, pop *ProofOfPossession) bool {
	if pk.p.IsIdentity() {
		return false
	}
	pkBytes := pk.Bytes()
	return VerifyWithDST(pk, pkBytes[:], &pop.sig, DSTPoPMessage)
}

// FastAggregateVerifyWithPoP verifies an aggregate signature over a shared
// message, requiring a valid proof of possession for every signer before
// its key is folded into the aggregate — preventing rogue-key attacks
// without needing a POP-DST signature scheme baked into the base protocol.
func FastAggregateVerifyWithPoP(pks []*PublicKey, pops []*ProofOfPossession, msg []byte, aggSig *Signature) bool {
	if len(pks) == 0 || len(pks) != len(pops) {
		return false
	}
	for i, pk := range pks {
		if !VerifyPoP(pk, pops[i]) {
			return false
		}
	}
	return FastAggregateVerify(pks, msg, aggSig)
}

// ComputeSigningRoot combines a domain and a message root into the value
// actually signed by validators, per the beacon chain spec:
// signing_root = SHA-256(domain || message_root).
func ComputeSigningRoot(domain [32]byte, messageRoot [32]byte) [32]byte {
	h := sha256.New()
	h.Write(domain[:])
	h.Write(messageRoot[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ComputeDomain computes the beacon chain signing domain:
// domain = domain_type(4) || SHA-256(fork_version || genesis_validators_root)[:28].
func ComputeDomain(domainType [4]byte, forkVersion [4]byte, genesisValidatorsRoot [32]byte) [32]byte {
	h := sha256.New()
	h.Write(forkVersion[:])
	h.Write(genesisValidatorsRoot[:])
	forkDataRoot := h.Sum(nil)

	var domain [32]byte
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}
