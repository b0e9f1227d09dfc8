package bls

import (
	"github.com/eth2030/curvecore/bls12381"
)

// DefaultDST is the Ethereum consensus-layer domain separation tag for
// the "proof of possession" BLS scheme, matching the teacher's
// blsSignDST / BLSSignatureDST constant.
var DefaultDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

// Sign signs msg under the default DST, returning a point in G2.
func Sign(sk *SecretKey, msg []byte) (*Signature, error) {
	return SignWithDST(sk, msg, DefaultDST)
}

// SignWithDST signs msg under an explicit domain separation tag, letting
// callers use distinct DSTs per protocol context (attestations, block
// proposals, sync committee messages, RANDAO reveals, voluntary exits —
// see the DST* constants in aggregate.go), the way the teacher's
// bls_aggregate_extended.go SignWithDST/VerifyWithDST do.
func SignWithDST(sk *SecretKey, msg []byte, dst []byte) (*Signature, error) {
	hm, err := bls12381.HashToCurveG2(msg, dst)
	if err != nil {
		return nil, err
	}
	var sig bls12381.G2Jacobian
	s := sk.s
	sig.ScalarMulCT(&hm, &s)
	return &Signature{p: sig}, nil
}

// Verify checks a single signature under the default DST:
// e(pk, H(m)) == e(G1, sig).
func Verify(pk *PublicKey, msg []byte, sig *Signature) bool {
	return VerifyWithDST(pk, msg, sig, DefaultDST)
}

// VerifyWithDST checks a single signature under an explicit DST.
func VerifyWithDST(pk *PublicKey, msg []byte, sig *Signature, dst []byte) bool {
	if pk.p.IsIdentity() {
		return false
	}
	hm, err := bls12381.HashToCurveG2(msg, dst)
	if err != nil {
		return false
	}
	pka := pk.p.ToAffine()
	hma := hm.ToAffine()
	siga := sig.p.ToAffine()
	g1 := bls12381.G1Generator()
	g1a := g1.ToAffine()
	return bls12381.PairingsEqual(&pka, &hma, &g1a, &siga)
}
