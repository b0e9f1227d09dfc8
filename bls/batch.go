package bls

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"

	"github.com/eth2030/curvecore/bls12381"
	"github.com/eth2030/curvecore/taskpool"
)

// --- Random-linear-combination batch verification ---

// signatureSetEntry is one verification request inside a SignatureSet.
type signatureSetEntry struct {
	pk  *PublicKey
	msg []byte
	sig *Signature
}

// SignatureSet batches multiple (pubkey, message, signature) verification
// requests into a single random-linear-combination pairing check,
// grounded on the teacher's bls_aggregate_extended.go BLSSignatureSet:
//
//	e(sum(r_i * pk_i), H(m_i)) ... * e(-G1, sum(r_i * sig_i)) == 1
//
// Random coefficients r_i prevent an attacker who controls several of the
// inputs from forging a combination that passes despite one individual
// signature being invalid.
type SignatureSet struct {
	mu      sync.Mutex
	entries []signatureSetEntry
}

// NewSignatureSet creates an empty signature set.
func NewSignatureSet() *SignatureSet {
	return &SignatureSet{}
}

// Add appends a verification request to the set.
func (ss *SignatureSet) Add(pk *PublicKey, msg []byte, sig *Signature) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.entries = append(ss.entries, signatureSetEntry{pk: pk, msg: msg, sig: sig})
}

// Len reports the number of entries currently in the set.
func (ss *SignatureSet) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.entries)
}

// Verify checks every entry in the set via one random-linear-combination
// multi-pairing call. A single invalid signature fails the whole batch.
func (ss *SignatureSet) Verify() bool {
	ss.mu.Lock()
	entries := append([]signatureSetEntry(nil), ss.entries...)
	ss.mu.Unlock()

	n := len(entries)
	if n == 0 {
		return false
	}
	if n == 1 {
		return Verify(entries[0].pk, entries[0].msg, entries[0].sig)
	}

	g1Points := make([]bls12381.G1Affine, n+1)
	g2Points := make([]bls12381.G2Affine, n+1)
	aggSig := bls12381.G2Identity()

	for i, e := range entries {
		if e.pk == nil || e.pk.p.IsIdentity() {
			return false
		}
		if e.sig == nil {
			return false
		}
		coeff := randomScalar()

		var scaledPK bls12381.G1Jacobian
		scaledPK.ScalarMulGLV(&e.pk.p, coeff)
		g1Points[i] = scaledPK.ToAffine()

		hm, err := bls12381.HashToCurveG2(e.msg, DefaultDST)
		if err != nil {
			return false
		}
		g2Points[i] = hm.ToAffine()

		var scaledSig bls12381.G2Jacobian
		scaledSig.ScalarMulBig(&e.sig.p, coeff)
		aggSig.Add(&aggSig, &scaledSig)
	}

	g1 := bls12381.G1Generator()
	var negG1 bls12381.G1Jacobian
	negG1.Neg(&g1)
	g1Points[n] = negG1.ToAffine()
	g2Points[n] = aggSig.ToAffine()

	result := bls12381.MultiPairing(g1Points, g2Points)
	return result.Equal(bls12381.Fp12One())
}

// VerifyWithPool is Verify with per-entry coefficient scaling and
// hash-to-curve work sharded across pool (spec.md section 4.N lists batch
// verification among the named parallel entry points). Each worker writes
// only to its own slice slots, so the fan-out needs no locking; the final
// multi-pairing combination still runs once, sequentially, over the
// gathered per-entry points.
func (ss *SignatureSet) VerifyWithPool(pool *taskpool.Pool) bool {
	ss.mu.Lock()
	entries := append([]signatureSetEntry(nil), ss.entries...)
	ss.mu.Unlock()

	n := len(entries)
	if n == 0 {
		return false
	}
	if n == 1 {
		return Verify(entries[0].pk, entries[0].msg, entries[0].sig)
	}

	g1Points := make([]bls12381.G1Affine, n+1)
	g2Points := make([]bls12381.G2Affine, n+1)
	sigShares := make([]bls12381.G2Jacobian, n)
	ok := make([]bool, n)

	err := pool.ParallelFor(n, func(i int) error {
		e := entries[i]
		if e.pk == nil || e.pk.p.IsIdentity() || e.sig == nil {
			ok[i] = false
			return nil
		}
		coeff := randomScalar()

		var scaledPK bls12381.G1Jacobian
		scaledPK.ScalarMulGLV(&e.pk.p, coeff)
		g1Points[i] = scaledPK.ToAffine()

		hm, err := bls12381.HashToCurveG2(e.msg, DefaultDST)
		if err != nil {
			ok[i] = false
			return nil
		}
		g2Points[i] = hm.ToAffine()

		var scaledSig bls12381.G2Jacobian
		scaledSig.ScalarMulBig(&e.sig.p, coeff)
		sigShares[i] = scaledSig
		ok[i] = true
		return nil
	})
	if err != nil {
		return false
	}
	for _, v := range ok {
		if !v {
			return false
		}
	}

	aggSig := bls12381.G2Identity()
	for i := range sigShares {
		aggSig.Add(&aggSig, &sigShares[i])
	}

	g1 := bls12381.G1Generator()
	var negG1 bls12381.G1Jacobian
	negG1.Neg(&g1)
	g1Points[n] = negG1.ToAffine()
	g2Points[n] = aggSig.ToAffine()

	result := bls12381.MultiPairing(g1Points, g2Points)
	return result.Equal(bls12381.Fp12One())
}

// randomScalar draws a random 128-bit coefficient for batch verification.
// 128 bits of randomness bounds the probability that a forged batch
// passes at under 2^-128, the same sizing the teacher's randomScalar uses.
func randomScalar() *big.Int {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return big.NewInt(1)
	}
	s := new(big.Int).SetBytes(buf)
	if s.Sign() == 0 {
		s.SetInt64(1)
	}
	return s
}

// --- Batch aggregator: a mutex-protected, tag-deduplicated job queue ---

var (
	ErrBatchEmpty        = errors.New("bls: batch is empty")
	ErrBatchAlreadyAdded = errors.New("bls: tag already added to batch")
	ErrBatchClosed       = errors.New("bls: batch is closed")
)

// BatchAggregator collects tagged verification requests from concurrent
// producers and verifies them all together on demand, deduplicating by an
// opaque tag so the same request submitted twice (e.g. a retried network
// message) is only counted once. Grounded on the teacher's
// BLSBatchAggregator in bls_aggregate_batch.go.
type BatchAggregator struct {
	mu     sync.Mutex
	seen   map[string]bool
	set    *SignatureSet
	closed bool
}

// NewBatchAggregator creates an empty batch aggregator.
func NewBatchAggregator() *BatchAggregator {
	return &BatchAggregator{
		seen: make(map[string]bool),
		set:  NewSignatureSet(),
	}
}

// Add enqueues a (pubkey, message, signature) entry under a dedup tag.
// Returns ErrBatchAlreadyAdded if the tag has already been added, or
// ErrBatchClosed once VerifyBatch has been called.
func (ba *BatchAggregator) Add(tag string, pk *PublicKey, msg []byte, sig *Signature) error {
	ba.mu.Lock()
	defer ba.mu.Unlock()
	if ba.closed {
		return ErrBatchClosed
	}
	if ba.seen[tag] {
		return ErrBatchAlreadyAdded
	}
	ba.seen[tag] = true
	ba.set.Add(pk, msg, sig)
	return nil
}

// VerifyBatch closes the aggregator to further additions and verifies
// everything collected so far in a single random-linear-combination check.
func (ba *BatchAggregator) VerifyBatch() (bool, error) {
	ba.mu.Lock()
	ba.closed = true
	n := ba.set.Len()
	ba.mu.Unlock()

	if n == 0 {
		return false, ErrBatchEmpty
	}
	return ba.set.Verify(), nil
}

// --- Weighted public key aggregation ---

// WeightedPubkey pairs a public key with an effective-balance-style
// weight, for committee aggregation where validators contribute
// proportionally to stake rather than equally.
type WeightedPubkey struct {
	PubKey *PublicKey
	Weight uint64
}

var ErrWeightZero = errors.New("bls: total weight is zero")

// AggregateWeightedPubkeys computes sum(weight_i * pk_i) in G1. Used where
// a committee's effective aggregate key must reflect per-signer weight
// rather than simple unweighted aggregation, grounded on the teacher's
// WeightedPubkey / AggregateWeightedPubkeys in bls_aggregate_batch.go.
func AggregateWeightedPubkeys(wpks []WeightedPubkey) (*PublicKey, error) {
	var totalWeight uint64
	for _, w := range wpks {
		totalWeight += w.Weight
	}
	if totalWeight == 0 {
		return nil, ErrWeightZero
	}

	agg := bls12381.G1Identity()
	for _, w := range wpks {
		if w.Weight == 0 {
			continue
		}
		var scaled bls12381.G1Jacobian
		scaled.ScalarMulGLV(&w.PubKey.p, new(big.Int).SetUint64(w.Weight))
		agg.Add(&agg, &scaled)
	}
	return &PublicKey{p: agg}, nil
}

// --- Streaming aggregation ---

// IncrementalAggregator accumulates a running aggregate signature and
// aggregate public key as signers are observed one at a time (e.g. as
// attestations arrive over the network), deduplicating repeated public
// keys so the same signer is never folded in twice.
type IncrementalAggregator struct {
	mu      sync.Mutex
	sig     bls12381.G2Jacobian
	pk      bls12381.G1Jacobian
	seenPks map[[PubkeySize]byte]bool
	count   int
}

// NewIncrementalAggregator creates an empty streaming aggregator.
func NewIncrementalAggregator() *IncrementalAggregator {
	return &IncrementalAggregator{
		sig:     bls12381.G2Identity(),
		pk:      bls12381.G1Identity(),
		seenPks: make(map[[PubkeySize]byte]bool),
	}
}

// Add folds in one signer's public key and signature. Returns false
// (without error) if the public key has already been added.
func (ia *IncrementalAggregator) Add(pk *PublicKey, sig *Signature) bool {
	ia.mu.Lock()
	defer ia.mu.Unlock()
	key := pk.Bytes()
	if ia.seenPks[key] {
		return false
	}
	ia.seenPks[key] = true
	ia.sig.Add(&ia.sig, &sig.p)
	ia.pk.Add(&ia.pk, &pk.p)
	ia.count++
	return true
}

// Count returns the number of distinct signers folded in so far.
func (ia *IncrementalAggregator) Count() int {
	ia.mu.Lock()
	defer ia.mu.Unlock()
	return ia.count
}

// Snapshot returns the current aggregate public key and signature without
// resetting the accumulator.
func (ia *IncrementalAggregator) Snapshot() (*PublicKey, *Signature) {
	ia.mu.Lock()
	defer ia.mu.Unlock()
	return &PublicKey{p: ia.pk}, &Signature{p: ia.sig}
}

// --- Threshold signature assembly ---

var (
	ErrThresholdNotMet   = errors.New("bls: threshold not met")
	ErrThresholdBadShare = errors.New("bls: duplicate or invalid signer index")
)

// ThresholdAssembler collects partial signatures indexed by signer and
// reports when a quorum threshold has been reached, for threshold-BLS
// schemes where any `threshold` of `n` partial signatures can be combined
// (e.g. via Lagrange-weighted aggregation performed by the caller once
// the threshold is met; this type only tracks collection and signals
// readiness, matching the scope of the teacher's ThresholdAssembler).
type ThresholdAssembler struct {
	mu        sync.Mutex
	threshold int
	shares    map[int]*Signature
}

// NewThresholdAssembler creates an assembler requiring `threshold` shares.
func NewThresholdAssembler(threshold int) *ThresholdAssembler {
	return &ThresholdAssembler{
		threshold: threshold,
		shares:    make(map[int]*Signature),
	}
}

// AddShare records signerIndex's partial signature. Returns
// ErrThresholdBadShare if that index has already submitted a share.
func (ta *ThresholdAssembler) AddShare(signerIndex int, sig *Signature) error {
	ta.mu.Lock()
	defer ta.mu.Unlock()
	if _, ok := ta.shares[signerIndex]; ok {
		return ErrThresholdBadShare
	}
	ta.shares[signerIndex] = sig
	return nil
}

// Ready reports whether enough shares have been collected to meet the
// threshold.
func (ta *ThresholdAssembler) Ready() bool {
	ta.mu.Lock()
	defer ta.mu.Unlock()
	return len(ta.shares) >= ta.threshold
}

// Shares returns a snapshot of the collected signer-index -> signature
// map, or ErrThresholdNotMet if the threshold has not yet been reached.
func (ta *ThresholdAssembler) Shares() (map[int]*Signature, error) {
	ta.mu.Lock()
	defer ta.mu.Unlock()
	if len(ta.shares) < ta.threshold {
		return nil, ErrThresholdNotMet
	}
	out := make(map[int]*Signature, len(ta.shares))
	for k, v := range ta.shares {
		out[k] = v
	}
	return out, nil
}
