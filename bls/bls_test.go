package bls

import (
	"bytes"
	"testing"

	"github.com/eth2030/curvecore/taskpool"
)

func mustKey(t *testing.T, seedByte byte) *SecretKey {
	t.Helper()
	seed := bytes.Repeat([]byte{seedByte}, 32)
	sk, err := KeyGen(seed)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	return sk
}

func TestSignVerifyRoundTrip(t *testing.T) {
	sk := mustKey(t, 1)
	pk := sk.PublicKey()
	msg := []byte("hello bls")

	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(pk, msg, sig) {
		t.Fatal("signature failed to verify")
	}
	if Verify(pk, []byte("wrong message"), sig) {
		t.Fatal("signature verified against the wrong message")
	}
}

func TestPublicKeySignatureCodecRoundTrip(t *testing.T) {
	sk := mustKey(t, 2)
	pk := sk.PublicKey()
	sig, err := Sign(sk, []byte("codec test"))
	if err != nil {
		t.Fatal(err)
	}

	pkBytes := pk.Bytes()
	pk2, ok := PublicKeyFromBytes(pkBytes[:])
	if !ok {
		t.Fatal("PublicKeyFromBytes rejected a valid key")
	}
	if pk2.Bytes() != pkBytes {
		t.Fatal("public key did not round-trip")
	}

	sigBytes := sig.Bytes()
	sig2, ok := SignatureFromBytes(sigBytes[:])
	if !ok {
		t.Fatal("SignatureFromBytes rejected a valid signature")
	}
	if sig2.Bytes() != sigBytes {
		t.Fatal("signature did not round-trip")
	}
}

func TestFastAggregateVerify(t *testing.T) {
	msg := []byte("same message for everyone")
	var pks []*PublicKey
	var sigs []*Signature
	for i := byte(1); i <= 5; i++ {
		sk := mustKey(t, i)
		pk := sk.PublicKey()
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatal(err)
		}
		pks = append(pks, pk)
		sigs = append(sigs, sig)
	}
	aggSig := AggregateSignatures(sigs)
	if !FastAggregateVerify(pks, msg, aggSig) {
		t.Fatal("FastAggregateVerify failed on valid aggregate")
	}
	if FastAggregateVerify(pks, []byte("different message"), aggSig) {
		t.Fatal("FastAggregateVerify passed with the wrong message")
	}
}

func TestVerifyAggregateDistinctMessages(t *testing.T) {
	var pks []*PublicKey
	var sigs []*Signature
	var msgs [][]byte
	for i := byte(1); i <= 4; i++ {
		sk := mustKey(t, i+10)
		pk := sk.PublicKey()
		msg := []byte{'m', 's', 'g', i}
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatal(err)
		}
		pks = append(pks, pk)
		sigs = append(sigs, sig)
		msgs = append(msgs, msg)
	}
	aggSig := AggregateSignatures(sigs)
	if !VerifyAggregate(pks, msgs, aggSig) {
		t.Fatal("VerifyAggregate failed on valid distinct-message aggregate")
	}
	msgs[0] = []byte("tampered")
	if VerifyAggregate(pks, msgs, aggSig) {
		t.Fatal("VerifyAggregate passed after tampering with a message")
	}
}

func TestProofOfPossession(t *testing.T) {
	sk := mustKey(t, 42)
	pk := sk.PublicKey()
	pop, err := GeneratePoP(sk)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPoP(pk, pop) {
		t.Fatal("valid proof of possession rejected")
	}

	other := mustKey(t, 43).PublicKey()
	if VerifyPoP(other, pop) {
		t.Fatal("proof of possession verified against the wrong key")
	}
}

func TestSignatureSetBatchVerify(t *testing.T) {
	set := NewSignatureSet()
	for i := byte(1); i <= 6; i++ {
		sk := mustKey(t, i+20)
		pk := sk.PublicKey()
		msg := []byte{'b', 'a', 't', 'c', 'h', i}
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatal(err)
		}
		set.Add(pk, msg, sig)
	}
	if !set.Verify() {
		t.Fatal("valid signature set failed batch verification")
	}

	badSk := mustKey(t, 99)
	badPk := badSk.PublicKey()
	badSig, _ := Sign(badSk, []byte("unrelated"))
	set.Add(badPk, []byte("different from what was signed"), badSig)
	if set.Verify() {
		t.Fatal("batch verification passed despite one forged entry")
	}
}

func TestSignatureSetVerifyWithPool(t *testing.T) {
	pool := taskpool.New(4)
	defer pool.Shutdown()

	set := NewSignatureSet()
	for i := byte(1); i <= 6; i++ {
		sk := mustKey(t, i+60)
		pk := sk.PublicKey()
		msg := []byte{'p', 'o', 'o', 'l', i}
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatal(err)
		}
		set.Add(pk, msg, sig)
	}
	if !set.VerifyWithPool(pool) {
		t.Fatal("valid signature set failed pooled batch verification")
	}

	badSk := mustKey(t, 199)
	badPk := badSk.PublicKey()
	badSig, _ := Sign(badSk, []byte("unrelated"))
	set.Add(badPk, []byte("different from what was signed"), badSig)
	if set.VerifyWithPool(pool) {
		t.Fatal("pooled batch verification passed despite one forged entry")
	}
}

func TestBatchAggregatorDedup(t *testing.T) {
	ba := NewBatchAggregator()
	sk := mustKey(t, 7)
	pk := sk.PublicKey()
	msg := []byte("dedup test")
	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatal(err)
	}

	if err := ba.Add("tag-1", pk, msg, sig); err != nil {
		t.Fatal(err)
	}
	if err := ba.Add("tag-1", pk, msg, sig); err != ErrBatchAlreadyAdded {
		t.Fatalf("expected ErrBatchAlreadyAdded, got %v", err)
	}

	ok, err := ba.VerifyBatch()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("batch aggregator failed to verify a single valid entry")
	}
}

func TestWeightedPubkeyAggregation(t *testing.T) {
	var wpks []WeightedPubkey
	for i := byte(1); i <= 3; i++ {
		sk := mustKey(t, i+30)
		wpks = append(wpks, WeightedPubkey{PubKey: sk.PublicKey(), Weight: uint64(i) * 32})
	}
	agg, err := AggregateWeightedPubkeys(wpks)
	if err != nil {
		t.Fatal(err)
	}
	if agg.p.IsIdentity() {
		t.Fatal("weighted aggregate collapsed to identity")
	}
}

func TestIncrementalAggregatorDedup(t *testing.T) {
	ia := NewIncrementalAggregator()
	msg := []byte("streamed attestation")
	sk := mustKey(t, 55)
	pk := sk.PublicKey()
	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !ia.Add(pk, sig) {
		t.Fatal("first Add should succeed")
	}
	if ia.Add(pk, sig) {
		t.Fatal("duplicate Add should be rejected")
	}
	if ia.Count() != 1 {
		t.Fatalf("expected count 1, got %d", ia.Count())
	}
	aggPk, aggSig := ia.Snapshot()
	if !FastAggregateVerify([]*PublicKey{aggPk}, msg, aggSig) {
		t.Fatal("incremental aggregator snapshot failed to verify")
	}
}

func TestThresholdAssembler(t *testing.T) {
	ta := NewThresholdAssembler(2)
	sk := mustKey(t, 88)
	sig, err := Sign(sk, []byte("threshold"))
	if err != nil {
		t.Fatal(err)
	}
	if ta.Ready() {
		t.Fatal("assembler should not be ready with zero shares")
	}
	if err := ta.AddShare(0, sig); err != nil {
		t.Fatal(err)
	}
	if ta.Ready() {
		t.Fatal("assembler should not be ready with one of two required shares")
	}
	if err := ta.AddShare(1, sig); err != nil {
		t.Fatal(err)
	}
	if !ta.Ready() {
		t.Fatal("assembler should be ready once the threshold is met")
	}
	if err := ta.AddShare(0, sig); err != ErrThresholdBadShare {
		t.Fatalf("expected ErrThresholdBadShare, got %v", err)
	}
}
