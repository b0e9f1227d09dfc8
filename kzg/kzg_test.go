package kzg

import (
	"math/big"
	"testing"

	"github.com/eth2030/curvecore/bls12381"
	"github.com/eth2030/curvecore/taskpool"
)

func sequentialBlob(t *testing.T, n int) *Blob {
	t.Helper()
	if n != FieldElementsPerBlob {
		t.Fatalf("unexpected domain size %d", n)
	}
	var b Blob
	for i := 0; i < n; i++ {
		f := bls12381.FrFromUint64(uint64(i))
		bytes := f.BytesBE()
		b[i] = bytes
	}
	return &b
}

func TestRootOfUnityOrder(t *testing.T) {
	w, err := rootOfUnity(FieldElementsPerBlob)
	if err != nil {
		t.Fatal(err)
	}
	wn := frPowUint(w, FieldElementsPerBlob)
	if !wn.Equal(bls12381.FrOne()) {
		t.Fatal("root of unity does not have the expected order")
	}
}

func TestBlobToCommitmentAndProof(t *testing.T) {
	setup, err := BuildTestSetup(FieldElementsPerBlob, big.NewInt(12345))
	if err != nil {
		t.Fatal(err)
	}
	blob := sequentialBlob(t, FieldElementsPerBlob)

	commitment, err := BlobToCommitment(setup, blob)
	if err != nil {
		t.Fatal(err)
	}

	z := bls12381.FrFromUint64(7)
	y, proof, err := ComputeKZGProof(setup, blob, z)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyKZGProof(setup, commitment, z, y, proof) {
		t.Fatal("valid KZG proof failed to verify")
	}

	var wrongY bls12381.Fr
	one := bls12381.FrOne()
	wrongY.Add(&y, &one)
	if VerifyKZGProof(setup, commitment, z, wrongY, proof) {
		t.Fatal("proof verified against a tampered evaluation")
	}
}

func TestBlobKZGProofRoundTrip(t *testing.T) {
	setup, err := BuildTestSetup(FieldElementsPerBlob, big.NewInt(999))
	if err != nil {
		t.Fatal(err)
	}
	blob := sequentialBlob(t, FieldElementsPerBlob)

	commitment, err := BlobToCommitment(setup, blob)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := ComputeBlobKZGProof(setup, blob, commitment)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyBlobKZGProof(setup, blob, commitment, proof) {
		t.Fatal("blob KZG proof failed to verify")
	}

	var tampered Blob = *blob
	tb := tampered[0]
	tb[31] ^= 1
	tampered[0] = tb
	if VerifyBlobKZGProof(setup, &tampered, commitment, proof) {
		t.Fatal("blob KZG proof verified against a tampered blob")
	}
}

func TestVerifyBlobKZGProofBatch(t *testing.T) {
	setup, err := BuildTestSetup(FieldElementsPerBlob, big.NewInt(42))
	if err != nil {
		t.Fatal(err)
	}

	const batchSize = 4
	var blobs []*Blob
	var commitments []*Commitment
	var proofs []*Proof
	var blinding []bls12381.Fr

	for i := 0; i < batchSize; i++ {
		var b Blob
		for j := range b {
			f := bls12381.FrFromUint64(uint64(i*FieldElementsPerBlob + j))
			b[j] = f.BytesBE()
		}
		commitment, err := BlobToCommitment(setup, &b)
		if err != nil {
			t.Fatal(err)
		}
		proof, err := ComputeBlobKZGProof(setup, &b, commitment)
		if err != nil {
			t.Fatal(err)
		}
		blobs = append(blobs, &b)
		commitments = append(commitments, commitment)
		proofs = append(proofs, proof)
		blinding = append(blinding, bls12381.FrFromUint64(uint64(i+1)))
	}

	if !VerifyBlobKZGProofBatch(setup, blobs, commitments, proofs, blinding) {
		t.Fatal("valid batch failed to verify")
	}

	badBlob := *blobs[0]
	bb := badBlob[0]
	bb[31] ^= 1
	badBlob[0] = bb
	blobs[0] = &badBlob
	if VerifyBlobKZGProofBatch(setup, blobs, commitments, proofs, blinding) {
		t.Fatal("batch verification passed despite a tampered blob")
	}
}

func TestVerifyBlobKZGProofBatchParallel(t *testing.T) {
	setup, err := BuildTestSetup(FieldElementsPerBlob, big.NewInt(43))
	if err != nil {
		t.Fatal(err)
	}

	const batchSize = 6
	var blobs []*Blob
	var commitments []*Commitment
	var proofs []*Proof
	var blinding []bls12381.Fr

	for i := 0; i < batchSize; i++ {
		var b Blob
		for j := range b {
			f := bls12381.FrFromUint64(uint64(i*FieldElementsPerBlob + j + 1))
			b[j] = f.BytesBE()
		}
		commitment, err := BlobToCommitment(setup, &b)
		if err != nil {
			t.Fatal(err)
		}
		proof, err := ComputeBlobKZGProof(setup, &b, commitment)
		if err != nil {
			t.Fatal(err)
		}
		blobs = append(blobs, &b)
		commitments = append(commitments, commitment)
		proofs = append(proofs, proof)
		blinding = append(blinding, bls12381.FrFromUint64(uint64(i+2)))
	}

	pool := taskpool.New(3)
	defer pool.Shutdown()

	if !VerifyBlobKZGProofBatchParallel(pool, setup, blobs, commitments, proofs, blinding) {
		t.Fatal("valid batch failed parallel verification")
	}

	badBlob := *blobs[0]
	bb := badBlob[0]
	bb[31] ^= 1
	badBlob[0] = bb
	blobs[0] = &badBlob
	if VerifyBlobKZGProofBatchParallel(pool, setup, blobs, commitments, proofs, blinding) {
		t.Fatal("parallel batch verification passed despite a tampered blob")
	}
}

func TestCommitmentCodecRoundTrip(t *testing.T) {
	setup, err := BuildTestSetup(FieldElementsPerBlob, big.NewInt(7))
	if err != nil {
		t.Fatal(err)
	}
	blob := sequentialBlob(t, FieldElementsPerBlob)
	commitment, err := BlobToCommitment(setup, blob)
	if err != nil {
		t.Fatal(err)
	}
	b := commitment.Bytes()
	decoded, err := CommitmentFromBytes(b[:])
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bytes() != b {
		t.Fatal("commitment did not round-trip through its compressed encoding")
	}
}

func TestCeremonyAccumulateAndConvert(t *testing.T) {
	const degree = 15 // degree+1 = 16, a power of two domain for Lagrange conversion
	ceremony, err := NewCeremony(degree, 0)
	if err != nil {
		t.Fatal(err)
	}

	contrib1 := GenerateContribution("alice", big.NewInt(111), ceremony.CurrentPowersG1(), ceremony.CurrentPowersG2(), ceremony.Round())
	if err := ceremony.AccumulateContribution(contrib1); err != nil {
		t.Fatal(err)
	}
	contrib2 := GenerateContribution("bob", big.NewInt(222), ceremony.CurrentPowersG1(), ceremony.CurrentPowersG2(), ceremony.Round())
	if err := ceremony.AccumulateContribution(contrib2); err != nil {
		t.Fatal(err)
	}
	if err := ceremony.AccumulateContribution(contrib2); err != ErrCeremonyDuplicate {
		t.Fatalf("expected ErrCeremonyDuplicate, got %v", err)
	}

	result, err := ceremony.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if result.NumContributions != 2 {
		t.Fatalf("expected 2 contributions, got %d", result.NumContributions)
	}

	setup, err := MonomialToLagrangeSetup(result)
	if err != nil {
		t.Fatal(err)
	}
	if setup.N != degree+1 {
		t.Fatalf("expected setup size %d, got %d", degree+1, setup.N)
	}

	var blob [16][32]byte
	for i := range blob {
		f := bls12381.FrFromUint64(uint64(i + 1))
		blob[i] = f.BytesBE()
	}
	frs := make([]bls12381.Fr, 16)
	for i := range blob {
		f, ok := bls12381.FrFromBytesBE(blob[i][:])
		if !ok {
			t.Fatal("unexpected non-canonical test element")
		}
		frs[i] = f
	}
	commitment := bls12381.MSMG1(setup.G1Lagrange, frs)
	if commitment.IsIdentity() {
		t.Fatal("commitment derived from ceremony setup collapsed to identity")
	}
}
