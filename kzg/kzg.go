package kzg

import (
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/eth2030/curvecore/bls12381"
	"github.com/eth2030/curvecore/taskpool"
)

// frToBigInt converts an Fr element to its plain big.Int representative,
// for the handful of call sites (batch blinding scalars) that need the
// variable-time ScalarMulGLV/ScalarMulBig entry points instead of the
// constant-time Fr-typed ScalarMulCT.
func frToBigInt(f bls12381.Fr) *big.Int {
	b := f.BytesBE()
	return new(big.Int).SetBytes(b[:])
}

// CommitmentSize and ProofSize are the compressed G1 wire sizes (spec.md
// section 6's 48-byte compressed point format).
const (
	CommitmentSize = 48
	ProofSize      = 48
	ElementSize    = 32
)

var (
	ErrBlobLength     = errors.New("kzg: blob has the wrong number of field elements")
	ErrFieldElement   = errors.New("kzg: field element is not canonically < r")
	ErrLengthMismatch = errors.New("kzg: blobs/commitments/proofs/scalars length mismatch")
	ErrBadCommitment  = errors.New("kzg: malformed or off-curve commitment")
	ErrBadProof       = errors.New("kzg: malformed or off-curve proof")
)

// Blob is a sequence of FieldElementsPerBlob big-endian scalar-field
// elements, the canonical EIP-4844 wire representation (spec.md section
// 3/6). Each chunk must be < r; ToFrElements enforces this.
type Blob [FieldElementsPerBlob][ElementSize]byte

// ToFrElements decodes every chunk in the blob into Fr, rejecting any
// chunk that is not canonically reduced (>= r).
func (b *Blob) ToFrElements() ([FieldElementsPerBlob]bls12381.Fr, error) {
	var out [FieldElementsPerBlob]bls12381.Fr
	for i := range b {
		f, ok := bls12381.FrFromBytesBE(b[i][:])
		if !ok {
			return out, ErrFieldElement
		}
		out[i] = f
	}
	return out, nil
}

// Commitment is a KZG polynomial commitment, a point in G1.
type Commitment struct {
	p bls12381.G1Jacobian
}

func (c *Commitment) Bytes() [CommitmentSize]byte {
	aff := c.p.ToAffine()
	return bls12381.CompressG1(&aff)
}

// CommitmentFromBytes decodes a compressed commitment, rejecting
// off-curve points but not checking subgroup membership or non-identity
// — every point in G1's Lagrange-basis span is automatically in the
// order-r subgroup, so this matches DecompressG1's own contract.
func CommitmentFromBytes(b []byte) (*Commitment, error) {
	aff, ok := bls12381.DecompressG1(b)
	if !ok || !aff.IsOnCurve() {
		return nil, ErrBadCommitment
	}
	var p bls12381.G1Jacobian
	p.FromAffine(&aff)
	return &Commitment{p: p}, nil
}

// Proof is a KZG opening proof, a point in G1.
type Proof struct {
	p bls12381.G1Jacobian
}

func (pr *Proof) Bytes() [ProofSize]byte {
	aff := pr.p.ToAffine()
	return bls12381.CompressG1(&aff)
}

func ProofFromBytes(b []byte) (*Proof, error) {
	aff, ok := bls12381.DecompressG1(b)
	if !ok || !aff.IsOnCurve() {
		return nil, ErrBadProof
	}
	var p bls12381.G1Jacobian
	p.FromAffine(&aff)
	return &Proof{p: p}, nil
}

// BlobToCommitment computes blob_to_commitment(blob) = sum(blob[i] * L_i),
// an MSM over the trusted setup's Lagrange basis (spec.md section 4.M) —
// delegated to bls12381.MSMG1, the same parallelizable Pippenger MSM used
// throughout the rest of the arithmetic core.
func BlobToCommitment(setup *Setup, blob *Blob) (*Commitment, error) {
	frs, err := blob.ToFrElements()
	if err != nil {
		return nil, err
	}
	if setup.N != len(frs) {
		return nil, ErrBlobLength
	}
	p := bls12381.MSMG1(setup.G1Lagrange, frs[:])
	return &Commitment{p: p}, nil
}

// evaluatePolynomial evaluates, via barycentric interpolation, the unique
// degree-(n-1) polynomial whose values on the roots-of-unity domain are
// evals, at the point z:
//
//	p(z) = (z^n - 1)/n * sum_i evals[i]*w_i / (z - w_i)
//
// If z happens to land exactly on a domain point, p(z) is just that
// point's value (the domain-index return makes this explicit to callers
// that also need the quotient polynomial's diagonal term).
func evaluatePolynomial(evals []bls12381.Fr, domainPts []bls12381.Fr, z bls12381.Fr) (y bls12381.Fr, atIndex int) {
	for i, w := range domainPts {
		if w.Equal(z) {
			return evals[i], i
		}
	}

	n := len(evals)
	var sum bls12381.Fr
	for i, w := range domainPts {
		var diff, ratio, term bls12381.Fr
		diff.Sub(&z, &w)
		diff.Inv(&diff)
		ratio.Mul(&w, &diff)
		term.Mul(&evals[i], &ratio)
		sum.Add(&sum, &term)
	}

	zn := frPowUint(z, uint64(n))
	var znMinus1, nInv, coeff bls12381.Fr
	one := bls12381.FrOne()
	znMinus1.Sub(&zn, &one)
	nInv = bls12381.FrFromUint64(uint64(n))
	nInv.Inv(&nInv)
	coeff.Mul(&znMinus1, &nInv)
	y.Mul(&coeff, &sum)
	return y, -1
}

// quotientEvals computes q(w_i) = (p(w_i) - y) / (w_i - z) for every
// domain point, the pointwise evaluation-form quotient of
// q(X) = (p(X) - y)/(X - z) (spec.md section 4.M). When z itself is a
// domain point w_j (atIndex >= 0), X-z vanishes at w_j too, so q(w_j) is
// instead the derivative p'(w_j), computed via the standard barycentric
// differentiation identity for equally-weighted roots-of-unity nodes:
//
//	p'(w_j) = (1/w_j) * sum_{i != j} (w_i/(w_j - w_i)) * (p(w_i) - p(w_j))
func quotientEvals(evals []bls12381.Fr, domainPts []bls12381.Fr, z bls12381.Fr, y bls12381.Fr, atIndex int) []bls12381.Fr {
	n := len(evals)
	q := make([]bls12381.Fr, n)

	if atIndex < 0 {
		for i, w := range domainPts {
			var numer, denom, inv bls12381.Fr
			numer.Sub(&evals[i], &y)
			denom.Sub(&w, &z)
			inv.Inv(&denom)
			q[i].Mul(&numer, &inv)
		}
		return q
	}

	j := atIndex
	wj := domainPts[j]
	var wjInv bls12381.Fr
	wjInv.Inv(&wj)

	var sum bls12381.Fr
	for i, wi := range domainPts {
		if i == j {
			continue
		}
		var diff, ratio, delta, term bls12381.Fr
		diff.Sub(&wj, &wi)
		diff.Inv(&diff)
		ratio.Mul(&wi, &diff)
		delta.Sub(&evals[i], &y)
		term.Mul(&ratio, &delta)
		sum.Add(&sum, &term)
	}
	q[j].Mul(&wjInv, &sum)
	// Every other domain point still uses the ordinary pointwise ratio,
	// since X-z is nonzero there; only w_j needed the derivative formula.
	for i, w := range domainPts {
		if i == j {
			continue
		}
		var numer, denom, inv bls12381.Fr
		numer.Sub(&evals[i], &y)
		denom.Sub(&w, &z)
		inv.Inv(&denom)
		q[i].Mul(&numer, &inv)
	}
	return q
}

// ComputeKZGProof evaluates the blob's polynomial at z and commits to the
// quotient (blob, z) -> (y, proof), per compute_kzg_proof in spec.md
// section 4.M.
func ComputeKZGProof(setup *Setup, blob *Blob, z bls12381.Fr) (bls12381.Fr, *Proof, error) {
	frs, err := blob.ToFrElements()
	if err != nil {
		return bls12381.Fr{}, nil, err
	}
	if setup.N != len(frs) {
		return bls12381.Fr{}, nil, ErrBlobLength
	}
	y, atIndex := evaluatePolynomial(frs[:], setup.Domain, z)
	q := quotientEvals(frs[:], setup.Domain, z, y, atIndex)
	proofPoint := bls12381.MSMG1(setup.G1Lagrange, q)
	return y, &Proof{p: proofPoint}, nil
}

// VerifyKZGProof checks the pairing equation
//
//	e(C - [y]G1, G2) == e(proof, [s]G2 - [z]G2)
//
// per verify_kzg_proof in spec.md section 4.M.
func VerifyKZGProof(setup *Setup, commitment *Commitment, z, y bls12381.Fr, proof *Proof) bool {
	g1 := bls12381.G1Generator()
	var yG1, lhs bls12381.G1Jacobian
	yG1.ScalarMulCT(&g1, &y)
	lhs.Neg(&yG1)
	lhs.Add(&lhs, &commitment.p)

	g2Gen := setup.G2Gen()
	g2Tau := setup.G2Tau()

	var zG2, rhs bls12381.G2Jacobian
	zG2.ScalarMulCT(&g2Gen, &z)
	rhs.Neg(&zG2)
	rhs.Add(&rhs, &g2Tau)

	lhsAff := lhs.ToAffine()
	g2Aff := g2Gen.ToAffine()
	proofAff := proof.p.ToAffine()
	rhsAff := rhs.ToAffine()
	return bls12381.PairingsEqual(&lhsAff, &g2Aff, &proofAff, &rhsAff)
}

// deriveChallenge computes the Fiat-Shamir evaluation point
// z = SHA256(blob || commitment) mod r, shared by compute_blob_kzg_proof
// and verify_blob_kzg_proof so neither side can bias z relative to the
// committed polynomial.
func deriveChallenge(blob *Blob, commitmentBytes [CommitmentSize]byte) bls12381.Fr {
	h := sha256.New()
	for i := range blob {
		h.Write(blob[i][:])
	}
	h.Write(commitmentBytes[:])
	return bls12381.FrFromBytesReduced(h.Sum(nil))
}

// ComputeBlobKZGProof derives the Fiat-Shamir challenge from blob and
// commitment, then computes the opening proof at that point
// (compute_blob_kzg_proof, spec.md section 4.M).
func ComputeBlobKZGProof(setup *Setup, blob *Blob, commitment *Commitment) (*Proof, error) {
	z := deriveChallenge(blob, commitment.Bytes())
	_, proof, err := ComputeKZGProof(setup, blob, z)
	return proof, err
}

// VerifyBlobKZGProof verifies a single blob-commitment-proof triple by
// rederiving the same Fiat-Shamir challenge, evaluating the blob at that
// point, and checking the opening.
func VerifyBlobKZGProof(setup *Setup, blob *Blob, commitment *Commitment, proof *Proof) bool {
	frs, err := blob.ToFrElements()
	if err != nil {
		return false
	}
	z := deriveChallenge(blob, commitment.Bytes())
	y, _ := evaluatePolynomial(frs[:], setup.Domain, z)
	return VerifyKZGProof(setup, commitment, z, y, proof)
}

// VerifyBlobKZGProofBatch combines n blob-commitment-proof verifications
// into a single multi-pairing check using caller-supplied blinding
// scalars r_i (spec.md section 4.M's verify_blob_kzg_proof_batch):
//
//	e( sum_i r_i*(C_i - [y_i]G1) + sum_i (r_i*z_i)*proof_i , G2 )
//	  == e( sum_i r_i*proof_i , [s]G2 )
//
// A single invalid entry fails the whole batch with overwhelming
// probability, the same random-linear-combination technique used by
// bls.SignatureSet.
func VerifyBlobKZGProofBatch(setup *Setup, blobs []*Blob, commitments []*Commitment, proofs []*Proof, blindingScalars []bls12381.Fr) bool {
	n := len(blobs)
	if n == 0 || len(commitments) != n || len(proofs) != n || len(blindingScalars) != n {
		return false
	}

	g1Acc := bls12381.G1Identity()
	proofAcc := bls12381.G1Identity()
	g1 := bls12381.G1Generator()

	for i := 0; i < n; i++ {
		frs, err := blobs[i].ToFrElements()
		if err != nil {
			return false
		}
		cb := commitments[i].Bytes()
		z := deriveChallenge(blobs[i], cb)
		y, _ := evaluatePolynomial(frs[:], setup.Domain, z)

		var yG1, cMinusY bls12381.G1Jacobian
		yG1.ScalarMulCT(&g1, &y)
		cMinusY.Neg(&yG1)
		cMinusY.Add(&cMinusY, &commitments[i].p)

		r := blindingScalars[i]
		var rTimesCMinusY bls12381.G1Jacobian
		rTimesCMinusY.ScalarMulGLV(&cMinusY, frToBigInt(r))
		g1Acc.Add(&g1Acc, &rTimesCMinusY)

		var rz bls12381.Fr
		rz.Mul(&r, &z)
		var rzProof bls12381.G1Jacobian
		rzProof.ScalarMulGLV(&proofs[i].p, frToBigInt(rz))
		g1Acc.Add(&g1Acc, &rzProof)

		var rProof bls12381.G1Jacobian
		rProof.ScalarMulGLV(&proofs[i].p, frToBigInt(r))
		proofAcc.Add(&proofAcc, &rProof)
	}

	g2 := setup.G2Gen()
	g2Tau := setup.G2Tau()
	g1AccAff := g1Acc.ToAffine()
	g2Aff := g2.ToAffine()
	proofAccAff := proofAcc.ToAffine()
	g2TauAff := g2Tau.ToAffine()
	return bls12381.PairingsEqual(&g1AccAff, &g2Aff, &proofAccAff, &g2TauAff)
}

// VerifyBlobKZGProofBatchParallel is VerifyBlobKZGProofBatch with the
// per-blob challenge derivation, evaluation, and accumulation sharded
// across pool (spec.md section 4.N names KZG proof construction/batch
// verification as one of the parallel entry points; core arithmetic is
// CPU-bound and has no I/O suspension). Each worker folds its shard's
// blobs into its own G1 accumulator pair — disjoint per-worker state, no
// locks — and the partials are combined by the caller with a final
// sequential reduction before the single shared multi-pairing check.
func VerifyBlobKZGProofBatchParallel(pool *taskpool.Pool, setup *Setup, blobs []*Blob, commitments []*Commitment, proofs []*Proof, blindingScalars []bls12381.Fr) bool {
	n := len(blobs)
	if n == 0 || len(commitments) != n || len(proofs) != n || len(blindingScalars) != n {
		return false
	}

	g1 := bls12381.G1Generator()
	chunks := pool.Chunks(n)
	g1Partials := make([]bls12381.G1Jacobian, len(chunks))
	proofPartials := make([]bls12381.G1Jacobian, len(chunks))
	ok := make([]bool, len(chunks))

	err := pool.SyncScope(func(scope *taskpool.Scope) {
		for ci, rng := range chunks {
			ci, rng := ci, rng
			scope.Spawn(func() error {
				g1Acc := bls12381.G1Identity()
				proofAcc := bls12381.G1Identity()
				for i := rng[0]; i < rng[1]; i++ {
					frs, err := blobs[i].ToFrElements()
					if err != nil {
						ok[ci] = false
						return nil
					}
					cb := commitments[i].Bytes()
					z := deriveChallenge(blobs[i], cb)
					y, _ := evaluatePolynomial(frs[:], setup.Domain, z)

					var yG1, cMinusY bls12381.G1Jacobian
					yG1.ScalarMulCT(&g1, &y)
					cMinusY.Neg(&yG1)
					cMinusY.Add(&cMinusY, &commitments[i].p)

					r := blindingScalars[i]
					var rTimesCMinusY bls12381.G1Jacobian
					rTimesCMinusY.ScalarMulGLV(&cMinusY, frToBigInt(r))
					g1Acc.Add(&g1Acc, &rTimesCMinusY)

					var rz bls12381.Fr
					rz.Mul(&r, &z)
					var rzProof bls12381.G1Jacobian
					rzProof.ScalarMulGLV(&proofs[i].p, frToBigInt(rz))
					g1Acc.Add(&g1Acc, &rzProof)

					var rProof bls12381.G1Jacobian
					rProof.ScalarMulGLV(&proofs[i].p, frToBigInt(r))
					proofAcc.Add(&proofAcc, &rProof)
				}
				g1Partials[ci] = g1Acc
				proofPartials[ci] = proofAcc
				ok[ci] = true
				return nil
			})
		}
	})
	if err != nil {
		return false
	}
	for _, v := range ok {
		if !v {
			return false
		}
	}

	g1Acc := bls12381.G1Identity()
	proofAcc := bls12381.G1Identity()
	for i := range g1Partials {
		g1Acc.Add(&g1Acc, &g1Partials[i])
		proofAcc.Add(&proofAcc, &proofPartials[i])
	}

	g2 := setup.G2Gen()
	g2Tau := setup.G2Tau()
	g1AccAff := g1Acc.ToAffine()
	g2Aff := g2.ToAffine()
	proofAccAff := proofAcc.ToAffine()
	g2TauAff := g2Tau.ToAffine()
	return bls12381.PairingsEqual(&g1AccAff, &g2Aff, &proofAccAff, &g2TauAff)
}
