// Package kzg implements KZG polynomial commitments over BLS12-381 for
// EIP-4844 blobs, grounded on the teacher's kzg.go / kzg_ceremony.go /
// kzg_integration.go but supplemented with a real Lagrange-basis trusted
// setup: the teacher's scheme hardcodes a single test secret and commits
// by evaluating the polynomial directly rather than via a Lagrange basis
// over roots of unity, which is a placeholder, not the EIP-4844 scheme.
package kzg

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/eth2030/curvecore/bls12381"
	"github.com/eth2030/curvecore/errs"
)

// FieldElementsPerBlob is the number of scalar-field elements in a blob
// (4096 per EIP-4844), and the size of the roots-of-unity domain the
// trusted setup's Lagrange basis is built over.
const FieldElementsPerBlob = 4096

// primitiveRootGenerator is the standard generator of BLS12-381 Fr*, used
// throughout the Ethereum KZG/FFT tooling (c-kzg-4844, consensus-specs
// polynomial-commitments.md) to derive roots of unity of any power-of-two
// order: Fr* has order r-1, and r-1 is divisible by 2^32, so
// 7^((r-1)/2^32) has order exactly 2^32.
const primitiveRootGenerator = 7

// two32 is the exponent of the largest power of two dividing r-1 for
// BLS12-381's scalar field, a well-known property of the curve (its
// 2-adicity).
const two32 = 32

var (
	ErrSetupSize      = errors.New("kzg: domain size must be a power of two")
	ErrBadRootOfUnity = errors.New("kzg: computed root of unity has the wrong order")
)

// Setup is a KZG trusted setup (spec.md section 3's KzgContext): the
// Lagrange-basis G1 points over an n-th roots-of-unity domain, the
// monomial-basis G2 generator and [tau]G2, and the domain itself. Once
// built it is shared read-only for the process lifetime — every method
// on *Setup takes a value receiver or only reads fields, so concurrent
// use across the task pool (spec.md section 5) needs no locking.
type Setup struct {
	N          int
	Domain     []bls12381.Fr         // w^0, w^1, ..., w^(n-1)
	G1Lagrange []bls12381.G1Jacobian // L_i(tau) * G1, i = 0..n-1
	G2Monomial []bls12381.G2Jacobian // tau^i * G2, i = 0..n-1 (spec.md section 3's KzgContext)
}

// Bytes serializes a Setup into the file format LoadSetup reads back: a
// 4-byte big-endian N, followed by N 48-byte compressed G1Lagrange points,
// followed by N 96-byte compressed G2Monomial points. This is this
// module's own format, not c-kzg-4844's trusted_setup.txt text format —
// only the role (a loadable, disk-resident SRS) is the same.
func (s *Setup) Bytes() []byte {
	out := make([]byte, 4+s.N*48+s.N*96)
	binary.BigEndian.PutUint32(out[:4], uint32(s.N))
	off := 4
	for i := 0; i < s.N; i++ {
		a := s.G1Lagrange[i].ToAffine()
		enc := bls12381.CompressG1(&a)
		copy(out[off:], enc[:])
		off += 48
	}
	for i := 0; i < s.N; i++ {
		a := s.G2Monomial[i].ToAffine()
		enc := bls12381.CompressG2(&a)
		copy(out[off:], enc[:])
		off += 96
	}
	return out
}

// LoadSetup decodes a trusted setup previously produced by Setup.Bytes.
// Every failure here is an errs.Setup error (spec.md section 7: "trusted
// setup file missing, malformed, or wrong-sized") — a caller with a
// corrupt or truncated setup file cannot proceed at all, unlike a
// Codec/Subgroup failure on one point among many valid inputs.
func LoadSetup(data []byte) (*Setup, error) {
	if len(data) < 4 {
		return nil, errs.New(errs.Setup, "LoadSetup", errors.New("truncated header"))
	}
	n := int(binary.BigEndian.Uint32(data[:4]))
	if n <= 0 || n&(n-1) != 0 {
		return nil, errs.New(errs.Setup, "LoadSetup", ErrSetupSize)
	}
	want := 4 + n*48 + n*96
	if len(data) != want {
		return nil, errs.New(errs.Setup, "LoadSetup", errors.New("wrong-sized setup file"))
	}

	d, err := domain(n)
	if err != nil {
		return nil, errs.New(errs.Setup, "LoadSetup", err)
	}

	off := 4
	g1Lagrange := make([]bls12381.G1Jacobian, n)
	for i := 0; i < n; i++ {
		a, ok := bls12381.DecompressG1(data[off : off+48])
		if !ok {
			return nil, errs.New(errs.Setup, "LoadSetup", errors.New("malformed G1Lagrange point"))
		}
		g1Lagrange[i].FromAffine(&a)
		off += 48
	}
	g2Monomial := make([]bls12381.G2Jacobian, n)
	for i := 0; i < n; i++ {
		a, ok := bls12381.DecompressG2(data[off : off+96])
		if !ok {
			return nil, errs.New(errs.Setup, "LoadSetup", errors.New("malformed G2Monomial point"))
		}
		g2Monomial[i].FromAffine(&a)
		off += 96
	}

	pkgLog.Info("loaded trusted setup", "n", n)
	return &Setup{N: n, Domain: d, G1Lagrange: g1Lagrange, G2Monomial: g2Monomial}, nil
}

// G2Gen is the G2 generator, G2Monomial[0].
func (s *Setup) G2Gen() bls12381.G2Jacobian { return s.G2Monomial[0] }

// G2Tau is [tau]G2, G2Monomial[1] — the only higher power verify_kzg_proof
// actually needs.
func (s *Setup) G2Tau() bls12381.G2Jacobian { return s.G2Monomial[1] }

// frPow computes base^exp for a big.Int exponent via square-and-multiply,
// using only Fr.Mul/Fr.Square — there is no generic big-exponent Pow on
// Fr, so every caller needing one (root-of-unity derivation, barycentric
// weights) goes through this helper.
func frPow(base bls12381.Fr, exp *big.Int) bls12381.Fr {
	result := bls12381.FrOne()
	b := base
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result.Mul(&result, &b)
		}
		b.Mul(&b, &b)
	}
	return result
}

// frPowUint computes base^e for a small non-negative uint exponent.
func frPowUint(base bls12381.Fr, e uint64) bls12381.Fr {
	return frPow(base, new(big.Int).SetUint64(e))
}

// rootOfUnity returns a primitive n-th root of unity in Fr, n a power of
// two. It self-verifies the result has exactly order n (w^n == 1 and,
// for n>1, w^(n/2) != 1) rather than trusting the generator-7 folklore
// blindly, the same self-checking discipline used for the GLV constants.
func rootOfUnity(n int) (bls12381.Fr, error) {
	if n <= 0 || n&(n-1) != 0 {
		return bls12381.Fr{}, ErrSetupSize
	}
	r := bls12381.FrModulus()
	rMinus1 := new(big.Int).Sub(r, big.NewInt(1))
	exp := new(big.Int).Rsh(rMinus1, two32) // (r-1) / 2^32

	g := bls12381.FrFromUint64(primitiveRootGenerator)
	root2to32 := frPow(g, exp) // order exactly 2^32

	// root2to32^(2^32 / n) has order n.
	shift := uint(0)
	for m := n; m < (1 << two32); m <<= 1 {
		shift++
	}
	w := frPowUint(root2to32, uint64(1)<<shift)

	wn := frPowUint(w, uint64(n))
	if !wn.Equal(bls12381.FrOne()) {
		return bls12381.Fr{}, ErrBadRootOfUnity
	}
	if n > 1 {
		wHalf := frPowUint(w, uint64(n/2))
		if wHalf.Equal(bls12381.FrOne()) {
			return bls12381.Fr{}, ErrBadRootOfUnity
		}
	}
	return w, nil
}

// domain returns [w^0, w^1, ..., w^(n-1)] for a primitive n-th root w.
func domain(n int) ([]bls12381.Fr, error) {
	w, err := rootOfUnity(n)
	if err != nil {
		return nil, err
	}
	out := make([]bls12381.Fr, n)
	out[0] = bls12381.FrOne()
	for i := 1; i < n; i++ {
		out[i] = out[i-1]
		out[i].Mul(&out[i], &w)
	}
	return out, nil
}

// BuildTestSetup constructs a Setup directly from a known secret tau, the
// way a test harness would (the teacher's kzg.go hardcodes tau=42 for
// exactly this reason) — never appropriate for production, where tau must
// be unknown to everyone (see ceremony.go for the participant-contribution
// path that never materializes tau in one place).
//
// Each Lagrange basis point L_i(tau)*G1 is computed directly via the
// closed-form barycentric formula
//
//	L_i(X) = (w^i / n) * (X^n - 1) / (X - w^i)
//
// evaluated at X=tau, which is a single scalar computation per index (one
// Fr inverse, a handful of Fr multiplies) rather than a full interpolation
// — only possible because this path knows tau; the ceremony path below
// does not, and must instead transform known monomial powers of tau.
func BuildTestSetup(n int, tau *big.Int) (*Setup, error) {
	d, err := domain(n)
	if err != nil {
		return nil, err
	}

	tauFr := bls12381.FrFromBytesReduced(tau.Bytes())

	nInv := bls12381.FrFromUint64(uint64(n))
	nInv.Inv(&nInv)

	tauN := frPowUint(tauFr, uint64(n))
	var tauNMinus1 bls12381.Fr
	one := bls12381.FrOne()
	tauNMinus1.Sub(&tauN, &one)

	lagrangeCoeffs := make([]bls12381.Fr, n)
	for i := 0; i < n; i++ {
		var denom bls12381.Fr
		denom.Sub(&tauFr, &d[i])
		if denom.IsZero() {
			// tau happens to coincide with a domain point; L_i(tau) is 1
			// for that index and 0 for every other (standard Lagrange
			// basis property), a measure-zero event for a random tau.
			for j := range lagrangeCoeffs {
				lagrangeCoeffs[j] = bls12381.FrZero()
			}
			lagrangeCoeffs[i] = bls12381.FrOne()
			break
		}
		var denomInv bls12381.Fr
		denomInv.Inv(&denom)

		var coeff bls12381.Fr
		coeff.Mul(&d[i], &nInv)
		coeff.Mul(&coeff, &tauNMinus1)
		coeff.Mul(&coeff, &denomInv)
		lagrangeCoeffs[i] = coeff
	}

	g1 := bls12381.G1Generator()
	g1Lagrange := make([]bls12381.G1Jacobian, n)
	for i := range g1Lagrange {
		c := lagrangeCoeffs[i]
		g1Lagrange[i].ScalarMulCT(&g1, &c)
	}

	g2 := bls12381.G2Generator()
	g2Monomial := make([]bls12381.G2Jacobian, n)
	g2Monomial[0] = g2
	for i := 1; i < n; i++ {
		g2Monomial[i].ScalarMulCT(&g2Monomial[i-1], &tauFr)
	}

	return &Setup{
		N:          n,
		Domain:     d,
		G1Lagrange: g1Lagrange,
		G2Monomial: g2Monomial,
	}, nil
}
