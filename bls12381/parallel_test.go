package bls12381

import (
	"testing"

	"github.com/eth2030/curvecore/taskpool"
)

func TestMSMG1ParallelMatchesSequential(t *testing.T) {
	pool := taskpool.New(4)
	defer pool.Shutdown()

	g := G1Generator()
	points := make([]G1Jacobian, 137)
	scalars := make([]Fr, 137)
	for i := range points {
		points[i] = g
		scalars[i] = FrFromUint64(uint64(i*7 + 3))
	}

	want := MSMG1(points, scalars)
	got, err := MSMG1Parallel(pool, points, scalars)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ToAffine().X.Equal(want.ToAffine().X) {
		t.Fatal("MSMG1Parallel disagrees with sequential MSMG1")
	}
}

func TestMultiPairingParallelMatchesSequential(t *testing.T) {
	pool := taskpool.New(3)
	defer pool.Shutdown()

	g1 := G1Generator()
	g2 := G2Generator()
	const n = 10
	ps := make([]G1Affine, n)
	qs := make([]G2Affine, n)
	for i := 0; i < n; i++ {
		var p G1Jacobian
		p.ScalarMulCT(&g1, scalarFr(uint64(i+1)))
		ps[i] = p.ToAffine()
		qs[i] = g2.ToAffine()
	}

	want := MultiPairing(ps, qs)
	got, err := MultiPairingParallel(pool, ps, qs)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatal("MultiPairingParallel disagrees with sequential MultiPairing")
	}
}

func scalarFr(v uint64) *Fr {
	f := FrFromUint64(v)
	return &f
}
