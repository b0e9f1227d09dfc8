package bls12381

import "github.com/eth2030/curvecore/taskpool"

// MSMG1 computes sum(scalars[i] * points[i]) using Pippenger's bucket
// method (spec.md section 4.E), which amortizes additions across many
// terms instead of doing |scalars| independent scalar multiplications.
// Falls back to plain double-and-add per point for small inputs, where
// bucket setup overhead would dominate.
func MSMG1(points []G1Jacobian, scalars []Fr) G1Jacobian {
	n := len(points)
	if n != len(scalars) {
		panic("bls12381: MSMG1 length mismatch")
	}
	if n == 0 {
		return G1Identity()
	}
	if n < 32 {
		return msmNaive(points, scalars)
	}

	const windowBits = 8
	const numBuckets = (1 << windowBits) - 1 // unsigned digits 1..2^w-1; digit 0 skipped
	numWindows := (255 + windowBits - 1) / windowBits

	result := G1Identity()
	for w := numWindows - 1; w >= 0; w-- {
		if w != numWindows-1 {
			for i := 0; i < windowBits; i++ {
				result.Double(&result)
			}
		}
		buckets := make([]G1Jacobian, numBuckets+1)
		for i := range buckets {
			buckets[i] = G1Identity()
		}
		for i := 0; i < n; i++ {
			digit := windowDigit(&scalars[i], w, windowBits)
			if digit == 0 {
				continue
			}
			buckets[digit].Add(&buckets[digit], &points[i])
		}

		// Sum buckets with the standard running-sum trick: windowSum =
		// sum_k k*buckets[k] computed via a single backward pass that
		// accumulates (running total) and (running total of running
		// totals).
		var runningSum, windowSum G1Jacobian
		runningSum = G1Identity()
		windowSum = G1Identity()
		for k := numBuckets; k >= 1; k-- {
			runningSum.Add(&runningSum, &buckets[k])
			windowSum.Add(&windowSum, &runningSum)
		}
		result.Add(&result, &windowSum)
	}
	return result
}

// MSMG1Parallel computes the same result as MSMG1, sharded across pool
// (spec.md section 4.N: MSM is one of the named parallel entry points).
// The point/scalar range is split into pool.Workers() contiguous chunks,
// each reduced independently by MSMG1 inside a sync_scope, and the
// partial sums are combined by the caller with a final sequential
// reduction — MSM is associative and commutative over chunk boundaries,
// so this is exact, not an approximation.
func MSMG1Parallel(pool *taskpool.Pool, points []G1Jacobian, scalars []Fr) (G1Jacobian, error) {
	n := len(points)
	if n != len(scalars) {
		panic("bls12381: MSMG1Parallel length mismatch")
	}
	if n == 0 {
		return G1Identity(), nil
	}

	chunks := pool.Chunks(n)
	partials := make([]G1Jacobian, len(chunks))
	err := pool.SyncScope(func(scope *taskpool.Scope) {
		for ci, rng := range chunks {
			ci, rng := ci, rng
			scope.Spawn(func() error {
				partials[ci] = MSMG1(points[rng[0]:rng[1]], scalars[rng[0]:rng[1]])
				return nil
			})
		}
	})
	if err != nil {
		return G1Identity(), err
	}

	result := G1Identity()
	for i := range partials {
		result.Add(&result, &partials[i])
	}
	return result, nil
}

func msmNaive(points []G1Jacobian, scalars []Fr) G1Jacobian {
	result := G1Identity()
	for i := range points {
		var term G1Jacobian
		term.ScalarMul(&points[i], &scalars[i])
		result.Add(&result, &term)
	}
	return result
}

// windowDigit extracts the unsigned windowBits-wide digit at window
// index w from scalar k's bit representation. A signed-digit (NAF-style)
// recoding would halve the bucket count but requires carrying a borrow
// into the next window; left as plain unsigned digits since an
// unverified carry chain is a worse risk than the extra bucket memory.
func windowDigit(k *Fr, w, windowBits int) int {
	start := w * windowBits
	var raw int
	for i := 0; i < windowBits; i++ {
		if k.Bit(start+i) == 1 {
			raw |= 1 << i
		}
	}
	return raw
}
