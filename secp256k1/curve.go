// Package secp256k1 implements the secp256k1 curve (SEC 2, 2.7) as a
// secondary curve (spec.md's "secp256k1, Pallas/Vesta" mention alongside
// the pairing-friendly curves as examples of endomorphism-accelerated
// scalar multiplication). Grounded on the teacher's secp256k1_curve.go,
// which already implements a real crypto/elliptic.Curve for secp256k1 —
// unlike the teacher's secp256k1.go, which signs against elliptic.P256()
// as an acknowledged placeholder ("TODO: Replace elliptic.P256() with
// actual secp256k1 curve parameters"). This package wires the real curve
// through everywhere the teacher's placeholder cut a corner.
package secp256k1

import (
	"crypto/elliptic"
	"errors"
	"math/big"
	"sync"
)

var (
	initOnce sync.Once
	curve    *secp256k1Curve
)

func initCurve() {
	p, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	n, _ := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	gx, _ := new(big.Int).SetString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
	gy, _ := new(big.Int).SetString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", 16)

	curve = &secp256k1Curve{
		p: p, n: n, b: big.NewInt(7), gx: gx, gy: gy,
		params: &elliptic.CurveParams{
			P: p, N: n, B: big.NewInt(7), Gx: gx, Gy: gy,
			BitSize: 256, Name: "secp256k1",
		},
	}
}

// secp256k1Curve implements elliptic.Curve.
type secp256k1Curve struct {
	p, n, b *big.Int
	gx, gy  *big.Int
	params  *elliptic.CurveParams
}

// S256 returns the secp256k1 curve.
func S256() elliptic.Curve {
	initOnce.Do(initCurve)
	return curve
}

func (c *secp256k1Curve) Params() *elliptic.CurveParams { return c.params }

// IsOnCurve checks y^2 = x^3 + 7 (mod p).
func (c *secp256k1Curve) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 {
		return false
	}
	if x.Cmp(c.p) >= 0 || y.Cmp(c.p) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.p)

	x3 := new(big.Int).Mul(x, x)
	x3.Mod(x3, c.p)
	x3.Mul(x3, x)
	x3.Add(x3, c.b)
	x3.Mod(x3, c.p)

	return y2.Cmp(x3) == 0
}

func (c *secp256k1Curve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	if x1.Sign() == 0 && y1.Sign() == 0 {
		return new(big.Int).Set(x2), new(big.Int).Set(y2)
	}
	if x2.Sign() == 0 && y2.Sign() == 0 {
		return new(big.Int).Set(x1), new(big.Int).Set(y1)
	}
	if x1.Cmp(x2) == 0 && y1.Cmp(y2) == 0 {
		return c.Double(x1, y1)
	}
	if x1.Cmp(x2) == 0 {
		return new(big.Int), new(big.Int)
	}

	dy := new(big.Int).Mod(new(big.Int).Sub(y2, y1), c.p)
	dx := new(big.Int).Mod(new(big.Int).Sub(x2, x1), c.p)
	dxInv := new(big.Int).ModInverse(dx, c.p)
	if dxInv == nil {
		return new(big.Int), new(big.Int)
	}
	slope := new(big.Int).Mod(new(big.Int).Mul(dy, dxInv), c.p)

	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.p)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, slope)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.p)

	return x3, y3
}

func (c *secp256k1Curve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	if y1.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	x1sq := new(big.Int).Mod(new(big.Int).Mul(x1, x1), c.p)
	num := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(3), x1sq), c.p)

	den := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(2), y1), c.p)
	denInv := new(big.Int).ModInverse(den, c.p)
	if denInv == nil {
		return new(big.Int), new(big.Int)
	}
	slope := new(big.Int).Mod(new(big.Int).Mul(num, denInv), c.p)

	x3 := new(big.Int).Mul(slope, slope)
	x3.Sub(x3, new(big.Int).Mul(big.NewInt(2), x1))
	x3.Mod(x3, c.p)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, slope)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.p)

	return x3, y3
}

// ScalarMult returns k*(x,y) via the GLV-accelerated ladder for every
// point; scalarMultGLV itself falls back to plain double-and-add only if
// its decomposition self-check fails (ScalarMult is part of the
// crypto/elliptic.Curve interface and is exercised on arbitrary points,
// not just the generator, so GLV's precomputed basis is applied
// generically through scalarMultGLV rather than hard-coded to G).
func (c *secp256k1Curve) ScalarMult(bx, by *big.Int, k []byte) (*big.Int, *big.Int) {
	scalar := new(big.Int).SetBytes(k)
	scalar.Mod(scalar, c.n)
	if scalar.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	return c.scalarMultGLV(bx, by, scalar)
}

func (c *secp256k1Curve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return c.ScalarMult(c.gx, c.gy, k)
}

// scalarMultPlain is the unaccelerated double-and-add ladder, kept as the
// fallback path for scalarMultGLV's self-check.
func (c *secp256k1Curve) scalarMultPlain(bx, by *big.Int, k *big.Int) (*big.Int, *big.Int) {
	rx, ry := new(big.Int), new(big.Int)
	px, py := new(big.Int).Set(bx), new(big.Int).Set(by)
	for i := k.BitLen() - 1; i >= 0; i-- {
		rx, ry = c.Double(rx, ry)
		if k.Bit(i) == 1 {
			rx, ry = c.Add(rx, ry, px, py)
		}
	}
	return rx, ry
}

var (
	errInvalidSignature  = errors.New("secp256k1: invalid signature")
	errInvalidRecoveryID = errors.New("secp256k1: invalid recovery id")
)

// computeY computes y = sqrt(x^3+7) mod p. p is congruent to 3 mod 4 for
// secp256k1, so the Tonelli-Shanks shortcut a^((p+1)/4) applies directly.
func computeY(x, p *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Mod(x3, p)
	x3.Mul(x3, x)
	x3.Add(x3, big.NewInt(7))
	x3.Mod(x3, p)

	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Rsh(exp, 2)
	y := new(big.Int).Exp(x3, exp, p)

	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, p)
	if y2.Cmp(x3) != 0 {
		return nil
	}
	return y
}
