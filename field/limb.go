// Package field implements fixed-precision big-integer arithmetic in
// Montgomery form, shared by every curve package in this module.
//
// Precision is fixed at compile time: a BigInt is always 6 64-bit limbs
// (384 bits), enough to host every modulus used anywhere in this repo
// (BLS12-381's 381-bit p and 255-bit r, secp256k1's 256-bit p, and the
// Bandersnatch base field, which is BLS12-381's r again). A curve package
// never varies this width at run time — it picks a Modulus constant once,
// at package-init, and every Element method for that curve closes over it.
package field

import "math/bits"

// Limb is a single machine word. The module targets 64-bit platforms; the
// 32-bit limb layer described in spec.md section 4.A is not implemented
// since `math/bits` already gives us carry-aware 64-bit primitives and a
// 32-bit fallback buys nothing here.
type Limb = uint64

// NLimbs is the fixed width of every BigInt in this module, in 64-bit limbs.
const NLimbs = 6

// BitsPerLimb is the width of a single Limb.
const BitsPerLimb = 64

// addc returns a+b+cin as (sum, carry-out), branch-free.
func addc(a, b, cin Limb) (sum, cout Limb) {
	sum, c1 := bits.Add64(a, b, 0)
	sum, c2 := bits.Add64(sum, 0, cin)
	return sum, c1 + c2
}

// subb returns a-b-bin as (diff, borrow-out), branch-free.
func subb(a, b, bin Limb) (diff, bout Limb) {
	diff, b1 := bits.Sub64(a, b, 0)
	diff, b2 := bits.Sub64(diff, 0, bin)
	return diff, b1 + b2
}

// mulw returns the full 128-bit product a*b as (hi, lo).
func mulw(a, b Limb) (hi, lo Limb) {
	hi, lo = bits.Mul64(a, b)
	return
}

// muladd1 returns a*b+c as (hi, lo), with the carry folded into hi.
func muladd1(a, b, c Limb) (hi, lo Limb) {
	hi, lo = bits.Mul64(a, b)
	var carry Limb
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	return
}

// muladd2 returns a*b+c+d as (hi, lo), with both carries folded into hi.
func muladd2(a, b, c, d Limb) (hi, lo Limb) {
	hi, lo = bits.Mul64(a, b)
	var carry Limb
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	hi += carry
	return
}

// cmov sets dst = src if flag != 0, else leaves dst unchanged. Implemented
// with a mask-and-blend so the instruction sequence and memory access
// pattern are independent of flag, per the constant-time discipline of
// spec.md section 5.
func cmov(dst, src *BigInt, flag uint64) {
	mask := Limb(0) - (flag & 1)
	for i := 0; i < NLimbs; i++ {
		dst[i] = (dst[i] &^ mask) | (src[i] & mask)
	}
}

// cmovLimb conditionally selects between two limbs with a mask, no branch.
func cmovLimb(a, b Limb, flag uint64) Limb {
	mask := Limb(0) - (flag & 1)
	return (a &^ mask) | (b & mask)
}
