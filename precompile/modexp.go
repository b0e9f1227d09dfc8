package precompile

import (
	"math/big"

	"github.com/holiman/uint256"
)

const modexpHeaderSize = 96 // EIP-198: base_len(32) || exp_len(32) || mod_len(32)

var ErrModExpLengthOverflow = errModExpLengthOverflow{}

type errModExpLengthOverflow struct{}

func (errModExpLengthOverflow) Error() string { return "precompile: modexp operand length overflow" }

// padRight zero-extends data on the right to at least minLen bytes,
// mirroring EIP-198's implicit zero-padding of a short input.
func padRight(data []byte, minLen int) []byte {
	if len(data) >= minLen {
		return data
	}
	out := make([]byte, minLen)
	copy(out, data)
	return out
}

// sliceOrZero extracts data[offset:offset+length], zero-padding past the
// end of data, without ever indexing out of bounds.
func sliceOrZero(data []byte, offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

// ModExp implements EIP-198's bigModExp precompile: computes
// base^exp mod mod over arbitrary-length big-endian operands. The three
// 32-byte length fields are parsed via uint256 (spec.md's DOMAIN STACK
// wires holiman/uint256 into this adapter precisely because a length
// field is statically known to fit in 256 bits, even though the
// operands themselves are not bounded the same way and still need
// math/big for the modular exponentiation itself).
func ModExp(input []byte) ([]byte, error) {
	header := padRight(input, modexpHeaderSize)

	var baseLenU, expLenU, modLenU uint256.Int
	baseLenU.SetBytes(header[0:32])
	expLenU.SetBytes(header[32:64])
	modLenU.SetBytes(header[64:96])

	if !baseLenU.IsUint64() || !expLenU.IsUint64() || !modLenU.IsUint64() {
		return nil, ErrModExpLengthOverflow
	}
	baseLen := baseLenU.Uint64()
	expLen := expLenU.Uint64()
	modLen := modLenU.Uint64()

	data := input
	if len(data) > modexpHeaderSize {
		data = data[modexpHeaderSize:]
	} else {
		data = nil
	}

	base := sliceOrZero(data, 0, baseLen)
	exp := sliceOrZero(data, baseLen, expLen)
	mod := sliceOrZero(data, baseLen+expLen, modLen)

	modVal := new(big.Int).SetBytes(mod)
	if modVal.Sign() == 0 {
		return make([]byte, modLen), nil
	}

	baseVal := new(big.Int).SetBytes(base)
	expVal := new(big.Int).SetBytes(exp)
	result := new(big.Int).Exp(baseVal, expVal, modVal)

	out := result.Bytes()
	if uint64(len(out)) >= modLen {
		return out[uint64(len(out))-modLen:], nil
	}
	padded := make([]byte, modLen)
	copy(padded[modLen-uint64(len(out)):], out)
	return padded, nil
}
