package types

import (
	"math/big"
)

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// CheckUint256 returns an EncodingError if v is nil or doesn't fit in a uint256.
func CheckUint256(field string, v *big.Int) error {
	return checkUint(field, v, maxUint256, "uint256")
}

// CheckUint128 returns an EncodingError if v is nil or doesn't fit in a uint128.
func CheckUint128(field string, v *big.Int) error {
	return checkUint(field, v, maxUint128, "uint128")
}

func checkUint(field string, v *big.Int, max *big.Int, typ string) error {
	switch {
	case v == nil:
		return &EncodingError{Field: field, Reason: "is nil"}
	case v.Sign() < 0:
		return &EncodingError{Field: field, Reason: "is negative"}
	case v.Cmp(max) > 0:
		return &EncodingError{Field: field, Reason: "overflows " + typ}
	}
	return nil
}
