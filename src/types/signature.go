package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SignatureLength is the length of a recoverable secp256k1 signature r || s || v.
const SignatureLength = 65

// Signature is a recoverable secp256k1 signature laid out as r || s || v.
type Signature [SignatureLength]byte

// BytesToSignature copies b into a Signature, b must be exactly SignatureLength long.
func BytesToSignature(b []byte) (sig Signature, err error) {
	if len(b) != SignatureLength {
		var v byte
		if len(b) > 0 {
			v = b[len(b)-1]
		}
		err = &SignatureFormatError{Length: len(b), V: v, Reason: "wrong length"}
		return
	}
	copy(sig[:], b)
	return
}

// R returns the r value.
func (s Signature) R() common.Hash {
	return common.BytesToHash(s[:32])
}

// S returns the s value.
func (s Signature) S() common.Hash {
	return common.BytesToHash(s[32:64])
}

// V returns the recovery byte as carried in the signature.
func (s Signature) V() byte {
	return s[64]
}

// Bytes returns a copy of the signature bytes.
func (s Signature) Bytes() []byte {
	b := make([]byte, SignatureLength)
	copy(b, s[:])
	return b
}

// Hex returns the 0x prefixed hex form.
func (s Signature) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Signature) String() string {
	return s.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return hexutil.Bytes(s[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(input []byte) (err error) {
	var b hexutil.Bytes
	if err = b.UnmarshalText(input); err != nil {
		return
	}
	*s, err = BytesToSignature(b)
	return
}
