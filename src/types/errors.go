package types

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrEncoding indicates a message field that can't be encoded into its declared width.
	ErrEncoding = errors.New("field encoding failed")
	// ErrSignatureFormat indicates a signature that is not a 65 bytes recoverable secp256k1 signature.
	ErrSignatureFormat = errors.New("malformed signature")
	// ErrChainMismatch indicates a prev hash not linked to the current chain head.
	ErrChainMismatch = errors.New("prev hash not match chain head")
	// ErrSenderMismatch indicates the recovered signer differs from the declared sender.
	ErrSenderMismatch = errors.New("signer not match sender")
	// ErrSequence indicates a sequence number that is not the next one of the chain.
	ErrSequence = errors.New("unexpected sequence number")
)

// EncodingError is returned when a field is missing or out of range of its declared type.
type EncodingError struct {
	Field  string
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrEncoding, e.Field, e.Reason)
}

// Is reports whether target is ErrEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// SignatureFormatError is returned when signature bytes can't be used for recovery.
type SignatureFormatError struct {
	Length int
	V      byte
	Reason string
}

func (e *SignatureFormatError) Error() string {
	return fmt.Sprintf("%v: %s (length %d, v %d)", ErrSignatureFormat, e.Reason, e.Length, e.V)
}

// Is reports whether target is ErrSignatureFormat.
func (e *SignatureFormatError) Is(target error) bool {
	return target == ErrSignatureFormat
}

// ChainMismatchError is returned when prevHash differs from the expected link.
type ChainMismatchError struct {
	Seq      uint32
	Expected common.Hash
	Actual   common.Hash
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("%v: seq %d expected %s got %s",
		ErrChainMismatch, e.Seq, e.Expected.Hex(), e.Actual.Hex())
}

// Is reports whether target is ErrChainMismatch.
func (e *ChainMismatchError) Is(target error) bool {
	return target == ErrChainMismatch
}

// SenderMismatchError is returned when recovery succeeds but yields another address.
type SenderMismatchError struct {
	Expected  common.Address
	Recovered common.Address
}

func (e *SenderMismatchError) Error() string {
	return fmt.Sprintf("%v: expected %s recovered %s",
		ErrSenderMismatch, e.Expected.Hex(), e.Recovered.Hex())
}

// Is reports whether target is ErrSenderMismatch.
func (e *SenderMismatchError) Is(target error) bool {
	return target == ErrSenderMismatch
}

// SequenceError is returned when seq is not head.Seq+1.
type SequenceError struct {
	Expected uint32
	Actual   uint32
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%v: expected %d got %d", ErrSequence, e.Expected, e.Actual)
}

// Is reports whether target is ErrSequence.
func (e *SequenceError) Is(target error) bool {
	return target == ErrSequence
}
