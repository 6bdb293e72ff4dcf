// Package verifier recovers message signers and binds them to the declared senders.
package verifier

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blackyblack/poker-contracts-sub001/src/eip712"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

// Recover returns the address that signed digest. The signature is r || s || v with v in
// {27, 28} or {0, 1}; anything else, including out of range r and s, is a SignatureFormatError.
// A well formed signature always recovers some address, binding it is the caller's policy.
func Recover(digest common.Hash, sig []byte) (addr common.Address, err error) {
	if len(sig) != types.SignatureLength {
		var v byte
		if len(sig) > 0 {
			v = sig[len(sig)-1]
		}
		err = &types.SignatureFormatError{Length: len(sig), V: v, Reason: "wrong length"}
		return
	}
	v := sig[crypto.RecoveryIDOffset]
	var recID byte
	switch v {
	case 0, 1:
		recID = v
	case 27, 28:
		recID = v - 27
	default:
		err = &types.SignatureFormatError{Length: len(sig), V: v, Reason: "recovery id out of range"}
		return
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(recID, r, s, false) {
		err = &types.SignatureFormatError{Length: len(sig), V: v, Reason: "r or s out of range"}
		return
	}

	normalized := make([]byte, types.SignatureLength)
	copy(normalized, sig)
	normalized[crypto.RecoveryIDOffset] = recID
	pub, rerr := crypto.SigToPub(digest[:], normalized)
	if rerr != nil {
		err = &types.SignatureFormatError{Length: len(sig), V: v, Reason: rerr.Error()}
		return
	}
	addr = crypto.PubkeyToAddress(*pub)
	return
}

// RecoverActionSigner returns the address that signed the digest of a.
func RecoverActionSigner(domainSep common.Hash, a *types.Action, sig []byte) (addr common.Address, err error) {
	var digest common.Hash
	if digest, err = eip712.ActionDigest(domainSep, a); err != nil {
		return
	}
	return Recover(digest, sig)
}

// RecoverCardCommitSigner returns the address that signed the digest of c.
func RecoverCardCommitSigner(domainSep common.Hash, c *types.CardCommit, sig []byte) (
	addr common.Address, err error) {
	var digest common.Hash
	if digest, err = eip712.CardCommitDigest(domainSep, c); err != nil {
		return
	}
	return Recover(digest, sig)
}

// CheckSender returns a SenderMismatchError unless recovered is the declared sender of a.
func CheckSender(a *types.Action, recovered common.Address) error {
	return checkSigner(a.Sender, recovered)
}

func checkSigner(expected, recovered common.Address) error {
	if expected != recovered {
		return &types.SenderMismatchError{Expected: expected, Recovered: recovered}
	}
	return nil
}
