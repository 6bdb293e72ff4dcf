package verifier

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/eip712"
	"github.com/blackyblack/poker-contracts-sub001/src/hashchain"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// VerifyAction checks a received action against the hand head: sequence, chain link, encoding,
// signature and sender binding, in that order. It returns the head advanced past the action on
// success and the unchanged head otherwise.
func VerifyAction(domainSep common.Hash, head hashchain.Head, a *types.Action, sig []byte) (
	next hashchain.Head, err error) {
	next = head
	if a == nil {
		err = &types.EncodingError{Field: "action", Reason: "is nil"}
		return
	}
	defer func() {
		if err != nil {
			log.WithFields(log.Fields{
				"channel": a.ChannelID,
				"hand":    a.HandID,
				"seq":     a.Seq,
				"sender":  a.Sender.Hex(),
			}).WithError(err).Debug("action rejected")
		}
	}()

	if err = head.Check(a.Seq, a.PrevHash); err != nil {
		return
	}
	var digest common.Hash
	if digest, err = eip712.ActionDigest(domainSep, a); err != nil {
		return
	}
	var signer common.Address
	if signer, err = Recover(digest, sig); err != nil {
		return
	}
	if err = CheckSender(a, signer); err != nil {
		return
	}
	next = head.Advance(digest)
	return
}

// VerifyCardCommit is VerifyAction for card commits, which have no sender field so the caller
// supplies the expected signer.
func VerifyCardCommit(domainSep common.Hash, head hashchain.Head, c *types.CardCommit, sig []byte,
	expectedSigner common.Address) (next hashchain.Head, err error) {
	next = head
	if c == nil {
		err = &types.EncodingError{Field: "cardCommit", Reason: "is nil"}
		return
	}
	defer func() {
		if err != nil {
			log.WithFields(log.Fields{
				"channel": c.ChannelID,
				"hand":    c.HandID,
				"seq":     c.Seq,
				"slot":    c.Slot,
				"signer":  expectedSigner.Hex(),
			}).WithError(err).Debug("card commit rejected")
		}
	}()

	if err = head.Check(c.Seq, c.PrevHash); err != nil {
		return
	}
	var digest common.Hash
	if digest, err = eip712.CardCommitDigest(domainSep, c); err != nil {
		return
	}
	var signer common.Address
	if signer, err = Recover(digest, sig); err != nil {
		return
	}
	if err = checkSigner(expectedSigner, signer); err != nil {
		return
	}
	next = head.Advance(digest)
	return
}

// CheckActionKind rejects action kinds outside the published enumeration. Hashing never does,
// so policy layers that only accept known kinds call it before VerifyAction.
func CheckActionKind(a *types.Action) error {
	if !a.Action.Valid() {
		return errors.Wrapf(ErrUnknownActionKind, "%s", a.Action)
	}
	return nil
}
