package eip712

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

// HashAction returns the struct hash of a, the sender is encoded after prevHash.
func HashAction(a *types.Action) (h common.Hash, err error) {
	if a == nil {
		err = &types.EncodingError{Field: "action", Reason: "is nil"}
		return
	}
	if err = a.Validate(); err != nil {
		return
	}
	var enc []byte
	if enc, err = actionArgs.Pack(
		ActionTypeHash,
		a.ChannelID,
		a.HandID,
		a.Seq,
		uint8(a.Action),
		a.Amount,
		a.PrevHash,
		a.Sender,
	); err != nil {
		err = &types.EncodingError{Field: "action", Reason: err.Error()}
		return
	}
	h = crypto.Keccak256Hash(enc)
	return
}

// HashCardCommit returns the struct hash of c.
func HashCardCommit(c *types.CardCommit) (h common.Hash, err error) {
	if c == nil {
		err = &types.EncodingError{Field: "cardCommit", Reason: "is nil"}
		return
	}
	if err = c.Validate(); err != nil {
		return
	}
	var enc []byte
	if enc, err = cardCommitArgs.Pack(
		CardCommitTypeHash,
		c.ChannelID,
		c.HandID,
		c.Seq,
		c.Slot,
		c.CommitHash,
		c.PrevHash,
	); err != nil {
		err = &types.EncodingError{Field: "cardCommit", Reason: err.Error()}
		return
	}
	h = crypto.Keccak256Hash(enc)
	return
}
