// Package hashchain links the messages of a hand into a chain rooted at a public genesis value.
package hashchain

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils"
)

// GenesisTag is the literal tag hashed into every genesis value.
const GenesisTag = "HUP_GENESIS"

// Genesis returns keccak256(abi.encodePacked("HUP_GENESIS", uint256 handID)).
//
// channelID is accepted for the call shape deployed verifiers use but it is not hashed, hands of
// different channels sharing a hand id share a genesis value.
func Genesis(channelID, handID *big.Int) (g common.Hash, err error) {
	if err = types.CheckUint256("handId", handID); err != nil {
		return
	}
	g = crypto.Keccak256Hash(utils.ConcatAll([]byte(GenesisTag), ethmath.PaddedBigBytes(handID, 32)))
	return
}

// Head is the chain state of one hand: the last accepted sequence number and the digest it
// signed. The zero sequence head carries the genesis value.
type Head struct {
	Seq        uint32
	LastDigest common.Hash
}

// NewHead returns the head of a hand nothing was accepted in yet.
func NewHead(channelID, handID *big.Int) (h Head, err error) {
	var g common.Hash
	if g, err = Genesis(channelID, handID); err != nil {
		return
	}
	h = Head{Seq: 0, LastDigest: g}
	return
}

// Next returns the sequence number the next message must carry.
func (h Head) Next() uint32 {
	return h.Seq + 1
}

// Expect returns the prevHash a message with sequence seq must carry.
func (h Head) Expect(seq uint32) (prev common.Hash, err error) {
	if h.Seq == math.MaxUint32 || seq != h.Seq+1 {
		err = &types.SequenceError{Expected: h.Seq + 1, Actual: seq}
		return
	}
	prev = h.LastDigest
	return
}

// Check validates the sequence number and prevHash of a received message against the head.
func (h Head) Check(seq uint32, prevHash common.Hash) (err error) {
	var expected common.Hash
	if expected, err = h.Expect(seq); err != nil {
		return
	}
	if expected != prevHash {
		err = &types.ChainMismatchError{Seq: seq, Expected: expected, Actual: prevHash}
	}
	return
}

// Advance returns the head after accepting the message signed as digest.
func (h Head) Advance(digest common.Hash) Head {
	return Head{Seq: h.Seq + 1, LastDigest: digest}
}

// Link is one recorded message of a hand.
type Link struct {
	Seq      uint32
	PrevHash common.Hash
	Digest   common.Hash
}

// Replay checks a recorded hand transcript message by message starting from head and returns
// the head after the last message. On failure the head before the offending message is returned.
func Replay(head Head, links []Link) (Head, error) {
	for _, l := range links {
		if err := head.Check(l.Seq, l.PrevHash); err != nil {
			return head, err
		}
		head = head.Advance(l.Digest)
	}
	return head, nil
}
