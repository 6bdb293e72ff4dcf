package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// CardCommit publishes the commitment to a card at a slot without revealing it.
type CardCommit struct {
	ChannelID  *big.Int
	HandID     *big.Int
	Seq        uint32
	Slot       uint8
	CommitHash common.Hash
	PrevHash   common.Hash
}

// Opening is the private reveal of a CardCommit.
type Opening struct {
	Card uint8       `json:"card"`
	Salt common.Hash `json:"salt"`
}

type cardCommitJSON struct {
	ChannelID  *math.HexOrDecimal256 `json:"channelId"`
	HandID     *math.HexOrDecimal256 `json:"handId"`
	Seq        uint32                `json:"seq"`
	Slot       uint8                 `json:"slot"`
	CommitHash common.Hash           `json:"commitHash"`
	PrevHash   common.Hash           `json:"prevHash"`
}

// Validate checks every integer field fits its declared width.
func (c *CardCommit) Validate() (err error) {
	if err = CheckUint256("channelId", c.ChannelID); err != nil {
		return
	}
	err = CheckUint256("handId", c.HandID)
	return
}

// MarshalJSON implements json.Marshaler.
func (c CardCommit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&cardCommitJSON{
		ChannelID:  (*math.HexOrDecimal256)(c.ChannelID),
		HandID:     (*math.HexOrDecimal256)(c.HandID),
		Seq:        c.Seq,
		Slot:       c.Slot,
		CommitHash: c.CommitHash,
		PrevHash:   c.PrevHash,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CardCommit) UnmarshalJSON(data []byte) (err error) {
	var cj cardCommitJSON
	if err = json.Unmarshal(data, &cj); err != nil {
		return
	}
	*c = CardCommit{
		ChannelID:  (*big.Int)(cj.ChannelID),
		HandID:     (*big.Int)(cj.HandID),
		Seq:        cj.Seq,
		Slot:       cj.Slot,
		CommitHash: cj.CommitHash,
		PrevHash:   cj.PrevHash,
	}
	return
}
