package types

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// ActionKind is the uint8 encoded player decision.
type ActionKind uint8

const (
	// SmallBlind posts the small blind.
	SmallBlind ActionKind = iota
	// BigBlind posts the big blind.
	BigBlind
	// Fold gives up the hand.
	Fold
	// CheckCall checks, or calls the outstanding bet.
	CheckCall
	// BetRaise opens a bet or raises the outstanding one.
	BetRaise

	actionKindCount
)

var actionKindNames = [...]string{
	SmallBlind: "SMALL_BLIND",
	BigBlind:   "BIG_BLIND",
	Fold:       "FOLD",
	CheckCall:  "CHECK_CALL",
	BetRaise:   "BET_RAISE",
}

// Valid returns whether k is a known action kind.
func (k ActionKind) Valid() bool {
	return k < actionKindCount
}

func (k ActionKind) String() string {
	if k.Valid() {
		return actionKindNames[k]
	}
	return "ActionKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseActionKind parses an action kind name (case insensitive) or its numeric value.
func ParseActionKind(s string) (k ActionKind, err error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range actionKindNames {
		if n == name {
			return ActionKind(i), nil
		}
	}
	var v uint64
	if v, err = strconv.ParseUint(name, 0, 8); err != nil {
		err = errors.Wrapf(err, "unknown action kind %q", s)
		return
	}
	k = ActionKind(v)
	return
}

// MarshalText implements encoding.TextMarshaler.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ActionKind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseActionKind(string(text))
	return
}

// Action is one signed player decision in a hand.
type Action struct {
	ChannelID *big.Int
	HandID    *big.Int
	Seq       uint32
	Action    ActionKind
	Amount    *big.Int
	PrevHash  common.Hash
	Sender    common.Address
}

type actionJSON struct {
	ChannelID *math.HexOrDecimal256 `json:"channelId"`
	HandID    *math.HexOrDecimal256 `json:"handId"`
	Seq       uint32                `json:"seq"`
	Action    ActionKind            `json:"action"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	PrevHash  common.Hash           `json:"prevHash"`
	Sender    common.Address        `json:"sender"`
}

// Validate checks every integer field fits its declared width.
func (a *Action) Validate() (err error) {
	if err = CheckUint256("channelId", a.ChannelID); err != nil {
		return
	}
	if err = CheckUint256("handId", a.HandID); err != nil {
		return
	}
	err = CheckUint128("amount", a.Amount)
	return
}

// MarshalJSON implements json.Marshaler.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(&actionJSON{
		ChannelID: (*math.HexOrDecimal256)(a.ChannelID),
		HandID:    (*math.HexOrDecimal256)(a.HandID),
		Seq:       a.Seq,
		Action:    a.Action,
		Amount:    (*math.HexOrDecimal256)(a.Amount),
		PrevHash:  a.PrevHash,
		Sender:    a.Sender,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Action) UnmarshalJSON(data []byte) (err error) {
	var aj actionJSON
	if err = json.Unmarshal(data, &aj); err != nil {
		return
	}
	*a = Action{
		ChannelID: (*big.Int)(aj.ChannelID),
		HandID:    (*big.Int)(aj.HandID),
		Seq:       aj.Seq,
		Action:    aj.Action,
		Amount:    (*big.Int)(aj.Amount),
		PrevHash:  aj.PrevHash,
		Sender:    aj.Sender,
	}
	return
}
