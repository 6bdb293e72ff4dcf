package internal

import (
	"errors"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blackyblack/poker-contracts-sub001/src/commitment"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

var (
	cardSlot   uint
	cardValue  uint
	commitHash string
	saltHex    string
)

// CmdCommit is hup commit command entity.
var CmdCommit = newCommand("hup commit [common params] -channel id -slot n -card n",
	"commit to a card with a fresh random salt", `
Commit draws a random salt and prints the commitment hash of the card in the slot together
with the opening that reveals it later. Keep the opening secret until the reveal.
e.g.
    hup commit -testnet -channel 7 -slot 0 -card 51
`, "Commit params")

// CmdReveal is hup reveal command entity.
var CmdReveal = newCommand("hup reveal [common params] -channel id -slot n -commit hash -card n -salt hash",
	"check a card opening against its commitment", `
Reveal checks that the card and salt open the commitment hash of the slot.
The exit status is 1 when they don't.
e.g.
    hup reveal -testnet -channel 7 -slot 0 -commit 0x... -card 51 -salt 0x...
`, "Reveal params")

func init() {
	CmdCommit.Run = runCommit
	CmdReveal.Run = runReveal

	addCommonFlags(CmdCommit)
	addConfigFlag(CmdCommit)
	addCommonFlags(CmdReveal)
	addConfigFlag(CmdReveal)

	for _, cmd := range []*Command{CmdCommit, CmdReveal} {
		cmd.Flag.Var(&channelID, "channel", "Channel id, decimal or 0x hex")
		cmd.Flag.UintVar(&cardSlot, "slot", 0, "Card slot, 0-255")
		cmd.Flag.UintVar(&cardValue, "card", 0, "Card value, 0-255")
	}
	CmdReveal.Flag.StringVar(&commitHash, "commit", "", "Commitment hash")
	CmdReveal.Flag.StringVar(&saltHex, "salt", "", "Salt of the opening")
}

type commitOutput struct {
	ChannelID  string        `json:"channelId"`
	Slot       uint8         `json:"slot"`
	CommitHash common.Hash   `json:"commitHash"`
	Opening    types.Opening `json:"opening"`
}

func slotAndCard() (slot, card uint8) {
	if cardSlot > 255 || cardValue > 255 {
		ConsoleLog.Error("slot and card must fit in a byte")
		SetExitStatus(2)
		Exit()
	}
	return uint8(cardSlot), uint8(cardValue)
}

func runCommit(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	slot, card := slotAndCard()
	_, sep := domainSeparator()

	opening, err := commitment.NewOpening(card)
	if err != nil {
		fatal(err, "draw salt failed")
	}
	h, err := commitment.Commit(sep, channelID.Int(), slot, opening.Card, opening.Salt)
	if err != nil {
		fatal(err, "commit card failed")
	}
	if err = printJSON(os.Stdout, &commitOutput{
		ChannelID:  channelID.Int().String(),
		Slot:       slot,
		CommitHash: h,
		Opening:    opening,
	}); err != nil {
		fatal(err, "print commitment failed")
	}
}

func parseHashFlag(name, value string) (h common.Hash) {
	if err := h.UnmarshalText([]byte(value)); err != nil {
		fatal(err, "invalid -"+name)
	}
	return
}

func runReveal(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	slot, card := slotAndCard()
	_, sep := domainSeparator()
	h := parseHashFlag("commit", commitHash)
	salt := parseHashFlag("salt", saltHex)

	err := commitment.Verify(h, sep, channelID.Int(), slot, types.Opening{Card: card, Salt: salt})
	if err != nil && !errors.Is(err, commitment.ErrCommitmentMismatch) {
		fatal(err, "check opening failed")
	}
	if pErr := printJSON(os.Stdout, map[string]bool{"match": err == nil}); pErr != nil {
		fatal(pErr, "print result failed")
	}
	if err != nil {
		ConsoleLog.WithError(err).Warning("opening rejected")
		SetExitStatus(1)
	}
}
