package internal

import (
	"os"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blackyblack/poker-contracts-sub001/src/hashchain"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

var (
	channelID bigFlag
	handID    bigFlag
)

// CmdDomain is hup domain command entity.
var CmdDomain = newCommand("hup domain [common params]",
	"show the signing domain and its separator", `
Domain prints the EIP-712 domain of the config and the domain separator every digest of
the channel is bound to.
e.g.
    hup domain -testnet
`, "")

// CmdGenesis is hup genesis command entity.
var CmdGenesis = newCommand("hup genesis [common params] -hand id [-channel id]",
	"show the hash chain genesis of a hand", `
Genesis prints the prevHash the first message (seq 1) of a hand must carry.
e.g.
    hup genesis -channel 7 -hand 1
`, "Genesis params")

func init() {
	CmdDomain.Run = runDomain
	CmdGenesis.Run = runGenesis

	addCommonFlags(CmdDomain)
	addConfigFlag(CmdDomain)
	addCommonFlags(CmdGenesis)

	CmdGenesis.Flag.Var(&channelID, "channel", "Channel id, decimal or 0x hex")
	CmdGenesis.Flag.Var(&handID, "hand", "Hand id, decimal or 0x hex")
}

type domainOutput struct {
	Domain    *types.Domain `json:"domain"`
	Separator common.Hash   `json:"separator"`
}

func runDomain(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	d, sep := domainSeparator()
	dump("domain", d)
	if err := printJSON(os.Stdout, &domainOutput{Domain: d, Separator: sep}); err != nil {
		fatal(err, "print domain failed")
	}
}

func runGenesis(cmd *Command, args []string) {
	commonFlagsInit(cmd)

	g, err := hashchain.Genesis(channelID.Int(), handID.Int())
	if err != nil {
		fatal(err, "compute genesis failed")
	}
	if err = printJSON(os.Stdout, map[string]interface{}{
		"handId":  handID.Int().String(),
		"genesis": g,
	}); err != nil {
		fatal(err, "print genesis failed")
	}
}
