package internal

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
)

// CmdDigest is hup digest command entity.
var CmdDigest = newCommand("hup digest [common params] message",
	"show the struct hash and signing digest of a message", `
Digest prints the struct hash and the EIP-712 digest of an action or card commit.
The message is a JSON file path, "-" for stdin or inline JSON with exactly one of
"action" or "cardCommit".
e.g.
    hup digest -testnet '{"action":{"channelId":"7","handId":"1","seq":0,"action":"SMALL_BLIND",
        "amount":"1","prevHash":"0x...","sender":"0x..."}}'
`, "")

func init() {
	CmdDigest.Run = runDigest

	addCommonFlags(CmdDigest)
	addConfigFlag(CmdDigest)
}

type digestOutput struct {
	Kind       string      `json:"kind"`
	Separator  common.Hash `json:"separator"`
	StructHash common.Hash `json:"structHash"`
	Digest     common.Hash `json:"digest"`
}

func readMessageArg(cmd *Command, args []string) *message {
	if len(args) != 1 {
		cmd.Usage()
	}
	data, err := readInput(args[0])
	if err != nil {
		fatal(err, "read message failed")
	}
	m, err := parseMessage(data)
	if err != nil {
		fatal(err, "parse message failed")
	}
	dump("message", m)
	return m
}

func runDigest(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	m := readMessageArg(cmd, args)
	_, sep := domainSeparator()

	out := &digestOutput{Kind: m.kind(), Separator: sep}
	var err error
	if out.StructHash, err = m.structHash(); err != nil {
		fatal(err, "hash message failed")
	}
	if out.Digest, err = m.digest(sep); err != nil {
		fatal(err, "digest message failed")
	}
	if err = printJSON(os.Stdout, out); err != nil {
		fatal(err, "print digest failed")
	}
}
