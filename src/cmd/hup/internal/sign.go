package internal

import (
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/blackyblack/poker-contracts-sub001/src/crypto/verifier"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

// CmdSign is hup sign command entity.
var CmdSign = newCommand("hup sign [common params] [-key path] message",
	"sign an action or card commit with the local private key", `
Sign computes the EIP-712 digest of the message and signs it with the local private key.
An action with a zero sender gets the key address as sender; an action declaring another
sender is refused since no valid signature could bind it. The signed message is printed
as JSON ready to be appended to a transcript.
e.g.
    hup sign -testnet action.json > signed.json
`, "Sign params")

// CmdRecover is hup recover command entity.
var CmdRecover = newCommand("hup recover [common params] message",
	"recover the signer of a signed message", `
Recover prints the address that signed the message. For actions the recovered address
is also checked against the declared sender, for card commits against "signer" when set.
The exit status is 1 when the signature is malformed or bound to another address.
e.g.
    hup recover -testnet signed.json
`, "")

func init() {
	CmdSign.Run = runSign
	CmdRecover.Run = runRecover

	addCommonFlags(CmdSign)
	addConfigFlag(CmdSign)
	addKeyFlag(CmdSign)

	addCommonFlags(CmdRecover)
	addConfigFlag(CmdRecover)
}

func runSign(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	m := readMessageArg(cmd, args)
	_, sep := domainSeparator()
	privateKey := loadPrivateKey()
	addr := privateKey.Address()

	if m.Action != nil {
		switch m.Action.Sender {
		case common.Address{}:
			m.Action.Sender = addr
		case addr:
		default:
			ConsoleLog.WithFields(logrus.Fields{
				"sender": m.Action.Sender.Hex(),
				"key":    addr.Hex(),
			}).Error("action sender is not the local key")
			SetExitStatus(1)
			return
		}
	} else {
		m.Signer = &addr
	}

	digest, err := m.digest(sep)
	if err != nil {
		fatal(err, "digest message failed")
	}
	sig, err := privateKey.Sign(digest)
	if err != nil {
		fatal(err, "sign message failed")
	}
	m.Signature = sig.Bytes()

	ConsoleLog.WithFields(logrus.Fields{
		"kind":   m.kind(),
		"seq":    m.seq(),
		"digest": digest.Hex(),
	}).Debug("signed message")
	if err = printJSON(os.Stdout, m); err != nil {
		fatal(err, "print signed message failed")
	}
}

type recoverOutput struct {
	Kind     string          `json:"kind"`
	Digest   common.Hash     `json:"digest"`
	Signer   common.Address  `json:"signer"`
	Expected *common.Address `json:"expected,omitempty"`
	Bound    *bool           `json:"bound,omitempty"`
}

func runRecover(cmd *Command, args []string) {
	commonFlagsInit(cmd)
	configInit()

	m := readMessageArg(cmd, args)
	_, sep := domainSeparator()

	digest, err := m.digest(sep)
	if err != nil {
		fatal(err, "digest message failed")
	}
	signer, err := verifier.Recover(digest, m.sigBytes())
	if err != nil {
		fatal(err, "recover signer failed")
	}

	out := &recoverOutput{Kind: m.kind(), Digest: digest, Signer: signer}
	if expected, ok := m.expectedSigner(); ok {
		bound := expected == signer
		out.Expected, out.Bound = &expected, &bound
		if !bound {
			ConsoleLog.WithError(&types.SenderMismatchError{Expected: expected, Recovered: signer}).
				Warning("signer not bound")
			SetExitStatus(1)
		}
	}
	if err = printJSON(os.Stdout, out); err != nil {
		fatal(err, "print signer failed")
	}
}
