package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/eip712"
	"github.com/blackyblack/poker-contracts-sub001/src/metric"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

var (
	// ErrBadMessage indicates a message that is neither an action nor a card commit.
	ErrBadMessage = errors.New("message must carry exactly one of action or cardCommit")
)

// message is the JSON form of one channel message, optionally signed.
type message struct {
	Action     *types.Action     `json:"action,omitempty"`
	CardCommit *types.CardCommit `json:"cardCommit,omitempty"`
	Signature  hexutil.Bytes     `json:"signature,omitempty"`

	// expected signer of a card commit
	Signer *common.Address `json:"signer,omitempty"`
}

func (m *message) validate() error {
	if (m.Action == nil) == (m.CardCommit == nil) {
		return ErrBadMessage
	}
	return nil
}

func (m *message) kind() string {
	if m.Action != nil {
		return metric.KindAction
	}
	return metric.KindCardCommit
}

func (m *message) seq() uint32 {
	if m.Action != nil {
		return m.Action.Seq
	}
	return m.CardCommit.Seq
}

func (m *message) structHash() (common.Hash, error) {
	if m.Action != nil {
		return eip712.HashAction(m.Action)
	}
	return eip712.HashCardCommit(m.CardCommit)
}

func (m *message) digest(domainSep common.Hash) (d common.Hash, err error) {
	var h common.Hash
	if h, err = m.structHash(); err != nil {
		return
	}
	d = eip712.Digest(domainSep, h)
	return
}

// expectedSigner is the declared sender of an action or the supplied signer of a card commit.
func (m *message) expectedSigner() (addr common.Address, ok bool) {
	if m.Action != nil {
		return m.Action.Sender, true
	}
	if m.Signer != nil {
		return *m.Signer, true
	}
	return
}

// readInput reads a file, stdin for "-", or the argument itself when it is inline JSON.
func readInput(arg string) (data []byte, err error) {
	trimmed := bytes.TrimSpace([]byte(arg))
	switch {
	case len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '['):
		data = trimmed
	case arg == "-":
		if data, err = io.ReadAll(os.Stdin); err != nil {
			err = errors.Wrap(err, "read stdin failed")
		}
	default:
		if data, err = os.ReadFile(arg); err != nil {
			err = errors.Wrapf(err, "read %s failed", arg)
		}
	}
	return
}

func parseMessage(data []byte) (m *message, err error) {
	m = &message{}
	if err = json.Unmarshal(data, m); err != nil {
		err = errors.Wrap(err, "decode message failed")
		return
	}
	if err = m.validate(); err != nil {
		return
	}
	return
}

func parseTranscript(data []byte) (msgs []*message, err error) {
	if err = json.Unmarshal(data, &msgs); err != nil {
		err = errors.Wrap(err, "decode transcript failed")
		return
	}
	for i, m := range msgs {
		if m == nil {
			err = errors.Wrapf(ErrBadMessage, "entry %d", i)
			return
		}
		if err = m.validate(); err != nil {
			err = errors.Wrapf(err, "entry %d", i)
			return
		}
	}
	return
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
