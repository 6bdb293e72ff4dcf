package internal

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/crypto/verifier"
	"github.com/blackyblack/poker-contracts-sub001/src/hashchain"
	"github.com/blackyblack/poker-contracts-sub001/src/session"
	"github.com/blackyblack/poker-contracts-sub001/src/worker"
)

var (
	// ErrMissingSigner indicates a card commit without the signer it must be checked against.
	ErrMissingSigner = errors.New("card commit has no expected signer")
)

// verdict is the outcome of one transcript entry.
type verdict struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Seq   uint32      `json:"seq"`
	Head  common.Hash `json:"head"`
	OK    bool        `json:"ok"`
	Error string      `json:"error,omitempty"`

	err error
}

func newVerdict(i int, m *message, err error) verdict {
	v := verdict{Index: i, Kind: m.kind(), Seq: m.seq(), OK: err == nil, err: err}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

func (m *message) sigBytes() []byte {
	return m.Signature
}

// replayTranscript feeds msgs in order through tr. Rejected entries leave their hand head
// untouched, so later entries are checked against the last accepted message. In strict mode
// actions of unknown kinds are rejected before verification.
func replayTranscript(tr *session.Tracker, msgs []*message, strict bool) (verdicts []verdict) {
	verdicts = make([]verdict, 0, len(msgs))
	for i, m := range msgs {
		var (
			next hashchain.Head
			err  error
		)
		switch {
		case m.Action != nil:
			if strict {
				if err = verifier.CheckActionKind(m.Action); err != nil {
					break
				}
			}
			next, err = tr.AcceptAction(m.Action, m.sigBytes())
		case m.Signer == nil:
			err = ErrMissingSigner
		default:
			next, err = tr.AcceptCardCommit(m.CardCommit, m.sigBytes(), *m.Signer)
		}
		v := newVerdict(i, m, err)
		if err == nil {
			v.Head = next.LastDigest
		}
		verdicts = append(verdicts, v)
	}
	return
}

// handChain is the recorded chain of one hand: the links of the messages whose signature
// verified and their transcript positions.
type handChain struct {
	channelID *big.Int
	handID    *big.Int
	links     []hashchain.Link
	index     []int
}

func (m *message) hand() (channelID, handID *big.Int) {
	if m.Action != nil {
		return m.Action.ChannelID, m.Action.HandID
	}
	return m.CardCommit.ChannelID, m.CardCommit.HandID
}

func (m *message) prevHash() common.Hash {
	if m.Action != nil {
		return m.Action.PrevHash
	}
	return m.CardCommit.PrevHash
}

// batchTranscript checks signatures and signer binding of msgs in parallel on bv, then replays
// the hash chain of every hand over the messages that passed, in transcript order. As in
// replayTranscript a rejected link leaves the head of its hand untouched.
func batchTranscript(bv *worker.BatchVerifier, domainSep common.Hash, msgs []*message, strict bool) (
	verdicts []verdict, err error) {
	verdicts = make([]verdict, len(msgs))
	jobs := make([]worker.Job, 0, len(msgs))
	// position in jobs of each message, -1 for messages rejected before queueing
	slots := make([]int, len(msgs))

	for i, m := range msgs {
		var (
			job    worker.Job
			jobErr error
		)
		switch {
		case m.Action != nil:
			if strict {
				if jobErr = verifier.CheckActionKind(m.Action); jobErr != nil {
					break
				}
			}
			job, jobErr = worker.ActionJob(domainSep, m.Action, m.sigBytes())
		case m.Signer == nil:
			jobErr = ErrMissingSigner
		default:
			job, jobErr = worker.CardCommitJob(domainSep, m.CardCommit, m.sigBytes(), *m.Signer)
		}
		if jobErr != nil {
			slots[i] = -1
			verdicts[i] = newVerdict(i, m, jobErr)
			continue
		}
		slots[i] = len(jobs)
		jobs = append(jobs, job)
	}

	var results []worker.Result
	if results, err = bv.Verify(jobs); err != nil {
		return
	}

	var (
		chains = map[session.Key]*handChain{}
		order  []session.Key
	)
	for i, m := range msgs {
		if slots[i] < 0 {
			continue
		}
		if rErr := results[slots[i]].Err; rErr != nil {
			verdicts[i] = newVerdict(i, m, rErr)
			continue
		}
		channelID, handID := m.hand()
		// ids were range checked when the job digest was built
		k, _ := session.NewKey(channelID, handID)
		c, ok := chains[k]
		if !ok {
			c = &handChain{channelID: channelID, handID: handID}
			chains[k] = c
			order = append(order, k)
		}
		c.links = append(c.links, hashchain.Link{
			Seq:      m.seq(),
			PrevHash: m.prevHash(),
			Digest:   jobs[slots[i]].Digest,
		})
		c.index = append(c.index, i)
	}

	for _, k := range order {
		if err = replayChain(chains[k], msgs, verdicts); err != nil {
			return
		}
	}
	return
}

func replayChain(c *handChain, msgs []*message, verdicts []verdict) (err error) {
	var head hashchain.Head
	if head, err = hashchain.NewHead(c.channelID, c.handID); err != nil {
		return
	}
	for j := 0; j < len(c.links); {
		start := head.Seq
		var linkErr error
		head, linkErr = hashchain.Replay(head, c.links[j:])
		accepted := int(head.Seq - start)
		for n := 0; n < accepted; n++ {
			i := c.index[j+n]
			verdicts[i] = newVerdict(i, msgs[i], nil)
			verdicts[i].Head = c.links[j+n].Digest
		}
		j += accepted
		if linkErr == nil {
			break
		}
		i := c.index[j]
		verdicts[i] = newVerdict(i, msgs[i], linkErr)
		j++
	}
	return
}

func countRejected(verdicts []verdict) (n int) {
	for _, v := range verdicts {
		if !v.OK {
			n++
		}
	}
	return
}
