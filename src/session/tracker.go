// Package session tracks the chain head of every hand a player takes part in.
package session

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/blackyblack/poker-contracts-sub001/src/crypto/verifier"
	"github.com/blackyblack/poker-contracts-sub001/src/hashchain"
	"github.com/blackyblack/poker-contracts-sub001/src/metric"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// Key identifies a hand.
type Key struct {
	Channel string
	Hand    string
}

// NewKey returns the key of hand handID in channel channelID.
func NewKey(channelID, handID *big.Int) (k Key, err error) {
	if err = types.CheckUint256("channelId", channelID); err != nil {
		return
	}
	if err = types.CheckUint256("handId", handID); err != nil {
		return
	}
	k = Key{Channel: channelID.String(), Hand: handID.String()}
	return
}

// Tracker maps hands to their chain heads. Heads are only stored after a message verified
// against the head it was read with, concurrent accepts on one hand can't both succeed.
type Tracker struct {
	domainSep common.Hash
	recorder  metric.Recorder

	mu    sync.RWMutex
	heads map[Key]hashchain.Head
}

// NewTracker creates a tracker for messages signed under domainSep, r may be nil.
func NewTracker(domainSep common.Hash, r metric.Recorder) *Tracker {
	return &Tracker{
		domainSep: domainSep,
		recorder:  metric.Nop(r),
		heads:     make(map[Key]hashchain.Head),
	}
}

// DomainSeparator returns the separator messages are verified under.
func (t *Tracker) DomainSeparator() common.Hash {
	return t.domainSep
}

// Head returns the current head of a hand, the genesis head if nothing was accepted yet.
func (t *Tracker) Head(channelID, handID *big.Int) (head hashchain.Head, err error) {
	var k Key
	if k, err = NewKey(channelID, handID); err != nil {
		return
	}
	head, _, err = t.head(k, channelID, handID)
	return
}

func (t *Tracker) head(k Key, channelID, handID *big.Int) (head hashchain.Head, known bool, err error) {
	t.mu.RLock()
	head, known = t.heads[k]
	t.mu.RUnlock()
	if !known {
		head, err = hashchain.NewHead(channelID, handID)
	}
	return
}

// swap stores next if the head of k is still prev.
func (t *Tracker) swap(k Key, prev, next hashchain.Head, known bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.heads[k]
	if ok != known || (ok && cur != prev) {
		return false
	}
	t.heads[k] = next
	return true
}

// AcceptAction verifies a against its hand head and advances the head on success.
func (t *Tracker) AcceptAction(a *types.Action, sig []byte) (next hashchain.Head, err error) {
	defer func() { t.recorder.Message(metric.KindAction, err) }()
	if a == nil {
		err = &types.EncodingError{Field: "action", Reason: "is nil"}
		return
	}
	var k Key
	if k, err = NewKey(a.ChannelID, a.HandID); err != nil {
		return
	}
	for {
		var (
			head  hashchain.Head
			known bool
		)
		if head, known, err = t.head(k, a.ChannelID, a.HandID); err != nil {
			return
		}
		if next, err = verifier.VerifyAction(t.domainSep, head, a, sig); err != nil {
			return
		}
		if t.swap(k, head, next, known) {
			log.WithFields(log.Fields{
				"channel": k.Channel,
				"hand":    k.Hand,
				"seq":     next.Seq,
				"action":  a.Action,
				"sender":  a.Sender.Hex(),
			}).Debug("accepted action")
			return
		}
		// lost a race against another message of the same hand, retry on the new head
	}
}

// AcceptCardCommit verifies c, signed by signer, against its hand head and advances the head
// on success.
func (t *Tracker) AcceptCardCommit(c *types.CardCommit, sig []byte, signer common.Address) (
	next hashchain.Head, err error) {
	defer func() { t.recorder.Message(metric.KindCardCommit, err) }()
	if c == nil {
		err = &types.EncodingError{Field: "cardCommit", Reason: "is nil"}
		return
	}
	var k Key
	if k, err = NewKey(c.ChannelID, c.HandID); err != nil {
		return
	}
	for {
		var (
			head  hashchain.Head
			known bool
		)
		if head, known, err = t.head(k, c.ChannelID, c.HandID); err != nil {
			return
		}
		if next, err = verifier.VerifyCardCommit(t.domainSep, head, c, sig, signer); err != nil {
			return
		}
		if t.swap(k, head, next, known) {
			log.WithFields(log.Fields{
				"channel": k.Channel,
				"hand":    k.Hand,
				"seq":     next.Seq,
				"slot":    c.Slot,
				"signer":  signer.Hex(),
			}).Debug("accepted card commit")
			return
		}
	}
}

// Forget drops the head of a settled hand so long running owners stay bounded. A forgotten hand
// starts again from its genesis, so only call it once no more messages of the hand are taken.
func (t *Tracker) Forget(channelID, handID *big.Int) {
	k, err := NewKey(channelID, handID)
	if err != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.heads, k)
}

// Len returns the number of hands with accepted messages.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.heads)
}
