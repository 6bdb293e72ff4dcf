package internal

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/blackyblack/poker-contracts-sub001/src/commitment"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/asymmetric"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/verifier"
	"github.com/blackyblack/poker-contracts-sub001/src/hashchain"
	"github.com/blackyblack/poker-contracts-sub001/src/session"
	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/worker"
)

func signMessage(key *asymmetric.PrivateKey, m *message) *message {
	digest, err := m.digest(testDomainSep)
	if err != nil {
		panic(err)
	}
	sig, err := key.Sign(digest)
	if err != nil {
		panic(err)
	}
	m.Signature = sig.Bytes()
	return m
}

// buildHand returns blinds by alice and bob, a card commit by alice and a call by bob.
func buildHand() []*message {
	genesis, err := hashchain.Genesis(big.NewInt(7), big.NewInt(1))
	if err != nil {
		panic(err)
	}
	sb := signMessage(testAlice, &message{Action: &types.Action{
		ChannelID: big.NewInt(7),
		HandID:    big.NewInt(1),
		Seq:       1,
		Action:    types.SmallBlind,
		Amount:    big.NewInt(1),
		PrevHash:  genesis,
		Sender:    testAlice.Address(),
	}})
	prev, _ := sb.digest(testDomainSep)

	bb := signMessage(testBob, &message{Action: &types.Action{
		ChannelID: big.NewInt(7),
		HandID:    big.NewInt(1),
		Seq:       2,
		Action:    types.BigBlind,
		Amount:    big.NewInt(2),
		PrevHash:  prev,
		Sender:    testBob.Address(),
	}})
	prev, _ = bb.digest(testDomainSep)

	h, err := commitment.Commit(testDomainSep, big.NewInt(7), 0, 51, common.HexToHash("0x01"))
	if err != nil {
		panic(err)
	}
	alice := testAlice.Address()
	cc := signMessage(testAlice, &message{
		CardCommit: &types.CardCommit{
			ChannelID:  big.NewInt(7),
			HandID:     big.NewInt(1),
			Seq:        3,
			Slot:       0,
			CommitHash: h,
			PrevHash:   prev,
		},
		Signer: &alice,
	})
	prev, _ = cc.digest(testDomainSep)

	call := signMessage(testBob, &message{Action: &types.Action{
		ChannelID: big.NewInt(7),
		HandID:    big.NewInt(1),
		Seq:       4,
		Action:    types.CheckCall,
		Amount:    big.NewInt(1),
		PrevHash:  prev,
		Sender:    testBob.Address(),
	}})
	return []*message{sb, bb, cc, call}
}

func TestReplayTranscript(t *testing.T) {
	Convey("Given an honest hand", t, func() {
		msgs := buildHand()
		tr := session.NewTracker(testDomainSep, nil)

		Convey("every message should be accepted in order", func() {
			verdicts := replayTranscript(tr, msgs, false)
			So(verdicts, ShouldHaveLength, 4)
			So(countRejected(verdicts), ShouldEqual, 0)
			for i, v := range verdicts {
				So(v.Index, ShouldEqual, i)
				So(v.Seq, ShouldEqual, uint32(i+1))
				d, err := msgs[i].digest(testDomainSep)
				So(err, ShouldBeNil)
				So(v.Head, ShouldEqual, d)
			}
			So(verdicts[2].Kind, ShouldEqual, "card_commit")

			head, err := tr.Head(big.NewInt(7), big.NewInt(1))
			So(err, ShouldBeNil)
			So(head.Seq, ShouldEqual, 4)
		})
		Convey("a call signed by the wrong player should be rejected and not advance", func() {
			forged := *msgs[3].Action
			msgs[3] = signMessage(testAlice, &message{Action: &forged})
			verdicts := replayTranscript(tr, msgs, false)
			So(countRejected(verdicts), ShouldEqual, 1)
			So(errors.Is(verdicts[3].err, types.ErrSenderMismatch), ShouldBeTrue)
			So(verdicts[3].OK, ShouldBeFalse)
			So(verdicts[3].Error, ShouldNotBeEmpty)

			head, err := tr.Head(big.NewInt(7), big.NewInt(1))
			So(err, ShouldBeNil)
			So(head.Seq, ShouldEqual, 3)
		})
		Convey("a dropped message should break the chain of the rest", func() {
			verdicts := replayTranscript(tr, append(msgs[:1:1], msgs[2:]...), false)
			So(verdicts[0].OK, ShouldBeTrue)
			So(errors.Is(verdicts[1].err, types.ErrSequence), ShouldBeTrue)
			So(errors.Is(verdicts[2].err, types.ErrSequence), ShouldBeTrue)
		})
		Convey("a card commit without signer should be rejected", func() {
			msgs[2].Signer = nil
			verdicts := replayTranscript(tr, msgs, false)
			So(errors.Is(verdicts[2].err, ErrMissingSigner), ShouldBeTrue)
			So(errors.Is(verdicts[3].err, types.ErrChainMismatch), ShouldBeFalse)
			So(errors.Is(verdicts[3].err, types.ErrSequence), ShouldBeTrue)
		})
		Convey("an unknown action kind should only be rejected in strict mode", func() {
			odd := *msgs[0].Action
			odd.Action = types.ActionKind(9)
			msgs[0] = signMessage(testAlice, &message{Action: &odd})

			verdicts := replayTranscript(session.NewTracker(testDomainSep, nil), msgs, false)
			So(verdicts[0].OK, ShouldBeTrue)

			verdicts = replayTranscript(tr, msgs, true)
			So(errors.Is(verdicts[0].err, verifier.ErrUnknownActionKind), ShouldBeTrue)
			So(errors.Is(verdicts[1].err, types.ErrSequence), ShouldBeTrue)
		})
		Convey("a truncated signature should be a signature format error", func() {
			msgs[0].Signature = msgs[0].Signature[:64]
			verdicts := replayTranscript(tr, msgs, false)
			So(errors.Is(verdicts[0].err, types.ErrSignatureFormat), ShouldBeTrue)
		})
	})
}

func TestBatchTranscript(t *testing.T) {
	Convey("Given a batch verifier and an honest hand", t, func() {
		bv := worker.NewBatchVerifier(4, 4, nil)
		defer bv.Close()
		msgs := buildHand()

		Convey("an honest hand should pass signatures and chain", func() {
			verdicts, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(err, ShouldBeNil)
			So(countRejected(verdicts), ShouldEqual, 0)
			for i, v := range verdicts {
				d, err := msgs[i].digest(testDomainSep)
				So(err, ShouldBeNil)
				So(v.Head, ShouldEqual, d)
			}
		})
		Convey("the chain should be replayed in transcript order", func() {
			reversed := []*message{msgs[3], msgs[2], msgs[1], msgs[0]}
			verdicts, err := batchTranscript(bv, testDomainSep, reversed, false)
			So(err, ShouldBeNil)
			So(verdicts[0].Seq, ShouldEqual, 4)
			So(errors.Is(verdicts[0].err, types.ErrSequence), ShouldBeTrue)
			So(errors.Is(verdicts[1].err, types.ErrSequence), ShouldBeTrue)
			So(errors.Is(verdicts[2].err, types.ErrSequence), ShouldBeTrue)
			So(verdicts[3].OK, ShouldBeTrue)
		})
		Convey("a validly signed message off the chain should be a chain mismatch", func() {
			off := *msgs[1].Action
			off.PrevHash = common.HexToHash("0xbad")
			msgs[1] = signMessage(testBob, &message{Action: &off})
			verdicts, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(err, ShouldBeNil)
			So(verdicts[0].OK, ShouldBeTrue)
			So(errors.Is(verdicts[1].err, types.ErrChainMismatch), ShouldBeTrue)
			// the head stays at seq 1, so seq 3 and 4 are out of sequence
			So(errors.Is(verdicts[2].err, types.ErrSequence), ShouldBeTrue)
			So(errors.Is(verdicts[3].err, types.ErrSequence), ShouldBeTrue)
		})
		Convey("a bad signature should not advance the chain", func() {
			msgs[0].Signature = msgs[0].Signature[:64]
			verdicts, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(err, ShouldBeNil)
			So(errors.Is(verdicts[0].err, types.ErrSignatureFormat), ShouldBeTrue)
			So(errors.Is(verdicts[1].err, types.ErrSequence), ShouldBeTrue)
		})
		Convey("hands should be chained independently", func() {
			other := *msgs[0].Action
			other.HandID = big.NewInt(2)
			genesis, err := hashchain.Genesis(big.NewInt(7), big.NewInt(2))
			So(err, ShouldBeNil)
			other.PrevHash = genesis
			mixed := []*message{msgs[0], signMessage(testAlice, &message{Action: &other}), msgs[1]}
			verdicts, err := batchTranscript(bv, testDomainSep, mixed, false)
			So(err, ShouldBeNil)
			So(countRejected(verdicts), ShouldEqual, 0)
		})
		Convey("messages rejected before queueing should keep their position", func() {
			msgs[2].Signer = nil
			msgs[3].Action.Sender = testAlice.Address()
			verdicts, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(err, ShouldBeNil)
			So(verdicts, ShouldHaveLength, 4)
			So(verdicts[0].OK, ShouldBeTrue)
			So(verdicts[1].OK, ShouldBeTrue)
			So(errors.Is(verdicts[2].err, ErrMissingSigner), ShouldBeTrue)
			So(verdicts[2].Index, ShouldEqual, 2)
			So(errors.Is(verdicts[3].err, types.ErrSenderMismatch), ShouldBeTrue)
		})
		Convey("strict mode should reject unknown action kinds before queueing", func() {
			odd := *msgs[3].Action
			odd.Action = types.ActionKind(200)
			msgs[3] = signMessage(testBob, &message{Action: &odd})

			verdicts, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(err, ShouldBeNil)
			So(countRejected(verdicts), ShouldEqual, 0)

			verdicts, err = batchTranscript(bv, testDomainSep, msgs, true)
			So(err, ShouldBeNil)
			So(countRejected(verdicts), ShouldEqual, 1)
			So(errors.Is(verdicts[3].err, verifier.ErrUnknownActionKind), ShouldBeTrue)
		})
		Convey("a closed verifier should fail the batch", func() {
			bv.Close()
			_, err := batchTranscript(bv, testDomainSep, msgs, false)
			So(errors.Is(err, worker.ErrClosed), ShouldBeTrue)
		})
	})
}

func TestTranscriptJSON(t *testing.T) {
	Convey("A signed hand should survive the transcript encoding", t, func() {
		msgs := buildHand()
		data, err := json.Marshal(msgs)
		So(err, ShouldBeNil)

		parsed, err := parseTranscript(data)
		So(err, ShouldBeNil)
		So(parsed, ShouldHaveLength, 4)
		verdicts := replayTranscript(session.NewTracker(testDomainSep, nil), parsed, false)
		So(countRejected(verdicts), ShouldEqual, 0)
	})
	Convey("A transcript entry with both kinds should be refused", t, func() {
		msgs := buildHand()
		msgs[0].CardCommit = msgs[2].CardCommit
		data, err := json.Marshal(msgs)
		So(err, ShouldBeNil)
		_, err = parseTranscript(data)
		So(errors.Is(err, ErrBadMessage), ShouldBeTrue)
	})
	Convey("A null transcript entry should be refused", t, func() {
		_, err := parseTranscript([]byte(`[null]`))
		So(errors.Is(err, ErrBadMessage), ShouldBeTrue)
	})
}
