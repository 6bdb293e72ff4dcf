package hashchain

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

func TestGenesis(t *testing.T) {
	Convey("Given a channel and hand", t, func() {
		channel, hand := big.NewInt(7), big.NewInt(1)

		Convey("genesis should be keccak of the packed tag and hand id", func() {
			g, err := Genesis(channel, hand)
			So(err, ShouldBeNil)
			packed := append([]byte("HUP_GENESIS"), common.LeftPadBytes([]byte{1}, 32)...)
			So(len(packed), ShouldEqual, 43)
			So(g, ShouldEqual, crypto.Keccak256Hash(packed))
		})
		Convey("genesis should be stable across calls", func() {
			g1, err := Genesis(channel, hand)
			So(err, ShouldBeNil)
			g2, err := Genesis(big.NewInt(7), big.NewInt(1))
			So(err, ShouldBeNil)
			So(g1, ShouldEqual, g2)
		})
		Convey("genesis should differ per hand", func() {
			g1, err := Genesis(channel, hand)
			So(err, ShouldBeNil)
			g2, err := Genesis(channel, big.NewInt(2))
			So(err, ShouldBeNil)
			So(g1, ShouldNotEqual, g2)
		})
		Convey("genesis should ignore the channel id", func() {
			g1, err := Genesis(channel, hand)
			So(err, ShouldBeNil)
			g2, err := Genesis(big.NewInt(8), hand)
			So(err, ShouldBeNil)
			So(g1, ShouldEqual, g2)
			g3, err := Genesis(nil, hand)
			So(err, ShouldBeNil)
			So(g3, ShouldEqual, g1)
		})
		Convey("an invalid hand id should be an encoding error", func() {
			_, err := Genesis(channel, nil)
			So(errors.Is(err, types.ErrEncoding), ShouldBeTrue)
			_, err = NewHead(channel, big.NewInt(-3))
			So(errors.Is(err, types.ErrEncoding), ShouldBeTrue)
		})
	})
}

func TestHead(t *testing.T) {
	Convey("Given a fresh head", t, func() {
		head, err := NewHead(big.NewInt(7), big.NewInt(1))
		So(err, ShouldBeNil)
		g, err := Genesis(big.NewInt(7), big.NewInt(1))
		So(err, ShouldBeNil)
		So(head.Seq, ShouldEqual, 0)
		So(head.LastDigest, ShouldEqual, g)
		So(head.Next(), ShouldEqual, 1)

		Convey("seq 1 should expect genesis", func() {
			prev, err := head.Expect(1)
			So(err, ShouldBeNil)
			So(prev, ShouldEqual, g)
			So(head.Check(1, g), ShouldBeNil)
		})
		Convey("a skipped or replayed seq should be a sequence error", func() {
			for _, seq := range []uint32{0, 2, 100} {
				err := head.Check(seq, g)
				So(errors.Is(err, types.ErrSequence), ShouldBeTrue)
				var seqErr *types.SequenceError
				So(errors.As(err, &seqErr), ShouldBeTrue)
				So(seqErr.Expected, ShouldEqual, 1)
				So(seqErr.Actual, ShouldEqual, seq)
			}
		})
		Convey("a wrong prev hash should be a chain mismatch", func() {
			err := head.Check(1, common.Hash{1})
			So(errors.Is(err, types.ErrChainMismatch), ShouldBeTrue)
			var chainErr *types.ChainMismatchError
			So(errors.As(err, &chainErr), ShouldBeTrue)
			So(chainErr.Expected, ShouldEqual, g)
			So(chainErr.Actual, ShouldEqual, common.Hash{1})
		})
		Convey("advancing should link the signed digest", func() {
			d1 := crypto.Keccak256Hash([]byte("digest 1"))
			next := head.Advance(d1)
			So(next.Seq, ShouldEqual, 1)
			So(next.LastDigest, ShouldEqual, d1)
			So(next.Check(2, d1), ShouldBeNil)
			So(errors.Is(next.Check(2, g), types.ErrChainMismatch), ShouldBeTrue)

			Convey("the original head value should be untouched", func() {
				So(head.Seq, ShouldEqual, 0)
				So(head.LastDigest, ShouldEqual, g)
			})
		})
		Convey("a head at the last sequence number should refuse more messages", func() {
			full := Head{Seq: math.MaxUint32}
			_, err := full.Expect(0)
			So(errors.Is(err, types.ErrSequence), ShouldBeTrue)
		})
	})
}

func TestReplay(t *testing.T) {
	Convey("Given a recorded transcript", t, func() {
		head, err := NewHead(big.NewInt(7), big.NewInt(1))
		So(err, ShouldBeNil)
		d1 := crypto.Keccak256Hash([]byte("1"))
		d2 := crypto.Keccak256Hash([]byte("2"))
		d3 := crypto.Keccak256Hash([]byte("3"))
		links := []Link{
			{Seq: 1, PrevHash: head.LastDigest, Digest: d1},
			{Seq: 2, PrevHash: d1, Digest: d2},
			{Seq: 3, PrevHash: d2, Digest: d3},
		}

		Convey("a linked transcript should replay to its last digest", func() {
			end, err := Replay(head, links)
			So(err, ShouldBeNil)
			So(end, ShouldResemble, Head{Seq: 3, LastDigest: d3})
		})
		Convey("a broken link should stop the replay", func() {
			links[2].PrevHash = d1
			end, err := Replay(head, links)
			So(errors.Is(err, types.ErrChainMismatch), ShouldBeTrue)
			So(end, ShouldResemble, Head{Seq: 2, LastDigest: d2})
		})
		Convey("a reordered transcript should be a sequence error", func() {
			links[1], links[2] = links[2], links[1]
			_, err := Replay(head, links)
			So(errors.Is(err, types.ErrSequence), ShouldBeTrue)
		})
	})
}
