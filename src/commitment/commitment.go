// Package commitment implements the card commit and reveal scheme.
//
// A commitment is keccak256(abi.encodePacked(bytes32 domainSep, uint256 channelId, uint8 slot,
// uint8 card, bytes32 salt)), the 98 bytes preimage binds the card to one domain, channel and
// slot and the salt hides it until the opening is revealed.
package commitment

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	pkgerrors "github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils"
)

// PreimageLength is the packed commitment preimage length.
const PreimageLength = 32 + 32 + 1 + 1 + 32

var (
	// ErrCommitmentMismatch indicates an opening that doesn't reduce to the published commitment.
	ErrCommitmentMismatch = errors.New("opening not match commitment")
)

// Preimage returns the packed commitment preimage.
func Preimage(domainSep common.Hash, channelID *big.Int, slot uint8, card uint8, salt common.Hash) (
	pre []byte, err error) {
	if err = types.CheckUint256("channelId", channelID); err != nil {
		return
	}
	pre = utils.ConcatAll(
		domainSep[:],
		math.PaddedBigBytes(channelID, 32),
		[]byte{slot, card},
		salt[:],
	)
	return
}

// Commit returns the commitment to card at slot.
func Commit(domainSep common.Hash, channelID *big.Int, slot uint8, card uint8, salt common.Hash) (
	h common.Hash, err error) {
	var pre []byte
	if pre, err = Preimage(domainSep, channelID, slot, card, salt); err != nil {
		return
	}
	h = crypto.Keccak256Hash(pre)
	return
}

// Matches reports whether the opening reduces to commitHash.
func Matches(commitHash common.Hash, domainSep common.Hash, channelID *big.Int, slot uint8,
	o types.Opening) bool {
	h, err := Commit(domainSep, channelID, slot, o.Card, o.Salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(h[:], commitHash[:]) == 1
}

// Verify is Matches returning ErrCommitmentMismatch, or an EncodingError for a bad channel id.
func Verify(commitHash common.Hash, domainSep common.Hash, channelID *big.Int, slot uint8,
	o types.Opening) (err error) {
	var h common.Hash
	if h, err = Commit(domainSep, channelID, slot, o.Card, o.Salt); err != nil {
		return
	}
	if subtle.ConstantTimeCompare(h[:], commitHash[:]) != 1 {
		err = ErrCommitmentMismatch
	}
	return
}

// NewSalt draws a fresh salt from the system CSPRNG, never reuse it across slots or hands.
func NewSalt() (salt common.Hash, err error) {
	if _, err = rand.Read(salt[:]); err != nil {
		err = pkgerrors.Wrap(err, "read random salt failed")
	}
	return
}

// NewOpening returns an opening of card with a fresh salt.
func NewOpening(card uint8) (o types.Opening, err error) {
	o.Card = card
	o.Salt, err = NewSalt()
	return
}
