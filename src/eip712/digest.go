package eip712

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

// typedDataPrefix marks a digest as EIP-712 typed structured data.
var typedDataPrefix = []byte{0x19, 0x01}

// Digest returns keccak256(0x19 || 0x01 || domainSep || structHash).
func Digest(domainSep, structHash common.Hash) common.Hash {
	return crypto.Keccak256Hash(typedDataPrefix, domainSep[:], structHash[:])
}

// ActionDigest returns the digest a player signs for a.
func ActionDigest(domainSep common.Hash, a *types.Action) (d common.Hash, err error) {
	var h common.Hash
	if h, err = HashAction(a); err != nil {
		return
	}
	d = Digest(domainSep, h)
	return
}

// CardCommitDigest returns the digest a player signs for c.
func CardCommitDigest(domainSep common.Hash, c *types.CardCommit) (d common.Hash, err error) {
	var h common.Hash
	if h, err = HashCardCommit(c); err != nil {
		return
	}
	d = Digest(domainSep, h)
	return
}
