package eip712

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

// DefaultSeparatorCacheSize is the separator cache size used when none is configured.
const DefaultSeparatorCacheSize = 64

// DomainSeparator returns
// keccak256(abi.encode(DomainTypeHash, keccak256(name), keccak256(version), chainId, verifyingContract)).
func DomainSeparator(d *types.Domain) (sep common.Hash, err error) {
	if d == nil {
		err = &types.EncodingError{Field: "domain", Reason: "is nil"}
		return
	}
	if err = d.Validate(); err != nil {
		return
	}
	var enc []byte
	if enc, err = domainArgs.Pack(
		DomainTypeHash,
		crypto.Keccak256Hash([]byte(d.Name)),
		crypto.Keccak256Hash([]byte(d.Version)),
		d.ChainID,
		d.VerifyingContract,
	); err != nil {
		err = &types.EncodingError{Field: "domain", Reason: err.Error()}
		return
	}
	sep = crypto.Keccak256Hash(enc)
	return
}

type domainKey struct {
	name     common.Hash
	version  common.Hash
	chainID  string
	contract common.Address
}

// Separators caches domain separators of the domains a process talks to.
type Separators struct {
	cache *lru.Cache
}

// NewSeparators creates a separator cache holding at most size domains.
func NewSeparators(size int) (s *Separators, err error) {
	if size <= 0 {
		size = DefaultSeparatorCacheSize
	}
	var cache *lru.Cache
	if cache, err = lru.New(size); err != nil {
		err = errors.Wrap(err, "create separator cache failed")
		return
	}
	s = &Separators{cache: cache}
	return
}

// Get returns the separator of d, computing it on first use.
func (s *Separators) Get(d *types.Domain) (sep common.Hash, err error) {
	if d == nil || d.ChainID == nil {
		return DomainSeparator(d)
	}
	key := domainKey{
		name:     crypto.Keccak256Hash([]byte(d.Name)),
		version:  crypto.Keccak256Hash([]byte(d.Version)),
		chainID:  d.ChainID.String(),
		contract: d.VerifyingContract,
	}
	if v, ok := s.cache.Get(key); ok {
		sep = v.(common.Hash)
		return
	}
	if sep, err = DomainSeparator(d); err != nil {
		return
	}
	s.cache.Add(key, sep)
	log.WithFields(log.Fields{
		"name":     d.Name,
		"version":  d.Version,
		"chain":    key.chainID,
		"contract": d.VerifyingContract.Hex(),
		"sep":      sep.Hex(),
	}).Debug("computed domain separator")
	return
}

// Len returns the number of cached separators.
func (s *Separators) Len() int {
	return s.cache.Len()
}
