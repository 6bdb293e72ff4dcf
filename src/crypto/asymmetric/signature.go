// Package asymmetric implements the secp256k1 key pairs players sign messages with.
package asymmetric

import (
	"crypto/ecdsa"

	ec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/types"
)

// PrivateKeyBytesLen defines the length in bytes of a serialized private key.
const PrivateKeyBytesLen = 32

var (
	// ErrInvalidPrivateKey indicates bytes that are not a valid secp256k1 scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// PrivateKey wraps an ec.PrivateKey as a convenience mainly for signing things with the
// private key without having to directly import the ecdsa package.
type PrivateKey ec.PrivateKey

// PublicKey wraps an ec.PublicKey.
type PublicKey ec.PublicKey

// GenSecp256k1KeyPair generate Secp256k1(used by Bitcoin and Ethereum) key pair.
func GenSecp256k1KeyPair() (privateKey *PrivateKey, publicKey *PublicKey, err error) {
	var privateKeyEc *ec.PrivateKey
	if privateKeyEc, err = ec.NewPrivateKey(); err != nil {
		err = errors.Wrap(err, "generate private key failed")
		return
	}
	privateKey = (*PrivateKey)(privateKeyEc)
	publicKey = (*PublicKey)(privateKeyEc.PubKey())
	return
}

// PrivKeyFromBytes parses a 32 bytes big endian scalar.
func PrivKeyFromBytes(b []byte) (privateKey *PrivateKey, publicKey *PublicKey, err error) {
	if len(b) != PrivateKeyBytesLen {
		err = errors.Wrapf(ErrInvalidPrivateKey, "length %d", len(b))
		return
	}
	// reject zero and scalars not below the group order
	if _, err = crypto.ToECDSA(b); err != nil {
		err = errors.Wrap(ErrInvalidPrivateKey, err.Error())
		return
	}
	priv, pub := ec.PrivKeyFromBytes(b)
	privateKey, publicKey = (*PrivateKey)(priv), (*PublicKey)(pub)
	return
}

// Serialize returns the private key as a 32 bytes big endian scalar.
func (p *PrivateKey) Serialize() []byte {
	return (*ec.PrivateKey)(p).Serialize()
}

// PubKey returns the PublicKey corresponding to this private key.
func (p *PrivateKey) PubKey() *PublicKey {
	return (*PublicKey)((*ec.PrivateKey)(p).PubKey())
}

// ToECDSA returns the key as a go-ethereum curve ecdsa key.
func (p *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	// Serialize is always a valid 32 bytes scalar
	key, _ := crypto.ToECDSA(p.Serialize())
	return key
}

// Address returns the account address of the key.
func (p *PrivateKey) Address() common.Address {
	return p.PubKey().Address()
}

// Sign signs digest and returns r || s || v with v in {27, 28}.
func (p *PrivateKey) Sign(digest common.Hash) (sig types.Signature, err error) {
	var raw []byte
	if raw, err = crypto.Sign(digest[:], p.ToECDSA()); err != nil {
		err = errors.Wrap(err, "sign digest failed")
		return
	}
	raw[crypto.RecoveryIDOffset] += 27
	return types.BytesToSignature(raw)
}

// Serialize returns the 33 bytes compressed form of the public key.
func (k *PublicKey) Serialize() []byte {
	return (*ec.PublicKey)(k).SerializeCompressed()
}

// Address returns keccak256(uncompressed point)[12:].
func (k *PublicKey) Address() common.Address {
	uncompressed := (*ec.PublicKey)(k).SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:])[12:])
}

// IsEqual reports whether k and other are the same point.
func (k *PublicKey) IsEqual(other *PublicKey) bool {
	return (*ec.PublicKey)(k).IsEqual((*ec.PublicKey)(other))
}

// ParsePubKey parses a compressed or uncompressed public key.
func ParsePubKey(b []byte) (publicKey *PublicKey, err error) {
	var pub *ec.PublicKey
	if pub, err = ec.ParsePubKey(b); err != nil {
		err = errors.Wrap(err, "parse public key failed")
		return
	}
	publicKey = (*PublicKey)(pub)
	return
}
