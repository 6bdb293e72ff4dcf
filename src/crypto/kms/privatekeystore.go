package kms

import (
	"bytes"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/blackyblack/poker-contracts-sub001/src/crypto/asymmetric"
	"github.com/blackyblack/poker-contracts-sub001/src/crypto/symmetric"
	"github.com/blackyblack/poker-contracts-sub001/src/utils/log"
)

const (
	keyFileSaltLen = 16
	checksumLen    = 32
)

var (
	// ErrNotKeyFile indicates specified key file is empty or too short.
	ErrNotKeyFile = errors.New("private key file empty")
	// ErrHashNotMatch indicates specified key hash is wrong, usually a wrong master key.
	ErrHashNotMatch = errors.New("private key hash not match")
)

// SavePrivateKey saves private key with password as encrypted file.
func SavePrivateKey(keyFilePath string, key *asymmetric.PrivateKey, masterKey []byte) (err error) {
	if key == nil {
		return errors.New("nil private key")
	}
	serializedKey := key.Serialize()
	keyHash := crypto.Keccak256(serializedKey)
	rawData := append(keyHash, serializedKey...)

	salt := make([]byte, keyFileSaltLen)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return errors.Wrap(err, "read key file salt failed")
	}
	var encKey []byte
	if encKey, err = symmetric.EncryptWithPassword(rawData, masterKey, salt); err != nil {
		return errors.Wrap(err, "encrypt private key failed")
	}

	if dir := filepath.Dir(keyFilePath); dir != "" {
		if err = os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "create key dir %s failed", dir)
		}
	}
	if err = os.WriteFile(keyFilePath, append(salt, encKey...), 0600); err != nil {
		return errors.Wrapf(err, "write key file %s failed", keyFilePath)
	}
	log.WithFields(log.Fields{
		"file":    keyFilePath,
		"address": key.Address().Hex(),
	}).Debug("saved private key")
	return
}

// LoadPrivateKey loads private key from keyFilePath, and verifies the hash
// head.
func LoadPrivateKey(keyFilePath string, masterKey []byte) (key *asymmetric.PrivateKey, err error) {
	var fileContent []byte
	if fileContent, err = os.ReadFile(keyFilePath); err != nil {
		err = errors.Wrapf(err, "read key file %s failed", keyFilePath)
		return
	}
	if len(fileContent) <= keyFileSaltLen {
		err = ErrNotKeyFile
		return
	}

	var decData []byte
	decData, err = symmetric.DecryptWithPassword(fileContent[keyFileSaltLen:], masterKey,
		fileContent[:keyFileSaltLen])
	switch {
	case err == symmetric.ErrPadding:
		// garbage plain data, the master key is wrong
		err = ErrHashNotMatch
		return
	case err != nil:
		err = errors.Wrap(err, "decrypt private key failed")
		return
	}

	if len(decData) != checksumLen+asymmetric.PrivateKeyBytesLen {
		err = ErrHashNotMatch
		return
	}
	computedHash := crypto.Keccak256(decData[checksumLen:])
	if !bytes.Equal(computedHash, decData[:checksumLen]) {
		err = ErrHashNotMatch
		return
	}

	key, _, err = asymmetric.PrivKeyFromBytes(decData[checksumLen:])
	return
}
