// Package symmetric implements Symmetric Encryption methods.
package symmetric

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

var (
	// ErrInputSize indicates cipher data size is not expected,
	// maybe data is not encrypted by EncryptWithPassword in this package
	ErrInputSize = errors.New("cipher data size not match")
	// ErrPadding indicates the decrypted data has broken PKCS#7 padding,
	// usually caused by a wrong password.
	ErrPadding = errors.New("invalid padding")
)

// KeyDerivation derives a 256 bits key from password and salt with scrypt.
func KeyDerivation(password []byte, salt []byte) (out []byte, err error) {
	return scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
}

// EncryptWithPassword encrypts data with given password, iv will be placed
// at head of cipher data.
func EncryptWithPassword(in, password []byte, salt []byte) (out []byte, err error) {
	// keyE will be 256 bits, so aes.NewCipher(keyE) will return
	// AES-256 Cipher.
	var keyE []byte
	if keyE, err = KeyDerivation(password, salt); err != nil {
		return nil, err
	}
	paddedIn := addPKCSPadding(in)
	// IV + padded cipher data
	out = make([]byte, aes.BlockSize+len(paddedIn))

	// as IV length must equal block size, iv length should be 128 bits
	iv := out[:aes.BlockSize]
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	block, _ := aes.NewCipher(keyE)

	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(out[aes.BlockSize:], paddedIn)

	return out, nil
}

// DecryptWithPassword decrypts data with given password.
func DecryptWithPassword(in, password []byte, salt []byte) (out []byte, err error) {
	// IV + padded cipher data == (n + 1 + 1) * aes.BlockSize
	if len(in)%aes.BlockSize != 0 || len(in)/aes.BlockSize < 2 {
		return nil, ErrInputSize
	}
	var keyE []byte
	if keyE, err = KeyDerivation(password, salt); err != nil {
		return nil, err
	}

	// read IV
	iv := in[:aes.BlockSize]

	block, _ := aes.NewCipher(keyE)

	mode := cipher.NewCBCDecrypter(block, iv)
	// same length as cipher data
	plainData := make([]byte, len(in)-aes.BlockSize)
	mode.CryptBlocks(plainData, in[aes.BlockSize:])

	return removePKCSPadding(plainData)
}

func addPKCSPadding(in []byte) []byte {
	padding := aes.BlockSize - len(in)%aes.BlockSize
	return append(append([]byte{}, in...), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func removePKCSPadding(in []byte) ([]byte, error) {
	if len(in) == 0 {
		return nil, ErrPadding
	}
	padding := int(in[len(in)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(in) {
		return nil, ErrPadding
	}
	for _, b := range in[len(in)-padding:] {
		if int(b) != padding {
			return nil, ErrPadding
		}
	}
	return in[:len(in)-padding], nil
}
