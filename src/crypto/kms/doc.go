// Package kms stores player private keys on disk encrypted with a master key. The key file
// carries a random scrypt salt, then the AES-256-CBC encrypted checksum and scalar, so a wrong
// master key is detected instead of yielding another valid looking key.
package kms
