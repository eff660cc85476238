// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ed25519 implements cryptography utilities
// with Edwards-curve Digital Signature Algorithm (EdDSA).
package ed25519

import (
	"crypto/ed25519"
	"errors"
	"os"

	"github.com/ava-labs/avalanchego/utils/formatting"
)

const (
	// SignatureSize is the byte length of a detached signature.
	SignatureSize = ed25519.SignatureSize

	// PublicKeySize is the byte length of a public key.
	PublicKeySize = ed25519.PublicKeySize
)

var (
	ErrInvalidPrivateKeyLen = errors.New("invalid private key length")
	ErrInvalidPublicKeyLen  = errors.New("invalid public key length")
)

type PublicKey interface {
	Verify(message, signature []byte) bool
	VerifyHash(hash, signature []byte) bool

	Address() string
	Bytes() []byte
}

type PrivateKey interface {
	PublicKey() PublicKey

	Sign(message []byte) ([]byte, error)
	SignHash(hash []byte) ([]byte, error)

	Bytes() []byte
}

// NewPrivateKey generates a fresh keypair.
func NewPrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	return &PrivateKeyED25519{sk: k}, err
}

// LoadPrivateKey loads a private key from raw bytes.
func LoadPrivateKey(k []byte) (PrivateKey, error) {
	if len(k) != ed25519.PrivateKeySize {
		return nil, ErrInvalidPrivateKeyLen
	}
	return &PrivateKeyED25519{sk: k}, nil
}

// LoadPublicKey loads a public key from raw bytes.
func LoadPublicKey(k []byte) (PublicKey, error) {
	if len(k) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKeyLen
	}
	return &PublicKeyED25519{pk: k}, nil
}

// LoadPrivateKeyFile loads a private key from a file written by
// WritePrivateKeyFile.
func LoadPrivateKeyFile(path string) (PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadPrivateKey(raw)
}

// WritePrivateKeyFile persists a private key with owner-only permissions.
func WritePrivateKeyFile(path string, k PrivateKey) error {
	return os.WriteFile(path, k.Bytes(), 0o600)
}

type PublicKeyED25519 struct {
	pk   ed25519.PublicKey
	addr string
}

// Verify implements the PublicKey interface
func (k *PublicKeyED25519) Verify(msg, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(k.pk, msg, sig)
}

// VerifyHash implements the PublicKey interface
func (k *PublicKeyED25519) VerifyHash(hash, sig []byte) bool {
	return k.Verify(hash, sig)
}

// Address implements the PublicKey interface
func (k *PublicKeyED25519) Address() string {
	if len(k.addr) == 0 {
		addr, err := formatting.EncodeWithChecksum(formatting.CB58, k.pk)
		if err != nil {
			panic(err)
		}
		k.addr = addr
	}
	return k.addr
}

// Bytes implements the PublicKey interface
func (k *PublicKeyED25519) Bytes() []byte { return k.pk }

type PrivateKeyED25519 struct {
	sk ed25519.PrivateKey
	pk *PublicKeyED25519
}

// PublicKey implements the PrivateKey interface
func (k *PrivateKeyED25519) PublicKey() PublicKey {
	if k.pk == nil {
		k.pk = &PublicKeyED25519{
			pk: k.sk.Public().(ed25519.PublicKey),
		}
	}
	return k.pk
}

// Sign implements the PrivateKey interface
func (k *PrivateKeyED25519) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(k.sk, msg), nil
}

// SignHash implements the PrivateKey interface
func (k *PrivateKeyED25519) SignHash(hash []byte) ([]byte, error) {
	return k.Sign(hash)
}

// Bytes implements the PrivateKey interface
func (k *PrivateKeyED25519) Bytes() []byte { return k.sk }
