// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"path/filepath"
	"testing"
)

func TestSignVerify(t *testing.T) {
	t.Parallel()

	priv, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("telemint voucher digest")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sig) != SignatureSize {
		t.Fatalf("unexpected signature size %d", len(sig))
	}
	if !priv.PublicKey().Verify(msg, sig) {
		t.Fatal("signature did not verify")
	}

	// any single flipped bit must break verification
	for i := 0; i < len(msg)*8; i += 7 {
		tampered := make([]byte, len(msg))
		copy(tampered, msg)
		tampered[i/8] ^= 1 << uint(i%8)
		if priv.PublicKey().Verify(tampered, sig) {
			t.Fatalf("verified tampered message (bit %d)", i)
		}
	}

	other, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	if other.PublicKey().Verify(msg, sig) {
		t.Fatal("verified with wrong key")
	}
	if priv.PublicKey().Verify(msg, sig[:10]) {
		t.Fatal("verified truncated signature")
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	t.Parallel()

	priv, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "authority.pk")
	if err := WritePrivateKeyFile(path, priv); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadPrivateKeyFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.PublicKey().Address() != priv.PublicKey().Address() {
		t.Fatal("loaded key has different address")
	}
}
