// Package dm implements the encryption layer for direct-message content.
//
// The same Ed25519 keypair a wallet signs with also serves for key exchange:
// both halves convert deterministically to X25519, the private key via the
// standard SHA-512 expand-and-clamp, the public key via the birational map
// from the Edwards curve to Montgomery form. Two parties then derive the
// identical 32-byte shared secret by Diffie-Hellman, and message content is
// sealed with ChaCha20-Poly1305.
//
// Asymmetric encryption is ephemeral-static: every Encrypt call generates a
// fresh ephemeral X25519 keypair, so no two messages share a key. Decryption
// authenticates; any ciphertext tampering or wrong key fails loudly rather
// than returning corrupted plaintext.
package dm

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
)

// KeySize is the width of X25519 keys and derived shared secrets.
const KeySize = 32

// NonceSize is the AEAD nonce width.
const NonceSize = chacha20poly1305.NonceSize

// Message is the output of asymmetric encryption: the sender's ephemeral
// public key, the AEAD nonce, and the sealed ciphertext (plaintext plus
// a 16-byte authentication tag).
type Message struct {
	EphemeralPublicKey [KeySize]byte
	Nonce              [NonceSize]byte
	Ciphertext         []byte
}

// SecretToX25519 converts a 32-byte Ed25519 private key (seed) to the
// corresponding X25519 private scalar: the clamped first half of the
// seed's SHA-512 digest. Deterministic.
func SecretToX25519(seed [32]byte) [KeySize]byte {
	digest := sha512.Sum512(seed[:])
	digest[0] &= 248
	digest[31] &= 127
	digest[31] |= 64

	var out [KeySize]byte
	copy(out[:], digest[:KeySize])
	return out
}

// PublicToX25519 converts an Ed25519 public key to the corresponding X25519
// public key (the Montgomery u-coordinate of the same point). Fails if the
// bytes do not decode as a curve point.
func PublicToX25519(pub [32]byte) ([KeySize]byte, error) {
	var out [KeySize]byte
	point, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return out, fmt.Errorf("dm: invalid ed25519 public key: %w", err)
	}
	copy(out[:], point.BytesMontgomery())
	return out, nil
}

// SharedSecret derives the 32-byte symmetric secret shared between the
// holder of myPrivate and the holder of theirPublic. Symmetric: both sides
// derive the identical value. The raw X25519 output is passed through
// BLAKE3 so the secret is uniformly distributed.
func SharedSecret(myPrivate, theirPublic [KeySize]byte) ([KeySize]byte, error) {
	var out [KeySize]byte
	raw, err := curve25519.X25519(myPrivate[:], theirPublic[:])
	if err != nil {
		return out, fmt.Errorf("dm: key exchange failed: %w", err)
	}
	return blake3.Sum256(raw), nil
}

// Encrypt seals plaintext for the holder of recipientPublic (an X25519 key).
//
// A fresh ephemeral keypair is generated per call and never reused. Supports
// zero-length and arbitrarily large plaintexts. Fails loudly if the system
// CSPRNG is unavailable; there is no weak-randomness fallback.
func Encrypt(recipientPublic [KeySize]byte, plaintext []byte) (*Message, error) {
	var ephemeralPrivate [KeySize]byte
	if _, err := io.ReadFull(rand.Reader, ephemeralPrivate[:]); err != nil {
		return nil, fmt.Errorf("dm: no secure random source for ephemeral key: %w", err)
	}

	ephemeralPublic, err := curve25519.X25519(ephemeralPrivate[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("dm: ephemeral key derivation failed: %w", err)
	}

	secret, err := SharedSecret(ephemeralPrivate, recipientPublic)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(secret[:])
	if err != nil {
		return nil, fmt.Errorf("dm: aead init failed: %w", err)
	}

	msg := &Message{}
	copy(msg.EphemeralPublicKey[:], ephemeralPublic)
	if _, err := io.ReadFull(rand.Reader, msg.Nonce[:]); err != nil {
		return nil, fmt.Errorf("dm: no secure random source for nonce: %w", err)
	}

	msg.Ciphertext = aead.Seal(nil, msg.Nonce[:], plaintext, nil)
	return msg, nil
}

// Decrypt opens a sealed message with the recipient's X25519 private key.
//
// Fails on any ciphertext tampering or a wrong key; the AEAD tag check
// rejects modified bytes rather than returning corrupted plaintext.
func Decrypt(recipientPrivate [KeySize]byte, ephemeralPublic [KeySize]byte, nonce [NonceSize]byte, ciphertext []byte) ([]byte, error) {
	secret, err := SharedSecret(recipientPrivate, ephemeralPublic)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(secret[:])
	if err != nil {
		return nil, fmt.Errorf("dm: aead init failed: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce[:], ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("dm: decryption failed: %w", err)
	}
	return plaintext, nil
}

// SealSymmetric encrypts plaintext under a pre-shared 32-byte key.
// Output layout: nonce || ciphertext.
func SealSymmetric(key [KeySize]byte, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("dm: aead init failed: %w", err)
	}

	out := make([]byte, NonceSize, NonceSize+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, out[:NonceSize]); err != nil {
		return nil, fmt.Errorf("dm: no secure random source for nonce: %w", err)
	}

	return aead.Seal(out, out[:NonceSize], plaintext, nil), nil
}

// OpenSymmetric decrypts a nonce || ciphertext box sealed by SealSymmetric.
func OpenSymmetric(key [KeySize]byte, box []byte) ([]byte, error) {
	if len(box) < NonceSize {
		return nil, fmt.Errorf("dm: box too short: %d bytes", len(box))
	}

	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("dm: aead init failed: %w", err)
	}

	plaintext, err := aead.Open(nil, box[:NonceSize], box[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("dm: decryption failed: %w", err)
	}
	return plaintext, nil
}
