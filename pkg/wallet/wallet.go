// Package wallet implements Ed25519 key management for the Meridian network.
//
// A Wallet holds a 32-byte private key (the Ed25519 seed), the public key
// derived from it, and the 20-byte account address derived from the public
// key. Signatures are standard Ed25519: 64 bytes, deterministic, verifiable
// against the public key.
//
// Key formats:
//   - Private keys: raw 32 bytes, hex (optionally 0x-prefixed), or
//     base58check export (version byte || seed || 4-byte checksum)
//   - Public keys: raw 32 bytes
//   - Addresses: first 20 bytes of BLAKE3-256 of the public key
//
// The private key is secret material. This package never logs or transmits
// it; zeroing it after use is the caller's responsibility.
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"github.com/zeebo/blake3"
)

// Key and signature widths.
const (
	PrivateKeySize = 32
	PublicKeySize  = 32
	SignatureSize  = 64
	AddressSize    = 20
)

// Address is the 20-byte account identifier derived from a public key.
type Address [AddressSize]byte

// Hex returns the lowercase hex encoding of the address.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// AddressOf derives the account address for a public key: the first 20
// bytes of BLAKE3-256 of the key. One-way and deterministic.
func AddressOf(pub [PublicKeySize]byte) Address {
	sum := blake3.Sum256(pub[:])
	var a Address
	copy(a[:], sum[:AddressSize])
	return a
}

// SecureRandomSource supplies cryptographically secure random bytes.
//
// Production code uses the operating system CSPRNG; tests can inject a
// deterministic source. Generate fails loudly if the source errors or runs
// short, it never falls back to a weaker source.
type SecureRandomSource interface {
	Read(p []byte) (n int, err error)
}

// Wallet holds a private key and its derived public key and address.
// Immutable after construction.
type Wallet struct {
	seed [PrivateKeySize]byte
	priv ed25519.PrivateKey
	pub  [PublicKeySize]byte
	addr Address
}

// FromPrivateKey constructs a Wallet from a raw 32-byte private key.
func FromPrivateKey(key []byte) (*Wallet, error) {
	if len(key) != PrivateKeySize {
		return nil, &KeyLengthError{Got: len(key)}
	}

	w := &Wallet{}
	copy(w.seed[:], key)
	w.priv = ed25519.NewKeyFromSeed(w.seed[:])
	copy(w.pub[:], w.priv.Public().(ed25519.PublicKey))
	w.addr = AddressOf(w.pub)
	return w, nil
}

// FromPrivateKeyHex constructs a Wallet from a hex-encoded private key.
// An optional "0x" prefix is accepted; the remainder must be exactly 64
// hex characters.
func FromPrivateKeyHex(s string) (*Wallet, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*PrivateKeySize {
		return nil, &KeyFormatError{Message: "private key hex must be 64 characters"}
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, &KeyFormatError{Message: "private key hex contains non-hex characters"}
	}
	return FromPrivateKey(key)
}

// Generate produces a Wallet from the operating system CSPRNG.
func Generate() (*Wallet, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom produces a Wallet from the given random source. The source
// must supply 32 bytes; any failure surfaces as a RandomSourceError.
func GenerateFrom(src SecureRandomSource) (*Wallet, error) {
	if src == nil {
		return nil, &RandomSourceError{Message: "no secure random source available"}
	}
	var seed [PrivateKeySize]byte
	if _, err := io.ReadFull(src, seed[:]); err != nil {
		return nil, &RandomSourceError{Message: "secure random source failed", Cause: err}
	}
	return FromPrivateKey(seed[:])
}

// Sign produces a 64-byte Ed25519 signature over message.
func (w *Wallet) Sign(message []byte) [SignatureSize]byte {
	var sig [SignatureSize]byte
	copy(sig[:], ed25519.Sign(w.priv, message))
	return sig
}

// PublicKey returns the 32-byte public key.
func (w *Wallet) PublicKey() [PublicKeySize]byte {
	return w.pub
}

// Address returns the derived 20-byte account address.
func (w *Wallet) Address() Address {
	return w.addr
}

// PrivateKeyBytes returns a copy of the raw 32-byte private key.
func (w *Wallet) PrivateKeyBytes() [PrivateKeySize]byte {
	return w.seed
}

// PublicKeyHex returns the lowercase hex encoding of the public key.
func (w *Wallet) PublicKeyHex() string {
	return hex.EncodeToString(w.pub[:])
}

// AddressHex returns the lowercase hex encoding of the address.
func (w *Wallet) AddressHex() string {
	return w.addr.Hex()
}

// Verify reports whether sig is a valid signature over message by the
// holder of pub.
func Verify(pub [PublicKeySize]byte, message []byte, sig [SignatureSize]byte) bool {
	return ed25519.Verify(pub[:], message, sig[:])
}
