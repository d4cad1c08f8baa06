package wallet

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/btcsuite/btcutil/base58"
)

// keyVersion is the version byte prefixed to base58check key exports,
// distinguishing Meridian key exports from other base58check payloads.
const keyVersion = 0x4D

// ExportBase58 encodes the private key as base58check:
// version_byte || seed (32 bytes) || checksum (4 bytes).
//
// The checksum is the first 4 bytes of double SHA-256 over the version byte
// and seed, so a mistyped character is detected on import rather than
// producing a different wallet.
func (w *Wallet) ExportBase58() string {
	payload := make([]byte, 0, 1+PrivateKeySize+4)
	payload = append(payload, keyVersion)
	payload = append(payload, w.seed[:]...)

	hash1 := sha256.Sum256(payload)
	hash2 := sha256.Sum256(hash1[:])
	payload = append(payload, hash2[:4]...)

	return base58.Encode(payload)
}

// ImportBase58 decodes a base58check key export and constructs the Wallet.
func ImportBase58(s string) (*Wallet, error) {
	decoded := base58.Decode(s)
	if len(decoded) != 1+PrivateKeySize+4 {
		return nil, &KeyFormatError{Message: "invalid base58check key length"}
	}

	if decoded[0] != keyVersion {
		return nil, &KeyFormatError{Message: "invalid key export version byte"}
	}

	payload := decoded[:1+PrivateKeySize]
	providedChecksum := decoded[1+PrivateKeySize:]

	hash1 := sha256.Sum256(payload)
	hash2 := sha256.Sum256(hash1[:])
	if subtle.ConstantTimeCompare(providedChecksum, hash2[:4]) != 1 {
		return nil, &KeyFormatError{Message: "key export checksum mismatch"}
	}

	return FromPrivateKey(decoded[1 : 1+PrivateKeySize])
}
