// Package tx implements transaction signing payloads and wire envelopes
// for the five Meridian transaction kinds.
//
// Every kind follows the same shape: assemble the canonical signing payload
// from the semantic fields in a fixed order, sign it with the wallet's
// Ed25519 key, then emit the wire envelope (the same fields, followed by the
// 32-byte public key and the 64-byte signature) as a hex string ready for
// submission. Field order and widths are a hard consensus contract; the
// verifying node reconstructs the identical payload byte-for-byte, so any
// deviation silently breaks all signature verification.
//
// Payload field orders:
//
//	Transfer          from(20) || to(20) || tokenId(32) || amount(u128) || timestamp(u64) || memo(option string)
//	NameRegistration  name(string) || owner(20) || timestamp(u64) || feePaid(u128)
//	TokenDefinition   name(string) || symbol(string) || decimals(u8) || maxSupply(u128) || creator(20) || timestamp(u64)
//	TokenMint         tokenId(32) || to(20) || amount(u128) || timestamp(u64)
//	TokenBurn         tokenId(32) || amount(u128) || burner(20) || timestamp(u64)
package tx

import (
	"encoding/hex"

	"github.com/meridian-labs/meridian-sdk/pkg/codec"
)

// TokenIDSize is the width of a token identifier.
const TokenIDSize = 32

// TokenID identifies an asset. The all-zero value is reserved for the
// native asset; user-defined tokens are content-addressed (see
// TokenDefinition.DerivedID).
type TokenID [TokenIDSize]byte

// NativeTokenID is the reserved all-zero identifier of the native asset.
var NativeTokenID = TokenID{}

// IsNative reports whether the id denotes the native asset.
func (id TokenID) IsNative() bool {
	return id == NativeTokenID
}

// Hex returns the lowercase hex encoding of the token id.
func (id TokenID) Hex() string {
	return hex.EncodeToString(id[:])
}

// Protocol configuration. These are fixed named constants, not mutable
// state; anything network-upgradable would require a protocol version bump.
var (
	// DefaultNameRegistrationFee is the fee charged for registering a
	// name, in the native asset's smallest unit (100 whole units at
	// 12 decimals).
	DefaultNameRegistrationFee = codec.U128From64(100_000_000_000_000)
)
