package tx

import (
	"encoding/hex"

	"github.com/meridian-labs/meridian-sdk/pkg/codec"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

// Seal signs a payload and encodes the full wire envelope as a hex string:
// the payload's wire fields, the signer's 32-byte public key, and the
// 64-byte signature.
//
// The signature covers SigningPayload, which for TokenDefinition differs
// from the wire body (the derived token id is transmitted but not
// signed-over). Ed25519 is deterministic, so sealing the same payload with
// the same wallet twice produces byte-identical envelopes.
func Seal(p Payload, signer *wallet.Wallet) (string, error) {
	if signer == nil {
		return "", &BuildError{Kind: p.Kind(), Message: "nil wallet"}
	}

	sig := signer.Sign(p.SigningPayload())
	pub := signer.PublicKey()

	w := codec.NewWriter()
	w.WriteFixedBytes(p.wireBody())
	w.WriteFixedBytes(pub[:])
	w.WriteFixedBytes(sig[:])
	return hex.EncodeToString(w.Bytes()), nil
}
