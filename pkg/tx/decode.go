// Wire envelope decoding.
//
// Decoding mirrors Seal exactly: semantic fields in payload order, then the
// sender's public key and signature. Decoders reject trailing bytes and any
// short field, and expose VerifySignature so a receiver can check the
// envelope without trusting its origin.
package tx

import (
	"encoding/hex"

	"github.com/meridian-labs/meridian-sdk/pkg/codec"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

// authenticator is the trailing public key and signature every envelope
// carries.
type authenticator struct {
	PublicKey [wallet.PublicKeySize]byte
	Signature [wallet.SignatureSize]byte
}

// decodeHex unwraps the hex layer of an envelope.
func decodeHex(kind Kind, s string) (*codec.Reader, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &EnvelopeError{Kind: kind, Message: "invalid hex", Cause: err}
	}
	return codec.NewReader(raw), nil
}

// finish reads the trailing public key and signature and rejects leftovers.
func finish(kind Kind, r *codec.Reader, auth *authenticator) error {
	pub, err := r.ReadFixedBytes(wallet.PublicKeySize)
	if err != nil {
		return &EnvelopeError{Kind: kind, Message: "short public key", Cause: err}
	}
	sig, err := r.ReadFixedBytes(wallet.SignatureSize)
	if err != nil {
		return &EnvelopeError{Kind: kind, Message: "short signature", Cause: err}
	}
	if r.Remaining() != 0 {
		return &EnvelopeError{Kind: kind, Message: "trailing bytes after signature"}
	}
	copy(auth.PublicKey[:], pub)
	copy(auth.Signature[:], sig)
	return nil
}

func readAddress(kind Kind, r *codec.Reader, field string) (wallet.Address, error) {
	var a wallet.Address
	b, err := r.ReadFixedBytes(wallet.AddressSize)
	if err != nil {
		return a, &EnvelopeError{Kind: kind, Message: "short " + field, Cause: err}
	}
	copy(a[:], b)
	return a, nil
}

func readTokenID(kind Kind, r *codec.Reader, field string) (TokenID, error) {
	var id TokenID
	b, err := r.ReadFixedBytes(TokenIDSize)
	if err != nil {
		return id, &EnvelopeError{Kind: kind, Message: "short " + field, Cause: err}
	}
	copy(id[:], b)
	return id, nil
}

// SignedTransfer is a decoded transfer envelope.
type SignedTransfer struct {
	Transfer
	authenticator
}

// DecodeTransfer parses a hex transfer envelope.
func DecodeTransfer(s string) (*SignedTransfer, error) {
	r, err := decodeHex(KindTransfer, s)
	if err != nil {
		return nil, err
	}

	st := &SignedTransfer{}
	if st.From, err = readAddress(KindTransfer, r, "from address"); err != nil {
		return nil, err
	}
	if st.To, err = readAddress(KindTransfer, r, "to address"); err != nil {
		return nil, err
	}
	if st.Token, err = readTokenID(KindTransfer, r, "token id"); err != nil {
		return nil, err
	}
	if st.Amount, err = r.ReadU128(); err != nil {
		return nil, &EnvelopeError{Kind: KindTransfer, Message: "short amount", Cause: err}
	}
	if st.Timestamp, err = r.ReadU64(); err != nil {
		return nil, &EnvelopeError{Kind: KindTransfer, Message: "short timestamp", Cause: err}
	}
	memo, err := r.ReadOptionBytes()
	if err != nil {
		return nil, &EnvelopeError{Kind: KindTransfer, Message: "malformed memo", Cause: err}
	}
	if memo != nil {
		m := string(memo)
		st.Memo = &m
	}
	if err := finish(KindTransfer, r, &st.authenticator); err != nil {
		return nil, err
	}
	return st, nil
}

// VerifySignature reports whether the embedded signature is valid over the
// reconstructed signing payload for the embedded public key.
func (st *SignedTransfer) VerifySignature() bool {
	return wallet.Verify(st.PublicKey, st.Transfer.SigningPayload(), st.Signature)
}

// SignedNameRegistration is a decoded name registration envelope.
type SignedNameRegistration struct {
	NameRegistration
	authenticator
}

// DecodeNameRegistration parses a hex name registration envelope.
func DecodeNameRegistration(s string) (*SignedNameRegistration, error) {
	r, err := decodeHex(KindNameRegistration, s)
	if err != nil {
		return nil, err
	}

	sn := &SignedNameRegistration{}
	if sn.Name, err = r.ReadString(); err != nil {
		return nil, &EnvelopeError{Kind: KindNameRegistration, Message: "malformed name", Cause: err}
	}
	if sn.Owner, err = readAddress(KindNameRegistration, r, "owner address"); err != nil {
		return nil, err
	}
	if sn.Timestamp, err = r.ReadU64(); err != nil {
		return nil, &EnvelopeError{Kind: KindNameRegistration, Message: "short timestamp", Cause: err}
	}
	if sn.FeePaid, err = r.ReadU128(); err != nil {
		return nil, &EnvelopeError{Kind: KindNameRegistration, Message: "short fee", Cause: err}
	}
	if err := finish(KindNameRegistration, r, &sn.authenticator); err != nil {
		return nil, err
	}
	return sn, nil
}

func (sn *SignedNameRegistration) VerifySignature() bool {
	return wallet.Verify(sn.PublicKey, sn.NameRegistration.SigningPayload(), sn.Signature)
}

// SignedTokenDefinition is a decoded token definition envelope. ID is the
// transmitted derived token id; VerifySignature also checks it matches the
// recomputed derivation.
type SignedTokenDefinition struct {
	ID TokenID
	TokenDefinition
	authenticator
}

// DecodeTokenDefinition parses a hex token definition envelope.
func DecodeTokenDefinition(s string) (*SignedTokenDefinition, error) {
	r, err := decodeHex(KindTokenDefinition, s)
	if err != nil {
		return nil, err
	}

	sd := &SignedTokenDefinition{}
	if sd.ID, err = readTokenID(KindTokenDefinition, r, "token id"); err != nil {
		return nil, err
	}
	if sd.Name, err = r.ReadString(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenDefinition, Message: "malformed name", Cause: err}
	}
	if sd.Symbol, err = r.ReadString(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenDefinition, Message: "malformed symbol", Cause: err}
	}
	if sd.Decimals, err = r.ReadU8(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenDefinition, Message: "short decimals", Cause: err}
	}
	if sd.MaxSupply, err = r.ReadU128(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenDefinition, Message: "short max supply", Cause: err}
	}
	if sd.Creator, err = readAddress(KindTokenDefinition, r, "creator address"); err != nil {
		return nil, err
	}
	if sd.Timestamp, err = r.ReadU64(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenDefinition, Message: "short timestamp", Cause: err}
	}
	if err := finish(KindTokenDefinition, r, &sd.authenticator); err != nil {
		return nil, err
	}
	return sd, nil
}

// VerifySignature checks the embedded signature and that the transmitted
// token id matches the derivation from the signed fields.
func (sd *SignedTokenDefinition) VerifySignature() bool {
	if sd.ID != sd.TokenDefinition.DerivedID() {
		return false
	}
	return wallet.Verify(sd.PublicKey, sd.TokenDefinition.SigningPayload(), sd.Signature)
}

// SignedTokenMint is a decoded token mint envelope.
type SignedTokenMint struct {
	TokenMint
	authenticator
}

// DecodeTokenMint parses a hex token mint envelope.
func DecodeTokenMint(s string) (*SignedTokenMint, error) {
	r, err := decodeHex(KindTokenMint, s)
	if err != nil {
		return nil, err
	}

	sm := &SignedTokenMint{}
	if sm.Token, err = readTokenID(KindTokenMint, r, "token id"); err != nil {
		return nil, err
	}
	if sm.To, err = readAddress(KindTokenMint, r, "to address"); err != nil {
		return nil, err
	}
	if sm.Amount, err = r.ReadU128(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenMint, Message: "short amount", Cause: err}
	}
	if sm.Timestamp, err = r.ReadU64(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenMint, Message: "short timestamp", Cause: err}
	}
	if err := finish(KindTokenMint, r, &sm.authenticator); err != nil {
		return nil, err
	}
	return sm, nil
}

func (sm *SignedTokenMint) VerifySignature() bool {
	return wallet.Verify(sm.PublicKey, sm.TokenMint.SigningPayload(), sm.Signature)
}

// SignedTokenBurn is a decoded token burn envelope.
type SignedTokenBurn struct {
	TokenBurn
	authenticator
}

// DecodeTokenBurn parses a hex token burn envelope.
func DecodeTokenBurn(s string) (*SignedTokenBurn, error) {
	r, err := decodeHex(KindTokenBurn, s)
	if err != nil {
		return nil, err
	}

	sb := &SignedTokenBurn{}
	if sb.Token, err = readTokenID(KindTokenBurn, r, "token id"); err != nil {
		return nil, err
	}
	if sb.Amount, err = r.ReadU128(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenBurn, Message: "short amount", Cause: err}
	}
	if sb.Burner, err = readAddress(KindTokenBurn, r, "burner address"); err != nil {
		return nil, err
	}
	if sb.Timestamp, err = r.ReadU64(); err != nil {
		return nil, &EnvelopeError{Kind: KindTokenBurn, Message: "short timestamp", Cause: err}
	}
	if err := finish(KindTokenBurn, r, &sb.authenticator); err != nil {
		return nil, err
	}
	return sb, nil
}

func (sb *SignedTokenBurn) VerifySignature() bool {
	return wallet.Verify(sb.PublicKey, sb.TokenBurn.SigningPayload(), sb.Signature)
}
