// Package api provides the high-level public API of the Meridian SDK.
//
// This is the main entry point for applications: it accepts human-level
// parameters (hex addresses and token ids, decimal amount strings), converts
// and validates them, and returns fully signed wire-ready envelopes as hex
// strings. The five build functions cover the transaction kinds:
//
//  1. BuildTransfer         - Move an amount between accounts
//  2. BuildNameRegistration - Claim a human-readable account name
//  3. BuildTokenDefinition  - Create a user-defined token
//  4. BuildTokenMint        - Issue supply of a user-defined token
//  5. BuildTokenBurn        - Destroy held supply
//
// All validation happens before any signing: malformed hex, out-of-range
// amounts, or wrong field widths fail fast and nothing is partially signed.
// VerifyStateProof is re-exported here for callers checking balance proofs
// received from an untrusted node.
package api

import (
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"github.com/meridian-labs/meridian-sdk/pkg/amount"
	"github.com/meridian-labs/meridian-sdk/pkg/smt"
	"github.com/meridian-labs/meridian-sdk/pkg/tx"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

// TransferParams are the caller-supplied inputs to BuildTransfer.
type TransferParams struct {
	To        string  // Recipient address, 40 hex characters
	Amount    string  // Decimal amount string, e.g. "1.5"
	TokenID   string  // Token id, 64 hex characters; "" = native asset
	Memo      *string // Optional memo (nil = none)
	Decimals  *uint8  // Amount precision; nil = protocol default (12)
	Timestamp uint64  // Unix seconds; 0 = current wall clock
}

// NameRegistrationParams are the caller-supplied inputs to
// BuildNameRegistration. The owner is the signing wallet's address.
type NameRegistrationParams struct {
	Name      string // Name to register
	FeePaid   string // Decimal fee in the native asset; "" = protocol default
	Timestamp uint64 // Unix seconds; 0 = current wall clock
}

// TokenDefinitionParams are the caller-supplied inputs to
// BuildTokenDefinition. The creator is the signing wallet's address.
type TokenDefinitionParams struct {
	Name      string // Token name
	Symbol    string // Token symbol
	Decimals  uint8  // Token precision
	MaxSupply string // Decimal maximum supply, in whole tokens at Decimals precision
	Timestamp uint64 // Unix seconds; 0 = current wall clock
}

// TokenMintParams are the caller-supplied inputs to BuildTokenMint.
type TokenMintParams struct {
	TokenID   string // Token id, 64 hex characters (required)
	To        string // Recipient address, 40 hex characters
	Amount    string // Decimal amount string
	Decimals  *uint8 // Amount precision; nil = protocol default (12)
	Timestamp uint64 // Unix seconds; 0 = current wall clock
}

// TokenBurnParams are the caller-supplied inputs to BuildTokenBurn.
// The burner is the signing wallet's address.
type TokenBurnParams struct {
	TokenID   string // Token id, 64 hex characters (required)
	Amount    string // Decimal amount string
	Decimals  *uint8 // Amount precision; nil = protocol default (12)
	Timestamp uint64 // Unix seconds; 0 = current wall clock
}

// BuildTransfer validates params, signs, and returns the wire envelope hex.
func BuildTransfer(w *wallet.Wallet, p TransferParams) (string, error) {
	if w == nil {
		return "", errors.New("nil wallet")
	}

	to, err := parseAddress(p.To)
	if err != nil {
		return "", errors.Wrap(err, "to address")
	}
	token, err := parseOptionalTokenID(p.TokenID)
	if err != nil {
		return "", err
	}
	amt, err := amount.Parse(p.Amount, decimalsOrDefault(p.Decimals))
	if err != nil {
		return "", errors.Wrap(err, "amount")
	}

	return tx.Seal(&tx.Transfer{
		From:      w.Address(),
		To:        to,
		Token:     token,
		Amount:    amt,
		Timestamp: timestampOrNow(p.Timestamp),
		Memo:      p.Memo,
	}, w)
}

// BuildNameRegistration validates params, signs, and returns the wire
// envelope hex.
func BuildNameRegistration(w *wallet.Wallet, p NameRegistrationParams) (string, error) {
	if w == nil {
		return "", errors.New("nil wallet")
	}
	if p.Name == "" {
		return "", errors.New("name must not be empty")
	}

	fee := tx.DefaultNameRegistrationFee
	if p.FeePaid != "" {
		var err error
		fee, err = amount.Parse(p.FeePaid, amount.DefaultDecimals)
		if err != nil {
			return "", errors.Wrap(err, "fee")
		}
	}

	return tx.Seal(&tx.NameRegistration{
		Name:      p.Name,
		Owner:     w.Address(),
		Timestamp: timestampOrNow(p.Timestamp),
		FeePaid:   fee,
	}, w)
}

// BuildTokenDefinition validates params, signs, and returns the wire
// envelope hex. The derived token id is the first field of the envelope;
// recover it with tx.DecodeTokenDefinition or TokenDefinition.DerivedID.
func BuildTokenDefinition(w *wallet.Wallet, p TokenDefinitionParams) (string, error) {
	if w == nil {
		return "", errors.New("nil wallet")
	}
	if p.Name == "" || p.Symbol == "" {
		return "", errors.New("token name and symbol must not be empty")
	}

	maxSupply, err := amount.Parse(p.MaxSupply, p.Decimals)
	if err != nil {
		return "", errors.Wrap(err, "max supply")
	}

	return tx.Seal(&tx.TokenDefinition{
		Name:      p.Name,
		Symbol:    p.Symbol,
		Decimals:  p.Decimals,
		MaxSupply: maxSupply,
		Creator:   w.Address(),
		Timestamp: timestampOrNow(p.Timestamp),
	}, w)
}

// BuildTokenMint validates params, signs, and returns the wire envelope hex.
func BuildTokenMint(w *wallet.Wallet, p TokenMintParams) (string, error) {
	if w == nil {
		return "", errors.New("nil wallet")
	}

	token, err := parseTokenID(p.TokenID)
	if err != nil {
		return "", err
	}
	to, err := parseAddress(p.To)
	if err != nil {
		return "", errors.Wrap(err, "to address")
	}
	amt, err := amount.Parse(p.Amount, decimalsOrDefault(p.Decimals))
	if err != nil {
		return "", errors.Wrap(err, "amount")
	}

	return tx.Seal(&tx.TokenMint{
		Token:     token,
		To:        to,
		Amount:    amt,
		Timestamp: timestampOrNow(p.Timestamp),
	}, w)
}

// BuildTokenBurn validates params, signs, and returns the wire envelope hex.
func BuildTokenBurn(w *wallet.Wallet, p TokenBurnParams) (string, error) {
	if w == nil {
		return "", errors.New("nil wallet")
	}

	token, err := parseTokenID(p.TokenID)
	if err != nil {
		return "", err
	}
	amt, err := amount.Parse(p.Amount, decimalsOrDefault(p.Decimals))
	if err != nil {
		return "", errors.Wrap(err, "amount")
	}

	return tx.Seal(&tx.TokenBurn{
		Token:     token,
		Amount:    amt,
		Burner:    w.Address(),
		Timestamp: timestampOrNow(p.Timestamp),
	}, w)
}

// VerifyStateProof checks a balance proof received from an untrusted node.
//
// root and key must be 32 bytes, siblings must be 256 entries of 32 bytes;
// anything malformed returns false rather than erroring, and false is the
// normal outcome for a proof that does not establish its claim.
func VerifyStateProof(root, key, value []byte, siblings [][]byte) bool {
	if len(root) != smt.HashSize || len(key) != smt.HashSize {
		return false
	}
	var r, k [smt.HashSize]byte
	copy(r[:], root)
	copy(k[:], key)
	return smt.VerifyStateProof(r, k, value, siblings)
}

func decimalsOrDefault(d *uint8) uint8 {
	if d == nil {
		return amount.DefaultDecimals
	}
	return *d
}

func timestampOrNow(ts uint64) uint64 {
	if ts == 0 {
		return uint64(time.Now().Unix())
	}
	return ts
}

func parseAddress(s string) (wallet.Address, error) {
	var a wallet.Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, errors.Wrap(err, "invalid hex")
	}
	if len(b) != wallet.AddressSize {
		return a, errors.Errorf("address must be %d bytes, got %d", wallet.AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func parseTokenID(s string) (tx.TokenID, error) {
	var id tx.TokenID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, errors.Wrap(err, "token id: invalid hex")
	}
	if len(b) != tx.TokenIDSize {
		return id, errors.Errorf("token id must be %d bytes, got %d", tx.TokenIDSize, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// parseOptionalTokenID treats the empty string as the native asset.
func parseOptionalTokenID(s string) (tx.TokenID, error) {
	if s == "" {
		return tx.NativeTokenID, nil
	}
	return parseTokenID(s)
}
