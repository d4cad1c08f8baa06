// Package payuri implements the Meridian payment request URI format.
//
// A payment request encodes a recipient and optional payment details in a
// URI that can be shared via QR codes, links, or text:
//
//	meridian:<address>?amount=<decimal>&token=<hex id>&memo=<text>
//
// Amounts are decimal strings validated against the protocol's precision,
// never floats. The token parameter is the 64-hex-character token id;
// omitted means the native asset.
package payuri

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/meridian-labs/meridian-sdk/pkg/amount"
	"github.com/meridian-labs/meridian-sdk/pkg/tx"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

// Scheme is the URI scheme prefix.
const Scheme = "meridian:"

// Payment is a parsed payment request.
//
// Amount and Memo are nil when the URI leaves them to the payer. Token is
// nil for the native asset.
type Payment struct {
	Address string      // Recipient address, hex
	Amount  *string     // Decimal amount string (validated), nil = payer specifies
	Token   *tx.TokenID // nil = native asset
	Memo    *string     // Optional memo text
	Label   *string     // Optional label for the recipient
}

// Parse parses a payment request URI. The "meridian:" prefix is optional.
func Parse(uri string) (*Payment, error) {
	uri = strings.TrimPrefix(uri, Scheme)

	var base, query string
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		base, query = uri[:i], uri[i+1:]
	} else {
		base = uri
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("payuri: failed to parse query: %w", err)
	}

	// The recipient lives in the URI body only. Query parameters never name
	// an address: a link must not display one recipient and pay another.
	p := &Payment{Address: base}
	if p.Address == "" {
		return nil, fmt.Errorf("payuri: missing recipient address")
	}
	if _, err := parseAddress(p.Address); err != nil {
		return nil, err
	}

	if amountStr := params.Get("amount"); amountStr != "" {
		// Validate at parse time so a malformed link fails here, not
		// at submission.
		if _, err := amount.Parse(amountStr, amount.DefaultDecimals); err != nil {
			return nil, fmt.Errorf("payuri: invalid amount: %w", err)
		}
		p.Amount = &amountStr
	}

	if tokenStr := params.Get("token"); tokenStr != "" {
		id, err := parseTokenID(tokenStr)
		if err != nil {
			return nil, err
		}
		p.Token = &id
	}

	if memo := params.Get("memo"); memo != "" {
		p.Memo = &memo
	}
	if label := params.Get("label"); label != "" {
		p.Label = &label
	}

	return p, nil
}

// Encode renders the payment request as a URI. Inverse of Parse.
func (p *Payment) Encode() string {
	uri := Scheme + p.Address

	params := url.Values{}
	if p.Amount != nil {
		params.Add("amount", *p.Amount)
	}
	if p.Token != nil {
		params.Add("token", p.Token.Hex())
	}
	if p.Memo != nil {
		params.Add("memo", *p.Memo)
	}
	if p.Label != nil {
		params.Add("label", *p.Label)
	}

	if len(params) > 0 {
		uri += "?" + params.Encode()
	}
	return uri
}

func parseAddress(s string) (wallet.Address, error) {
	var a wallet.Address
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != wallet.AddressSize {
		return a, fmt.Errorf("payuri: address must be %d hex-encoded bytes", wallet.AddressSize)
	}
	copy(a[:], b)
	return a, nil
}

func parseTokenID(s string) (tx.TokenID, error) {
	var id tx.TokenID
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != tx.TokenIDSize {
		return id, fmt.Errorf("payuri: token id must be %d hex-encoded bytes", tx.TokenIDSize)
	}
	copy(id[:], b)
	return id, nil
}
