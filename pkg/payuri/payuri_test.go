package payuri

import (
	"strings"
	"testing"
)

const testAddr = "0102030405060708090a0b0c0d0e0f1011121314"
const testToken = "aa000000000000000000000000000000000000000000000000000000000000bb"

func TestParseSimple(t *testing.T) {
	p, err := Parse("meridian:" + testAddr + "?amount=1.5&memo=coffee")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Address != testAddr {
		t.Errorf("address = %q", p.Address)
	}
	if p.Amount == nil || *p.Amount != "1.5" {
		t.Errorf("amount = %v", p.Amount)
	}
	if p.Memo == nil || *p.Memo != "coffee" {
		t.Errorf("memo = %v", p.Memo)
	}
	if p.Token != nil {
		t.Error("token should be nil for native asset")
	}
}

func TestParseWithoutScheme(t *testing.T) {
	p, err := Parse(testAddr)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Address != testAddr || p.Amount != nil {
		t.Error("bare address should parse with no amount")
	}
}

func TestParseToken(t *testing.T) {
	p, err := Parse("meridian:" + testAddr + "?token=" + testToken + "&amount=10")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Token == nil || p.Token.Hex() != testToken {
		t.Errorf("token = %v", p.Token)
	}
}

// TestParseIgnoresAddressParam confirms the recipient always comes from the
// URI body; an address query parameter cannot redirect the payment.
func TestParseIgnoresAddressParam(t *testing.T) {
	other := "ffeeddccbbaa99887766554433221100ffeeddcc"
	p, err := Parse("meridian:" + testAddr + "?address=" + other + "&amount=1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Address != testAddr {
		t.Errorf("address = %q, want body address %q", p.Address, testAddr)
	}

	// Without a body address the link is invalid, parameter or not.
	if _, err := Parse("meridian:?address=" + other); err == nil {
		t.Error("Parse should fail when the URI body carries no address")
	}
}

func TestParseRejects(t *testing.T) {
	bad := []string{
		"meridian:",                         // no address
		"meridian:nothex?amount=1",          // bad address
		"meridian:" + testAddr + "?amount=abc",   // bad amount
		"meridian:" + testAddr + "?amount=1;2",   // bad amount
		"meridian:" + testAddr + "?token=1234",   // short token id
	}
	for _, uri := range bad {
		if _, err := Parse(uri); err == nil {
			t.Errorf("Parse(%q) should fail", uri)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	amt := "2.75"
	memo := "invoice 42"
	p, err := Parse("meridian:" + testAddr + "?amount=" + amt + "&memo=" + strings.ReplaceAll(memo, " ", "+"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	back, err := Parse(p.Encode())
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if back.Address != p.Address || *back.Amount != amt || *back.Memo != memo {
		t.Errorf("round trip mismatch: %+v vs %+v", back, p)
	}
}
