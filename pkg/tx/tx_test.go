package tx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/meridian-labs/meridian-sdk/pkg/codec"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	seed := bytes.Repeat([]byte{0x42}, 32)
	w, err := wallet.FromPrivateKey(seed)
	if err != nil {
		t.Fatalf("test wallet: %v", err)
	}
	return w
}

func addr(b byte) wallet.Address {
	var a wallet.Address
	for i := range a {
		a[i] = b
	}
	return a
}

// TestTransferPayloadLayout checks the byte-exact field order of the
// transfer signing payload.
func TestTransferPayloadLayout(t *testing.T) {
	memo := "hi"
	tr := &Transfer{
		From:      addr(0x01),
		To:        addr(0x02),
		Token:     NativeTokenID,
		Amount:    codec.U128From64(1_500_000_000_000),
		Timestamp: 1_700_000_000,
		Memo:      &memo,
	}

	payload := tr.SigningPayload()

	// from(20) || to(20) || tokenId(32) || amount(16) || timestamp(8) ||
	// memo discriminant(1) || memo length(4) || memo(2)
	if len(payload) != 20+20+32+16+8+1+4+2 {
		t.Fatalf("payload length = %d", len(payload))
	}
	if !bytes.Equal(payload[:20], bytes.Repeat([]byte{0x01}, 20)) {
		t.Error("from address not at offset 0")
	}
	if !bytes.Equal(payload[20:40], bytes.Repeat([]byte{0x02}, 20)) {
		t.Error("to address not at offset 20")
	}
	if !bytes.Equal(payload[40:72], make([]byte, 32)) {
		t.Error("native token id should be all zeros at offset 40")
	}
	if binary.LittleEndian.Uint64(payload[72:80]) != 1_500_000_000_000 {
		t.Error("amount low half not little-endian at offset 72")
	}
	if binary.LittleEndian.Uint64(payload[88:96]) != 1_700_000_000 {
		t.Error("timestamp not little-endian at offset 88")
	}
	if payload[96] != 0x01 {
		t.Error("memo discriminant should be 0x01")
	}
	if !bytes.Equal(payload[101:], []byte("hi")) {
		t.Error("memo bytes wrong")
	}

	// Without a memo the payload ends in a single 0x00 discriminant.
	tr.Memo = nil
	payload = tr.SigningPayload()
	if payload[len(payload)-1] != 0x00 {
		t.Error("absent memo should encode as 0x00")
	}
}

// TestEnvelopeDeterminism: identical inputs and wallet produce identical
// envelopes (Ed25519 signing is deterministic).
func TestEnvelopeDeterminism(t *testing.T) {
	w := testWallet(t)
	tr := &Transfer{
		From:      w.Address(),
		To:        addr(0x02),
		Token:     NativeTokenID,
		Amount:    codec.U128From64(5),
		Timestamp: 1_700_000_000,
	}

	e1, err := Seal(tr, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	e2, err := Seal(tr, w)
	if err != nil {
		t.Fatalf("second Seal failed: %v", err)
	}
	if e1 != e2 {
		t.Fatal("sealing the same transfer twice produced different envelopes")
	}
}

func TestTransferRoundTrip(t *testing.T) {
	w := testWallet(t)
	memo := "lunch"
	tr := &Transfer{
		From:      w.Address(),
		To:        addr(0x09),
		Token:     TokenID{0xAA},
		Amount:    codec.Uint128{Lo: 7, Hi: 2},
		Timestamp: 1_700_000_123,
		Memo:      &memo,
	}

	envelope, err := Seal(tr, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	st, err := DecodeTransfer(envelope)
	if err != nil {
		t.Fatalf("DecodeTransfer failed: %v", err)
	}

	if st.From != tr.From || st.To != tr.To || st.Token != tr.Token {
		t.Error("addresses or token id did not round-trip")
	}
	if st.Amount != tr.Amount || st.Timestamp != tr.Timestamp {
		t.Error("amount or timestamp did not round-trip")
	}
	if st.Memo == nil || *st.Memo != memo {
		t.Error("memo did not round-trip")
	}
	if st.PublicKey != w.PublicKey() {
		t.Error("public key did not round-trip")
	}
	if !st.VerifySignature() {
		t.Fatal("round-tripped signature does not verify")
	}
}

func TestTamperedEnvelopeFailsVerification(t *testing.T) {
	w := testWallet(t)
	tr := &Transfer{
		From:      w.Address(),
		To:        addr(0x09),
		Token:     NativeTokenID,
		Amount:    codec.U128From64(10),
		Timestamp: 1_700_000_000,
	}

	envelope, err := Seal(tr, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	raw, _ := hex.DecodeString(envelope)
	raw[25] ^= 0x01 // flip a bit inside the recipient address
	st, err := DecodeTransfer(hex.EncodeToString(raw))
	if err != nil {
		t.Fatalf("tampered envelope should still decode: %v", err)
	}
	if st.VerifySignature() {
		t.Fatal("signature verified over tampered fields")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []string{
		"zz",       // not hex
		"",         // empty
		"00010203", // far too short
	}
	for _, s := range cases {
		if _, err := DecodeTransfer(s); err == nil {
			t.Errorf("DecodeTransfer(%q) should fail", s)
		}
	}

	// Trailing bytes after the signature are rejected.
	w := testWallet(t)
	tr := &Transfer{From: w.Address(), To: addr(0x01), Timestamp: 1}
	envelope, err := Seal(tr, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if _, err := DecodeTransfer(envelope + "00"); err == nil {
		t.Error("envelope with trailing bytes should fail to decode")
	}
}

func TestNameRegistrationRoundTrip(t *testing.T) {
	w := testWallet(t)
	nr := &NameRegistration{
		Name:      "alice.mer",
		Owner:     w.Address(),
		Timestamp: 1_700_000_000,
		FeePaid:   DefaultNameRegistrationFee,
	}

	envelope, err := Seal(nr, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	sn, err := DecodeNameRegistration(envelope)
	if err != nil {
		t.Fatalf("DecodeNameRegistration failed: %v", err)
	}
	if sn.Name != nr.Name || sn.Owner != nr.Owner || sn.FeePaid != nr.FeePaid {
		t.Error("fields did not round-trip")
	}
	if !sn.VerifySignature() {
		t.Fatal("signature does not verify")
	}
}

func TestTokenDefinitionEnvelopeCarriesDerivedID(t *testing.T) {
	w := testWallet(t)
	def := &TokenDefinition{
		Name:      "Meridian Gold",
		Symbol:    "MGLD",
		Decimals:  6,
		MaxSupply: codec.U128From64(21_000_000_000_000),
		Creator:   w.Address(),
		Timestamp: 1_700_000_000,
	}

	envelope, err := Seal(def, w)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	sd, err := DecodeTokenDefinition(envelope)
	if err != nil {
		t.Fatalf("DecodeTokenDefinition failed: %v", err)
	}

	// The derived id is the first envelope field but not part of the
	// signing payload.
	if sd.ID != def.DerivedID() {
		t.Error("transmitted token id does not match the derivation")
	}
	if sd.ID.IsNative() {
		t.Error("derived token id collided with the native id")
	}
	if !sd.VerifySignature() {
		t.Fatal("signature does not verify")
	}

	// Same inputs, same timestamp: same id. Different timestamp: new id.
	if def.DerivedID() != def.DerivedID() {
		t.Error("token id derivation is not deterministic")
	}
	later := *def
	later.Timestamp++
	if later.DerivedID() == def.DerivedID() {
		t.Error("token id should depend on the timestamp")
	}
}

func TestTokenMintAndBurnRoundTrip(t *testing.T) {
	w := testWallet(t)
	token := TokenID{0x5A}

	mint := &TokenMint{
		Token:     token,
		To:        addr(0x03),
		Amount:    codec.U128From64(1000),
		Timestamp: 1_700_000_000,
	}
	envelope, err := Seal(mint, w)
	if err != nil {
		t.Fatalf("Seal mint failed: %v", err)
	}
	sm, err := DecodeTokenMint(envelope)
	if err != nil {
		t.Fatalf("DecodeTokenMint failed: %v", err)
	}
	if sm.Token != token || sm.Amount != mint.Amount || !sm.VerifySignature() {
		t.Error("mint round trip failed")
	}

	burn := &TokenBurn{
		Token:     token,
		Amount:    codec.U128From64(250),
		Burner:    w.Address(),
		Timestamp: 1_700_000_001,
	}
	envelope, err = Seal(burn, w)
	if err != nil {
		t.Fatalf("Seal burn failed: %v", err)
	}
	sb, err := DecodeTokenBurn(envelope)
	if err != nil {
		t.Fatalf("DecodeTokenBurn failed: %v", err)
	}
	if sb.Burner != w.Address() || sb.Amount != burn.Amount || !sb.VerifySignature() {
		t.Error("burn round trip failed")
	}
}
