package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var testSeed = [32]byte{
	0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x00,
	0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88,
	0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff, 0x01,
}

func TestFromPrivateKey(t *testing.T) {
	w, err := FromPrivateKey(testSeed[:])
	if err != nil {
		t.Fatalf("FromPrivateKey failed: %v", err)
	}

	if w.PrivateKeyBytes() != testSeed {
		t.Error("private key bytes do not round-trip")
	}
	if len(w.PublicKeyHex()) != 64 {
		t.Errorf("public key hex length = %d, want 64", len(w.PublicKeyHex()))
	}
	if len(w.AddressHex()) != 40 {
		t.Errorf("address hex length = %d, want 40", len(w.AddressHex()))
	}

	// Same seed, same derivations.
	w2, err := FromPrivateKey(testSeed[:])
	if err != nil {
		t.Fatalf("second FromPrivateKey failed: %v", err)
	}
	if w.PublicKey() != w2.PublicKey() || w.Address() != w2.Address() {
		t.Error("key derivation is not deterministic")
	}
}

func TestFromPrivateKeyWrongLength(t *testing.T) {
	_, err := FromPrivateKey(make([]byte, 31))
	var kle *KeyLengthError
	if !errors.As(err, &kle) {
		t.Fatalf("expected KeyLengthError, got %v", err)
	}
	if kle.Got != 31 {
		t.Errorf("KeyLengthError.Got = %d, want 31", kle.Got)
	}
}

func TestFromPrivateKeyHex(t *testing.T) {
	hexKey := "1122334455667788" + "99aabbccddeeff00" + "1122334455667788" + "99aabbccddeeff01"

	w1, err := FromPrivateKeyHex(hexKey)
	if err != nil {
		t.Fatalf("FromPrivateKeyHex failed: %v", err)
	}
	w2, err := FromPrivateKeyHex("0x" + hexKey)
	if err != nil {
		t.Fatalf("FromPrivateKeyHex with 0x prefix failed: %v", err)
	}
	if w1.Address() != w2.Address() {
		t.Error("0x prefix changed the derived wallet")
	}

	for _, bad := range []string{
		"",
		"1234",
		hexKey[:62],
		hexKey + "00",
		strings.Replace(hexKey, "1", "g", 1),
	} {
		_, err := FromPrivateKeyHex(bad)
		var kfe *KeyFormatError
		if !errors.As(err, &kfe) {
			t.Errorf("FromPrivateKeyHex(%q): expected KeyFormatError, got %v", bad, err)
		}
	}
}

func TestSignVerify(t *testing.T) {
	w, err := FromPrivateKey(testSeed[:])
	if err != nil {
		t.Fatalf("FromPrivateKey failed: %v", err)
	}

	message := []byte("the canonical signing payload")
	sig := w.Sign(message)

	if !Verify(w.PublicKey(), message, sig) {
		t.Fatal("signature does not verify")
	}

	// Flipping any single bit of the message must break verification.
	tampered := append([]byte(nil), message...)
	tampered[0] ^= 0x01
	if Verify(w.PublicKey(), tampered, sig) {
		t.Error("signature verified over a tampered message")
	}

	// Flipping a signature bit must break verification.
	badSig := sig
	badSig[10] ^= 0x80
	if Verify(w.PublicKey(), message, badSig) {
		t.Error("tampered signature verified")
	}
}

func TestGenerate(t *testing.T) {
	w1, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	w2, err := Generate()
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if w1.Address() == w2.Address() {
		t.Error("two generated wallets share an address")
	}
}

// failingSource always errors, modeling a runtime with no CSPRNG.
type failingSource struct{}

func (failingSource) Read(p []byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestGenerateNoSecureSource(t *testing.T) {
	var rse *RandomSourceError

	_, err := GenerateFrom(failingSource{})
	if !errors.As(err, &rse) {
		t.Fatalf("expected RandomSourceError, got %v", err)
	}

	_, err = GenerateFrom(nil)
	if !errors.As(err, &rse) {
		t.Fatalf("expected RandomSourceError for nil source, got %v", err)
	}
}

func TestGenerateFromDeterministicSource(t *testing.T) {
	src := bytes.NewReader(testSeed[:])
	w, err := GenerateFrom(src)
	if err != nil {
		t.Fatalf("GenerateFrom failed: %v", err)
	}

	want, _ := FromPrivateKey(testSeed[:])
	if w.Address() != want.Address() {
		t.Error("injected source did not produce the expected wallet")
	}
}

func TestExportImportBase58(t *testing.T) {
	w, err := FromPrivateKey(testSeed[:])
	if err != nil {
		t.Fatalf("FromPrivateKey failed: %v", err)
	}

	exported := w.ExportBase58()
	imported, err := ImportBase58(exported)
	if err != nil {
		t.Fatalf("ImportBase58 failed: %v", err)
	}
	if imported.Address() != w.Address() {
		t.Error("base58 export/import did not round-trip")
	}

	// Corrupting a character must fail the checksum, not import a
	// different wallet.
	corrupted := []byte(exported)
	if corrupted[3] == 'x' {
		corrupted[3] = 'y'
	} else {
		corrupted[3] = 'x'
	}
	if _, err := ImportBase58(string(corrupted)); err == nil {
		t.Error("corrupted base58 export imported successfully")
	}

	if _, err := ImportBase58("tooshort"); err == nil {
		t.Error("short base58 input imported successfully")
	}
}
