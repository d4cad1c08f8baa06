// meridian-sdk CLI - wallet and transaction tooling for the Meridian network.
//
// This CLI demonstrates the SDK's capabilities: generating wallets, building
// and signing transactions, decoding wire envelopes, verifying sparse Merkle
// tree balance proofs, and parsing payment request URIs.
//
// Example usage:
//
//	# Generate a wallet
//	meridian-sdk generate
//
//	# Build and sign a transfer (key from MERIDIAN_PRIVATE_KEY)
//	meridian-sdk transfer <to-address-hex> <amount> [memo]
//
//	# Decode a wire envelope and verify its signature
//	meridian-sdk decode transfer <envelope-hex>
//
//	# Verify a balance proof (siblings file: 256 hex lines)
//	meridian-sdk verify-proof <root> <key> <value> <siblings-file>
//
//	# Parse a payment request URI
//	meridian-sdk parse-uri "meridian:addr?amount=1.5&memo=coffee"
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/meridian-labs/meridian-sdk/pkg/amount"
	"github.com/meridian-labs/meridian-sdk/pkg/api"
	"github.com/meridian-labs/meridian-sdk/pkg/codec"
	"github.com/meridian-labs/meridian-sdk/pkg/payuri"
	"github.com/meridian-labs/meridian-sdk/pkg/smt"
	"github.com/meridian-labs/meridian-sdk/pkg/tx"
	"github.com/meridian-labs/meridian-sdk/pkg/wallet"
)

// privateKeyEnv is where signing commands look for the wallet key.
const privateKeyEnv = "MERIDIAN_PRIVATE_KEY"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "generate":
		cmdGenerate()
	case "transfer":
		cmdTransfer()
	case "decode":
		cmdDecode()
	case "verify-proof":
		cmdVerifyProof()
	case "parse-uri":
		cmdParseURI()
	case "version":
		cmdVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meridian-sdk - wallet and transaction tooling for the Meridian network

Usage:
  meridian-sdk <command> [options]

Commands:
  generate                                    Generate a new wallet
  transfer <to> <amount> [memo]               Build and sign a transfer
  decode <kind> <envelope-hex>                Decode a wire envelope
  verify-proof <root> <key> <value> <file>    Verify a balance proof
  parse-uri <uri>                             Parse a payment request URI
  version                                     Show version information
  help                                        Show this help message

The transfer command reads the signing key from the ` + privateKeyEnv + `
environment variable (64 hex characters, optionally 0x-prefixed).

Envelope kinds for decode: transfer, name-registration, token-definition,
token-mint, token-burn.

The siblings file for verify-proof holds 256 lines, each a 32-byte sibling
hash in hex, index 0 = depth 0 (root-adjacent).`)
}

func cmdVersion() {
	fmt.Println("meridian-sdk v0.1.0")
	fmt.Println("Client SDK for the Meridian network: wallets, transactions, state proofs")
}

func cmdGenerate() {
	w, err := wallet.Generate()
	if err != nil {
		fatal(err)
	}

	fmt.Println("New wallet:")
	fmt.Printf("  Address:     %s\n", w.AddressHex())
	fmt.Printf("  Public key:  %s\n", w.PublicKeyHex())
	fmt.Printf("  Key export:  %s\n", w.ExportBase58())
	fmt.Println()
	fmt.Println("Store the key export securely; it is the only copy of the private key.")
}

func cmdTransfer() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: meridian-sdk transfer <to-address-hex> <amount> [memo]")
		os.Exit(1)
	}

	w, err := walletFromEnv()
	if err != nil {
		fatal(err)
	}

	params := api.TransferParams{
		To:     os.Args[2],
		Amount: os.Args[3],
	}
	if len(os.Args) > 4 {
		memo := os.Args[4]
		params.Memo = &memo
	}

	envelope, err := api.BuildTransfer(w, params)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("From:     %s\n", w.AddressHex())
	fmt.Printf("To:       %s\n", params.To)
	fmt.Printf("Amount:   %s\n", params.Amount)
	fmt.Println()
	fmt.Printf("Signed envelope:\n%s\n", envelope)
}

func cmdDecode() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: meridian-sdk decode <kind> <envelope-hex>")
		os.Exit(1)
	}

	kind := os.Args[2]
	envelope := os.Args[3]

	switch kind {
	case "transfer":
		st, err := tx.DecodeTransfer(envelope)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("From:      %s\n", st.From.Hex())
		fmt.Printf("To:        %s\n", st.To.Hex())
		fmt.Printf("Token:     %s\n", tokenLabel(st.Token))
		fmt.Printf("Amount:    %s\n", formatAmount(st.Amount, amount.DefaultDecimals))
		fmt.Printf("Timestamp: %d\n", st.Timestamp)
		if st.Memo != nil {
			fmt.Printf("Memo:      %s\n", *st.Memo)
		}
		printVerdict(st.VerifySignature())
	case "name-registration":
		sn, err := tx.DecodeNameRegistration(envelope)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Name:      %s\n", sn.Name)
		fmt.Printf("Owner:     %s\n", sn.Owner.Hex())
		fmt.Printf("Fee paid:  %s\n", formatAmount(sn.FeePaid, amount.DefaultDecimals))
		fmt.Printf("Timestamp: %d\n", sn.Timestamp)
		printVerdict(sn.VerifySignature())
	case "token-definition":
		sd, err := tx.DecodeTokenDefinition(envelope)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Token id:   %s\n", sd.ID.Hex())
		fmt.Printf("Name:       %s (%s)\n", sd.Name, sd.Symbol)
		fmt.Printf("Decimals:   %d\n", sd.Decimals)
		fmt.Printf("Max supply: %s\n", formatAmount(sd.MaxSupply, sd.Decimals))
		fmt.Printf("Creator:    %s\n", sd.Creator.Hex())
		fmt.Printf("Timestamp:  %d\n", sd.Timestamp)
		printVerdict(sd.VerifySignature())
	case "token-mint":
		sm, err := tx.DecodeTokenMint(envelope)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Token:     %s\n", sm.Token.Hex())
		fmt.Printf("To:        %s\n", sm.To.Hex())
		fmt.Printf("Amount:    %s\n", sm.Amount.String())
		fmt.Printf("Timestamp: %d\n", sm.Timestamp)
		printVerdict(sm.VerifySignature())
	case "token-burn":
		sb, err := tx.DecodeTokenBurn(envelope)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Token:     %s\n", sb.Token.Hex())
		fmt.Printf("Amount:    %s\n", sb.Amount.String())
		fmt.Printf("Burner:    %s\n", sb.Burner.Hex())
		fmt.Printf("Timestamp: %d\n", sb.Timestamp)
		printVerdict(sb.VerifySignature())
	default:
		fmt.Fprintf(os.Stderr, "Unknown envelope kind: %s\n", kind)
		os.Exit(1)
	}
}

func cmdVerifyProof() {
	if len(os.Args) < 6 {
		fmt.Fprintln(os.Stderr, "Usage: meridian-sdk verify-proof <root-hex> <key-hex> <value-hex> <siblings-file>")
		fmt.Fprintln(os.Stderr, "Use an empty value (\"\") for a non-inclusion proof.")
		os.Exit(1)
	}

	root, err := hex.DecodeString(os.Args[2])
	if err != nil {
		fatal(errors.Wrap(err, "root"))
	}
	key, err := hex.DecodeString(os.Args[3])
	if err != nil {
		fatal(errors.Wrap(err, "key"))
	}
	value, err := hex.DecodeString(os.Args[4])
	if err != nil {
		fatal(errors.Wrap(err, "value"))
	}

	siblings, err := readSiblingsFile(os.Args[5])
	if err != nil {
		fatal(err)
	}

	if api.VerifyStateProof(root, key, value, siblings) {
		if len(value) == 0 {
			fmt.Println("Proof VALID: key is absent from the committed state")
		} else {
			fmt.Println("Proof VALID: key maps to the claimed value")
		}
	} else {
		fmt.Println("Proof INVALID")
		os.Exit(1)
	}
}

func cmdParseURI() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: meridian-sdk parse-uri <uri>")
		os.Exit(1)
	}

	p, err := payuri.Parse(os.Args[2])
	if err != nil {
		fatal(err)
	}

	fmt.Println("Payment request:")
	fmt.Printf("  Address: %s\n", p.Address)
	if p.Amount != nil {
		fmt.Printf("  Amount:  %s\n", *p.Amount)
	} else {
		fmt.Println("  Amount:  (payer specified)")
	}
	if p.Token != nil {
		fmt.Printf("  Token:   %s\n", p.Token.Hex())
	} else {
		fmt.Println("  Token:   native")
	}
	if p.Memo != nil {
		fmt.Printf("  Memo:    %s\n", *p.Memo)
	}
	if p.Label != nil {
		fmt.Printf("  Label:   %s\n", *p.Label)
	}

	fmt.Printf("\nRe-encoded URI:\n%s\n", p.Encode())
}

// readSiblingsFile loads 256 hex-encoded sibling hashes, one per line.
func readSiblingsFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open siblings file")
	}
	defer f.Close()

	var siblings [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		sib, err := hex.DecodeString(line)
		if err != nil {
			return nil, errors.Wrapf(err, "sibling %d", len(siblings))
		}
		siblings = append(siblings, sib)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read siblings file")
	}
	if len(siblings) != smt.Depth {
		return nil, errors.Errorf("siblings file has %d entries, need %d", len(siblings), smt.Depth)
	}
	return siblings, nil
}

func walletFromEnv() (*wallet.Wallet, error) {
	key := os.Getenv(privateKeyEnv)
	if key == "" {
		return nil, errors.Errorf("%s is not set", privateKeyEnv)
	}
	return wallet.FromPrivateKeyHex(key)
}

func tokenLabel(id tx.TokenID) string {
	if id.IsNative() {
		return "native"
	}
	return id.Hex()
}

// formatAmount renders an amount for display. A decoded envelope can carry a
// decimals value Format rejects; show raw smallest units rather than bail.
func formatAmount(v codec.Uint128, decimals uint8) string {
	s, err := amount.Format(v, decimals)
	if err != nil {
		return fmt.Sprintf("%s (smallest units, decimals %d unrenderable)", v.String(), decimals)
	}
	return s
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printVerdict(ok bool) {
	if ok {
		fmt.Println("Signature: VALID")
	} else {
		fmt.Println("Signature: INVALID")
	}
}
