// Package smt implements the 256-level sparse Merkle tree commitment scheme
// used to authenticate account and token state against a state root.
//
// The tree covers the full 256-bit key space, one level per key bit,
// addressed MSB-first. Absent keys are represented by the all-zero 32-byte
// hash, so a tree with no entries has the all-zero root, and the same proof
// shape serves both inclusion (non-empty value) and non-inclusion (empty
// value) claims.
//
// Node hashing is BLAKE3-256 with a one-byte domain separation prefix:
//
//	leaf     H(0x00 || key || valueHash)
//	internal H(0x01 || left || right)
//
// The prefix guarantees a leaf hash can never be reinterpreted as an
// internal node or vice versa. Internal hashing is order-sensitive.
//
// Proof convention: sibling index i supplies the sibling at depth i
// (depth 0 root-adjacent, depth 255 leaf-adjacent), and verification folds
// from depth 255 toward depth 0.
package smt

import (
	"crypto/subtle"

	"github.com/zeebo/blake3"
)

// Depth is the fixed number of tree levels, one per bit of a 256-bit key.
const Depth = 256

// HashSize is the width of every node hash and key.
const HashSize = 32

// Domain separation prefixes for node hashing.
const (
	leafPrefix     = 0x00
	internalPrefix = 0x01
)

// EmptySubtreeHash returns the all-zero hash representing an empty subtree.
// It is also the root of a tree with no entries.
func EmptySubtreeHash() [HashSize]byte {
	return [HashSize]byte{}
}

// HashValue hashes a raw stored value for inclusion in a leaf.
func HashValue(value []byte) [HashSize]byte {
	return blake3.Sum256(value)
}

// HashLeaf computes H(0x00 || key || valueHash).
func HashLeaf(key, valueHash [HashSize]byte) [HashSize]byte {
	var preimage [1 + HashSize + HashSize]byte
	preimage[0] = leafPrefix
	copy(preimage[1:], key[:])
	copy(preimage[1+HashSize:], valueHash[:])
	return blake3.Sum256(preimage[:])
}

// HashInternal computes H(0x01 || left || right). Swapping left and right
// changes the result.
func HashInternal(left, right [HashSize]byte) [HashSize]byte {
	var preimage [1 + HashSize + HashSize]byte
	preimage[0] = internalPrefix
	copy(preimage[1:], left[:])
	copy(preimage[1+HashSize:], right[:])
	return blake3.Sum256(preimage[:])
}

// Bit returns the key bit at the given depth, MSB-first: depth 0 is the most
// significant bit of byte 0. Depths at or beyond the key width return 0;
// malformed proofs must not be able to panic the verifier.
func Bit(key []byte, depth int) byte {
	if depth < 0 || depth >= Depth {
		return 0
	}
	byteIdx := depth / 8
	if byteIdx >= len(key) {
		return 0
	}
	return (key[byteIdx] >> (7 - uint(depth)%8)) & 1
}

// BalanceKey derives the tree key for an (owner, token) balance entry:
// BLAKE3-256 over the 20-byte owner address followed by the 32-byte token id.
func BalanceKey(owner [20]byte, tokenID [HashSize]byte) [HashSize]byte {
	var preimage [20 + HashSize]byte
	copy(preimage[:], owner[:])
	copy(preimage[20:], tokenID[:])
	return blake3.Sum256(preimage[:])
}

// FoldRoot replays the 256 levels of hashing from a starting hash up to the
// root. At each depth the key bit selects operand order: bit 0 places the
// running hash on the left, bit 1 on the right. siblings must contain
// exactly 256 hashes of 32 bytes each, index i at depth i.
//
// Provers and verifiers share this fold so they cannot drift apart on the
// sibling convention.
func FoldRoot(key [HashSize]byte, start [HashSize]byte, siblings [][]byte) ([HashSize]byte, bool) {
	if len(siblings) != Depth {
		return [HashSize]byte{}, false
	}

	current := start
	for depth := Depth - 1; depth >= 0; depth-- {
		sib := siblings[depth]
		if len(sib) != HashSize {
			return [HashSize]byte{}, false
		}
		var sibling [HashSize]byte
		copy(sibling[:], sib)

		if Bit(key[:], depth) == 0 {
			current = HashInternal(current, sibling)
		} else {
			current = HashInternal(sibling, current)
		}
	}
	return current, true
}

// VerifyStateProof checks a claimed (root, key, value, siblings) tuple.
//
// An empty value claims non-inclusion: the starting hash is the empty
// subtree hash. A non-empty value claims inclusion with exactly that value:
// the starting hash is HashLeaf(key, HashValue(value)).
//
// Returns false, never an error, for malformed proofs (wrong sibling count
// or width) as well as for proofs that simply do not fold to the root.
// The verifier must be safe to call with fully untrusted input.
func VerifyStateProof(root [HashSize]byte, key [HashSize]byte, value []byte, siblings [][]byte) bool {
	var start [HashSize]byte
	if len(value) > 0 {
		start = HashLeaf(key, HashValue(value))
	}

	folded, ok := FoldRoot(key, start, siblings)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(folded[:], root[:]) == 1
}
