package automaton

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/cfg-tools/lr1/grammar"
	"golang.org/x/crypto/blake2b"
)

// fingerprint computes a permutation-independent digest of an item set: the
// items' own keys (core plus sorted lookahead) sorted and joined, then
// hashed with blake2b-256. Two item sets fingerprint identically iff they
// contain the same items, regardless of the order items were discovered in,
// which is exactly the equality canonical collection construction needs to
// decide whether a goto target is a state already built.
func fingerprint(items []grammar.Item) string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	sort.Strings(keys)

	sum := blake2b.Sum256([]byte(strings.Join(keys, "\x1e")))
	return hex.EncodeToString(sum[:])
}
