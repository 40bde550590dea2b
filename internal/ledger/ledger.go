// Package ledger tracks which planned transfers users have confirmed as paid.
//
// The confirmed set is plain state stored in the trip document. It is never
// derived and never pruned implicitly: a key whose transfer no longer appears
// in the plan is kept as an orphan until someone prunes it.
package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
)

// Key returns the settlement key of a transfer: "{from}-{to}-{amount}" with
// the amount rounded to exactly two decimals.
//
// Rounding works on the exact binary value of the float, halves rounding up,
// so 5.005 (stored as 5.00499...) gives "5.00" just like JavaScript's
// toFixed(2). Stored keys depend on this format. Changing it orphans every
// confirmation already persisted.
func Key(t calculator.Transfer) string {
	return t.From + "-" + t.To + "-" + decimal.NewFromFloatWithExponent(t.Amount, -2).StringFixed(2)
}

// Toggle removes key from confirmed when present and appends it otherwise.
// The input slice is never modified.
func Toggle(confirmed []string, key string) []string {
	if !slices.Contains(confirmed, key) {
		out := make([]string, 0, len(confirmed)+1)
		out = append(out, confirmed...)
		return append(out, key)
	}

	out := make([]string, 0, len(confirmed))
	for _, k := range confirmed {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// IsSettled reports whether key has been confirmed.
func IsSettled(confirmed []string, key string) bool {
	return slices.Contains(confirmed, key)
}

// Orphaned returns the confirmed keys that match none of the given transfers.
func Orphaned(confirmed []string, transfers []calculator.Transfer) []string {
	planned := plannedKeys(transfers)
	var orphans []string
	for _, k := range confirmed {
		if _, ok := planned[k]; !ok {
			orphans = append(orphans, k)
		}
	}
	return orphans
}

// Prune drops orphaned keys, keeping the remaining ones in order.
func Prune(confirmed []string, transfers []calculator.Transfer) []string {
	planned := plannedKeys(transfers)
	out := make([]string, 0, len(confirmed))
	for _, k := range confirmed {
		if _, ok := planned[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func plannedKeys(transfers []calculator.Transfer) map[string]struct{} {
	keys := make(map[string]struct{}, len(transfers))
	for _, t := range transfers {
		keys[Key(t)] = struct{}{}
	}
	return keys
}
