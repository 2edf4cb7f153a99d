package contract

import "sort"

// knownContracts are the contracts offered as starting points in the TUI.
var knownContracts = []string{
	"CL 03-26", "ES 03-26", "GC 04-26", "MES 03-26", "MNQ 03-26", "NQ 03-26", "RTY 03-26", "YM 03-26",
	"ES 06-26", "MNQ 06-26", "MNQ 12-25", "MNQ 09-25", "MNQ 06-25", "MNQ 03-25",
}

// Suggestions returns the known starting contracts in sorted order.
func Suggestions() []string {
	out := make([]string, len(knownContracts))
	copy(out, knownContracts)
	sort.Strings(out)

	return out
}
