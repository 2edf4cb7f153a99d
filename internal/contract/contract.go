// Package contract implements quarterly futures contract arithmetic: parsing
// "SYMBOL MM-YY" identifiers, 3rd-Friday expiry dates and quarterly rollback.
//
// All dates are date-only values represented as time.Time at midnight UTC.
package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// expectedLayout describes the canonical contract layout for error messages.
const expectedLayout = "SYMBOL MM-YY"

// Contract identifies a quarterly futures contract, e.g. MNQ 03-26.
type Contract struct {
	Root  string
	Month time.Month
	Year  int
}

// TradingWindow is the active life of a contract: from the previous quarter's
// expiry to the contract's own expiry.
type TradingWindow struct {
	StartExpiry time.Time
	EndExpiry   time.Time
}

// Parse parses a contract string of the form "SYMBOL MM-YY". The year is read
// as 2000+YY. Malformed input yields a *errors.FormatError.
func Parse(s string) (Contract, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return Contract{}, errors.NewFormatErrorf(s, expectedLayout, "invalid contract format: %q, expected %q", s, expectedLayout)
	}

	root, datePart := parts[0], parts[1]
	if root == "" {
		return Contract{}, errors.NewFormatErrorf(s, expectedLayout, "invalid contract format: %q has an empty symbol", s)
	}

	segments := strings.Split(datePart, "-")
	if len(segments) != 2 {
		return Contract{}, errors.NewFormatErrorf(s, "MM-YY", "invalid date format in %q, expected MM-YY", s)
	}

	month, err := parseNumber(segments[0])
	if err != nil {
		return Contract{}, errors.NewFormatErrorf(s, "MM-YY", "invalid month in %q: %v", s, err)
	}

	year, err := parseNumber(segments[1])
	if err != nil {
		return Contract{}, errors.NewFormatErrorf(s, "MM-YY", "invalid year in %q: %v", s, err)
	}

	if month < 1 || month > 12 {
		return Contract{}, errors.NewFormatErrorf(s, "MM-YY", "invalid month in %q: %d is outside 1..12", s, month)
	}

	return Contract{
		Root:  root,
		Month: time.Month(month),
		Year:  2000 + year,
	}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) Contract {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// parseNumber accepts one or two decimal digits.
func parseNumber(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, fmt.Errorf("%q is not a two-digit number", s)
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", s)
		}
	}

	return strconv.Atoi(s)
}

// String encodes the contract back to "SYMBOL MM-YY".
func (c Contract) String() string {
	return fmt.Sprintf("%s %02d-%02d", c.Root, int(c.Month), c.Year%100)
}

// IsZero reports whether c is the zero Contract.
func (c Contract) IsZero() bool {
	return c == Contract{}
}

// ThirdFriday returns the 3rd Friday of the given month.
func ThirdFriday(year int, month time.Month) time.Time {
	first := Date(year, month, 1)
	offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7

	return first.AddDate(0, 0, offset+14)
}

// Expiry returns the contract's expiry date, the 3rd Friday of its delivery month.
func Expiry(c Contract) time.Time {
	return ThirdFriday(c.Year, c.Month)
}

// Previous returns the contract one calendar quarter earlier with the same root.
func Previous(c Contract) Contract {
	prev := Date(c.Year, c.Month, 1).AddDate(0, -3, 0)

	return Contract{
		Root:  c.Root,
		Month: prev.Month(),
		Year:  prev.Year(),
	}
}

// ActiveTradingPeriod returns the window between the previous contract's expiry
// and this contract's expiry.
func ActiveTradingPeriod(c Contract) TradingWindow {
	return TradingWindow{
		StartExpiry: Expiry(Previous(c)),
		EndExpiry:   Expiry(c),
	}
}

// Rollover returns the contract itself followed by up to depth predecessors,
// in the order a deep mining session visits them.
func Rollover(c Contract, depth int) []Contract {
	chain := make([]Contract, 0, depth+1)
	chain = append(chain, c)

	for i := 0; i < depth; i++ {
		c = Previous(c)
		chain = append(chain, c)
	}

	return chain
}
