package schedule

import (
	"strconv"
	"strings"
)

// Quantity is the parsed form of a free-text dose quantity such as
// "1 tablet", "1/2 tablet" or "2.5 ml". Amount carries the numeric part
// used by inventory arithmetic; Unit keeps the rest of the string for
// display.
type Quantity struct {
	Amount float64
	Unit   string
}

// ParseQuantity parses a dose quantity string. It never fails: when the
// leading token is not a number the amount defaults to 1 and the whole
// string is kept as the unit, since this sits on a read path that must
// always return a best-effort result.
func ParseQuantity(s string) Quantity {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Quantity{Amount: 1, Unit: ""}
	}

	fields := strings.Fields(trimmed)
	amount, ok := parseAmount(fields[0])
	if !ok {
		return Quantity{Amount: 1, Unit: trimmed}
	}

	return Quantity{
		Amount: amount,
		Unit:   strings.Join(fields[1:], " "),
	}
}

// parseAmount handles plain integers, decimals and simple fractions
// like "1/2".
func parseAmount(token string) (float64, bool) {
	if num, denom, found := strings.Cut(token, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(denom, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
