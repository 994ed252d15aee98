// Package units converts between SOL and lamports, the ledger's minor unit.
package units

import (
	"fmt"
	"math"
	"strings"

	sdkmath "cosmossdk.io/math"
)

const (
	// LamportsPerSOL is the number of minor units in one whole SOL.
	LamportsPerSOL uint64 = 1_000_000_000

	// Decimals is the number of fractional digits a SOL amount can carry.
	Decimals = 9
)

// ToLamports converts a SOL amount to lamports, rounding to the nearest
// lamport. Negative and NaN inputs yield 0; values above the uint64 range
// saturate.
func ToLamports(sol float64) uint64 {
	if math.IsNaN(sol) || sol <= 0 {
		return 0
	}
	v := math.Round(sol * float64(LamportsPerSOL))
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}

// FromLamports converts lamports to SOL.
func FromLamports(lamports uint64) float64 {
	return float64(lamports) / float64(LamportsPerSOL)
}

// ParseSOL parses a decimal SOL string such as "1.5" into lamports without
// going through floating point.
func ParseSOL(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > Decimals {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, Decimals)
	}

	dec, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if dec.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}

	lamports := dec.MulInt(sdkmath.NewIntFromUint64(LamportsPerSOL)).TruncateInt()
	if !lamports.IsUint64() {
		return 0, fmt.Errorf("amount %q overflows lamport range", s)
	}
	return lamports.Uint64(), nil
}

// FormatLamports renders lamports as a SOL decimal string with trailing zeros
// trimmed, e.g. 1500000000 -> "1.5".
func FormatLamports(lamports uint64) string {
	whole := sdkmath.NewIntFromUint64(lamports).Quo(sdkmath.NewIntFromUint64(LamportsPerSOL))
	frac := lamports % LamportsPerSOL
	if frac == 0 {
		return whole.String()
	}
	fs := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return whole.String() + "." + fs
}
