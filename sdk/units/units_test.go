package units

import (
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneSOLIsLamportsPerSOL(t *testing.T) {
	assert.Equal(t, uint64(1_000_000_000), ToLamports(1))
	assert.Equal(t, uint64(solana.LAMPORTS_PER_SOL), LamportsPerSOL)
	assert.Equal(t, 1.0, FromLamports(LamportsPerSOL))
}

func TestRoundTrip(t *testing.T) {
	for _, sol := range []float64{0, 0.000000001, 0.1, 0.5, 1, 1.23456789, 42.000000001, 1000} {
		assert.InDelta(t, sol, FromLamports(ToLamports(sol)), 1e-9, "sol=%v", sol)
	}
	for _, lamports := range []uint64{0, 1, 999, LamportsPerSOL, 123_456_789_012} {
		assert.Equal(t, lamports, ToLamports(FromLamports(lamports)), "lamports=%d", lamports)
	}
}

func TestToLamportsEdgeCases(t *testing.T) {
	assert.Equal(t, uint64(0), ToLamports(-1))
	assert.Equal(t, uint64(0), ToLamports(math.NaN()))
	assert.Equal(t, uint64(math.MaxUint64), ToLamports(math.Inf(1)))
	assert.Equal(t, uint64(100_000_000), ToLamports(0.1))
}

func TestParseSOL(t *testing.T) {
	testCases := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "1", want: 1_000_000_000},
		{in: "1.5", want: 1_500_000_000},
		{in: " 0.000000001 ", want: 1},
		{in: "0", want: 0},
		{in: "18446744073.709551615", want: math.MaxUint64},
		{in: "18446744073.709551616", wantErr: true},
		{in: "0.0000000001", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSOL(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatLamports(t *testing.T) {
	assert.Equal(t, "0", FormatLamports(0))
	assert.Equal(t, "1", FormatLamports(LamportsPerSOL))
	assert.Equal(t, "1.5", FormatLamports(1_500_000_000))
	assert.Equal(t, "0.000000001", FormatLamports(1))
	assert.Equal(t, "18446744073.709551615", FormatLamports(math.MaxUint64))
}
