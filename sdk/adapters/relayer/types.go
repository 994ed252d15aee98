package relayer

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// TransferRequest asks the relayer to move Amount lamports to Recipient.
type TransferRequest struct {
	Recipient string   `json:"recipient"`
	Amount    Lamports `json:"amount"`
	// IdempotencyKey is sent as a header, not in the body. Generated when empty.
	IdempotencyKey string `json:"-"`
}

// TransferResponse is the relayer's verdict on a transfer.
type TransferResponse struct {
	Success   bool     `json:"success"`
	Signature string   `json:"signature,omitempty"`
	Recipient string   `json:"recipient,omitempty"`
	Amount    Lamports `json:"amount,omitempty"`
	Error     string   `json:"error,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Transfer is one entry of the caller's transfer history.
type Transfer struct {
	Signature string    `json:"signature"`
	Recipient string    `json:"recipient"`
	Amount    Lamports  `json:"amount"`
	Timestamp Timestamp `json:"timestamp"`
}

type walletResponse struct {
	Address string `json:"address"`
	Wallet  string `json:"wallet"`
}

type historyResponse struct {
	Transfers []Transfer `json:"transfers"`
}

// Lamports decodes from a JSON number or a decimal string; relayers that
// serialise 64-bit integers as strings are common.
type Lamports uint64

func (l *Lamports) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" {
		*l = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid lamport amount %s: %w", b, err)
	}
	*l = Lamports(v)
	return nil
}

// Timestamp decodes RFC3339 strings, unix seconds or unix milliseconds.
type Timestamp struct {
	time.Time
}

// unix values above this are taken as milliseconds (year 2286 in seconds).
const millisThreshold = 9_999_999_999

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		return nil
	}

	if b[0] == '"' {
		s := string(bytes.Trim(b, `"`))
		if s == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed
			return nil
		}
		b = []byte(s)
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", b)
	}
	if f > millisThreshold {
		t.Time = time.UnixMilli(int64(f)).UTC()
	} else {
		t.Time = time.Unix(int64(f), 0).UTC()
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339))), nil
}
