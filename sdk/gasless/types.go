package gasless

import "time"

// TransferResult is the outcome of SendTransfer. Signature, Recipient and
// Amount are set on success; Error carries the reason otherwise.
type TransferResult struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Amount    uint64 `json:"amount,omitempty"`
	Error     string `json:"error,omitempty"`
}

// TransferRecord is one entry of the caller's transfer history.
type TransferRecord struct {
	Signature string    `json:"signature"`
	Recipient string    `json:"recipient"`
	Amount    uint64    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
