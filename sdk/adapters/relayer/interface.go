//go:generate mockgen -source=interface.go -destination=mocks/client_mock.go -package=mocks
package relayer

import "context"

// Client is the relayer's HTTP API. Every call carries the caller's bearer
// token; the relayer derives the custodial wallet from it.
type Client interface {
	GetWalletAddress(ctx context.Context, token string) (string, error)
	SendTransfer(ctx context.Context, token string, req TransferRequest) (*TransferResponse, error)
	GetTransferHistory(ctx context.Context, token string) ([]Transfer, error)
}
