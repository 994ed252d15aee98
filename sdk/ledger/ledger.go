// Package ledger validates Solana identifiers before they reach the relayer.
package ledger

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Cluster names understood by ExplorerURL.
const (
	ClusterMainnet = "mainnet-beta"
	ClusterDevnet  = "devnet"
	ClusterTestnet = "testnet"
)

// ValidateAddress reports whether addr is a base58 encoded 32-byte public key.
func ValidateAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("address is empty")
	}
	if _, err := solana.PublicKeyFromBase58(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}

// ValidateSignature reports whether sig is a base58 encoded transaction signature.
func ValidateSignature(sig string) error {
	sig = strings.TrimSpace(sig)
	if sig == "" {
		return fmt.Errorf("signature is empty")
	}
	if _, err := solana.SignatureFromBase58(sig); err != nil {
		return fmt.Errorf("invalid signature %q: %w", sig, err)
	}
	return nil
}

// ExplorerURL links a transaction signature on the public explorer.
func ExplorerURL(signature, cluster string) string {
	u := url.URL{
		Scheme: "https",
		Host:   "explorer.solana.com",
		Path:   "/tx/" + signature,
	}
	if cluster != "" && cluster != ClusterMainnet {
		u.RawQuery = url.Values{"cluster": []string{cluster}}.Encode()
	}
	return u.String()
}
