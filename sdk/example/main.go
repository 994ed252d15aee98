package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gaslessrelay/relaysdk/pkg/logtrace"
	"github.com/gaslessrelay/relaysdk/sdk/config"
	"github.com/gaslessrelay/relaysdk/sdk/event"
	"github.com/gaslessrelay/relaysdk/sdk/gasless"
	sdklog "github.com/gaslessrelay/relaysdk/sdk/log"
	"github.com/gaslessrelay/relaysdk/sdk/units"
)

// Usage: RELAYSDK_USERNAME=alice RELAYSDK_PASSWORD=... go run ./sdk/example [recipient amount-SOL]
func main() {
	cfg, err := config.Load(os.Getenv("RELAYSDK_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logtrace.Setup("relaysdk-example", cfg.Log.Level)
	defer logtrace.Sync()

	client, err := gasless.NewClient(*cfg, sdklog.NewLogtraceLogger("example"))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	client.SubscribeToAllEvents(func(e event.Event) {
		fmt.Printf("event %s %v\n", e.Type, e.Data)
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.Login(ctx, os.Getenv("RELAYSDK_USERNAME"), os.Getenv("RELAYSDK_PASSWORD")); err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	addr, err := client.GetWalletAddress(ctx)
	if err != nil {
		log.Fatalf("Wallet lookup failed: %v", err)
	}
	fmt.Printf("wallet: %s\n", addr)

	if len(os.Args) == 3 {
		lamports, err := units.ParseSOL(os.Args[2])
		if err != nil {
			log.Fatalf("Bad amount: %v", err)
		}
		res, err := client.SendTransfer(ctx, os.Args[1], lamports)
		if err != nil {
			log.Fatalf("Transfer failed: %v", err)
		}
		if !res.Success {
			log.Fatalf("Transfer rejected: %s", res.Error)
		}
		fmt.Printf("signature: %s\n", res.Signature)
	}

	history, err := client.GetTransferHistory(ctx)
	if err != nil {
		log.Fatalf("History failed: %v", err)
	}
	for _, r := range history {
		fmt.Printf("%s  %s SOL -> %s  %s\n", r.Timestamp.Format(time.RFC3339), units.FormatLamports(r.Amount), r.Recipient, r.Signature)
	}
}
