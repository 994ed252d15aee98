package main

import (
	"os"

	"github.com/gaslessrelay/relaysdk/cmd/relaycli/cli"
	"github.com/gaslessrelay/relaysdk/pkg/logtrace"
)

func main() {
	err := cli.New().Execute()
	logtrace.Sync()
	if err != nil {
		os.Exit(1)
	}
}
