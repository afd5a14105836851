// gocast - a concurrent TCP server that streams a fixed payload to
// every connected client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gocast/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gocast: %v\n", err)
		os.Exit(1)
	}
}
