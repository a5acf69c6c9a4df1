// Command tconf evaluates, inspects and serves configuration files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tconf/tconf/pkg/prog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := prog.Run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args)
	stop()
	os.Exit(code)
}
