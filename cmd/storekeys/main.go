package main

import (
	"context"
	"os"
	"os/signal"

	"storekeys/cmd/storekeys/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(commands.Execute(ctx))
}
