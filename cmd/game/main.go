package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/orbitguard/deflect/internal/loop/client"
	"github.com/orbitguard/deflect/internal/loop/config"
	"github.com/orbitguard/deflect/internal/loop/server"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// The terminal is in raw mode; server logs would corrupt the scene.
	logger := log.New(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	simServer := server.NewServer(config.ThreatFromEnv(), logger)
	go simServer.Run(ctx)

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(simServer, reader, os.Stdout, client.ClientOptions{Username: "local"})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
}
