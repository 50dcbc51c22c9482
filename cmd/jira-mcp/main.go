package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golovatskygroup/mcp-jira/internal/config"
	"github.com/golovatskygroup/mcp-jira/internal/jira"
	"github.com/golovatskygroup/mcp-jira/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (optional; env vars JIRA_BASE_URL and JIRA_PAT otherwise)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	client := jira.NewClient(cfg.BaseURL, cfg.Token)
	srv := server.New(ctx, client)
	if err := srv.Run(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
