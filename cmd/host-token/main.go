// Command host-token prints a bearer token for the launcher host to push
// snapshots with.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bsglauncher/webui/internal/auth"
	"github.com/bsglauncher/webui/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	hostID := flag.String("host", "launcher-host", "host instance id (token subject)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(cfg.HostTokenSecret, cfg.HostTokenExpiry).IssueHostToken(*hostID)
	if err != nil {
		logger.Error("issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
