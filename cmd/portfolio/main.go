package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/db"
	"github.com/contributorsambhav/portfolio/internal/logging"
	"github.com/contributorsambhav/portfolio/internal/mcp"
	"github.com/contributorsambhav/portfolio/internal/metrics"
	"github.com/contributorsambhav/portfolio/internal/providers"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "projects": true, "project": true,
	"activity": true, "sync": true, "snapshots": true,
	"techs": true, "web3": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  portfolio: projects, coding activity and Web3 work

  Usage: portfolio <command> [options]
         portfolio serve
         portfolio --help

  MCP server mode requires piped input.`)
}

// failf reports an error on stderr and returns the process exit code.
func failf(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return 1
}

func main() {
	os.Exit(run())
}

// run executes the program and returns its exit code. Deferred cleanup
// (logger flush, database close) completes before main exits.
func run() int {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return 0
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			return failf("%v", err)
		}
		return 0
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return failf("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, config.DirName)

	cwd, _ := os.Getwd()
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		return failf("failed to load config: %v", err)
	}

	logger := logging.Must(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return failf("failed to load catalog: %v", err)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		return failf("failed to initialize database: %v", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	m := metrics.New()
	fetcher := providers.NewFetcher(cfg, &http.Client{}, logger, m)

	e := &env{cat: cat, db: database, src: fetcher, cfg: cfg, logger: logger, metrics: m}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(e)
		if err := app.Run(os.Args); err != nil {
			return failf("%v", err)
		}
		return 0
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		code := failf("unknown command %q", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'portfolio --help' for usage.\n")
		return code
	}

	// MCP server mode (default)
	if err := mcp.Run(cat, database, fetcher, cfg, logger, Version); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		return failf("%v", err)
	}
	return 0
}
