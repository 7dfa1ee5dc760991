package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/activity"
	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/errors"
	"github.com/contributorsambhav/portfolio/internal/metrics"
	"github.com/contributorsambhav/portfolio/internal/ops"
	"github.com/contributorsambhav/portfolio/internal/web"
)

// env carries the dependencies shared by every command.
type env struct {
	cat     *catalog.Catalog
	db      *sql.DB
	src     ops.Source
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// newCLIApp creates the CLI application with all commands.
// e may be nil when only help or version output is needed.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "portfolio",
		Usage:   "Portfolio projects, coding activity and Web3 work",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(e),
			projectsCmd(e),
			projectCmd(e),
			activityCmd(e),
			syncCmd(e),
			snapshotsCmd(e),
			techsCmd(e),
			web3Cmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web site and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *e.cfg
			if c.IsSet("bind") {
				cfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}
			if cfg.Port < 1 || cfg.Port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port)))
			}

			srv, err := web.NewServer(web.Deps{
				Catalog: e.cat,
				DB:      e.db,
				Source:  e.src,
				Config:  &cfg,
				Logger:  e.logger,
				Metrics: e.metrics,
				Version: Version,
			})
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, e.logger)
		},
	}
}

// projectsCmd creates the projects command.
func projectsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "projects",
		Usage: "List projects, filtered by category, technologies and search text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: catalog.TabAll, Usage: "all|featured|web|web3|ai|fullstack|blockchain"},
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Free-text search"},
			&cli.StringFlag{Name: "tech", Aliases: []string{"t"}, Usage: "Comma-separated technologies (all required)"},
		},
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Projects(e.cat, ops.ProjectsInput{
				Category:     c.String("category"),
				Search:       c.String("search"),
				Technologies: ops.ParseTechParam(c.String("tech")),
			}))
		},
	}
}

// projectCmd creates the project command.
func projectCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "project",
		Usage:     "Show one project",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			p, err := ops.Project(e.cat, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(p)
		},
	}
}

// activityCmd creates the activity command.
func activityCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "activity",
		Usage: "Show levelled daily activity from stored snapshots",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "provider", Usage: "github|leetcode|codeforces|combined (default: all)"},
			&cli.BoolFlag{Name: "refresh", Aliases: []string{"r"}, Usage: "Fetch providers before reading"},
			&cli.BoolFlag{Name: "offline", Usage: "Never fetch, even when snapshots are stale"},
		},
		Action: func(c *cli.Context) error {
			provider := activity.Provider(c.String("provider"))
			if provider != "" && !provider.Valid() {
				return outputError(errors.NewInvalidRequest("provider must be one of: github, leetcode, codeforces, combined"))
			}

			src := e.src
			if c.Bool("offline") {
				src = nil
			}
			out, err := ops.Activity(c.Context, e.db, src, ops.ActivityInput{
				Refresh:  c.Bool("refresh"),
				AutoSync: true,
				TTL:      e.cfg.CacheTTL(),
				Keep:     e.cfg.SnapshotKeep,
			})
			if err != nil {
				return outputError(err)
			}

			if provider == "" {
				return outputJSON(out)
			}
			return outputJSON(map[string]any{
				"provider":   provider,
				"days":       out.Series(provider),
				"total":      out.Totals[provider],
				"fetched_at": out.FetchedAt[provider],
			})
		},
	}
}

// syncCmd creates the sync command.
func syncCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Fetch every configured provider and store snapshots",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "keep", Usage: "Snapshots kept per provider (default from config)"},
		},
		Action: func(c *cli.Context) error {
			keep := e.cfg.SnapshotKeep
			if c.IsSet("keep") {
				keep = c.Int("keep")
			}
			out, err := ops.Sync(c.Context, e.db, e.src, ops.SyncInput{Keep: keep})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// snapshotsCmd creates the snapshots command.
func snapshotsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "snapshots",
		Usage: "List stored activity snapshots",
		Action: func(c *cli.Context) error {
			out, err := ops.Snapshots(e.db)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// techsCmd creates the techs command.
func techsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "techs",
		Usage: "Show the tech stack with project counts",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.TechStack(e.cat))
		},
	}
}

// web3Cmd creates the web3 command.
func web3Cmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "web3",
		Usage: "List Web3 projects and grants",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Value: "all", Usage: "all|projects|grants|completed|in-progress|applied|rejected"},
		},
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Web3(e.cat, c.String("filter")))
		},
	}
}

// outputJSON writes JSON output to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.PortfolioError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
