package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/vorsakha/ascension/internal"
	"github.com/vorsakha/ascension/internal/delivery"
	"github.com/vorsakha/ascension/internal/draft"
	"github.com/vorsakha/ascension/internal/publish"
	"github.com/vorsakha/ascension/internal/repo"
	"github.com/vorsakha/ascension/internal/storage"
	"github.com/vorsakha/ascension/internal/token"
	"github.com/vorsakha/ascension/internal/topic"
	"github.com/vorsakha/ascension/internal/workspace"
	pkgconfig "github.com/vorsakha/ascension/pkg/config"
)

type appEnv struct {
	cfg           *internal.Config
	workspaceRoot string
	log           *slog.Logger
}

func setup(cmd *cli.Command) (*appEnv, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Payload JSON owns stdout; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	root := cfg.Content.Workspace
	if root == "" {
		resolved, err := workspace.Resolve()
		if err != nil {
			return nil, err
		}
		root = resolved
	}

	return &appEnv{cfg: cfg, workspaceRoot: root, log: logger}, nil
}

// builder wires storage → repository → response builder for the delivery
// commands. Every invocation re-scans the directory.
func (e *appEnv) builder(cmd *cli.Command) (*delivery.Builder, error) {
	publicDir := cmd.String("content-root")
	if publicDir == "" {
		publicDir = e.cfg.Content.Resolve(e.workspaceRoot, e.cfg.Content.PublicDir)
	}
	store, err := storage.NewFS(publicDir)
	if err != nil {
		return nil, err
	}
	return delivery.New(repo.New(store), delivery.Config{
		PageSize:     e.cfg.Delivery.PageSize,
		ChunkSize:    e.cfg.Delivery.ChunkSize,
		ExcerptChars: e.cfg.Delivery.ExcerptChars,
		MenuRowWidth: e.cfg.Delivery.MenuRowWidth,
	}, e.log), nil
}

func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid --format %q (want text or json)", format)
	}
	return nil
}

func emit(p delivery.Payload, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Print(delivery.RenderText(p))
	return nil
}

// fail writes a JSON error body when the caller asked for JSON, then
// returns the error so the process exits non-zero.
func fail(format string, err error) error {
	if format == "json" {
		body, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(body))
	}
	return err
}

func deliveryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "content-root",
			Usage: "Override the public content root path",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text or json",
			Value: "text",
		},
	}
}

func menuCommand() *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Return the topic menu payload",
		Flags: deliveryFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			b, err := env.builder(cmd)
			if err != nil {
				return fail(format, err)
			}
			p, err := b.Menu()
			if err != nil {
				return fail(format, err)
			}
			return emit(p, format)
		},
	}
}

func latestCommand() *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Return the latest-post payload for a topic",
		Flags: append(deliveryFlags(), &cli.StringFlag{
			Name:     "topic",
			Usage:    "Topic alias or canonical topic",
			Required: true,
		}),
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			t, err := topic.Canonical(cmd.String("topic"))
			if err != nil {
				return fail(format, err)
			}
			b, err := env.builder(cmd)
			if err != nil {
				return fail(format, err)
			}
			p, err := b.Latest(t)
			if err != nil {
				return fail(format, err)
			}
			return emit(p, format)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Return a paginated post list payload for a topic",
		Flags: append(deliveryFlags(),
			&cli.StringFlag{
				Name:     "topic",
				Usage:    "Topic alias or canonical topic",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "1-based page number (clamped into range)",
				Value: 1,
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			t, err := topic.Canonical(cmd.String("topic"))
			if err != nil {
				return fail(format, err)
			}
			b, err := env.builder(cmd)
			if err != nil {
				return fail(format, err)
			}
			p, err := b.List(t, int(cmd.Int("page")))
			if err != nil {
				return fail(format, err)
			}
			return emit(p, format)
		},
	}
}

func callbackCommand() *cli.Command {
	return &cli.Command{
		Name:  "callback",
		Usage: "Resolve a chat callback token into its payload",
		Flags: append(deliveryFlags(), &cli.StringFlag{
			Name:     "data",
			Usage:    "Callback payload string, e.g. " + token.Prefix + ":menu",
			Required: true,
		}),
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			if err := checkFormat(format); err != nil {
				return err
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			b, err := env.builder(cmd)
			if err != nil {
				return fail(format, err)
			}
			// Decode failures come back as graceful payloads, exit 0.
			p, err := b.Callback(cmd.String("data"))
			if err != nil {
				return fail(format, err)
			}
			return emit(p, format)
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new post draft from a template",
		ArgsUsage: "VISIBILITY TYPE TITLE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "Override date in YYYY-MM-DD format",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite destination if it exists",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print result without writing",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 3 {
				return fmt.Errorf("usage: new VISIBILITY TYPE TITLE")
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}

			contentDir := env.cfg.Content.Resolve(env.workspaceRoot, env.cfg.Content.ContentDir)
			if err := os.MkdirAll(contentDir, 0o755); err != nil {
				return fmt.Errorf("create content dir: %w", err)
			}
			store, err := storage.NewFS(contentDir)
			if err != nil {
				return err
			}

			creator := draft.NewCreator(
				store,
				env.cfg.Content.Resolve(env.workspaceRoot, env.cfg.Content.TemplatesDir),
				env.cfg.Content.AgentName,
			)
			res, err := creator.Create(draft.Input{
				Visibility: cmd.Args().Get(0),
				Type:       cmd.Args().Get(1),
				Title:      cmd.Args().Get(2),
				Date:       cmd.String("date"),
			}, cmd.Bool("force"), cmd.Bool("dry-run"))
			if err != nil {
				return err
			}
			if res.DryRun {
				fmt.Printf("[dry-run] Would create: %s\n", res.AbsPath)
				return nil
			}
			fmt.Printf("Created: %s\n", res.AbsPath)
			fmt.Println("Next: review and polish content before delivery.")
			return nil
		},
	}
}

func publishCommand() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Copy a private draft into the public content folder",
		ArgsUsage: "PRIVATE_FILE PUBLIC_FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite destination if it exists",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show actions without copying",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("usage: publish PRIVATE_FILE PUBLIC_FILE")
			}
			env, err := setup(cmd)
			if err != nil {
				return err
			}

			pub, err := publish.New(env.cfg.Content.Resolve(env.workspaceRoot, env.cfg.Content.ContentDir))
			if err != nil {
				return err
			}
			dst, err := pub.Publish(
				cmd.Args().Get(0), cmd.Args().Get(1),
				cmd.Bool("force"), cmd.Bool("dry-run"),
			)
			if err != nil {
				return err
			}
			if cmd.Bool("dry-run") {
				fmt.Printf("[dry-run] Would copy %q -> %q\n", cmd.Args().Get(0), dst)
				return nil
			}
			fmt.Printf("Published locally: %s\n", dst)
			fmt.Println("Next: polish public language and remove sensitive details before delivery.")
			return nil
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "ascension",
		Usage: "Journal and memory content pipeline with deterministic chat delivery",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("ASCENSION_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			menuCommand(),
			latestCommand(),
			listCommand(),
			callbackCommand(),
			newCommand(),
			publishCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
