package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazytodo/internal/cli"
	"github.com/chmouel/lazytodo/internal/config"
	"github.com/chmouel/lazytodo/internal/log"
	"github.com/chmouel/lazytodo/internal/theme"
)

// loadCLIConfig loads the config file, then applies flag and --config
// overrides. A broken config file is reported and the defaults are used.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	setupDebugLog(cmd, cfg)
	return cfg, nil
}

// applyFlags applies the dedicated flags, which win over the config file.
func applyFlags(cmd *urfavecli.Command, cfg *config.AppConfig) error {
	if name := cmd.String("command"); name != "" {
		cfg.CommandName = name
	}
	if action := cmd.String("open-action"); action != "" {
		normalized := config.NormalizeOpenAction(action)
		if normalized == "" {
			return fmt.Errorf("unknown open action %q", action)
		}
		cfg.OpenAction = normalized
	}
	if name := cmd.String("theme"); name != "" {
		normalized := theme.Normalize(name)
		if normalized == "" {
			return fmt.Errorf("unknown theme %q", name)
		}
		cfg.Theme = normalized
	}
	if dir := cmd.String("working-dir"); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("error expanding working-dir: %w", err)
		}
		cfg.WorkingDir = expanded
	}
	if cmd.Bool("auto-refresh") {
		cfg.AutoRefresh = true
	}
	if cmd.Bool("no-notify") {
		cfg.NotifyEnabled = false
	}
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		cfg.DebugLog = debugLog
	}
	return nil
}

// setupDebugLog points the debug logger at cfg.DebugLog, or discards
// buffered lines when none is configured.
func setupDebugLog(cmd *urfavecli.Command, cfg *config.AppConfig) {
	path := cfg.DebugLog
	if path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			path = expanded
		}
		cfg.DebugLog = path
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(cmd.Root().ErrWriter, "Error opening debug log file %q: %v\n", path, err)
	}
}

// runHeadless runs op through the headless host.
func runHeadless(ctx context.Context, cmd *urfavecli.Command, op cli.Operation) error {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()
	return runHeadlessWith(ctx, cmd.Root().Writer, cmd.Root().ErrWriter, cfg, op)
}

func runHeadlessWith(ctx context.Context, out, errOut io.Writer, cfg *config.AppConfig, op cli.Operation) error {
	host := cli.NewHost(cfg, out, errOut)
	return cli.Run(ctx, cfg, host, op)
}

func headlessCommand(name, usage string, op cli.Operation) *urfavecli.Command {
	return &urfavecli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			if cmd.Args().Present() {
				return fmt.Errorf("%s takes no arguments", name)
			}
			return runHeadless(ctx, cmd, op)
		},
	}
}

func subcommands() []*urfavecli.Command {
	return []*urfavecli.Command{
		headlessCommand("where", "Print the paths todo_md resolved", cli.Where),
		headlessCommand("report", "Print the todo_md status report", cli.Report),
		headlessCommand("sync", "Pull, commit and push the todo repository", cli.Sync),
		{
			Name:      "setup",
			Usage:     "Initialise the todo repository",
			ArgsUsage: "[remote]",
			Action: func(ctx context.Context, cmd *urfavecli.Command) error {
				if cmd.Args().Len() > 1 {
					return errors.New("setup takes at most one remote")
				}
				return runHeadless(ctx, cmd, cli.Setup(cmd.Args().First()))
			},
		},
		headlessCommand("open", "Open the todo file", cli.Open),
		headlessCommand("repo", "Open the todo_md config directory", cli.Repo),
		headlessCommand("help-cli", "Print the todo_md command summary", cli.Help),
		{
			Name:  "config",
			Usage: "Print the effective configuration",
			Action: func(_ context.Context, cmd *urfavecli.Command) error {
				cfg, err := loadCLIConfig(cmd)
				if err != nil {
					return err
				}
				defer func() { _ = log.Close() }()
				dump, err := cfg.Dump()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.Root().Writer, dump)
				return nil
			},
		},
	}
}
