package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/commands"
	"github.com/colonyops/bounty/internal/core/config"
	"github.com/colonyops/bounty/internal/core/eventbus"
	"github.com/colonyops/bounty/internal/core/logging"
	"github.com/colonyops/bounty/internal/core/styles"
	"github.com/colonyops/bounty/internal/data/db"
	"github.com/colonyops/bounty/internal/data/stores"
	"github.com/colonyops/bounty/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// eventBuffer bounds how many events a single command can queue before
// the bus starts dropping them.
const eventBuffer = 256

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		bountyApp = &bounty.App{}
		database  *db.DB
		busCancel context.CancelFunc
		busDone   chan struct{}
	)

	flags := &commands.Flags{App: bountyApp}

	app := &cli.Command{
		Name:      "bounty",
		Usage:     "Shared todo lists with escrowed bounties",
		UsageText: "bounty [global options] command [command options]",
		Description: `Bounty keeps todo lists whose items carry escrowed rewards.

Anyone can add an item to a list by escrowing a bounty in the item's own
account. The list owner or the item creator can cancel it, refunding the
creator. Once both have confirmed it finished, the bounty is paid to the
list owner.

Run 'bounty wallet new' to create a wallet, then 'bounty list create'.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("BOUNTY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("BOUNTY_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("BOUNTY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("BOUNTY_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			database, err = db.Open(cfg.DataDir, cfg.Database.OpenOptions())
			if err != nil {
				if !stores.IsCorruptionError(err) {
					return ctx, fmt.Errorf("open database: %w", err)
				}

				backup, rerr := stores.RecoverFromCorruption(cfg.DataDir)
				if rerr != nil {
					return ctx, errors.Join(fmt.Errorf("open database: %w", err), rerr)
				}
				log.Warn().Err(err).Str("backup", backup).Msg("database corrupted, moved aside and starting empty")

				database, err = db.Open(cfg.DataDir, cfg.Database.OpenOptions())
				if err != nil {
					return ctx, fmt.Errorf("open database: %w", err)
				}
			}

			bus := eventbus.New(eventBuffer)
			eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
			eventbus.NewNotificationRouter(bus).Register()

			notices := logging.Component("notify")
			bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
				notices.Info().Str("level", string(p.Level)).Msg(p.Message)
			})
			bus.OnDrop(func(event eventbus.Event, _ any) {
				notices.Warn().Str("event", string(event)).Msg("event dropped, queue full")
			})

			var busCtx context.Context
			busCtx, busCancel = context.WithCancel(context.Background())
			busDone = make(chan struct{})
			go func() {
				defer close(busDone)
				bus.Start(busCtx)
			}()

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*bountyApp = *bounty.NewApp(stores.NewLedger(database), bus, bounty.SettingsFromConfig(cfg))

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Deliver queued events before shutting down
			if busCancel != nil {
				busCancel()
				<-busDone
			}

			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewWalletCmd(flags, bountyApp).Register(app)
	app = commands.NewListCmd(flags, bountyApp).Register(app)
	app = commands.NewItemCmd(flags, bountyApp).Register(app)
	app = commands.NewTxCmd(flags, bountyApp).Register(app)
	app = commands.NewJournalCmd(flags, bountyApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		var exitErr cli.ExitCoder
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			fmt.Fprintln(os.Stderr, commands.FormatError(runErr))
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
