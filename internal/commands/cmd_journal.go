package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/printer"
	"github.com/colonyops/bounty/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type JournalCmd struct {
	flags *Flags
	app   *bounty.App

	// flags
	account    string
	txID       string
	limit      int
	jsonOutput bool
}

// NewJournalCmd creates a new journal command.
func NewJournalCmd(flags *Flags, app *bounty.App) *JournalCmd {
	return &JournalCmd{flags: flags, app: app}
}

// Register adds the journal command to the application.
func (cmd *JournalCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "journal",
		Usage:     "Show recorded value movements",
		UsageText: "bounty journal [--account <address>] [--tx <id>] [--limit <n>] [--json]",
		Description: `Lists transfers newest first. Each transition records one line per
movement: allocate, deposit, refund, payout, or airdrop.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "account",
				Aliases:     []string{"a"},
				Usage:       "only transfers into or out of this account",
				Destination: &cmd.account,
			},
			&cli.StringFlag{
				Name:        "tx",
				Usage:       "only transfers recorded by this transition",
				Destination: &cmd.txID,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of transfers (0 for all)",
				Value:       50,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *JournalCmd) run(ctx context.Context, c *cli.Command) error {
	account, err := parseOptionalAddress("--account", cmd.account)
	if err != nil {
		return err
	}
	if cmd.limit < 0 {
		return fmt.Errorf("--limit cannot be negative")
	}

	transfers, err := cmd.app.Wallets.Journal(ctx, ledger.TransferFilter{
		Account: account,
		TxID:    cmd.txID,
		Limit:   cmd.limit,
	})
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, tr := range transfers {
			if err := iojson.WriteLine(out, tr); err != nil {
				return fmt.Errorf("encode transfer: %w", err)
			}
		}
		return nil
	}

	if len(transfers) == 0 {
		printer.Ctx(ctx).Infof("No transfers recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tKIND\tAMOUNT\tFROM\tTO\tTX")
	for _, tr := range transfers {
		from := "-"
		if !tr.From.IsZero() {
			from = tr.From.Short()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			tr.CreatedAt.Local().Format(time.DateTime), tr.Kind, tr.Amount, from, tr.To.Short(), tr.TxID)
	}
	return w.Flush()
}
