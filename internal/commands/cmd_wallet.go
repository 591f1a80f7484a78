package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/printer"
	"github.com/colonyops/bounty/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type WalletCmd struct {
	flags *Flags
	app   *bounty.App

	// flags
	label      string
	jsonOutput bool
}

// NewWalletCmd creates a new wallet command.
func NewWalletCmd(flags *Flags, app *bounty.App) *WalletCmd {
	return &WalletCmd{flags: flags, app: app}
}

// Register adds the wallet command to the application.
func (cmd *WalletCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "wallet",
		Usage: "Manage wallets that pay and receive bounties",
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Create an empty wallet",
				UsageText: "bounty wallet new [--label <label>]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "label",
						Usage:       "display label",
						Destination: &cmd.label,
					},
					cmd.jsonFlag(),
				},
				Action: cmd.runNew,
			},
			{
				Name:      "fund",
				Usage:     "Airdrop value into a wallet",
				UsageText: "bounty wallet fund <wallet> <amount>",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runFund,
			},
			{
				Name:      "balance",
				Usage:     "Show a wallet's balance",
				UsageText: "bounty wallet balance <wallet>",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runBalance,
			},
			{
				Name:      "ls",
				Usage:     "List all wallets",
				UsageText: "bounty wallet ls [--json]",
				Flags:     []cli.Flag{cmd.jsonFlag()},
				Action:    cmd.runLs,
			},
		},
	})

	return app
}

func (cmd *WalletCmd) jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}
}

func (cmd *WalletCmd) runNew(ctx context.Context, c *cli.Command) error {
	acct, err := cmd.app.Wallets.New(ctx, cmd.label)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, acct)
	}

	printWallet(printer.New(c.Root().Writer), acct)
	return nil
}

func (cmd *WalletCmd) runFund(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected a wallet address and an amount")
	}

	addr, err := parseAddress("wallet address", c.Args().Get(0))
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(c.Args().Get(1), 10, 64)
	if err != nil || n == 0 {
		return fmt.Errorf("amount must be a positive integer, got %q", c.Args().Get(1))
	}

	acct, err := cmd.app.Wallets.Fund(ctx, addr, n)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, acct)
	}

	printer.New(c.Root().Writer).Successf("Funded %s, balance %s", address(acct.Address), amount(acct.Balance))
	return nil
}

func (cmd *WalletCmd) runBalance(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one wallet address")
	}

	addr, err := parseAddress("wallet address", c.Args().First())
	if err != nil {
		return err
	}

	acct, err := cmd.app.Wallets.Get(ctx, addr)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, acct)
	}

	printWallet(printer.New(c.Root().Writer), acct)
	return nil
}

func (cmd *WalletCmd) runLs(ctx context.Context, c *cli.Command) error {
	wallets, err := cmd.app.Wallets.List(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, w := range wallets {
			if err := iojson.WriteLine(out, w); err != nil {
				return fmt.Errorf("encode wallet: %w", err)
			}
		}
		return nil
	}

	if len(wallets) == 0 {
		printer.Ctx(ctx).Infof("No wallets found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ADDRESS\tLABEL\tBALANCE")
	for _, acct := range wallets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", acct.Address, acct.Label, acct.Balance)
	}
	return w.Flush()
}
