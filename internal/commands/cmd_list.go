package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/printer"
	"github.com/colonyops/bounty/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags
	app   *bounty.App

	// flags
	owner      string
	capacity   uint16
	jsonOutput bool
}

// NewListCmd creates a new list command.
func NewListCmd(flags *Flags, app *bounty.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application.
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "list",
		Usage: "Create and inspect todo lists",
		Description: `A list is owned by the wallet that creates it and holds up to
--capacity open items. Its address is derived from the owner and the first
32 bytes of its name, so one owner cannot create two lists whose names share
that prefix.`,
		Commands: []*cli.Command{
			cmd.createCmd(),
			cmd.showCmd(),
			cmd.lsCmd(),
		},
	})

	return app
}

func (cmd *ListCmd) jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "output as JSON",
		Destination: &cmd.jsonOutput,
	}
}

func (cmd *ListCmd) ownerFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:        "owner",
		Aliases:     []string{"o"},
		Usage:       "owner wallet address",
		Required:    required,
		Destination: &cmd.owner,
	}
}

func (cmd *ListCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a list owned by a wallet",
		UsageText: "bounty list create --owner <wallet> --capacity <n> <name>",
		Description: `Creates an empty list. The owner wallet pays the list account's
reserve, sized for a full list.

Examples:
  bounty list create --owner 7Xc...9a --capacity 5 groceries`,
		Flags: []cli.Flag{
			cmd.ownerFlag(true),
			&cli.Uint16Flag{
				Name:        "capacity",
				Aliases:     []string{"n"},
				Usage:       "maximum number of open items",
				Required:    true,
				Destination: &cmd.capacity,
			},
			cmd.jsonFlag(),
		},
		Action: cmd.runCreate,
	}
}

func (cmd *ListCmd) runCreate(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one list name")
	}

	owner, err := parseAddress("--owner", cmd.owner)
	if err != nil {
		return err
	}

	res, err := cmd.app.Lists.Create(ctx, owner, c.Args().First(), cmd.capacity)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
	}

	p := printer.New(c.Root().Writer)
	printList(p, res.List)
	p.Printf("")
	p.Successf("List created, %s reserved (tx %s)", amount(res.Reserved), res.TxID)
	return nil
}

func (cmd *ListCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a list and its open items",
		UsageText: "bounty list show <address>\n   bounty list show --owner <wallet> <name>",
		Description: `Shows a list by address, or by owner and name when --owner is set.`,
		Flags: []cli.Flag{
			cmd.ownerFlag(false),
			cmd.jsonFlag(),
		},
		Action: cmd.runShow,
	}
}

func (cmd *ListCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected a list address or name")
	}

	var (
		view bounty.ListView
		err  error
	)
	if cmd.owner != "" {
		owner, perr := parseAddress("--owner", cmd.owner)
		if perr != nil {
			return perr
		}
		view, err = cmd.app.Lists.Lookup(ctx, owner, c.Args().First())
	} else {
		addr, perr := parseAddress("list address", c.Args().First())
		if perr != nil {
			return perr
		}
		view, err = cmd.app.Lists.Get(ctx, addr)
	}
	if err != nil {
		return err
	}

	members, err := cmd.app.Lists.Members(ctx, view.Address)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		out := struct {
			bounty.ListView
			Items []bounty.ItemView `json:"items"`
		}{ListView: view, Items: members}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	out := c.Root().Writer
	printList(printer.New(out), view)
	if len(members) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ITEM\tNAME\tBOUNTY\tSTATE\tCREATOR")
	for _, m := range members {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", m.Address, m.Name, m.Bounty, m.State, m.Creator.Short())
	}
	return w.Flush()
}

func (cmd *ListCmd) lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List all lists",
		UsageText: "bounty list ls [--owner <wallet>] [--json]",
		Flags: []cli.Flag{
			cmd.ownerFlag(false),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runLs,
	}
}

func (cmd *ListCmd) runLs(ctx context.Context, c *cli.Command) error {
	owner, err := parseOptionalAddress("--owner", cmd.owner)
	if err != nil {
		return err
	}

	lists, err := cmd.app.Lists.List(ctx, owner)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, l := range lists {
			if err := iojson.WriteLine(out, l); err != nil {
				return fmt.Errorf("encode list: %w", err)
			}
		}
		return nil
	}

	if len(lists) == 0 {
		printer.Ctx(ctx).Infof("No lists found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ADDRESS\tNAME\tITEMS\tOWNER")
	for _, l := range lists {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", l.Address, l.Name, len(l.Members), l.Capacity, l.Owner.Short())
	}
	return w.Flush()
}
