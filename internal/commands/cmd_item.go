package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/printer"
	"github.com/colonyops/bounty/pkg/iojson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type ItemCmd struct {
	flags *Flags
	app   *bounty.App

	// shared flags
	list       string
	listOwner  string
	listName   string
	caller     string
	jsonOutput bool

	// add flags
	bounty uint64
	item   string

	// cancel/finish flags
	creator string
	yes     bool
}

// NewItemCmd creates a new item command.
func NewItemCmd(flags *Flags, app *bounty.App) *ItemCmd {
	return &ItemCmd{flags: flags, app: app}
}

// Register adds the item command to the application.
func (cmd *ItemCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "item",
		Usage: "Add, cancel and finish bountied items",
		Description: `Every item holds its bounty in its own account until it leaves the list.

Cancelling refunds the whole bounty to the item's creator. Finishing needs a
confirmation from both the list owner and the item creator; the second
confirmation pays the bounty to the list owner and closes the item.`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.cancelCmd(),
			cmd.finishCmd(),
			cmd.showCmd(),
		},
	})

	return app
}

func (cmd *ItemCmd) listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "list",
			Aliases:     []string{"l"},
			Usage:       "list address",
			Required:    true,
			Destination: &cmd.list,
		},
		&cli.StringFlag{
			Name:        "list-owner",
			Usage:       "wallet expected to own the list",
			Required:    true,
			Destination: &cmd.listOwner,
		},
		&cli.StringFlag{
			Name:        "list-name",
			Usage:       "name the list was created with (defaults to the recorded name)",
			Destination: &cmd.listName,
		},
		&cli.StringFlag{
			Name:        "caller",
			Usage:       "wallet performing the transition",
			Sources:     cli.EnvVars("BOUNTY_CALLER"),
			Required:    true,
			Destination: &cmd.caller,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON",
			Destination: &cmd.jsonOutput,
		},
	}
}

func (cmd *ItemCmd) creatorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "creator",
		Usage:       "wallet expected to have created the item (defaults to the recorded creator)",
		Destination: &cmd.creator,
	}
}

func (cmd *ItemCmd) listRef() (bounty.ListRef, error) {
	list, err := parseAddress("--list", cmd.list)
	if err != nil {
		return bounty.ListRef{}, err
	}
	owner, err := parseAddress("--list-owner", cmd.listOwner)
	if err != nil {
		return bounty.ListRef{}, err
	}
	return bounty.ListRef{List: list, ListOwner: owner, ListName: cmd.listName}, nil
}

func (cmd *ItemCmd) itemRequest(c *cli.Command) (bounty.ItemRequest, error) {
	if c.Args().Len() != 1 {
		return bounty.ItemRequest{}, fmt.Errorf("expected exactly one item address")
	}

	ref, err := cmd.listRef()
	if err != nil {
		return bounty.ItemRequest{}, err
	}
	item, err := parseAddress("item address", c.Args().First())
	if err != nil {
		return bounty.ItemRequest{}, err
	}
	creator, err := parseOptionalAddress("--creator", cmd.creator)
	if err != nil {
		return bounty.ItemRequest{}, err
	}
	caller, err := parseAddress("--caller", cmd.caller)
	if err != nil {
		return bounty.ItemRequest{}, err
	}

	return bounty.ItemRequest{ListRef: ref, Item: item, Creator: creator, Caller: caller}, nil
}

func (cmd *ItemCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add an item with an escrowed bounty",
		UsageText: "bounty item add --list <list> --list-owner <wallet> --caller <wallet> --bounty <amount> <name>",
		Description: `Adds an item to a list. The caller's balance drops by exactly --bounty:
part of it reserves the item account and the rest is deposited on top.
The bounty must cover that reserve.

Examples:
  bounty item add --list 4Fq...2c --list-owner 7Xc...9a --caller 9Lm...1b --bounty 1000 "milk"`,
		Flags: append(cmd.listFlags(),
			&cli.Uint64Flag{
				Name:        "bounty",
				Aliases:     []string{"b"},
				Usage:       "amount escrowed for whoever finishes the item",
				Required:    true,
				Destination: &cmd.bounty,
			},
			&cli.StringFlag{
				Name:        "item",
				Usage:       "address for the new item (random when empty)",
				Destination: &cmd.item,
			},
		),
		Action: cmd.runAdd,
	}
}

func (cmd *ItemCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one item name")
	}

	ref, err := cmd.listRef()
	if err != nil {
		return err
	}
	caller, err := parseAddress("--caller", cmd.caller)
	if err != nil {
		return err
	}
	item, err := parseOptionalAddress("--item", cmd.item)
	if err != nil {
		return err
	}

	res, err := cmd.app.Items.Add(ctx, bounty.AddRequest{
		ListRef:  ref,
		ItemName: c.Args().First(),
		Bounty:   cmd.bounty,
		Caller:   caller,
		Item:     item,
	})
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
	}

	p := printer.New(c.Root().Writer)
	printItem(p, res.Item)
	p.Printf("")
	p.Successf("Item added, %s escrowed (tx %s)", amount(res.Item.Bounty), res.TxID)
	return nil
}

func (cmd *ItemCmd) cancelCmd() *cli.Command {
	return &cli.Command{
		Name:      "cancel",
		Usage:     "Cancel an item and refund its creator",
		UsageText: "bounty item cancel --list <list> --list-owner <wallet> --caller <wallet> [--yes] <item>",
		Description: `Removes the item from its list and refunds its whole balance to the
item's creator. Either the list owner or the item creator may cancel.`,
		Flags: append(cmd.listFlags(),
			cmd.creatorFlag(),
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		),
		Action: cmd.runCancel,
	}
}

func (cmd *ItemCmd) runCancel(ctx context.Context, c *cli.Command) error {
	req, err := cmd.itemRequest(c)
	if err != nil {
		return err
	}

	if !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		ok, err := cmd.confirmCancel(ctx, req)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			printer.Ctx(ctx).Infof("Cancel aborted")
			return nil
		}
	}

	res, err := cmd.app.Items.Cancel(ctx, req)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
	}

	printer.New(c.Root().Writer).Successf("Item cancelled, %s refunded to %s (tx %s)", amount(res.Refunded), address(res.Creator), res.TxID)
	return nil
}

func (cmd *ItemCmd) confirmCancel(ctx context.Context, req bounty.ItemRequest) (bool, error) {
	description := req.Item.String()
	if view, err := cmd.app.Items.Get(ctx, req.Item); err == nil {
		description = fmt.Sprintf("%q holds %d, refunded to %s", view.Name, view.Bounty, view.Creator)
	}

	var ok bool
	err := huh.NewConfirm().
		Title("Cancel this item?").
		Description(description).
		Value(&ok).
		Run()
	return ok, err
}

func (cmd *ItemCmd) finishCmd() *cli.Command {
	return &cli.Command{
		Name:      "finish",
		Usage:     "Confirm an item as finished",
		UsageText: "bounty item finish --list <list> --list-owner <wallet> --caller <wallet> <item>",
		Description: `Records the caller's confirmation. A caller that is both list owner and
item creator confirms for both at once. When both confirmations are in, the
bounty is paid to the list owner and the item is closed.`,
		Flags:  append(cmd.listFlags(), cmd.creatorFlag()),
		Action: cmd.runFinish,
	}
}

func (cmd *ItemCmd) runFinish(ctx context.Context, c *cli.Command) error {
	req, err := cmd.itemRequest(c)
	if err != nil {
		return err
	}

	res, err := cmd.app.Items.Finish(ctx, req)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
	}

	p := printer.New(c.Root().Writer)
	if res.State.Terminal() {
		p.Successf("Item finished, %s paid to the list owner (tx %s)", amount(res.Paid), res.TxID)
		return nil
	}
	p.Infof("Confirmation recorded: %s (tx %s)", renderState(res.State), res.TxID)
	return nil
}

func (cmd *ItemCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show an open item",
		UsageText: "bounty item show [--json] <item>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runShow,
	}
}

func (cmd *ItemCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one item address")
	}
	addr, err := parseAddress("item address", c.Args().First())
	if err != nil {
		return err
	}

	view, err := cmd.app.Items.Get(ctx, addr)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, view)
	}

	printItem(printer.New(c.Root().Writer), view)
	return nil
}
