package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/colonyops/bounty/internal/core/validate"
	"github.com/colonyops/bounty/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type TxCmd struct {
	flags *Flags
	app   *bounty.App
	fr    *iojson.FileReader[TxInput]
}

func NewTxCmd(flags *Flags, app *bounty.App) *TxCmd {
	return &TxCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[TxInput]{},
	}
}

func (cmd *TxCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "tx",
		Usage: "Apply transitions from JSON documents",
		Commands: []*cli.Command{
			{
				Name:  "apply",
				Usage: "Apply a sequence of transitions",
				UsageText: `bounty tx apply [options]

Read from stdin:
  echo '{"instructions":[{"create_list":{"owner":"7Xc...9a","name":"chores","capacity":3}}]}' | bounty tx apply

Read from file:
  bounty tx apply -f tx.json`,
				Description: `Applies instructions in order, each one as its own atomic transition.
Processing stops at the first failure; later instructions are marked skipped.

Input JSON schema:
  {
    "instructions": [
      {"create_list": {"owner": "<wallet>", "name": "chores", "capacity": 3}},
      {"add":    {"list": "<list>", "list_owner": "<wallet>", "item_name": "dishes", "bounty": 1000, "caller": "<wallet>"}},
      {"cancel": {"list": "<list>", "list_owner": "<wallet>", "item": "<item>", "caller": "<wallet>"}},
      {"finish": {"list": "<list>", "list_owner": "<wallet>", "item": "<item>", "caller": "<wallet>"}}
    ]
  }

Each instruction names exactly one transition. "list_name", "item" (for
add) and "item_creator" are optional and default to the recorded values.

Output is one JSON line per instruction.`,
				Flags:  []cli.Flag{cmd.fr.Flag()},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *TxCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		return iojson.WriteError(fmt.Sprintf("read input: %s", err), nil)
	}

	if err := input.Validate(cmd.flags.Config.Limits.MaxNameLength); err != nil {
		return iojson.WriteError(fmt.Sprintf("invalid input: %s", err), nil)
	}

	out := c.Root().Writer
	failed := false
	for i, ins := range input.Instructions {
		var result TxResult
		if failed {
			result = TxResult{Index: i, Op: ins.Op(), Status: StatusSkipped}
		} else {
			result = cmd.apply(ctx, i, ins)
			failed = result.Status == StatusFailed
		}

		if err := iojson.WriteLine(out, result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *TxCmd) apply(ctx context.Context, i int, ins TxInstruction) TxResult {
	result := TxResult{Index: i, Op: ins.Op()}

	var (
		txID string
		out  any
		err  error
	)
	switch {
	case ins.CreateList != nil:
		var res bounty.CreateResult
		res, err = cmd.app.Lists.Create(ctx, ins.CreateList.Owner, ins.CreateList.Name, ins.CreateList.Capacity)
		txID, out = res.TxID, res
	case ins.Add != nil:
		var res bounty.AddResult
		res, err = cmd.app.Items.Add(ctx, *ins.Add)
		txID, out = res.TxID, res
	case ins.Cancel != nil:
		var res bounty.CancelResult
		res, err = cmd.app.Items.Cancel(ctx, *ins.Cancel)
		txID, out = res.TxID, res
	case ins.Finish != nil:
		var res bounty.FinishResult
		res, err = cmd.app.Items.Finish(ctx, *ins.Finish)
		txID, out = res.TxID, res
	}

	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		if e, ok := todolist.AsError(err); ok {
			result.Code = e.Code
			result.ErrorName = e.Name
		}
		return result
	}

	result.Status = StatusApplied
	result.TxID = txID
	result.Result = out
	return result
}

const (
	StatusApplied = "applied" // StatusApplied indicates the transition committed.
	StatusFailed  = "failed"  // StatusFailed indicates the transition was rejected and rolled back.
	StatusSkipped = "skipped" // StatusSkipped indicates the instruction was not attempted after an earlier failure.
)

// TxInput is the JSON input schema for tx apply.
type TxInput struct {
	Instructions []TxInstruction `json:"instructions"`
}

// TxInstruction holds exactly one transition.
type TxInstruction struct {
	CreateList *CreateListInput    `json:"create_list,omitempty"`
	Add        *bounty.AddRequest  `json:"add,omitempty"`
	Cancel     *bounty.ItemRequest `json:"cancel,omitempty"`
	Finish     *bounty.ItemRequest `json:"finish,omitempty"`
}

// CreateListInput describes a create_list transition.
type CreateListInput struct {
	Owner    ledger.Address `json:"owner"`
	Name     string         `json:"name"`
	Capacity uint16         `json:"capacity"`
}

// Op names the transition the instruction holds, or "" when it holds none
// or more than one.
func (ins TxInstruction) Op() string {
	var ops []string
	if ins.CreateList != nil {
		ops = append(ops, "create_list")
	}
	if ins.Add != nil {
		ops = append(ops, "add")
	}
	if ins.Cancel != nil {
		ops = append(ops, "cancel")
	}
	if ins.Finish != nil {
		ops = append(ops, "finish")
	}
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

// Validate checks the shape of every instruction using criterio. It does not
// consult the ledger; constraint and permission checks run in the transition.
func (t TxInput) Validate(maxNameLen int) error {
	if len(t.Instructions) == 0 {
		return criterio.NewFieldErrors("instructions", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	check := func(field string, err error) {
		if err != nil {
			errs = errs.Append(field, err)
		}
	}
	checkItem := func(field string, req bounty.ItemRequest) {
		check(field+".list", requireAddress(req.List))
		check(field+".list_owner", requireAddress(req.ListOwner))
		check(field+".item", requireAddress(req.Item))
		check(field+".caller", requireAddress(req.Caller))
	}

	for i, ins := range t.Instructions {
		field := fmt.Sprintf("instructions[%d]", i)

		switch ins.Op() {
		case "create_list":
			check(field+".create_list.owner", requireAddress(ins.CreateList.Owner))
			check(field+".create_list.name", validate.Name(ins.CreateList.Name, maxNameLen))
		case "add":
			check(field+".add.list", requireAddress(ins.Add.List))
			check(field+".add.list_owner", requireAddress(ins.Add.ListOwner))
			check(field+".add.item_name", validate.Name(ins.Add.ItemName, maxNameLen))
			check(field+".add.caller", requireAddress(ins.Add.Caller))
		case "cancel":
			checkItem(field+".cancel", *ins.Cancel)
		case "finish":
			checkItem(field+".finish", *ins.Finish)
		default:
			check(field, fmt.Errorf("must name exactly one of create_list, add, cancel, finish"))
		}
	}

	return errs.ToError()
}

func requireAddress(a ledger.Address) error {
	if a.IsZero() {
		return fmt.Errorf("address is required")
	}
	return nil
}

// TxResult is the output line for one instruction.
type TxResult struct {
	Index     int    `json:"index"`
	Op        string `json:"op"`
	Status    string `json:"status"`
	TxID      string `json:"tx_id,omitempty"`
	Code      int    `json:"code,omitempty"`
	ErrorName string `json:"error_name,omitempty"`
	Error     string `json:"error,omitempty"`
	Result    any    `json:"result,omitempty"`
}
