package commands

import (
	"fmt"
	"strconv"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/styles"
	"github.com/colonyops/bounty/internal/core/todolist"
	"github.com/colonyops/bounty/internal/core/validate"
	"github.com/colonyops/bounty/internal/printer"
)

// FormatError renders a command failure. Transition errors lead with their
// stable code and name so scripts can match on them.
func FormatError(err error) string {
	if e, ok := todolist.AsError(err); ok {
		head := styles.ErrorStyle.Render(fmt.Sprintf("Error %d %s:", e.Code, e.Name))
		return fmt.Sprintf("%s %s\n%s", head, e.Message, styles.MutedStyle.Render(err.Error()))
	}
	return fmt.Sprintf("%s %s", styles.ErrorStyle.Render("Error:"), err.Error())
}

// parseAddress parses a base58 address given to the named flag or argument.
func parseAddress(name, s string) (ledger.Address, error) {
	if err := validate.AddressField(name, s); err != nil {
		return ledger.Address{}, err
	}
	return ledger.ParseAddress(s)
}

// parseOptionalAddress is parseAddress that maps an empty string to the zero address.
func parseOptionalAddress(name, s string) (ledger.Address, error) {
	if s == "" {
		return ledger.Address{}, nil
	}
	return parseAddress(name, s)
}

func amount(v uint64) string {
	return styles.AmountStyle.Render(strconv.FormatUint(v, 10))
}

func address(a ledger.Address) string {
	return styles.AddressStyle.Render(a.String())
}

func renderState(s todolist.State) string {
	switch s.Kind {
	case todolist.StateResolved:
		return styles.StateResolvedStyle.Render(styles.IconCheck + " " + s.String())
	case todolist.StatePartiallyConfirmed:
		return styles.StatePartialStyle.Render(styles.IconHalf + " " + s.String())
	default:
		return styles.StateOpenStyle.Render(styles.IconCircle + " " + s.String())
	}
}

func printList(p *printer.Printer, v bounty.ListView) {
	p.Header(styles.IconCheckList + " " + v.Name)
	p.Field("address", address(v.Address))
	p.Field("owner", address(v.Owner))
	p.Field("capacity", fmt.Sprintf("%d/%d", len(v.Members), v.Capacity))
	p.Field("reserve", amount(v.Balance))
	p.Field("bump", strconv.Itoa(int(v.Bump)))
}

func printItem(p *printer.Printer, v bounty.ItemView) {
	p.Header(v.Name)
	p.Field("address", address(v.Address))
	p.Field("creator", address(v.Creator))
	p.Field("bounty", amount(v.Bounty))
	p.Field("state", renderState(v.State))
}

func printWallet(p *printer.Printer, a ledger.Account) {
	title := styles.IconWallet + " wallet"
	if a.Label != "" {
		title += " " + a.Label
	}
	p.Header(title)
	p.Field("address", address(a.Address))
	p.Field("balance", amount(a.Balance))
}
