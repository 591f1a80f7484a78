package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/colonyops/bounty/internal/bounty"
	"github.com/colonyops/bounty/internal/core/config"
	"github.com/colonyops/bounty/internal/core/eventbus/testbus"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/data/db"
	"github.com/colonyops/bounty/internal/data/stores"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type cliHarness struct {
	flags *Flags
	app   *bounty.App
	tb    *testbus.Bus
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	database, err := db.Open(cfg.DataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	tb := testbus.New(t)
	app := bounty.NewApp(stores.NewLedger(database), tb.EventBus, bounty.Settings{
		Rent:          ledger.FlatRent(500),
		MaxNameLength: cfg.Limits.MaxNameLength,
		LockTimeout:   time.Second,
	})

	return &cliHarness{
		flags: &Flags{Config: &cfg, DataDir: cfg.DataDir, App: app},
		app:   app,
		tb:    tb,
	}
}

// run executes one command line against a fresh command tree and returns
// what it wrote to stdout.
func (h *cliHarness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := &cli.Command{
		Name:           "bounty",
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewWalletCmd(h.flags, h.app).Register(root)
	root = NewListCmd(h.flags, h.app).Register(root)
	root = NewItemCmd(h.flags, h.app).Register(root)
	root = NewTxCmd(h.flags, h.app).Register(root)
	root = NewJournalCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"bounty"}, args...))
	return out.String(), err
}

func (h *cliHarness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, "bounty %s", strings.Join(args, " "))
	return out
}

func (h *cliHarness) wallet(t *testing.T, amount uint64) ledger.Address {
	t.Helper()
	acct := decode[ledger.Account](t, h.mustRun(t, "wallet", "new", "--json"))
	if amount > 0 {
		h.mustRun(t, "wallet", "fund", acct.Address.String(), jsonNumber(amount))
	}
	return acct.Address
}

func (h *cliHarness) balance(t *testing.T, addr ledger.Address) uint64 {
	t.Helper()
	acct, err := h.app.Ledger.Account(context.Background(), addr)
	require.NoError(t, err)
	return acct.Balance
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

func decodeLines[T any](t *testing.T, s string) []T {
	t.Helper()
	var out []T
	for line := range strings.Lines(s) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, decode[T](t, line))
	}
	return out
}

func jsonNumber(n uint64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// listOut and itemOut mirror the JSON the list and item commands print.
type listOut struct {
	Address  ledger.Address   `json:"address"`
	Balance  uint64           `json:"balance"`
	Owner    ledger.Address   `json:"owner"`
	Name     string           `json:"name"`
	Capacity uint16           `json:"capacity"`
	Members  []ledger.Address `json:"members"`
}

type itemOut struct {
	Address ledger.Address `json:"address"`
	Bounty  uint64         `json:"bounty"`
	Creator ledger.Address `json:"creator"`
	Name    string         `json:"name"`
	State   struct {
		Kind string `json:"kind"`
		By   string `json:"by"`
	} `json:"state"`
}
