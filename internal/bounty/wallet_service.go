package bounty

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/bounty/internal/core/eventbus"
	"github.com/colonyops/bounty/internal/core/ledger"
	"github.com/colonyops/bounty/internal/core/logging"
	"github.com/rs/zerolog"
)

// ErrNotWallet is returned when a wallet operation names a program account.
var ErrNotWallet = errors.New("account is not a wallet")

// WalletService manages the plain value-holding accounts that sign
// transitions.
type WalletService struct {
	rt     *Runtime
	ledger ledger.Reader
	bus    *eventbus.EventBus
	log    zerolog.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(rt *Runtime, reader ledger.Reader, bus *eventbus.EventBus) *WalletService {
	return &WalletService{
		rt:     rt,
		ledger: reader,
		bus:    bus,
		log:    logging.Component("wallets"),
	}
}

// New creates an empty wallet with a fresh address.
func (s *WalletService) New(ctx context.Context, label string) (ledger.Account, error) {
	acct := ledger.Account{
		Address: ledger.NewAddress(),
		Owner:   ledger.OwnerSystem,
		Label:   label,
	}

	_, err := s.rt.Execute(ctx, "wallet_new", []ledger.Address{acct.Address}, func(ctx context.Context, st ledger.Store) error {
		return st.CreateAccount(ctx, acct)
	})
	if err != nil {
		return ledger.Account{}, fmt.Errorf("create wallet: %w", err)
	}

	return s.ledger.Account(ctx, acct.Address)
}

// Fund airdrops amount into the wallet at addr.
func (s *WalletService) Fund(ctx context.Context, addr ledger.Address, amount uint64) (ledger.Account, error) {
	ctx = logging.WithCaller(ctx, addr.String())

	txID, err := s.rt.Execute(ctx, "wallet_fund", []ledger.Address{addr}, func(ctx context.Context, st ledger.Store) error {
		acct, err := st.Account(ctx, addr)
		if err != nil {
			return err
		}
		if acct.Owner != ledger.OwnerSystem {
			return fmt.Errorf("%w: %s", ErrNotWallet, addr)
		}
		return st.Mint(ctx, addr, amount)
	})
	if err != nil {
		return ledger.Account{}, fmt.Errorf("fund wallet: %w", err)
	}

	s.log.Debug().Ctx(ctx).Uint64("amount", amount).Msg("wallet funded")
	s.bus.PublishWalletFunded(eventbus.WalletFundedPayload{TxID: txID, Address: addr, Amount: amount})

	return s.ledger.Account(ctx, addr)
}

// Get returns the wallet at addr.
func (s *WalletService) Get(ctx context.Context, addr ledger.Address) (ledger.Account, error) {
	acct, err := s.ledger.Account(ctx, addr)
	if err != nil {
		return ledger.Account{}, err
	}
	if acct.Owner != ledger.OwnerSystem {
		return ledger.Account{}, fmt.Errorf("%w: %s", ErrNotWallet, addr)
	}
	return acct, nil
}

// List returns every wallet, oldest first.
func (s *WalletService) List(ctx context.Context) ([]ledger.Account, error) {
	return s.ledger.Accounts(ctx, ledger.AccountFilter{Owner: ledger.OwnerSystem})
}

// Journal returns recorded value movements, newest first.
func (s *WalletService) Journal(ctx context.Context, filter ledger.TransferFilter) ([]ledger.Transfer, error) {
	return s.ledger.Transfers(ctx, filter)
}
