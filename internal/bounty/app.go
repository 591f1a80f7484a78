package bounty

import (
	"time"

	"github.com/colonyops/bounty/internal/core/config"
	"github.com/colonyops/bounty/internal/core/eventbus"
	"github.com/colonyops/bounty/internal/core/ledger"
)

// Settings carries the tunables the services read.
type Settings struct {
	Rent          ledger.Reserver
	MaxNameLength int
	LockTimeout   time.Duration
}

// SettingsFromConfig builds Settings from loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Rent:          cfg.Rent,
		MaxNameLength: cfg.Limits.MaxNameLength,
		LockTimeout:   cfg.Limits.LockTimeout,
	}
}

// App is the central entry point for all bounty operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Lists   *ListService
	Items   *ItemService
	Wallets *WalletService

	Runtime *Runtime
	Ledger  ledger.Ledger
	Bus     *eventbus.EventBus
}

// NewApp constructs an App from explicit dependencies.
func NewApp(l ledger.Ledger, bus *eventbus.EventBus, s Settings) *App {
	rt := NewRuntime(l, s.LockTimeout)
	return &App{
		Lists:   NewListService(rt, l, s.Rent, bus, s.MaxNameLength),
		Items:   NewItemService(rt, l, s.Rent, bus, s.MaxNameLength),
		Wallets: NewWalletService(rt, l, bus),
		Runtime: rt,
		Ledger:  l,
		Bus:     bus,
	}
}
