package utils

import (
	"database/sql"
	"famcal/src-server/notify"
	"famcal/src-server/store"
	"log/slog"
	"os"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppState struct {
	Config *Config
	RawDB  *sql.DB
	BunDB  *bun.DB
	Store  *store.Store
	When   *when.Parser

	// nil when DISCORD_APP_TOKEN is not set
	DgSession *discordgo.Session
	Notifier  *notify.Notifier

	AppCloseSignalChan chan os.Signal

	shutdownMu    sync.Mutex
	shutdownChans []*chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{}

	as.AppCloseSignalChan = make(chan os.Signal, 1)

	// date parser for natural-language date params
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// database; in-memory only, the event list never outlives the process
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.FromEnv("BUNDEBUG"),
	))

	as.Store = store.New(as.BunDB, as.Config.GetLocation())

	// Discord is optional; without a token the notifier is a no-op
	if token := as.Config.GetDiscordAppToken(); token != "" {
		as.DgSession, err = discordgo.New("Bot " + token)
		if err != nil {
			slog.Error("cannot create Discord session", "error", err)
			os.Exit(1)
		}
	}
	as.Notifier = notify.New(as.DgSession, as.Config.GetDiscordChannelID())

	return as
}

// CreateGracefulShutdownChan hands out a channel that closes when the app
// is shutting down; background loops select on it to unregister cleanly.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.shutdownMu.Lock()
	defer as.shutdownMu.Unlock()
	ch := make(chan struct{})
	as.shutdownChans = append(as.shutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.shutdownMu.Lock()
	defer as.shutdownMu.Unlock()
	for _, ch := range as.shutdownChans {
		close(*ch)
	}
	as.shutdownChans = nil
}
