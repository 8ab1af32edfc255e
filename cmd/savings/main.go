/*Basic command structure*/
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/sagar-psycho/savings.io/pkg/config"
	"github.com/sagar-psycho/savings.io/pkg/ledger"
	"github.com/sagar-psycho/savings.io/pkg/logging"
	"github.com/sagar-psycho/savings.io/pkg/store"
)

// session is what every command runs against.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	engine *ledger.Engine
	in     io.Reader
	out    io.Writer
}

// cli commands / args available
var cli struct {
	Store string `help:"Store URI [jsonfile:/path/file.json sqlite:/path/file.db memory:], overrides SAVINGS_STORE."`

	Status   statusCmd   `cmd:"" help:"Show totals and this month's calendar."`
	Deposit  depositCmd  `cmd:"" help:"Record money saved."`
	Withdraw withdrawCmd `cmd:"" help:"Record money taken out."`
	History  historyCmd  `cmd:"" help:"List every transaction."`
	Delete   deleteCmd   `cmd:"" help:"Delete one transaction."`
	Clear    clearCmd    `cmd:"" help:"Delete all transactions and reset totals."`
	Calendar calendarCmd `cmd:"" help:"Show a month coloured by net savings per day."`
	Export   exportCmd   `cmd:"" help:"Index the history into Elasticsearch."`
	Keygen   keygenCmd   `cmd:"" help:"Print a random passphrase for SAVINGS_PASSPHRASE."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("savings"),
		kong.Description("Track savings deposits and withdrawals."),
	)

	// needs no store, and must work before a passphrase is configured
	if kctx.Command() == "keygen" {
		kctx.FatalIfErrorf(kctx.Run(&session{ctx: context.Background(), out: os.Stdout}))
		return
	}

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)
	if cli.Store != "" {
		cfg.Store = cli.Store
	}

	logging.Setup(cfg.IsProduction(), cfg.LogLevel)

	kv, err := store.Open(cfg.Store, cfg.Passphrase)
	kctx.FatalIfErrorf(err)

	ctx := context.Background()
	engine, err := ledger.Open(ctx, store.NewLedgerStore(kv, cfg.Location, nil), ledger.Options{Location: cfg.Location})
	if err != nil {
		kv.Close()
		kctx.FatalIfErrorf(err)
	}

	log.Debug().Str("store", cfg.Store).Str("command", kctx.Command()).Msg("running")

	err = kctx.Run(&session{
		ctx:    ctx,
		cfg:    cfg,
		engine: engine,
		in:     os.Stdin,
		out:    os.Stdout,
	})
	kv.Close() // FatalIfErrorf exits without running defers
	kctx.FatalIfErrorf(err)
}
