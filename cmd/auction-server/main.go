// Command auction-server runs the reverse auction ledger behind a TCP JSON
// interface. State is in-memory; the asset ledger, ticket and modifier
// registries, and the engine are wired together at startup and every request
// is served from the same instances.
package main

import (
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cloudx-io/reverseauction/engine"
	"github.com/cloudx-io/reverseauction/nft"
	"github.com/cloudx-io/reverseauction/rbac"
	"github.com/cloudx-io/reverseauction/receipts"
	"github.com/cloudx-io/reverseauction/token"
)

type config struct {
	Addr       string `env:"AUCTION_LISTEN_ADDR,default=:7500"`
	MaxWorkers int    `env:"AUCTION_MAX_WORKERS,default=32"`
	Custody    string `env:"AUCTION_CUSTODY_ACCOUNT,default=vault"`
	Admin      string `env:"AUCTION_ADMIN_ACCOUNT,default=admin"`
	Relayer    string `env:"AUCTION_RELAYER_ACCOUNT,default=relayer"`
	Faucet     string `env:"AUCTION_FAUCET_ACCOUNT,default=faucet"`
	FeePercent int64  `env:"AUCTION_FEE_PERCENT,default=10"`
	Debug      bool   `env:"AUCTION_DEBUG,default=false"`
}

func main() {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	log := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("component", "auction-server").
		Logger()

	var cfg config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		log.Fatal().Err(err).Msg("decode configuration")
	}
	if !cfg.Debug {
		log = log.Level(zerolog.InfoLevel)
	}

	roles := rbac.NewRegistry()
	roles.Grant(rbac.RoleAdmin, cfg.Admin)
	roles.Grant(rbac.RoleRecorder, cfg.Relayer)
	roles.Grant(rbac.RoleURISetter, cfg.Relayer)
	roles.Grant(rbac.RoleMinter, cfg.Custody)
	roles.Grant(rbac.RoleMinter, cfg.Faucet)

	asset := token.NewService(roles)
	tickets := nft.NewRegistry("ticket", roles)
	modifiers := nft.NewModifierRegistry(roles)

	eng, err := engine.New(engine.Config{
		Account:    cfg.Custody,
		Asset:      asset,
		Tickets:    tickets,
		Modifiers:  modifiers,
		Auth:       roles,
		Logger:     log.With().Str("component", "engine").Logger(),
		FeePercent: cfg.FeePercent,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build engine")
	}

	issuer, err := receipts.NewIssuer()
	if err != nil {
		log.Fatal().Err(err).Msg("build receipt issuer")
	}

	srv := &Server{
		addr:       cfg.Addr,
		maxWorkers: cfg.MaxWorkers,
		log:        log,
		engine:     eng,
		asset:      asset,
		issuer:     issuer,
	}
	log.Fatal().Err(srv.Start()).Msg("server stopped")
}
