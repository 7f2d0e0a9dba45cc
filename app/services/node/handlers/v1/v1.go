// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log          *zap.SugaredLogger
	Ledger       *ledger.Ledger
	Worker       *worker.Worker
	Evts         *events.Events
	MinerAddress string
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:          cfg.Log,
		Ledger:       cfg.Ledger,
		Worker:       cfg.Worker,
		Evts:         cfg.Evts,
		MinerAddress: cfg.MinerAddress,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/ledger/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/ledger/pending", pbl.Pending)
	app.Handle(http.MethodGet, version, "/ledger/validate", pbl.Validate)
	app.Handle(http.MethodPost, version, "/ledger/reset", pbl.Reset)
	app.Handle(http.MethodGet, version, "/balances/list", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:address", pbl.Balances)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/mining/run", pbl.Mine)
	app.Handle(http.MethodGet, version, "/mining/signal", pbl.SignalMining)
	app.Handle(http.MethodPut, version, "/difficulty/:level", pbl.SetDifficulty)
}
