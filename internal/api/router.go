package api

import (
	_ "btcwallet/docs"
	ledgerhandler "btcwallet/internal/ledger/handler"
	ratehandler "btcwallet/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *ratehandler.Handler, ledgerHandler *ledgerhandler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rate", rateHandler.GetCurrentRate)
		r.Get("/rate/poller", rateHandler.GetPollerState)
		r.Post("/rate/poller/start", rateHandler.StartPoller)
		r.Post("/rate/poller/stop", rateHandler.StopPoller)
		r.Get("/events", rateHandler.GetEvents)

		r.Get("/wallet", ledgerHandler.GetWallet)
		r.Post("/wallet/deposits", ledgerHandler.AddDeposit)
		r.Post("/wallet/expenses", ledgerHandler.AddExpense)
		r.Get("/wallet/transactions", ledgerHandler.ListTransactions)
		r.Get("/wallet/categories", ledgerHandler.GetCategories)
	})
	return router
}
