package httpserver

import (
	"net/http"

	"finance-app-go/internal/config"
	"finance-app-go/internal/transport/httpserver/handler"
	authmw "finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Authenticator, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log.WithComponent(logger.ComponentHTTP)))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Route("/finance", func(r chi.Router) {
				f := handlers.Finance

				r.Get("/", f.Overview)

				r.Get("/income", f.ListIncome)
				r.Get("/income/by-category", f.IncomeByCategory)
				r.Post("/income", f.CreateIncome)
				r.Get("/income/{id}", f.GetIncome)
				r.Put("/income/{id}", f.UpdateIncome)
				r.Delete("/income/{id}", f.DeleteIncome)

				r.Get("/expense", f.ListExpense)
				r.Get("/expense/by-category", f.ExpenseByCategory)
				r.Post("/expense", f.CreateExpense)
				r.Get("/expense/{id}", f.GetExpense)
				r.Put("/expense/{id}", f.UpdateExpense)
				r.Delete("/expense/{id}", f.DeleteExpense)

				r.Get("/account", f.ListAccounts)
				r.Post("/account", f.CreateAccount)
				r.Get("/account/sum", f.SumAccounts)
				r.Get("/account/{id}", f.GetAccount)
				r.Patch("/account/{id}", f.UpdateAccount)
				r.Delete("/account/{id}", f.DeleteAccount)

				r.Get("/category", f.ListCategories)
				r.Post("/category", f.CreateCategory)
				r.Get("/category/{id}", f.GetCategory)
				r.Patch("/category/{id}", f.UpdateCategory)
				r.Delete("/category/{id}", f.DeleteCategory)

				r.Get("/currency", f.ListCurrencies)
				r.Post("/currency", f.CreateCurrency)
				r.Get("/currency/{id}", f.GetCurrency)
			})
		})
	})

	return r
}
