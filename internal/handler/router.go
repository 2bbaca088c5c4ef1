package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/metrics"
	"github.com/Dan9191/bank-clients/internal/middleware"
)

// NewRouter wires every route. m may be nil, which leaves /metrics and
// request metrics out.
func NewRouter(h *Handler, m *metrics.Metrics, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", h.ListClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", h.CreateClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id:[0-9]+}", h.GetClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", h.UpdateClient).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/clients/{id:[0-9]+}", h.DeleteClient).Methods(http.MethodDelete)
	api.HandleFunc("/clients/{id:[0-9]+}/full", h.GetClientFull).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}/loans", h.ListClientLoans).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}/deposits", h.ListClientDeposits).Methods(http.MethodGet)

	api.HandleFunc("/finance/loans", h.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/finance/loans/overdue", h.ListOverdueLoans).Methods(http.MethodGet)
	api.HandleFunc("/finance/loans/{id:[0-9]+}", h.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/finance/loans/{id:[0-9]+}", h.UpdateLoan).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/finance/loans/{id:[0-9]+}", h.DeleteLoan).Methods(http.MethodDelete)

	api.HandleFunc("/finance/deposits", h.CreateDeposit).Methods(http.MethodPost)
	api.HandleFunc("/finance/deposits/{id:[0-9]+}", h.GetDeposit).Methods(http.MethodGet)
	api.HandleFunc("/finance/deposits/{id:[0-9]+}", h.UpdateDeposit).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/finance/deposits/{id:[0-9]+}", h.DeleteDeposit).Methods(http.MethodDelete)

	api.HandleFunc("/references/jobs", h.ListJobs).Methods(http.MethodGet)
	api.HandleFunc("/references/education-levels", h.ListEducationLevels).Methods(http.MethodGet)
	api.HandleFunc("/references/marital-statuses", h.ListMaritalStatuses).Methods(http.MethodGet)
	api.HandleFunc("/references/deposit-types", h.ListDepositTypes).Methods(http.MethodGet)
	api.HandleFunc("/references/key-rate", h.KeyRate).Methods(http.MethodGet)

	return r
}
