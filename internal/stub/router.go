package stub

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the full REST surface under /api, plus the public
// short-link redirect under /r/{shortId}.
func NewRouter(store *Store, baseURL string) *mux.Router {
	s := &server{store: store, baseURL: baseURL}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	api.HandleFunc("/qr/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/qr/user/list", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/qr/download/{id}/{format}", s.handleDownload).Methods(http.MethodGet)
	api.HandleFunc("/qr/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/qr/{id}", s.handleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/qr/{id}", s.handleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/analytics/overview", s.handleOverview).Methods(http.MethodGet)
	api.HandleFunc("/analytics/qr/{id}", s.handleQRAnalytics).Methods(http.MethodGet)

	api.HandleFunc("/billing/plans", s.handlePlans).Methods(http.MethodGet)
	api.HandleFunc("/billing/create-checkout-session", s.handleCheckout).Methods(http.MethodPost)

	r.HandleFunc("/r/{shortId}", s.handleRedirect).Methods(http.MethodGet)

	return r
}
