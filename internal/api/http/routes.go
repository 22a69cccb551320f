package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"alugae-backend/internal/security"
)

// NewRouter wires the public API. allowedOrigins feeds the CORS policy of
// the web client.
func NewRouter(h *Handler, tm security.TokenManager, allowedOrigins []string) http.Handler {
	standardMiddleware := alice.New(recoverPanic, logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(authenticate(tm, false))
	adminMiddleware := standardMiddleware.Append(authenticate(tm, true))
	// websocket upgrades must not get a JSON content type
	feedMiddleware := alice.New(recoverPanic, logRequest, authenticate(tm, true))

	r := mux.NewRouter()

	r.Handle("/health", standardMiddleware.ThenFunc(h.Health)).Methods(http.MethodGet)

	// Release
	r.Handle("/api/vehicles/release-expired", adminMiddleware.ThenFunc(h.ReleaseExpired)).Methods(http.MethodPost)
	r.Handle("/api/vehicles/auto-release", adminMiddleware.ThenFunc(h.AutoRelease)).Methods(http.MethodGet)
	if h.hub != nil {
		r.Handle("/api/ws/releases", feedMiddleware.ThenFunc(h.hub.ServeWS)).Methods(http.MethodGet)
	}

	// Waiting queue
	r.Handle("/api/vehicles/{id:[0-9]+}/waiting-queue", authMiddleware.ThenFunc(h.JoinWaitingQueue)).Methods(http.MethodPost)
	r.Handle("/api/users/{id:[0-9]+}/waiting-queue", authMiddleware.ThenFunc(h.ListUserWaitingQueue)).Methods(http.MethodGet)
	r.Handle("/api/waiting-queue/{id:[0-9]+}", authMiddleware.ThenFunc(h.LeaveWaitingQueue)).Methods(http.MethodDelete)
	r.Handle("/api/vehicles/{id:[0-9]+}/availability", standardMiddleware.ThenFunc(h.VehicleAvailability)).Methods(http.MethodGet)

	// Bookings
	r.Handle("/api/bookings/{id:[0-9]+}/payment-confirmed", adminMiddleware.ThenFunc(h.PaymentConfirmed)).Methods(http.MethodPost)
	r.Handle("/api/bookings/{id:[0-9]+}/start", adminMiddleware.ThenFunc(h.StartRental)).Methods(http.MethodPost)
	r.Handle("/api/bookings/{id:[0-9]+}/cancel", adminMiddleware.ThenFunc(h.CancelBooking)).Methods(http.MethodPost)

	// Contracts
	r.Handle("/api/contracts/{id:[0-9]+}/sent", adminMiddleware.ThenFunc(h.ContractSent)).Methods(http.MethodPost)
	r.Handle("/api/contracts/{id:[0-9]+}/signatures", adminMiddleware.ThenFunc(h.ContractSignature)).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}
