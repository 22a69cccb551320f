package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/service"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	releaseService  service.ReleaseService
	waitlistService service.WaitlistService
	calendarService service.CalendarService
	bookingService  service.BookingService
	contractService service.ContractService
	hub             *ReleaseHub
	db              Pinger
}

func NewHandler(
	releaseService service.ReleaseService,
	waitlistService service.WaitlistService,
	calendarService service.CalendarService,
	bookingService service.BookingService,
	contractService service.ContractService,
	hub *ReleaseHub,
	db Pinger,
) *Handler {
	return &Handler{
		releaseService:  releaseService,
		waitlistService: waitlistService,
		calendarService: calendarService,
		bookingService:  bookingService,
		contractService: contractService,
		hub:             hub,
		db:              db,
	}
}

// ReleaseExpired runs the sweep for the admin release manager.
func (h *Handler) ReleaseExpired(w http.ResponseWriter, r *http.Request) {
	result, err := h.releaseService.RunAutoRelease(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReleaseExpiredResponse(result))
}

// AutoRelease runs the same sweep and returns the short summary.
func (h *Handler) AutoRelease(w http.ResponseWriter, r *http.Request) {
	result, err := h.releaseService.RunAutoRelease(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAutoReleaseResponse(result))
}

func (h *Handler) JoinWaitingQueue(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req waitlistJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("waitlist entry", 0, "malformed request body"))
		return
	}
	desired, err := domain.ParseDateRange(req.DesiredStartDate, req.DesiredEndDate)
	if err != nil {
		writeError(w, domain.NewValidationError("waitlist entry", 0, err.Error()))
		return
	}

	entry, err := h.waitlistService.Join(r.Context(), claims.UserID, vehicleID, desired)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWaitlistEntryDTO(entry))
}

func (h *Handler) ListUserWaitingQueue(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if userID != claims.UserID && !claims.IsAdmin() {
		writeError(w, domain.ErrForbidden)
		return
	}

	entries, err := h.waitlistService.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]waitlistEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toWaitlistEntryDTO(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) LeaveWaitingQueue(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	entryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.waitlistService.Leave(r.Context(), claims.UserID, entryID, claims.IsAdmin()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) VehicleAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	blocks, err := h.calendarService.ListBlocks(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]calendarBlockDTO, 0, len(blocks))
	for i := range blocks {
		out = append(out, toCalendarBlockDTO(&blocks[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicleId": vehicleID, "blocks": out})
}

// PaymentConfirmed is called by the payment webhook relay.
func (h *Handler) PaymentConfirmed(w http.ResponseWriter, r *http.Request) {
	h.bookingAction(w, r, h.bookingService.ConfirmPayment)
}

func (h *Handler) StartRental(w http.ResponseWriter, r *http.Request) {
	h.bookingAction(w, r, h.bookingService.StartRental)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, domain.NewValidationError("booking", 0, "malformed request body"))
			return
		}
	}
	h.bookingAction(w, r, func(ctx context.Context, id int32) (*domain.Booking, error) {
		return h.bookingService.CancelBooking(ctx, id, req.Reason)
	})
}

func (h *Handler) bookingAction(w http.ResponseWriter, r *http.Request, action func(context.Context, int32) (*domain.Booking, error)) {
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := action(r.Context(), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(booking))
}

func (h *Handler) ContractSent(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	contract, err := h.contractService.MarkSent(r.Context(), contractID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractDTO(contract))
}

// ContractSignature is the signing provider callback.
func (h *Handler) ContractSignature(w http.ResponseWriter, r *http.Request) {
	contractID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("contract", contractID, "malformed request body"))
		return
	}
	contract, err := h.contractService.ApplySignature(r.Context(), contractID, domain.SignatureParty(req.Party))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toContractDTO(contract))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if h.hub != nil {
		status["releaseFeeds"] = h.hub.Connections()
	}
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			logger.Warn("Health check database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": "database unreachable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("request", 0, fmt.Sprintf("invalid %s %q", name, raw))
	}
	return int32(id), nil
}
