package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/service"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.sync.Status(r.Context()), http.StatusOK)
}

func (h *Handler) listOperations(w http.ResponseWriter, r *http.Request) {
	ops := h.sync.Operations(r.Context())
	if ops == nil {
		ops = []models.SyncOperation{}
	}

	utils.WriteJSON(w, models.OperationsResponse{Operations: ops, Length: len(ops)}, http.StatusOK)
}

// drainQueue runs a drain synchronously. A skipped drain is reported with
// 409 so a UI can tell it from a drain that pushed nothing.
func (h *Handler) drainQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	res, err := h.sync.Drain(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.drainQueue").Msg("drain failed")
		http.Error(w, service.UserMessage(err), statusFromError(err))
		return
	}

	status := http.StatusOK
	if res.Skipped {
		status = http.StatusConflict
	}
	utils.WriteJSON(w, res, status)
}

func (h *Handler) retryFailed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	n, err := h.sync.RetryFailed(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.retryFailed").Msg("retrying failed operations failed")
		http.Error(w, service.UserMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AffectedResponse{Affected: n}, http.StatusOK)
}

func (h *Handler) clearFailed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	n, err := h.sync.ClearFailed(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.clearFailed").Msg("clearing failed operations failed")
		http.Error(w, service.UserMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AffectedResponse{Affected: n}, http.StatusOK)
}

// setNetworkState accepts "online" or "offline" and returns the resulting
// queue status.
func (h *Handler) setNetworkState(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var online bool
	switch state := chi.URLParam(r, "state"); state {
	case "online":
		online = true
	case "offline":
	default:
		log.Debug().Str("func", "*Handler.setNetworkState").Str("state", state).Msg("unknown network state")
		http.Error(w, ErrUnknownNetworkState.Error(), statusFromError(ErrUnknownNetworkState))
		return
	}

	h.sync.SetOnline(r.Context(), online)
	utils.WriteJSON(w, h.sync.Status(r.Context()), http.StatusOK)
}
