package http

import (
	"net/http"

	"github.com/MKhiriev/daybook/internal/utils"
)

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	version := h.appInfo.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(version))
}

func (h *Handler) getBuildInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.appInfo.GetBuildInfo(r.Context()), http.StatusOK)
}
