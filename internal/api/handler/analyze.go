package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/api/respond"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

var managerIDPattern = regexp.MustCompile(`^\d+$`)

// AnalyzeManager produces the aggregation report for one manager. The id is
// validated before any upstream call is made.
func (h *Handler) AnalyzeManager(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "managerId")
	if !managerIDPattern.MatchString(raw) {
		respond.Error(w, http.StatusBadRequest, "Invalid manager ID format")
		return
	}
	managerID, err := strconv.Atoi(raw)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid manager ID format")
		return
	}

	opts := analysis.Options{
		IncludeDetails: r.URL.Query().Get("include") == "details",
	}

	report, err := h.analyzer.AnalyzeManager(r.Context(), managerID, opts)
	if err != nil {
		h.logger.Error("manager analysis failed", "manager_id", managerID, "error", err)
		var ue *fpl.UpstreamError
		if errors.As(err, &ue) {
			respond.ErrorDetail(w, http.StatusInternalServerError,
				"Failed to analyze manager", ue.Error())
			return
		}
		respond.Error(w, http.StatusInternalServerError, "Failed to analyze manager")
		return
	}
	respond.JSON(w, http.StatusOK, report)
}
