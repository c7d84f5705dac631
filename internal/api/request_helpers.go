package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
)

// getPathID extracts a positive int64 id from the URL path parameters.
// A missing or malformed id is an ErrInvalidArgument.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewInvalidArgumentError(paramName + " is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidArgumentError(fmt.Sprintf("%s has invalid format", paramName))
	}
	return id, nil
}

// handlePathID extracts the id path parameter and writes an error response if
// that fails. The second return value reports success.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string, log *slog.Logger) (int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// parseOptionalInt parses an optional integer query parameter.
func parseOptionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewInvalidArgumentError(fmt.Sprintf("%s must be an integer", name))
	}
	return &v, nil
}

// setLocation sets the Location header of a created resource.
func setLocation(w http.ResponseWriter, format string, id int64) {
	w.Header().Set("Location", fmt.Sprintf(format, id))
}

// noStore marks a read response as not cacheable by clients.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
