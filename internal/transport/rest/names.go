package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mikro-backoffice/internal/transport/rest/loader"
)

// customerNames resolves display names through the request loader. Names
// are decoration, so lookup failures are logged and yield an empty map.
func customerNames(r *http.Request, log *slog.Logger, codes []string) map[string]string {
	l := loader.FromContext(r.Context())
	if l == nil || len(codes) == 0 {
		return map[string]string{}
	}
	names, err := l.CustomerNamesFor(r.Context(), codes)
	if err != nil {
		log.WarnContext(r.Context(), "customer name lookup failed", slog.String("error", err.Error()))
		return map[string]string{}
	}
	return names
}
