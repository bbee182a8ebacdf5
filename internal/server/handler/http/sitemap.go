package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Route is one entry of the sitemap.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Sitemap lists every route registered on routes.
func Sitemap(routes chi.Routes, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []Route
		err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			list = append(list, Route{Method: method, Path: route})
			return nil
		})
		if err != nil {
			writeError(w, r, logger, err)
			return
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Path != list[j].Path {
				return list[i].Path < list[j].Path
			}
			return list[i].Method < list[j].Method
		})
		writeJSON(w, http.StatusOK, "ok", list)
	}
}
