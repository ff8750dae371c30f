package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// NotFound answers unknown routes with a problem document listing the available ones.
func NotFound(api huma.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes := Routes(api)

		problem := &huma.ErrorModel{
			Title:    http.StatusText(http.StatusNotFound),
			Status:   http.StatusNotFound,
			Detail:   fmt.Sprintf("no route for %s %s, available: %s", r.Method, r.URL.Path, strings.Join(routes, ", ")),
			Instance: r.URL.Path,
		}

		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(problem)
	}
}

// Routes lists the registered operations as "METHOD /path", sorted by path.
func Routes(api huma.API) []string {
	var routes []string

	for path, item := range api.OpenAPI().Paths {
		for method, op := range map[string]*huma.Operation{
			http.MethodGet:    item.Get,
			http.MethodPost:   item.Post,
			http.MethodPut:    item.Put,
			http.MethodDelete: item.Delete,
		} {
			if op != nil {
				routes = append(routes, method+" "+path)
			}
		}
	}

	slices.SortFunc(routes, func(a, b string) int {
		_, pa, _ := strings.Cut(a, " ")
		_, pb, _ := strings.Cut(b, " ")

		if c := strings.Compare(pa, pb); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	return routes
}
