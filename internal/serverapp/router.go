package serverapp

import (
	"encoding/json"
	"net/http"

	"apiops/internal/metadata"
	"apiops/internal/middleware"

	"github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) buildRouter() http.Handler {
	mux := http.NewServeMux()

	graphqlHandler := handler.New(&handler.Config{
		Schema:   &a.schema,
		Pretty:   true,
		GraphiQL: a.cfg.Server.GraphiQLEnabled,
	})
	mux.Handle("/graphql", graphqlHandler)

	mux.HandleFunc("/operations", a.operationsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/graphql", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})

	return middleware.LoggingMiddleware(a.logger)(mux)
}

// resolvedResource is the wire shape of one resolved resource on the
// /operations endpoint.
type resolvedResource struct {
	Class             string                               `json:"class"`
	ShortName         string                               `json:"shortName"`
	Operations        map[string]metadata.HTTPOperation    `json:"operations"`
	GraphQLOperations map[string]metadata.GraphQLOperation `json:"graphqlOperations"`
}

// operationsHandler dumps the fully-resolved operation mapping for every
// declared resource.
func (a *App) operationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	out := make([]resolvedResource, 0, len(a.resources))
	for _, res := range a.resources {
		out = append(out, resolvedResource{
			Class:             res.Class,
			ShortName:         res.ShortName,
			Operations:        res.Operations,
			GraphQLOperations: res.GraphQLOperations,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		a.logger.Error("failed to encode operations response", "error", err)
	}
}
