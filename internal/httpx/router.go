package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deepdiver/funnelreport/internal/config"
	"github.com/deepdiver/funnelreport/internal/export"
	"github.com/deepdiver/funnelreport/internal/ingest"
	"github.com/deepdiver/funnelreport/internal/report"
	"github.com/deepdiver/funnelreport/internal/store"
	"github.com/deepdiver/funnelreport/internal/utils"
)

func NewRouter(log *slog.Logger, ing *ingest.Service, rpt *report.Service, snap *store.Snapshot, cfg config.Config) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		records, rawRows, loadedAt := snap.Info()
		writeJSON(w, map[string]any{"records": records, "raw_rows": rawRows, "loaded_at": loadedAt})
	})
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		res, err := ing.Run(r.Context(), r.URL.Query().Get("source"))
		if err != nil {
			status := 502
			var schemaErr *report.SchemaError
			if errors.As(err, &schemaErr) {
				status = 422
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, res)
	})

	mux.Post("/ingest/reload", func(w http.ResponseWriter, r *http.Request) {
		res, err := ing.Reload(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, res)
	})

	mux.Get("/reports/weekly", func(w http.ResponseWriter, r *http.Request) {
		m, err := rpt.Weekly(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, m)
	})

	mux.Get("/reports/weekly/batch", func(w http.ResponseWriter, r *http.Request) {
		ms, err := rpt.WeeklyBatch(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, ms)
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		m, err := rpt.Weekly(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		path, err := export.MatrixFile(cfg.ExportDir, m)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"exported": path, "weeks": len(m.Weeks), "total": m.Total()})
	})

	mux.Post("/export/population", func(w http.ResponseWriter, r *http.Request) {
		path, err := export.PopulationFile(cfg.ExportDir, snap.Records())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"exported": path})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
