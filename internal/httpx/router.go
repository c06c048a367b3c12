package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chirender "github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/socialreport/internal/apperr"
	"github.com/AngelCh415/socialreport/internal/config"
	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/metrics"
	"github.com/AngelCh415/socialreport/internal/sink"
	"github.com/AngelCh415/socialreport/internal/store"
	"github.com/AngelCh415/socialreport/internal/utils"
)

type Deps struct {
	Log      *slog.Logger
	Cfg      config.Config
	Store    *store.MemoryStore
	ETL      *ingest.ETL
	Fetcher  *ingest.Fetcher
	Reports  *metrics.Service
	Sink     *sink.Sink
	Gatherer prometheus.Gatherer
}

type api struct {
	Deps
	validate *validator.Validate
}

func NewRouter(d Deps) http.Handler {
	a := &api{Deps: d, validate: validator.New()}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	limited := utils.RateLimit(d.Cfg.RateLimitRPS, d.Cfg.RateLimitBurst, func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, r, apperr.ErrRateLimited)
	})

	mux.Route("/datasets", func(r chi.Router) {
		r.Use(chirender.SetContentType(chirender.ContentTypeJSON))
		r.Get("/", a.listDatasets)
		r.With(limited).Post("/", a.createDataset)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getDataset)
			r.Delete("/", a.deleteDataset)
			r.With(limited).Post("/files", a.addFiles)
			r.With(limited).Post("/fetch", a.fetchFile)
			r.Get("/period", a.getPeriod)
			r.Get("/report", a.getReport)
			r.Post("/report/deliver", a.deliverReport)
		})
	})

	return mux
}
