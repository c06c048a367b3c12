package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chirender "github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/AngelCh415/socialreport/internal/apperr"
	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/metrics"
	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/render"
	"github.com/AngelCh415/socialreport/internal/sink"
	"github.com/AngelCh415/socialreport/internal/store"
)

const multipartMemory = 32 << 20

type datasetResponse struct {
	ID              string                    `json:"id"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
	Files           []models.FileResult       `json:"files"`
	Added           []models.FileResult       `json:"added,omitempty"`
	Counts          map[models.RecordKind]int `json:"counts"`
	DataRange       *models.DateRange         `json:"data_range"`
	HasRequiredData bool                      `json:"has_required_data"`
}

func summary(s store.Snapshot, added []models.FileResult) datasetResponse {
	return datasetResponse{
		ID:              s.ID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Files:           s.Files,
		Added:           added,
		Counts:          s.Dataset.Counts(),
		DataRange:       s.Range,
		HasRequiredData: s.HasRequiredData(),
	}
}

type reportQuery struct {
	Months int    `validate:"oneof=3 6 12"`
	Format string `validate:"omitempty,oneof=json text"`
}

type fetchRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (a *api) createDataset(w http.ResponseWriter, r *http.Request) {
	uploads, apiErr := a.readUploads(w, r)
	if apiErr != nil {
		apperr.Write(w, r, apiErr)
		return
	}
	b, err := a.ETL.Run(r.Context(), uploads)
	if err != nil {
		apperr.Write(w, r, apperr.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}
	snap := a.Store.Create(b)
	chirender.Status(r, http.StatusCreated)
	chirender.JSON(w, r, summary(snap, b.Files))
}

func (a *api) listDatasets(w http.ResponseWriter, r *http.Request) {
	snaps := a.Store.List()
	out := make([]datasetResponse, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, summary(s, nil))
	}
	chirender.JSON(w, r, out)
}

func (a *api) getDataset(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w, r)
	if !ok {
		return
	}
	chirender.JSON(w, r, summary(snap, nil))
}

func (a *api) deleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Delete(chi.URLParam(r, "id")); err != nil {
		apperr.Write(w, r, apperr.NotFound("dataset"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) addFiles(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := a.snapshot(w, r); !ok {
		return
	}
	uploads, apiErr := a.readUploads(w, r)
	if apiErr != nil {
		apperr.Write(w, r, apiErr)
		return
	}
	a.appendUploads(w, r, id, uploads)
}

func (a *api) fetchFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := a.snapshot(w, r); !ok {
		return
	}
	var req fetchRequest
	if err := chirender.DecodeJSON(r.Body, &req); err != nil {
		apperr.Write(w, r, apperr.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		apperr.Write(w, r, apperr.ErrValidation.WithDetails(validationDetails(err)))
		return
	}
	if a.Fetcher == nil {
		apperr.Write(w, r, apperr.ErrNotConfigured)
		return
	}
	up, err := a.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		a.Log.Warn("remote fetch failed", slog.String("dataset", id), slog.String("err", err.Error()))
		if errors.Is(err, ingest.ErrBlockedAddress) {
			apperr.Write(w, r, apperr.ErrValidation.WithDetails(map[string]string{"url": "host is not allowed"}))
			return
		}
		apperr.Write(w, r, apperr.ErrUpstream.WithDetails(err.Error()))
		return
	}
	a.appendUploads(w, r, id, []ingest.Upload{up})
}

func (a *api) appendUploads(w http.ResponseWriter, r *http.Request, id string, uploads []ingest.Upload) {
	b, err := a.ETL.Run(r.Context(), uploads)
	if err != nil {
		apperr.Write(w, r, apperr.ErrInvalidRequest.WithDetails(err.Error()))
		return
	}
	snap, err := a.Store.Append(id, b)
	if err != nil {
		apperr.Write(w, r, apperr.NotFound("dataset"))
		return
	}
	chirender.JSON(w, r, summary(snap, b.Files))
}

func (a *api) getPeriod(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w, r)
	if !ok {
		return
	}
	q, ok := a.reportQuery(w, r)
	if !ok {
		return
	}
	p, err := metrics.Resolve(snap.Dataset, q.Months)
	if err != nil {
		apperr.Write(w, r, reportError(err))
		return
	}
	chirender.JSON(w, r, p)
}

func (a *api) getReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w, r)
	if !ok {
		return
	}
	q, ok := a.reportQuery(w, r)
	if !ok {
		return
	}
	rep, err := a.Reports.Report(snap.Dataset, q.Months)
	if err != nil {
		apperr.Write(w, r, reportError(err))
		return
	}
	if q.Format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		render.WriteText(w, rep, time.Now())
		return
	}
	chirender.JSON(w, r, rep)
}

func (a *api) deliverReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w, r)
	if !ok {
		return
	}
	if !a.Sink.Configured() {
		apperr.Write(w, r, apperr.ErrNotConfigured.WithDetails("SINK_URL and SINK_SECRET"))
		return
	}
	q, ok := a.reportQuery(w, r)
	if !ok {
		return
	}
	rep, err := a.Reports.Report(snap.Dataset, q.Months)
	if err != nil {
		apperr.Write(w, r, reportError(err))
		return
	}
	if err := a.Sink.Deliver(r.Context(), snap.ID, rep); err != nil {
		a.Log.Warn("report delivery failed", slog.String("dataset", snap.ID), slog.String("err", err.Error()))
		apperr.Write(w, r, apperr.ErrUpstream.WithDetails(err.Error()))
		return
	}
	chirender.Status(r, http.StatusAccepted)
	chirender.JSON(w, r, map[string]any{"delivered": true, "dataset_id": snap.ID})
}

func (a *api) snapshot(w http.ResponseWriter, r *http.Request) (store.Snapshot, bool) {
	snap, err := a.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		apperr.Write(w, r, apperr.NotFound("dataset"))
		return store.Snapshot{}, false
	}
	return snap, true
}

func (a *api) reportQuery(w http.ResponseWriter, r *http.Request) (reportQuery, bool) {
	q := reportQuery{Months: a.Cfg.DefaultWindowMonths, Format: r.URL.Query().Get("format")}
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apperr.Write(w, r, apperr.ErrValidation.WithDetails(map[string]string{"months": "must be an integer"}))
			return q, false
		}
		q.Months = n
	}
	if err := a.validate.Struct(q); err != nil {
		apperr.Write(w, r, apperr.ErrValidation.WithDetails(validationDetails(err)))
		return q, false
	}
	return q, true
}

// readUploads collects every multipart file part named "files" or "file".
func (a *api) readUploads(w http.ResponseWriter, r *http.Request) ([]ingest.Upload, *apperr.APIError) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, apperr.ErrTooLarge
		}
		return nil, apperr.ErrInvalidRequest.WithDetails(err.Error())
	}

	var uploads []ingest.Upload
	for _, field := range []string{"files", "file"} {
		for _, fh := range r.MultipartForm.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, apperr.ErrInvalidRequest.WithDetails(err.Error())
			}
			b, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, apperr.ErrInvalidRequest.WithDetails(err.Error())
			}
			uploads = append(uploads, ingest.Upload{Name: fh.Filename, Data: b})
		}
	}
	if len(uploads) == 0 {
		return nil, apperr.ErrValidation.WithDetails(map[string]string{"files": "at least one file is required"})
	}
	return uploads, nil
}

func validationDetails(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["request"] = err.Error()
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag() + " " + fe.Param()
	}
	return out
}

func reportError(err error) *apperr.APIError {
	switch {
	case errors.Is(err, metrics.ErrInvalidWindow):
		return apperr.ErrValidation.WithDetails(map[string]string{"months": err.Error()})
	case errors.Is(err, metrics.ErrNoDateRange):
		return apperr.ErrNoDateRange
	case errors.Is(err, metrics.ErrNoPostData):
		return apperr.ErrNoPostData
	case errors.Is(err, sink.ErrNotConfigured):
		return apperr.ErrNotConfigured
	}
	return apperr.ErrInternal.WithDetails(err.Error())
}
