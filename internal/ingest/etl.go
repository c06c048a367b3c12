package ingest

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/telemetry"
)

const errUnclassified = "unable to detect file type from headers"

// Batch is the outcome of one ingest call: feedback per file plus the
// normalized tables of the files that succeeded, both in upload order.
type Batch struct {
	Files  []models.FileResult
	Tables []Table
}

// Dataset merges the batch's tables.
func (b Batch) Dataset() models.Dataset { return Merge(b.Tables) }

type ETL struct {
	log      *slog.Logger
	tel      *telemetry.Collectors
	workers  int
	maxBytes int64
}

// NewETL builds the pipeline. maxBytes caps how much each ZIP upload may
// expand to; <= 0 means DefaultMaxBytes.
func NewETL(log *slog.Logger, tel *telemetry.Collectors, workers int, maxBytes int64) *ETL {
	if workers <= 0 {
		workers = 4
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ETL{log: log, tel: tel, workers: workers, maxBytes: maxBytes}
}

// Run decodes, classifies and normalizes uploads. Decoding runs concurrently;
// classification and normalization run in upload order afterwards. A bad
// file never aborts its siblings; the only error returned is ctx's.
func (e *ETL) Run(ctx context.Context, uploads []Upload) (Batch, error) {
	decodedByUpload := make([][]decoded, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, u := range uploads {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decodedByUpload[i] = decodeUpload(u, e.maxBytes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}

	var b Batch
	for _, ds := range decodedByUpload {
		for _, d := range ds {
			res, t, ok := e.process(d)
			b.Files = append(b.Files, res)
			if ok {
				b.Tables = append(b.Tables, t)
			}
		}
	}

	e.log.Info("ingest complete",
		slog.Int("files", len(b.Files)),
		slog.Int("tables", len(b.Tables)))
	return b, nil
}

func (e *ETL) process(d decoded) (models.FileResult, Table, bool) {
	if d.err != nil {
		e.tel.IncFile(models.KindUnknown.String(), "error")
		e.log.Warn("file rejected", slog.String("file", d.name), slog.String("err", d.err.Error()))
		return models.FileResult{FileName: d.name, Error: d.err.Error()}, Table{}, false
	}

	kind := Classify(d.table.Headers)
	if !kind.Known() {
		e.tel.IncFile(kind.String(), "unclassified")
		e.log.Warn("file unclassified", slog.String("file", d.name), slog.Any("headers", d.table.Headers))
		return models.FileResult{
			FileName: d.name,
			Error:    errUnclassified,
			Headers:  d.table.Headers,
		}, Table{}, false
	}

	t := Normalize(kind, d.table)
	t.Source = d.name
	e.tel.IncFile(kind.String(), "ok")
	e.tel.AddDropped(kind.String(), t.Dropped)
	e.log.Debug("file ingested",
		slog.String("file", d.name),
		slog.String("kind", kind.String()),
		slog.Int("rows", len(d.table.Rows)),
		slog.Int("dropped", t.Dropped))

	return models.FileResult{
		FileName: d.name,
		Success:  true,
		Kind:     kind,
		RowCount: len(d.table.Rows),
	}, t, true
}
