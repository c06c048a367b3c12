package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/AngelCh415/socialreport/internal/models"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type: upload CSV, XLSX or ZIP files")
	ErrEmptyTable      = errors.New("file has no header row")
	ErrEntryTooLarge   = errors.New("zip entry exceeds size limit")
)

// DefaultMaxBytes bounds a fetched body and the expanded contents of an
// archive when no limit is configured.
const DefaultMaxBytes int64 = 50 << 20

// Upload is one file as it arrived from the caller.
type Upload struct {
	Name string
	Data []byte
}

// decoded is a single table produced from an upload. A ZIP upload yields one
// per contained export.
type decoded struct {
	name  string
	table models.RawTable
	err   error
}

func decodeUpload(u Upload, limit int64) []decoded {
	switch ext(u.Name) {
	case ".zip":
		entries, err := ExpandZip(u.Data, limit)
		if err != nil {
			return []decoded{{name: u.Name, err: fmt.Errorf("read zip: %w", err)}}
		}
		out := make([]decoded, 0, len(entries))
		for _, e := range entries {
			if e.Err != nil {
				out = append(out, decoded{name: e.Name, err: e.Err})
				continue
			}
			out = append(out, decodeTable(e.Upload))
		}
		return out
	case ".csv", ".xlsx":
		return []decoded{decodeTable(u)}
	}
	return []decoded{{name: u.Name, err: ErrUnsupportedFile}}
}

func decodeTable(u Upload) decoded {
	var (
		t   models.RawTable
		err error
	)
	switch ext(u.Name) {
	case ".csv":
		t, err = DecodeCSV(bytes.NewReader(u.Data))
	case ".xlsx":
		t, err = DecodeXLSX(bytes.NewReader(u.Data))
	default:
		err = ErrUnsupportedFile
	}
	return decoded{name: u.Name, table: t, err: err}
}

func ext(name string) string { return strings.ToLower(path.Ext(name)) }

// DecodeCSV reads a CSV export. A UTF-8 or UTF-16 byte order mark is honored,
// the delimiter is sniffed from the header line (comma, tab or semicolon) and
// the first non-empty record becomes the header row.
func DecodeCSV(r io.Reader) (models.RawTable, error) {
	utf := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	b, err := io.ReadAll(utf)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("decode csv: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(b))
	cr.Comma = sniffDelimiter(b)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("parse csv: %w", err)
	}
	return tableFromRecords(records)
}

func sniffDelimiter(b []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		best, n := ',', strings.Count(line, ",")
		for _, d := range []rune{'\t', ';'} {
			if c := strings.Count(line, string(d)); c > n {
				best, n = d, c
			}
		}
		return best
	}
	return ','
}

// DecodeXLSX reads the first sheet of a workbook.
func DecodeXLSX(r io.Reader) (models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.RawTable{}, ErrEmptyTable
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRecords(rows)
}

func tableFromRecords(records [][]string) (models.RawTable, error) {
	start := -1
	for i, rec := range records {
		if !blank(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return models.RawTable{}, ErrEmptyTable
	}

	headers := make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-start-1)
	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return models.RawTable{Headers: headers, Rows: rows}, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ZipEntry is an export found inside an archive. Err is set when the entry
// itself could not be read; the rest of the archive is still returned.
type ZipEntry struct {
	Upload
	Err error
}

// ExpandZip returns every CSV or XLSX export inside an archive, in archive
// order. Directories and macOS resource-fork entries are skipped. limit caps
// the total decompressed bytes; an entry that would cross it gets
// ErrEntryTooLarge and is not kept in memory. limit <= 0 means
// DefaultMaxBytes.
func ExpandZip(data []byte, limit int64) ([]ZipEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	var out []ZipEntry
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if e := ext(f.Name); e != ".csv" && e != ".xlsx" {
			continue
		}
		b, err := readZipEntry(f, limit)
		limit -= int64(len(b))
		out = append(out, ZipEntry{Upload: Upload{Name: f.Name, Data: b}, Err: err})
	}
	return out, nil
}

// readZipEntry reads at most limit bytes. The header's declared size is not
// trusted.
func readZipEntry(f *zip.File, limit int64) ([]byte, error) {
	if f.UncompressedSize64 > uint64(limit) {
		return nil, ErrEntryTooLarge
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrEntryTooLarge
	}
	return b, nil
}
