package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
)

const twitterCSV = "Date,Tweet ID,Tweet text,Impressions,Engagements\n" +
	"2025-02-01 09:00:00,1,\"hello, world\",\"1,200\",30\n" +
	"2025-02-03 09:00:00,2,second,800,12\n"

func TestDecodeCSVStripsUTF8BOM(t *testing.T) {
	tbl, err := DecodeCSV(strings.NewReader("\ufeff" + twitterCSV))
	require.NoError(t, err)
	assert.Equal(t, "Date", tbl.Headers[0])
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "hello, world", tbl.Rows[0]["Tweet text"])
	assert.Equal(t, "1,200", tbl.Rows[0]["Impressions"])
}

func TestDecodeCSVUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(twitterCSV))
	require.NoError(t, err)

	tbl, err := DecodeCSV(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Tweet ID", "Tweet text", "Impressions", "Engagements"}, tbl.Headers)
	assert.Len(t, tbl.Rows, 2)
}

func TestDecodeCSVSniffsDelimiter(t *testing.T) {
	tsv := "\n\nDate\tFacebook Post ID\tShares\n2025-01-02\t9\t4\n\t\t\n2025-01-03\t10\t1\n"
	tbl, err := DecodeCSV(strings.NewReader(tsv))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Facebook Post ID", "Shares"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2, "blank rows skipped")
	assert.Equal(t, "4", tbl.Rows[0]["Shares"])

	tbl, err = DecodeCSV(strings.NewReader("Date;Instagram Post ID;Reach\n2025-01-02;1;5\n"))
	require.NoError(t, err)
	assert.Equal(t, "5", tbl.Rows[0]["Reach"])
}

func TestDecodeCSVShortRows(t *testing.T) {
	tbl, err := DecodeCSV(strings.NewReader("a,b,c\n1\n"))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "1", tbl.Rows[0]["a"])
	_, ok := tbl.Rows[0]["c"]
	assert.False(t, ok)
}

func TestDecodeCSVEmpty(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(" \n\n"))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func xlsxBytes(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeXLSX(t *testing.T) {
	b := xlsxBytes(t,
		[]any{"Date", "Facebook Post ID", "Reactions", "Shares"},
		[]any{"2025-01-02", "1", 15, 2},
	)
	tbl, err := DecodeXLSX(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Facebook Post ID", "Reactions", "Shares"}, tbl.Headers)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "15", tbl.Rows[0]["Reactions"])
}

func zipBytes(t *testing.T, files map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExpandZip(t *testing.T) {
	order := []string{"exports/", "exports/twitter.csv", "__MACOSX/exports/._twitter.csv", "notes.txt", "exports/FB.CSV"}
	b := zipBytes(t, map[string]string{
		"exports/twitter.csv":            twitterCSV,
		"__MACOSX/exports/._twitter.csv": "junk",
		"notes.txt":                      "ignore me",
		"exports/FB.CSV":                 "Date,Facebook Post ID,Shares\n2025-01-01,1,1\n",
	}, order)

	entries, err := ExpandZip(b, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "exports/twitter.csv", entries[0].Name)
	assert.Equal(t, "exports/FB.CSV", entries[1].Name)
	assert.NoError(t, entries[0].Err)
}

func TestExpandZipEntryLimit(t *testing.T) {
	small := "Date,Facebook Post ID,Shares\n2025-01-01,1,1\n"
	big := "Date,Tweet ID\n" + strings.Repeat("2025-01-01,1\n", 100)
	b := zipBytes(t, map[string]string{"fb.csv": small, "big.csv": big, "after.csv": small},
		[]string{"fb.csv", "big.csv", "after.csv"})

	limit := int64(2*len(small) + 10)
	entries, err := ExpandZip(b, limit)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.NoError(t, entries[0].Err)
	assert.Equal(t, small, string(entries[0].Data))
	assert.ErrorIs(t, entries[1].Err, ErrEntryTooLarge)
	assert.Nil(t, entries[1].Data)
	assert.NoError(t, entries[2].Err, "oversized entry does not use up the budget")

	got := decodeUpload(Upload{Name: "bundle.zip", Data: b}, limit)
	require.Len(t, got, 3)
	assert.ErrorIs(t, got[1].err, ErrEntryTooLarge)
	require.NoError(t, got[0].err)
	require.NoError(t, got[2].err)
}

func TestExpandZipTotalLimit(t *testing.T) {
	row := "Date,Facebook Post ID,Shares\n2025-01-01,1,1\n"
	b := zipBytes(t, map[string]string{"a.csv": row, "b.csv": row, "c.csv": row},
		[]string{"a.csv", "b.csv", "c.csv"})

	entries, err := ExpandZip(b, int64(2*len(row)))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.NoError(t, entries[0].Err)
	assert.NoError(t, entries[1].Err)
	assert.ErrorIs(t, entries[2].Err, ErrEntryTooLarge)
}

func TestDecodeUpload(t *testing.T) {
	got := decodeUpload(Upload{Name: "report.pdf", Data: []byte("%PDF")}, 0)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0].err, ErrUnsupportedFile)

	got = decodeUpload(Upload{Name: "broken.zip", Data: []byte("not a zip")}, 0)
	require.Len(t, got, 1)
	assert.ErrorContains(t, got[0].err, "read zip")

	got = decodeUpload(Upload{Name: "tweets.CSV", Data: []byte(twitterCSV)}, 0)
	require.Len(t, got, 1)
	require.NoError(t, got[0].err)
	assert.Len(t, got[0].table.Rows, 2)
}
