package main

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lotteryweb/internal/config"
	"lotteryweb/internal/flash"
	"lotteryweb/internal/lottery"
)

// firstRow always picks the first data row.
type firstRow struct{}

func (firstRow) IntN(int) (int, error) { return 0, nil }

func participantsWorkbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"ID", "Name", "Number", "Amount"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func threeParticipants(t *testing.T) []byte {
	return participantsWorkbook(t,
		[]interface{}{1, "Alice", "0821234567", "10.50"},
		[]interface{}{2, "Bob", "0827654321", "20.00"},
		[]interface{}{3, "Carol", "0831112222", "5.25"},
	)
}

// newTestApp returns an app whose uploads are staged in the returned dir.
func newTestApp(t *testing.T) (*app, string) {
	t.Helper()
	log.SetOutput(io.Discard)

	cfg := config.Default()
	cfg.Upload.TempDir = t.TempDir()
	drawer := lottery.NewDrawer(lottery.WithSource(firstRow{}))
	return newApp(cfg, drawer, flash.New[lottery.Winner](time.Minute)), cfg.Upload.TempDir
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile(uploadField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file attached"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
