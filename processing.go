// processing.go
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"lotteryweb/internal/workbook"
)

const uploadField = "excelFile"

var (
	errNoFile   = errors.New("no file provided")
	errTooLarge = errors.New("file too large")
)

// readUpload stages the uploaded file on disk, reads its first sheet and
// removes the staged copy before returning, on every path.
func (a *app) readUpload(w http.ResponseWriter, r *http.Request) (*workbook.Sheet, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Upload.MaxBytes)
	if err := r.ParseMultipartForm(a.cfg.Upload.MaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || r.ContentLength > a.cfg.Upload.MaxBytes {
			return nil, "", errTooLarge
		}
		return nil, "", errNoFile
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", errNoFile
	}
	defer file.Close()
	if header.Size == 0 {
		return nil, header.Filename, errNoFile
	}

	format, err := workbook.DetectFormat(header.Filename)
	if err != nil {
		format = workbook.FormatXLSX
	}

	path, cleanup, err := stageUpload(file, a.cfg.Upload.TempDir)
	if err != nil {
		return nil, header.Filename, err
	}
	defer cleanup()

	sheet, err := workbook.Open(path, format, a.readOptions()...)
	if err != nil {
		return nil, header.Filename, err
	}
	return sheet, header.Filename, nil
}

func (a *app) readOptions() []workbook.ReadOption {
	return []workbook.ReadOption{
		workbook.WithMaxRows(a.cfg.Upload.MaxRows),
		workbook.WithUnzipLimit(a.cfg.Upload.UnzipLimit()),
	}
}

// stageUpload copies src into a new temp file. The returned cleanup removes
// it and is safe to call when staging failed part way.
func stageUpload(src io.Reader, dir string) (string, func(), error) {
	tmp, err := os.CreateTemp(dir, "lottery-*.upload")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", tmp.Name()).Warn("failed to remove staged upload")
		}
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("stage upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("stage upload: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
