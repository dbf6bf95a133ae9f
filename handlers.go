// handlers.go
package main

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"lotteryweb/internal/config"
	"lotteryweb/internal/flash"
	"lotteryweb/internal/lottery"
)

const (
	msgNoFile     = "Please choose an Excel file to upload."
	msgTooLarge   = "The file is too large."
	msgDrawFailed = "Error occurred during the lottery selection: "
)

type app struct {
	cfg     *config.Config
	drawer  *lottery.Drawer
	winners *flash.Store[lottery.Winner]
}

func newApp(cfg *config.Config, drawer *lottery.Drawer, winners *flash.Store[lottery.Winner]) *app {
	return &app{cfg: cfg, drawer: drawer, winners: winners}
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", withLogging(a.uploadHandler))
	mux.HandleFunc("/draw", withLogging(a.startProcessingHandler))
	mux.HandleFunc("/winner", withLogging(a.displayWinnerHandler))

	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/api/validate", withLogging(a.validateFileHandler))
	mux.HandleFunc("/api/draw", withLogging(a.apiDrawHandler))
	return mux
}

func (a *app) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderUpload(w, "")
}

func (a *app) startProcessingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sheet, filename, err := a.readUpload(w, r)
	switch {
	case errors.Is(err, errNoFile):
		a.renderUpload(w, msgNoFile)
		return
	case errors.Is(err, errTooLarge):
		a.renderUpload(w, msgTooLarge)
		return
	case err != nil:
		log.WithError(err).WithField("file", filename).Warn("upload could not be read")
		a.renderUpload(w, msgDrawFailed+err.Error())
		return
	}

	winner, err := a.drawer.Draw(sheet)
	if err != nil {
		log.WithError(err).WithField("file", filename).Error("draw failed")
		a.renderUpload(w, msgDrawFailed+err.Error())
		return
	}
	log.WithFields(log.Fields{
		"file":         filename,
		"participants": len(sheet.DataRows()),
		"total":        winner.TotalAmount,
	}).Info("winner drawn")

	if err := a.winners.Put(w, winner); err != nil {
		log.WithError(err).Error("failed to stage winner")
		a.renderUpload(w, msgDrawFailed+err.Error())
		return
	}
	http.Redirect(w, r, "/winner", http.StatusSeeOther)
}

func (a *app) displayWinnerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	winner, _ := a.winners.Pop(w, r)

	w.Header().Set("Cache-Control", "no-store")
	if err := views.ExecuteTemplate(w, "winner.html", WinnerPage(winner)); err != nil {
		log.WithError(err).Error("template error")
		http.Error(w, "Failed to display winner", http.StatusInternalServerError)
	}
}

func (a *app) renderUpload(w http.ResponseWriter, message string) {
	w.Header().Set("Cache-Control", "no-cache")
	page := UploadPage{Message: message, MaxUpload: a.cfg.Upload.MaxBytes}
	if err := views.ExecuteTemplate(w, "upload.html", page); err != nil {
		log.WithError(err).Error("template error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
