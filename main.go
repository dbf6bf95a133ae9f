package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lotteryweb/internal/config"
	"lotteryweb/internal/flash"
	"lotteryweb/internal/lottery"
	"lotteryweb/internal/workbook"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lottery",
		Short:        "Draw a random winner from an uploaded spreadsheet",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newDrawCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload and draw web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(configPath)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg.Log); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	winners := flash.New[lottery.Winner](cfg.Flash.TTLDuration(),
		flash.WithCookieName(cfg.Flash.CookieName),
		flash.WithSecureCookie(cfg.Flash.SecureCookie),
	)
	go winners.Run(ctx, cfg.Flash.SweepDuration())

	a := newApp(cfg, lottery.NewDrawer(), winners)
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     a.routes(),
		ReadTimeout: cfg.Server.ReadTimeoutDuration(),
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	log.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

func newDrawCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "draw FILE",
		Short: "Draw a winner from a spreadsheet on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := workbook.DetectFormat(args[0])
			if err != nil {
				format = workbook.FormatXLSX
			}
			sheet, err := workbook.Open(args[0], format)
			if err != nil {
				return err
			}

			var opts []lottery.Option
			if seed != 0 {
				opts = append(opts, lottery.WithSource(lottery.NewSeededSource(seed)))
			}
			winner, err := lottery.NewDrawer(opts...).Draw(sheet)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:         %s\n", winner.Name)
			fmt.Fprintf(out, "Number:       %s\n", winner.Number)
			fmt.Fprintf(out, "Amount:       %s\n", winner.Amount)
			fmt.Fprintf(out, "Total amount: %s\n", winner.TotalAmount)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible draw (0 uses crypto/rand)")
	return cmd
}

func setupLogging(cfg config.Log) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
