package main

import (
	"context"
	"famcal/src-server/metric"
	"famcal/src-server/model"
	"famcal/src-server/route"
	"famcal/src-server/scheduler"
	"famcal/src-server/store"
	"famcal/src-server/utils"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}
	for _, user := range model.Users {
		if err := user.Upsert(context.Background(), as.BunDB); err != nil {
			slog.Error("can't insert user", "user", user.ID, "error", err)
			os.Exit(1)
		}
	}

	// demo household week; swap out for any other loader without touching
	// the store contract
	if err := store.Seed(context.Background(), as.Store); err != nil {
		slog.Error("can't seed events", "error", err)
		os.Exit(1)
	}

	// open a connection to Discord if notifications are configured
	if as.DgSession != nil {
		if err := as.DgSession.Open(); err != nil {
			slog.Error("error opening Discord connection", "error", err)
			os.Exit(1)
		}
		defer as.DgSession.Close()
	}

	go metric.Init(as)
	go scheduler.PendingDigest(as)

	// http server
	go func() {
		muxer := http.NewServeMux()
		muxer.Handle("GET /metrics", promhttp.Handler())
		route.Calendar(muxer, as)
		route.Event(muxer, as)
		route.User(muxer, as)
		if err := http.ListenAndServe(":"+as.Config.GetPort(), muxer); err != nil {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("active user", "user", as.Store.ActiveUser().Name)
	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	as.GracefulShutdown()

	slog.Info("Gracefully shutting down...")
}
