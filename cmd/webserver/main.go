package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trytobebee/snake_arena/pkg/config"
	"github.com/trytobebee/snake_arena/pkg/leaderboard"
)

func main() {
	settings, err := config.LoadSettings("webserver", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	store, err := leaderboard.Open(settings.DBPath)
	if err != nil {
		log.Fatal("Failed to open leaderboard:", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gs := NewGameServer(settings, store)
	srv := &http.Server{
		Addr:    settings.Addr,
		Handler: gs.Routes("web/static"),
		// Hijacked websocket connections outlive Shutdown; the base context
		// is what ends their matches.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("Shutdown error:", err)
		}
	}()

	fmt.Printf("🚀 Snake Arena server starting on http://localhost%s\n", settings.Addr)
	fmt.Printf("🏆 Leaderboard API at http://localhost%s/api/leaderboard\n", settings.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	gs.Wait()
}
