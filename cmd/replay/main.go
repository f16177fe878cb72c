package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/trytobebee/snake_arena/pkg/config"
)

func main() {
	// The replay tool listens next to the game server unless told otherwise
	args := append([]string{"-addr", ":8081"}, os.Args[1:]...)
	settings, err := config.LoadSettings("replay", args)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	server := NewReplayServer(settings.RecordDir)

	fmt.Printf("📼 Snake Replay Tool starting on http://localhost%s\n", settings.Addr)
	log.Fatal(http.ListenAndServe(settings.Addr, server.Routes("web/static")))
}
