package mobile

import (
	"log"
	"net/http"

	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

// StartServer starts the local HTTP server in the background.
// port: port to listen on, e.g. "2888"
// ally: color of the bottom side, "red" or "black"
func StartServer(port string, ally string) {
	cfg := xiangqi.DefaultConfig()
	color, err := xiangqi.ParseColor(ally)
	if err != nil {
		log.Printf("StartServer: %v, using red", err)
	}
	cfg.AllyColor = color

	mux := httpserver.NewMux(httpserver.NewHandler(game.NewManager(), cfg))

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, mux); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
