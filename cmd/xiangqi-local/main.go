package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/xiangqi"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，忽略
}

// pruneInterval 返回清理空闲对局的周期：idle 的四分之一，至少一秒。
func pruneInterval(idle time.Duration) (time.Duration, error) {
	if idle <= 0 {
		return 0, errors.Errorf("idle timeout must be positive, got %v", idle)
	}
	every := idle / 4
	if every < time.Second {
		every = time.Second
	}
	return every, nil
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	ally := flag.String("ally", "red", "color of the bottom side: red | black")
	maxChecks := flag.Int("max-checks", xiangqi.DefaultMaxPerpetualChecks, "identical checks before the checking side loses")
	rejectSelfCheck := flag.Bool("reject-self-check", false, "drop moves that leave the mover's general attacked")
	browser := flag.Bool("browser", false, "open /healthz in the default browser after start")
	idle := flag.Duration("idle", 2*time.Hour, "drop games untouched for this long")
	flag.Parse()

	every, err := pruneInterval(*idle)
	if err != nil {
		log.Fatalf("bad -idle: %v", err)
	}
	color, err := xiangqi.ParseColor(*ally)
	if err != nil {
		log.Fatalf("bad -ally: %v", err)
	}
	cfg := xiangqi.DefaultConfig()
	cfg.AllyColor = color
	cfg.MaxPerpetualChecks = *maxChecks
	cfg.RejectSelfCheck = *rejectSelfCheck
	if err := cfg.Validate(); err != nil {
		log.Fatalf("bad config: %v", err)
	}

	games := game.NewManager()
	mux := httpserver.NewMux(httpserver.NewHandler(games, cfg))

	go func() {
		for range time.Tick(every) {
			if n := games.Prune(*idle); n > 0 {
				log.Printf("pruned %d idle games", n)
			}
		}
	}()

	log.Printf("listening on %s (ally=%s, max checks=%d)", *addr, color, cfg.MaxPerpetualChecks)

	if *browser {
		// 延迟一下，等服务器起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr + "/healthz")
		}()
	}

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
