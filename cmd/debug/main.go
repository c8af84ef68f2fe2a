package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial position)")
	flag.Parse()

	var (
		g   *xiangqi.Game
		err error
	)
	if *fen != "" {
		g, err = xiangqi.NewGameFromFEN(xiangqi.DefaultConfig(), *fen)
	} else {
		g, err = xiangqi.New(xiangqi.DefaultConfig())
	}
	if err != nil {
		log.Fatalf("load position: %v", err)
	}

	obs := g.Observation()
	for r := range obs {
		for c := range obs[r] {
			fmt.Printf("%4d", obs[r][c])
		}
		fmt.Println()
	}
	fmt.Println("FEN:", g.FEN())
	cfg := g.Config()
	fmt.Printf("Ally: %s, max checks: %d, reject self-check: %v\n", cfg.AllyColor, cfg.MaxPerpetualChecks, cfg.RejectSelfCheck)
	fmt.Println("Turn:", g.Turn(), g.ColorOf(g.Turn()))
	for _, side := range []xiangqi.Side{xiangqi.Ally, xiangqi.Enemy} {
		fmt.Printf("%s: %d legal actions, in check=%v, checking=%v\n",
			side, len(g.LegalActions(side)), g.InCheck(side), g.CheckingActions(side))
	}
}
