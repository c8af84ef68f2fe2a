package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"xiangqi/internal/xiangqi"
)

// TestCase 是一条走法生成的对拍样本
type TestCase struct {
	FEN          string              `json:"fen"`
	Turn         string              `json:"turn"`
	Observation  xiangqi.Observation `json:"observation"`
	LegalActions []int32             `json:"legal_actions"`
	InCheck      bool                `json:"in_check"`
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("maxmoves", 500, "max plies per game")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	var testCases []TestCase
	for i := 0; i < *numGames; i++ {
		g, err := xiangqi.New(xiangqi.DefaultConfig())
		if err != nil {
			log.Fatalf("new game: %v", err)
		}
		for ply := 0; ply < *maxMoves && !g.Done(); ply++ {
			turn := g.Turn()
			actions := g.LegalActions(turn)
			if len(actions) == 0 {
				break
			}
			tc := TestCase{
				FEN:          g.FEN(),
				Turn:         turn.String(),
				Observation:  g.Observation(),
				LegalActions: make([]int32, len(actions)),
				InCheck:      g.InCheck(turn),
			}
			for j, a := range actions {
				tc.LegalActions[j] = int32(a)
			}
			testCases = append(testCases, tc)

			if _, err := g.Step(actions[rng.Intn(len(actions))]); err != nil {
				log.Fatalf("game %d ply %d: %v", i+1, ply, err)
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, file, 0644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s (seed %d)\n", len(testCases), *numGames, *out, *seed)
}
