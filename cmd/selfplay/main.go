package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"xiangqi/internal/xiangqi"
)

type gameResult struct {
	outcome xiangqi.Outcome
	plies   int
	reward  [2]float64 // [ally, enemy]，不含吃帅/长将的哨兵值
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game before calling it unfinished")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	allyName := flag.String("ally", "greedy", "ally agent: random | greedy")
	enemyName := flag.String("enemy", "random", "enemy agent: random | greedy")
	pprofAddr := flag.String("pprof", "", "serve pprof on this address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	ally, ok := agentByName(*allyName)
	if !ok {
		log.Fatalf("unknown agent %q", *allyName)
	}
	enemy, ok := agentByName(*enemyName)
	if !ok {
		log.Fatalf("unknown agent %q", *enemyName)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	log.Printf("selfplay: %d games, ally=%s enemy=%s seed=%d", *games, ally.Name(), enemy.Name(), *seed)

	tally := make(map[string]int)
	start := time.Now()
	totalPlies := 0
	for i := 0; i < *games; i++ {
		cfg := xiangqi.DefaultConfig()
		// 轮流换颜色，双方都有先手的机会
		if i%2 == 1 {
			cfg.AllyColor = xiangqi.Black
		}
		res, err := playGame(cfg, ally, enemy, rng, *maxMoves)
		if err != nil {
			log.Fatalf("game %d: %v", i+1, err)
		}
		totalPlies += res.plies

		key := "unfinished"
		if res.outcome.Kind != xiangqi.OutcomeNone {
			key = fmt.Sprintf("%s wins by %s", res.outcome.Winner, res.outcome.Kind)
		}
		tally[key]++
		fmt.Printf("game %3d  ally=%-5s plies=%3d  %-36s material ally=%.1f enemy=%.1f\n",
			i+1, cfg.AllyColor, res.plies, key, res.reward[0], res.reward[1])
	}

	keys := maps.Keys(tally)
	slices.Sort(keys)
	fmt.Println("---")
	for _, k := range keys {
		fmt.Printf("%-36s %d\n", k, tally[k])
	}
	elapsed := time.Since(start)
	fmt.Printf("%d plies in %v (%.0f plies/s)\n", totalPlies, elapsed, float64(totalPlies)/elapsed.Seconds())
}

func playGame(cfg xiangqi.Config, ally, enemy Agent, rng *rand.Rand, maxMoves int) (gameResult, error) {
	var res gameResult
	g, err := xiangqi.New(cfg)
	if err != nil {
		return res, err
	}
	for res.plies < maxMoves && !g.Done() {
		agent := ally
		if g.Turn() == xiangqi.Enemy {
			agent = enemy
		}
		if len(g.LegalActions(g.Turn())) == 0 {
			// 无子可动：规则层不判负，这里当作未完成
			break
		}
		step, err := g.Step(agent.Choose(g, rng))
		if err != nil {
			return res, err
		}
		if step.Info.Illegal {
			return res, fmt.Errorf("agent %s chose illegal action %v", agent.Name(), step.Info.Move)
		}
		if !step.Done {
			if step.Info.Mover == xiangqi.Ally {
				res.reward[0] += step.Reward
			} else {
				res.reward[1] += step.Reward
			}
		}
		res.plies++
	}
	res.outcome = g.Outcome()
	return res, nil
}
