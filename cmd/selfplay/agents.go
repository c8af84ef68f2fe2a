package main

import (
	"math/rand"

	"xiangqi/internal/xiangqi"
)

// Agent 从当前走子方的合法动作里挑一个
type Agent interface {
	Name() string
	Choose(g *xiangqi.Game, rng *rand.Rand) xiangqi.Action
}

type randomAgent struct{}

func (randomAgent) Name() string { return "random" }

func (randomAgent) Choose(g *xiangqi.Game, rng *rand.Rand) xiangqi.Action {
	actions := g.LegalActions(g.Turn())
	return actions[rng.Intn(len(actions))]
}

// greedyAgent 总是吃分最高的子，没得吃就随机走
type greedyAgent struct{}

func (greedyAgent) Name() string { return "greedy" }

func (greedyAgent) Choose(g *xiangqi.Game, rng *rand.Rand) xiangqi.Action {
	moves := g.Legality(g.Turn()).Moves()
	obs := g.Observation()

	var (
		best      []xiangqi.Action
		bestScore = -1.0
	)
	for _, mv := range moves {
		score := xiangqi.Piece(obs[mv.To.Row()][mv.To.Col()]).Type().Points()
		switch {
		case score > bestScore:
			best, bestScore = append(best[:0], mv.Action()), score
		case score == bestScore:
			best = append(best, mv.Action())
		}
	}
	return best[rng.Intn(len(best))]
}

func agentByName(name string) (Agent, bool) {
	switch name {
	case "random":
		return randomAgent{}, true
	case "greedy":
		return greedyAgent{}, true
	}
	return nil, false
}
