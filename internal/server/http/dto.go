package httpserver

import "xiangqi/internal/xiangqi"

// NewGameRequest 开局参数，都可以不填。
type NewGameRequest struct {
	AllyColor          string `json:"ally_color"` // "red" / "black"
	MaxPerpetualChecks int    `json:"max_perpetual_checks"`
	RejectSelfCheck    bool   `json:"reject_self_check"`
	FEN                string `json:"fen"` // 为空时从开局开始
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

// StepRequest 里 Action 用指针，区分没传和传了 0
type StepRequest struct {
	GameID string `json:"game_id"`
	Action *int32 `json:"action"`
}

// LegalActionsRequest：Side 为空时取当前走子方；Piece 为 0 时返回全部棋子。
type LegalActionsRequest struct {
	GameID string `json:"game_id"`
	Side   string `json:"side"` // "ally" / "enemy"
	Piece  int    `json:"piece"`
}

type MoveDTO struct {
	Action int32  `json:"action"`
	Piece  int    `json:"piece"`
	From   [2]int `json:"from"` // [row, col]
	To     [2]int `json:"to"`
}

type OutcomeDTO struct {
	Kind   string `json:"kind"`
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
}

// StateResponse 是 new_game / state / reset 共用的返回
type StateResponse struct {
	GameID       string              `json:"game_id"`
	Observation  xiangqi.Observation `json:"observation"`
	FEN          string              `json:"fen"`
	Turn         string              `json:"turn"`
	TurnColor    string              `json:"turn_color"`
	LegalActions []int32             `json:"legal_actions"`
	InCheck      bool                `json:"in_check"`
	Done         bool                `json:"done"`
	Outcome      OutcomeDTO          `json:"outcome"`
}

type StepResponse struct {
	StateResponse
	Reward       float64 `json:"reward"`
	Move         MoveDTO `json:"move"`
	Captured     int     `json:"captured"`
	Checks       []int32 `json:"checks,omitempty"`
	Illegal      bool    `json:"illegal,omitempty"`
	PostTerminal bool    `json:"post_terminal,omitempty"`
}

type LegalActionsResponse struct {
	GameID  string    `json:"game_id"`
	Side    string    `json:"side"`
	Actions []int32   `json:"actions"`
	Moves   []MoveDTO `json:"moves"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func sideToString(s xiangqi.Side) string {
	switch s {
	case xiangqi.Ally:
		return "ally"
	case xiangqi.Enemy:
		return "enemy"
	default:
		return ""
	}
}

func parseSide(s string) (xiangqi.Side, bool) {
	switch s {
	case "ally", "a":
		return xiangqi.Ally, true
	case "enemy", "e":
		return xiangqi.Enemy, true
	}
	return xiangqi.NoSide, false
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{
		Action: int32(m.Action()),
		Piece:  int(m.Piece),
		From:   [2]int{m.From.Row(), m.From.Col()},
		To:     [2]int{m.To.Row(), m.To.Col()},
	}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func actionsToInts(as []xiangqi.Action) []int32 {
	out := make([]int32, len(as))
	for i, a := range as {
		out[i] = int32(a)
	}
	return out
}

func outcomeToDTO(o xiangqi.Outcome) OutcomeDTO {
	return OutcomeDTO{
		Kind:   o.Kind.String(),
		Winner: sideToString(o.Winner),
		Loser:  sideToString(o.Loser),
	}
}

func stateOf(id string, g *xiangqi.Game) StateResponse {
	turn := g.Turn()
	return StateResponse{
		GameID:       id,
		Observation:  g.Observation(),
		FEN:          g.FEN(),
		Turn:         sideToString(turn),
		TurnColor:    g.ColorOf(turn).String(),
		LegalActions: actionsToInts(g.LegalActions(turn)),
		InCheck:      g.InCheck(turn),
		Done:         g.Done(),
		Outcome:      outcomeToDTO(g.Outcome()),
	}
}
