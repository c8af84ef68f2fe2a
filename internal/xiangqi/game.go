package xiangqi

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type OutcomeKind int8

const (
	OutcomeNone OutcomeKind = iota
	OutcomeGeneralCaptured
	OutcomePerpetualCheck
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGeneralCaptured:
		return "general_captured"
	case OutcomePerpetualCheck:
		return "perpetual_check"
	default:
		return "ongoing"
	}
}

// Outcome 对局结果。长将时将军方为 Loser。
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Side        `json:"winner"`
	Loser  Side        `json:"loser"`
}

// StepInfo 是 Step 的附加信息。
type StepInfo struct {
	Mover    Side     `json:"mover"`
	Move     Move     `json:"move"`
	Captured Piece    `json:"captured"`
	Checks   []Action `json:"checks,omitempty"` // 走完后对对方帅的将军动作
	Illegal  bool     `json:"illegal,omitempty"`
	// PostTerminal 表示对局已经结束，这次调用什么都没做
	PostTerminal bool    `json:"post_terminal,omitempty"`
	Outcome      Outcome `json:"outcome"`
}

type StepResult struct {
	Observation Observation `json:"observation"`
	Reward      float64     `json:"reward"`
	Done        bool        `json:"done"`
	Info        StepInfo    `json:"info"`
}

// Game 是一局棋的全部状态：盘面、注册表、两方合法表、两方将军历史。
// 不做任何内部加锁，多 goroutine 使用时由调用方整体互斥。
type Game struct {
	cfg Config

	pos     Position
	turn    Side
	done    bool
	warned  bool
	outcome Outcome

	legal [2]LegalityArray
	jiang [2]JiangHistory

	// 走法生成的复用缓冲
	buf []Move
}

// New 创建一局新棋并摆好开局。
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg: cfg.withDefaults(),
		buf: make([]Move, 0, 128),
	}
	g.jiang[0] = newJiangHistory()
	g.jiang[1] = newJiangHistory()
	g.Reset()
	return g, nil
}

// NewFromPosition 从任意局面开局（残局、测试）。turn 为 NoSide 时按颜色决定先手。
func NewFromPosition(cfg Config, pos Position, turn Side) (*Game, error) {
	if err := pos.CheckConsistency(); err != nil {
		return nil, err
	}
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	g.pos = pos
	if turn != NoSide {
		g.turn = turn
	}
	g.refreshLegality(Ally)
	g.refreshLegality(Enemy)
	return g, nil
}

func (g *Game) firstMover() Side {
	if g.cfg.AllyColor == Red {
		return Ally
	}
	return Enemy
}

// Reset 恢复开局，清空将军历史，返回开局盘面。
func (g *Game) Reset() Observation {
	g.pos = newInitialPosition()
	g.turn = g.firstMover()
	g.done = false
	g.warned = false
	g.outcome = Outcome{}
	g.jiang[0].clear()
	g.jiang[1].clear()
	g.refreshLegality(Ally)
	g.refreshLegality(Enemy)
	return g.pos.Board.Observation()
}

// refreshLegality 重新生成 side 的全部合法走法，写进合法表。
func (g *Game) refreshLegality(side Side) *LegalityArray {
	moves := g.legalMoves(side, g.buf[:0])
	g.buf = moves
	la := &g.legal[side.index()]
	la.reset(moves)
	return la
}

// legalMoves 把 side 的合法走法追加到 moves，不动合法表。
// RejectSelfCheck 打开时去掉走完仍被将的走法（吃帅除外）。
func (g *Game) legalMoves(side Side, moves []Move) []Move {
	start := len(moves)
	moves = g.pos.GenerateMoves(side, moves)
	if !g.cfg.RejectSelfCheck {
		return moves
	}
	kept := moves[:start]
	for _, mv := range moves[start:] {
		np := g.pos
		if captured := np.apply(side, mv); captured.ID() != General && np.IsInCheck(side) {
			continue
		}
		kept = append(kept, mv)
	}
	return kept
}

// checksIn 从 moves 里挑出落点是对方帅的动作。
func (g *Game) checksIn(side Side, moves []Move) []Action {
	target := g.pos.generalSquare(side.Opponent())
	if target == -1 {
		return nil
	}
	var out []Action
	for _, mv := range moves {
		if int(mv.To) == target {
			out = append(out, mv.Action())
		}
	}
	return out
}

// checkingActions 重算 side 的合法表，返回其中的将军动作。
func (g *Game) checkingActions(side Side) []Action {
	return g.checksIn(side, g.refreshLegality(side).moves)
}

// Step 执行一步：
//  1. 动作越界返回 ErrInvalidAction，不改状态；
//  2. 对局已结束：原样返回盘面、奖励 0，第一次会打一条警告；
//  3. 不在当前方合法表里：返回 IllegalMovePenalty，不改盘面；
//  4. 走子、吃子计分；吃帅直接结束；
//  5. 更新长将历史，达到上限将军方判负；否则换边。
func (g *Game) Step(a Action) (StepResult, error) {
	if !a.Valid() {
		return StepResult{}, errors.Wrapf(ErrInvalidAction, "action %d not in [0,%d)", a, NumActions)
	}
	if err := g.pos.CheckConsistency(); err != nil {
		return StepResult{}, err
	}

	if g.done {
		if !g.warned {
			g.warned = true
			g.cfg.Logger.Printf("WARN: Step called after the game has ended (%v); call Reset first", g.outcome.Kind)
		}
		return StepResult{
			Observation: g.Observation(),
			Done:        true,
			Info:        StepInfo{PostTerminal: true, Outcome: g.outcome},
		}, nil
	}

	mover := g.turn
	if !g.legal[mover.index()].Legal(a) {
		return StepResult{
			Observation: g.Observation(),
			Reward:      IllegalMovePenalty,
			Info:        StepInfo{Mover: mover, Move: a.Decode(), Illegal: true},
		}, nil
	}

	pre := g.checkingActions(mover)

	m := a.Decode()
	captured := g.pos.apply(mover, m)
	info := StepInfo{Mover: mover, Move: m, Captured: captured}
	reward := captured.Type().Points()

	if captured.ID() == General {
		g.finish(Outcome{Kind: OutcomeGeneralCaptured, Winner: mover, Loser: mover.Opponent()})
		info.Outcome = g.outcome
		return StepResult{Observation: g.Observation(), Reward: GeneralPoints, Done: true, Info: info}, nil
	}

	post := g.checkingActions(mover)
	info.Checks = post
	if _, n := g.jiang[mover.index()].record(pre, post); n >= g.cfg.MaxPerpetualChecks {
		g.finish(Outcome{Kind: OutcomePerpetualCheck, Winner: mover.Opponent(), Loser: mover})
		info.Outcome = g.outcome
		return StepResult{Observation: g.Observation(), Reward: LossReward, Done: true, Info: info}, nil
	}

	g.turn = mover.Opponent()
	g.refreshLegality(g.turn)
	return StepResult{Observation: g.Observation(), Reward: reward, Info: info}, nil
}

func (g *Game) finish(o Outcome) {
	g.done = true
	g.outcome = o
}

func (g *Game) Observation() Observation { return g.pos.Board.Observation() }

// Position 返回当前局面的拷贝。
func (g *Game) Position() Position { return g.pos }

func (g *Game) Turn() Side       { return g.turn }
func (g *Game) Done() bool       { return g.done }
func (g *Game) Outcome() Outcome { return g.outcome }
func (g *Game) Config() Config   { return g.cfg }

// ColorOf 返回某一方的颜色。
func (g *Game) ColorOf(side Side) Color {
	if side == Ally {
		return g.cfg.AllyColor
	}
	return g.cfg.AllyColor.Other()
}

// Legality 返回 side 最近一次重算的合法表，只读。
func (g *Game) Legality(side Side) *LegalityArray { return &g.legal[side.index()] }

// LegalActions 返回 side 的合法动作（升序）。
func (g *Game) LegalActions(side Side) []Action {
	return g.legal[side.index()].Actions()
}

// LegalActionsForPiece 按 [(id-1)*8100, id*8100) 过滤出某个棋子的合法走法。
func (g *Game) LegalActionsForPiece(side Side, id PieceID) []Move {
	if !id.Valid() {
		return nil
	}
	lo, hi := PieceActionRange(id)
	var out []Move
	for _, mv := range g.legal[side.index()].moves {
		if a := mv.Action(); a >= lo && a < hi {
			out = append(out, mv)
		}
	}
	return out
}

// Pieces 返回 side 的 16 个棋子记录。
func (g *Game) Pieces(side Side) []PieceRecord { return g.pos.Pieces.Pieces(side) }

// JiangHistory 返回 side 的长将计数拷贝。
func (g *Game) JiangHistory(side Side) map[Action]int {
	return g.jiang[side.index()].Snapshot()
}

// CheckingActions 返回 side 当前的将军动作（升序），和 Step 用同一套合法性过滤，
// 但不改动合法表。
func (g *Game) CheckingActions(side Side) []Action {
	out := g.checksIn(side, g.legalMoves(side, nil))
	slices.Sort(out)
	return out
}

// InCheck 判断 side 的帅当前是否被将。
func (g *Game) InCheck(side Side) bool { return g.pos.IsInCheck(side) }

// FEN 返回当前局面的文本编码。
func (g *Game) FEN() string { return EncodePosition(&g.pos, g.turn) }
