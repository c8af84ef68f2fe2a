package xiangqi

import "math"

// Side 是棋盘朝向：Ally 固定在下方（第 5..9 行），Enemy 在上方（第 0..4 行）。
// 数值就是盘面上棋子编码的符号。
type Side int8

const (
	Enemy  Side = -1
	NoSide Side = 0
	Ally   Side = 1
)

func (s Side) Opponent() Side { return -s }

func (s Side) String() string {
	switch s {
	case Ally:
		return "ally"
	case Enemy:
		return "enemy"
	default:
		return "none"
	}
}

// 注册表下标：Ally=0，Enemy=1
func (s Side) index() int {
	if s == Enemy {
		return 1
	}
	return 0
}

// Color 只决定谁先走：红先。
type Color int8

const (
	Red   Color = 0
	Black Color = 1
)

func (c Color) Other() Color {
	if c == Red {
		return Black
	}
	return Red
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "red"
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 将 / 帅
	PieceAdvisor            // 士 / 仕
	PieceElephant           // 象 / 相
	PieceHorse              // 马
	PieceChariot            // 车
	PieceCannon             // 炮
	PieceSoldier            // 卒 / 兵
)

var pieceTypeNames = [...]string{"empty", "general", "advisor", "elephant", "horse", "chariot", "cannon", "soldier"}

func (t PieceType) String() string {
	if t < 0 || int(t) >= len(pieceTypeNames) {
		return "unknown"
	}
	return pieceTypeNames[t]
}

// 吃子得分。帅的分值用最大有限浮点数当“无穷”，保证加减法不出 NaN。
const (
	GeneralPoints      = math.MaxFloat64
	IllegalMovePenalty = -10.0
	LossReward         = -GeneralPoints
)

var piecePoints = [...]float64{
	PieceNone:     0,
	PieceGeneral:  GeneralPoints,
	PieceAdvisor:  2.0,
	PieceElephant: 2.0,
	PieceHorse:    4.0,
	PieceChariot:  9.0,
	PieceCannon:   4.5,
	PieceSoldier:  1.0,
}

// Points 返回吃掉这种棋子的奖励。
func (t PieceType) Points() float64 {
	if t < 0 || int(t) >= len(piecePoints) {
		return 0
	}
	return piecePoints[t]
}

// PieceID 是每方 16 个棋子的固定编号（1..16），同时也是盘面编码的绝对值。
type PieceID int8

const (
	General PieceID = iota + 1
	Advisor1
	Advisor2
	Elephant1
	Elephant2
	Horse1
	Horse2
	Chariot1
	Chariot2
	Cannon1
	Cannon2
	Soldier1
	Soldier2
	Soldier3
	Soldier4
	Soldier5
)

const NumPieceIDs = 16

var pieceTypeOf = [NumPieceIDs + 1]PieceType{
	PieceNone,
	PieceGeneral,
	PieceAdvisor, PieceAdvisor,
	PieceElephant, PieceElephant,
	PieceHorse, PieceHorse,
	PieceChariot, PieceChariot,
	PieceCannon, PieceCannon,
	PieceSoldier, PieceSoldier, PieceSoldier, PieceSoldier, PieceSoldier,
}

func (id PieceID) Valid() bool { return id >= 1 && id <= NumPieceIDs }

func (id PieceID) Type() PieceType {
	if !id.Valid() {
		return PieceNone
	}
	return pieceTypeOf[id]
}

// 每种棋子占用的编号区间，按本方阅读顺序依次分配
var idsOfType = map[PieceType][]PieceID{
	PieceGeneral:  {General},
	PieceAdvisor:  {Advisor1, Advisor2},
	PieceElephant: {Elephant1, Elephant2},
	PieceHorse:    {Horse1, Horse2},
	PieceChariot:  {Chariot1, Chariot2},
	PieceCannon:   {Cannon1, Cannon2},
	PieceSoldier:  {Soldier1, Soldier2, Soldier3, Soldier4, Soldier5},
}

// Piece 是盘面格子的值：0=空；>0 Ally；<0 Enemy；abs=PieceID
type Piece int8

func makePiece(side Side, id PieceID) Piece {
	if side == NoSide || !id.Valid() {
		return 0
	}
	return Piece(int8(side) * int8(id))
}

func (p Piece) ID() PieceID {
	if p < 0 {
		return PieceID(-p)
	}
	return PieceID(p)
}

func (p Piece) Side() Side {
	switch {
	case p > 0:
		return Ally
	case p < 0:
		return Enemy
	default:
		return NoSide
	}
}

func (p Piece) Type() PieceType { return p.ID().Type() }
