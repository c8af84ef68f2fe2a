package xiangqi

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	ActionsPerPiece = NumSquares * NumSquares // 8100
	NumActions      = NumPieceIDs * ActionsPerPiece
)

var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrStateCorruption = errors.New("state corruption")
)

// Move 用棋子编号 + 起点 + 终点描述一步。
type Move struct {
	Piece PieceID `json:"piece"`
	From  Square  `json:"from"`
	To    Square  `json:"to"`
}

func (m Move) Action() Action { return encodeAction(m.Piece, m.From, m.To) }

func (m Move) String() string {
	return fmt.Sprintf("%v#%d (%d,%d)->(%d,%d)", m.Piece.Type(), m.Piece,
		m.From.Row(), m.From.Col(), m.To.Row(), m.To.Col())
}

// Action 是动作空间里的下标：
//
//	(pieceID-1)*8100 + from*90 + to
//
// 枚举顺序 pieceID -> from -> to 恰好覆盖 [0, NumActions)。
type Action int32

func encodeAction(id PieceID, from, to Square) Action {
	return Action(int(id-1)*ActionsPerPiece + int(from)*NumSquares + int(to))
}

// EncodeAction 把 (棋子, 起点, 终点) 编码成动作下标。
func EncodeAction(id PieceID, from, to Square) (Action, error) {
	if !id.Valid() || !from.Valid() || !to.Valid() {
		return 0, errors.Wrapf(ErrInvalidAction, "piece=%d from=%d to=%d", id, from, to)
	}
	return encodeAction(id, from, to), nil
}

// MustEncodeAction 同 EncodeAction，参数越界直接 panic，给常量表和测试用。
func MustEncodeAction(id PieceID, from, to Square) Action {
	a, err := EncodeAction(id, from, to)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Action) Valid() bool { return a >= 0 && a < NumActions }

// Decode 是 encodeAction 的逆运算。调用前应先确认 Valid()。
func (a Action) Decode() Move {
	id, rest := int(a)/ActionsPerPiece, int(a)%ActionsPerPiece
	return Move{
		Piece: PieceID(id + 1),
		From:  Square(rest / NumSquares),
		To:    Square(rest % NumSquares),
	}
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d, invalid)", int32(a))
	}
	return fmt.Sprintf("action(%d, %v)", int32(a), a.Decode())
}

// PieceActionRange 返回某个棋子编号占用的动作区间 [lo, hi)。
func PieceActionRange(id PieceID) (lo, hi Action) {
	lo = Action(int(id-1) * ActionsPerPiece)
	return lo, lo + ActionsPerPiece
}
