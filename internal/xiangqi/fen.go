package xiangqi

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// 局面文本：10 行用“/”隔开（第 0 行在前），空位用数字压缩，大写 Ally，小写 Enemy；
// 空格后 a/e 表示轮到哪一方。棋子编号不写进文本，解码时按各自的阅读顺序
// （从本方底线往前、从本方左手往右）依次分配，开局局面可以原样还原。

// InitialFEN 是开局局面，不带走子方（由颜色决定）。
const InitialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR"

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceTypeToLetter = map[PieceType]rune{
	PieceGeneral:  'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceChariot:  'r',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

var ErrInvalidFEN = errors.New("invalid FEN")

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	ch, ok := pieceTypeToLetter[p.Type()]
	if !ok {
		return '.'
	}
	if p.Side() == Ally {
		return unicode.ToUpper(ch)
	}
	return ch
}

// EncodePosition 把局面编码成文本；turn 为 NoSide 时不写走子方。
func EncodePosition(p *Position, turn Side) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Cells[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	switch turn {
	case Ally:
		sb.WriteString(" a")
	case Enemy:
		sb.WriteString(" e")
	}
	return sb.String()
}

// DecodePosition 解析局面文本，返回局面和走子方（没写时为 NoSide）。
func DecodePosition(fen string) (Position, Side, error) {
	var pos Position
	parts := strings.Fields(fen)
	if len(parts) == 0 || len(parts) > 2 {
		return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "%q: want board [turn]", fen)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "%q: %d ranks", fen, len(rows))
	}

	var types [Rows][Cols]PieceType
	var sides [Rows][Cols]Side
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "rank %d too long", r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pt, ok := letterToPieceType[unicode.ToLower(ch)]
			if !ok {
				return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "unknown piece letter %q", ch)
			}
			types[r][c] = pt
			sides[r][c] = Enemy
			if unicode.IsUpper(ch) {
				sides[r][c] = Ally
			}
			c++
		}
		if c != Cols {
			return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "rank %d has %d files", r, c)
		}
	}

	var layout [Rows][Cols]int8
	for _, side := range [2]Side{Ally, Enemy} {
		used := make(map[PieceType]int)
		for i := 0; i < NumSquares; i++ {
			r, c := readingOrder(side, i)
			if sides[r][c] != side {
				continue
			}
			pt := types[r][c]
			ids := idsOfType[pt]
			if used[pt] >= len(ids) {
				return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "too many %v %v pieces", side, pt)
			}
			layout[r][c] = int8(makePiece(side, ids[used[pt]]))
			used[pt]++
		}
		if used[PieceGeneral] != 1 {
			return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "%v must have exactly one general", side)
		}
	}
	pos = newPositionFromLayout(layout)
	for _, side := range [2]Side{Ally, Enemy} {
		rec := pos.Pieces.get(side, General)
		if !inPalace(side, rec.Row, rec.Col) {
			return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "%v general outside palace", side)
		}
	}
	if pos.generalsFace() {
		return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "generals face each other on file %d", pos.Pieces.get(Ally, General).Col)
	}

	turn := NoSide
	if len(parts) == 2 {
		switch parts[1] {
		case "a":
			turn = Ally
		case "e":
			turn = Enemy
		default:
			return pos, NoSide, errors.Wrapf(ErrInvalidFEN, "unknown side %q", parts[1])
		}
	}
	return pos, turn, nil
}

// readingOrder：Ally 从第 9 行往上、从左往右；Enemy 旋转 180°。
func readingOrder(side Side, i int) (row, col int) {
	if side == Ally {
		return Rows - 1 - i/Cols, i % Cols
	}
	return i / Cols, Cols - 1 - i%Cols
}

// NewGameFromFEN 从局面文本开一局。
func NewGameFromFEN(cfg Config, fen string) (*Game, error) {
	pos, turn, err := DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return NewFromPosition(cfg, pos, turn)
}
