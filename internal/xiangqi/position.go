package xiangqi

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// PieceRecord 是注册表里的一条棋子记录。被吃的子不会删除，只标记 Alive=false，
// 并保留最后的位置。
type PieceRecord struct {
	ID    PieceID
	Type  PieceType
	Side  Side
	Row   int
	Col   int
	Alive bool
}

func (r *PieceRecord) Square() Square { return SquareAt(r.Row, r.Col) }

// Registry 按方保存 16 个棋子记录，下标 0 不用。
type Registry struct {
	records [2][NumPieceIDs + 1]PieceRecord
}

func (reg *Registry) get(side Side, id PieceID) *PieceRecord {
	return &reg.records[side.index()][id]
}

// Pieces 返回一方全部 16 个记录的拷贝（含已阵亡的）。
func (reg *Registry) Pieces(side Side) []PieceRecord {
	out := make([]PieceRecord, 0, NumPieceIDs)
	for id := PieceID(1); id <= NumPieceIDs; id++ {
		out = append(out, reg.records[side.index()][id])
	}
	return out
}

// Position = 棋盘 + 棋子注册表。两份数据冗余，所有修改都走 place/remove/apply，保证同步。
type Position struct {
	Board  Board
	Pieces Registry
	Hash   uint64
}

// place 把棋子写到 (row,col)，并更新记录里的位置。
func (p *Position) place(side Side, id PieceID, row, col int) {
	sq := indexOf(row, col)
	pc := makePiece(side, id)
	rec := p.Pieces.get(side, id)
	rec.ID = id
	rec.Type = id.Type()
	rec.Side = side
	rec.Row = row
	rec.Col = col
	rec.Alive = true
	p.Board.Cells[sq] = pc
	p.Hash ^= pieceHashKey(pc, sq)
}

// remove 清空格子并把上面的子标记为阵亡；返回被移除的子。
func (p *Position) remove(sq int) Piece {
	pc := p.Board.Cells[sq]
	if pc == 0 {
		return 0
	}
	p.Pieces.get(pc.Side(), pc.ID()).Alive = false
	p.Board.Cells[sq] = 0
	p.Hash ^= pieceHashKey(pc, sq)
	return pc
}

// lift 只清空起点格，不改变记录的存活状态。
func (p *Position) lift(sq int) {
	pc := p.Board.Cells[sq]
	if pc == 0 {
		return
	}
	p.Board.Cells[sq] = 0
	p.Hash ^= pieceHashKey(pc, sq)
}

// apply 执行一步（默认已经是合法招），返回被吃的子（没有则为 0）。
func (p *Position) apply(side Side, m Move) Piece {
	from, to := int(m.From), int(m.To)
	captured := p.remove(to)
	p.lift(from)
	p.place(side, m.Piece, rowOf(to), colOf(to))
	return captured
}

func newPositionFromLayout(layout [Rows][Cols]int8) Position {
	var p Position
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			v := Piece(layout[r][c])
			if v == 0 {
				continue
			}
			p.place(v.Side(), v.ID(), r, c)
		}
	}
	p.fillDead()
	return p
}

// 开局表里没出现的编号（残局）也要有记录，标成已阵亡
func (p *Position) fillDead() {
	for _, side := range [2]Side{Ally, Enemy} {
		for id := PieceID(1); id <= NumPieceIDs; id++ {
			rec := p.Pieces.get(side, id)
			if rec.ID != 0 {
				continue
			}
			rec.ID = id
			rec.Type = id.Type()
			rec.Side = side
		}
	}
}

func newInitialPosition() Position {
	return newPositionFromLayout(initialLayout)
}

// generalSquare 返回一方帅的位置；帅已被吃时返回 -1。
func (p *Position) generalSquare(side Side) int {
	rec := p.Pieces.get(side, General)
	if !rec.Alive {
		return -1
	}
	return int(rec.Square())
}

// generalsFace：两帅同列且中间无子。只在九宫里找，帅不可能离开九宫。
func (p *Position) generalsFace() bool {
	ally, enemy := -1, -1
	for r := 0; r < Rows; r++ {
		if r == 3 {
			r = 7
		}
		for c := 3; c <= 5; c++ {
			pc := p.Board.Cells[indexOf(r, c)]
			if pc.ID() != General {
				continue
			}
			if pc.Side() == Ally {
				ally = indexOf(r, c)
			} else {
				enemy = indexOf(r, c)
			}
		}
	}
	if ally == -1 || enemy == -1 {
		// 有一方帅已经没了：对局已结束，不存在照面
		return false
	}
	col := colOf(ally)
	if colOf(enemy) != col {
		return false
	}
	for r := rowOf(enemy) + 1; r < rowOf(ally); r++ {
		if p.Board.Cells[indexOf(r, col)] != 0 {
			return false
		}
	}
	return true
}

// facesAfter 模拟 from->to 之后两帅是否照面，盘面原样恢复。
func (p *Position) facesAfter(from, to int) bool {
	moving, captured := p.Board.Cells[from], p.Board.Cells[to]
	p.Board.Cells[to] = moving
	p.Board.Cells[from] = 0
	face := p.generalsFace()
	p.Board.Cells[from] = moving
	p.Board.Cells[to] = captured
	return face
}

// CheckConsistency 核对棋盘和注册表是否一致，返回全部不一致项。
func (p *Position) CheckConsistency() error {
	var result error
	for _, side := range [2]Side{Ally, Enemy} {
		for id := PieceID(1); id <= NumPieceIDs; id++ {
			rec := p.Pieces.get(side, id)
			if rec.ID != id || rec.Side != side || rec.Type != id.Type() {
				result = multierror.Append(result, fmt.Errorf("%v piece %d: malformed record %+v", side, id, *rec))
				continue
			}
			if !rec.Alive {
				continue
			}
			if !onBoard(rec.Row, rec.Col) {
				result = multierror.Append(result, fmt.Errorf("%v piece %d: off board at (%d,%d)", side, id, rec.Row, rec.Col))
				continue
			}
			if got := p.Board.Cells[indexOf(rec.Row, rec.Col)]; got != makePiece(side, id) {
				result = multierror.Append(result, fmt.Errorf("%v piece %d: board has %d at (%d,%d)", side, id, got, rec.Row, rec.Col))
			}
		}
	}
	for sq, pc := range p.Board.Cells {
		if pc == 0 {
			continue
		}
		if !pc.ID().Valid() {
			result = multierror.Append(result, fmt.Errorf("square %d: bad cell value %d", sq, pc))
			continue
		}
		rec := p.Pieces.get(pc.Side(), pc.ID())
		if !rec.Alive {
			result = multierror.Append(result, fmt.Errorf("square %d: %v piece %d is dead", sq, pc.Side(), pc.ID()))
			continue
		}
		if indexOf(rec.Row, rec.Col) != sq {
			result = multierror.Append(result, fmt.Errorf("square %d: %v piece %d recorded at (%d,%d)", sq, pc.Side(), pc.ID(), rec.Row, rec.Col))
		}
	}
	if h := p.CalculateHash(); h != p.Hash {
		result = multierror.Append(result, fmt.Errorf("hash mismatch: got=%d want=%d", p.Hash, h))
	}
	if result != nil {
		return errors.Wrap(ErrStateCorruption, result.Error())
	}
	return nil
}
