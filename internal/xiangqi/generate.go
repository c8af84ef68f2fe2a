package xiangqi

import "golang.org/x/exp/slices"

// genPieceMoves 按棋子类型分派到对应的走法生成器。
func genPieceMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	switch rec.Type {
	case PieceGeneral:
		genGeneralMoves(p, rec, moves)
	case PieceAdvisor:
		genAdvisorMoves(p, rec, moves)
	case PieceElephant:
		genElephantMoves(p, rec, moves)
	case PieceHorse:
		genHorseMoves(p, rec, moves)
	case PieceChariot:
		genChariotMoves(p, rec, moves)
	case PieceCannon:
		genCannonMoves(p, rec, moves)
	case PieceSoldier:
		genSoldierMoves(p, rec, moves)
	}
}

// GenerateMoves 把 side 这一方所有活着的棋子的走法追加到 moves（不检查送将）。
func (p *Position) GenerateMoves(side Side, moves []Move) []Move {
	for id := PieceID(1); id <= NumPieceIDs; id++ {
		rec := p.Pieces.get(side, id)
		if !rec.Alive {
			continue
		}
		genPieceMoves(p, rec, &moves)
	}
	return moves
}

// IsAttacked 判断 sq 是否能被 bySide 的某一步走到。
func (p *Position) IsAttacked(sq int, bySide Side) bool {
	var buf [32]Move
	for id := PieceID(1); id <= NumPieceIDs; id++ {
		rec := p.Pieces.get(bySide, id)
		if !rec.Alive {
			continue
		}
		// 士、象过不了河也出不了自己的半场，将不了军
		if rec.Type == PieceAdvisor || rec.Type == PieceElephant {
			continue
		}
		moves := buf[:0]
		genPieceMoves(p, rec, &moves)
		for _, mv := range moves {
			if int(mv.To) == sq {
				return true
			}
		}
	}
	return false
}

// IsInCheck 判断 side 这一方的帅是否被将军。
func (p *Position) IsInCheck(side Side) bool {
	sq := p.generalSquare(side)
	if sq == -1 {
		return false
	}
	return p.IsAttacked(sq, side.Opponent())
}

// LegalityArray 以动作下标为索引的合法性表，每方一份。
// 重算时只清掉上一轮置位的下标，不整表清零。
type LegalityArray struct {
	mask  [NumActions]bool
	moves []Move
}

func (l *LegalityArray) reset(moves []Move) {
	for _, mv := range l.moves {
		l.mask[mv.Action()] = false
	}
	l.moves = append(l.moves[:0], moves...)
	for _, mv := range l.moves {
		l.mask[mv.Action()] = true
	}
}

func (l *LegalityArray) Legal(a Action) bool {
	if !a.Valid() {
		return false
	}
	return l.mask[a]
}

func (l *LegalityArray) Len() int { return len(l.moves) }

// Moves 返回生成顺序下的合法走法拷贝。
func (l *LegalityArray) Moves() []Move {
	return append([]Move(nil), l.moves...)
}

// Actions 返回升序排列的合法动作下标。
func (l *LegalityArray) Actions() []Action {
	out := make([]Action, 0, len(l.moves))
	for _, mv := range l.moves {
		out = append(out, mv.Action())
	}
	slices.Sort(out)
	return out
}
