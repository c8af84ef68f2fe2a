package xiangqi

var (
	orthogonalDirs = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	diagonalDirs   = [4][2]int{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
)

// pushMove 记录一步；走完后两帅照面的直接丢弃。
func pushMove(p *Position, rec *PieceRecord, to int, moves *[]Move) {
	from := indexOf(rec.Row, rec.Col)
	if p.facesAfter(from, to) {
		return
	}
	*moves = append(*moves, Move{Piece: rec.ID, From: Square(from), To: Square(to)})
}

// scan 沿 (dr,dc) 最多走 steps 步：出界停；遇己方子停且不记；
// 空格记下继续；遇对方子记下（吃子）后停。
func scan(p *Position, rec *PieceRecord, dr, dc, steps int, moves *[]Move) {
	r, c := rec.Row, rec.Col
	for i := 0; i < steps; i++ {
		r += dr
		c += dc
		if !onBoard(r, c) {
			return
		}
		to := indexOf(r, c)
		dst := p.Board.Cells[to]
		if dst != 0 && dst.Side() == rec.Side {
			return
		}
		pushMove(p, rec, to, moves)
		if dst != 0 {
			return
		}
	}
}

// 帅：九宫内上下左右一格
func genGeneralMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, d := range orthogonalDirs {
		if !inPalace(rec.Side, rec.Row+d[0], rec.Col+d[1]) {
			continue
		}
		scan(p, rec, d[0], d[1], 1, moves)
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, d := range diagonalDirs {
		if !inPalace(rec.Side, rec.Row+d[0], rec.Col+d[1]) {
			continue
		}
		scan(p, rec, d[0], d[1], 1, moves)
	}
}

// 象：田字，不过河，塞象眼
func genElephantMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, d := range diagonalDirs {
		r, c := rec.Row+2*d[0], rec.Col+2*d[1]
		if !onBoard(r, c) || !inOwnHalf(rec.Side, r) {
			continue
		}
		if p.Board.Cells[indexOf(rec.Row+d[0], rec.Col+d[1])] != 0 {
			continue
		}
		scan(p, rec, 2*d[0], 2*d[1], 1, moves)
	}
}

// 车：横竖随便走
func genChariotMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, d := range orthogonalDirs {
		scan(p, rec, d[0], d[1], slideSteps, moves)
	}
}

// 炮：不吃子时和车一样但碰到子就停（该子不能吃）；吃子必须隔一个炮架
func genCannonMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, d := range orthogonalDirs {
		r, c := rec.Row+d[0], rec.Col+d[1]

		// 走子阶段：直到第一个棋子
		for onBoard(r, c) && p.Board.Cells[indexOf(r, c)] == 0 {
			pushMove(p, rec, indexOf(r, c), moves)
			r += d[0]
			c += d[1]
		}
		if !onBoard(r, c) {
			continue
		}

		// 吃子阶段：越过炮架，遇到的第一个子是对方的才能吃
		r += d[0]
		c += d[1]
		for onBoard(r, c) {
			to := indexOf(r, c)
			dst := p.Board.Cells[to]
			if dst != 0 {
				if dst.Side() != rec.Side {
					pushMove(p, rec, to, moves)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}
