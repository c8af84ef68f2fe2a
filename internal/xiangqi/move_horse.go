package xiangqi

// 马的 8 种“日”字：先直走一格（马腿），再斜走一格
var horseLegMoves = [8]struct {
	Br, Bc int // 马腿
	Dr, Dc int // 终点
}{
	{-1, 0, -2, -1},
	{-1, 0, -2, +1},
	{0, +1, -1, +2},
	{0, +1, +1, +2},
	{+1, 0, +2, +1},
	{+1, 0, +2, -1},
	{0, -1, +1, -2},
	{0, -1, -1, -2},
}

func genHorseMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	for _, m := range horseLegMoves {
		if !onBoard(rec.Row+m.Dr, rec.Col+m.Dc) {
			continue
		}
		if p.Board.Cells[indexOf(rec.Row+m.Br, rec.Col+m.Bc)] != 0 {
			continue // 蹩马腿
		}
		scan(p, rec, m.Dr, m.Dc, 1, moves)
	}
}
