package xiangqi

// 兵：只能向前一格；过河后可以左右一格；永远不能后退
func genSoldierMoves(p *Position, rec *PieceRecord, moves *[]Move) {
	scan(p, rec, forward(rec.Side), 0, 1, moves)

	if !crossedRiver(rec.Side, rec.Row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		scan(p, rec, 0, dc, 1, moves)
	}
}
