package xiangqi

import "sync"

// 键表：[side][pieceID][square]，pieceID 0 保留不用
const zobristKeys = 2 * (NumPieceIDs + 1) * NumSquares

var (
	zobristOnce   sync.Once
	zobristPieces [2][NumPieceIDs + 1][NumSquares]uint64
)

// splitmix64 推进 state 并返回下一个键
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// initZobrist 用表大小做种子，键表内容只和棋盘规格有关，跨进程稳定。
func initZobrist() {
	zobristOnce.Do(func() {
		state := uint64(zobristKeys)
		for side := range zobristPieces {
			for id := PieceID(1); id <= NumPieceIDs; id++ {
				for sq := range zobristPieces[side][id] {
					zobristPieces[side][id][sq] = splitmix64(&state)
				}
			}
		}
	})
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || sq < 0 || sq >= NumSquares || !pc.ID().Valid() {
		return 0
	}
	initZobrist()
	return zobristPieces[pc.Side().index()][pc.ID()][sq]
}

// CalculateHash 全量计算当前盘面的哈希。place/remove/lift 增量维护 Hash，
// 两者不一致说明盘面被绕过它们改过。
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range p.Board.Cells {
		h ^= pieceHashKey(pc, sq)
	}
	return h
}
