package xiangqi

import (
	"sort"
	"strings"
	"testing"
)

// 默认两帅错开一列，避免照面规则干扰走法测试
var (
	allyKing  = SquareAt(9, 3)
	enemyKing = SquareAt(0, 5)
)

func fenOf(pieces map[Square]rune) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			ch, ok := pieces[SquareAt(r, c)]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(ch)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

func mustPosition(t *testing.T, pieces map[Square]rune) Position {
	t.Helper()
	if !hasRune(pieces, 'K') {
		pieces[allyKing] = 'K'
	}
	if !hasRune(pieces, 'k') {
		pieces[enemyKing] = 'k'
	}
	pos, _, err := DecodePosition(fenOf(pieces))
	if err != nil {
		t.Fatalf("decode %q: %v", fenOf(pieces), err)
	}
	return pos
}

func hasRune(pieces map[Square]rune, want rune) bool {
	for _, ch := range pieces {
		if ch == want {
			return true
		}
	}
	return false
}

func destinations(t *testing.T, p *Position, from Square) []Square {
	t.Helper()
	pc := p.Board.Cells[from]
	if pc == 0 {
		t.Fatalf("no piece at (%d,%d)", from.Row(), from.Col())
	}
	var moves []Move
	genPieceMoves(p, p.Pieces.get(pc.Side(), pc.ID()), &moves)
	out := make([]Square, 0, len(moves))
	for _, mv := range moves {
		if mv.From != from || mv.Piece != pc.ID() {
			t.Fatalf("generator produced foreign move %v", mv)
		}
		out = append(out, mv.To)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func squares(rc ...[2]int) []Square {
	out := make([]Square, 0, len(rc))
	for _, v := range rc {
		out = append(out, SquareAt(v[0], v[1]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sameSquares(a, b []Square) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInitialLegalMoveCount(t *testing.T) {
	pos := newInitialPosition()
	for _, side := range []Side{Ally, Enemy} {
		if n := len(pos.GenerateMoves(side, nil)); n != 44 {
			t.Fatalf("%v: %d moves from the initial position, want 44", side, n)
		}
	}
}

func TestHorseLegBlocking(t *testing.T) {
	pos := newInitialPosition()
	got := destinations(t, &pos, SquareAt(9, 1))
	want := squares([2]int{7, 0}, [2]int{7, 2})
	if !sameSquares(got, want) {
		t.Fatalf("horse (9,1): got %v want %v", got, want)
	}

	// 四条腿全被堵死
	p := mustPosition(t, map[Square]rune{
		SquareAt(5, 4): 'N',
		SquareAt(4, 4): 'p', SquareAt(6, 4): 'P',
		SquareAt(5, 3): 'p', SquareAt(5, 5): 'P',
	})
	if got := destinations(t, &p, SquareAt(5, 4)); len(got) != 0 {
		t.Fatalf("fully hobbled horse moved to %v", got)
	}
}

func letterFor(side Side, pt PieceType) rune {
	ch := pieceTypeToLetter[pt]
	if side == Ally {
		return ch - 'a' + 'A'
	}
	return ch
}

func TestPalaceConfinement(t *testing.T) {
	for _, side := range []Side{Ally, Enemy} {
		back, oppBack := 9, 0
		rows := [3]int{7, 8, 9}
		if side == Enemy {
			back, oppBack = 0, 9
			rows = [3]int{0, 1, 2}
		}
		for _, r := range rows {
			for c := 3; c <= 5; c++ {
				for _, pt := range []PieceType{PieceGeneral, PieceAdvisor} {
					sq := SquareAt(r, c)
					pieces := map[Square]rune{sq: letterFor(side, pt)}
					ownCol := c
					if pt == PieceAdvisor {
						ownCol = 3
						if sq == SquareAt(back, 3) {
							ownCol = 5
						}
						pieces[SquareAt(back, ownCol)] = letterFor(side, PieceGeneral)
					}
					oppCol := 3
					if ownCol == 3 {
						oppCol = 5
					}
					pieces[SquareAt(oppBack, oppCol)] = letterFor(side.Opponent(), PieceGeneral)

					p := mustPosition(t, pieces)
					got := destinations(t, &p, sq)
					if len(got) == 0 {
						t.Fatalf("%v %v at (%d,%d) has no moves", side, pt, r, c)
					}
					for _, to := range got {
						if !inPalace(side, to.Row(), to.Col()) {
							t.Fatalf("%v %v at (%d,%d) left the palace to (%d,%d)", side, pt, r, c, to.Row(), to.Col())
						}
					}
				}
			}
		}
	}
}

func TestElephantRiverAndEye(t *testing.T) {
	p := mustPosition(t, map[Square]rune{
		SquareAt(5, 2): 'B',
		SquareAt(4, 6): 'b',
	})
	if got, want := destinations(t, &p, SquareAt(5, 2)), squares([2]int{7, 0}, [2]int{7, 4}); !sameSquares(got, want) {
		t.Fatalf("ally elephant: got %v want %v", got, want)
	}
	if got, want := destinations(t, &p, SquareAt(4, 6)), squares([2]int{2, 4}, [2]int{2, 8}); !sameSquares(got, want) {
		t.Fatalf("enemy elephant: got %v want %v", got, want)
	}

	// 塞象眼
	p = mustPosition(t, map[Square]rune{
		SquareAt(9, 2): 'B',
		SquareAt(8, 3): 'p',
	})
	if got, want := destinations(t, &p, SquareAt(9, 2)), squares([2]int{7, 0}); !sameSquares(got, want) {
		t.Fatalf("blocked eye: got %v want %v", got, want)
	}
}

func TestSoldierMoves(t *testing.T) {
	p := mustPosition(t, map[Square]rune{
		SquareAt(6, 4): 'P', // 未过河
		SquareAt(4, 2): 'P', // 已过河
		SquareAt(0, 0): 'P', // 底线：不能再前进
		SquareAt(3, 6): 'p', // 未过河
		SquareAt(5, 7): 'p', // 已过河
	})
	tests := []struct {
		name string
		from Square
		want []Square
	}{
		{"ally before river", SquareAt(6, 4), squares([2]int{5, 4})},
		{"ally across river", SquareAt(4, 2), squares([2]int{3, 2}, [2]int{4, 1}, [2]int{4, 3})},
		{"ally last rank", SquareAt(0, 0), squares([2]int{0, 1})},
		{"enemy before river", SquareAt(3, 6), squares([2]int{4, 6})},
		{"enemy across river", SquareAt(5, 7), squares([2]int{6, 7}, [2]int{5, 6}, [2]int{5, 8})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := destinations(t, &p, tt.from)
			if !sameSquares(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestCannonScreenRule(t *testing.T) {
	p := mustPosition(t, map[Square]rune{
		SquareAt(7, 1): 'C',
		SquareAt(6, 1): 'P', // 炮架
		SquareAt(5, 1): 'p', // 隔一子可吃
	})
	var forward []Square
	for _, to := range destinations(t, &p, SquareAt(7, 1)) {
		if to.Col() == 1 && to.Row() < 7 {
			forward = append(forward, to)
		}
	}
	if !sameSquares(forward, squares([2]int{5, 1})) {
		t.Fatalf("cannon forward destinations %v, want only (5,1)", forward)
	}

	// 贴身的对方子不能直接吃；炮架后第二个子挡住后面
	p = mustPosition(t, map[Square]rune{
		SquareAt(7, 1): 'C',
		SquareAt(6, 1): 'p',
		SquareAt(4, 1): 'P',
		SquareAt(2, 1): 'p',
	})
	forward = forward[:0]
	for _, to := range destinations(t, &p, SquareAt(7, 1)) {
		if to.Col() == 1 && to.Row() < 7 {
			forward = append(forward, to)
		}
	}
	if len(forward) != 0 {
		t.Fatalf("cannon captured without screen or over own piece: %v", forward)
	}
}

func TestChariotSlideAndCapture(t *testing.T) {
	p := mustPosition(t, map[Square]rune{
		SquareAt(5, 0): 'R',
		SquareAt(2, 0): 'p',
		SquareAt(5, 3): 'P',
	})
	want := squares(
		[2]int{4, 0}, [2]int{3, 0}, [2]int{2, 0}, // 向上吃到 (2,0)
		[2]int{6, 0}, [2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0},
		[2]int{5, 1}, [2]int{5, 2}, // 被自己的兵挡住
	)
	if got := destinations(t, &p, SquareAt(5, 0)); !sameSquares(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFlyingGeneralRejected(t *testing.T) {
	// 车是两帅之间唯一的子：离开该列的走法全部非法
	p := mustPosition(t, map[Square]rune{
		SquareAt(9, 4): 'K',
		SquareAt(0, 4): 'k',
		SquareAt(5, 4): 'R',
	})
	for _, to := range destinations(t, &p, SquareAt(5, 4)) {
		if to.Col() != 4 {
			t.Fatalf("pinned chariot left the file to (%d,%d)", to.Row(), to.Col())
		}
	}

	// 帅不能走到照面的位置
	p = mustPosition(t, map[Square]rune{
		SquareAt(9, 3): 'K',
		SquareAt(0, 4): 'k',
	})
	for _, to := range destinations(t, &p, SquareAt(9, 3)) {
		if to == SquareAt(9, 4) {
			t.Fatalf("general walked into the open file")
		}
	}

	// 炮架是唯一挡子时，炮移走也不行
	p = mustPosition(t, map[Square]rune{
		SquareAt(9, 4): 'K',
		SquareAt(0, 4): 'k',
		SquareAt(4, 4): 'c',
	})
	for _, to := range destinations(t, &p, SquareAt(4, 4)) {
		if to.Col() != 4 {
			t.Fatalf("pinned cannon left the file to (%d,%d)", to.Row(), to.Col())
		}
	}
}

func TestNoFriendlyCaptures(t *testing.T) {
	pos := newInitialPosition()
	for _, side := range []Side{Ally, Enemy} {
		for _, mv := range pos.GenerateMoves(side, nil) {
			if dst := pos.Board.Cells[mv.To]; dst != 0 && dst.Side() == side {
				t.Fatalf("%v move %v lands on own piece", side, mv)
			}
		}
	}
}

func TestIsInCheck(t *testing.T) {
	p := mustPosition(t, map[Square]rune{
		SquareAt(9, 3): 'K',
		SquareAt(0, 5): 'k',
		SquareAt(3, 5): 'R',
	})
	if !p.IsInCheck(Enemy) {
		t.Fatalf("enemy general should be in check from chariot on (3,5)")
	}
	if p.IsInCheck(Ally) {
		t.Fatalf("ally general is not attacked")
	}
}
