package xiangqi

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：Enemy 半场 0..4 行，Ally 半场 5..9 行
	riverEnemyRow = 4
	riverAllyRow  = 5

	// 滑行子的最大步数，不小于棋盘任一边长即可
	slideSteps = 9
)

// Square 是 row*9+col 线性化后的格子编号（0..89）。
type Square int

func SquareAt(row, col int) Square { return Square(indexOf(row, col)) }

func (s Square) Row() int    { return rowOf(int(s)) }
func (s Square) Col() int    { return colOf(int(s)) }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 兵的前进方向：Ally 向上(-1)，Enemy 向下(+1)
func forward(side Side) int {
	if side == Ally {
		return -1
	}
	if side == Enemy {
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	if side == Ally {
		return row <= riverEnemyRow
	}
	if side == Enemy {
		return row >= riverAllyRow
	}
	return false
}

// 是否在本方半场（象不能过河）
func inOwnHalf(side Side, row int) bool {
	if side == Ally {
		return row >= riverAllyRow && row < Rows
	}
	if side == Enemy {
		return row >= 0 && row <= riverEnemyRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Enemy {
		return row >= 0 && row <= 2
	}
	if side == Ally {
		return row >= 7 && row <= 9
	}
	return false
}

type Board struct {
	Cells [NumSquares]Piece
}

func (b *Board) At(row, col int) Piece {
	if !onBoard(row, col) {
		return 0
	}
	return b.Cells[indexOf(row, col)]
}

// Observation 是对外暴露的 10x9 整数盘面。
type Observation [Rows][Cols]int8

func (b *Board) Observation() Observation {
	var o Observation
	for sq, pc := range b.Cells {
		o[rowOf(sq)][colOf(sq)] = int8(pc)
	}
	return o
}

// 标准开局。Enemy 的编号是 Ally 旋转 180° 得到的。
var initialLayout = [Rows][Cols]int8{
	{-9, -7, -5, -3, -1, -2, -4, -6, -8},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, -11, 0, 0, 0, 0, 0, -10, 0},
	{-16, 0, -15, 0, -14, 0, -13, 0, -12},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{12, 0, 13, 0, 14, 0, 15, 0, 16},
	{0, 10, 0, 0, 0, 0, 0, 11, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{8, 6, 4, 2, 1, 3, 5, 7, 9},
}

// InitialObservation 返回开局盘面。
func InitialObservation() Observation {
	var o Observation
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			o[r][c] = initialLayout[r][c]
		}
	}
	return o
}
