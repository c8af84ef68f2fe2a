package xiangqi

import (
	"math/rand"
	"testing"
)

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := newInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, _, err := DecodePosition(InitialFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash != decoded.CalculateHash() {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, decoded.CalculateHash())
	}
}

func TestStepHashIncrementalMatchesFullRecompute(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := newTestGame(t, DefaultConfig())
	for ply := 0; ply < 200 && !g.Done(); ply++ {
		actions := g.LegalActions(g.Turn())
		if len(actions) == 0 {
			return
		}
		a := actions[rng.Intn(len(actions))]
		if _, err := g.Step(a); err != nil {
			t.Fatalf("ply %d step %v: %v", ply, a.Decode(), err)
		}
		pos := g.Position()
		if got, want := pos.Hash, pos.CalculateHash(); got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%v", ply, got, want, a.Decode())
		}
		if err := pos.CheckConsistency(); err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
	}
}

func TestHashDependsOnPieceIdentity(t *testing.T) {
	a := newInitialPosition()
	b := newInitialPosition()
	// 交换两只兵的编号：盘面种类一样，哈希应不同
	b.remove(indexOf(6, 0))
	b.remove(indexOf(6, 2))
	b.place(Ally, Soldier2, 6, 0)
	b.place(Ally, Soldier1, 6, 2)
	if a.Hash == b.Hash {
		t.Fatalf("hash ignores piece ids")
	}
	if b.Hash != b.CalculateHash() {
		t.Fatalf("incremental hash drifted after remove/place")
	}
}

func TestZobristKeysDistinct(t *testing.T) {
	seen := make(map[uint64]bool, zobristKeys)
	for _, side := range [2]Side{Ally, Enemy} {
		for id := PieceID(1); id <= NumPieceIDs; id++ {
			for sq := 0; sq < NumSquares; sq++ {
				k := pieceHashKey(makePiece(side, id), sq)
				if k == 0 || seen[k] {
					t.Fatalf("key for %v piece %d square %d is zero or repeated", side, id, sq)
				}
				seen[k] = true
			}
		}
	}
}
