package analysis

import (
	"errors"
	"testing"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

func TestExchangeDefendedPawn(t *testing.T) {
	// After 1. e4 e5 2. Nf3 d6: taking e5 trades the knight for a pawn.
	p := mustPosition(t, "rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")

	gain, err := Exchange(p, board.E5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if want := board.PieceValue[board.Pawn] - board.PieceValue[board.Knight]; gain != want {
		t.Errorf("Exchange(e5) = %d, want %d", gain, want)
	}
}

func TestExchangeUndefendedPiece(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/3n4/8/8/8/3QK3 w - - 0 1")

	gain, err := Exchange(p, board.D5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if want := board.PieceValue[board.Knight]; gain != want {
		t.Errorf("Exchange(d5) = %d, want %d", gain, want)
	}
}

func TestExchangeEvenTrade(t *testing.T) {
	// Knight takes knight, pawn takes knight: dead even.
	p := mustPosition(t, "4k3/8/3p4/4n3/8/5N2/8/4K3 w - - 0 1")

	gain, err := Exchange(p, board.E5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if gain != 0 {
		t.Errorf("Exchange(e5) = %d, want 0", gain)
	}
}

func TestExchangePinnedDefenderDoesNotCount(t *testing.T) {
	// The e7 rook covers the e5 knight, but the h4 bishop pins it to the
	// d8 king, so the knight falls for free.
	p := mustPosition(t, "3k4/4r3/8/4n3/7B/5N2/8/6K1 w - - 0 1")

	defenders, err := Defenders(p, board.E5)
	if err != nil {
		t.Fatalf("Defenders: %v", err)
	}
	if len(defenders) != 1 || defenders[0].From != board.E7 {
		t.Fatalf("defenders of e5 = %v, want rook on e7", defenders)
	}

	gain, err := Exchange(p, board.E5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if want := board.PieceValue[board.Knight]; gain != want {
		t.Errorf("Exchange(e5) = %d, want %d", gain, want)
	}
}

func TestExchangePinnedCaptureAlongPinLine(t *testing.T) {
	// The e5 rook is pinned to its king on the e-file, yet may still
	// capture along that file: the e4 queen is on the pin line.
	p := mustPosition(t, "4k3/4r3/8/8/4Q3/8/8/4R1K1 b - - 0 1")

	gain, err := Exchange(p, board.E4)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	// Rook takes queen, rook takes rook back.
	if want := board.PieceValue[board.Queen] - board.PieceValue[board.Rook]; gain != want {
		t.Errorf("Exchange(e4) = %d, want %d", gain, want)
	}
}

func TestExchangeBatteryJoinsThroughVacatedSquare(t *testing.T) {
	// Queen and rook doubled against a pawn defended once. Taking with
	// the queen loses her for two pawns; the rook behind softens the
	// loss by one pawn but cannot save the sequence.
	p := mustPosition(t, "4k3/8/3p4/4p3/8/8/4Q3/4RK2 w - - 0 1")

	gain, err := Exchange(p, board.E5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	want := 2*board.PieceValue[board.Pawn] - board.PieceValue[board.Queen]
	if gain != want {
		t.Errorf("Exchange(e5) = %d, want %d", gain, want)
	}
}

func TestExchangeKingCannotCaptureDefended(t *testing.T) {
	// The f4 king is the only attacker of e5, and d6 guards it: no
	// capture is possible at all.
	p := mustPosition(t, "4k3/8/3p4/4p3/5K2/8/8/8 w - - 0 1")

	gain, err := Exchange(p, board.E5)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if gain != 0 {
		t.Errorf("Exchange(e5) = %d, want 0 with no usable attacker", gain)
	}

	hanging, err := IsHanging(p, board.E5)
	if err != nil {
		t.Fatalf("IsHanging: %v", err)
	}
	if hanging {
		t.Error("e5 reported hanging although only a king attacks it")
	}
}

func TestExchangeEmptySquare(t *testing.T) {
	p := mustPosition(t, board.StartFEN)
	if _, err := Exchange(p, board.E4); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Exchange(empty) error = %v, want ErrInvalidQuery", err)
	}
}

func TestExchangeLeastValuableAttackerFirst(t *testing.T) {
	// Pawn, knight and rook all hit d5; the pawn must open.
	p := mustPosition(t, "4k3/8/8/3q4/4P3/2N5/8/3RK3 w - - 0 1")

	sq, piece, ok := leastValuableAttacker(p, board.D5, board.White, p.AllOccupied)
	if !ok {
		t.Fatal("no attacker found")
	}
	if sq != board.E4 || piece.Type() != board.Pawn {
		t.Errorf("least valuable attacker = %v on %s, want pawn on e4", piece, sq)
	}
}
