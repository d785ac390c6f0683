package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

func mustMove(t *testing.T, p *board.Position, uci string) board.Move {
	t.Helper()
	m, err := board.ParseMove(uci, p)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	return m
}

func TestAnalyzeMoveCapture(t *testing.T) {
	// 3. Nxe5 grabs the pawn but hands the knight to dxe5.
	p := mustPosition(t, "rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")

	report, err := AnalyzeMove(p, CandidateMove{Move: mustMove(t, p, "f3e5"), Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove: %v", err)
	}

	if report.Captured != board.BlackPawn {
		t.Errorf("captured = %v, want black pawn", report.Captured)
	}
	if !report.Recapture {
		t.Error("recapture not reported with dxe5 available")
	}
	if want := board.PieceValue[board.Knight]; report.Exchange != want {
		t.Errorf("recapture exchange = %d, want %d", report.Exchange, want)
	}
	if len(report.Warnings) == 0 {
		t.Error("no warning for a knight left en prise")
	}
	if report.GivesCheck {
		t.Error("Nxe5 reported as check")
	}
	if len(report.NewlyHanging) != 0 {
		t.Errorf("newly hanging = %v, want none", report.NewlyHanging)
	}

	// The source position must be untouched and the after position must
	// answer direct queries consistently with the report.
	if p.PieceAt(board.F3) != board.WhiteKnight || p.PieceAt(board.E5) != board.BlackPawn {
		t.Fatal("analyzing a move mutated the input position")
	}
	direct, err := Attackers(report.After, board.E5, board.Black)
	if err != nil {
		t.Fatalf("Attackers on after position: %v", err)
	}
	if !reflect.DeepEqual(direct, report.DestinationAttackers) {
		t.Errorf("after-position attackers %v disagree with report %v", direct, report.DestinationAttackers)
	}
}

func TestAnalyzeMoveLeavesPieceHanging(t *testing.T) {
	// The d1 queen is all that holds the d4 knight together; sending
	// her to h5 abandons it to the d8 rook.
	p := mustPosition(t, "3rk3/8/8/8/3N4/8/8/3Q2K1 w - - 0 1")

	report, err := AnalyzeMove(p, CandidateMove{Move: mustMove(t, p, "d1h5"), Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove: %v", err)
	}

	if !reflect.DeepEqual(report.NewlyHanging, []board.Square{board.D4}) {
		t.Errorf("newly hanging = %v, want [d4]", report.NewlyHanging)
	}
	if report.Recapture {
		t.Error("recapture reported on an empty quiet destination")
	}
	if len(report.Warnings) == 0 {
		t.Error("no warning for the abandoned knight")
	}
}

func TestAnalyzeMoveBlocksOwnRook(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/8/8/8/8/4R1NK w - - 0 1")

	report, err := AnalyzeMove(p, CandidateMove{Move: mustMove(t, p, "g1e2"), Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove: %v", err)
	}

	if len(report.BlockedRays) != 1 {
		t.Fatalf("blocked rays = %v, want exactly one", report.BlockedRays)
	}
	ob := report.BlockedRays[0]
	if ob.Square != board.E1 || ob.Piece != board.WhiteRook || ob.Direction != board.North {
		t.Errorf("obstruction = %v %s %v, want rook on e1 looking N", ob.Piece, ob.Square, ob.Direction)
	}
}

func TestAnalyzeMoveGivesCheck(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")

	report, err := AnalyzeMove(p, CandidateMove{Move: mustMove(t, p, "a1a8"), Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove: %v", err)
	}
	if !report.GivesCheck {
		t.Error("Ra8+ not reported as check")
	}
	if report.Recapture {
		t.Errorf("recapture reported, attackers = %v", report.DestinationAttackers)
	}
}

func TestAnalyzeMoveEnPassant(t *testing.T) {
	p := mustPosition(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")

	report, err := AnalyzeMove(p, CandidateMove{Move: mustMove(t, p, "e5d6"), Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove: %v", err)
	}

	if report.Captured != board.BlackPawn {
		t.Errorf("captured = %v, want the bypassed pawn", report.Captured)
	}
	if report.After.PieceAt(board.D5) != board.NoPiece {
		t.Error("bypassed pawn still on d5 after en passant")
	}
	if report.After.PieceAt(board.D6) != board.WhitePawn {
		t.Error("capturing pawn not on d6")
	}
}

func TestAnalyzeMoveRejectsBadCandidates(t *testing.T) {
	p := mustPosition(t, board.StartFEN)

	t.Run("empty source", func(t *testing.T) {
		cm := CandidateMove{Move: board.NewMove(board.E4, board.E5), Legal: true}
		if _, err := AnalyzeMove(p, cm); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("error = %v, want ErrInvalidMove", err)
		}
	})

	t.Run("untagged move", func(t *testing.T) {
		cm := CandidateMove{Move: mustMove(t, p, "e2e4")}
		if _, err := AnalyzeMove(p, cm); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("error = %v, want ErrInvalidMove", err)
		}
	})
}
