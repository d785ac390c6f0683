package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

func TestAttackersAfterOpeningMoves(t *testing.T) {
	// After 1. e4 e5 2. Nf3 d6 the e5 pawn is attacked once and
	// defended once.
	p := mustPosition(t, "rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")

	white, err := Attackers(p, board.E5, board.White)
	if err != nil {
		t.Fatalf("Attackers: %v", err)
	}
	if len(white) != 1 || white[0].From != board.F3 || white[0].Attacker != board.WhiteKnight {
		t.Fatalf("white attackers of e5 = %v, want knight on f3", white)
	}

	defenders, err := Defenders(p, board.E5)
	if err != nil {
		t.Fatalf("Defenders: %v", err)
	}
	if len(defenders) != 1 || defenders[0].From != board.D6 {
		t.Fatalf("defenders of e5 = %v, want pawn on d6", defenders)
	}

	hanging, err := IsHanging(p, board.E5)
	if err != nil {
		t.Fatalf("IsHanging: %v", err)
	}
	if hanging {
		t.Error("e5 reported hanging although the exchange loses material")
	}

	protected, err := IsProtected(p, board.E5)
	if err != nil {
		t.Fatalf("IsProtected: %v", err)
	}
	if !protected {
		t.Error("e5 reported unprotected")
	}
}

func TestIsHangingRequiresAttackers(t *testing.T) {
	p := mustPosition(t, board.StartFEN)

	// Nothing in the starting position is attacked, so nothing hangs.
	for _, c := range []board.Color{board.White, board.Black} {
		squares, err := FindHanging(p, c)
		if err != nil {
			t.Fatalf("FindHanging(%v): %v", c, err)
		}
		if len(squares) != 0 {
			t.Errorf("FindHanging(%v) = %v, want none", c, squares)
		}
	}

	hanging, err := IsHanging(p, board.E2)
	if err != nil {
		t.Fatalf("IsHanging: %v", err)
	}
	if hanging {
		t.Error("e2 hangs in the starting position")
	}
}

func TestIsHangingEmptySquare(t *testing.T) {
	p := mustPosition(t, board.StartFEN)

	hanging, err := IsHanging(p, board.E4)
	if err != nil {
		t.Fatalf("IsHanging on empty square: %v", err)
	}
	if hanging {
		t.Error("empty square reported hanging")
	}
}

func TestIsProtectedEmptySquareIsError(t *testing.T) {
	p := mustPosition(t, board.StartFEN)
	if _, err := IsProtected(p, board.E4); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("IsProtected(empty) error = %v, want ErrInvalidQuery", err)
	}
	if _, err := Defenders(p, board.E4); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("Defenders(empty) error = %v, want ErrInvalidQuery", err)
	}
}

func TestProtectedPieceCanStillBeWon(t *testing.T) {
	// A queen guards the d5 pawn, but two minor pieces gang up on it.
	// The pawn falls, and recapturing with the queen would only feed
	// her to the bishop.
	p := mustPosition(t, "3qk3/8/8/3p4/8/2N5/6B1/4K3 w - - 0 1")

	defenders, err := Defenders(p, board.D5)
	if err != nil {
		t.Fatalf("Defenders: %v", err)
	}
	if len(defenders) != 1 {
		t.Fatalf("defenders of d5 = %v, want queen only", defenders)
	}

	hanging, err := IsHanging(p, board.D5)
	if err != nil {
		t.Fatalf("IsHanging: %v", err)
	}
	if !hanging {
		t.Error("d5 not reported hanging despite winning exchange")
	}

	protected, err := IsProtected(p, board.D5)
	if err != nil {
		t.Fatalf("IsProtected: %v", err)
	}
	if protected {
		t.Error("d5 reported protected although the exchange loses it")
	}
}

func TestFindHangingAndUndefended(t *testing.T) {
	p := mustPosition(t, "4k3/8/8/3n4/8/8/8/3QK3 w - - 0 1")

	hanging, err := FindHanging(p, board.Black)
	if err != nil {
		t.Fatalf("FindHanging: %v", err)
	}
	if !reflect.DeepEqual(hanging, []board.Square{board.D5}) {
		t.Errorf("black hanging pieces = %v, want [d5]", hanging)
	}

	whiteHanging, err := FindHanging(p, board.White)
	if err != nil {
		t.Fatalf("FindHanging: %v", err)
	}
	if len(whiteHanging) != 0 {
		t.Errorf("white hanging pieces = %v, want none", whiteHanging)
	}

	// The knight is undefended outright; the white queen has her king
	// beside her.
	if got := FindUndefended(p, board.Black); !reflect.DeepEqual(got, []board.Square{board.D5}) {
		t.Errorf("black undefended = %v, want [d5]", got)
	}
	if got := FindUndefended(p, board.White); len(got) != 0 {
		t.Errorf("white undefended = %v, want none", got)
	}
}

func TestAnalyzeSquare(t *testing.T) {
	p := mustPosition(t, "rnbqkbnr/ppp2ppp/3p4/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3")

	report, err := AnalyzeSquare(p, board.E5)
	if err != nil {
		t.Fatalf("AnalyzeSquare: %v", err)
	}

	if report.Piece != board.BlackPawn {
		t.Errorf("occupant = %v, want black pawn", report.Piece)
	}
	if len(report.WhiteAttackers) != 1 || len(report.BlackAttackers) != 1 {
		t.Errorf("attacker counts = %d white, %d black, want 1 and 1",
			len(report.WhiteAttackers), len(report.BlackAttackers))
	}
	if len(report.Defenders) != 1 || report.Defenders[0].From != board.D6 {
		t.Errorf("defenders = %v, want pawn on d6", report.Defenders)
	}
	if report.IsHanging {
		t.Error("report says e5 hangs")
	}
	if !report.IsProtected {
		t.Error("report says e5 is unprotected")
	}
	if want := board.PieceValue[board.Pawn] - board.PieceValue[board.Knight]; report.Exchange != want {
		t.Errorf("report exchange = %d, want %d", report.Exchange, want)
	}

	if _, err := AnalyzeSquare(p, board.E4); err != nil {
		t.Fatalf("AnalyzeSquare(e4): %v", err)
	}
	if _, err := AnalyzeSquare(p, board.A3); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("AnalyzeSquare(empty) error = %v, want ErrInvalidQuery", err)
	}
}
