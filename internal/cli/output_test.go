package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/notabot-mateo/chess-tools/internal/analysis"
	"github.com/notabot-mateo/chess-tools/internal/board"
)

func mustPosition(t *testing.T, fen string) *board.Position {
	t.Helper()
	p, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func analyzeForTest(t *testing.T, p *board.Position, m board.Move) *analysis.MoveReport {
	t.Helper()
	report, err := analysis.AnalyzeMove(p, analysis.CandidateMove{Move: m, Legal: true})
	if err != nil {
		t.Fatalf("AnalyzeMove(%s): %v", m, err)
	}
	return report
}

func TestPieceName(t *testing.T) {
	cases := []struct {
		piece board.Piece
		want  string
	}{
		{board.WhiteKnight, "white knight"},
		{board.BlackQueen, "black queen"},
		{board.NoPiece, "empty"},
	}
	for _, c := range cases {
		if got := pieceName(c.piece); got != c.want {
			t.Errorf("pieceName(%v) = %q, want %q", c.piece, got, c.want)
		}
	}
}

func TestWriteBoardASCII(t *testing.T) {
	p := mustPosition(t, board.StartFEN)

	var buf bytes.Buffer
	writeBoard(&buf, p, false)

	out := buf.String()
	if !strings.Contains(out, "R N B Q K B N R") {
		t.Errorf("back rank missing:\n%s", out)
	}
	if !strings.Contains(out, "side to move: white") {
		t.Errorf("side to move missing:\n%s", out)
	}
}

func TestTacticsViewPin(t *testing.T) {
	// White rook on e1 pins the black rook on e5 against the king on e8.
	p := mustPosition(t, "4k3/8/8/4r3/8/8/8/4R1K1 w - - 0 1")

	view, err := newTacticsView(p, board.Black)
	if err != nil {
		t.Fatalf("newTacticsView: %v", err)
	}
	if len(view.Pins) != 1 {
		t.Fatalf("pins = %v, want one", view.Pins)
	}
	pin := view.Pins[0]
	if pin.Pinned != "black rook on e5" || pin.King != "e8" {
		t.Errorf("pin = %+v, want black rook on e5 against e8", pin)
	}

	var buf bytes.Buffer
	writeTacticsText(&buf, view)
	if !strings.Contains(buf.String(), "pin: black rook on e5") {
		t.Errorf("text rendering missing the pin:\n%s", buf.String())
	}
}

func TestTacticsViewFork(t *testing.T) {
	// White knight on c7 forks the black king on e8 and rook on a8.
	p := mustPosition(t, "r3k3/2N5/8/8/8/8/8/6K1 b - - 0 1")

	view, err := newTacticsView(p, board.White)
	if err != nil {
		t.Fatalf("newTacticsView: %v", err)
	}
	if len(view.Forks) != 1 {
		t.Fatalf("forks = %v, want one", view.Forks)
	}
	targets := strings.Join(view.Forks[0].Targets, " ")
	if !strings.Contains(targets, "a8") || !strings.Contains(targets, "e8") {
		t.Errorf("fork targets = %v, want the rook on a8 and king on e8", view.Forks[0].Targets)
	}
}

func TestMoveViewCapture(t *testing.T) {
	// 2. Nxe5 wins the pawn but loses the knight to dxe5.
	p := mustPosition(t, italianPrepFEN)

	m := board.NewMove(board.F3, board.E5)
	report := analyzeForTest(t, p, m)

	view := newMoveView(report)
	if view.Captured != "p" {
		t.Errorf("captured = %q, want the e5 pawn", view.Captured)
	}
	if !view.Recapture || view.Exchange <= 0 {
		t.Errorf("recapture/exchange = %v/%d, want a winning recapture", view.Recapture, view.Exchange)
	}

	var buf bytes.Buffer
	writeMoveText(&buf, view)
	if !strings.Contains(buf.String(), "takes black pawn") {
		t.Errorf("text rendering missing the capture:\n%s", buf.String())
	}
}
