package board

import "testing"

func TestApplyQuietAndDoublePush(t *testing.T) {
	pos := mustPosition(t, StartFEN)
	clone := pos.Copy()

	captured := clone.Apply(NewMove(E2, E4))
	if captured != NoPiece {
		t.Errorf("e2e4 captured %v, want nothing", captured)
	}
	if clone.PieceAt(E4) != WhitePawn || clone.PieceAt(E2) != NoPiece {
		t.Errorf("pawn did not move:\n%v", clone)
	}
	if clone.SideToMove != Black {
		t.Errorf("side to move = %v, want Black", clone.SideToMove)
	}
	if clone.EnPassant != E3 {
		t.Errorf("en passant target = %v, want e3", clone.EnPassant)
	}
	if clone.FullMoveNumber != 1 {
		t.Errorf("full move number = %d, want 1", clone.FullMoveNumber)
	}

	// The original snapshot is untouched.
	if pos.PieceAt(E2) != WhitePawn || pos.EnPassant != NoSquare {
		t.Errorf("Apply mutated the source position:\n%v", pos)
	}
}

func TestApplyCapture(t *testing.T) {
	// After 1.e4 d5: white to play exd5.
	pos := mustPosition(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	clone := pos.Copy()

	captured := clone.Apply(NewMove(E4, D5))
	if captured != BlackPawn {
		t.Errorf("exd5 captured %v, want black pawn", captured)
	}
	if clone.PieceAt(D5) != WhitePawn || clone.PieceAt(E4) != NoPiece {
		t.Errorf("capture not applied:\n%v", clone)
	}
	if clone.HalfMoveClock != 0 {
		t.Errorf("half-move clock = %d, want 0 after a capture", clone.HalfMoveClock)
	}
	if clone.EnPassant != NoSquare {
		t.Errorf("en passant target should clear, got %v", clone.EnPassant)
	}
}

func TestApplyEnPassant(t *testing.T) {
	pos := mustPosition(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")

	m, err := ParseMove("e5d6", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsEnPassant() {
		t.Fatalf("e5d6 should parse as en passant when d6 is the target")
	}

	clone := pos.Copy()
	captured := clone.Apply(m)
	if captured != BlackPawn {
		t.Errorf("en passant captured %v, want black pawn", captured)
	}
	if clone.PieceAt(D5) != NoPiece {
		t.Errorf("bypassed pawn on d5 should be removed:\n%v", clone)
	}
	if clone.PieceAt(D6) != WhitePawn {
		t.Errorf("capturing pawn should land on d6:\n%v", clone)
	}
}

func TestApplyCastling(t *testing.T) {
	pos := mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	t.Run("white kingside", func(t *testing.T) {
		clone := pos.Copy()
		clone.Apply(NewCastling(E1, G1))
		if clone.PieceAt(G1) != WhiteKing || clone.PieceAt(F1) != WhiteRook {
			t.Errorf("kingside castle misapplied:\n%v", clone)
		}
		if clone.PieceAt(E1) != NoPiece || clone.PieceAt(H1) != NoPiece {
			t.Errorf("king and rook origin squares should empty:\n%v", clone)
		}
		if clone.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
			t.Errorf("white castling rights should clear, got %v", clone.CastlingRights)
		}
		if clone.KingSquare[White] != G1 {
			t.Errorf("king cache = %v, want g1", clone.KingSquare[White])
		}
	})

	t.Run("black queenside", func(t *testing.T) {
		clone := pos.Copy()
		clone.SideToMove = Black
		clone.Apply(NewCastling(E8, C8))
		if clone.PieceAt(C8) != BlackKing || clone.PieceAt(D8) != BlackRook {
			t.Errorf("queenside castle misapplied:\n%v", clone)
		}
		if clone.CastlingRights&(BlackKingSideCastle|BlackQueenSideCastle) != 0 {
			t.Errorf("black castling rights should clear, got %v", clone.CastlingRights)
		}
	})
}

func TestApplyPromotion(t *testing.T) {
	pos := mustPosition(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	clone := pos.Copy()

	clone.Apply(NewPromotion(A7, A8, Queen))
	if clone.PieceAt(A8) != WhiteQueen {
		t.Errorf("promotion square holds %v, want white queen", clone.PieceAt(A8))
	}
	if clone.Pieces[White][Pawn] != 0 {
		t.Errorf("promoted pawn should leave the pawn bitboard:\n%v", clone.Pieces[White][Pawn])
	}
}

func TestApplyRookMoveClearsCastlingRights(t *testing.T) {
	pos := mustPosition(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	clone := pos.Copy()

	clone.Apply(NewMove(H1, H8))
	if clone.CastlingRights&WhiteKingSideCastle != 0 {
		t.Errorf("moving the h1 rook should drop white kingside rights")
	}
	// Capturing the h8 rook drops black's kingside rights too.
	if clone.CastlingRights&BlackKingSideCastle != 0 {
		t.Errorf("capturing the h8 rook should drop black kingside rights")
	}
	if clone.CastlingRights&(WhiteQueenSideCastle|BlackQueenSideCastle) == 0 {
		t.Errorf("queenside rights should survive, got %v", clone.CastlingRights)
	}
}
