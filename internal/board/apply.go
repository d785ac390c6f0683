package board

// Apply plays a move on the position mechanically and returns the captured
// piece, NoPiece for quiet moves. The special kinds carried by the move's
// flag are honored: en passant removes the bypassed pawn, castling moves
// the rook, promotion swaps the pawn for the chosen piece. Apply does not
// judge legality; callers apply only moves vetted elsewhere, onto copies
// they own.
func (p *Position) Apply(m Move) Piece {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return NoPiece
	}
	pt := piece.Type()

	captured := NoPiece
	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		captured = p.RemovePiece(capturedSq)
	} else if occupant := p.PieceAt(to); occupant != NoPiece {
		captured = p.RemovePiece(to)
	}

	p.MovePiece(from, to)

	if m.IsPromotion() {
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][m.Promotion()] |= SquareBB(to)
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			// Kingside
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			// Queenside
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.MovePiece(rookFrom, rookTo)
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}

	// Rook moves or captures affect castling
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	// A double pawn push opens an en passant target; anything else clears it.
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	} else {
		p.EnPassant = NoSquare
	}

	if pt == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them

	return captured
}
