// Package analysis answers geometric and tactical questions about a single
// chess position: who attacks or defends a square, whether a piece is
// hanging, which pieces are pinned, skewered, or forked, and what a
// hypothetical move would do to the mover's safety. Every operation is a
// pure function of a position snapshot; speculative work runs on copies,
// and nothing is cached between calls.
package analysis

import "github.com/notabot-mateo/chess-tools/internal/board"

// Index is the complete attack map of one position: for every square, the
// ordered attacker records of each color. Build it once per position and
// query batch; it never updates incrementally, a changed position needs a
// fresh build.
//
// Record order is fixed: the direct pass walks pieces in ascending square
// order, each piece's attacks in direction-then-distance order, then the
// x-ray pass repeats the same sweep one blocker deep. Identical inputs
// therefore produce identically ordered records.
type Index struct {
	records [2][64][]AttackRecord
}

// BuildIndex computes the attack map for both colors. It fails with
// ErrMalformedBoard unless each side has exactly one king.
func BuildIndex(p *board.Position) (*Index, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}

	ix := &Index{}
	for c := board.White; c <= board.Black; c++ {
		for _, from := range p.Occupied[c].Squares() {
			piece := p.PieceAt(from)
			for _, target := range attackSquares(p, from, piece) {
				ix.records[c][target] = append(ix.records[c][target], AttackRecord{
					Attacker: piece,
					From:     from,
					Target:   target,
				})
			}
		}

		// Secondary pass: sliders look one blocker deep. These records
		// carry the XRay mark and stay out of every attacker count.
		for _, from := range p.Occupied[c].Squares() {
			piece := p.PieceAt(from)
			for _, d := range board.DirectionsFor(piece.Type()) {
				steps := p.CastRay(from, d)
				if len(steps) == 0 {
					continue
				}
				blocker := steps[len(steps)-1]
				if blocker.Piece == board.NoPiece {
					continue
				}
				for _, step := range p.CastRay(blocker.Square, d) {
					ix.records[c][step.Square] = append(ix.records[c][step.Square], AttackRecord{
						Attacker: piece,
						From:     from,
						Target:   step.Square,
						XRay:     true,
					})
				}
			}
		}
	}
	return ix, nil
}

// Attackers returns the direct attacker records of one color for a square.
func (ix *Index) Attackers(sq board.Square, by board.Color) []AttackRecord {
	var out []AttackRecord
	for _, r := range ix.records[by][sq] {
		if !r.XRay {
			out = append(out, r)
		}
	}
	return out
}

// XRayAttackers returns the one-blocker-deep records of one color for a
// square.
func (ix *Index) XRayAttackers(sq board.Square, by board.Color) []AttackRecord {
	var out []AttackRecord
	for _, r := range ix.records[by][sq] {
		if r.XRay {
			out = append(out, r)
		}
	}
	return out
}

// attackSquares enumerates the squares a piece attacks, in scan order:
// sliders walk their direction set to the first blocker inclusive, leapers
// list their reachable pattern squares ascending. Pawns contribute only
// their diagonal captures.
func attackSquares(p *board.Position, from board.Square, piece board.Piece) []board.Square {
	switch piece.Type() {
	case board.Pawn:
		return board.PawnCaptureSquares(from, piece.Color())
	case board.Knight:
		return board.KnightSquares(from)
	case board.King:
		return board.KingSquares(from)
	case board.Bishop, board.Rook, board.Queen:
		var out []board.Square
		for _, step := range p.Cast(from, board.DirectionsFor(piece.Type())) {
			out = append(out, step.Square)
		}
		return out
	default:
		return nil
	}
}
