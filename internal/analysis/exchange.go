package analysis

import (
	"fmt"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// Exchange plays out the full capture sequence on a square, both sides
// always committing the least valuable attacker, and returns the net
// material gain from the first capturer's point of view. The first
// capturer is the side opposing the current occupant. A positive result
// means capturing wins material, zero means an even trade, negative means
// the occupant is adequately defended.
//
// Either side may stop the sequence early rather than recapture at a
// loss; the result reflects that choice. If nothing attacks the square
// the result is 0.
func Exchange(p *board.Position, sq board.Square) (int, error) {
	if p.PieceAt(sq) == board.NoPiece {
		return 0, fmt.Errorf("%w: no piece on %s to exchange on", ErrInvalidQuery, sq)
	}
	if err := checkKings(p); err != nil {
		return 0, err
	}
	return exchangeGain(p, sq), nil
}

// exchangeGain runs the swap algorithm. Captures are simulated by lifting
// the capturer out of a working occupancy mask and recomputing attackers
// against it, so sliders lined up behind a departing piece join the fight
// at the right turn. The position itself is never mutated.
func exchangeGain(p *board.Position, target board.Square) int {
	victim := p.PieceAt(target)
	side := victim.Color().Other()
	occ := p.AllOccupied

	from, attacker, ok := leastValuableAttacker(p, target, side, occ)
	if !ok {
		return 0
	}

	// gain[d] holds the material swing assuming the sequence ends after
	// capture d. At most 32 pieces can take part.
	var gain [33]int
	d := 0
	gain[0] = victim.Value()
	onSquare := attacker.Value()
	occ = occ.Clear(from)
	side = side.Other()

	for {
		from, attacker, ok = leastValuableAttacker(p, target, side, occ)
		if !ok {
			break
		}
		d++
		gain[d] = onSquare - gain[d-1]
		// Neither continuation can recover: both sides would stand worse
		// by capturing on, so the tail cannot change the result.
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}
		onSquare = attacker.Value()
		occ = occ.Clear(from)
		side = side.Other()
	}

	// Fold backward, at every depth letting the side to move choose
	// between stopping and capturing on.
	for ; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker picks the cheapest piece of one side that can
// capture on target under the given occupancy, pawn first, king last.
// Equal candidates resolve by lowest square, keeping results stable.
//
// Two legality limits apply. A piece pinned to its own king may capture
// only when the target sits on the pin line. The king may capture only
// when no enemy attacker remains to take it back.
func leastValuableAttacker(p *board.Position, target board.Square, side board.Color, occ board.Bitboard) (board.Square, board.Piece, bool) {
	attackers := p.AttackersByColor(target, side, occ) & occ
	if attackers == 0 {
		return board.NoSquare, board.NoPiece, false
	}

	ksq := p.KingSquare[side]
	for bb := attackers & p.Pinned(side, occ); bb != 0; {
		sq := bb.PopLSB()
		if !board.Aligned(sq, target, ksq) {
			attackers = attackers.Clear(sq)
		}
	}

	for pt := board.Pawn; pt <= board.King; pt++ {
		candidates := attackers & p.Pieces[side][pt] & occ
		if candidates == 0 {
			continue
		}
		if pt == board.King && p.AttackersByColor(target, side.Other(), occ)&occ != 0 {
			return board.NoSquare, board.NoPiece, false
		}
		return candidates.LSB(), board.NewPiece(pt, side), true
	}
	return board.NoSquare, board.NoPiece, false
}
