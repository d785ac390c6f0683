package analysis

import (
	"fmt"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// Attackers returns the direct attacker records of one color for a square,
// in index order. An empty result means no piece of that color attacks the
// square.
func Attackers(p *board.Position, sq board.Square, by board.Color) ([]AttackRecord, error) {
	ix, err := BuildIndex(p)
	if err != nil {
		return nil, err
	}
	return ix.Attackers(sq, by), nil
}

// Defenders returns the attacker records of the occupant's own color for
// the occupant's square. The occupant itself never appears, pieces do not
// defend the square they stand on. Querying an empty square is an
// ErrInvalidQuery.
func Defenders(p *board.Position, sq board.Square) ([]AttackRecord, error) {
	occupant := p.PieceAt(sq)
	if occupant == board.NoPiece {
		return nil, fmt.Errorf("%w: no piece on %s to defend", ErrInvalidQuery, sq)
	}
	return Attackers(p, sq, occupant.Color())
}

// IsHanging reports whether the piece on sq can be won by capture: at
// least one enemy piece attacks it and the exchange comes out at least
// even for the capturing side. An even trade counts as hanging. An empty
// square is simply not hanging, and a king is never hanging because no
// capture sequence can win it.
func IsHanging(p *board.Position, sq board.Square) (bool, error) {
	occupant := p.PieceAt(sq)
	if occupant == board.NoPiece {
		return false, nil
	}
	if err := checkKings(p); err != nil {
		return false, err
	}
	return hangs(p, sq, occupant), nil
}

// IsProtected reports whether capturing the piece on sq would cost the
// capturer material, that is, whether the piece is not hanging. A piece
// with defenders can still be unprotected when the exchange favors the
// attacker, and a piece with no attackers is trivially protected.
// Querying an empty square is an ErrInvalidQuery.
func IsProtected(p *board.Position, sq board.Square) (bool, error) {
	occupant := p.PieceAt(sq)
	if occupant == board.NoPiece {
		return false, fmt.Errorf("%w: no piece on %s to protect", ErrInvalidQuery, sq)
	}
	if err := checkKings(p); err != nil {
		return false, err
	}
	return !hangs(p, sq, occupant), nil
}

// FindHanging lists every hanging piece of one color in ascending square
// order.
func FindHanging(p *board.Position, c board.Color) ([]board.Square, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}
	return hangingSet(p, c).Squares(), nil
}

// FindUndefended lists the pieces of one color, kings excepted, that no
// friendly piece covers. Undefended is weaker than hanging: an undefended
// piece that nothing attacks is in no danger yet.
func FindUndefended(p *board.Position, c board.Color) []board.Square {
	var out board.Bitboard
	for _, sq := range p.Occupied[c].Squares() {
		if p.PieceAt(sq).Type() == board.King {
			continue
		}
		if p.AttackersByColor(sq, c, p.AllOccupied) == 0 {
			out = out.Set(sq)
		}
	}
	return out.Squares()
}

// AnalyzeSquare bundles the per-square queries into one report: occupant,
// both attacker lists, defenders, the hanging and protected verdicts, and
// the exchange score when the square is contested. Querying an empty
// square is an ErrInvalidQuery.
func AnalyzeSquare(p *board.Position, sq board.Square) (*SquareReport, error) {
	occupant := p.PieceAt(sq)
	if occupant == board.NoPiece {
		return nil, fmt.Errorf("%w: no piece on %s to analyze", ErrInvalidQuery, sq)
	}
	ix, err := BuildIndex(p)
	if err != nil {
		return nil, err
	}

	report := &SquareReport{
		Square:         sq,
		Piece:          occupant,
		WhiteAttackers: ix.Attackers(sq, board.White),
		BlackAttackers: ix.Attackers(sq, board.Black),
		Defenders:      ix.Attackers(sq, occupant.Color()),
	}
	hostile := report.WhiteAttackers
	if occupant.Color() == board.White {
		hostile = report.BlackAttackers
	}
	if len(hostile) > 0 {
		report.Exchange = exchangeGain(p, sq)
	}
	report.IsHanging = hangs(p, sq, occupant)
	report.IsProtected = !report.IsHanging
	return report, nil
}

// hangs is the shared hanging test. The opening capture must come from a
// usable attacker, not merely a geometric one: a piece covered only by
// pinned pieces, or by a king that would walk into a defended square,
// cannot actually be won. Callers have already verified the kings, so
// exchangeGain can trust KingSquare.
func hangs(p *board.Position, sq board.Square, occupant board.Piece) bool {
	if occupant.Type() == board.King {
		return false
	}
	if _, _, ok := leastValuableAttacker(p, sq, occupant.Color().Other(), p.AllOccupied); !ok {
		return false
	}
	return exchangeGain(p, sq) >= 0
}

// hangingSet collects the hanging squares of one color as a bitboard.
func hangingSet(p *board.Position, c board.Color) board.Bitboard {
	var out board.Bitboard
	for _, sq := range p.Occupied[c].Squares() {
		if hangs(p, sq, p.PieceAt(sq)) {
			out = out.Set(sq)
		}
	}
	return out
}
