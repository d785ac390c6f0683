// Package legality wraps the external move generator that vouches for
// move legality. The analysis core never derives legality itself; it
// consumes the verdicts produced here.
package legality

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// LegalMoves enumerates every legal move in the position, converted to
// the board move encoding, in the generator's order.
func LegalMoves(p *board.Position) ([]board.Move, error) {
	// The generator's parser panics on malformed input, so the position
	// is validated before its FEN crosses the boundary.
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("position not playable: %w", err)
	}

	ext := dragontoothmg.ParseFen(p.ToFEN())
	var out []board.Move
	for _, em := range ext.GenerateLegalMoves() {
		m, err := board.ParseMove(em.String(), p)
		if err != nil {
			return nil, fmt.Errorf("converting generator move %s: %w", em.String(), err)
		}
		out = append(out, m)
	}
	return out, nil
}

// IsLegal reports whether the move is legal in the position. The move
// must carry the same special-move encoding ParseMove produces, which
// holds for any move parsed against this position.
func IsLegal(p *board.Position, m board.Move) (bool, error) {
	moves, err := LegalMoves(p)
	if err != nil {
		return false, err
	}
	for _, lm := range moves {
		if lm == m {
			return true, nil
		}
	}
	return false, nil
}

// ParseUserMove parses a coordinate-notation move and tags it with the
// oracle's verdict in one step.
func ParseUserMove(p *board.Position, s string) (board.Move, bool, error) {
	m, err := board.ParseMove(s, p)
	if err != nil {
		return board.NoMove, false, err
	}
	legal, err := IsLegal(p, m)
	if err != nil {
		return board.NoMove, false, err
	}
	return m, legal, nil
}
