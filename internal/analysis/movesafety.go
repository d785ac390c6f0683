package analysis

import (
	"fmt"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// AnalyzeMove plays a candidate move on a copy of the position and reports
// what it does to the mover's safety: who attacks and defends the
// destination afterward, how a recapture sequence would score, which
// friendly pieces the move leaves newly hanging, whether it gives check,
// and which friendly slider rays the landing piece cuts.
//
// Legality is the caller's problem. The candidate carries the external
// oracle's verdict; an untagged move or an empty source square is an
// ErrInvalidMove. The move is applied mechanically, trusting the tag.
func AnalyzeMove(p *board.Position, cm CandidateMove) (*MoveReport, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}

	m := cm.Move
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == board.NoPiece {
		return nil, fmt.Errorf("%w: no piece on %s to move", ErrInvalidMove, from)
	}
	if !cm.Legal {
		return nil, fmt.Errorf("%w: %s is not legal in this position", ErrInvalidMove, m)
	}

	us := piece.Color()
	them := us.Other()
	before := hangingSet(p, us)

	after := p.Copy()
	captured := after.Apply(m)

	ix, err := BuildIndex(after)
	if err != nil {
		return nil, err
	}

	report := &MoveReport{
		Move:                 m,
		Piece:                piece,
		From:                 from,
		To:                   to,
		Captured:             captured,
		DestinationAttackers: ix.Attackers(to, them),
		DestinationDefenders: ix.Attackers(to, us),
		GivesCheck:           after.InCheck(them),
		After:                after,
	}

	moved := after.PieceAt(to)
	report.Recapture = len(report.DestinationAttackers) > 0
	if report.Recapture {
		// Scored for the recapturing side: positive means taking the
		// moved piece back wins material.
		report.Exchange = exchangeGain(after, to)
		if moved.Type() != board.King && report.Exchange >= 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s on %s can be won by capture", moved, to))
		}
	}

	// The destination's own safety is reported above; the diff below is
	// about collateral damage elsewhere on the board.
	for _, sq := range hangingSet(after, us).Squares() {
		if sq == to || before.IsSet(sq) {
			continue
		}
		report.NewlyHanging = append(report.NewlyHanging, sq)
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%s on %s is left hanging", after.PieceAt(sq), sq))
	}

	report.BlockedRays = blockedRays(p, after, to, us)
	return report, nil
}

// blockedRays finds friendly sliders whose rays the landing piece cut
// short. A slider counts only if it stayed put through the move and its
// ray now terminates on the destination square where it previously ran
// farther.
func blockedRays(before, after *board.Position, to board.Square, us board.Color) []Obstruction {
	var out []Obstruction
	for _, sq := range (before.Sliders(us) & after.Sliders(us)).Squares() {
		piece := after.PieceAt(sq)
		if piece != before.PieceAt(sq) {
			continue
		}
		for _, d := range board.DirectionsFor(piece.Type()) {
			now := after.CastRay(sq, d)
			if len(now) == 0 || now[len(now)-1].Square != to {
				continue
			}
			was := before.CastRay(sq, d)
			if len(now) < len(was) {
				out = append(out, Obstruction{Square: sq, Piece: piece, Direction: d})
			}
		}
	}
	return out
}
