package analysis

import (
	"sort"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// FindPins reports the absolute pins against color c: pieces of c that
// stand alone between their king and an enemy slider able to move along
// that line. Rays are scanned outward from the king in the fixed compass
// order, so at most one pin per direction and the records come out in
// that order.
func FindPins(p *board.Position, c board.Color) ([]PinRecord, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}
	ksq := p.KingSquare[c]

	var pins []PinRecord
	for _, d := range board.QueenDirections {
		steps := p.CastRay(ksq, d)
		if len(steps) == 0 {
			continue
		}
		shield := steps[len(steps)-1]
		if shield.Piece == board.NoPiece || shield.Piece.Color() != c {
			continue
		}
		beyond := p.CastRay(shield.Square, d)
		if len(beyond) == 0 {
			continue
		}
		sniper := beyond[len(beyond)-1]
		if sniper.Piece == board.NoPiece || sniper.Piece.Color() == c {
			continue
		}
		if !slidesAlong(sniper.Piece.Type(), d) {
			continue
		}
		pins = append(pins, PinRecord{
			Pinned:        shield.Square,
			PinnedPiece:   shield.Piece,
			Attacker:      sniper.Square,
			AttackerPiece: sniper.Piece,
			King:          ksq,
			Direction:     d,
		})
	}
	return pins, nil
}

// FindSkewers reports the skewers executed by color c: a slider of c
// attacks an enemy piece that shields a strictly more valuable enemy
// piece behind it on the same line. A king at the back is the pin
// family's shape and never appears here.
func FindSkewers(p *board.Position, c board.Color) ([]SkewerRecord, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}

	var skewers []SkewerRecord
	for _, from := range p.Sliders(c).Squares() {
		piece := p.PieceAt(from)
		for _, d := range board.DirectionsFor(piece.Type()) {
			steps := p.CastRay(from, d)
			if len(steps) == 0 {
				continue
			}
			front := steps[len(steps)-1]
			if front.Piece == board.NoPiece || front.Piece.Color() == c {
				continue
			}
			beyond := p.CastRay(front.Square, d)
			if len(beyond) == 0 {
				continue
			}
			back := beyond[len(beyond)-1]
			if back.Piece == board.NoPiece || back.Piece.Color() == c {
				continue
			}
			if back.Piece.Type() == board.King {
				continue
			}
			if front.Piece.Value() >= back.Piece.Value() {
				continue
			}
			skewers = append(skewers, SkewerRecord{
				Attacker:      from,
				AttackerPiece: piece,
				Front:         front.Square,
				FrontPiece:    front.Piece,
				Back:          back.Square,
				BackPiece:     back.Piece,
				Direction:     d,
			})
		}
	}
	return skewers, nil
}

// FindForks reports every piece of color c that currently attacks two or
// more enemy pieces. Targets keep the attack enumeration order.
func FindForks(p *board.Position, c board.Color) ([]ForkRecord, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}

	var forks []ForkRecord
	for _, from := range p.Occupied[c].Squares() {
		piece := p.PieceAt(from)
		var targets []ForkTarget
		for _, sq := range attackSquares(p, from, piece) {
			victim := p.PieceAt(sq)
			if victim != board.NoPiece && victim.Color() != c {
				targets = append(targets, ForkTarget{Square: sq, Piece: victim})
			}
		}
		if len(targets) >= 2 {
			forks = append(forks, ForkRecord{Forker: from, ForkerPiece: piece, Targets: targets})
		}
	}
	return forks, nil
}

// FindDiscoveries reports color c's discovered-attack setups against the
// enemy king: a slider of c whose line to the king is blocked by exactly
// one piece, and that piece is c's own. Each candidate is confirmed on a
// copy with the blocker lifted off, proving the slider then reaches the
// king along the line. Where the blocker could go is out of scope here.
func FindDiscoveries(p *board.Position, c board.Color) ([]DiscoveryRecord, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}
	ksq := p.KingSquare[c.Other()]

	var discoveries []DiscoveryRecord
	for _, from := range p.Sliders(c).Squares() {
		piece := p.PieceAt(from)
		d, ok := board.DirectionBetween(from, ksq)
		if !ok || !slidesAlong(piece.Type(), d) {
			continue
		}
		between := board.Between(from, ksq) & p.AllOccupied
		if between.PopCount() != 1 {
			continue
		}
		blockerSq := between.LSB()
		blocker := p.PieceAt(blockerSq)
		if blocker.Color() != c {
			continue
		}

		clone := p.Copy()
		clone.RemovePiece(blockerSq)
		steps := clone.CastRay(from, d)
		if len(steps) == 0 || steps[len(steps)-1].Square != ksq {
			continue
		}
		discoveries = append(discoveries, DiscoveryRecord{
			Slider:       from,
			SliderPiece:  piece,
			Blocker:      blockerSq,
			BlockerPiece: blocker,
			King:         ksq,
			Direction:    d,
		})
	}
	return discoveries, nil
}

// FindForkOpportunities looks one relocation ahead: for every pseudo-legal
// destination of every piece of color c, transplant the piece there on a
// copy and count the enemy pieces it would attack. Two or more make the
// destination a fork chance. Results come back best first, by total
// target value, then by source and destination square. Castling and en
// passant relocations are not modeled; promotions keep the pawn a pawn.
func FindForkOpportunities(p *board.Position, c board.Color) ([]ForkChance, error) {
	if err := checkKings(p); err != nil {
		return nil, err
	}

	var chances []ForkChance
	for _, from := range p.Occupied[c].Squares() {
		piece := p.PieceAt(from)
		for _, to := range moveSquares(p, from, piece) {
			captured := p.PieceAt(to)
			if captured.Type() == board.King {
				continue
			}

			clone := p.Copy()
			clone.RemovePiece(from)
			if captured != board.NoPiece {
				clone.RemovePiece(to)
			}
			clone.SetPiece(piece, to)

			var targets []ForkTarget
			total := 0
			for _, sq := range attackSquares(clone, to, piece) {
				victim := clone.PieceAt(sq)
				if victim != board.NoPiece && victim.Color() != c {
					targets = append(targets, ForkTarget{Square: sq, Piece: victim})
					total += victim.Value()
				}
			}
			if len(targets) < 2 {
				continue
			}
			safe := !hangs(clone, to, piece)
			if piece.Type() == board.King {
				safe = clone.AttackersByColor(to, c.Other(), clone.AllOccupied) == 0
			}
			chances = append(chances, ForkChance{
				From:       from,
				To:         to,
				Piece:      piece,
				Targets:    targets,
				Captures:   captured,
				Safe:       safe,
				TotalValue: total,
			})
		}
	}

	sort.SliceStable(chances, func(i, j int) bool {
		a, b := chances[i], chances[j]
		if a.TotalValue != b.TotalValue {
			return a.TotalValue > b.TotalValue
		}
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})
	return chances, nil
}

// moveSquares enumerates where a piece could relocate, ignoring checks and
// special moves. Sliders and leapers go anywhere in their pattern not held
// by a friend; pawns push to empty squares, two from home, and capture
// diagonally only onto enemies.
func moveSquares(p *board.Position, from board.Square, piece board.Piece) []board.Square {
	c := piece.Color()

	if piece.Type() == board.Pawn {
		var out []board.Square
		push := board.PawnPushes(from, c)
		if push&p.AllOccupied == 0 && push != 0 {
			single := push.LSB()
			out = append(out, single)
			homeRank := 1
			if c == board.Black {
				homeRank = 6
			}
			if from.Rank() == homeRank {
				double := board.PawnPushes(single, c)
				if double&p.AllOccupied == 0 && double != 0 {
					out = append(out, double.LSB())
				}
			}
		}
		for _, sq := range board.PawnCaptureSquares(from, c) {
			victim := p.PieceAt(sq)
			if victim != board.NoPiece && victim.Color() != c {
				out = append(out, sq)
			}
		}
		return out
	}

	var out []board.Square
	for _, sq := range attackSquares(p, from, piece) {
		if occupant := p.PieceAt(sq); occupant != board.NoPiece && occupant.Color() == c {
			continue
		}
		out = append(out, sq)
	}
	return out
}

// slidesAlong reports whether a piece type's movement pattern includes a
// compass direction. Only sliders qualify.
func slidesAlong(pt board.PieceType, d board.Direction) bool {
	switch pt {
	case board.Rook:
		return d == board.North || d == board.East || d == board.South || d == board.West
	case board.Bishop:
		return d == board.NorthEast || d == board.SouthEast || d == board.SouthWest || d == board.NorthWest
	case board.Queen:
		return true
	}
	return false
}
