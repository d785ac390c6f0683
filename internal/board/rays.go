package board

// Direction identifies one of the 8 compass rays. The declaration order is
// the scan order every sliding enumeration uses; keeping it fixed makes
// multi-ray results reproducible run to run.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// String returns the compass abbreviation for the direction.
func (d Direction) String() string {
	names := [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	if d > NorthWest {
		return "?"
	}
	return names[d]
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// directionDelta holds the file/rank step for each direction.
var directionDelta = [8][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

// Direction sets per slider type, each a subsequence of the global scan order.
var (
	RookDirections   = []Direction{North, East, South, West}
	BishopDirections = []Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	QueenDirections  = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

// DirectionsFor returns the ray directions a slider type moves along,
// or nil for non-sliding types.
func DirectionsFor(pt PieceType) []Direction {
	switch pt {
	case Rook:
		return RookDirections
	case Bishop:
		return BishopDirections
	case Queen:
		return QueenDirections
	default:
		return nil
	}
}

// rayBB[d][sq] is every square reachable from sq in direction d on an
// empty board, excluding sq itself. Built as a variable initializer so it
// is ready before any init function touches it.
var rayBB = buildRays()

func buildRays() [8][64]Bitboard {
	var rays [8][64]Bitboard
	for d := North; d <= NorthWest; d++ {
		df, dr := directionDelta[d][0], directionDelta[d][1]
		for sq := A1; sq <= H8; sq++ {
			f, r := sq.File()+df, sq.Rank()+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				rays[d][sq] |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
		}
	}
	return rays
}

// increases reports whether stepping in d raises the square index, which
// decides whether the nearest occupied square on the ray is the LSB or MSB.
func (d Direction) increases() bool {
	switch d {
	case North, NorthEast, East, NorthWest:
		return true
	default:
		return false
	}
}

// rayAttack returns the squares reachable from sq in direction d given the
// occupancy, up to and including the first occupied square.
func rayAttack(d Direction, sq Square, occupied Bitboard) Bitboard {
	ray := rayBB[d][sq]
	blockers := ray & occupied
	if blockers == 0 {
		return ray
	}
	var first Square
	if d.increases() {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return ray &^ rayBB[d][first]
}

// RaySquares returns the squares outward from sq in direction d, nearest
// first, to the board edge. Occupancy is ignored.
func RaySquares(from Square, d Direction) []Square {
	df, dr := directionDelta[d][0], directionDelta[d][1]
	var out []Square
	f, r := from.File()+df, from.Rank()+dr
	for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
		out = append(out, NewSquare(f, r))
		f += df
		r += dr
	}
	return out
}

// RayStep is one square visited by a ray walk, with its occupant
// (NoPiece while the ray is still running through empty squares).
type RayStep struct {
	Square Square
	Piece  Piece
}

// CastRay walks outward from a square in one direction, recording each
// square until and including the first occupied one. The final step, if
// its piece is not NoPiece, is the ray's blocker.
func (p *Position) CastRay(from Square, d Direction) []RayStep {
	var steps []RayStep
	for _, sq := range RaySquares(from, d) {
		pc := p.PieceAt(sq)
		steps = append(steps, RayStep{Square: sq, Piece: pc})
		if pc != NoPiece {
			break
		}
	}
	return steps
}

// Cast concatenates CastRay over the given directions in order.
func (p *Position) Cast(from Square, ds []Direction) []RayStep {
	var steps []RayStep
	for _, d := range ds {
		steps = append(steps, p.CastRay(from, d)...)
	}
	return steps
}

// DirectionBetween returns the direction from one square toward another,
// if they share a rank, file, or diagonal.
func DirectionBetween(from, to Square) (Direction, bool) {
	if from == to || !from.IsValid() || !to.IsValid() {
		return North, false
	}
	df := sign(to.File() - from.File())
	dr := sign(to.Rank() - from.Rank())
	if df != 0 && dr != 0 && abs(to.File()-from.File()) != abs(to.Rank()-from.Rank()) {
		return North, false
	}
	for d := North; d <= NorthWest; d++ {
		if directionDelta[d][0] == df && directionDelta[d][1] == dr {
			return d, true
		}
	}
	return North, false
}

// KnightSquares returns the knight destinations from sq in ascending
// square order.
func KnightSquares(sq Square) []Square {
	return knightAttacks[sq].Squares()
}

// KingSquares returns the king destinations from sq in ascending square order.
func KingSquares(sq Square) []Square {
	return kingAttacks[sq].Squares()
}

// PawnCaptureSquares returns the diagonal capture squares for a pawn of the
// given color, in ascending square order. Forward pushes are excluded; a
// pawn never attacks the square in front of it.
func PawnCaptureSquares(sq Square, c Color) []Square {
	return pawnAttacks[c][sq].Squares()
}
