package analysis

import (
	"errors"
	"fmt"

	"github.com/notabot-mateo/chess-tools/internal/board"
)

// The three failure classes a query can surface. Callers match them with
// errors.Is; a nil error with an empty result always means "computed, and
// there is nothing", never "could not compute".
var (
	// ErrMalformedBoard reports a position that breaks a structural
	// invariant the analyses rely on, such as a missing or duplicated king.
	ErrMalformedBoard = errors.New("malformed board")

	// ErrInvalidQuery reports a query aimed at a square that cannot answer
	// it, such as asking for the defenders of an empty square.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidMove reports a move with no piece on its source square or
	// one tagged illegal by the move oracle.
	ErrInvalidMove = errors.New("invalid move")
)

// AttackRecord says that the piece on From attacks Target. XRay marks
// attacks that pass through exactly one intervening piece; those never
// count toward attacker or defender totals and exist for the tactical
// scans' benefit.
type AttackRecord struct {
	Attacker board.Piece
	From     board.Square
	Target   board.Square
	XRay     bool
}

// PinRecord describes an absolute pin: the piece on Pinned shields its own
// king from the slider on Attacker. Direction runs from the king outward
// toward the attacker.
type PinRecord struct {
	Pinned        board.Square
	PinnedPiece   board.Piece
	Attacker      board.Square
	AttackerPiece board.Piece
	King          board.Square
	Direction     board.Direction
}

// SkewerRecord describes a slider attacking through a cheaper enemy piece
// onto a more valuable one behind it. The back piece is never the king;
// that shape is a pin and is reported by FindPins instead.
type SkewerRecord struct {
	Attacker      board.Square
	AttackerPiece board.Piece
	Front         board.Square
	FrontPiece    board.Piece
	Back          board.Square
	BackPiece     board.Piece
	Direction     board.Direction
}

// ForkTarget is one enemy piece caught in a fork.
type ForkTarget struct {
	Square board.Square
	Piece  board.Piece
}

// ForkRecord lists the two or more enemy pieces one piece attacks at once.
type ForkRecord struct {
	Forker      board.Square
	ForkerPiece board.Piece
	Targets     []ForkTarget
}

// ForkChance is a fork one move away: moving the piece From to To would
// attack every target at once. Safe reports whether the piece would
// survive on To per exchange evaluation; Captures is the piece taken by
// the relocation itself, if any.
type ForkChance struct {
	From       board.Square
	To         board.Square
	Piece      board.Piece
	Targets    []ForkTarget
	Captures   board.Piece
	Safe       bool
	TotalValue int
}

// DiscoveryRecord names a friendly slider, the single friendly blocker
// parked on its line toward the enemy king, and the king square the
// blocker's departure would expose.
type DiscoveryRecord struct {
	Slider       board.Square
	SliderPiece  board.Piece
	Blocker      board.Square
	BlockerPiece board.Piece
	King         board.Square
	Direction    board.Direction
}

// SquareReport bundles everything the queries know about one occupied
// square.
type SquareReport struct {
	Square         board.Square
	Piece          board.Piece
	WhiteAttackers []AttackRecord
	BlackAttackers []AttackRecord
	Defenders      []AttackRecord
	IsHanging      bool
	IsProtected    bool
	// Exchange is the net gain, in centipawns, for the opposing side
	// capturing first on the square. Zero when no capture is possible.
	Exchange int
}

// CandidateMove is a move descriptor as tagged by the external legal-move
// oracle. The analyzer trusts Legal and the special-move kind carried in
// the move's flag; it never re-derives legality.
type CandidateMove struct {
	Move  board.Move
	Legal bool
}

// Obstruction records a friendly slider whose ray the analyzed move cut.
type Obstruction struct {
	Square    board.Square
	Piece     board.Piece
	Direction board.Direction
}

// MoveReport is the safety picture of one hypothetical move.
type MoveReport struct {
	Move     board.Move
	Piece    board.Piece
	From     board.Square
	To       board.Square
	Captured board.Piece

	// Post-move state of the destination square.
	DestinationAttackers []AttackRecord
	DestinationDefenders []AttackRecord

	// Recapture is true when the opponent attacks the destination after
	// the move; Exchange is then the opponent's net gain from capturing,
	// least valuable attacker first.
	Recapture bool
	Exchange  int

	// NewlyHanging lists the mover's other pieces that the move left
	// hanging; the destination square itself is reported via Exchange.
	NewlyHanging []board.Square

	GivesCheck  bool
	BlockedRays []Obstruction
	Warnings    []string

	// After is the resulting position, an independent copy owned by the
	// report.
	After *board.Position
}

// checkKings verifies the one-king-per-color invariant the pin and
// exchange machinery depends on.
func checkKings(p *board.Position) error {
	if n := p.Pieces[board.White][board.King].PopCount(); n != 1 {
		return fmt.Errorf("%w: white has %d kings", ErrMalformedBoard, n)
	}
	if n := p.Pieces[board.Black][board.King].PopCount(); n != 1 {
		return fmt.Errorf("%w: black has %d kings", ErrMalformedBoard, n)
	}
	return nil
}
