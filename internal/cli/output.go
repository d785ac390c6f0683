package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/notabot-mateo/chess-tools/internal/analysis"
	"github.com/notabot-mateo/chess-tools/internal/board"
)

// The view types below are the CLI's wire format: every field is a plain
// string or number so the JSON survives the report cache and stays
// readable to scripted consumers. Conversions from the analysis records
// are one-way; nothing is ever parsed back into core types.

type attackView struct {
	Piece string `json:"piece"`
	From  string `json:"from"`
}

type pieceAtView struct {
	Piece  string `json:"piece"`
	Square string `json:"square"`
}

type squareView struct {
	Square         string       `json:"square"`
	Piece          string       `json:"piece"`
	WhiteAttackers []attackView `json:"white_attackers"`
	BlackAttackers []attackView `json:"black_attackers"`
	Defenders      []attackView `json:"defenders"`
	IsHanging      bool         `json:"is_hanging"`
	IsProtected    bool         `json:"is_protected"`
	Exchange       int          `json:"exchange"`
}

type moveView struct {
	Move         string       `json:"move"`
	Piece        string       `json:"piece"`
	Captured     string       `json:"captured,omitempty"`
	Attackers    []attackView `json:"destination_attackers"`
	Defenders    []attackView `json:"destination_defenders"`
	Recapture    bool         `json:"recapture"`
	Exchange     int          `json:"exchange"`
	GivesCheck   bool         `json:"gives_check"`
	NewlyHanging []string     `json:"newly_hanging,omitempty"`
	BlockedRays  []string     `json:"blocked_rays,omitempty"`
	Warnings     []string     `json:"warnings,omitempty"`
}

type hangingView struct {
	Color      string        `json:"color"`
	Hanging    []pieceAtView `json:"hanging"`
	Undefended []pieceAtView `json:"undefended"`
}

type pinView struct {
	Pinned    string `json:"pinned"`
	Attacker  string `json:"attacker"`
	King      string `json:"king"`
	Direction string `json:"direction"`
}

type skewerView struct {
	Attacker string `json:"attacker"`
	Front    string `json:"front"`
	Back     string `json:"back"`
}

type forkView struct {
	Forker  string   `json:"forker"`
	Targets []string `json:"targets"`
}

type forkChanceView struct {
	Piece      string   `json:"piece"`
	To         string   `json:"to"`
	Targets    []string `json:"targets"`
	Safe       bool     `json:"safe"`
	TotalValue int      `json:"total_value"`
}

type discoveryView struct {
	Slider  string `json:"slider"`
	Blocker string `json:"blocker"`
	King    string `json:"king"`
}

type tacticsView struct {
	Color       string           `json:"color"`
	Pins        []pinView        `json:"pins"`
	Skewers     []skewerView     `json:"skewers"`
	Forks       []forkView       `json:"forks"`
	Discoveries []discoveryView  `json:"discoveries"`
	ForkChances []forkChanceView `json:"fork_chances"`
}

type surveyEntry struct {
	Move         string `json:"move"`
	Captures     string `json:"captures,omitempty"`
	GivesCheck   bool   `json:"gives_check"`
	Recapture    bool   `json:"recapture"`
	Exchange     int    `json:"exchange"`
	NewlyHanging int    `json:"newly_hanging"`
	Warnings     int    `json:"warnings"`
}

type allView struct {
	FEN          string       `json:"fen"`
	SideToMove   string       `json:"side_to_move"`
	WhiteHanging *hangingView `json:"white"`
	BlackHanging *hangingView `json:"black"`
	Tactics      *tacticsView `json:"tactics"`
}

// pieceName renders a piece as "white knight", the register the text
// output uses; JSON keeps the FEN character.
func pieceName(p board.Piece) string {
	if p == board.NoPiece {
		return "empty"
	}
	names := [6]string{"pawn", "knight", "bishop", "rook", "queen", "king"}
	return colorName(p.Color()) + " " + names[p.Type()]
}

func colorName(c board.Color) string {
	return strings.ToLower(c.String())
}

// "white knight on f3"
func pieceAt(p board.Piece, sq board.Square) string {
	return pieceName(p) + " on " + sq.String()
}

func attackViews(recs []analysis.AttackRecord) []attackView {
	out := make([]attackView, 0, len(recs))
	for _, r := range recs {
		out = append(out, attackView{Piece: r.Attacker.String(), From: r.From.String()})
	}
	return out
}

func newSquareView(r *analysis.SquareReport) *squareView {
	return &squareView{
		Square:         r.Square.String(),
		Piece:          r.Piece.String(),
		WhiteAttackers: attackViews(r.WhiteAttackers),
		BlackAttackers: attackViews(r.BlackAttackers),
		Defenders:      attackViews(r.Defenders),
		IsHanging:      r.IsHanging,
		IsProtected:    r.IsProtected,
		Exchange:       r.Exchange,
	}
}

func newMoveView(r *analysis.MoveReport) *moveView {
	v := &moveView{
		Move:       r.Move.String(),
		Piece:      r.Piece.String(),
		Attackers:  attackViews(r.DestinationAttackers),
		Defenders:  attackViews(r.DestinationDefenders),
		Recapture:  r.Recapture,
		Exchange:   r.Exchange,
		GivesCheck: r.GivesCheck,
		Warnings:   r.Warnings,
	}
	if r.Captured != board.NoPiece {
		v.Captured = r.Captured.String()
	}
	for _, sq := range r.NewlyHanging {
		v.NewlyHanging = append(v.NewlyHanging, sq.String())
	}
	for _, o := range r.BlockedRays {
		v.BlockedRays = append(v.BlockedRays,
			fmt.Sprintf("%s %s", pieceAt(o.Piece, o.Square), o.Direction))
	}
	return v
}

func newHangingView(p *board.Position, c board.Color) (*hangingView, error) {
	hanging, err := analysis.FindHanging(p, c)
	if err != nil {
		return nil, err
	}
	v := &hangingView{Color: colorName(c), Hanging: []pieceAtView{}, Undefended: []pieceAtView{}}
	for _, sq := range hanging {
		v.Hanging = append(v.Hanging, pieceAtView{Piece: p.PieceAt(sq).String(), Square: sq.String()})
	}
	for _, sq := range analysis.FindUndefended(p, c) {
		v.Undefended = append(v.Undefended, pieceAtView{Piece: p.PieceAt(sq).String(), Square: sq.String()})
	}
	return v, nil
}

func newTacticsView(p *board.Position, c board.Color) (*tacticsView, error) {
	v := &tacticsView{
		Color:       colorName(c),
		Pins:        []pinView{},
		Skewers:     []skewerView{},
		Forks:       []forkView{},
		Discoveries: []discoveryView{},
		ForkChances: []forkChanceView{},
	}

	// Pins threatening color c are set up by the other side; the
	// remaining scans enumerate c's own opportunities.
	pins, err := analysis.FindPins(p, c)
	if err != nil {
		return nil, err
	}
	for _, r := range pins {
		v.Pins = append(v.Pins, pinView{
			Pinned:    pieceAt(r.PinnedPiece, r.Pinned),
			Attacker:  pieceAt(r.AttackerPiece, r.Attacker),
			King:      r.King.String(),
			Direction: r.Direction.String(),
		})
	}

	skewers, err := analysis.FindSkewers(p, c)
	if err != nil {
		return nil, err
	}
	for _, r := range skewers {
		v.Skewers = append(v.Skewers, skewerView{
			Attacker: pieceAt(r.AttackerPiece, r.Attacker),
			Front:    pieceAt(r.FrontPiece, r.Front),
			Back:     pieceAt(r.BackPiece, r.Back),
		})
	}

	forks, err := analysis.FindForks(p, c)
	if err != nil {
		return nil, err
	}
	for _, r := range forks {
		fv := forkView{Forker: pieceAt(r.ForkerPiece, r.Forker)}
		for _, t := range r.Targets {
			fv.Targets = append(fv.Targets, pieceAt(t.Piece, t.Square))
		}
		v.Forks = append(v.Forks, fv)
	}

	discoveries, err := analysis.FindDiscoveries(p, c)
	if err != nil {
		return nil, err
	}
	for _, r := range discoveries {
		v.Discoveries = append(v.Discoveries, discoveryView{
			Slider:  pieceAt(r.SliderPiece, r.Slider),
			Blocker: pieceAt(r.BlockerPiece, r.Blocker),
			King:    r.King.String(),
		})
	}

	chances, err := analysis.FindForkOpportunities(p, c)
	if err != nil {
		return nil, err
	}
	for _, r := range chances {
		cv := forkChanceView{
			Piece:      pieceAt(r.Piece, r.From),
			To:         r.To.String(),
			Safe:       r.Safe,
			TotalValue: r.TotalValue,
		}
		for _, t := range r.Targets {
			cv.Targets = append(cv.Targets, pieceAt(t.Piece, t.Square))
		}
		v.ForkChances = append(v.ForkChances, cv)
	}
	return v, nil
}

// Text renderers. The register follows the original tool: short
// declarative lines, "none" spelled out so silence never reads as
// failure.

func writeAttackList(w io.Writer, label string, views []attackView) {
	if len(views) == 0 {
		fmt.Fprintf(w, "%s: none\n", label)
		return
	}
	parts := make([]string, 0, len(views))
	for _, v := range views {
		parts = append(parts, v.Piece+" on "+v.From)
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(parts, ", "))
}

func writeSquareText(w io.Writer, v *squareView) {
	piece := board.PieceFromChar(v.Piece[0])
	fmt.Fprintf(w, "%s: %s\n", v.Square, pieceName(piece))
	writeAttackList(w, "  white attackers", v.WhiteAttackers)
	writeAttackList(w, "  black attackers", v.BlackAttackers)
	writeAttackList(w, "  defenders", v.Defenders)
	fmt.Fprintf(w, "  hanging: %v, protected: %v, exchange if captured: %+d\n",
		v.IsHanging, v.IsProtected, v.Exchange)
}

func writeMoveText(w io.Writer, v *moveView) {
	piece := board.PieceFromChar(v.Piece[0])
	fmt.Fprintf(w, "%s (%s)", v.Move, pieceName(piece))
	if v.Captured != "" {
		fmt.Fprintf(w, " takes %s", pieceName(board.PieceFromChar(v.Captured[0])))
	}
	if v.GivesCheck {
		fmt.Fprint(w, ", check")
	}
	fmt.Fprintln(w)
	writeAttackList(w, "  attackers after", v.Attackers)
	writeAttackList(w, "  defenders after", v.Defenders)
	if v.Recapture {
		fmt.Fprintf(w, "  recapture available, exchange for opponent: %+d\n", v.Exchange)
	} else {
		fmt.Fprintln(w, "  no recapture available")
	}
	for _, s := range v.NewlyHanging {
		fmt.Fprintf(w, "  newly hanging: %s\n", s)
	}
	for _, s := range v.BlockedRays {
		fmt.Fprintf(w, "  blocks own ray: %s\n", s)
	}
	for _, s := range v.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", s)
	}
}

func writeHangingText(w io.Writer, v *hangingView) {
	if len(v.Hanging) == 0 {
		fmt.Fprintf(w, "no hanging %s pieces\n", v.Color)
	} else {
		fmt.Fprintf(w, "hanging %s pieces:\n", v.Color)
		for _, h := range v.Hanging {
			fmt.Fprintf(w, "  %s\n", pieceAt(board.PieceFromChar(h.Piece[0]), mustSquare(h.Square)))
		}
	}
	if len(v.Undefended) > 0 {
		fmt.Fprintf(w, "undefended %s pieces (not necessarily attacked):\n", v.Color)
		for _, h := range v.Undefended {
			fmt.Fprintf(w, "  %s\n", pieceAt(board.PieceFromChar(h.Piece[0]), mustSquare(h.Square)))
		}
	}
}

func writeTacticsText(w io.Writer, v *tacticsView) {
	fmt.Fprintf(w, "tactics for %s:\n", v.Color)
	if len(v.Pins) == 0 && len(v.Skewers) == 0 && len(v.Forks) == 0 &&
		len(v.Discoveries) == 0 && len(v.ForkChances) == 0 {
		fmt.Fprintln(w, "  none found")
		return
	}
	for _, r := range v.Pins {
		fmt.Fprintf(w, "  pin: %s pinned to king on %s by %s (%s)\n",
			r.Pinned, r.King, r.Attacker, r.Direction)
	}
	for _, r := range v.Skewers {
		fmt.Fprintf(w, "  skewer: %s hits %s through %s\n", r.Attacker, r.Back, r.Front)
	}
	for _, r := range v.Forks {
		fmt.Fprintf(w, "  fork: %s attacks %s\n", r.Forker, strings.Join(r.Targets, " and "))
	}
	for _, r := range v.Discoveries {
		fmt.Fprintf(w, "  discovery: moving %s unmasks %s against the king on %s\n",
			r.Blocker, r.Slider, r.King)
	}
	for _, r := range v.ForkChances {
		safety := "safe"
		if !r.Safe {
			safety = "unsafe"
		}
		fmt.Fprintf(w, "  fork chance: %s to %s forks %s (%s, value %d)\n",
			r.Piece, r.To, strings.Join(r.Targets, " and "), safety, r.TotalValue)
	}
}

func writeSurveyText(w io.Writer, entries []surveyEntry) {
	// Losing or complicating moves first so they are hard to miss.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Warnings > entries[j].Warnings
	})
	for _, e := range entries {
		fmt.Fprintf(w, "%-6s", e.Move)
		var notes []string
		if e.Captures != "" {
			notes = append(notes, "takes "+pieceName(board.PieceFromChar(e.Captures[0])))
		}
		if e.GivesCheck {
			notes = append(notes, "check")
		}
		if e.Recapture {
			notes = append(notes, fmt.Sprintf("recapture %+d", e.Exchange))
		}
		if e.NewlyHanging > 0 {
			notes = append(notes, fmt.Sprintf("hangs %d", e.NewlyHanging))
		}
		if len(notes) == 0 {
			notes = append(notes, "quiet")
		}
		fmt.Fprintf(w, " %s\n", strings.Join(notes, ", "))
	}
}

// writeBoard prints the grid the way the prompt shows it, honoring the
// unicode preference.
func writeBoard(w io.Writer, p *board.Position, unicode bool) {
	glyphs := map[byte]string{
		'P': "♙", 'N': "♘", 'B': "♗", 'R': "♖", 'Q': "♕", 'K': "♔",
		'p': "♟", 'n': "♞", 'b': "♝", 'r': "♜", 'q': "♛", 'k': "♚",
	}
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(board.NewSquare(file, rank))
			cell := "."
			if piece != board.NoPiece {
				cell = piece.String()
				if unicode {
					cell = glyphs[piece.String()[0]]
				}
			}
			fmt.Fprintf(w, "%s ", cell)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n   a b c d e f g h\n\nside to move: %s\n", colorName(p.SideToMove))
}

func mustSquare(s string) board.Square {
	sq, err := board.ParseSquare(s)
	if err != nil {
		return board.NoSquare
	}
	return sq
}
