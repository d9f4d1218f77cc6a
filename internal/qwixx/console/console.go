// Package console plays seats from a terminal: it renders the roll and the
// seat's board, reads choices line by line and announces round results in
// the configured locale.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/platform/errors/i18n"
	"github.com/louisbranch/qwixx/internal/platform/i18n/catalog"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
	"github.com/louisbranch/qwixx/internal/qwixx/match"
)

// Terminal is one shared input and output stream. Seats played at the same
// terminal take turns reading from it.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	errs    *i18n.Catalog
	printer *message.Printer
}

// New returns a terminal reading in and writing out, localized for locale.
// Console text falls back to the base locale when the embedded console
// messages lack the locale chosen for error messages.
func New(in io.Reader, out io.Writer, locale string) *Terminal {
	errs := i18n.GetCatalog(locale)
	return &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		errs:    errs,
		printer: message.NewPrinter(language.Make(consoleLocale(catalog.Default(), errs.Locale()))),
	}
}

func consoleLocale(messages *catalog.Bundle, locale string) string {
	if messages.HasLocale(locale) {
		return locale
	}
	return catalog.BaseLocale
}

// Player returns a seat played at this terminal under name.
func (t *Terminal) Player(name string) *Player {
	return &Player{name: name, term: t}
}

// Player is a match.Player answered by a human at a Terminal.
type Player struct {
	name string
	term *Terminal
}

var _ match.Player = (*Player)(nil)

// Choose shows the roll and board on the first attempt, explains a rejected
// answer, then reads one line.
func (p *Player) Choose(ctx context.Context, prompt match.Prompt) (string, error) {
	t := p.term
	if prompt.Attempt <= 1 {
		faces, err := prompt.Faces.Render()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(t.out, "\n%s\n\n%s\n", faces, prompt.Board.String())
	}
	if prompt.Rejected != nil {
		fmt.Fprintln(t.out, t.Describe(prompt.Rejected))
	}
	key := "console.turn.acting"
	if prompt.Mode == dice.ModeReactive {
		key = "console.turn.reactive"
	}
	t.printer.Fprintf(t.out, key, p.name)
	return t.readLine(ctx)
}

// Switch asks until the answer is yes or no.
func (p *Player) Switch(ctx context.Context, offer match.Offer) (bool, error) {
	t := p.term
	for {
		t.printer.Fprintf(t.out, "console.switch",
			p.name, offer.Current.String(), offer.Proposed.String(), t.color(offer.Color), offer.White)
		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "j", "ja":
			return true, nil
		case "n", "no", "nein":
			return false, nil
		}
		t.line("console.switch.retry")
	}
}

// Describe renders err from the localized error catalog, falling back to the
// raw message for errors without a code.
func (t *Terminal) Describe(err error) string {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return err.Error()
	}
	return t.errs.Format(string(code), apperrors.MetadataOf(err))
}

// Announce prints what every seat did in a round and which lanes closed.
func (t *Terminal) Announce(m *match.Match, report match.RoundReport, names []string) {
	t.line("console.round", report.Round, seatName(names, report.Active))
	skipCap := m.Rules().SkipCap
	for _, turn := range report.Turns {
		name := seatName(names, turn.Seat)
		b, _ := m.Board(turn.Seat)
		switch {
		case turn.Missed && turn.Forced:
			t.line("console.miss.forced", name, b.Skips(), skipCap)
		case turn.Missed:
			t.line("console.miss", name, b.Skips(), skipCap)
		case turn.Switched:
			t.line("console.switched", name, turn.Choice.String())
		case turn.Choice.Skip():
			t.line("console.passed", name)
		default:
			t.line("console.took", name, turn.Choice.String())
		}
	}
	for _, c := range report.Closed {
		t.line("console.closed", t.color(c))
	}
}

// Standings prints why the match ended and the ranked results.
func (t *Terminal) Standings(reason match.EndReason, standings []match.Standing, names []string) {
	switch reason {
	case match.EndedBySkips:
		t.line("console.end.skips")
	case match.EndedByClosedLanes:
		t.line("console.end.lanes")
	}
	t.line("console.standings")
	for i, s := range standings {
		t.line("console.standing", i+1, seatName(names, s.Seat), s.Score, s.Skips)
	}
}

// line prints the localized message key followed by a newline.
func (t *Terminal) line(key string, args ...any) {
	t.printer.Fprintf(t.out, key, args...)
	fmt.Fprintln(t.out)
}

func (t *Terminal) color(c board.Color) string {
	return t.printer.Sprintf("console.color." + c.String())
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func seatName(names []string, seat int) string {
	if seat >= 1 && seat <= len(names) && names[seat-1] != "" {
		return names[seat-1]
	}
	return fmt.Sprintf("player %d", seat)
}
