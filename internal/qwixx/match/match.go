// Package match runs rounds of a game over the players' boards and the shared
// dice: rolling, asking the active and reacting players, resolving the
// closing race and detecting the end of the game.
package match

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	coredice "github.com/louisbranch/qwixx/internal/core/dice"
	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
	"github.com/louisbranch/qwixx/internal/qwixx/rules"
)

const tracerName = "github.com/louisbranch/qwixx/internal/qwixx/match"

var (
	// ErrPlayerCount indicates a seat count outside the rule bounds.
	ErrPlayerCount = apperrors.New(apperrors.CodePlayerCountInvalid, "invalid player count")
	// ErrInvariantViolation indicates a rule-engine defect; the round is aborted.
	ErrInvariantViolation = apperrors.New(apperrors.CodeInvariantViolation, "invariant violation")
	// ErrPromptAttemptsExhausted indicates a player kept answering invalid choices.
	ErrPromptAttemptsExhausted = apperrors.New(apperrors.CodePromptAttemptsSpent, "prompt attempts exhausted")
	// ErrMatchFinished indicates a round requested after the end condition.
	ErrMatchFinished = apperrors.New(apperrors.CodeMatchFinished, "match finished")
)

// EndReason tells why a match is over.
type EndReason int

const (
	NotEnded EndReason = iota
	EndedBySkips
	EndedByClosedLanes
)

func (r EndReason) String() string {
	switch r {
	case EndedBySkips:
		return "skips"
	case EndedByClosedLanes:
		return "closed lanes"
	default:
		return "not ended"
	}
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the structured logger. Defaults to the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Match) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTracer sets the tracer for round spans. Defaults to the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(m *Match) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithID tags the match's logs and round spans with id.
func WithID(id string) Option {
	return func(m *Match) {
		m.id = id
	}
}

// WithRanking sets the standings order.
func WithRanking(r Ranking) Option {
	return func(m *Match) {
		m.ranking = r
	}
}

// Match owns one board per seat and the shared dice. Seats are numbered from 1
// in turn order.
type Match struct {
	id      string
	rules   rules.Rules
	players []Player
	boards  []*board.Board
	dice    *dice.Dice
	active  int
	round   int
	ranking Ranking
	log     logrus.FieldLogger
	tracer  trace.Tracer
}

// New builds a match for players rolling from src.
func New(r rules.Rules, players []Player, src coredice.Source, opts ...Option) (*Match, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if len(players) < r.MinPlayers || len(players) > r.MaxPlayers {
		return nil, apperrors.Detail(ErrPlayerCount,
			fmt.Sprintf("%d players, want %d to %d", len(players), r.MinPlayers, r.MaxPlayers),
			map[string]string{"Min": strconv.Itoa(r.MinPlayers), "Max": strconv.Itoa(r.MaxPlayers)})
	}
	if src == nil {
		return nil, fmt.Errorf("dice source is required")
	}
	m := &Match{
		rules:   r,
		players: make([]Player, len(players)),
		boards:  make([]*board.Board, len(players)),
		dice:    dice.New(src),
		log:     logrus.StandardLogger(),
		tracer:  otel.Tracer(tracerName),
	}
	for i, p := range players {
		if p == nil {
			return nil, fmt.Errorf("player %d is nil", i+1)
		}
		m.players[i] = p
		m.boards[i] = board.New(r)
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.id != "" {
		m.log = m.log.WithField("match", m.id)
	}
	return m, nil
}

// ID returns the identifier set with WithID.
func (m *Match) ID() string {
	return m.id
}

// Rules returns the rule variant the match was built with.
func (m *Match) Rules() rules.Rules {
	return m.rules
}

// Seats returns the number of players.
func (m *Match) Seats() int {
	return len(m.players)
}

// Active returns the seat of the active player of the next round.
func (m *Match) Active() int {
	return m.active + 1
}

// Round returns the count of rounds played.
func (m *Match) Round() int {
	return m.round
}

// Board returns a snapshot of the board of seat.
func (m *Match) Board(seat int) (board.Board, bool) {
	if seat < 1 || seat > len(m.boards) {
		return board.Board{}, false
	}
	return *m.boards[seat-1], true
}

// ClosedColors returns the union of closed lanes across every board, in board order.
func (m *Match) ClosedColors() []board.Color {
	var closed [rules.ColorCount]bool
	for _, b := range m.boards {
		for _, c := range b.ClosedColors() {
			closed[c] = true
		}
	}
	var colors []board.Color
	for _, c := range board.Colors {
		if closed[c] {
			colors = append(colors, c)
		}
	}
	return colors
}

// EndReason reports whether and why the match is over.
func (m *Match) EndReason() EndReason {
	for _, b := range m.boards {
		if b.ClosedBySkips() {
			return EndedBySkips
		}
	}
	if len(m.ClosedColors()) >= m.rules.ClosedLanesToEnd {
		return EndedByClosedLanes
	}
	return NotEnded
}

// Finished reports whether a board hit the miss cap or enough distinct lanes
// are closed across all boards.
func (m *Match) Finished() bool {
	return m.EndReason() != NotEnded
}

// Play runs rounds until the match is finished and returns the standings.
func (m *Match) Play(ctx context.Context) ([]Standing, error) {
	for !m.Finished() {
		if _, err := m.PlayRound(ctx); err != nil {
			return nil, err
		}
	}
	m.log.WithFields(logrus.Fields{
		"rounds": m.round,
		"reason": m.EndReason().String(),
	}).Info("match finished")
	return m.Standings(), nil
}

// PlayRound rolls the dice and plays one round: the active player chooses or
// misses, the other players may take the white sum, the closing race is
// resolved, selections are applied and the active seat advances.
func (m *Match) PlayRound(ctx context.Context) (report RoundReport, err error) {
	if m.Finished() {
		return RoundReport{}, ErrMatchFinished
	}
	m.round++
	ctx, span := m.tracer.Start(ctx, "qwixx.round", trace.WithAttributes(
		attribute.String("qwixx.match_id", m.id),
		attribute.Int("qwixx.round", m.round),
		attribute.Int("qwixx.active_seat", m.Active()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.End()
	}()

	if err := m.dice.Roll(); err != nil {
		return RoundReport{}, err
	}
	faces := m.dice.Faces()
	span.SetAttributes(attribute.Int("qwixx.white", faces.White()))
	log := m.log.WithFields(logrus.Fields{
		"round":  m.round,
		"active": m.Active(),
		"white":  faces.White(),
	})
	log.Info("round started")

	turns, err := m.collectTurns(ctx, faces)
	if err != nil {
		return RoundReport{}, err
	}
	if err := m.closingRace(ctx, faces, turns); err != nil {
		return RoundReport{}, err
	}

	before := m.ClosedColors()
	for _, t := range turns {
		if err := m.apply(t); err != nil {
			return RoundReport{}, err
		}
		if t.Missed {
			span.AddEvent("miss", trace.WithAttributes(
				attribute.Int("qwixx.seat", t.Seat),
				attribute.Bool("qwixx.forced", t.Forced),
			))
			log.WithFields(logrus.Fields{"seat": t.Seat, "forced": t.Forced}).Info("miss recorded")
		}
	}
	closed := newlyClosed(before, m.ClosedColors())
	for _, c := range closed {
		span.AddEvent("lane closed", trace.WithAttributes(attribute.String("qwixx.color", c.String())))
		log.WithField("color", c.String()).Info("lane closed")
	}

	report = RoundReport{
		Round:  m.round,
		Active: m.Active(),
		Faces:  faces,
		Turns:  make([]Turn, len(turns)),
		Closed: closed,
	}
	for i, t := range turns {
		report.Turns[i] = *t
	}
	m.active = m.next(m.active)
	return report, nil
}

func (m *Match) collectTurns(ctx context.Context, faces dice.Faces) ([]*Turn, error) {
	turns := make([]*Turn, 0, len(m.players))

	active := &Turn{Seat: m.Active(), Mode: dice.ModeActing}
	b := m.boards[m.active]
	if !b.IsDicePossible(faces.Options()) && !b.IsWhitePossible(faces.White()) {
		active.Forced = true
	} else {
		choice, picks, err := m.ask(ctx, m.active, dice.ModeActing, faces)
		if err != nil {
			return nil, err
		}
		active.Choice, active.Picks = choice, picks
	}
	turns = append(turns, active)

	for _, seat := range m.others() {
		if !m.boards[seat].IsWhitePossible(faces.White()) {
			continue
		}
		choice, picks, err := m.ask(ctx, seat, dice.ModeReactive, faces)
		if err != nil {
			return nil, err
		}
		turns = append(turns, &Turn{Seat: seat + 1, Mode: dice.ModeReactive, Choice: choice, Picks: picks})
	}
	return turns, nil
}

// ask prompts seat until its answer parses and fits its board. Rejections are
// passed back on the next prompt.
func (m *Match) ask(ctx context.Context, seat int, mode dice.Mode, faces dice.Faces) (dice.Choice, []board.Pick, error) {
	var rejected error
	for attempt := 1; m.rules.MaxPromptAttempts == 0 || attempt <= m.rules.MaxPromptAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return dice.Choice{}, nil, err
		}
		text, err := m.players[seat].Choose(ctx, Prompt{
			Round:    m.round,
			Seat:     seat + 1,
			Mode:     mode,
			Faces:    faces,
			Board:    *m.boards[seat],
			Attempt:  attempt,
			Rejected: rejected,
		})
		if err != nil {
			return dice.Choice{}, nil, fmt.Errorf("player %d choose: %w", seat+1, err)
		}
		choice, picks, err := resolve(m.boards[seat], faces, mode, text)
		if err == nil {
			return choice, picks, nil
		}
		if apperrors.IsFatal(err) {
			return dice.Choice{}, nil, err
		}
		m.log.WithFields(logrus.Fields{
			"round":   m.round,
			"seat":    seat + 1,
			"attempt": attempt,
			"input":   text,
		}).WithError(err).Debug("choice rejected")
		rejected = err
	}
	return dice.Choice{}, nil, apperrors.Detail(ErrPromptAttemptsExhausted,
		"player "+seatString(seat+1),
		map[string]string{
			"Player":   seatString(seat + 1),
			"Attempts": strconv.Itoa(m.rules.MaxPromptAttempts),
		})
}

// apply records a turn on its board. The active seat misses when it takes
// nothing; reacting seats may pass freely.
func (m *Match) apply(t *Turn) error {
	b := m.boards[t.Seat-1]
	if t.Choice.Skip() {
		if t.Mode != dice.ModeActing {
			return nil
		}
		if err := b.Skip(); err != nil {
			return apperrors.Wrap(apperrors.CodeSkipLimitExceeded, "seat "+seatString(t.Seat)+" skipped past the cap", err)
		}
		t.Missed = true
		return nil
	}
	if err := b.Apply(t.Picks); err != nil {
		return apperrors.Wrap(apperrors.CodeInvariantViolation, "validated selection rejected for seat "+seatString(t.Seat), err)
	}
	return nil
}

func (m *Match) next(seat int) int {
	return (seat + 1) % len(m.players)
}

// others lists the non-active seats in turn order after the active one.
func (m *Match) others() []int {
	others := make([]int, 0, len(m.players)-1)
	for seat := m.next(m.active); seat != m.active; seat = m.next(seat) {
		others = append(others, seat)
	}
	return others
}

func newlyClosed(before, after []board.Color) []board.Color {
	var closed []board.Color
	for _, c := range after {
		seen := false
		for _, b := range before {
			if b == c {
				seen = true
				break
			}
		}
		if !seen {
			closed = append(closed, c)
		}
	}
	return closed
}
