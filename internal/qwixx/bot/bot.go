// Package bot plays seats with a Lua policy script.
//
// A script defines choose(turn), returning choice text ("" to miss or pass),
// and may define switch(offer), returning whether to take a closing switch;
// without it every switch is taken. The global table qwixx exposes helpers
// evaluated against the seat's current board and roll:
//
//	qwixx.possible(text)       -> true | false, reason
//	qwixx.picks(text)          -> {{color=, number=}, ...} | nil, reason
//	qwixx.gap(color, number)   -> open cells passed over, -1 when illegal
//	qwixx.skipped(text)        -> open cells a whole selection passes over | nil, reason
package bot

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/sirupsen/logrus"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
	"github.com/louisbranch/qwixx/internal/qwixx/match"
)

//go:embed greedy.lua
var greedyScript string

// ErrScript indicates a policy script that does not load or misbehaves.
var ErrScript = apperrors.New(apperrors.CodeScriptInvalid, "invalid bot script")

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the structured logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Bot) {
		if l != nil {
			b.log = l
		}
	}
}

// Bot is a match.Player backed by its own Lua state. A Bot is not safe for
// concurrent use.
type Bot struct {
	name  string
	state *lua.State
	log   logrus.FieldLogger

	board board.Board
	faces dice.Faces
	mode  dice.Mode
}

var _ match.Player = (*Bot)(nil)

// Greedy returns a bot running the embedded greedy policy.
func Greedy(name string, opts ...Option) (*Bot, error) {
	return New(name, "greedy.lua", greedyScript, opts...)
}

// LoadFile returns a bot running the policy script at path.
func LoadFile(name, path string, opts ...Option) (*Bot, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScriptInvalid, "read bot script "+path, err)
	}
	return New(name, path, string(source), opts...)
}

// New loads source, named chunk in error messages, and checks it defines choose.
func New(name, chunk, source string, opts ...Option) (*Bot, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	b := &Bot{name: name, state: state, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(b)
	}
	b.registerHelpers()

	if err := lua.LoadBuffer(state, source, "="+chunk, ""); err != nil {
		return nil, scriptError(chunk, "load", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, scriptError(chunk, "run", err)
	}
	state.Global("choose")
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, apperrors.Detail(ErrScript, chunk+" does not define choose",
			map[string]string{"Reason": chunk + " does not define choose(turn)"})
	}
	return b, nil
}

// Name returns the seat name the bot plays under.
func (b *Bot) Name() string {
	return b.name
}

// Choose calls the script's choose(turn).
func (b *Bot) Choose(ctx context.Context, p match.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.board, b.faces, b.mode = p.Board, p.Faces, p.Mode

	b.state.Global("choose")
	b.pushTurn(p)
	if err := b.state.ProtectedCall(1, 1, 0); err != nil {
		b.state.Pop(1)
		return "", scriptError(b.name, "choose", err)
	}
	defer b.state.Pop(1)
	if b.state.IsNil(-1) {
		return "", nil
	}
	text, ok := b.state.ToString(-1)
	if !ok {
		reason := "choose must return a string"
		return "", apperrors.Detail(ErrScript, reason, map[string]string{"Reason": reason})
	}
	b.log.WithFields(logrus.Fields{
		"bot":     b.name,
		"round":   p.Round,
		"attempt": p.Attempt,
		"choice":  text,
	}).Debug("bot chose")
	return text, nil
}

// Switch calls the script's switch(offer) when defined and accepts otherwise.
func (b *Bot) Switch(ctx context.Context, o match.Offer) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	b.state.Global("switch")
	if !b.state.IsFunction(-1) {
		b.state.Pop(1)
		return true, nil
	}
	b.board = o.Board

	s := b.state
	s.NewTable()
	setInt(s, "round", o.Round)
	setInt(s, "seat", o.Seat)
	setInt(s, "white", o.White)
	setString(s, "color", o.Color.String())
	setString(s, "current", o.Current.String())
	setString(s, "proposed", o.Proposed.String())
	if err := s.ProtectedCall(1, 1, 0); err != nil {
		s.Pop(1)
		return false, scriptError(b.name, "switch", err)
	}
	answer := s.ToBoolean(-1)
	s.Pop(1)
	return answer, nil
}

func (b *Bot) pushTurn(p match.Prompt) {
	s := b.state
	s.NewTable()
	setInt(s, "round", p.Round)
	setInt(s, "seat", p.Seat)
	setInt(s, "attempt", p.Attempt)
	setString(s, "mode", p.Mode.String())
	setInt(s, "white", p.Faces.White())
	setInt(s, "white1", p.Faces.White1)
	setInt(s, "white2", p.Faces.White2)
	setInt(s, "skips", p.Board.Skips())
	if p.Rejected != nil {
		setString(s, "rejected", p.Rejected.Error())
	}
	s.NewTable()
	for _, c := range board.Colors {
		setInt(s, strings.ToLower(c.Letter()), p.Faces.Die(c))
	}
	s.SetField(-2, "dice")
}

func (b *Bot) registerHelpers() {
	b.state.NewTable()
	lua.SetFunctions(b.state, []lua.RegistryFunction{
		{Name: "possible", Function: b.possible},
		{Name: "picks", Function: b.picks},
		{Name: "gap", Function: b.gap},
		{Name: "skipped", Function: b.skipped},
	}, 0)
	b.state.SetGlobal("qwixx")
}

func (b *Bot) check(text string) ([]board.Pick, error) {
	p := match.Prompt{Mode: b.mode, Faces: b.faces, Board: b.board}
	_, picks, err := p.Check(text)
	return picks, err
}

func (b *Bot) possible(state *lua.State) int {
	if _, err := b.check(lua.CheckString(state, 1)); err != nil {
		state.PushBoolean(false)
		state.PushString(err.Error())
		return 2
	}
	state.PushBoolean(true)
	return 1
}

func (b *Bot) picks(state *lua.State) int {
	picks, err := b.check(lua.CheckString(state, 1))
	if err != nil {
		state.PushNil()
		state.PushString(err.Error())
		return 2
	}
	state.NewTable()
	for i, p := range picks {
		state.PushInteger(i + 1)
		state.NewTable()
		setString(state, "color", strings.ToLower(p.Color.Letter()))
		setInt(state, "number", p.Number)
		state.SetTable(-3)
	}
	return 1
}

func (b *Bot) gap(state *lua.State) int {
	color, err := board.ParseColor(lua.CheckString(state, 1))
	if err != nil {
		lua.ArgumentError(state, 1, "color expected")
		return 0
	}
	number := lua.CheckInteger(state, 2)
	state.PushInteger(b.board.Lane(color).Gap(number))
	return 1
}

// skipped simulates the selection on a copy of the board and sums the open
// cells each strike passes over.
func (b *Bot) skipped(state *lua.State) int {
	picks, err := b.check(lua.CheckString(state, 1))
	if err != nil {
		state.PushNil()
		state.PushString(err.Error())
		return 2
	}
	sim := b.board
	total := 0
	for _, p := range picks {
		total += sim.Lane(p.Color).Gap(p.Number)
		if err := sim.Select(p.Color, p.Number); err != nil {
			lua.Errorf(state, "simulate %s: %s", p, err.Error())
			return 0
		}
	}
	state.PushInteger(total)
	return 1
}

func setInt(s *lua.State, key string, v int) {
	s.PushInteger(v)
	s.SetField(-2, key)
}

func setString(s *lua.State, key, v string) {
	s.PushString(v)
	s.SetField(-2, key)
}

func scriptError(chunk, stage string, err error) error {
	reason := fmt.Sprintf("%s %s: %v", chunk, stage, err)
	return apperrors.Detail(ErrScript, reason, map[string]string{"Reason": reason})
}
