// Package qwixx parses the game command configuration and runs a match at the
// terminal, with any seats handed to scripted bots.
package qwixx

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	entrypoint "github.com/louisbranch/qwixx/internal/platform/cmd"
	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/platform/id"
	"github.com/louisbranch/qwixx/internal/qwixx/bot"
	"github.com/louisbranch/qwixx/internal/qwixx/console"
	"github.com/louisbranch/qwixx/internal/qwixx/match"
	"github.com/louisbranch/qwixx/internal/qwixx/rules"
	"github.com/louisbranch/qwixx/internal/random"
)

// Config holds game command configuration. Environment variables carry the
// QWIXX_ prefix; rule variants are read from QWIXX_RULES_*.
type Config struct {
	Players   int         `env:"PLAYERS" envDefault:"2"`
	Names     string      `env:"NAMES"`
	Bots      string      `env:"BOTS"`
	BotScript string      `env:"BOT_SCRIPT"`
	Seed      int64       `env:"SEED"`
	Locale    string      `env:"LOCALE" envDefault:"en-US"`
	Ranking   string      `env:"RANKING" envDefault:"ascending"`
	LogLevel  string      `env:"LOG_LEVEL" envDefault:"info"`
	Rules     rules.Rules `envPrefix:"RULES_"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Players, "players", cfg.Players, "Number of seats")
	fs.StringVar(&cfg.Names, "names", cfg.Names, "Comma-separated seat names")
	fs.StringVar(&cfg.Bots, "bots", cfg.Bots, "Comma-separated seats played by bots, e.g. 2,3")
	fs.StringVar(&cfg.BotScript, "bot-script", cfg.BotScript, "Lua policy for bots (default: embedded greedy policy)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Dice seed (0 picks a random seed)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Message locale")
	fs.StringVar(&cfg.Ranking, "ranking", cfg.Ranking, "Standings order: ascending or descending")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays one match reading human answers from in. The board and results go
// to out; logs go to errOut.
func Run(ctx context.Context, cfg Config, in io.Reader, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := logrus.New()
	logger.SetOutput(errOut)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, "log level", err)
	}
	logger.SetLevel(level)

	ranking, err := match.ParseRanking(cfg.Ranking)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, "ranking", err)
	}
	bots, err := parseSeats(cfg.Bots, cfg.Players)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeConfigInvalid, "bots", err)
	}
	seed, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return err
	}

	matchID, err := id.NewID()
	if err != nil {
		return err
	}

	term := console.New(in, out, cfg.Locale)
	names := seatNames(cfg.Names, cfg.Players, bots)
	players := make([]match.Player, cfg.Players)
	for i := range players {
		seat := i + 1
		if !bots[seat] {
			players[i] = term.Player(names[i])
			continue
		}
		b, err := newBot(names[i], cfg.BotScript, logger)
		if err != nil {
			return err
		}
		players[i] = b
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceQwixx, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		m, err := match.New(cfg.Rules, players, random.NewSource(seed),
			match.WithID(matchID), match.WithLogger(logger), match.WithRanking(ranking))
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"seed":    seed,
			"players": cfg.Players,
			"bots":    cfg.Bots,
		}).Info("match started")
		for !m.Finished() {
			report, err := m.PlayRound(ctx)
			if err != nil {
				return err
			}
			term.Announce(m, report, names)
		}
		term.Standings(m.EndReason(), m.Standings(), names)
		return nil
	})
}

func newBot(name, script string, logger logrus.FieldLogger) (*bot.Bot, error) {
	if script == "" {
		return bot.Greedy(name, bot.WithLogger(logger))
	}
	return bot.LoadFile(name, script, bot.WithLogger(logger))
}

// parseSeats reads a comma-separated list of 1-based seats.
func parseSeats(list string, players int) (map[int]bool, error) {
	seats := map[int]bool{}
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		seat, err := strconv.Atoi(field)
		if err != nil || seat < 1 || seat > players {
			return nil, fmt.Errorf("bot seat %q must be a number in [1, %d]", field, players)
		}
		seats[seat] = true
	}
	return seats, nil
}

func seatNames(list string, players int, bots map[int]bool) []string {
	given := strings.Split(list, ",")
	names := make([]string, players)
	for i := range names {
		if i < len(given) && strings.TrimSpace(given[i]) != "" {
			names[i] = strings.TrimSpace(given[i])
			continue
		}
		if bots[i+1] {
			names[i] = fmt.Sprintf("bot %d", i+1)
			continue
		}
		names[i] = fmt.Sprintf("player %d", i+1)
	}
	return names
}
