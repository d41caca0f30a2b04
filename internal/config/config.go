package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/battleships/internal/coord"
	"github.com/robalobadob/battleships/internal/daily"
	"github.com/robalobadob/battleships/internal/game"
)

// EnvPrefix namespaces environment overrides, e.g. BATTLESHIPS_SHIPS=3.
const EnvPrefix = "BATTLESHIPS"

// Config holds the resolved settings for one run. A zero Seed means a fresh
// random layout; zero Rounds means ask after each game.
type Config struct {
	Ships      int
	Guesses    int
	Rows       int
	Cols       int
	ShowHidden bool
	Seed       uint64
	Daily      bool
	DailySalt  string
	Rounds     int
	LogLevel   string
}

// Load resolves configuration from defaults, environment and args, in
// increasing order of precedence. Call godotenv.Load first to pick up .env.
func Load(args []string) (Config, error) {
	v := viper.New()
	defaults := game.DefaultConfig()

	fs := pflag.NewFlagSet("battleships", pflag.ContinueOnError)
	fs.Int("ships", defaults.Ships, "number of ships to hide")
	fs.Int("guesses", defaults.Guesses, "guess budget per game")
	fs.Int("rows", defaults.Codec.Rows(), "board rows (1-26, labelled a, b, c, ...)")
	fs.Int("cols", defaults.Codec.Cols(), "board columns (labelled 1, 2, 3, ...)")
	fs.Bool("show-hidden", false, "also print the hidden board (diagnostics)")
	fs.Uint64("seed", 0, "ship placement seed, 0 for random")
	fs.Bool("daily", false, "play the board of the day")
	fs.String("daily-salt", "battleships", "salt mixed into the daily seed")
	fs.Int("rounds", 0, "number of games to play, 0 to ask after each game")
	fs.String("log-level", "info", "debug|info|warn|error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// LOG_LEVEL is honoured unprefixed as well.
	if err := v.BindEnv("log-level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	return Config{
		Ships:      v.GetInt("ships"),
		Guesses:    v.GetInt("guesses"),
		Rows:       v.GetInt("rows"),
		Cols:       v.GetInt("cols"),
		ShowHidden: v.GetBool("show-hidden"),
		Seed:       v.GetUint64("seed"),
		Daily:      v.GetBool("daily"),
		DailySalt:  v.GetString("daily-salt"),
		Rounds:     v.GetInt("rounds"),
		LogLevel:   v.GetString("log-level"),
	}, nil
}

// GameConfig turns the settings into engine parameters. The returned source
// is shared by every game built from it, so a fixed seed yields a repeatable
// sequence of layouts rather than the same layout each round.
func (c Config) GameConfig(now time.Time) (game.Config, error) {
	codec, err := coord.GenerateCodec(c.Rows, c.Cols)
	if err != nil {
		return game.Config{}, fmt.Errorf("%w: %v", game.ErrConfiguration, err)
	}

	gc := game.Config{
		Ships:   c.Ships,
		Guesses: c.Guesses,
		Codec:   codec,
	}
	switch {
	case c.Daily:
		gc.Source = game.NewSource(daily.Seed(now, c.DailySalt))
	case c.Seed != 0:
		gc.Source = game.NewSource(c.Seed)
	}
	return gc, nil
}
