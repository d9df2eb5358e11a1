package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/haydensixseven-jpg/sketchdash-server/internal"
	"github.com/haydensixseven-jpg/sketchdash-server/internal/game"
	"github.com/haydensixseven-jpg/sketchdash-server/internal/server"
	"github.com/haydensixseven-jpg/sketchdash-server/internal/words"
)

const releaseVersion = "0.1.0"

type serverConfig struct {
	bind string
	port int

	maxPlayers int
	minPlayers int
	rounds     int

	startDelay int
	pickTime   int
	drawTime   int
	resultTime int
	podiumTime int

	basePoints  int
	bonusPoints int
	drawerBonus int

	wordsCSV     string
	databaseURL  string
	canvasReplay bool
}

func (c *serverConfig) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.minPlayers < 2 {
		return errors.New("--min-players must be at least 2")
	}
	if c.maxPlayers < c.minPlayers {
		return errors.New("--max-players must not be below --min-players")
	}
	if c.rounds < 1 {
		return errors.New("--rounds must be at least 1")
	}
	if c.pickTime < 1 || c.drawTime < 1 {
		return errors.New("--pick-time and --draw-time must be at least 1 second")
	}
	return nil
}

func (c *serverConfig) gameConfig() internal.Config {
	cfg := internal.DefaultConfig()
	cfg.MaxPlayersPerRoom = c.maxPlayers
	cfg.MinPlayersToStart = c.minPlayers
	cfg.TotalRounds = c.rounds
	cfg.StartDelaySeconds = c.startDelay
	cfg.PickSeconds = c.pickTime
	cfg.DrawSeconds = c.drawTime
	cfg.ResultSeconds = c.resultTime
	cfg.PodiumSeconds = c.podiumTime
	cfg.BasePoints = c.basePoints
	cfg.BonusPoints = c.bonusPoints
	cfg.DrawerBonus = c.drawerBonus
	cfg.CanvasReplay = c.canvasReplay
	return cfg
}

func newCmd(cfg *serverConfig) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SKETCHDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "sketchdash-server",
		Short:         "Real-time multiplayer drawing and guessing game server.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SKETCHDASH_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to listen on (env: SKETCHDASH_PORT)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 8, "room capacity (env: SKETCHDASH_MAX_PLAYERS)")
	fs.IntVar(&cfg.minPlayers, "min-players", 2, "players needed to start a game (env: SKETCHDASH_MIN_PLAYERS)")
	fs.IntVar(&cfg.rounds, "rounds", 5, "turns per game (env: SKETCHDASH_ROUNDS)")
	fs.IntVar(&cfg.startDelay, "start-delay", 3, "seconds between game start and first turn (env: SKETCHDASH_START_DELAY)")
	fs.IntVar(&cfg.pickTime, "pick-time", 15, "word selection countdown in seconds (env: SKETCHDASH_PICK_TIME)")
	fs.IntVar(&cfg.drawTime, "draw-time", 60, "drawing countdown in seconds (env: SKETCHDASH_DRAW_TIME)")
	fs.IntVar(&cfg.resultTime, "result-time", 8, "round results display in seconds (env: SKETCHDASH_RESULT_TIME)")
	fs.IntVar(&cfg.podiumTime, "podium-time", 10, "podium display in seconds (env: SKETCHDASH_PODIUM_TIME)")
	fs.IntVar(&cfg.basePoints, "base-points", 100, "flat points for a correct guess (env: SKETCHDASH_BASE_POINTS)")
	fs.IntVar(&cfg.bonusPoints, "bonus-points", 500, "max time bonus for a correct guess (env: SKETCHDASH_BONUS_POINTS)")
	fs.IntVar(&cfg.drawerBonus, "drawer-bonus", 50, "drawer points per correct guesser (env: SKETCHDASH_DRAWER_BONUS)")
	fs.StringVar(&cfg.wordsCSV, "words-csv", "", "path to a CSV word corpus (env: SKETCHDASH_WORDS_CSV)")
	fs.StringVar(&cfg.databaseURL, "database-url", "", "postgres connection string for the word corpus (env: SKETCHDASH_DATABASE_URL)")
	fs.BoolVar(&cfg.canvasReplay, "canvas-replay", false, "replay the current canvas to late joiners (env: SKETCHDASH_CANVAS_REPLAY)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("sketchdash-server v{{.Version}}\n")

	return cmd
}

// loadCorpus picks the word source: Postgres when configured, then CSV,
// then the built-in list.
func loadCorpus(ctx context.Context, cfg *serverConfig) ([]string, error) {
	switch {
	case cfg.databaseURL != "":
		store, err := words.NewStore(ctx, cfg.databaseURL)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Words(ctx)
	case cfg.wordsCSV != "":
		return words.LoadCSV(cfg.wordsCSV)
	default:
		return words.DefaultCorpus, nil
	}
}

func run(ctx context.Context, cfg *serverConfig) error {
	gameCfg := cfg.gameConfig()

	corpus, err := loadCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	provider, err := words.NewProvider(corpus, gameCfg.WordChoices)
	if err != nil {
		return err
	}

	engine := game.NewEngine(gameCfg, provider, game.NewWSGateway(), game.TickScheduler{})
	srv := server.New(cfg.bind, cfg.port, engine)

	log.Printf("sketchdash-server v%s listening on %s (corpus: %d words)", releaseVersion, srv.Addr, provider.Size())
	return srv.ListenAndServe()
}

func main() {
	// .env is optional; real deployments set the SKETCHDASH_* variables
	// directly.
	_ = godotenv.Load()

	cfg := &serverConfig{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
