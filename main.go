package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"melite/internal/api"
	"melite/internal/chart"
	"melite/internal/commands"
	"melite/internal/config"
	"melite/internal/database"
	"melite/internal/game"
	"melite/internal/log"
	"melite/internal/route"
	"melite/internal/telnet"
	"melite/internal/theme"
	"melite/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: melite [command] [flags]

Commands:
  play     trade in the terminal UI, or line by line when not on a terminal (default)
  serve    run the telnet server
  chart    draw the local chart, or a route with --route
  saves    list or delete saved commanders
  version  print version information

Flags:
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintln(os.Stderr, "mElite crashed. See the log file for details.")
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Error("melite failed", "error", err)
		fmt.Fprintf(os.Stderr, "melite: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// splitCommand separates the subcommand from its flags; play is the default
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "play", args
}

func newFlags() *pflag.FlagSet {
	fs := config.Flags()
	fs.String("load", "", "commander to load before starting")
	fs.String("protocol", "auto", "chart image protocol (auto, sixel, kitty, iterm2, png)")
	fs.String("route", "", "chart: destination system of a route to draw")
	fs.String("delete", "", "saves: commander to delete")
	fs.Bool("plain", false, "play: line mode even on a terminal")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd, rest := splitCommand(args)
	if cmd == "version" {
		fmt.Fprintf(stdout, "melite %s (%s, %s)\n", version, commit, date)
		return nil
	}

	fs := newFlags()
	if err := fs.Parse(rest); err != nil {
		return err
	}
	configDir, _ := fs.GetString("config-dir")
	if err := config.Load(configDir, fs); err != nil {
		return err
	}
	cfg, err := config.Get()
	if err != nil {
		return err
	}
	if err := setupLogging(cmd, cfg.Log); err != nil {
		return err
	}
	if err := theme.Set(cfg.UI.Theme); err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("melite starting", "command", cmd, "version", version, "database", cfg.Database.Path)

	switch cmd {
	case "play":
		return play(ctx, fs, cfg, db, stdin, stdout)
	case "serve":
		return serve(ctx, cfg, db)
	case "chart":
		return drawChart(ctx, fs, cfg, db, stdout)
	case "saves":
		return saves(ctx, fs, db, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// setupLogging keeps records off the screen while the terminal UI owns it
func setupLogging(cmd string, c config.LogConfig) error {
	if err := log.SetLevel(c.Level); err != nil {
		return err
	}
	if c.File != "" {
		return log.SetFileOutput(c.File)
	}
	if cmd == "play" {
		log.SetOutput(io.Discard)
	}
	return nil
}

func gameOptions(cfg config.Config) game.Options {
	return game.Options{
		Seed:               cfg.Game.Seed,
		NativeRand:         cfg.Game.NativeRand,
		PoliticallyCorrect: cfg.Game.PoliticallyCorrect,
	}
}

// newGame starts a game and restores the commander named by --load
func newGame(ctx context.Context, fs *pflag.FlagSet, cfg config.Config, db *database.DB) (*api.Wrapper, string, error) {
	w, err := api.New(gameOptions(cfg))
	if err != nil {
		return nil, "", err
	}
	name := cfg.Game.Commander
	load, _ := fs.GetString("load")
	if load == "" {
		return w, name, nil
	}
	c, err := db.LoadCommander(ctx, load)
	if err != nil {
		return nil, "", err
	}
	if err := w.Restore(c); err != nil {
		return nil, "", fmt.Errorf("restore %s: %w", load, err)
	}
	return w, c.Name, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func play(ctx context.Context, fs *pflag.FlagSet, cfg config.Config, db *database.DB, stdin io.Reader, stdout io.Writer) error {
	w, name, err := newGame(ctx, fs, cfg, db)
	if err != nil {
		return err
	}

	plain, _ := fs.GetBool("plain")
	if plain || !isTerminal(stdout) {
		opts := []commands.Option{commands.WithStore(db), commands.WithCommander(name)}
		if isTerminal(stdout) {
			protocol, err := protocolFlag(fs)
			if err != nil {
				return err
			}
			opts = append(opts, commands.WithChart(chart.Command(w, chartOptions(cfg, protocol))))
		}
		in := commands.New(w, stdout, opts...)
		defer in.Close()
		fmt.Fprintf(stdout, "Welcome to mElite, Commander %s.\n", name)
		return in.Run(ctx, stdin)
	}

	app := tui.NewApplication(w, tui.Options{Store: db, Commander: name, Theme: theme.Current()})
	return app.Run(ctx)
}

func serve(ctx context.Context, cfg config.Config, db *database.DB) error {
	srv := telnet.NewServer(telnet.Config{
		Address:     cfg.Telnet.Address,
		MaxSessions: cfg.Telnet.MaxSessions,
		IdleTimeout: cfg.Telnet.IdleTimeout,
		Game:        gameOptions(cfg),
		Commander:   cfg.Game.Commander,
		Store:       db,
	})
	err := srv.ListenAndServe(ctx)
	if errors.Is(err, telnet.ErrServerClosed) {
		log.Info("telnet server stopped")
		return nil
	}
	return err
}

func protocolFlag(fs *pflag.FlagSet) (chart.Protocol, error) {
	s, _ := fs.GetString("protocol")
	return chart.ParseProtocol(s)
}

func chartOptions(cfg config.Config, p chart.Protocol) chart.Options {
	return chart.Options{
		Radius:   cfg.Chart.Radius,
		Width:    cfg.Chart.Width,
		Height:   cfg.Chart.Height,
		Protocol: p,
	}
}

// drawChart writes the chart around the commander. Output that is not a
// terminal gets plain PNG bytes unless a protocol is named.
func drawChart(ctx context.Context, fs *pflag.FlagSet, cfg config.Config, db *database.DB, stdout io.Writer) error {
	w, _, err := newGame(ctx, fs, cfg, db)
	if err != nil {
		return err
	}
	protocol, err := protocolFlag(fs)
	if err != nil {
		return err
	}
	if !fs.Changed("protocol") && !isTerminal(stdout) {
		protocol = chart.PNGFile
	}

	c := chart.Chart{
		Galaxy:  w.Galaxy(),
		Center:  w.CurrentSystem(),
		Fuel:    uint(w.Fuel()*10 + 0.5),
		MaxFuel: game.MaxFuel,
		Radius:  cfg.Chart.Radius,
	}
	if dest, _ := fs.GetString("route"); dest != "" {
		to, ok := w.MatchSystem(dest)
		if !ok {
			return fmt.Errorf("no system called %q", dest)
		}
		r, err := route.Plan(c.Galaxy, c.Center, to, game.MaxFuel, route.ByDistance)
		if err != nil {
			return err
		}
		c.Route = r.Systems
		log.Info("route planned", "to", dest, "jumps", r.Jumps, "distance", r.Distance)
	}

	data, err := c.PNG(ctx, cfg.Chart.Width, cfg.Chart.Height)
	if err != nil {
		return err
	}
	return chart.WriteTerminal(stdout, data, protocol)
}

func saves(ctx context.Context, fs *pflag.FlagSet, db *database.DB, stdout io.Writer) error {
	if name, _ := fs.GetString("delete"); name != "" {
		if err := db.DeleteCommander(ctx, name); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted commander %s.\n", name)
		return nil
	}

	migrations, err := db.Migrations(ctx)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		state := "pending"
		if m.Applied {
			state = "applied"
		}
		fmt.Fprintf(stdout, "schema %d %-7s %s\n", m.ID, state, m.Description)
	}

	names, err := db.ListCommanders(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(stdout, "No saved commanders.")
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return nil
}
