package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"melite/internal/api"
	"melite/internal/game"
	"melite/internal/log"
)

// ErrQuit is returned by Execute when the player asks to leave
var ErrQuit = errors.New("quit")

// Store persists commanders for the save and load commands
type Store interface {
	SaveCommander(ctx context.Context, c game.Commander) error
	LoadCommander(ctx context.Context, name string) (game.Commander, error)
	ListCommanders(ctx context.Context) ([]string, error)
}

// ChartFunc draws the local chart to w
type ChartFunc func(ctx context.Context, w io.Writer) error

type handler func(in *Interpreter, ctx context.Context, args []string) error

type command struct {
	name  string
	usage string
	help  string
	run   handler
}

// commands in match order; a prefix selects the first command it fits
var table []command

func init() {
	table = []command{
		{"buy", "buy <good> <amount>", "buy goods", (*Interpreter).buy},
		{"sell", "sell <good> <amount>", "sell goods", (*Interpreter).sell},
		{"fuel", "fuel <ly>", "buy fuel", (*Interpreter).fuel},
		{"jump", "jump <system>", "hyperspace to a system in range", (*Interpreter).jump},
		{"cash", "cash <+/-credits>", "adjust cash", (*Interpreter).cash},
		{"mkt", "mkt", "show the local market", (*Interpreter).mkt},
		{"help", "help", "list commands", (*Interpreter).help},
		{"hold", "hold <tonnes>", "set the cargo bay size", (*Interpreter).hold},
		{"sneak", "sneak <system>", "move to any system without using fuel", (*Interpreter).sneak},
		{"local", "local", "list systems within a full tank", (*Interpreter).local},
		{"info", "info <system>", "show system details", (*Interpreter).info},
		{"galhyp", "galhyp", "jump to the next galaxy", (*Interpreter).galhyp},
		{"quit", "quit", "leave the game", (*Interpreter).quit},
		{"rand", "rand", "toggle the random number generator", (*Interpreter).rand},
		{"route", "route <system> [jumps]", "plan a multi-jump route", (*Interpreter).route},
		{"chart", "chart", "draw the local chart", (*Interpreter).chart},
		{"save", "save [name]", "save the commander", (*Interpreter).save},
		{"load", "load [name]", "load a commander, or list saves", (*Interpreter).load},
	}
}

// Interpreter runs Text Elite style command lines against a game. Output is
// written to a single writer so the same interpreter serves the terminal UI
// and telnet sessions.
type Interpreter struct {
	api       api.GameAPI
	out       io.Writer
	store     Store
	chartFn   ChartFunc
	commander string
	printer   *message.Printer
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithStore enables save and load
func WithStore(s Store) Option {
	return func(in *Interpreter) { in.store = s }
}

// WithCommander sets the default commander name used by save
func WithCommander(name string) Option {
	return func(in *Interpreter) { in.commander = name }
}

// WithChart enables the chart command
func WithChart(fn ChartFunc) Option {
	return func(in *Interpreter) { in.chartFn = fn }
}

// New creates an interpreter writing to out. Game messages, such as trade
// reports, are printed as they arrive until Close is called.
func New(g api.GameAPI, out io.Writer, opts ...Option) *Interpreter {
	in := &Interpreter{
		api:       g,
		out:       out,
		commander: "Jameson",
		printer:   message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(in)
	}
	g.AddListener(in)
	return in
}

// Close stops printing game messages
func (in *Interpreter) Close() {
	in.api.RemoveListener(in)
}

// OnMessage implements api.Listener
func (in *Interpreter) OnMessage(msg string) {
	in.println(msg)
}

func (in *Interpreter) OnSystemChanged(api.SystemInfo)        {}
func (in *Interpreter) OnStatusChanged(api.Status)            {}
func (in *Interpreter) OnMarketChanged([]api.MarketplaceItem) {}

func (in *Interpreter) printf(format string, args ...any) {
	in.printer.Fprintf(in.out, format, args...)
}

func (in *Interpreter) println(s string) {
	fmt.Fprintln(in.out, s)
}

func lookup(word string) (command, bool) {
	word = strings.ToLower(word)
	for _, c := range table {
		if strings.HasPrefix(c.name, word) {
			return c, true
		}
	}
	return command{}, false
}

// Execute runs one command line. Game errors are reported to the output and
// are not returned; only ErrQuit and context errors come back.
func (in *Interpreter) Execute(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	c, ok := lookup(fields[0])
	if !ok {
		in.println("Bad command")
		return nil
	}

	log.Debug("command", "name", c.name, "args", fields[1:])
	err := c.run(in, ctx, fields[1:])
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrQuit), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, errUsage):
		in.println("Usage: " + c.usage)
	default:
		in.println(sentence(err.Error()))
	}
	return nil
}

// Run reads command lines from r until EOF, quit or cancellation
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	in.prompt()
	for scanner.Scan() {
		if err := in.Execute(ctx, scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		in.prompt()
	}
	return scanner.Err()
}

func (in *Interpreter) prompt() {
	in.printf("\n\nCash :%.1f>", in.api.Cash())
}

var errUsage = errors.New("usage")

func sentence(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") {
		s += "."
	}
	return s
}
