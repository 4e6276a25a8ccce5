package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"melite/internal/api"
	"melite/internal/commands"
	"melite/internal/log"
	"melite/internal/theme"
)

// Options configures the terminal UI
type Options struct {
	Store     commands.Store
	Commander string
	Theme     theme.Theme
}

// App is the tview front end of one game. All game calls are made from the
// tview event loop; game notifications are queued onto it.
type App struct {
	app     *tview.Application
	api     api.GameAPI
	interp  *commands.Interpreter
	factory *theme.ThemedComponents
	ctx     context.Context

	pages   *tview.Pages
	grid    *tview.Grid
	status  *tview.TextView
	market  *tview.Table
	local   *tview.List
	console *tview.TextView
	input   *tview.InputField

	focusOrder []tview.Primitive
	systems    []int // local list entries, by system number
	listener   *listener
	queue      func(func())
	stopped    bool
}

// NewApplication builds the UI around g
func NewApplication(g api.GameAPI, opts Options) *App {
	t := opts.Theme
	if t == nil {
		t = theme.Current()
	}
	a := &App{
		app:     tview.NewApplication(),
		api:     g,
		factory: theme.NewThemedComponents(t),
		ctx:     context.Background(),
	}
	a.queue = func(f func()) { a.app.QueueUpdateDraw(f) }

	a.setupUI()

	var copts []commands.Option
	if opts.Store != nil {
		copts = append(copts, commands.WithStore(opts.Store))
	}
	if opts.Commander != "" {
		copts = append(copts, commands.WithCommander(opts.Commander))
	}
	a.interp = commands.New(g, a.console, copts...)

	a.listener = &listener{app: a}
	g.AddListener(a.listener)

	a.setupInputHandling()
	a.refresh()
	return a
}

// setupUI lays out status bar, market, local systems, console and input
func (a *App) setupUI() {
	a.status = a.factory.NewStatusBar()

	a.market = a.factory.NewTable()
	a.market.SetTitle(" Market ")
	a.market.SetFixed(1, 0)
	a.market.SetSelectable(true, false)
	a.market.SetSelectedFunc(func(row, _ int) {
		if row > 0 {
			a.buy(row - 1)
		}
	})
	a.market.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && (event.Rune() == 's' || event.Rune() == 'S') {
			if row, _ := a.market.GetSelection(); row > 0 {
				a.sell(row - 1)
			}
			return nil
		}
		return event
	})

	a.local = a.factory.NewList()
	a.local.SetTitle(" Local systems ")

	a.console = a.factory.NewTextView()
	a.console.SetBorder(true)
	a.console.SetTitle(" Console ")
	a.console.SetScrollable(true)
	a.console.SetMaxLines(2000)
	// stays pinned to the last line until the player scrolls up
	a.console.ScrollToEnd()

	a.input = a.factory.NewInputField()
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := a.input.GetText()
		a.input.SetText("")
		a.submit(line)
	})

	a.grid = tview.NewGrid().
		SetRows(1, 0, 1).
		SetColumns(48, 0).
		SetBorders(false)
	a.grid.SetBackgroundColor(a.factory.Theme().DefaultColors().Background)

	left := a.factory.NewFlex()
	left.SetDirection(tview.FlexRow)
	left.AddItem(a.market, 0, 3, false)
	left.AddItem(a.local, 0, 2, false)

	a.grid.AddItem(a.status, 0, 0, 1, 2, 0, 0, false)
	a.grid.AddItem(left, 1, 0, 1, 1, 0, 0, false)
	a.grid.AddItem(a.console, 1, 1, 1, 1, 0, 0, false)
	a.grid.AddItem(a.input, 2, 0, 1, 2, 0, 0, true)

	a.pages = tview.NewPages()
	a.pages.AddPage("main", a.grid, true, true)

	a.focusOrder = []tview.Primitive{a.input, a.market, a.local}
	a.app.SetRoot(a.pages, true).SetFocus(a.input)
}

// setupInputHandling installs the global keys
func (a *App) setupInputHandling() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.Stop()
			return nil
		case tcell.KeyCtrlS:
			a.submit("save")
			return nil
		case tcell.KeyTab:
			a.cycleFocus(1)
			return nil
		case tcell.KeyBacktab:
			a.cycleFocus(-1)
			return nil
		}
		return event
	})
}

func (a *App) cycleFocus(step int) {
	current := a.app.GetFocus()
	next := 0
	for i, p := range a.focusOrder {
		if p == current {
			next = (i + step + len(a.focusOrder)) % len(a.focusOrder)
			break
		}
	}
	a.app.SetFocus(a.focusOrder[next])
}

// Run shows the UI until Esc, quit or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	stop := context.AfterFunc(ctx, func() {
		a.app.QueueUpdate(a.Stop)
	})
	defer stop()

	fmt.Fprintln(a.console, "Welcome to mElite. Type help for a list of commands.")
	log.Info("terminal UI started")
	err := a.app.Run()
	log.Info("terminal UI stopped")
	return err
}

// Stop detaches from the game and ends Run
func (a *App) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.interp.Close()
	a.api.RemoveListener(a.listener)
	a.app.Stop()
}

// submit echoes line to the console and runs it through the interpreter
func (a *App) submit(line string) {
	fmt.Fprintf(a.console, "> %s\n", line)
	err := a.interp.Execute(a.ctx, line)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrQuit):
		a.Stop()
	default:
		log.Warn("command failed", "line", line, "error", err)
		fmt.Fprintln(a.console, err)
	}
}

func (a *App) buy(good int) {
	if _, err := a.api.Purchase(good, 1); err != nil {
		fmt.Fprintf(a.console, "Cannot buy: %v.\n", err)
	}
}

func (a *App) sell(good int) {
	if _, err := a.api.Sale(good, 1); err != nil {
		fmt.Fprintf(a.console, "Cannot sell: %v.\n", err)
	}
}

// jumpTo hyperspaces to a system picked from the local list
func (a *App) jumpTo(n int) {
	if n == a.api.CurrentSystem() {
		return
	}
	if _, err := a.api.Jump(n); err != nil {
		fmt.Fprintf(a.console, "Cannot jump: %v.\n", err)
	}
}

// refresh redraws every pane from the game state
func (a *App) refresh() {
	a.renderStatus(a.api.Status())
	a.renderMarket(a.api.Marketplace(), a.api.Cargo())
	a.renderLocal()
}
