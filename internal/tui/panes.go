package tui

import (
	"fmt"

	"github.com/rivo/tview"

	"melite/internal/api"
	"melite/internal/theme"
)

func (a *App) renderStatus(st api.Status) {
	colors := a.factory.Theme().StatusColors()
	a.status.SetText(fmt.Sprintf(" %s%s[-]  Galaxy %d  │  Cash %.1f CR  │  Fuel %.1f LY  │  Hold %d/%dt free",
		theme.Hex(colors.HighlightFg), tview.Escape(st.Name), st.Galaxy,
		st.Cash, st.Fuel, st.HoldSpace, st.CargoBay))
	a.input.SetLabel(fmt.Sprintf("Cash :%.1f> ", st.Cash))
}

var marketHeader = []string{"Good", "Price", "", "Stock", "Held"}

func (a *App) renderMarket(items []api.MarketplaceItem, cargo []uint) {
	colors := a.factory.Theme().PanelColors()
	empty := a.factory.Theme().DefaultColors().Waiting

	for col, h := range marketHeader {
		a.market.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(colors.HeaderFg).
			SetSelectable(false))
	}

	goods := a.api.Tradegoods()
	for i, g := range goods {
		row := i + 1
		color := colors.Foreground
		if items[i].Amount == 0 && cargo[i] == 0 {
			color = empty
		}
		cells := []*tview.TableCell{
			tview.NewTableCell(g.Name).SetExpansion(1),
			tview.NewTableCell(fmt.Sprintf("%.1f", items[i].Price)).SetAlign(tview.AlignRight),
			tview.NewTableCell(g.Unit),
			tview.NewTableCell(fmt.Sprintf("%d", items[i].Amount)).SetAlign(tview.AlignRight),
			tview.NewTableCell(fmt.Sprintf("%d", cargo[i])).SetAlign(tview.AlignRight),
		}
		for col, c := range cells {
			a.market.SetCell(row, col, c.SetTextColor(color))
		}
	}
}

// renderHeld updates only the Held column after a trade
func (a *App) renderHeld(cargo []uint) {
	for i, q := range cargo {
		if c := a.market.GetCell(i+1, 4); c != nil {
			c.SetText(fmt.Sprintf("%d", q))
		}
	}
}

func (a *App) renderLocal() {
	colors := a.factory.Theme().StatusColors()
	current := a.api.CurrentSystem()
	selected := a.local.GetCurrentItem()

	a.local.Clear()
	a.systems = a.systems[:0]
	for _, s := range a.api.Systems(api.MaximalReachable) {
		n := s.Number
		mark := theme.Hex(colors.UnreachableFg) + "-"
		switch {
		case n == current:
			mark = theme.Hex(colors.HighlightFg) + "@"
		case a.api.IsReachable(n):
			mark = theme.Hex(colors.ReachableFg) + "*"
		}
		main := fmt.Sprintf("%s %s[-]", mark, tview.Escape(s.Name))
		secondary := fmt.Sprintf("  TL %d  %s  %s  %.1f LY",
			s.TechLevel+1, s.Economy.Short(), s.Government.Short(), a.api.Distance(n))
		a.local.AddItem(main, secondary, 0, func() { a.jumpTo(n) })
		a.systems = append(a.systems, n)
	}
	if selected < a.local.GetItemCount() {
		a.local.SetCurrentItem(selected)
	}
}

// listener forwards game notifications onto the tview event loop. Messages
// are printed by the interpreter, which is a listener of its own.
type listener struct {
	app *App
}

func (l *listener) OnSystemChanged(api.SystemInfo) {
	l.app.queue(l.app.renderLocal)
}

func (l *listener) OnStatusChanged(st api.Status) {
	l.app.queue(func() {
		l.app.renderStatus(st)
		l.app.renderHeld(st.Cargo)
		l.app.renderLocal()
	})
}

func (l *listener) OnMarketChanged(items []api.MarketplaceItem) {
	l.app.queue(func() {
		l.app.renderMarket(items, l.app.api.Cargo())
	})
}

func (l *listener) OnMessage(string) {}
