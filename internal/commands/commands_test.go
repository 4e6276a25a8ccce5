package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melite/internal/api"
	"melite/internal/game"
	"melite/internal/market"
)

type memStore struct {
	saved map[string]game.Commander
}

func (m *memStore) SaveCommander(_ context.Context, c game.Commander) error {
	if m.saved == nil {
		m.saved = map[string]game.Commander{}
	}
	m.saved[c.Name] = c
	return nil
}

func (m *memStore) LoadCommander(_ context.Context, name string) (game.Commander, error) {
	c, ok := m.saved[name]
	if !ok {
		return game.Commander{}, errors.New("commander not found")
	}
	return c, nil
}

func (m *memStore) ListCommanders(context.Context) ([]string, error) {
	var names []string
	for n := range m.saved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func setup(t *testing.T, opts ...Option) (*Interpreter, *api.Wrapper, *bytes.Buffer) {
	t.Helper()
	w, err := api.New(game.Options{Seed: game.DefaultSeed})
	require.NoError(t, err)
	var out bytes.Buffer
	return New(w, &out, opts...), w, &out
}

func run(t *testing.T, in *Interpreter, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, in.Execute(context.Background(), line))
	return out.String()
}

func TestLookupUsesTableOrder(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"b", "buy"},
		{"s", "sell"},
		{"sn", "sneak"},
		{"sa", "save"},
		{"l", "local"},
		{"loa", "load"},
		{"c", "cash"},
		{"ch", "chart"},
		{"r", "rand"},
		{"ro", "route"},
		{"GAL", "galhyp"},
	}
	for _, tt := range tests {
		c, ok := lookup(tt.word)
		require.True(t, ok, tt.word)
		assert.Equal(t, tt.want, c.name, tt.word)
	}

	_, ok := lookup("xyzzy")
	assert.False(t, ok)
}

func TestBadCommand(t *testing.T) {
	in, _, out := setup(t)
	assert.Equal(t, "Bad command\n", run(t, in, out, "xyzzy"))
	assert.Empty(t, run(t, in, out, "   "))
}

func TestBuyAndSell(t *testing.T) {
	in, w, out := setup(t)

	assert.Equal(t, "Bought 3t of Food.\n", run(t, in, out, "buy food 3"))
	assert.Equal(t, uint(3), w.Cargo()[market.Food])

	assert.Equal(t, "Bought 1t of Minerals.\n", run(t, in, out, "b min"))
	assert.Equal(t, "Sold 3t of Food.\n", run(t, in, out, "sell fo 9"))
	assert.Equal(t, "Cannot sell: you don't have any of these.\n", run(t, in, out, "sell food 1"))
	assert.Equal(t, "Cannot buy: the market does not sell this at the moment.\n", run(t, in, out, "buy fire 1"))
	assert.Contains(t, run(t, in, out, "buy spice 1"), "Unknown trade good")
	assert.Equal(t, "Usage: buy <good> <amount>\n", run(t, in, out, "buy"))
	assert.Equal(t, "Usage: buy <good> <amount>\n", run(t, in, out, "buy food lots"))
}

func TestPartialPurchaseExplainsLimit(t *testing.T) {
	in, _, out := setup(t)
	assert.Equal(t, "The market does not sell this at the moment.\nBought 16t of Food.\n", run(t, in, out, "buy food 30"))
}

func TestCloseStopsMessages(t *testing.T) {
	in, w, out := setup(t)
	in.Close()
	out.Reset()
	_, err := w.Purchase(market.Food, 1)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestJumpAndInfo(t *testing.T) {
	in, w, out := setup(t)

	got := run(t, in, out, "jump diso")
	assert.Contains(t, got, "Jumped to Diso.")
	assert.Contains(t, got, "System:  Diso")
	assert.Equal(t, 3.4, w.Fuel())

	got = run(t, in, out, "j tibedied")
	assert.Contains(t, got, "Jump too far (system not in range, even with full fuel).")

	got = run(t, in, out, "i lave")
	assert.Contains(t, got, "System:  Lave")
	assert.Contains(t, got, "Tech Level: 5")
	assert.Contains(t, got, "Economy: (5) Rich agricultural")
	assert.Contains(t, got, "Government: (3) Dictatorship")
	assert.Contains(t, got, "Population: 2.5 Billion")
	assert.Contains(t, got, "Lave is most famous for its vast rain forests and the Lavian tree grub.")

	assert.Contains(t, run(t, in, out, "jump nowhere"), `No system called "nowhere"`)
}

func TestSneakAndGalhyp(t *testing.T) {
	in, w, out := setup(t)

	assert.Contains(t, run(t, in, out, "sneak tibedied"), "Jumped to Tibedied.")
	assert.Equal(t, 7.0, w.Fuel())
	assert.Equal(t, "Jumped to galaxy 2.\n", run(t, in, out, "galhyp"))
	assert.Equal(t, 2, w.GalaxyNumber())
}

func TestMarket(t *testing.T) {
	in, _, out := setup(t)

	got := run(t, in, out, "mkt")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.GreaterOrEqual(t, len(lines), market.NumGoods+2)
	assert.Regexp(t, `^Food\s+3\.6 t\s+16\s+0$`, lines[1])
	assert.Regexp(t, `^Gold\s+36\.8 kg\s+7\s+0$`, lines[1+market.Gold])
	assert.Contains(t, got, "Fuel :7.0      Holdspace :20t")
}

func TestLocal(t *testing.T) {
	in, w, out := setup(t)
	require.NoError(t, w.SetFuel(4))

	got := run(t, in, out, "local")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Galaxy number 1", lines[0])
	assert.Regexp(t, `^\* Lave\s+TL:\s+5 Rich Agri\s+Dictatorship\s+\(0\.0 LY\)$`, lines[1])
	assert.Regexp(t, `^\* Diso .*\(3\.6 LY\)$`, lines[6])
	assert.Regexp(t, `^- Riedquat .*\(7\.0 LY\)$`, lines[3])
}

func TestControlCommands(t *testing.T) {
	in, w, out := setup(t)

	assert.Equal(t, "Cash :150.0\n", run(t, in, out, "cash +50"))
	assert.Equal(t, "Cash :140.0\n", run(t, in, out, "cash -10"))
	assert.Equal(t, "Cargo bay is now 35t\n", run(t, in, out, "hold 35"))
	assert.Equal(t, uint(35), w.CargoBaySize())

	run(t, in, out, "buy food 10")
	assert.Contains(t, run(t, in, out, "hold 5"), "Hold too full")

	assert.Equal(t, "Using native random numbers\n", run(t, in, out, "rand"))
	assert.Equal(t, "Using portable random numbers\n", run(t, in, out, "rand"))
}

func TestFuelCommand(t *testing.T) {
	in, w, out := setup(t)

	assert.Contains(t, run(t, in, out, "fuel 1"), "Can't buy any fuel: tank is full.")
	require.NoError(t, w.SetFuel(3))
	assert.Equal(t, "Bought 1.5 LY fuel.\n", run(t, in, out, "f 1.5"))
	assert.Equal(t, 4.5, w.Fuel())
	assert.Equal(t, "Usage: fuel <ly>\n", run(t, in, out, "fuel much"))
}

func TestRouteCommand(t *testing.T) {
	in, _, out := setup(t)

	got := run(t, in, out, "route tibedied")
	assert.True(t, strings.HasPrefix(got, "Lave -> "))
	assert.Contains(t, got, "-> Tibedied\n")
	assert.Contains(t, got, "4 jumps, 18.4 LY")

	got = run(t, in, out, "ro tibedied jumps")
	assert.Contains(t, got, "4 jumps")
}

func TestSaveAndLoad(t *testing.T) {
	store := &memStore{}
	in, w, out := setup(t, WithStore(store), WithCommander("Jameson"))

	run(t, in, out, "buy food 2")
	assert.Equal(t, "Commander Jameson saved.\n", run(t, in, out, "save"))
	assert.Equal(t, "Commander Blake saved.\n", run(t, in, out, "save Blake"))

	run(t, in, out, "sell food 2")
	assert.Equal(t, uint(0), w.Cargo()[market.Food])

	assert.Equal(t, "Saved commanders: Blake, Jameson\n", run(t, in, out, "load"))
	assert.Equal(t, "Commander Jameson loaded.\n", run(t, in, out, "load Jameson"))
	assert.Equal(t, uint(2), w.Cargo()[market.Food])
	assert.Contains(t, run(t, in, out, "load Nobody"), "Load failed")
}

func TestSaveWithoutStore(t *testing.T) {
	in, _, out := setup(t)
	assert.Equal(t, "Saving is not available.\n", run(t, in, out, "save"))
	assert.NotContains(t, run(t, in, out, "help"), "save")
}

func TestChart(t *testing.T) {
	called := false
	in, _, out := setup(t, WithChart(func(_ context.Context, w io.Writer) error {
		called = true
		_, err := io.WriteString(w, "<chart>")
		return err
	}))
	assert.Equal(t, "<chart>", run(t, in, out, "chart"))
	assert.True(t, called)
	assert.Contains(t, run(t, in, out, "help"), "chart")
}

func TestQuitAndRun(t *testing.T) {
	in, _, out := setup(t)
	assert.ErrorIs(t, in.Execute(context.Background(), "quit"), ErrQuit)

	out.Reset()
	err := in.Run(context.Background(), strings.NewReader("buy food 1\nquit\nbuy food 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "Bought 1t of Food."))
	assert.Contains(t, out.String(), "Cash :100.0>")
}

func TestExecuteHonoursContext(t *testing.T) {
	in, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, in.Execute(ctx, "mkt"), context.Canceled)
}
