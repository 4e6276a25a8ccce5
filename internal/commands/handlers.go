package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"melite/internal/api"
	"melite/internal/game"
	"melite/internal/route"
)

func (in *Interpreter) tradeArgs(args []string) (int, int, error) {
	if len(args) == 0 {
		return 0, 0, errUsage
	}
	good, ok := in.api.MatchTradegood(args[0])
	if !ok {
		return 0, 0, fmt.Errorf("unknown trade good %q", args[0])
	}
	amount := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return 0, 0, errUsage
		}
		amount = n
	}
	return good, amount, nil
}

func (in *Interpreter) buy(_ context.Context, args []string) error {
	good, amount, err := in.tradeArgs(args)
	if err != nil {
		return err
	}
	if _, err := in.api.Purchase(good, amount); err != nil {
		return fmt.Errorf("cannot buy: %w", err)
	}
	return nil
}

func (in *Interpreter) sell(_ context.Context, args []string) error {
	good, amount, err := in.tradeArgs(args)
	if err != nil {
		return err
	}
	if _, err := in.api.Sale(good, amount); err != nil {
		return fmt.Errorf("cannot sell: %w", err)
	}
	return nil
}

func (in *Interpreter) fuel(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	ly, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errUsage
	}
	if _, err := in.api.BuyFuel(ly); err != nil {
		return fmt.Errorf("can't buy any fuel: %w", err)
	}
	return nil
}

func (in *Interpreter) matchSystem(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errUsage
	}
	n, ok := in.api.MatchSystem(strings.Join(args, " "))
	if !ok {
		return 0, fmt.Errorf("no system called %q", strings.Join(args, " "))
	}
	return n, nil
}

func (in *Interpreter) jump(_ context.Context, args []string) error {
	n, err := in.matchSystem(args)
	if err != nil {
		return err
	}
	if _, err := in.api.Jump(n); err != nil {
		return err
	}
	return in.printSystem(n)
}

func (in *Interpreter) sneak(_ context.Context, args []string) error {
	n, err := in.matchSystem(args)
	if err != nil {
		return err
	}
	if _, err := in.api.Sneak(n); err != nil {
		return err
	}
	return in.printSystem(n)
}

func (in *Interpreter) galhyp(context.Context, []string) error {
	_, err := in.api.GalacticHyperspace()
	return err
}

func (in *Interpreter) info(_ context.Context, args []string) error {
	n := in.api.CurrentSystem()
	if len(args) > 0 {
		var err error
		if n, err = in.matchSystem(args); err != nil {
			return err
		}
	}
	return in.printSystem(n)
}

func (in *Interpreter) printSystem(n int) error {
	s, err := in.api.SystemInfo(n)
	if err != nil {
		return err
	}
	in.printf("\nSystem:  %s", s.Name)
	in.printf("\nPosition (%d,%d)", s.X, s.Y)
	in.printf("\nEconomy: (%d) %s", int(s.Economy), api.EconomyName(s.Economy))
	in.printf("\nGovernment: (%d) %s", int(s.Government), api.GovernmentName(s.Government))
	in.printf("\nTech Level: %d", s.TechLevel+1)
	in.printf("\nTurnover: %d", s.Productivity)
	in.printf("\nRadius: %d", s.Radius)
	in.printf("\nPopulation: %.1f Billion", float64(s.Population)/10)
	in.printf("\nDistance: %.1f LY", in.api.Distance(n))
	in.printf("\n\n%s\n", s.Description)
	return nil
}

func (in *Interpreter) mkt(context.Context, []string) error {
	goods := in.api.Tradegoods()
	items := in.api.Marketplace()
	cargo := in.api.Cargo()

	in.printf("\n%-14s %7s %-4s %5s %5s\n", "Good", "Price", "", "Stock", "Held")
	for i, g := range goods {
		in.printf("%-14s %7.1f %-4s %5d %5d\n", g.Name, items[i].Price, g.Unit, items[i].Amount, cargo[i])
	}
	in.printf("\nFuel :%.1f      Holdspace :%dt\n", in.api.Fuel(), in.api.FreeHoldSpace())
	return nil
}

func (in *Interpreter) local(context.Context, []string) error {
	in.printf("Galaxy number %d\n", in.api.GalaxyNumber())
	for _, s := range in.api.Systems(api.MaximalReachable) {
		mark := "-"
		if in.api.IsReachable(s.Number) {
			mark = "*"
		}
		in.printf("%s %-10s TL: %2d %-12s %-15s (%.1f LY)\n",
			mark, s.Name, s.TechLevel+1, s.Economy.Short(), s.Government.Short(), in.api.Distance(s.Number))
	}
	return nil
}

func (in *Interpreter) cash(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	cr, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errUsage
	}
	if err := in.api.AddCash(cr); err != nil {
		return err
	}
	in.printf("Cash :%.1f\n", in.api.Cash())
	return nil
}

func (in *Interpreter) hold(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	size, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return errUsage
	}
	if err := in.api.SetCargoBay(uint(size)); err != nil {
		return fmt.Errorf("hold too full: %w", err)
	}
	in.printf("Cargo bay is now %dt\n", in.api.CargoBaySize())
	return nil
}

func (in *Interpreter) rand(context.Context, []string) error {
	if in.api.ToggleRandom() {
		in.println("Using native random numbers")
	} else {
		in.println("Using portable random numbers")
	}
	return nil
}

func (in *Interpreter) quit(context.Context, []string) error {
	return ErrQuit
}

func (in *Interpreter) help(context.Context, []string) error {
	in.println("Commands (a prefix is enough):")
	for _, c := range table {
		if (c.name == "save" || c.name == "load") && in.store == nil {
			continue
		}
		if c.name == "chart" && in.chartFn == nil {
			continue
		}
		in.printf("  %-24s %s\n", c.usage, c.help)
	}
	return nil
}

func (in *Interpreter) route(_ context.Context, args []string) error {
	weight := route.ByDistance
	if len(args) > 1 && strings.EqualFold(args[len(args)-1], "jumps") {
		weight = route.ByJumps
		args = args[:len(args)-1]
	}
	dest, err := in.matchSystem(args)
	if err != nil {
		return err
	}

	gal := in.api.Galaxy()
	r, err := route.Plan(gal, in.api.CurrentSystem(), dest, game.MaxFuel, weight)
	if err != nil {
		return err
	}

	names := make([]string, len(r.Systems))
	for i, n := range r.Systems {
		names[i] = gal.Systems[n].Name
	}
	in.println(strings.Join(names, " -> "))
	in.printf("%d jumps, %.1f LY\n", r.Jumps, float64(r.Distance)/10)
	return nil
}

func (in *Interpreter) chart(ctx context.Context, _ []string) error {
	if in.chartFn == nil {
		in.println("Chart is not available here.")
		return nil
	}
	return in.chartFn(ctx, in.out)
}

func (in *Interpreter) save(ctx context.Context, args []string) error {
	if in.store == nil {
		in.println("Saving is not available.")
		return nil
	}
	name := in.commander
	if len(args) > 0 {
		name = args[0]
	}
	if err := in.store.SaveCommander(ctx, in.api.Commander(name)); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	in.commander = name
	in.printf("Commander %s saved.\n", name)
	return nil
}

func (in *Interpreter) load(ctx context.Context, args []string) error {
	if in.store == nil {
		in.println("Loading is not available.")
		return nil
	}
	if len(args) == 0 {
		names, err := in.store.ListCommanders(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			in.println("No saved commanders.")
			return nil
		}
		in.println("Saved commanders: " + strings.Join(names, ", "))
		return nil
	}

	c, err := in.store.LoadCommander(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if err := in.api.Restore(c); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	in.commander = c.Name
	in.printf("Commander %s loaded.\n", c.Name)
	return nil
}
