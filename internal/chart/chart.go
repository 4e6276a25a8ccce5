// Package chart draws galaxy charts: the systems around the commander, or a
// planned route, laid out at their galaxy coordinates by graphviz.
package chart

import (
	"sort"

	"melite/internal/galaxy"
)

// Class decides how a system is drawn
type Class int

const (
	Other Class = iota
	// InRange systems could be reached with a full tank
	InRange
	// Reachable systems can be reached with the fuel on board
	Reachable
	Current
)

func (c Class) String() string {
	switch c {
	case Current:
		return "current"
	case Reachable:
		return "reachable"
	case InRange:
		return "in range"
	default:
		return "other"
	}
}

var fillColors = map[Class]string{
	Current:   "yellow",
	Reachable: "palegreen",
	InRange:   "lightblue",
	Other:     "gray60",
}

// Chart describes what to draw. Distances are in tenths of a light year.
type Chart struct {
	Galaxy  *galaxy.Galaxy
	Center  int
	Fuel    uint
	MaxFuel uint
	Radius  uint
	Route   []int
}

// Systems lists the charted systems in galaxy order: everything within
// Radius of the centre plus every stop on the route
func (c Chart) Systems() []int {
	seen := make(map[int]bool)
	for _, n := range c.Galaxy.Local(c.Center, c.Radius) {
		seen[n] = true
	}
	for _, n := range c.Route {
		if n >= 0 && n < galaxy.Size {
			seen[n] = true
		}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Classify returns the drawing class of system n
func (c Chart) Classify(n int) Class {
	if n == c.Center {
		return Current
	}
	d := c.Galaxy.Distance(c.Center, n)
	switch {
	case d <= c.Fuel:
		return Reachable
	case d <= c.MaxFuel:
		return InRange
	default:
		return Other
	}
}

// legs returns the route as ordered pairs
func (c Chart) legs() [][2]int {
	var out [][2]int
	for i := 1; i < len(c.Route); i++ {
		out = append(out, [2]int{c.Route[i-1], c.Route[i]})
	}
	return out
}
