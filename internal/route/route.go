package route

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"

	"melite/internal/galaxy"
	"melite/internal/log"
)

var ErrNoRoute = errors.New("no route")

// Weight selects what a route minimises
type Weight int

const (
	// ByDistance minimises the fuel used
	ByDistance Weight = iota
	// ByJumps minimises the number of hyperspace jumps
	ByJumps
)

// Route is a planned sequence of systems, starting with the origin
type Route struct {
	Systems  []int
	Distance uint // tenths of a light year
	Jumps    int
}

// Planner holds the jump graph of one galaxy. Systems are connected when
// they are no further apart than one tank of fuel.
type Planner struct {
	galaxy  *galaxy.Galaxy
	maxJump uint
	g       graph.Graph[int, int]
}

// NewPlanner builds the jump graph of gal for jumps up to maxJump tenths
func NewPlanner(gal *galaxy.Galaxy, maxJump uint, weight Weight) (*Planner, error) {
	g := graph.New(graph.IntHash, graph.Weighted())
	for i, s := range gal.Systems {
		if err := g.AddVertex(i, graph.VertexAttribute("name", s.Name)); err != nil {
			return nil, fmt.Errorf("add system %d: %w", i, err)
		}
	}

	edges := 0
	for i := 0; i < galaxy.Size; i++ {
		for j := i + 1; j < galaxy.Size; j++ {
			d := galaxy.Distance(gal.Systems[i], gal.Systems[j])
			if d > maxJump {
				continue
			}
			w := int(d)
			if weight == ByJumps {
				w = 1
			}
			if err := g.AddEdge(i, j, graph.EdgeWeight(w)); err != nil {
				return nil, fmt.Errorf("add jump %d-%d: %w", i, j, err)
			}
			edges++
		}
	}
	log.Debug("jump graph built", "galaxy", gal.Number, "edges", edges, "max_jump", maxJump)

	return &Planner{galaxy: gal, maxJump: maxJump, g: g}, nil
}

// Plan finds the cheapest route from one system to another
func (p *Planner) Plan(from, to int) (Route, error) {
	if from < 0 || from >= galaxy.Size || to < 0 || to >= galaxy.Size {
		return Route{}, galaxy.ErrInvalidSystem
	}
	if from == to {
		return Route{Systems: []int{from}}, nil
	}

	path, err := graph.ShortestPath(p.g, from, to)
	if errors.Is(err, graph.ErrTargetNotReachable) {
		return Route{}, fmt.Errorf("%w from %s to %s", ErrNoRoute, p.galaxy.Systems[from].Name, p.galaxy.Systems[to].Name)
	}
	if err != nil {
		return Route{}, fmt.Errorf("plan %d-%d: %w", from, to, err)
	}

	r := Route{Systems: path, Jumps: len(path) - 1}
	for i := 1; i < len(path); i++ {
		r.Distance += p.galaxy.Distance(path[i-1], path[i])
	}
	return r, nil
}

// Neighbours lists the systems one jump away from n, in galaxy order
func (p *Planner) Neighbours(n int) ([]int, error) {
	adj, err := p.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	edges, ok := adj[n]
	if !ok {
		return nil, galaxy.ErrInvalidSystem
	}
	out := make([]int, 0, len(edges))
	for target := range edges {
		out = append(out, target)
	}
	sort.Ints(out)
	return out, nil
}

// Plan is a shortcut for a one-off route
func Plan(gal *galaxy.Galaxy, from, to int, maxJump uint, weight Weight) (Route, error) {
	p, err := NewPlanner(gal, maxJump, weight)
	if err != nil {
		return Route{}, err
	}
	return p.Plan(from, to)
}
