package chart

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	xdraw "golang.org/x/image/draw"

	"melite/internal/galaxy"
	"melite/internal/log"
)

// inches per galaxy coordinate unit
const scale = 0.12

// Graph builds the graphviz graph for c. The caller closes both returned values.
func (c Chart) Graph(ctx context.Context) (*graphviz.Graphviz, *graphviz.Graph, error) {
	if c.Center < 0 || c.Center >= galaxy.Size {
		return nil, nil, galaxy.ErrInvalidSystem
	}
	systems := c.Systems()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	gv.SetLayout(graphviz.NEATO)
	g, err := gv.Graph(graphviz.WithName("chart"), graphviz.WithDirectedType(graphviz.UnDirected))
	if err != nil {
		gv.Close()
		return nil, nil, fmt.Errorf("failed to create graphviz graph: %w", err)
	}

	g.SetBackgroundColor("black")
	g.SetOverlap(true)
	g.SetPad(0.3)
	if _, err := g.Attr(int(cgraph.NODE), "fontname", "Helvetica"); err != nil {
		log.Warn("chart: default font", "error", err)
	}

	center := c.Galaxy.Systems[c.Center]
	nodes := make(map[int]*graphviz.Node, len(systems))
	for _, n := range systems {
		s := c.Galaxy.Systems[n]
		node, err := g.CreateNodeByName(fmt.Sprintf("s%d", n))
		if err != nil {
			g.Close()
			gv.Close()
			return nil, nil, fmt.Errorf("failed to create node %s: %w", s.Name, err)
		}
		// y is stretched two to one in galaxy space, and graphviz y grows upwards
		dx := float64(int(s.X) - int(center.X))
		dy := float64(int(center.Y)-int(s.Y)) / 2
		node.SetPos(dx*scale, dy*scale)
		node.SetPin(true)
		node.SetLabel(s.Name)
		node.SetShape(cgraph.BoxShape)
		node.SetStyle("filled,rounded")
		node.SetFillColor(fillColors[c.Classify(n)])
		node.SetFontColor("black")
		node.SetFontSize(12)
		nodes[n] = node
	}

	for _, leg := range c.legs() {
		e, err := g.CreateEdgeByName(fmt.Sprintf("leg%d-%d", leg[0], leg[1]), nodes[leg[0]], nodes[leg[1]])
		if err != nil {
			g.Close()
			gv.Close()
			return nil, nil, fmt.Errorf("failed to create route leg: %w", err)
		}
		e.SetColor("orangered")
		e.SetPenWidth(2.5)
		e.SetStyle(cgraph.BoldEdgeStyle)
	}

	log.Debug("chart graph built", "center", center.Name, "systems", len(systems), "legs", len(c.Route))
	return gv, g, nil
}

// PNG renders the chart and scales it to fit within width x height pixels.
// A zero width or height keeps the natural size.
func (c Chart) PNG(ctx context.Context, width, height int) ([]byte, error) {
	gv, g, err := c.Graph(ctx)
	if err != nil {
		return nil, err
	}
	defer gv.Close()
	defer g.Close()

	img, err := gv.RenderImage(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	if width > 0 && height > 0 {
		img = Fit(img, width, height)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return out.Bytes(), nil
}

// Fit scales img to the largest size within width x height that keeps its
// aspect ratio
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	sx := float64(width) / float64(b.Dx())
	sy := float64(height) / float64(b.Dy())
	s := min(sx, sy)

	w := max(1, int(math.Round(float64(b.Dx())*s)))
	h := max(1, int(math.Round(float64(b.Dy())*s)))
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)
	return scaled
}

// DOT lays out the chart and returns it in graphviz dot format
func (c Chart) DOT(ctx context.Context) ([]byte, error) {
	gv, g, err := c.Graph(ctx)
	if err != nil {
		return nil, err
	}
	defer gv.Close()
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
