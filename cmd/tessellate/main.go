// Command tessellate reads a GeoJSON file of polygon features and
// prints the y-monotone decomposition and self-intersection points the
// core engine discovers, as a small JSON report. It is an external
// collaborator (§6 of the core's design): a convenient front end, not
// part of the sweep-line engine itself.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/argp"

	"github.com/nelipuu/tessellate"
)

type Cmd struct {
	Output string `short:"o" desc:"Output file, defaults to stdout"`
	Input  string `index:"0" desc:"Input GeoJSON file"`
}

func main() {
	root := argp.NewCmd(&Cmd{}, "Decomposes GeoJSON polygons into y-monotone regions")
	root.Parse()
}

func (cmd *Cmd) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}

	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return err
	}

	var rings []tessellate.Ring
	for _, f := range fc.Features {
		rings = append(rings, ringsFromGeometry(f.Geometry)...)
	}

	tess := tessellate.New(rings)
	tess.Run()

	report := struct {
		Regions       [][]tessellate.Vertex `json:"regions"`
		Intersections []tessellate.Point    `json:"intersections"`
	}{
		Regions:       tess.MonotoneRegions(),
		Intersections: tess.IntersectionPoints(),
	}

	out := os.Stdout
	if cmd.Output != "" && cmd.Output != "-" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d region(s), %d intersection(s)\n", len(report.Regions), len(report.Intersections))
	return nil
}

// ringsFromGeometry flattens a GeoJSON geometry into the core's Ring
// type, which only needs an ordered point sequence per ring — outer
// boundary and holes alike feed the same even-odd decomposition.
func ringsFromGeometry(geom orb.Geometry) []tessellate.Ring {
	switch g := geom.(type) {
	case orb.Polygon:
		return ringsFromPolygon(g)
	case orb.MultiPolygon:
		var out []tessellate.Ring
		for _, p := range g {
			out = append(out, ringsFromPolygon(p)...)
		}
		return out
	default:
		return nil
	}
}

func ringsFromPolygon(p orb.Polygon) []tessellate.Ring {
	out := make([]tessellate.Ring, 0, len(p))
	for _, ring := range p {
		r := make(tessellate.Ring, 0, len(ring))
		for _, pt := range ring {
			r = append(r, tessellate.Point{X: pt[0], Y: pt[1]})
		}
		out = append(out, r)
	}
	return out
}
