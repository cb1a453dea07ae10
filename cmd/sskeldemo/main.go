// Command sskeldemo builds the straight skeleton of a WKT polygon and writes
// it out as SVG, PNG, or WKT.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/sskel"
	"github.com/gogpu/sskel/wkt"
)

func main() {
	var (
		in      = flag.String("in", "", "input WKT POLYGON file (\"-\" for stdin)")
		inline  = flag.String("wkt", "", "inline WKT POLYGON (overrides -in)")
		svgOut  = flag.String("svg", "", "output SVG file")
		pngOut  = flag.String("png", "", "output PNG file")
		width   = flag.Int("width", 800, "PNG width")
		height  = flag.Int("height", 800, "PNG height")
		verbose = flag.Bool("v", false, "debug logging of the propagation")
	)
	flag.Parse()

	if *verbose {
		sskel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	rings, err := loadRings(*inline, *in)
	if err != nil {
		log.Fatalf("Failed to read polygon: %v", err)
	}

	b := sskel.NewBuilder()
	for _, ring := range rings {
		if err := b.EnterContour(ring); err != nil {
			log.Fatalf("Bad contour: %v", err)
		}
	}

	sk, err := b.ConstructSkeleton()
	if err != nil {
		log.Fatalf("Construction failed: %v", err)
	}

	if *svgOut != "" {
		if err := os.WriteFile(*svgOut, []byte(sk.SVG()), 0o644); err != nil {
			log.Fatalf("Failed to write SVG: %v", err)
		}
		log.Printf("SVG saved to %s", *svgOut)
	}

	if *pngOut != "" {
		f, err := os.Create(*pngOut)
		if err != nil {
			log.Fatalf("Failed to create PNG: %v", err)
		}
		if err := sk.WritePNG(f, *width, *height); err != nil {
			f.Close()
			log.Fatalf("Failed to write PNG: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to close PNG: %v", err)
		}
		log.Printf("PNG saved to %s (%dx%d)", *pngOut, *width, *height)
	}

	fmt.Printf("contour vertices: %d\n", sk.ContourVertexCount())
	fmt.Printf("skeleton vertices: %d\n", sk.SkeletonVertexCount())
	fmt.Printf("bisectors: %d\n", sk.BisectorCount())
	if *svgOut == "" && *pngOut == "" {
		fmt.Println(wkt.MarshalSkeleton(sk))
	}
}

func loadRings(inline, path string) ([][]sskel.Point, error) {
	if inline != "" {
		return wkt.UnmarshalWKT(inline)
	}
	switch path {
	case "":
		return nil, fmt.Errorf("one of -wkt or -in is required")
	case "-":
		return wkt.UnmarshalWKTFromReader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wkt.UnmarshalWKTFromReader(io.Reader(f))
}
