// Package wkt reads and writes Well-Known Text polygons for sskel.
//
// The reader accepts POLYGON text with an outer ring and any number of hole
// rings, and normalizes ring orientation to what sskel.Builder expects:
// outer ring counter-clockwise, holes clockwise. The writer emits skeleton
// bisectors as a MULTILINESTRING for round-tripping results into GIS tools.
package wkt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/sskel"
)

// UnmarshalWKT parses a WKT POLYGON into contour rings. The first ring is
// the outer contour (returned counter-clockwise), the rest are holes
// (returned clockwise). Closing points equal to the ring's first point are
// dropped.
func UnmarshalWKT(wkt string) ([][]sskel.Point, error) {
	return UnmarshalWKTFromReader(strings.NewReader(wkt))
}

// UnmarshalWKTFromReader is like UnmarshalWKT but reads from r.
func UnmarshalWKTFromReader(r io.Reader) ([][]sskel.Point, error) {
	p := newParser(r)
	rings, err := p.parsePolygon()
	if err != nil {
		return nil, err
	}
	if err := p.checkEOF(); err != nil {
		return nil, err
	}
	return normalize(rings), nil
}

type parser struct {
	scn *bufio.Scanner
	// peeked holds a token read ahead of its consumption.
	peeked *string
}

func newParser(r io.Reader) *parser {
	scn := bufio.NewScanner(r)
	scn.Split(tokenize)
	return &parser{scn: scn}
}

// tokenize is a bufio.SplitFunc producing WKT tokens: parentheses and commas
// are single-character tokens, everything else splits on whitespace.
func tokenize(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	if start == len(data) {
		return start, nil, nil
	}
	if b := data[start]; b == '(' || b == ')' || b == ',' {
		return start + 1, data[start : start+1], nil
	}
	for i := start; i < len(data); i++ {
		if b := data[i]; isSpace(b) || b == '(' || b == ')' || b == ',' {
			return i, data[start:i], nil
		}
	}
	if atEOF {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *parser) nextToken() (string, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	if !p.scn.Scan() {
		if err := p.scn.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return p.scn.Text(), nil
}

func (p *parser) peekToken() (string, error) {
	tok, err := p.nextToken()
	if err != nil {
		return "", err
	}
	p.peeked = &tok
	return tok, nil
}

func (p *parser) expect(want string) error {
	tok, err := p.nextToken()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("wkt: expected %q, got %q", want, tok)
	}
	return nil
}

func (p *parser) checkEOF() error {
	if p.peeked != nil {
		return fmt.Errorf("wkt: unexpected trailing token %q", *p.peeked)
	}
	if p.scn.Scan() {
		return fmt.Errorf("wkt: unexpected trailing token %q", p.scn.Text())
	}
	return p.scn.Err()
}

func (p *parser) parsePolygon() ([][]sskel.Point, error) {
	tag, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(tag, "POLYGON") {
		return nil, fmt.Errorf("wkt: unsupported geometry tag %q", tag)
	}

	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(tok, "EMPTY") {
		return nil, fmt.Errorf("wkt: empty polygon")
	}

	if err := p.expect("("); err != nil {
		return nil, err
	}
	var rings [][]sskel.Point
	for {
		ring, err := p.parseRing()
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)

		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok == ")" {
			return rings, nil
		}
		if tok != "," {
			return nil, fmt.Errorf("wkt: expected \",\" or \")\", got %q", tok)
		}
	}
}

func (p *parser) parseRing() ([]sskel.Point, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var ring []sskel.Point
	for {
		pt, err := p.parsePoint()
		if err != nil {
			return nil, err
		}
		ring = append(ring, pt)

		tok, err := p.nextToken()
		if err != nil {
			return nil, err
		}
		if tok == ")" {
			break
		}
		if tok != "," {
			return nil, fmt.Errorf("wkt: expected \",\" or \")\", got %q", tok)
		}
	}

	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return nil, fmt.Errorf("wkt: ring with fewer than 3 distinct points")
	}
	return ring, nil
}

func (p *parser) parsePoint() (sskel.Point, error) {
	x, err := p.parseFloat()
	if err != nil {
		return sskel.Point{}, err
	}
	y, err := p.parseFloat()
	if err != nil {
		return sskel.Point{}, err
	}
	return sskel.Point{X: x, Y: y}, nil
}

func (p *parser) parseFloat() (float64, error) {
	tok, err := p.nextToken()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("wkt: invalid numeric literal %q", tok)
	}
	return f, nil
}

// normalize forces the outer ring counter-clockwise and hole rings
// clockwise, reversing rings as needed.
func normalize(rings [][]sskel.Point) [][]sskel.Point {
	for i, ring := range rings {
		ccw := signedArea(ring) > 0
		if (i == 0 && !ccw) || (i > 0 && ccw) {
			reverse(ring)
		}
	}
	return rings
}

func signedArea(ring []sskel.Point) float64 {
	var area float64
	for i, p := range ring {
		area += p.Cross(ring[(i+1)%len(ring)])
	}
	return area / 2
}

func reverse(ring []sskel.Point) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}

// MarshalWKT writes contour rings as a WKT POLYGON, repeating each ring's
// first point as its closing point.
func MarshalWKT(rings [][]sskel.Point) string {
	var b strings.Builder
	b.WriteString("POLYGON (")
	for i, ring := range rings {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j <= len(ring); j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			p := ring[j%len(ring)]
			fmt.Fprintf(&b, "%s %s", fmtFloat(p.X), fmtFloat(p.Y))
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalSkeleton writes the interior bisector edges of a skeleton as a WKT
// MULTILINESTRING.
func MarshalSkeleton(sk *sskel.Skeleton) string {
	var b strings.Builder
	b.WriteString("MULTILINESTRING (")
	first := true
	for _, h := range sk.Halfedges() {
		if !h.IsBisector() || h.ID() > h.Twin().ID() {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		s := h.Source().Point()
		t := h.Target().Point()
		fmt.Fprintf(&b, "(%s %s, %s %s)",
			fmtFloat(s.X), fmtFloat(s.Y), fmtFloat(t.X), fmtFloat(t.Y))
	}
	b.WriteByte(')')
	return b.String()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
