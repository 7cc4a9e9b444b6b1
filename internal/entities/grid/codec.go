package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

const emptySymbol = "-"

// Descriptor encodes g as <cols>x<rows>:<background>:<tokens>:<walls>.
// Label, id and timestamps are not part of the descriptor.
func (g GameGrid) Descriptor() string {
	bg := encodeRLE(len(g.background), func(i int) string {
		return g.background[i].Code()
	})
	tokens := encodeRLE(len(g.tokens), func(i int) string {
		return g.tokens[i].Code()
	})
	walls := encodeRLE(len(g.walls), func(i int) string {
		return g.walls[i].Code()
	})
	return fmt.Sprintf("%dx%d:%s:%s:%s", g.cols, g.rows, bg, tokens, walls)
}

// String returns the descriptor
func (g GameGrid) String() string {
	return g.Descriptor()
}

// Parse decodes a descriptor. The legacy <cols>:<rows>/<tokens>/<walls>
// form without background is accepted too.
func Parse(descriptor string) (GameGrid, error) {
	descriptor = strings.TrimSpace(descriptor)
	if descriptor == "" {
		return GameGrid{}, errors.InvalidArgument("empty grid descriptor")
	}

	head, _, _ := strings.Cut(descriptor, ":")
	if strings.Contains(head, "x") {
		return parseCurrent(descriptor)
	}
	if strings.Contains(descriptor, "/") {
		return parseLegacy(descriptor)
	}
	return GameGrid{}, errors.InvalidArgumentf("grid descriptor %q has no size", descriptor)
}

// MustParse is Parse for fixtures; it panics on error
func MustParse(descriptor string) GameGrid {
	g, err := Parse(descriptor)
	if err != nil {
		panic(err)
	}
	return g
}

func parseCurrent(descriptor string) (GameGrid, error) {
	fields := strings.SplitN(descriptor, ":", 4)
	cols, rows, ok := strings.Cut(fields[0], "x")
	if !ok {
		return GameGrid{}, errors.InvalidArgumentf("grid size %q is not <cols>x<rows>", fields[0])
	}
	g, err := newFromSize(cols, rows)
	if err != nil {
		return GameGrid{}, err
	}
	for len(fields) < 4 {
		fields = append(fields, "")
	}
	if err := g.decodeBackground(fields[1]); err != nil {
		return GameGrid{}, errors.Wrap(err, "background")
	}
	if err := g.decodeTokens(fields[2]); err != nil {
		return GameGrid{}, errors.Wrap(err, "tokens")
	}
	if err := g.decodeWalls(fields[3]); err != nil {
		return GameGrid{}, errors.Wrap(err, "walls")
	}
	return g, nil
}

func parseLegacy(descriptor string) (GameGrid, error) {
	fields := strings.SplitN(descriptor, "/", 3)
	cols, rows, ok := strings.Cut(fields[0], ":")
	if !ok {
		return GameGrid{}, errors.InvalidArgumentf("grid size %q is not <cols>:<rows>", fields[0])
	}
	g, err := newFromSize(cols, rows)
	if err != nil {
		return GameGrid{}, err
	}
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	if err := g.decodeTokens(fields[1]); err != nil {
		return GameGrid{}, errors.Wrap(err, "tokens")
	}
	if err := g.decodeWalls(fields[2]); err != nil {
		return GameGrid{}, errors.Wrap(err, "walls")
	}
	return g, nil
}

func newFromSize(colsText, rowsText string) (GameGrid, error) {
	cols, err := strconv.Atoi(colsText)
	if err != nil {
		return GameGrid{}, errors.InvalidArgumentf("grid columns %q are not a number", colsText)
	}
	rows, err := strconv.Atoi(rowsText)
	if err != nil {
		return GameGrid{}, errors.InvalidArgumentf("grid rows %q are not a number", rowsText)
	}
	return New(cols, rows)
}

// the decoders write into arrays freshly allocated by New

func (g *GameGrid) decodeBackground(data string) error {
	return decodeRLE(data, len(g.background), 1, func(from, to int, code string) error {
		c, err := ParseColor(code)
		if err != nil {
			return err
		}
		for i := from; i < to; i++ {
			g.background[i] = c
		}
		return nil
	})
}

func (g *GameGrid) decodeTokens(data string) error {
	return decodeRLE(data, len(g.tokens), 2, func(from, to int, code string) error {
		t, err := ParseToken(code)
		if err != nil {
			return err
		}
		for i := from; i < to; i++ {
			g.tokens[i] = t
		}
		return nil
	})
}

func (g *GameGrid) decodeWalls(data string) error {
	return decodeRLE(data, len(g.walls), 2, func(from, to int, code string) error {
		for i := from; i < to; i++ {
			w, err := ParseWall(code, positionOfSlot(i))
			if err != nil {
				return err
			}
			g.walls[i] = w
		}
		return nil
	})
}

// encodeRLE collapses runs of equal symbols into <symbol><length>. An empty
// symbol stands for an empty slot.
func encodeRLE(n int, symbol func(i int) string) string {
	var b strings.Builder
	prev, run := "", 0
	flush := func() {
		if run == 0 {
			return
		}
		if prev == "" {
			b.WriteString(emptySymbol)
		} else {
			b.WriteString(prev)
		}
		b.WriteString(strconv.Itoa(run))
	}
	for i := 0; i < n; i++ {
		s := symbol(i)
		if run > 0 && s == prev {
			run++
			continue
		}
		flush()
		prev, run = s, 1
	}
	flush()
	return b.String()
}

// decodeRLE reads runs until n slots are covered and calls fill for every
// non-empty run with the half-open slot range it covers. Data after the last
// slot is ignored; data ending early leaves the remaining slots empty.
func decodeRLE(data string, n, width int, fill func(from, to int, code string) error) error {
	pos, cursor := 0, 0
	for pos < len(data) && cursor < n {
		code := ""
		if data[pos] == emptySymbol[0] {
			pos++
		} else {
			if pos+width > len(data) {
				return errors.InvalidArgumentf("truncated symbol at offset %d", pos)
			}
			code = data[pos : pos+width]
			pos += width
		}

		start := pos
		for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
			pos++
		}
		if start == pos {
			return errors.InvalidArgumentf("missing run length at offset %d", start)
		}
		run, err := strconv.Atoi(data[start:pos])
		if err != nil {
			return errors.InvalidArgumentf("run length %q at offset %d: %v", data[start:pos], start, err)
		}
		if run == 0 {
			return errors.InvalidArgumentf("zero run length at offset %d", start)
		}

		run = min(run, n-cursor)
		end := cursor + run
		if code != "" {
			if err := fill(cursor, end, code); err != nil {
				return err
			}
		}
		cursor = end
	}
	return nil
}
