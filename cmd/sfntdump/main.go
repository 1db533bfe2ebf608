// Command sfntdump prints a font face's table directory and headline
// metrics, and optionally drops into an interactive REPL for poking at
// individual tables and glyphs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	sfnt "github.com/maxmelander/ttf-parser"
)

func main() {
	faceIndex := flag.Uint("face-index", 0, "face index to load, for a ttcf collection")
	interactive := flag.Bool("i", false, "start an interactive REPL after dumping the summary")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: sfntdump [-face-index N] [-i] font-file")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sfntdump:", err)
		os.Exit(1)
	}

	face, err := sfnt.FromSlice(data, uint32(*faceIndex))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sfntdump:", err)
		os.Exit(1)
	}

	dumpSummary(face)

	if *interactive {
		if err := repl(face); err != nil {
			fmt.Fprintln(os.Stderr, "sfntdump:", err)
			os.Exit(1)
		}
	}
}

func dumpSummary(f *sfnt.Face) {
	fmt.Printf("units per em:  %d\n", f.UnitsPerEm())
	fmt.Printf("glyphs:        %d\n", f.NumberOfGlyphs())
	fmt.Printf("ascender:      %d\n", f.Ascender())
	fmt.Printf("descender:     %d\n", f.Descender())
	fmt.Printf("line gap:      %d\n", f.LineGap())
	if axes := f.VariationAxes(); len(axes) > 0 {
		fmt.Print("variation axes:")
		for _, a := range axes {
			fmt.Printf(" %s", a.Tag.String())
		}
		fmt.Println()
	}
	for _, tag := range knownTags {
		if f.HasTable(tag) {
			fmt.Printf("table:         %s\n", tag.String())
		}
	}
}

var knownTags = []sfnt.Tag{
	sfnt.NewTag('h', 'e', 'a', 'd'), sfnt.NewTag('h', 'h', 'e', 'a'), sfnt.NewTag('m', 'a', 'x', 'p'),
	sfnt.NewTag('h', 'm', 't', 'x'), sfnt.NewTag('v', 'h', 'e', 'a'), sfnt.NewTag('v', 'm', 't', 'x'),
	sfnt.NewTag('l', 'o', 'c', 'a'), sfnt.NewTag('g', 'l', 'y', 'f'),
	sfnt.NewTag('C', 'F', 'F', ' '), sfnt.NewTag('C', 'F', 'F', '2'),
	sfnt.NewTag('c', 'm', 'a', 'p'), sfnt.NewTag('n', 'a', 'm', 'e'), sfnt.NewTag('p', 'o', 's', 't'),
	sfnt.NewTag('O', 'S', '/', '2'), sfnt.NewTag('k', 'e', 'r', 'n'), sfnt.NewTag('k', 'e', 'r', 'x'),
	sfnt.NewTag('s', 'b', 'i', 'x'), sfnt.NewTag('S', 'V', 'G', ' '), sfnt.NewTag('V', 'O', 'R', 'G'),
	sfnt.NewTag('C', 'B', 'L', 'C'), sfnt.NewTag('C', 'B', 'D', 'T'),
	sfnt.NewTag('f', 'v', 'a', 'r'), sfnt.NewTag('a', 'v', 'a', 'r'), sfnt.NewTag('g', 'v', 'a', 'r'),
	sfnt.NewTag('H', 'V', 'A', 'R'), sfnt.NewTag('V', 'V', 'A', 'R'), sfnt.NewTag('M', 'V', 'A', 'R'),
	sfnt.NewTag('G', 'D', 'E', 'F'), sfnt.NewTag('G', 'P', 'O', 'S'), sfnt.NewTag('G', 'S', 'U', 'B'),
}

// repl drives an interactive session over face: "glyph N" prints a
// glyph's metrics, "var TAG VALUE" moves a variation axis, "table TAG"
// reports whether a table is present. Quit with ctrl-D.
func repl(face *sfnt.Face) error {
	rl, err := readline.New("sfntdump> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "glyph":
			if len(fields) != 2 {
				fmt.Println("usage: glyph N")
				continue
			}
			n, err := strconv.ParseUint(fields[1], 10, 16)
			if err != nil {
				fmt.Println(err)
				continue
			}
			g := sfnt.GlyphID(n)
			adv, _ := face.HorizontalAdvance(g)
			lsb, _ := face.HorizontalSideBearing(g)
			bb, _ := face.GlyphBoundingBox(g)
			name, _ := face.GlyphName(g)
			fmt.Printf("glyph %d: advance=%d lsb=%d bbox=%v name=%q\n", g, adv, lsb, bb, name)
		case "var":
			if len(fields) != 3 {
				fmt.Println("usage: var TAG VALUE")
				continue
			}
			value, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				fmt.Println(err)
				continue
			}
			tag := sfnt.NewTagFromBytes([]byte(fields[1]))
			if !face.SetVariation(tag, float32(value)) {
				fmt.Println("no such axis, or face has no fvar table")
			}
		case "table":
			if len(fields) != 2 {
				fmt.Println("usage: table TAG")
				continue
			}
			tag := sfnt.NewTagFromBytes([]byte(fields[1]))
			fmt.Println(face.HasTable(tag))
		case "quit", "exit":
			return nil
		default:
			fmt.Println("commands: glyph N, var TAG VALUE, table TAG, quit")
		}
	}
}
