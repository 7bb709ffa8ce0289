package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/progcalc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, show, colormode string
		nl, echo                bool
		depth                   int
		bigbits                 uint
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&show, "show", "dec32,hex32,real,realexp,big", `comma-separated views to print, or "all"`)
	flag.StringVar(&colormode, "color", "auto", "colorize output: auto, always, or never")
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.IntVar(&depth, "maxdepth", 0, "maximum nesting depth of expressions (0 for no limit)")
	flag.UintVar(&bigbits, "bigbits", progcalc.DefaultBigBits, "maximum bit length of arbitrary-precision results")
	flag.Parse()
	if depth < 0 {
		log.Fatalf("depth limit (%d) must not be negative", depth)
	}
	views, err := progcalc.ParseViews(show)
	if err != nil {
		log.Fatal(err)
	}
	switch colormode {
	case "auto": // fatih/color decides from the terminal
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		log.Fatalf("unknown color mode %q", colormode)
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		in, err := readInput(f, nl)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, in...)
	}
	srcs = append(srcs, flag.Args()...)

	opts := []progcalc.Option{progcalc.MaxDepth(depth), progcalc.MaxBigBits(bigbits)}
	failed := false
	for _, src := range srcs {
		if !show1(src, views, echo, opts) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// show1 evaluates one expression and prints its views, or the error in red.
// Returns false if the expression failed.
func show1(src string, views []progcalc.View, echo bool, opts []progcalc.Option) bool {
	e, err := progcalc.Parse(strings.NewReader(src), opts...)
	if err != nil {
		fmt.Println(color.RedString("%s: %v", strings.TrimSpace(src), err))
		return false
	}
	if echo {
		fmt.Println(color.CyanString("%v", e))
	}
	r, err := e.Eval()
	if err != nil {
		fmt.Println(color.RedString("%s: %v", strings.TrimSpace(src), err))
		return false
	}
	for _, v := range views {
		s, ok := v.Format(r)
		if !ok {
			continue
		}
		fmt.Printf("%s %s\n", color.CyanString("%-8s", v), s)
	}
	return true
}

// readInput reads the whole input as one expression, or as one expression per
// non-blank line if lines is true.
func readInput(f io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var r []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		r = append(r, sc.Text())
	}
	return r, sc.Err()
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
