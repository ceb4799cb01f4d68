// Command sasm assembles SASM2 source into 6502 machine code.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/eblen/SASM2/asm"
	"github.com/eblen/SASM2/format"
	"github.com/eblen/SASM2/zpm"
)

func main() {
	app := &cli.App{
		Name:  "sasm",
		Usage: "assemble SASM2 source into 6502 machine code",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "i", Usage: "input source path (default: stdin)"},
			&cli.StringFlag{Name: "o", Usage: "output path (default: stdout)"},
			&cli.StringFlag{Name: "s", Value: "apple", Usage: "target system: apple or atari"},
			&cli.StringFlag{Name: "f", Value: "hex", Usage: "output encoding: hex, apple, or bin"},
			&cli.BoolFlag{Name: "v", Usage: "trace both assembly passes to stderr"},
			&cli.BoolFlag{Name: "x", Usage: "dump the resolved symbol table to stderr"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	sys, err := parseSystem(c.String("s"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	in, closeIn, err := openInput(c.String("i"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeIn()

	var trace io.Writer = io.Discard
	if c.Bool("v") {
		trace = os.Stderr
	}

	result, err := asm.Assemble(in, sys, c.Bool("v"), trace)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if c.Bool("x") {
		dumpExports(os.Stderr, result.Exports)
	}

	encoded, err := encode(c.String("f"), result.Image)
	if err != nil {
		return cli.Exit(err, 1)
	}

	out, closeOut, err := openOutput(c.String("o"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeOut()

	if _, err := out.Write(encoded); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func parseSystem(s string) (zpm.System, error) {
	switch s {
	case "apple":
		return zpm.AppleII, nil
	case "atari":
		return zpm.Atari2600, nil
	default:
		return 0, fmt.Errorf("unknown system %q, want apple or atari", s)
	}
}

func encode(format_ string, img *asm.Image) ([]byte, error) {
	fi := format.Image{Bytes: img.Bytes, Low: img.Low, High: img.High}
	switch format_ {
	case "bin":
		return format.Bin(fi), nil
	case "hex":
		return []byte(format.Hex(fi)), nil
	case "apple":
		return []byte(format.Apple(fi)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q, want hex, apple, or bin", format_)
	}
}

func dumpExports(w io.Writer, exports []asm.Export) {
	for _, e := range exports {
		fmt.Fprintf(w, "%-20s $%04X  width=%d  %s\n", e.Name, e.Value, e.Width, e.Kind)
	}
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
