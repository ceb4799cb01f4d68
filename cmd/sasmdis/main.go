// Command sasmdis disassembles a raw 6502 byte image into SASM2 source.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/eblen/SASM2/disasm"
)

func main() {
	app := &cli.App{
		Name:  "sasmdis",
		Usage: "disassemble a raw 6502 byte image into SASM2 source",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "i", Usage: "input binary path (default: stdin)"},
			&cli.StringFlag{Name: "o", Usage: "output path (default: stdout)"},
			&cli.StringFlag{Name: "a", Value: "0000", Usage: "starting address, hex"},
			&cli.BoolFlag{Name: "v", Usage: "trace segmentation decisions to stderr"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	base, err := strconv.ParseInt(c.String("a"), 16, 32)
	if err != nil {
		return cli.Exit(fmt.Errorf("invalid starting address %q: %w", c.String("a"), err), 1)
	}

	program, err := readInput(c.String("i"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	listing := disasm.Disassemble(program, int(base), c.Bool("v"), os.Stderr)

	out, closeOut, err := openOutput(c.String("o"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeOut()

	if _, err := io.WriteString(out, listing); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
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
