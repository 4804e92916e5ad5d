package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/wavemap/grid"
)

// runPrint loads a map file and prints its aligned text form.
func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	mapIn := fs.String("map", "", "map file (text)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mapIn == "" {
		return fmt.Errorf("print: -map is required")
	}

	m, err := grid.Load(*mapIn)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, m.String())

	return nil
}
