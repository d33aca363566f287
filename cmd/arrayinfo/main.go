// Inspection and conversion tool for array files.
//
// By default prints the element type, rank and shape of the array without
// loading its data. -list enumerates the entries of an array set; -convert
// rewrites the array at a new path, with the format chosen by the new
// extension.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/robert-malhotra/go-arrayio/arrayio"
	"github.com/robert-malhotra/go-arrayio/codec"
	"github.com/robert-malhotra/go-arrayio/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file")
	list := flag.Bool("list", false, "enumerate array-set entries")
	convert := flag.String("convert", "", "rewrite the array at this path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *list, *convert, *cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, list bool, convert, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	matOpts, err := config.MatFileOptions(cfg)
	if err != nil {
		return err
	}
	reg, err := codec.NewRegistry(log, matOpts...)
	if err != nil {
		return err
	}

	a, err := arrayio.Open(path, reg)
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  Type:  %s\n", a.ElementType())
	fmt.Printf("  Rank:  %d\n", a.NDim())
	fmt.Printf("  Shape: %s\n", formatShape(a.Shape()))

	if list {
		if err := listSet(path, reg); err != nil {
			return err
		}
	}

	if convert != "" {
		if err := a.Save(reg, convert); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", convert)
	}
	return nil
}

// listSet prints every array-set entry of the file in id order.
func listSet(path string, reg *arrayio.Registry) error {
	c, err := reg.Resolve(path)
	if err != nil {
		return err
	}
	sc, ok := c.(arrayio.SetCodec)
	if !ok {
		return fmt.Errorf("format %q does not hold array sets", c.Name())
	}

	vars, err := sc.List(path)
	if err != nil {
		return err
	}
	ids := make([]int, 0, len(vars))
	for id := range vars {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Printf("  Entries: %d\n", len(ids))
	for _, id := range ids {
		v := vars[id]
		fmt.Printf("    %d: %s %s\n", id, v.Name, v.Info)
	}
	return nil
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, dim := range shape {
		parts[i] = fmt.Sprint(dim)
	}
	return strings.Join(parts, "x")
}
