package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/arith"
	"github.com/pkg/errors"
)

var output = flag.String("o", "", "output file, stdout if empty")
var verbose = flag.Bool("verbose", false, "verbosity")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	if err := run(name, *output, *verbose); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(name, output string, verbose bool) error {
	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer f.Close()
		w = f
	}

	if err := arith.Compress(w, name); err != nil {
		return errors.Wrap(err, "")
	}

	if verbose {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer f.Close()
		st, err := arith.Stat(f)
		if err != nil {
			return errors.Wrap(err, "")
		}
		log.Printf("%s: %d -> %d bytes (header %d, alphabet %d), %.3f bits/symbol",
			name, st.Original, st.Compressed, st.Header, st.Alphabet, st.BitsPerSymbol())
	}
	return nil
}
