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

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [filename]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	if err := run(flag.Arg(0), *output); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(name, output string) error {
	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "")
		}
		defer f.Close()
		w = f
	}

	if name == "" {
		return errors.Wrap(arith.Decode(w, os.Stdin), "stdin")
	}
	return errors.Wrap(arith.Decompress(w, name), "")
}
