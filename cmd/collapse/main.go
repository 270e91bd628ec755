// cmd/collapse/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tamzrod/flux-aligner/internal/engine"
)

func main() {
	log.SetFlags(0)

	trace := flag.Bool("trace", false, "log every pipeline stage")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: collapse [-trace] <value>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	flux, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		log.Fatalf("collapse: not a number: %q", flag.Arg(0))
	}

	if *trace {
		runTraced(flux)
		return
	}

	result, err := engine.Collapse(flux)
	if err != nil {
		exitOn(err)
	}

	fmt.Printf("FIXED-POINT %d STATUS: ACTIVE\n", engine.Precision)
	fmt.Printf("FINAL ALIGNMENT ERROR: %d\n", result)
}

// runTraced executes the full pipeline and logs every stage the way the
// daemon would see it.
func runTraced(flux float64) {
	rep, err := engine.Run(flux)
	if err != nil {
		exitOn(err)
	}

	log.Printf("[%12s] flux received: %v", "INPUT", rep.Input)
	log.Printf("[%12s] stabilized: %.15f", "VECTOR", rep.Vector)
	log.Printf("[%12s] symmetric path: %.10f", "FILTER", rep.Symmetric)
	log.Printf("[%12s] asymmetric path: %.10f", "FILTER", rep.Asymmetric)
	log.Printf("[%12s] triangle: %.6f | circle: %.6f", "GEOMETRY", rep.Triangle, rep.Circle)
	log.Printf("[%12s] aligned: %.10f", "PERSISTENCE", rep.Corrected)
	log.Printf("[%12s] nucleus: %d", "COLLAPSE", rep.Nucleus)
	log.Printf("[%12s] %s | hash=%s", "VERDICT", rep.Verdict.Status, rep.Verdict.IntegrityHash)

	fmt.Printf("FIXED-POINT %d STATUS: ACTIVE\n", engine.Precision)
	fmt.Printf("FINAL ALIGNMENT ERROR: %d\n", rep.Nucleus)
}

func exitOn(err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		log.Fatalf("collapse: invalid input: %v", err)
	case errors.Is(err, engine.ErrOverflow):
		log.Fatalf("collapse: overflow: %v", err)
	default:
		log.Fatalf("collapse: %v", err)
	}
}
