// Command lpsolve is a minimal CLI wiring lpformat -> problem ->
// twophase -> lpresult together: read a structured-format LP from a
// file (or stdin), solve it with the binary64 backend, and print the
// §6.2 JSON result.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/dualphase/simplex/lpformat"
	"github.com/dualphase/simplex/lpresult"
	"github.com/dualphase/simplex/scalar"
	"github.com/dualphase/simplex/twophase"
)

func main() {
	var (
		precision = flag.Int("precision", -1, "decimal precision for the reported solution; <=0 uses shortest round-trip")
		snap      = flag.Bool("integer-snap", false, "attempt the integer-snap procedure when n<=8 and precision<=0")
		input     = flag.String("input", "", "path to an LP file in the structured format; defaults to stdin")
		rank      = flag.Bool("show-rank", false, "print the constraint matrix's rank (via gonum mat) before solving")
	)
	flag.Parse()

	var r io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("lpsolve: %v", err)
		}
		defer f.Close()
		r = f
	}

	p, err := lpformat.ParseFloat64(r)
	if err != nil {
		log.Fatalf("lpsolve: parse error: %v", err)
	}

	if *rank {
		a := lpformat.ConstraintMatrix(p)
		var svd mat.SVD
		if ok := svd.Factorize(a, mat.SVDNone); ok {
			log.Printf("lpsolve: constraint matrix rank = %d", svd.Rank(1e-12))
		}
	}

	res := twophase.Solve(p, twophase.Options[scalar.Float64]{})
	shaped := lpresult.Shape(p, res, lpresult.Options{Precision: *precision, TryIntegerSnap: *snap})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(shaped); err != nil {
		log.Fatalf("lpsolve: encode error: %v", err)
	}
}
