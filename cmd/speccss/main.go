// Command speccss tokenizes CSS input, sequentially or in parallel, and
// prints the resulting tokens as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/csslex/speccss/csslex"
	"github.com/csslex/speccss/spectokenize"
)

func main() {
	var (
		parallelism = flag.Int("n", 1, "number of parallel tokenization windows (1 = sequential)")
		stream      = flag.Bool("stream", false, "preprocess via the streaming io.Reader path instead of buffering then calling Preprocess")
	)
	flag.Parse()

	var r io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("speccss: %v", err)
		}
		defer f.Close()
		r = f
	}

	input, err := readInput(r, *stream)
	if err != nil {
		log.Fatalf("speccss: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)

	if *parallelism <= 1 {
		for _, node := range csslex.Tokenize(input) {
			if err := enc.Encode(node); err != nil {
				log.Fatalf("speccss: %v", err)
			}
		}
		return
	}

	stats, nodes := spectokenize.Tokenize(input, *parallelism)
	for _, node := range nodes {
		if err := enc.Encode(node); err != nil {
			log.Fatalf("speccss: %v", err)
		}
	}
	fmt.Fprintf(os.Stderr, "iters=%d mispredictions=%v\n", stats.Iters, stats.Mispredictions)
}

// readInput reads r fully, either normalizing it as it streams (-stream)
// or reading the raw bytes first and normalizing with csslex.Preprocess;
// both paths must produce the same preprocessed text.
func readInput(r io.Reader, stream bool) (string, error) {
	if stream {
		b, err := io.ReadAll(csslex.NewPreprocessingReader(r))
		return string(b), err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return csslex.Preprocess(string(b)), nil
}
