// Package main provides the subtext CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/subtext-ml/subtext/retrieval"
	"github.com/subtext-ml/subtext/tokenizer"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("subtext %s\n", version)
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "rank":
		runRank(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("subtext - tokenization and TF-IDF passage retrieval")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  encode     Encode text with the pretrained byte-level BPE")
	fmt.Println("  decode     Decode token IDs back into text")
	fmt.Println("  rank       Rank a JSON corpus against a query")
	fmt.Println("")
	fmt.Println("Settings are read from subtext.yaml in the working directory when present.")
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	text := fs.String("text", "", "text to encode")
	fragments := fs.Bool("fragments", false, "print subword fragments instead of token IDs")
	_ = fs.Parse(args)

	if *text == "" {
		log.Fatal("encode: -text is required")
	}

	enc := mustLoadEncoder()

	if *fragments {
		fmt.Println(strings.Join(enc.Tokenize(*text), " "))
		return
	}

	ids := enc.Encode(*text)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.Itoa(id)
	}
	fmt.Println(strings.Join(out, " "))
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	idsArg := fs.String("ids", "", "space-separated token IDs to decode")
	_ = fs.Parse(args)

	fields := strings.Fields(*idsArg)
	if len(fields) == 0 {
		log.Fatal("decode: -ids is required")
	}

	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			log.Fatalf("decode: %q is not a token ID", f)
		}
		ids = append(ids, id)
	}

	enc := mustLoadEncoder()
	fmt.Println(enc.Decode(ids))
}

func runRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	corpusPath := fs.String("corpus", "", "path to a JSON corpus of {title, context} objects")
	query := fs.String("query", "", "query to rank the corpus against")
	k := fs.Int("k", 3, "number of documents to return")
	_ = fs.Parse(args)

	if *corpusPath == "" || *query == "" {
		log.Fatal("rank: -corpus and -query are required")
	}

	docs, err := retrieval.LoadDocuments(*corpusPath)
	if err != nil {
		log.Fatalf("rank: %v", err)
	}

	texts := make([]string, 0, 2*len(docs))
	for _, d := range docs {
		texts = append(texts, d.Title, d.Context)
	}

	words := tokenizer.NewWordTokenizer(tokenizer.DefaultWordConfig())
	words.Fit(texts)

	cfg := loadConfig()
	sel := retrieval.NewSelector(words, docs, cfg.selector())

	for rank, hit := range sel.TopK(*query, *k) {
		title := hit.Document.Title
		if title == "" {
			title = fmt.Sprintf("document %d", hit.Index)
		}
		fmt.Printf("%2d. %.4f  %s\n", rank+1, hit.Score, title)
	}
}

// mustLoadEncoder builds the pretrained encoder from the configured
// resource locations, downloading them on the first run.
func mustLoadEncoder() *tokenizer.Encoder {
	cfg := loadConfig()
	enc, err := tokenizer.LoadPretrained(cfg.pretrained())
	if err != nil {
		log.Fatalf("load pretrained encoder: %v", err)
	}
	return enc
}
