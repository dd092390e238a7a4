// Command dfrs loads a delimited text file and prints it as a table.
//
//	dfrs [-config display.yaml] [-delim ,] [-skip-malformed] [-rows n] file.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/NerdMeNot/dfrs"
)

func main() {
	configPath := flag.String("config", "", "YAML display configuration")
	delim := flag.String("delim", ",", "field delimiter")
	skipMalformed := flag.Bool("skip-malformed", false, "drop rows with the wrong field count instead of failing")
	rows := flag.Int("rows", 0, "maximum rows to read (0 = all)")
	showSchema := flag.Bool("schema", false, "print the inferred schema instead of the table")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dfrs [flags] file.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := dfrs.DefaultDisplayConfig()
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		cfg.TableStyle = "ascii"
	}
	if *configPath != "" {
		loaded, err := dfrs.LoadDisplayConfigFile(*configPath)
		if err != nil {
			logger.Error("loading display config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	opts := dfrs.DefaultCSVReadOptions()
	opts.SkipMalformed = *skipMalformed
	opts.MaxRows = *rows
	opts.Logger = logger
	if r := []rune(*delim); len(r) == 1 {
		opts.Delimiter = r[0]
	} else {
		logger.Error("delimiter must be a single character", "delim", *delim)
		os.Exit(2)
	}

	df, err := dfrs.ReadCSV(flag.Arg(0), opts)
	if err != nil {
		logger.Error("reading csv", "path", flag.Arg(0), "err", err)
		os.Exit(1)
	}

	if *showSchema {
		fmt.Println(df.Schema())
		return
	}
	fmt.Println(df.StringWithConfig(cfg))
}
