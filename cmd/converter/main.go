package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/commonmodules/commonmodules/sparse"
	"github.com/commonmodules/commonmodules/util"
)

// This utility converts every matrix in a directory between the dense text
// format written by util.ExportDense (.txt) and Matrix Market (.mtx).
// By default .txt files are read and .mtx files are written; -r reverses
// the direction. Converted files keep their base name and land in the
// output directory, which is created when missing.

var (
	outputPath    = flag.String("o", "", "The output directory.")
	directoryPath = flag.String("d", "", "The directory holding the matrices to convert.")
	reverse       = flag.Bool("r", false, "Convert .mtx files to dense text instead.")
	recursive     = flag.Bool("R", false, "Also convert matrices in sub-directories.")
)

func main() {
	flag.Parse()
	if *outputPath == "" || *directoryPath == "" {
		flag.CommandLine.Usage()
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputPath, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	from, to := ".txt", ".mtx"
	if *reverse {
		from, to = to, from
	}
	files, err := util.ListFiles([]string{*directoryPath}, from, *recursive)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, src := range files {
		dest := filepath.Join(*outputPath, strings.TrimSuffix(filepath.Base(src), from)+to)
		if err := convert(src, dest, *reverse); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", src, err)
			os.Exit(1)
		}
		fmt.Printf("%s -> %s\n", src, dest)
	}
	fmt.Printf("converted %d files\n", len(files))
}

func convert(src, dest string, toDense bool) error {
	if toDense {
		m, err := util.ImportSparseMatrix(src)
		if err != nil {
			return err
		}
		return util.ExportDense(dest, m.ToDense(), "%g")
	}
	d, err := util.ImportDense(src)
	if err != nil {
		return err
	}
	return util.ExportSparseMatrix(dest, sparse.CSRFromMatrix(d))
}
