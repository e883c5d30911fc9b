// Command rowscan decodes UPC/EAN barcodes from textual pixel rows.
//
// Each input line is one row: '#', 'X', or '1' mark black pixels, and '.',
// '0', or space mark white pixels. Rows are read from the named files, or
// from stdin when no file is given.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	upceango "github.com/ericlevine/upceango"
	"github.com/ericlevine/upceango/bitutil"
	"github.com/ericlevine/upceango/upcean"
)

func main() {
	formatsFlag := flag.String("formats", "", "comma-separated formats to try (EAN_13, EAN_8, UPC_A, UPC_E)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rowscan [flags] [file...]\n\n")
		fmt.Fprintf(os.Stderr, "Decode UPC/EAN barcodes from textual pixel rows ('#'=black, '.'=white).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts, err := parseOptions(*formatsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	exitCode := 0
	if flag.NArg() == 0 {
		if !scanReader("stdin", os.Stdin, opts) {
			exitCode = 1
		}
	} else {
		for _, path := range flag.Args() {
			f, err := os.Open(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
				exitCode = 1
				continue
			}
			if !scanReader(path, f, opts) {
				exitCode = 1
			}
			f.Close()
		}
	}
	os.Exit(exitCode)
}

func parseOptions(formats string) (*upceango.DecodeOptions, error) {
	if formats == "" {
		return nil, nil
	}
	var opts upceango.DecodeOptions
	for _, name := range strings.Split(formats, ",") {
		switch strings.TrimSpace(name) {
		case "EAN_13":
			opts.PossibleFormats = append(opts.PossibleFormats, upceango.FormatEAN13)
		case "EAN_8":
			opts.PossibleFormats = append(opts.PossibleFormats, upceango.FormatEAN8)
		case "UPC_A":
			opts.PossibleFormats = append(opts.PossibleFormats, upceango.FormatUPCA)
		case "UPC_E":
			opts.PossibleFormats = append(opts.PossibleFormats, upceango.FormatUPCE)
		default:
			return nil, fmt.Errorf("unknown format %q", name)
		}
	}
	return &opts, nil
}

// scanReader decodes each line of r, reporting whether every row decoded.
func scanReader(name string, r io.Reader, opts *upceango.DecodeOptions) bool {
	reader := upcean.NewMultiFormatReader(opts)
	scanner := bufio.NewScanner(r)
	ok := true
	rowNumber := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := parseRow(line)
		result, err := decodeEitherDirection(reader, rowNumber, row, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: %v\n", name, rowNumber, err)
			ok = false
		} else {
			fmt.Printf("[%s] %s\n", result.Format, result.Text)
		}
		rowNumber++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", name, err)
		return false
	}
	return ok
}

// decodeEitherDirection tries the row as scanned, then reversed.
func decodeEitherDirection(reader *upcean.MultiFormatReader, rowNumber int, row *bitutil.BitArray, opts *upceango.DecodeOptions) (*upceango.Result, error) {
	result, err := reader.DecodeRow(rowNumber, row, opts)
	if err == nil {
		return result, nil
	}
	reversed := row.Clone()
	reversed.Reverse()
	result, err2 := reader.DecodeRow(rowNumber, reversed, opts)
	if err2 != nil {
		return nil, err
	}
	// Mirror the points back into the coordinates of the row as scanned.
	width := float64(row.Size())
	for i, p := range result.Points {
		result.Points[i] = upceango.ResultPoint{X: width - p.X - 1, Y: p.Y}
	}
	result.PutMetadata(upceango.MetadataOrientation, 180)
	return result, nil
}

func parseRow(line string) *bitutil.BitArray {
	row := bitutil.NewBitArray(len(line))
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '#', 'X', 'x', '1':
			row.Set(i)
		}
	}
	return row
}
