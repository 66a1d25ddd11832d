// Package main provides a command-line utility to dump an Irap regular
// surface file: decodes it as ASCII (or as binary with -binary) and prints
// the header and a summary of the values grid.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/scigolib/irap"
)

func main() {
	binary := flag.Bool("binary", false, "decode as the binary (grd) variant instead of ASCII")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: irapdump [-binary] <file.irap>")
		flag.PrintDefaults()
		return
	}

	path := args[0]

	var surf *irap.Surface
	var err error
	if *binary {
		surf, err = irap.DecodeBinaryFile(path)
	} else {
		surf, err = irap.DecodeASCIIFile(path)
	}
	if err != nil {
		log.Fatalf("failed to decode %s: %v", path, err)
	}

	fmt.Println(surf)
	fmt.Printf("ncol=%d nrow=%d xori=%g yori=%g xmax=%g ymax=%g xinc=%g yinc=%g rot=%g\n",
		surf.Header.Ncol, surf.Header.Nrow,
		surf.Header.Xori, surf.Header.Yori,
		surf.Header.Xmax, surf.Header.Ymax,
		surf.Header.Xinc, surf.Header.Yinc,
		surf.Header.Rot)

	var nanCount int
	for _, col := range surf.Values {
		for _, v := range col {
			if v != v {
				nanCount++
			}
		}
	}
	fmt.Printf("%d NaN samples of %d\n", nanCount, int(surf.Header.Ncol)*int(surf.Header.Nrow))

	os.Exit(0)
}
