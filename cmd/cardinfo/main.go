// Command cardinfo reports the gallery format of promotional-card images and
// the text color to print over card background colors.
//
//	cardinfo banner.png promo.webp '#1A237E' fff
//
// Arguments that parse as #RGB/#RRGGBB colors are treated as colors,
// everything else as image files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/IvanBrykalov/hubcache/aspect"
	"github.com/IvanBrykalov/hubcache/contrast"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cardinfo: ")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cardinfo [image|color]...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Args(), os.Stdout); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// run describes every argument on w. It keeps going after a failure and
// returns all failures joined.
func run(args []string, w io.Writer) error {
	var errs []error
	for _, arg := range args {
		if err := describe(arg, w); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", arg, err))
		}
	}
	return errors.Join(errs...)
}

func describe(arg string, w io.Writer) error {
	if l, err := contrast.Luminance(arg); err == nil {
		_, err := fmt.Fprintf(w, "%s\tcolor\tluminance=%.3f\ttext=%s\n",
			strings.ToUpper(arg), l, contrast.TextColor(arg))
		return err
	}

	f, err := os.Open(arg)
	if err != nil {
		return err
	}
	defer f.Close()

	ratio, cfg, format, err := aspect.DetectImage(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%dx%d\tratio=%s\n", arg, format, cfg.Width, cfg.Height, ratio)
	return err
}
