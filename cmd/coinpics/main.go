package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/setanarut/coinpics"
	"github.com/setanarut/coinpics/batch"
	"github.com/setanarut/coinpics/logger"
)

const defaultRoot = "./Public"

const commandHelp = `Commands:
	1	Rename files to sequential numbers
	2	Create thumbnails
	3	Create thumbnails from the first two images only
	4	Create WebP images
	5	Chroma key images
	6	Crop images

Files must be organized as:
	DIRECTORY/
		COIN1/0000.jpg 0001.jpg ...
		COINN/0000.jpg 0001.jpg ...
`

func main() {
	opt := coinpics.DefaultOptions()
	var (
		commands = flag.String("c", "", "command characters to run in order, e.g. 12")
		verbose  = flag.Bool("v", false, "verbose output")
		workers  = flag.Int("workers", 0, "coin directories processed at once (0 = GOMAXPROCS)")
		suggest  = flag.Bool("suggest", false, "derive the keying band of each picture from its backdrop")
	)
	flag.IntVar(&opt.Band.Min, "min", opt.Band.Min, "key distance where transparency starts (0-510)")
	flag.IntVar(&opt.Band.Max, "max", opt.Band.Max, "key distance where pixels are fully transparent (0-510)")
	flag.IntVar(&opt.Padding, "padding", opt.Padding, "pixels kept around the detected coin")
	flag.IntVar(&opt.ThumbnailHeight, "height", opt.ThumbnailHeight, "thumbnail height in pixels")
	flag.IntVar(&opt.DerivativeQuality, "quality", opt.DerivativeQuality, "WebP quality (0-100)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Manage and prepare coin pictures located in subdirectories of DIRECTORY\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [DIRECTORY]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s", commandHelp)
	}
	flag.Parse()

	root := defaultRoot
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Directory %q does not exist\n\n", root)
		flag.Usage()
		os.Exit(1)
	}
	if *commands == "" {
		flag.Usage()
		os.Exit(1)
	}
	for i := range len(*commands) {
		if c := (*commands)[i]; c < '1' || c > '6' {
			fmt.Fprintf(os.Stderr, "Command %q not recognized\n\n", c)
			flag.Usage()
			os.Exit(1)
		}
	}
	opt.Band = coinpics.NewBand(opt.Band.Min, opt.Band.Max)

	level := logger.LogInfo
	if *verbose {
		level = logger.LogDebug
	}
	log := logger.NewStdOutLogger(level)

	r := batch.NewRunner(root, opt, log)
	r.Workers = *workers
	r.SuggestBand = *suggest

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for i := range len(*commands) {
		c := (*commands)[i]
		if err := r.Run(ctx, c); err != nil {
			log.Errorf("%v", err)
			stop()
			os.Exit(1)
		}
	}
}
