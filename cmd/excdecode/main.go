// Excdecode prints exception records saved or written to the console by the
// fault core.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

const usageString = `Exception record decoder.

Usage:

	%s [flags]

Records are read from a file, stdin, a file inside a disk image or the
console output of a command. Binary records and EXCREC console lines are
both accepted.

`

type config struct {
	File  string `toml:"file"`
	Image string `toml:"image"`
	Part  int    `toml:"part"`
	Path  string `toml:"path"`
	Run   string `toml:"run"`
}

var defaultConfig = config{
	File: "-",
	Part: 1,
	Path: "/EXC.LOG",
}

func must[T any](ret T, err error) T {
	if err != nil {
		log.Fatalln(err)
	}
	return ret
}

// parseArgs returns the configuration from the optional -config file,
// overridden by flags given on the command line.
func parseArgs(args []string, output io.Writer) (cfg config, err error) {
	flags := flag.NewFlagSet("excdecode", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usageString, "excdecode")
		flags.PrintDefaults()
	}

	cfg = defaultConfig
	var fromFlags config
	configFile := flags.String("config", "", "read defaults from TOML `file`")
	flags.StringVar(&fromFlags.File, "f", cfg.File, "read records from `file`, - for stdin")
	flags.StringVar(&fromFlags.Image, "image", cfg.Image, "read records from a FAT filesystem in disk `image`")
	flags.IntVar(&fromFlags.Part, "part", cfg.Part, "partition number in -image, 0 for the whole disk")
	flags.StringVar(&fromFlags.Path, "path", cfg.Path, "record log `path` in -image")
	flags.StringVar(&fromFlags.Run, "run", cfg.Run, "scan the console output of `command`")
	if err = flags.Parse(args); err != nil {
		return
	}
	if flags.NArg() != 0 {
		flags.Usage()
		return cfg, errors.New("unexpected arguments")
	}

	if *configFile != "" {
		if _, err = toml.DecodeFile(*configFile, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f":
			cfg.File = fromFlags.File
		case "image":
			cfg.Image = fromFlags.Image
		case "part":
			cfg.Part = fromFlags.Part
		case "path":
			cfg.Path = fromFlags.Path
		case "run":
			cfg.Run = fromFlags.Run
		}
	})
	return cfg, nil
}

func main() {
	log.Default().SetFlags(0)

	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.Fatalln(err)
	}

	d := newDecoder(os.Stdout)
	switch {
	case cfg.Run != "":
		if err := run(cfg.Run, d); err != nil {
			log.Fatalln("run:", err)
		}
	case cfg.Image != "":
		d.binary(must(readImage(cfg.Image, cfg.Part, cfg.Path)))
	default:
		r := os.Stdin
		if cfg.File != "-" {
			r = must(os.Open(cfg.File))
			defer r.Close()
		}
		p := must(io.ReadAll(r))
		if bytes.HasPrefix(p, recordMagic) {
			d.binary(p)
		} else if err := d.lines(bytes.NewReader(p), nil); err != nil {
			log.Fatalln(err)
		}
	}

	if d.failed > 0 {
		log.Printf("%d invalid records skipped", d.failed)
	}
	if d.decoded == 0 {
		log.Println("no records found")
		os.Exit(1)
	}
}
