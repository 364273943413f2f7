package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zsiec/dvscan/internal/config"
	"github.com/zsiec/dvscan/internal/extract"
	"github.com/zsiec/dvscan/internal/logger"
	"github.com/zsiec/dvscan/internal/subtitle"
	"github.com/zsiec/dvscan/pkg/version"
)

func main() {
	var (
		configPath  string
		showVersion bool
		logLevel    string
		writeSRT    bool
		workers     int
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file (optional)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, ...)")
	flag.BoolVar(&writeSRT, "srt", false, "Write a .srt subtitle file next to each input")
	flag.IntVar(&workers, "workers", 0, "Override concurrent frame decoders")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dvscan [flags] <avi-file-or-directory>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Show version and exit if requested
	if showVersion {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if writeSRT {
		cfg.Output.SRT = true
	}
	if workers > 0 {
		cfg.Scan.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithField("version", version.GetInfo().Short()).Debug("starting extraction")

	if err := run(path, cfg, log); err != nil {
		log.WithError(err).Error("extraction failed")
		os.Exit(1)
	}
}

func run(path string, cfg *config.Config, log *logrus.Logger) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	extractor := extract.New(cfg.Scan, logger.NewLogrusAdapter(logger.WithComponent(log, "extract")))

	if !info.IsDir() {
		return processFile(path, cfg, extractor, log)
	}

	// Per-file failures do not stop a directory walk; only the walk
	// itself failing is fatal.
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".avi") {
			return nil
		}
		if err := processFile(p, cfg, extractor, log); err != nil {
			log.WithError(err).WithField("file", p).Error("skipping file")
		}
		return nil
	})
}

func processFile(path string, cfg *config.Config, extractor *extract.Extractor, log *logrus.Logger) error {
	log.WithField("file", path).Info("processing")

	result, err := extractor.ExtractFile(path)
	if err != nil {
		return err
	}

	for _, t := range result.Timecodes.Times() {
		fmt.Println(t.String())
	}

	if cfg.Output.SRT {
		frequent := result.Timecodes.Frequent(cfg.Output.MinOccurrences)
		if len(frequent) == 0 {
			log.WithField("file", path).Warn("no timecodes met the subtitle occurrence threshold")
			return nil
		}
		sidecar := subtitle.SidecarPath(path)
		if err := subtitle.WriteFile(sidecar, frequent); err != nil {
			return err
		}
		log.WithFields(logger.Fields{
			"file":    sidecar,
			"entries": len(frequent),
		}).Info("subtitle file written")
	}

	return nil
}
