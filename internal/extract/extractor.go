// Package extract drives a full timecode extraction run: container index
// walk, frame reads, subcode decoding and accumulation.
package extract

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/zsiec/dvscan/internal/config"
	"github.com/zsiec/dvscan/internal/dv"
	"github.com/zsiec/dvscan/internal/logger"
	"github.com/zsiec/dvscan/internal/riff"
)

// Result holds the outcome of one extraction run.
type Result struct {
	// Timecodes is the accumulated collection, first-seen ordered.
	Timecodes *dv.Collector
	// Entries is the number of index entries examined.
	Entries int
	// FramesDecoded counts entries that produced a valid timecode.
	FramesDecoded int
	// FramesSkipped counts qualifying frames that yielded no timecode
	// (missing subcode pack or out-of-range field).
	FramesSkipped int
}

// Extractor runs extractions with a fixed configuration. Safe for
// sequential reuse across files; each run gets its own run ID.
type Extractor struct {
	cfg    config.ScanConfig
	logger logger.Logger
}

// New creates an extractor. A nil logger discards output.
func New(cfg config.ScanConfig, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNullLogger()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Extractor{cfg: cfg, logger: log}
}

// ExtractFile opens path and extracts its timecodes. File open failures
// and invalid containers are fatal errors; everything recoverable is
// absorbed and reflected only in the Result counters.
func (e *Extractor) ExtractFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return e.Extract(f)
}

// Extract runs one extraction over src.
func (e *Extractor) Extract(src io.ReaderAt) (*Result, error) {
	log := e.logger.WithField("run_id", uuid.New().String())
	reader := riff.NewReader(src, log)

	_, next, err := reader.ReadHeader()
	if err != nil {
		return nil, err
	}

	result := &Result{Timecodes: dv.NewCollector()}

	indexOffset, found, err := reader.ScanToIndex(next)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Warn("no index chunk in container")
		return result, nil
	}

	entries, err := reader.ParseIndex(indexOffset)
	if err != nil {
		// A tag mismatch at the located offset aborts index processing
		// but not the run; the index chunk is terminal anyway.
		log.WithError(err).Error("index chunk unusable")
		return result, nil
	}
	result.Entries = len(entries)

	e.decodeEntries(reader, entries, result, log)

	log.WithFields(logger.Fields{
		"entries":  result.Entries,
		"decoded":  result.FramesDecoded,
		"skipped":  result.FramesSkipped,
		"distinct": result.Timecodes.Len(),
	}).Info("extraction complete")

	return result, nil
}

// decodeEntries reads and decodes every qualifying frame and accumulates
// results strictly in index-entry order. With more than one worker the
// decodes run concurrently over immutable byte ranges; accumulation
// stays a single ordered pass, so first-seen order is by entry order,
// never completion order.
func (e *Extractor) decodeEntries(reader *riff.Reader, entries []riff.IndexEntry, result *Result, log logger.Logger) {
	qualifying := make([]int, 0, len(entries))
	for i, entry := range entries {
		if dv.DecodableSize(int(entry.Size)) {
			qualifying = append(qualifying, i)
		}
	}

	decoded := make([]*dv.RecordedTime, len(entries))

	decodeOne := func(i int) {
		entry := entries[i]
		frame, err := reader.ReadAt(int64(entry.Offset), int(entry.Size))
		if err != nil {
			log.WithError(err).WithFields(logger.Fields{
				"stream": entry.StreamID,
				"offset": entry.Offset,
			}).Debug("frame read failed")
			return
		}
		if t, ok := dv.DecodeRecordedTime(frame); ok {
			decoded[i] = &t
		}
	}

	workers := e.cfg.Workers
	if workers > len(qualifying) {
		workers = len(qualifying)
	}

	if workers <= 1 {
		for _, i := range qualifying {
			decodeOne(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					decodeOne(i)
				}
			}()
		}
		for _, i := range qualifying {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for _, i := range qualifying {
		if decoded[i] == nil {
			result.FramesSkipped++
			continue
		}
		result.FramesDecoded++
		if result.Timecodes.Add(*decoded[i]) {
			log.WithField("timecode", decoded[i].String()).Debug("new timecode")
		}
	}
}
