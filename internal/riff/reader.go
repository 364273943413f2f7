package riff

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zsiec/dvscan/internal/errors"
	"github.com/zsiec/dvscan/internal/logger"
)

// Reader reads container structures from a byte-addressable source.
// It keeps no position state; every read names its absolute offset.
type Reader struct {
	src    io.ReaderAt
	logger logger.Logger
}

// NewReader creates a reader over src.
func NewReader(src io.ReaderAt, log logger.Logger) *Reader {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Reader{src: src, logger: log}
}

// ReadAt reads exactly size bytes at the given offset.
func (r *Reader) ReadAt(offset int64, size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := r.src.ReadAt(buf, offset); err != nil {
		return nil, errors.NewIOError(err, fmt.Sprintf("read %d bytes at offset %d", size, offset))
	}
	return buf, nil
}

// ReadHeader validates the RIFF header and returns the offset of the
// first top-level chunk. A missing RIFF magic is fatal; a format tag
// other than "AVI " is logged but tolerated.
func (r *Reader) ReadHeader() (Header, int64, error) {
	buf, err := r.ReadAt(0, HeaderSize)
	if err != nil {
		return Header{}, 0, err
	}

	if string(buf[0:4]) != Signature {
		return Header{}, 0, errors.NewInvalidContainerError(
			fmt.Sprintf("missing RIFF magic, got %q", buf[0:4]))
	}

	hdr := Header{
		Size:   binary.LittleEndian.Uint32(buf[4:8]),
		Format: string(buf[8:12]),
	}

	if hdr.Format != FormatAVI {
		r.logger.WithField("format", hdr.Format).Warn("unexpected RIFF format tag")
	}

	r.logger.WithFields(logger.Fields{
		"riff_size": hdr.Size,
		"format":    hdr.Format,
	}).Debug("RIFF header read")

	return hdr, HeaderSize, nil
}

// ScanToIndex walks top-level chunks from offset until the index chunk.
// It returns the offset of the index chunk header and found=true, or
// found=false when the file ends before any index chunk. Runs of
// zero-length chunks longer than maxZeroLengthChunks abort the scan:
// they cannot advance the offset and indicate a malformed container.
func (r *Reader) ScanToIndex(offset int64) (int64, bool, error) {
	zeroRun := 0

	for {
		hdr, err := r.readChunkHeader(offset)
		if err != nil {
			// Short read means the file ended without an index chunk.
			r.logger.WithField("offset", offset).Debug("chunk scan reached end of file")
			return 0, false, nil
		}

		r.logger.WithFields(logger.Fields{
			"chunk":  hdr.ID,
			"size":   hdr.Size,
			"offset": offset,
		}).Debug("top-level chunk")

		if hdr.ID == IndexChunkID {
			return offset, true, nil
		}

		if hdr.Size == 0 {
			zeroRun++
			if zeroRun > maxZeroLengthChunks {
				return 0, false, errors.NewInvalidContainerError(
					fmt.Sprintf("%d consecutive zero-length chunks at offset %d", zeroRun, offset))
			}
		} else {
			zeroRun = 0
		}

		offset += ChunkHeaderSize + int64(hdr.Size)
	}
}

// ParseIndex decodes the index chunk whose header sits at offset. A tag
// mismatch is reported as a not-found error with no entries; the caller
// treats it as non-fatal. Entry count is the declared chunk length
// divided by the fixed record size, truncating any trailing partial
// record.
func (r *Reader) ParseIndex(offset int64) ([]IndexEntry, error) {
	hdr, err := r.readChunkHeader(offset)
	if err != nil {
		return nil, err
	}

	if hdr.ID != IndexChunkID {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("expected %q chunk at offset %d, found %q", IndexChunkID, offset, hdr.ID))
	}

	count := int(hdr.Size / IndexEntrySize)
	r.logger.WithFields(logger.Fields{
		"chunk_size": hdr.Size,
		"entries":    count,
	}).Debug("index chunk found")

	entries := make([]IndexEntry, 0, count)
	body := offset + ChunkHeaderSize

	for i := 0; i < count; i++ {
		raw, err := r.ReadAt(body+int64(i)*IndexEntrySize, IndexEntrySize)
		if err != nil {
			return entries, err
		}
		entries = append(entries, decodeIndexEntry(raw))
	}

	return entries, nil
}

func (r *Reader) readChunkHeader(offset int64) (ChunkHeader, error) {
	buf, err := r.ReadAt(offset, ChunkHeaderSize)
	if err != nil {
		return ChunkHeader{}, err
	}
	return ChunkHeader{
		ID:   string(buf[0:4]),
		Size: binary.LittleEndian.Uint32(buf[4:8]),
	}, nil
}

// decodeIndexEntry decodes one 16-byte record per the original tool's
// layout; see the package comment for how this diverges from the
// standard AVIINDEXENTRY.
func decodeIndexEntry(raw []byte) IndexEntry {
	return IndexEntry{
		StreamID: string(raw[0:4]),
		Offset:   binary.LittleEndian.Uint32(raw[4:8]),
		Size:     binary.LittleEndian.Uint32(raw[8:12]),
	}
}
