// Package riff reads the legacy index of a RIFF/AVI container.
//
// Only the subset needed to locate DV frame payloads is implemented: the
// 12-byte RIFF header, size-prefixed top-level chunk skipping, and the
// "idx1" index chunk. LIST recursion, the "movi" interleave, OpenDML
// extended indices and even-byte chunk padding are not modeled.
//
// Index records are decoded with the layout the original extraction tool
// shipped with: bytes 0-3 stream tag, bytes 4-7 payload offset, bytes 8-11
// payload size. The standard AVIINDEXENTRY puts dwFlags at bytes 4-7 and
// the offset at bytes 8-11; files indexed per the standard will therefore
// decode a flags word as the offset. The layout is preserved deliberately
// to stay byte-compatible with archives processed by the original tool.
package riff

const (
	// Signature is the RIFF magic at offset 0.
	Signature = "RIFF"
	// FormatAVI is the expected RIFF format tag.
	FormatAVI = "AVI "
	// IndexChunkID tags the legacy index chunk.
	IndexChunkID = "idx1"

	// HeaderSize is the RIFF header length: magic, size, format tag.
	HeaderSize = 12
	// ChunkHeaderSize is the tag plus length prefix of every chunk.
	ChunkHeaderSize = 8
	// IndexEntrySize is the fixed length of one index record.
	IndexEntrySize = 16

	// maxZeroLengthChunks bounds runs of non-advancing chunks before the
	// container is declared malformed. A well-formed file has none.
	maxZeroLengthChunks = 16
)

// Header is the decoded 12-byte RIFF header.
type Header struct {
	Size   uint32 // declared file size minus 8
	Format string // format tag, "AVI " for the containers handled here
}

// ChunkHeader is the 8-byte tag/length prefix of a top-level chunk.
type ChunkHeader struct {
	ID   string
	Size uint32
}

// IndexEntry is one decoded 16-byte index record. Offset and Size are
// taken at face value as absolute payload position and length, matching
// the original tool (see the package comment for the layout caveat).
type IndexEntry struct {
	StreamID string
	Offset   uint32
	Size     uint32
}
