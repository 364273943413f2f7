// Package dv decodes recording date/time subcode from raw DV frames
// (IEC 61834-2) and collects the distinct timecodes found.
package dv

const (
	// FrameSizeLarge and FrameSizeSmall are the only two raw frame
	// lengths recognized as decodable.
	FrameSizeLarge = 144000
	FrameSizeSmall = 120000

	// A DIF sequence is 150 blocks of 80 bytes. The first blocks of a
	// sequence carry subcode data: 2 blocks, 6 SSYB packs each, 8 bytes
	// per pack with the pack ID 3 bytes in.
	sequenceSize  = 150 * 80
	blockSize     = 80
	subcodeBlocks = 2
	packsPerBlock = 6

	// PackSize is the length of one SSYB pack.
	PackSize = 8

	// SSYB pack IDs for the recording date and time packs.
	PackRecDate = 0x62
	PackRecTime = 0x63
)

// DecodableSize reports whether n is a recognized raw frame length.
func DecodableSize(n int) bool {
	return n == FrameSizeLarge || n == FrameSizeSmall
}

// SequenceCount derives the DIF sequence count from the frame length:
// 12 sequences at the large frame size, 10 otherwise.
func SequenceCount(frameLen int) int {
	if frameLen >= FrameSizeLarge {
		return 12
	}
	return 10
}

// FindPack returns the first SSYB pack in frame whose ID byte equals id,
// scanning sequences outermost, then subcode blocks, then packs. It
// returns nil if no such pack exists. The caller must have size-gated
// frame with DecodableSize; the offsets assume a full frame.
func FindPack(frame []byte, id byte) []byte {
	seqCount := SequenceCount(len(frame))

	for seq := 0; seq < seqCount; seq++ {
		for block := 0; block < subcodeBlocks; block++ {
			for pack := 0; pack < packsPerBlock; pack++ {
				offset := seq*sequenceSize + block*blockSize + 3 + pack*PackSize + 3
				if frame[offset] == id {
					return frame[offset : offset+PackSize]
				}
			}
		}
	}
	return nil
}
