package dv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packOffset mirrors the subcode geometry: sequences of 150 80-byte
// blocks, subcode packs 3 bytes into each 8-byte slot.
func packOffset(seq, block, pack int) int {
	return seq*150*80 + block*80 + 3 + pack*8 + 3
}

// newFrame returns a zeroed frame of the given size.
func newFrame(size int) []byte {
	return make([]byte, size)
}

// writePack places an 8-byte SSYB pack at the given geometry position.
func writePack(frame []byte, seq, block, pack int, data []byte) {
	copy(frame[packOffset(seq, block, pack):], data)
}

func TestDecodableSize(t *testing.T) {
	assert.True(t, DecodableSize(FrameSizeLarge))
	assert.True(t, DecodableSize(FrameSizeSmall))
	assert.False(t, DecodableSize(100000))
	assert.False(t, DecodableSize(0))
	assert.False(t, DecodableSize(FrameSizeLarge+1))
}

func TestSequenceCount(t *testing.T) {
	assert.Equal(t, 12, SequenceCount(FrameSizeLarge))
	assert.Equal(t, 10, SequenceCount(FrameSizeSmall))
}

func TestFindPack(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		place func(frame []byte)
		id    byte
		found bool
	}{
		{
			name: "first pack of first block",
			size: FrameSizeLarge,
			place: func(f []byte) {
				writePack(f, 0, 0, 0, []byte{0x62, 0, 0x15, 0x06, 0x24, 0, 0, 0})
			},
			id:    0x62,
			found: true,
		},
		{
			name: "last pack of last sequence",
			size: FrameSizeLarge,
			place: func(f []byte) {
				writePack(f, 11, 1, 5, []byte{0x63, 0, 0, 0, 0, 0, 0, 0})
			},
			id:    0x63,
			found: true,
		},
		{
			name: "last sequence of small frame",
			size: FrameSizeSmall,
			place: func(f []byte) {
				writePack(f, 9, 1, 5, []byte{0x62, 0, 0, 0, 0, 0, 0, 0})
			},
			id:    0x62,
			found: true,
		},
		{
			name:  "absent pack",
			size:  FrameSizeLarge,
			place: func(f []byte) {},
			id:    0x62,
			found: false,
		},
		{
			name: "pack id outside scanned geometry is not found",
			size: FrameSizeLarge,
			place: func(f []byte) {
				// One byte past the last scanned pack slot.
				f[packOffset(11, 1, 5)+PackSize] = 0x62
			},
			id:    0x62,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := newFrame(tt.size)
			tt.place(frame)

			pack := FindPack(frame, tt.id)
			if !tt.found {
				assert.Nil(t, pack)
				return
			}
			require.Len(t, pack, PackSize)
			assert.Equal(t, tt.id, pack[0])
		})
	}
}

func TestFindPack_FirstMatchWins(t *testing.T) {
	frame := newFrame(FrameSizeSmall)
	writePack(frame, 0, 1, 0, []byte{0x62, 0, 0x01, 0, 0, 0, 0, 0})
	writePack(frame, 2, 0, 0, []byte{0x62, 0, 0x02, 0, 0, 0, 0, 0})

	pack := FindPack(frame, 0x62)
	require.NotNil(t, pack)
	// Sequence-major scan order: sequence 0 block 1 precedes sequence 2.
	assert.Equal(t, byte(0x01), pack[2])
}
