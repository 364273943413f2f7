package dv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameWithPacks builds a frame carrying a date and a time pack in the
// first two pack slots. Pack bytes 2-4 hold the packed-decimal fields.
func frameWithPacks(size int, date, time []byte) []byte {
	frame := newFrame(size)
	if date != nil {
		writePack(frame, 0, 0, 0, date)
	}
	if time != nil {
		writePack(frame, 0, 0, 1, time)
	}
	return frame
}

func datePack(day, month, year byte) []byte {
	return []byte{PackRecDate, 0xFF, day, month, year, 0xFF, 0xFF, 0xFF}
}

func timePack(sec, min, hour byte) []byte {
	return []byte{PackRecTime, 0xFF, sec, min, hour, 0xFF, 0xFF, 0xFF}
}

func TestDecodeRecordedTime_RoundTrip(t *testing.T) {
	frame := frameWithPacks(FrameSizeLarge, datePack(0x15, 0x06, 0x24), timePack(0x00, 0x30, 0x10))

	tc, ok := DecodeRecordedTime(frame)
	require.True(t, ok)
	assert.Equal(t, RecordedTime{Day: 15, Month: 6, Year: 2024, Hour: 10, Minute: 30, Second: 0}, tc)
	assert.Equal(t, "15 6 2024 10 30 0", tc.String())
}

func TestDecodeRecordedTime_SizeGate(t *testing.T) {
	frame := frameWithPacks(FrameSizeLarge, datePack(0x15, 0x06, 0x24), timePack(0x00, 0x30, 0x10))

	_, ok := DecodeRecordedTime(frame[:100000])
	assert.False(t, ok)

	_, ok = DecodeRecordedTime(nil)
	assert.False(t, ok)
}

func TestDecodeRecordedTime_MissingPacks(t *testing.T) {
	tests := []struct {
		name string
		date []byte
		time []byte
	}{
		{name: "no date pack", date: nil, time: timePack(0x00, 0x30, 0x10)},
		{name: "no time pack", date: datePack(0x15, 0x06, 0x24), time: nil},
		{name: "neither pack", date: nil, time: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := frameWithPacks(FrameSizeSmall, tt.date, tt.time)
			_, ok := DecodeRecordedTime(frame)
			assert.False(t, ok)
		})
	}
}

func TestDecodeRecordedTime_UpperNibbleMasks(t *testing.T) {
	// Flag bits above each field's mask must not leak into the value.
	// Day keeps 2 bits of tens (mask 0x3), month 1 bit, hour 2 bits,
	// second and minute 3 bits.
	frame := frameWithPacks(FrameSizeSmall,
		[]byte{PackRecDate, 0xFF, 0xD5, 0xE6, 0x24, 0xFF, 0xFF, 0xFF}, // day 0xD5 -> tens 0xD&0x3=1
		[]byte{PackRecTime, 0xFF, 0xB0, 0x93, 0xD1, 0xFF, 0xFF, 0xFF}) // sec 0xB0 -> tens 0xB&0x7=3

	tc, ok := DecodeRecordedTime(frame)
	require.True(t, ok)
	assert.Equal(t, 15, tc.Day)    // 0xD5: 5 + 10*(0xD & 0x3)
	assert.Equal(t, 6, tc.Month)   // 0xE6: 6 + 10*(0xE & 0x1)
	assert.Equal(t, 2024, tc.Year) // 0x24 with full-nibble mask
	assert.Equal(t, 30, tc.Second) // 0xB0: 0 + 10*(0xB & 0x7)
	assert.Equal(t, 13, tc.Minute) // 0x93: 3 + 10*(0x9 & 0x7)
	assert.Equal(t, 11, tc.Hour)   // 0xD1: 1 + 10*(0xD & 0x3)
}

func TestDecodeRecordedTime_CenturyPivot(t *testing.T) {
	// yy=49 -> 2049 (valid); yy=50 -> 1950, which then fails the
	// 1995 lower bound and discards the record.
	frame := frameWithPacks(FrameSizeSmall, datePack(0x01, 0x01, 0x49), timePack(0x00, 0x00, 0x00))
	tc, ok := DecodeRecordedTime(frame)
	require.True(t, ok)
	assert.Equal(t, 2049, tc.Year)

	frame = frameWithPacks(FrameSizeSmall, datePack(0x01, 0x01, 0x50), timePack(0x00, 0x00, 0x00))
	_, ok = DecodeRecordedTime(frame)
	assert.False(t, ok)
}

func TestDecodeRecordedTime_RangeValidation(t *testing.T) {
	valid := struct{ day, month, year, sec, min, hour byte }{
		day: 0x15, month: 0x06, year: 0x24, sec: 0x00, min: 0x30, hour: 0x10,
	}

	tests := []struct {
		name string
		date []byte
		time []byte
	}{
		{
			name: "day 32",
			date: datePack(0x32, valid.month, valid.year),
			time: timePack(valid.sec, valid.min, valid.hour),
		},
		{
			name: "day 0",
			date: datePack(0x00, valid.month, valid.year),
			time: timePack(valid.sec, valid.min, valid.hour),
		},
		{
			name: "month 0",
			date: datePack(valid.day, 0x00, valid.year),
			time: timePack(valid.sec, valid.min, valid.hour),
		},
		{
			name: "year 1994",
			date: datePack(valid.day, valid.month, 0x94),
			time: timePack(valid.sec, valid.min, valid.hour),
		},
		{
			name: "second 61",
			date: datePack(valid.day, valid.month, valid.year),
			time: timePack(0x61, valid.min, valid.hour),
		},
		{
			name: "minute 61",
			date: datePack(valid.day, valid.month, valid.year),
			time: timePack(valid.sec, 0x61, valid.hour),
		},
		{
			name: "hour 31",
			date: datePack(valid.day, valid.month, valid.year),
			time: timePack(valid.sec, valid.min, 0x31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := frameWithPacks(FrameSizeLarge, tt.date, tt.time)
			_, ok := DecodeRecordedTime(frame)
			assert.False(t, ok, "out-of-range field must discard the whole record")
		})
	}
}

func TestRecordedTime_Before(t *testing.T) {
	a := RecordedTime{Day: 31, Month: 12, Year: 2023, Hour: 23, Minute: 59, Second: 59}
	b := RecordedTime{Day: 1, Month: 1, Year: 2024, Hour: 0, Minute: 0, Second: 0}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
