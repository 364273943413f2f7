package dv

import "fmt"

// RecordedTime is a fully validated recording timestamp decoded from a
// frame's subcode. Two RecordedTimes are equal when all six fields are.
type RecordedTime struct {
	Day    int
	Month  int
	Year   int
	Hour   int
	Minute int
	Second int
}

// String renders the six fields space-separated in report order.
func (t RecordedTime) String() string {
	return fmt.Sprintf("%d %d %d %d %d %d", t.Day, t.Month, t.Year, t.Hour, t.Minute, t.Second)
}

// Before orders timestamps chronologically.
func (t RecordedTime) Before(o RecordedTime) bool {
	a := [6]int{t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second}
	b := [6]int{o.Year, o.Month, o.Day, o.Hour, o.Minute, o.Second}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// bcd decodes a packed-decimal byte. The upper nibble is masked
// field-specifically because its top bits carry flags, not digits.
func bcd(b, mask byte) int {
	return int(b&0xF) + 10*int((b>>4)&mask)
}

// DecodeRecordedTime extracts the recording date and time from a raw DV
// frame. It returns ok=false when the frame length is not a recognized
// size, when either the date (0x62) or time (0x63) pack is absent, or
// when any decoded field falls outside its valid range. No partially
// valid result is ever returned.
func DecodeRecordedTime(frame []byte) (RecordedTime, bool) {
	if !DecodableSize(len(frame)) {
		return RecordedTime{}, false
	}

	datePack := FindPack(frame, PackRecDate)
	timePack := FindPack(frame, PackRecTime)
	if datePack == nil || timePack == nil {
		return RecordedTime{}, false
	}

	t := RecordedTime{
		Day:    bcd(datePack[2], 0x3),
		Month:  bcd(datePack[3], 0x1),
		Year:   bcd(datePack[4], 0xF),
		Second: bcd(timePack[2], 0x7),
		Minute: bcd(timePack[3], 0x7),
		Hour:   bcd(timePack[4], 0x3),
	}

	// Two-digit year; DV predates 2000 so the pivot is at 50.
	if t.Year < 50 {
		t.Year += 2000
	} else {
		t.Year += 1900
	}

	if !t.valid() {
		return RecordedTime{}, false
	}
	return t, true
}

func (t RecordedTime) valid() bool {
	switch {
	case t.Day < 1 || t.Day > 31:
		return false
	case t.Month < 1 || t.Month > 12:
		return false
	case t.Year < 1995 || t.Year > 2100:
		return false
	case t.Hour < 0 || t.Hour > 23:
		return false
	case t.Minute < 0 || t.Minute > 59:
		return false
	case t.Second < 0 || t.Second > 59:
		return false
	}
	return true
}
