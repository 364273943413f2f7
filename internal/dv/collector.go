package dv

import "sort"

// Collector accumulates decoded timecodes, keeping one entry per
// distinct value in first-seen order and counting every occurrence.
// Membership is a linear scan; the collection holds one entry per
// physically distinct recording timestamp and stays small.
type Collector struct {
	times  []RecordedTime
	counts map[RecordedTime]int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{counts: make(map[RecordedTime]int)}
}

// Add records an occurrence of t. It returns true when t was not seen
// before and was appended, false for a duplicate.
func (c *Collector) Add(t RecordedTime) bool {
	c.counts[t]++
	for _, have := range c.times {
		if have == t {
			return false
		}
	}
	c.times = append(c.times, t)
	return true
}

// Times returns the distinct timecodes in first-seen order.
func (c *Collector) Times() []RecordedTime {
	out := make([]RecordedTime, len(c.times))
	copy(out, c.times)
	return out
}

// Count returns how many times t was added.
func (c *Collector) Count(t RecordedTime) int {
	return c.counts[t]
}

// Len returns the number of distinct timecodes.
func (c *Collector) Len() int {
	return len(c.times)
}

// Frequent returns the timecodes seen at least min times, sorted
// chronologically. Used for subtitle output, where rare values are
// usually decode noise from damaged frames.
func (c *Collector) Frequent(min int) []RecordedTime {
	var out []RecordedTime
	for _, t := range c.times {
		if c.counts[t] >= min {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
