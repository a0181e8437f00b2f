package todo

import "time"

// IDSource hands out task ids. Seed is called after every load with the
// largest id present so that new ids never collide with stored ones.
type IDSource interface {
	Next() int64
	Seed(maxID int64)
}

// ClockIDs derives ids from the wall clock in milliseconds and bumps by one
// when the clock has not advanced since the previous id.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Next() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

func (c *ClockIDs) Seed(maxID int64) {
	if maxID > c.last {
		c.last = maxID
	}
}
