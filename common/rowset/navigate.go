package rowset

// Position 0 is before the first row, BatchRowCount()+1 after the last.
// Moves past either end stop there.

func (c *Cursor) setPosition(p int) {
	switch last := c.BatchRowCount() + 1; {
	case p < 0:
		c.position = 0
	case p > last:
		c.position = last
	default:
		c.position = p
	}
}

func (c *Cursor) onRow() bool {
	return c.position >= 1 && c.position <= c.BatchRowCount()
}

// Next moves one row forward and reports whether the cursor is on a row.
func (c *Cursor) Next() bool {
	c.setPosition(c.position + 1)
	return c.position <= c.BatchRowCount()
}

// Previous moves one row back. It always reports true; use Row or
// IsBeforeFirst to learn whether the cursor is still on a row.
func (c *Cursor) Previous() bool {
	c.setPosition(c.position - 1)
	return true
}

// First moves to the first row. On an empty cursor it returns false and
// leaves the cursor before the first row.
func (c *Cursor) First() bool {
	if c.BatchRowCount() == 0 {
		c.position = 0
		return false
	}
	c.position = 1
	return true
}

// Last moves to the last row, false on an empty cursor.
func (c *Cursor) Last() bool {
	c.position = c.BatchRowCount()
	return c.BatchRowCount() > 0
}

func (c *Cursor) BeforeFirst() {
	c.position = 0
}

func (c *Cursor) AfterLast() {
	c.position = c.BatchRowCount() + 1
}

// Absolute moves to row n (1-based) and reports whether that is a row.
func (c *Cursor) Absolute(n int) bool {
	c.setPosition(n)
	return c.onRow()
}

// Relative moves n rows from the current position.
func (c *Cursor) Relative(n int) bool {
	c.setPosition(c.position + n)
	return c.onRow()
}

// Row is the current 1-based row number, 0 when not on a row.
func (c *Cursor) Row() int {
	if !c.onRow() {
		return 0
	}
	return c.position
}

func (c *Cursor) IsBeforeFirst() bool {
	return c.BatchRowCount() > 0 && c.position == 0
}

func (c *Cursor) IsAfterLast() bool {
	return c.BatchRowCount() > 0 && c.position == c.BatchRowCount()+1
}

func (c *Cursor) IsFirst() bool {
	return c.BatchRowCount() > 0 && c.position == 1
}

func (c *Cursor) IsLast() bool {
	return c.BatchRowCount() > 0 && c.position == c.BatchRowCount()
}
