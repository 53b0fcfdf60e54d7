package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Index     int
	Items     int
	Text      string
	More      bool
	HasFailed bool
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of displayed stores
func (c *ModelContext) TotalItems() int {
	return c.Items
}

// Query returns the raw query input
func (c *ModelContext) Query() string {
	return c.Text
}

// MoreAvailable reports whether the "more" affordance is enabled
func (c *ModelContext) MoreAvailable() bool {
	return c.More
}

// HasError reports whether the last request for the query failed
func (c *ModelContext) HasError() bool {
	return c.HasFailed
}
