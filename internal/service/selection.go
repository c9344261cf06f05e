package service

import "github.com/wazxo/EmercengyAPP/internal/model"

// Select highlights a snapshot of ev. Selecting from any phase lands in
// Selected with the preview closed. The Draft is not touched.
func (c *Coordinator) Select(ev model.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection = model.Selection{Event: snapshot(ev)}
}

// Deselect returns to Idle, closing the preview if it is open.
func (c *Coordinator) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection = model.Selection{}
}

// OpenPreview moves Selected to Previewing. With nothing selected it does
// nothing and reports false.
func (c *Coordinator) OpenPreview() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Selection.Event == nil {
		return false
	}
	c.state.Selection.PreviewOpen = true
	return true
}

// ClosePreview moves Previewing back to Selected.
func (c *Coordinator) ClosePreview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection.PreviewOpen = false
}

// Selection returns a copy of the current selection.
func (c *Coordinator) Selection() model.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state.Selection
	if s.Event != nil {
		s.Event = snapshot(*s.Event)
	}
	return s
}

// Phase reports Idle, Selected or Previewing.
func (c *Coordinator) Phase() model.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Selection.Phase()
}
