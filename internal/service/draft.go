package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/photo"
)

// Submit labels shown on the draft form.
const (
	// LabelCreate is shown while the draft is in Creating mode.
	LabelCreate = "Add event"
	// LabelUpdate is shown while the draft is in Editing mode.
	LabelUpdate = "Update event"
)

// Draft returns a copy of the current draft.
func (c *Coordinator) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Draft
}

func (c *Coordinator) editDraft(fn func(*model.Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state.Draft)
}

// SetTitle sets the draft title.
func (c *Coordinator) SetTitle(s string) { c.editDraft(func(d *model.Draft) { d.Title = s }) }

// SetDescription sets the draft description.
func (c *Coordinator) SetDescription(s string) { c.editDraft(func(d *model.Draft) { d.Description = s }) }

// SetDate sets the draft date text.
func (c *Coordinator) SetDate(s string) { c.editDraft(func(d *model.Draft) { d.Date = s }) }

// SetPhoto sets the draft photo reference.
func (c *Coordinator) SetPhoto(s string) { c.editDraft(func(d *model.Draft) { d.Photo = s }) }

// PickPhoto asks p for a photo and stores the reference in the Draft.
// It reports false and leaves the Draft unchanged when the user cancels.
func (c *Coordinator) PickPhoto(ctx context.Context, p photo.Picker) (bool, error) {
	ref, ok, err := p.Pick(ctx)
	if err != nil {
		c.log.Warn("pick photo", zap.Error(err))
		return false, err
	}
	if !ok {
		return false, nil
	}
	c.SetPhoto(ref)
	return true, nil
}

// BeginEdit loads ev into the Draft and switches it to Editing. The
// Selection is not touched.
func (c *Coordinator) BeginEdit(ev model.Event) {
	c.editDraft(func(d *model.Draft) {
		*d = model.Draft{EventFields: ev.EventFields, Mode: model.Editing{ID: ev.ID}}
	})
	c.log.Debug("edit started", zap.Int64("id", ev.ID))
}

// CancelEdit discards the Draft and returns to Creating.
func (c *Coordinator) CancelEdit() {
	c.editDraft(func(d *model.Draft) { *d = model.Draft{Mode: model.Creating{}} })
}

// SubmitLabel names the action Submit will take.
func (c *Coordinator) SubmitLabel() string {
	return SubmitLabel(c.Draft())
}

// SubmitLabel names the action a submit of d would take.
func SubmitLabel(d model.Draft) string {
	if _, ok := d.EditingID(); ok {
		return LabelUpdate
	}
	return LabelCreate
}
