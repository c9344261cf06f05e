package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDraft_Missing(t *testing.T) {
	require.Equal(t, []string{"title", "date", "photo"}, Draft{}.Missing())
	require.Equal(t, []string{"date"}, Draft{EventFields: EventFields{Title: "Flood", Date: " \t", Photo: "p"}}.Missing())
	require.Empty(t, Draft{EventFields: EventFields{Title: "Flood", Date: "d", Photo: "p"}}.Missing())
}

func TestDraft_EditingID(t *testing.T) {
	_, ok := Draft{}.EditingID()
	require.False(t, ok)
	_, ok = Draft{Mode: Creating{}}.EditingID()
	require.False(t, ok)

	id, ok := Draft{Mode: Editing{ID: 5}}.EditingID()
	require.True(t, ok)
	require.Equal(t, int64(5), id)
}

func TestSelection_Phase(t *testing.T) {
	ev := &Event{ID: 1}
	require.Equal(t, PhaseIdle, Selection{}.Phase())
	require.Equal(t, PhaseIdle, Selection{PreviewOpen: true}.Phase())
	require.Equal(t, PhaseSelected, Selection{Event: ev}.Phase())
	require.Equal(t, PhasePreviewing, Selection{Event: ev, PreviewOpen: true}.Phase())
	require.Equal(t, "previewing", PhasePreviewing.String())
}
