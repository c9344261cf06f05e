package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/service"
)

const (
	noTitle       = "No Title"
	noDate        = "No Date"
	noDescription = "No Description"
	noPhoto       = "No Photo"
)

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// renderList prints one row per event with placeholders for empty fields.
func renderList(w io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDATE\tDESCRIPTION")
	for _, e := range events {
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n",
			e.ID,
			orDefault(e.Title, noTitle),
			orDefault(e.Date, noDate),
			orDefault(e.Description, noDescription),
		)
	}
	_ = tw.Flush()
}

// renderDraft prints the form together with the label of its submit action.
func renderDraft(w io.Writer, d model.Draft) {
	fmt.Fprintf(w, "Draft [%s]", service.SubmitLabel(d))
	if id, ok := d.EditingID(); ok {
		fmt.Fprintf(w, " editing #%d", id)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  title:       %s\n", d.Title)
	fmt.Fprintf(w, "  description: %s\n", d.Description)
	fmt.Fprintf(w, "  date:        %s\n", d.Date)
	fmt.Fprintf(w, "  photo:       %s\n", d.Photo)
}

// renderSelection prints the detail panel or the preview overlay.
func renderSelection(w io.Writer, s model.Selection) {
	switch s.Phase() {
	case model.PhaseIdle:
		fmt.Fprintln(w, "Nothing selected.")
	case model.PhaseSelected:
		e := s.Event
		fmt.Fprintf(w, "Selected #%d\n", e.ID)
		fmt.Fprintf(w, "  %s\n", orDefault(e.Title, noTitle))
		fmt.Fprintf(w, "  %s\n", orDefault(e.Date, noDate))
		fmt.Fprintf(w, "  %s\n", orDefault(e.Description, noDescription))
		fmt.Fprintf(w, "  photo: %s\n", orDefault(e.Photo, noPhoto))
	case model.PhasePreviewing:
		ref := orDefault(s.Event.Photo, noPhoto)
		bar := strings.Repeat("=", len(ref)+4)
		fmt.Fprintf(w, "%s\n| %s |\n%s\n", bar, ref, bar)
		fmt.Fprintln(w, "(close to return)")
	}
}

// renderScreen prints the whole screen.
func renderScreen(w io.Writer, s *model.ScreenState) {
	if s.Selection.Phase() == model.PhasePreviewing {
		renderSelection(w, s.Selection)
		return
	}
	renderList(w, s.Events)
	fmt.Fprintln(w)
	renderDraft(w, s.Draft)
	fmt.Fprintln(w)
	renderSelection(w, s.Selection)
}
