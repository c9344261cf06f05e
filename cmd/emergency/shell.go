package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/wazxo/EmercengyAPP/internal/errs"
	"github.com/wazxo/EmercengyAPP/internal/model"
	"github.com/wazxo/EmercengyAPP/internal/photo"
	"github.com/wazxo/EmercengyAPP/internal/service"
)

var errQuit = errors.New("quit")

const help = `Commands:
  list                                   show all events
  show                                   show list, draft and selection
  set -title T -desc D -date YYYY-MM-DD  fill the draft (any subset)
  photo [path]                           attach a photo (prompts when no path)
  submit                                 add or update the event in the draft
  edit <id>                              load an event into the draft
  cancel                                 reset the draft
  rm <id>                                delete an event
  select <id>                            show event details
  preview                                open the photo of the selected event
  close                                  close the preview
  deselect                               clear the selection
  reload                                 re-read events from storage
  help                                   this text
  quit                                   exit
`

// shell is a line-oriented front end for the coordinator.
type shell struct {
	coord  *service.Coordinator
	in     *bufio.Scanner
	out    io.Writer
	mode   photo.Mode
	handle commandFunc
}

func newShell(coord *service.Coordinator, in io.Reader, out io.Writer, mode photo.Mode, log *zap.Logger) *shell {
	sh := &shell{coord: coord, in: bufio.NewScanner(in), out: out, mode: mode}
	sh.handle = chain(sh.exec, recovered(log), logged(log))
	return sh
}

func (sh *shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}

// run loads the events and processes commands until quit or end of input.
func (sh *shell) run(ctx context.Context) error {
	if err := sh.coord.Load(ctx); err != nil {
		sh.report(err)
	}
	renderList(sh.out, sh.coord.Events())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(sh.out, "> ")
		line, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(sh.out)
			return sh.in.Err()
		}
		args, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(sh.out, "cannot parse line: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := sh.handle(ctx, args[0], args[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			sh.report(err)
		}
	}
}

func (sh *shell) report(err error) {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		fmt.Fprintf(sh.out, "cannot save: %s missing\n", strings.Join(ve.Missing, ", "))
	case errors.Is(err, errs.ErrStorageRead):
		fmt.Fprintf(sh.out, "could not load events (type reload to retry): %v\n", err)
	case errors.Is(err, errs.ErrStorageWrite):
		fmt.Fprintf(sh.out, "could not save changes: %v\n", err)
	default:
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		fmt.Fprint(sh.out, help)
	case "quit", "exit", "q":
		return errQuit
	case "list", "ls":
		renderList(sh.out, sh.coord.Events())
	case "show":
		sh.coord.View(func(s *model.ScreenState) { renderScreen(sh.out, s) })
	case "reload":
		if err := sh.coord.Load(ctx); err != nil {
			return err
		}
		renderList(sh.out, sh.coord.Events())
	case "set":
		return sh.set(args)
	case "photo":
		return sh.photo(ctx, args)
	case "submit", "save":
		return sh.submit(ctx)
	case "edit":
		ev, err := sh.lookup(cmd, args)
		if err != nil {
			return err
		}
		sh.coord.BeginEdit(ev)
		renderDraft(sh.out, sh.coord.Draft())
	case "cancel":
		sh.coord.CancelEdit()
		fmt.Fprintln(sh.out, "draft cleared")
	case "rm", "delete":
		ev, err := sh.lookup(cmd, args)
		if err != nil {
			return err
		}
		if err := sh.coord.Remove(ctx, ev.ID); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "deleted event #%d\n", ev.ID)
	case "select":
		ev, err := sh.lookup(cmd, args)
		if err != nil {
			return err
		}
		sh.coord.Select(ev)
		renderSelection(sh.out, sh.coord.Selection())
	case "preview", "open":
		if !sh.coord.OpenPreview() {
			fmt.Fprintln(sh.out, "select an event first")
			return nil
		}
		renderSelection(sh.out, sh.coord.Selection())
	case "close":
		sh.coord.ClosePreview()
		renderSelection(sh.out, sh.coord.Selection())
	case "deselect":
		sh.coord.Deselect()
		fmt.Fprintln(sh.out, "selection cleared")
	default:
		fmt.Fprintf(sh.out, "unknown command %q (try help)\n", cmd)
	}
	return nil
}

func (sh *shell) set(args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.SetOutput(sh.out)
	title := fs.String("title", "", "event title")
	desc := fs.String("desc", "", "description")
	date := fs.String("date", "", "date")
	if err := fs.Parse(args); err != nil {
		// FlagSet already printed the problem and usage.
		return nil
	}
	if fs.NFlag() == 0 {
		fs.Usage()
		return nil
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			sh.coord.SetTitle(*title)
		case "desc":
			sh.coord.SetDescription(*desc)
		case "date":
			sh.coord.SetDate(*date)
		}
	})
	renderDraft(sh.out, sh.coord.Draft())
	return nil
}

func (sh *shell) photo(ctx context.Context, args []string) error {
	picker := photo.PathPicker{Mode: sh.mode, Prompt: sh.promptPhoto}
	if len(args) > 0 {
		path := strings.Join(args, " ")
		picker.Prompt = func(context.Context) (string, error) { return path, nil }
	}

	ok, err := sh.coord.PickPhoto(ctx, picker)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(sh.out, "photo unchanged")
		return nil
	}
	fmt.Fprintf(sh.out, "photo: %s\n", sh.coord.Draft().Photo)
	return nil
}

// promptPhoto asks for a path on the next input line. End of input cancels.
func (sh *shell) promptPhoto(context.Context) (string, error) {
	fmt.Fprintf(sh.out, "photo path (%s, empty to cancel): ", sh.mode)
	line, ok := sh.readLine()
	if !ok {
		return "", sh.in.Err()
	}
	return line, nil
}

func (sh *shell) submit(ctx context.Context) error {
	_, editing := sh.coord.Draft().EditingID()
	ev, err := sh.coord.Submit(ctx)
	if err != nil {
		return err
	}
	if editing {
		fmt.Fprintf(sh.out, "updated event #%d\n", ev.ID)
	} else {
		fmt.Fprintf(sh.out, "added event #%d\n", ev.ID)
	}
	return nil
}

// lookup resolves the single id argument of cmd against the mirror.
func (sh *shell) lookup(cmd string, args []string) (model.Event, error) {
	if len(args) != 1 {
		return model.Event{}, fmt.Errorf("usage: %s <id>", cmd)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("bad id %q", args[0])
	}
	ev, ok := sh.coord.Find(id)
	if !ok {
		return model.Event{}, fmt.Errorf("no event #%d: %w", id, errs.ErrNotFound)
	}
	return ev, nil
}
