package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/ukaji3/emargement-go/internal/output"
	"github.com/ukaji3/emargement-go/pkg/emargement/preview"
	"github.com/ukaji3/emargement-go/pkg/emargement/render"
	"github.com/ukaji3/emargement-go/pkg/emargement/upload"
)

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session [input.xlsx]",
		Short: "Interactive drop, preview and export session",
		Long: `session reads commands from standard input: drop a file, tick attendees
in the preview, export the attendance sheet. Notifications close by themselves
after the configured timeout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSession,
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	out := output.NewFormatter(cmd.OutOrStdout())
	renderer := render.NewRenderer()
	ctrl := upload.NewController(upload.Config{
		Read: upload.FileReader(extractOptions()),
		Export: func(groupName string, attendees []string) (string, error) {
			return renderer.Save(cfg.OutputDir, groupName, attendees)
		},
		NotificationTimeout: cfg.NotificationTimeout,
		Logger:              logger.With("session", uuid.NewString()),
	})

	view := &sessionView{out: out}
	ctrl.OnChange(view.update)

	loopErr := make(chan error, 1)
	go func() { loopErr <- ctrl.Run(ctx) }()

	out.SessionHelp()
	if len(args) == 1 {
		if err := ctrl.Dispatch(upload.Dropped{Files: []upload.Source{upload.FileSource(args[0])}}); err != nil {
			return err
		}
	}

	err := readCommands(ctx, cmd.InOrStdin(), ctrl, view)
	cancel()
	if runErr := <-loopErr; runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return err
}

// readCommands feeds stdin lines to the controller until quit or EOF.
func readCommands(ctx context.Context, in io.Reader, ctrl *upload.Controller, view *sessionView) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			ev, quit := parseCommand(line, view)
			if quit {
				return nil
			}
			if ev == nil {
				continue
			}
			if err := ctrl.Dispatch(ev); err != nil {
				return err
			}
		}
	}
}

// parseCommand turns one input line into an event. Commands that only print
// are handled here and return a nil event.
func parseCommand(line string, view *sessionView) (upload.Event, bool) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "":
		return nil, false
	case "quit", "exit", "q":
		return nil, true
	case "help", "?":
		view.out.SessionHelp()
		return nil, false
	case "show":
		view.show()
		return nil, false
	case "drop":
		paths, err := dropPaths(rest)
		if err != nil {
			view.out.Error("Chemin invalide : " + err.Error())
			return nil, false
		}
		var files []upload.Source
		for _, path := range paths {
			files = append(files, upload.FileSource(path))
		}
		return upload.Dropped{Files: files}, false
	case "toggle":
		return upload.Toggled{Name: view.resolveName(rest)}, false
	case "export":
		return upload.ExportRequested{}, false
	case "close":
		return upload.Dismissed{Notification: view.snapshot().Notification.ID, Reason: upload.ReasonClose}, false
	case "clickaway":
		return upload.Dismissed{Notification: view.snapshot().Notification.ID, Reason: upload.ReasonClickAway}, false
	default:
		view.out.Error("Commande inconnue : " + verb)
		return nil, false
	}
}

// dropPaths splits the arguments of drop the way a shell would, so quoted or
// escaped paths keep their spaces. An unquoted argument that names an existing
// file is taken whole.
func dropPaths(rest string) ([]string, error) {
	paths, err := shlex.Split(rest)
	if err != nil {
		return nil, err
	}
	if len(paths) > 1 {
		if info, err := os.Stat(rest); err == nil && !info.IsDir() {
			return []string{rest}, nil
		}
	}
	return paths, nil
}

// sessionView prints what changed between two states. update runs on the
// event loop; the input goroutine reads the last state through snapshot.
type sessionView struct {
	out *output.Formatter

	mu   sync.Mutex
	last upload.State
}

func (v *sessionView) update(s upload.State) {
	v.mu.Lock()
	prev := v.last
	v.last = s
	v.mu.Unlock()

	if s.Phase == upload.PhaseLoading && s.Request != prev.Request {
		v.out.Loading("fichier")
	}
	if s.Notification.Open && s.Notification.ID != prev.Notification.ID {
		v.out.Notification(s.Notification)
	}
	if s.Preview != nil && s.Preview != prev.Preview {
		v.printPreview(s.Preview)
	}
	if s.LastExport != "" && s.LastExport != prev.LastExport {
		v.out.Exported(s.LastExport)
	}
}

func (v *sessionView) snapshot() upload.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last
}

func (v *sessionView) show() {
	s := v.snapshot()
	if s.Preview == nil {
		v.out.Info("Aucun fichier chargé.")
		return
	}
	v.printPreview(s.Preview)
}

func (v *sessionView) printPreview(p *preview.Model) {
	v.out.Preview(p.Roster().GroupName(), p.Entries())
}

// resolveName accepts an attendee name or its 1-based row number in the preview.
func (v *sessionView) resolveName(arg string) string {
	s := v.snapshot()
	if s.Preview == nil {
		return arg
	}
	entries := s.Preview.Entries()
	for _, e := range entries {
		if e.Name == arg {
			return arg
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(entries) {
		return entries[n-1].Name
	}
	return arg
}
