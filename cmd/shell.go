package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	profiletoml "github.com/bnema/trajectory-cli/internal/adapters/profile/toml"
	"github.com/bnema/trajectory-cli/internal/adapters/render/results"
	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/spf13/cobra"
)

const shellPrompt = "trj> "

const shellHelp = `Commands:
  new                    start a session with default traits and make it active
  list                   list sessions
  switch <id>            make session <id> active
  delete [id]            delete session <id> (default: the active one)
  set name=value ...     change traits of the active session
  show [id]              show traits and results of a session
  submit                 request a prediction for the active session
  wait                   block until every submitted prediction has finished
  load <file>            apply a trait profile to the active session
  save <file>            write the active session's traits as a profile
  traits                 list trait names and bounds
  help                   show this help
  quit                   leave the shell`

func newShellCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Work with several assessment sessions interactively",
		Long:  "Start an interactive shell holding in-memory sessions. Predictions run in the background, so you can keep editing or switch sessions while one is pending. Sessions are lost when the shell exits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// lockedWriter serialises output from the prompt loop and completion
// goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *lockedWriter) printf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintf(w.w, format, args...)
}

type shell struct {
	app         *app
	store       *application.SessionStore
	coordinator *application.RequestCoordinator
	out         *lockedWriter
	progress    io.Writer
	inflight    sync.WaitGroup
}

func runShell(parent context.Context, app *app, in io.Reader, out, progress io.Writer) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	store := app.newSessionStore()
	sh := &shell{
		app:         app,
		store:       store,
		coordinator: app.newCoordinator(store),
		out:         &lockedWriter{w: out},
		progress:    progress,
	}

	lines := readLines(ctx, in)
	sh.out.printf("Career trajectory shell. Type `help` for commands.\n")

	for {
		sh.out.printf("%s", shellPrompt)

		select {
		case <-ctx.Done():
			cancel()
			sh.inflight.Wait()
			return nil
		case line, ok := <-lines:
			if !ok {
				// End of input finishes outstanding predictions instead of
				// abandoning them.
				sh.out.printf("\n")
				sh.inflight.Wait()
				cancel()
				return nil
			}

			quit, err := sh.exec(ctx, line)
			if err != nil {
				sh.out.printf("error: %v\n", err)
			}
			if quit {
				cancel()
				sh.inflight.Wait()
				return nil
			}
		}
	}
}

func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}

func (sh *shell) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "new":
		return false, sh.newSession()
	case "list", "ls":
		return false, sh.list()
	case "switch", "use":
		return false, sh.switchTo(args)
	case "delete", "rm":
		return false, sh.delete(args)
	case "set":
		return false, sh.set(args)
	case "show":
		return false, sh.show(args)
	case "submit":
		return false, sh.submit(ctx)
	case "wait":
		return false, sh.wait(ctx)
	case "load":
		return false, sh.load(args)
	case "save":
		return false, sh.save(args)
	case "traits":
		return false, sh.traits()
	case "help", "?":
		sh.out.printf("%s\n", shellHelp)
		return false, nil
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try `help`)", fields[0])
	}
}

func (sh *shell) newSession() error {
	session := sh.store.CreateSession()
	sh.out.printf("created #%d %s (active)\n", session.ID, session.Name)
	return nil
}

func (sh *shell) list() error {
	sessions := sh.store.Sessions()
	rows := make([]results.SessionRow, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, results.SessionRow{
			Session: session,
			Pending: sh.coordinator.State(session.ID) == application.RequestStatePending,
		})
	}

	rendered, err := sh.app.renderSessionList(rows)
	if err != nil {
		return fmt.Errorf("render sessions: %w", err)
	}
	sh.out.printf("%s\n", rendered)
	return nil
}

func (sh *shell) switchTo(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: switch <id>")
	}

	id, err := parseSessionID(args[0])
	if err != nil {
		return err
	}
	if err := sh.store.SwitchActive(id); err != nil {
		return err
	}

	return sh.printActive()
}

func (sh *shell) delete(args []string) error {
	id, err := sh.targetID(args)
	if err != nil {
		return err
	}
	if err := sh.store.DeleteSession(id); err != nil {
		return err
	}

	sh.out.printf("deleted #%d\n", id)
	if sh.store.Len() == 0 {
		sh.out.printf("no sessions left; use `new` to start one\n")
		return nil
	}
	return sh.printActive()
}

func (sh *shell) set(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: set name=value ...")
	}

	update, err := parseAssignments(args)
	if err != nil {
		return err
	}

	traits, err := sh.store.UpdateActiveTraitVector(update)
	if err != nil {
		return err
	}

	for _, name := range update.Names() {
		value, err := traits.Get(name)
		if err != nil {
			return err
		}
		sh.out.printf("%s = %d\n", name, value)
	}
	return nil
}

func (sh *shell) show(args []string) error {
	id, err := sh.targetID(args)
	if err != nil {
		return err
	}

	session, err := sh.store.Get(id)
	if err != nil {
		return err
	}

	rendered, err := sh.app.renderSession(results.SessionView{
		Session:    session,
		Projection: application.Project(session.Results, application.DefaultTopN),
		Pending:    sh.coordinator.State(id) == application.RequestStatePending,
		Now:        sh.app.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("render session: %w", err)
	}
	sh.out.printf("%s\n", rendered)
	return nil
}

func (sh *shell) submit(ctx context.Context) error {
	id, done, err := sh.coordinator.SubmitActive(ctx)
	if err != nil {
		return err
	}

	sh.out.printf("submitted #%d\n", id)
	sh.inflight.Add(1)
	go sh.announce(ctx, id, done)
	return nil
}

func (sh *shell) announce(ctx context.Context, id domain.SessionID, done <-chan application.Completion) {
	defer sh.inflight.Done()

	completion := <-done
	switch {
	case completion.Discarded:
		// The session is gone; there is nothing left to report on.
		return
	case completion.Err != nil:
		if ctx.Err() != nil && errors.Is(completion.Err, context.Canceled) {
			return
		}
		sh.out.printf("#%d: %v\n", id, completion.Err)
	default:
		if len(completion.Result.Predictions) == 0 {
			sh.out.printf("#%d prediction ready: no careers returned\n", id)
			return
		}
		top := completion.Result.Predictions[0]
		sh.out.printf("#%d prediction ready: %s (%.1f%%)\n", id, top.Career, top.Confidence)
	}
}

func (sh *shell) wait(ctx context.Context) error {
	pending := sh.coordinator.PendingCount()
	if pending == 0 {
		sh.out.printf("nothing pending\n")
		sh.inflight.Wait()
		return nil
	}

	label := fmt.Sprintf("Waiting for %d predictions...", pending)
	if pending == 1 {
		label = "Waiting for 1 prediction..."
	}

	return runWaitSpinner(ctx, sh.progress, label, sh.app.clock.Now, func(ctx context.Context) error {
		finished := make(chan struct{})
		go func() {
			sh.inflight.Wait()
			close(finished)
		}()

		select {
		case <-finished:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (sh *shell) load(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load <file>")
	}

	profile, err := profiletoml.Load(args[0])
	if err != nil {
		return err
	}
	if _, err := sh.store.UpdateActiveTraitVector(profile.Traits); err != nil {
		return err
	}

	active, err := sh.store.Active()
	if err != nil {
		return err
	}
	if profile.Name != "" {
		if err := sh.store.RenameSession(active.ID, profile.Name); err != nil {
			return err
		}
	}

	sh.out.printf("loaded %d traits into #%d\n", len(profile.Traits), active.ID)
	return nil
}

func (sh *shell) save(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: save <file>")
	}

	active, err := sh.store.Active()
	if err != nil {
		return err
	}
	if err := profiletoml.Save(args[0], active.Name, active.Traits); err != nil {
		return err
	}

	sh.out.printf("saved #%d to %s\n", active.ID, args[0])
	return nil
}

func (sh *shell) traits() error {
	rendered, err := results.RenderCatalogue(domain.TraitSpecs())
	if err != nil {
		return fmt.Errorf("render traits: %w", err)
	}
	sh.out.printf("%s\n", rendered)
	return nil
}

func (sh *shell) printActive() error {
	active, err := sh.store.Active()
	if err != nil {
		return err
	}
	sh.out.printf("active: #%d %s\n", active.ID, active.Name)
	return nil
}

// targetID resolves an optional id argument, falling back to the active
// session.
func (sh *shell) targetID(args []string) (domain.SessionID, error) {
	switch len(args) {
	case 0:
		id, ok := sh.store.ActiveID()
		if !ok {
			return 0, domain.ErrNoActiveSession
		}
		return id, nil
	case 1:
		return parseSessionID(args[0])
	default:
		return 0, errors.New("expected at most one session id")
	}
}

func parseSessionID(raw string) (domain.SessionID, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid session id %q", raw)
	}
	return domain.SessionID(id), nil
}
