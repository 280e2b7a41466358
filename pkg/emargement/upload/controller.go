package upload

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ukaji3/emargement-go/pkg/emargement"
	"github.com/ukaji3/emargement-go/pkg/emargement/models"
)

// ErrStopped is returned by Dispatch once the event loop has exited.
var ErrStopped = errors.New("upload controller stopped")

// ReadFunc reads a dropped file into a roster.
type ReadFunc func(ctx context.Context, src Source) (*models.Roster, error)

// ExportFunc writes the attendance sheet of a group and returns where it went.
type ExportFunc func(groupName string, attendees []string) (string, error)

// Config configures a Controller.
type Config struct {
	Read   ReadFunc
	Export ExportFunc
	// NotificationTimeout is the auto-dismiss delay. Zero means
	// DefaultNotificationTimeout; a negative value disables auto-dismiss.
	NotificationTimeout time.Duration
	Logger              *slog.Logger
}

// Controller runs the single event loop that owns the upload State. File reads
// run on their own goroutines and report back through the loop; everything
// else, exports included, runs on the loop.
type Controller struct {
	read      ReadFunc
	export    ExportFunc
	logger    *slog.Logger
	events    chan Event
	done      chan struct{}
	state     State
	observers []func(State)
}

// NewController creates a Controller in the idle state.
func NewController(cfg Config) *Controller {
	timeout := cfg.NotificationTimeout
	switch {
	case timeout == 0:
		timeout = DefaultNotificationTimeout
	case timeout < 0:
		timeout = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		read:   cfg.Read,
		export: cfg.Export,
		logger: logger,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		state:  NewState(timeout),
	}
}

// FileReader returns a ReadFunc that opens the source and extracts its roster.
func FileReader(opts emargement.Options) ReadFunc {
	return func(ctx context.Context, src Source) (*models.Roster, error) {
		rc, err := src.Open()
		if err != nil {
			return nil, emargement.NewExtractionError(src.Name(), emargement.ErrNoFileSelected, err)
		}
		defer rc.Close()
		return emargement.ExtractReader(rc, src.Name(), opts)
	}
}

// OnChange registers fn to receive the state after every event. It must be
// called before Run; fn runs on the event loop and must not block.
func (c *Controller) OnChange(fn func(State)) {
	c.observers = append(c.observers, fn)
}

// Dispatch queues an event for the loop.
func (c *Controller) Dispatch(ev Event) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrStopped
	}
}

// Run processes events until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	c.publish()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			c.apply(ctx, ev)
		}
	}
}

// apply reduces ev and runs the resulting effects. Effects that complete
// synchronously feed their result back in the same pass.
func (c *Controller) apply(ctx context.Context, ev Event) {
	queue := []Event{ev}
	for len(queue) > 0 {
		ev, queue = queue[0], queue[1:]
		c.logEvent(ev)

		next, effects := Reduce(c.state, ev)
		c.state = next
		for _, eff := range effects {
			if follow := c.execute(ctx, eff); follow != nil {
				queue = append(queue, follow)
			}
		}
		c.publish()
	}
}

func (c *Controller) execute(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case StartRead:
		c.logger.Debug("read started", "request", eff.Request, "file", eff.File.Name())
		go func() {
			roster, err := c.read(ctx, eff.File)
			_ = c.Dispatch(ReadCompleted{Request: eff.Request, Roster: roster, Err: err})
		}()
		return nil
	case StartExport:
		path, err := c.export(eff.GroupName, eff.Attendees)
		if err != nil {
			c.logger.Warn("export failed", "group", eff.GroupName, "error", err)
		} else {
			c.logger.Info("attendance sheet written", "group", eff.GroupName, "path", path)
		}
		return ExportCompleted{Path: path, Err: err}
	case ScheduleDismiss:
		time.AfterFunc(eff.After, func() {
			_ = c.Dispatch(Dismissed{Notification: eff.Notification, Reason: ReasonTimeout})
		})
		return nil
	default:
		return nil
	}
}

func (c *Controller) logEvent(ev Event) {
	switch ev := ev.(type) {
	case ReadCompleted:
		if ev.Request != c.state.Request {
			c.logger.Debug("discarding stale read", "request", ev.Request, "latest", c.state.Request)
			return
		}
		if ev.Err != nil {
			c.logger.Info("read failed", "request", ev.Request, "error", ev.Err)
			return
		}
		c.logger.Debug("read completed", "request", ev.Request)
	case Dismissed:
		c.logger.Debug("dismiss", "notification", ev.Notification, "reason", ev.Reason)
	}
}

func (c *Controller) publish() {
	for _, fn := range c.observers {
		fn(c.state)
	}
}
