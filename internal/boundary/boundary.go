package boundary

import (
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/infrastructure/logging"
	"github.com/renderguard/renderguard/internal/telemetry"
	"github.com/renderguard/renderguard/internal/theme"
	"github.com/renderguard/renderguard/internal/view"
)

// State represents the boundary state
type State int

const (
	StateHealthy State = iota
	StateFaulted
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Settings configures the boundary behavior. All fields are optional and
// fixed for the boundary's lifetime.
type Settings struct {
	// Fallback fully replaces the default recovery view when set. The
	// boundary applies no further policy to its output.
	Fallback func(Fault) *view.Node
	// OnFault is invoked exactly once per capture, synchronously. A panic
	// inside the hook is logged and swallowed, never re-raised.
	OnFault func(Fault)
	// Mode gates diagnostic disclosure and fault reporting. Defaults to
	// the process-wide mode from the environment.
	Mode config.Mode
	// Sink receives fault reports in production mode.
	Sink telemetry.Sink
	// Reload is the host reload primitive. It is one-way: control is not
	// expected to return to this boundary.
	Reload func()
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)
	// Tokens supply presentation values for the default recovery view.
	Tokens theme.Tokens
	// Logger receives hook failures and, in development mode, captured
	// fault diagnostics.
	Logger *logging.Logger
}

// Boundary isolates faults raised while rendering a protected subtree.
// A panic during a guarded render is absorbed, recorded, and replaced by a
// recovery surface; it never propagates past the boundary.
type Boundary struct {
	name     string
	settings Settings

	mu    sync.Mutex
	fault *Fault
}

// New creates a boundary with the given settings
func New(name string, settings Settings) *Boundary {
	if settings.Mode == "" {
		settings.Mode = config.ModeFromEnv()
	}
	if settings.Sink == nil {
		settings.Sink = telemetry.Nop{}
	}
	if settings.Tokens.Colors == nil {
		settings.Tokens = theme.Default()
	}
	if settings.Logger == nil {
		settings.Logger = logging.NewNop()
	}

	return &Boundary{
		name:     name,
		settings: settings,
	}
}

// Name returns the name of the boundary
func (b *Boundary) Name() string {
	return b.name
}

// State returns the current state of the boundary
func (b *Boundary) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault != nil {
		return StateFaulted
	}
	return StateHealthy
}

// Fault returns a copy of the current fault, if any.
func (b *Boundary) Fault() (Fault, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault == nil {
		return Fault{}, false
	}
	return *b.fault, true
}

// Capture records a fault and transitions the boundary to faulted. It is
// the inbound contract for the host runtime and must never panic: hook and
// sink failures are contained here, there is no boundary for the boundary.
func (b *Boundary) Capture(err error, contextTrace string) {
	defer func() {
		if r := recover(); r != nil {
			b.settings.Logger.Error("capture must not panic",
				zap.String("boundary", b.name),
				zap.Any("panic", r))
		}
	}()

	f := newFault(err, contextTrace)

	b.mu.Lock()
	prev := StateHealthy
	if b.fault != nil {
		prev = StateFaulted
	}
	b.fault = &f
	b.mu.Unlock()

	if prev != StateFaulted {
		b.notifyStateChange(prev, StateFaulted)
	}

	b.invokeOnFault(f)
	b.report(f)
}

// Reset clears the fault unconditionally and returns the boundary to
// healthy. If the underlying defect persists, the very next guarded render
// re-enters faulted through a fresh capture; that is expected.
func (b *Boundary) Reset() {
	b.mu.Lock()
	wasFaulted := b.fault != nil
	b.fault = nil
	b.mu.Unlock()

	if wasFaulted {
		b.notifyStateChange(StateFaulted, StateHealthy)
	}
}

// Reload delegates to the host reload primitive. No state transition
// follows: the host discards this boundary along with everything else.
func (b *Boundary) Reload() {
	if b.settings.Reload != nil {
		b.settings.Reload()
	}
}

// Render is the fault trap around the protected subtree. While healthy it
// is pass-through; a panic raised by the subtree is captured and the same
// call returns the recovery surface instead.
func (b *Boundary) Render(subtree view.Renderer) (out *view.Node) {
	if b.State() == StateFaulted {
		return b.Present()
	}

	defer func() {
		if r := recover(); r != nil {
			rp := normalizePanic(r)
			b.Capture(rp, rp.Trace())
			out = b.Present()
		}
	}()

	return subtree.Render()
}

// Present selects output for the current state. Healthy returns nil, which
// callers treat as "render the subtree". The selection is pure: it reads
// state and configuration, and may be evaluated any number of times.
func (b *Boundary) Present() *view.Node {
	f, ok := b.Fault()
	if !ok {
		return nil
	}
	if b.settings.Fallback != nil {
		return b.settings.Fallback(f)
	}
	return RecoveryView(f, b.settings.Mode, b.settings.Tokens)
}

// invokeOnFault runs the caller hook with panics contained.
func (b *Boundary) invokeOnFault(f Fault) {
	if b.settings.OnFault == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.settings.Logger.Warn("fault hook panicked",
				zap.String("boundary", b.name),
				zap.String("episode_id", f.EpisodeID),
				zap.Any("panic", r))
		}
	}()
	b.settings.OnFault(f)
}

// report routes the fault to the mode-appropriate sink: structured console
// output in development, the telemetry collector in production.
func (b *Boundary) report(f Fault) {
	if b.settings.Mode.Production() {
		defer func() {
			if r := recover(); r != nil {
				b.settings.Logger.Warn("telemetry sink panicked",
					zap.String("boundary", b.name),
					zap.Any("panic", r))
			}
		}()
		b.settings.Sink.Report(telemetry.Report{
			EpisodeID:    f.EpisodeID,
			App:          b.name,
			Message:      f.Message,
			Stack:        f.Stack,
			ContextTrace: f.ContextTrace,
			At:           f.At,
		})
		return
	}

	b.settings.Logger.Error("render fault captured",
		zap.String("boundary", b.name),
		zap.String("episode_id", f.EpisodeID),
		zap.String("message", f.Message),
		zap.String("context_trace", f.ContextTrace))
}

// notifyStateChange runs the transition callback with panics contained.
func (b *Boundary) notifyStateChange(from, to State) {
	if b.settings.OnStateChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.settings.Logger.Warn("state change callback panicked",
				zap.String("boundary", b.name),
				zap.Any("panic", r))
		}
	}()
	b.settings.OnStateChange(b.name, from, to)
}

// normalizePanic converts an arbitrary panic value into a RenderPanic so a
// stack is always available for diagnostics.
func normalizePanic(r interface{}) *view.RenderPanic {
	if rp, ok := r.(*view.RenderPanic); ok {
		return rp
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	return &view.RenderPanic{
		Err:   err,
		Stack: string(debug.Stack()),
	}
}
