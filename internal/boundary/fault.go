package boundary

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/renderguard/renderguard/internal/view"
)

// Fault is everything the boundary retains about one failed render: the
// error message, an optional stack, and an optional human-readable trace of
// the component chain that was rendering when the fault occurred.
//
// A Fault lives exactly one episode: created by Capture, discarded by Reset
// or by tearing the boundary down.
type Fault struct {
	EpisodeID    string    `json:"episode_id"`
	Message      string    `json:"message"`
	Stack        string    `json:"stack,omitempty"`
	ContextTrace string    `json:"context_trace,omitempty"`
	At           time.Time `json:"at"`
}

// newFault builds a fault record from a captured error. When the error
// unwraps to a view.RenderPanic the original panic stack is preserved.
func newFault(err error, contextTrace string) Fault {
	f := Fault{
		EpisodeID:    uuid.New().String(),
		At:           time.Now(),
		ContextTrace: contextTrace,
	}

	if err == nil {
		f.Message = "unknown error"
		return f
	}

	var rp *view.RenderPanic
	if errors.As(err, &rp) {
		f.Message = rp.Err.Error()
		f.Stack = rp.Stack
		if f.ContextTrace == "" {
			f.ContextTrace = rp.Trace()
		}
		return f
	}

	f.Message = err.Error()
	return f
}
