package boundary

import (
	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/theme"
	"github.com/renderguard/renderguard/internal/view"
)

const (
	apologyTitle   = "Oops! Something went wrong"
	apologyBody    = "An unexpected error occurred while displaying this content. You can try again, or reload the page to start over."
	supportContact = "If the problem persists, contact support@renderguard.dev"
)

// RecoveryView builds the default recovery surface for a fault. It is a
// pure function: same fault, mode, and tokens always produce the same tree.
//
// The diagnostics section exists only in development mode. In production it
// is absent from the tree entirely, not hidden with a prop, so no fault
// detail can leak to end users.
func RecoveryView(f Fault, mode config.Mode, tokens theme.Tokens) *view.Node {
	root := view.NewNode("container").
		WithID("boundary-recovery").
		WithProp("layout", "vertical").
		WithProp("background", tokens.Color("danger_surface", "#311b2b")).
		WithProp("border", tokens.Color("danger", "#f38ba8")).
		WithProp("padding", tokens.Space("lg", "24px")).
		WithProp("gap", tokens.Space("md", "16px"))

	root.WithChild(view.NewNode("text").
		WithID("boundary-icon").
		WithProp("content", "⚠️").
		WithProp("variant", "icon"))

	root.WithChild(view.NewNode("text").
		WithID("boundary-title").
		WithProp("content", apologyTitle).
		WithProp("variant", "heading").
		WithProp("color", tokens.Color("text", "#cdd6f4")))

	root.WithChild(view.NewNode("text").
		WithID("boundary-body").
		WithProp("content", apologyBody).
		WithProp("color", tokens.Color("text_muted", "#9399b2")))

	actions := view.NewNode("container").
		WithID("boundary-actions").
		WithProp("layout", "horizontal").
		WithProp("gap", tokens.Space("sm", "8px"))
	actions.WithChild(view.NewNode("button").
		WithID("boundary-try-again").
		WithProp("label", "Try Again").
		WithProp("variant", "primary").
		WithProp("color", tokens.Color("accent", "#89b4fa")).
		WithEvent("click", "boundary.reset"))
	actions.WithChild(view.NewNode("button").
		WithID("boundary-reload").
		WithProp("label", "Reload Page").
		WithProp("variant", "secondary").
		WithEvent("click", "boundary.reload"))
	root.WithChild(actions)

	if mode.Development() {
		root.WithChild(diagnostics(f, tokens))
	}

	root.WithChild(view.NewNode("text").
		WithID("boundary-support").
		WithProp("content", supportContact).
		WithProp("variant", "caption").
		WithProp("color", tokens.Color("text_muted", "#9399b2")))

	return root
}

// diagnostics renders the collapsible fault detail section shown to
// developers: message, stack when present, component trace when present.
func diagnostics(f Fault, tokens theme.Tokens) *view.Node {
	section := view.NewNode("container").
		WithID("boundary-diagnostics").
		WithProp("layout", "vertical").
		WithProp("collapsible", true).
		WithProp("collapsed", true).
		WithProp("label", "Error details").
		WithProp("font", tokens.Fonts["mono"])

	section.WithChild(view.NewNode("text").
		WithID("boundary-diag-message").
		WithProp("content", f.Message).
		WithProp("color", tokens.Color("danger", "#f38ba8")))

	if f.Stack != "" {
		section.WithChild(view.NewNode("text").
			WithID("boundary-diag-stack").
			WithProp("content", f.Stack).
			WithProp("variant", "code"))
	}

	if f.ContextTrace != "" {
		section.WithChild(view.NewNode("text").
			WithID("boundary-diag-trace").
			WithProp("content", f.ContextTrace).
			WithProp("variant", "code"))
	}

	return section
}
