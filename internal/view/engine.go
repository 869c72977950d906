package view

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// RenderPanic carries a component failure out of the render tree. The engine
// annotates it with the component chain as it unwinds so a boundary can
// record where in the tree the fault occurred.
type RenderPanic struct {
	Err   error
	Stack string
	// Chain holds "type#id" entries, innermost component first.
	Chain []string
}

// Error returns the underlying failure message.
func (p *RenderPanic) Error() string {
	return p.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is/As.
func (p *RenderPanic) Unwrap() error {
	return p.Err
}

// Trace formats the component chain the way frontend devtools print it:
//
//	in data_feed
//	  in card#news
//	  in app
func (p *RenderPanic) Trace() string {
	if len(p.Chain) == 0 {
		return ""
	}
	var b strings.Builder
	for i, entry := range p.Chain {
		if i > 0 {
			b.WriteString("\n  ")
		}
		b.WriteString("in ")
		b.WriteString(entry)
	}
	return b.String()
}

// Component constructs a node from expanded props and already-rendered
// children. Constructors may panic; the engine converts panics into
// RenderPanic values with the component chain attached.
type Component func(props map[string]interface{}, children []*Node) *Node

// Engine expands declarative view specs into concrete node trees using a
// registry of component constructors.
type Engine struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewEngine creates an engine with the built-in component set registered.
func NewEngine() *Engine {
	e := &Engine{components: make(map[string]Component)}
	for name, c := range builtins() {
		e.components[name] = c
	}
	return e
}

// Register adds a component constructor. Registering a duplicate name is an
// error so providers cannot silently shadow each other.
func (e *Engine) Register(name string, c Component) error {
	if name == "" {
		return errors.New("component name is required")
	}
	if c == nil {
		return errors.New("component constructor is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.components[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}
	e.components[name] = c
	return nil
}

// Renderer binds a spec to the engine so it can be rendered repeatedly.
func (e *Engine) Renderer(spec map[string]interface{}) Renderer {
	return RendererFunc(func() *Node {
		return e.Expand(spec)
	})
}

// Expand walks a spec tree and invokes the registered constructor for each
// component. A panic anywhere in the tree unwinds as a *RenderPanic whose
// chain names every component between the failure and the root.
func (e *Engine) Expand(spec map[string]interface{}) *Node {
	nodeType, _ := spec["type"].(string)
	nodeID, _ := spec["id"].(string)

	defer func() {
		if r := recover(); r != nil {
			panic(annotate(r, chainEntry(nodeType, nodeID)))
		}
	}()

	e.mu.RLock()
	constructor, ok := e.components[nodeType]
	e.mu.RUnlock()
	if !ok {
		panic(fmt.Errorf("unknown component type %q", nodeType))
	}

	props, _ := spec["props"].(map[string]interface{})

	var children []*Node
	if rawChildren, ok := spec["children"].([]interface{}); ok {
		children = make([]*Node, 0, len(rawChildren))
		for _, raw := range rawChildren {
			childSpec, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			children = append(children, e.Expand(childSpec))
		}
	}

	node := constructor(props, children)
	if node == nil {
		panic(fmt.Errorf("component %q produced no output", nodeType))
	}
	if node.ID == "" {
		node.ID = nodeID
	}
	if events, ok := spec["on_event"].(map[string]interface{}); ok {
		for event, action := range events {
			if actionStr, ok := action.(string); ok {
				node.WithEvent(event, actionStr)
			}
		}
	}
	return node
}

// annotate converts an arbitrary panic value into a *RenderPanic, or extends
// the chain of one already in flight.
func annotate(r interface{}, entry string) *RenderPanic {
	if rp, ok := r.(*RenderPanic); ok {
		rp.Chain = append(rp.Chain, entry)
		return rp
	}
	return &RenderPanic{
		Err:   toError(r),
		Stack: string(debug.Stack()),
		Chain: []string{entry},
	}
}

func chainEntry(nodeType, nodeID string) string {
	if nodeType == "" {
		nodeType = "unknown"
	}
	if nodeID == "" {
		return nodeType
	}
	return nodeType + "#" + nodeID
}

func toError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// builtins returns the core component set: structural containers and leaf
// widgets that render their props through unchanged.
func builtins() map[string]Component {
	passthrough := func(nodeType string) Component {
		return func(props map[string]interface{}, children []*Node) *Node {
			node := NewNode(nodeType)
			for key, value := range props {
				node.WithProp(key, value)
			}
			node.Children = children
			return node
		}
	}

	return map[string]Component{
		"app":       passthrough("app"),
		"container": passthrough("container"),
		"card":      passthrough("card"),
		"text":      passthrough("text"),
		"button":    passthrough("button"),
		"input":     passthrough("input"),
		"image":     passthrough("image"),
		"divider":   passthrough("divider"),
		"list":      passthrough("list"),
	}
}
