package view

import "encoding/json"

// Node represents one rendered component in a view tree. The shape matches
// what the frontend consumes: type, optional id, props, children, and
// event bindings.
type Node struct {
	Type     string                 `json:"type"`
	ID       string                 `json:"id,omitempty"`
	Props    map[string]interface{} `json:"props,omitempty"`
	Children []*Node                `json:"children,omitempty"`
	OnEvent  map[string]string      `json:"on_event,omitempty"`
}

// NewNode creates a node of the given component type.
func NewNode(nodeType string) *Node {
	return &Node{Type: nodeType}
}

// WithID sets the node ID.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithProp sets a single prop, allocating the map on first use.
func (n *Node) WithProp(key string, value interface{}) *Node {
	if n.Props == nil {
		n.Props = make(map[string]interface{})
	}
	n.Props[key] = value
	return n
}

// WithChild appends a child node.
func (n *Node) WithChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithEvent binds an event name to an action identifier.
func (n *Node) WithEvent(event, action string) *Node {
	if n.OnEvent == nil {
		n.OnEvent = make(map[string]string)
	}
	n.OnEvent[event] = action
	return n
}

// Find returns the first node in the tree with the given ID, or nil.
func (n *Node) Find(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// JSON serializes the node tree.
func (n *Node) JSON() ([]byte, error) {
	return json.Marshal(n)
}

// Renderer produces a view tree. A renderer may panic; callers that need
// fault isolation wrap the call in a boundary.
type Renderer interface {
	Render() *Node
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func() *Node

// Render calls f.
func (f RendererFunc) Render() *Node {
	return f()
}
