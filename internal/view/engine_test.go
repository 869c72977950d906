package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSimpleTree(t *testing.T) {
	e := NewEngine()

	spec := map[string]interface{}{
		"type": "app",
		"props": map[string]interface{}{
			"title": "Demo",
		},
		"children": []interface{}{
			map[string]interface{}{
				"type": "text",
				"id":   "greeting",
				"props": map[string]interface{}{
					"content": "Hello",
				},
			},
		},
	}

	node := e.Expand(spec)

	require.NotNil(t, node)
	assert.Equal(t, "app", node.Type)
	assert.Equal(t, "Demo", node.Props["title"])
	require.Len(t, node.Children, 1)
	assert.Equal(t, "greeting", node.Children[0].ID)
	assert.Equal(t, "Hello", node.Children[0].Props["content"])
}

func TestExpandUnknownComponentPanics(t *testing.T) {
	e := NewEngine()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		rp, ok := r.(*RenderPanic)
		require.True(t, ok)
		assert.Contains(t, rp.Err.Error(), "unknown component type")
		assert.Equal(t, []string{"hologram"}, rp.Chain)
	}()

	e.Expand(map[string]interface{}{"type": "hologram"})
}

func TestPanicChainNamesEveryAncestor(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Register("bomb", func(props map[string]interface{}, children []*Node) *Node {
		panic(errors.New("fuse lit"))
	}))

	spec := map[string]interface{}{
		"type": "app",
		"children": []interface{}{
			map[string]interface{}{
				"type": "card",
				"id":   "news",
				"children": []interface{}{
					map[string]interface{}{"type": "bomb"},
				},
			},
		},
	}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		rp, ok := r.(*RenderPanic)
		require.True(t, ok)
		assert.Equal(t, "fuse lit", rp.Err.Error())
		assert.Equal(t, []string{"bomb", "card#news", "app"}, rp.Chain)
		assert.NotEmpty(t, rp.Stack)

		trace := rp.Trace()
		assert.Contains(t, trace, "in bomb")
		assert.Contains(t, trace, "in card#news")
		assert.Contains(t, trace, "in app")
	}()

	e.Expand(spec)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e := NewEngine()
	noop := func(props map[string]interface{}, children []*Node) *Node {
		return NewNode("widget")
	}

	require.NoError(t, e.Register("widget", noop))
	err := e.Register("widget", noop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterValidation(t *testing.T) {
	e := NewEngine()
	assert.Error(t, e.Register("", func(p map[string]interface{}, c []*Node) *Node { return nil }))
	assert.Error(t, e.Register("x", nil))
}

func TestRendererReRendersSpec(t *testing.T) {
	e := NewEngine()
	r := e.Renderer(map[string]interface{}{
		"type": "text",
		"props": map[string]interface{}{
			"content": "stable",
		},
	})

	first := r.Render()
	second := r.Render()
	assert.Equal(t, first.Props["content"], second.Props["content"])
}

func TestNodeFind(t *testing.T) {
	tree := NewNode("app").
		WithChild(NewNode("container").
			WithChild(NewNode("text").WithID("deep")))

	assert.NotNil(t, tree.Find("deep"))
	assert.Nil(t, tree.Find("missing"))
	var nilNode *Node
	assert.Nil(t, nilNode.Find("anything"))
}

func TestOnEventBinding(t *testing.T) {
	e := NewEngine()
	node := e.Expand(map[string]interface{}{
		"type": "button",
		"id":   "save",
		"on_event": map[string]interface{}{
			"click": "form.save",
		},
	})

	assert.Equal(t, "form.save", node.OnEvent["click"])
}
