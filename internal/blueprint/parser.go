package blueprint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Blueprint represents the root structure of a .bp file
type Blueprint struct {
	App       AppMetadata            `yaml:"app"`
	UI        map[string]interface{} `yaml:"ui"`
	Templates map[string]interface{} `yaml:"templates,omitempty"`
}

// AppMetadata contains app identification and metadata
type AppMetadata struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Version     string   `yaml:"version"`
	Author      string   `yaml:"author"`
	Tags        []string `yaml:"tags,omitempty"`
}

// App is a parsed blueprint ready to spawn: metadata plus the expanded UI
// spec the view engine consumes.
type App struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Icon        string                 `json:"icon,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Author      string                 `json:"author,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	UISpec      map[string]interface{} `json:"ui_spec"`
}

// Parser handles Blueprint to App conversion
type Parser struct {
	templates map[string]interface{}

	// expanding holds the template names currently on the expansion stack
	// so a template that references itself, directly or through another
	// template, fails the parse instead of recursing forever.
	expanding map[string]bool
	expandErr error
}

// NewParser creates a new Blueprint parser
func NewParser() *Parser {
	return &Parser{
		templates: make(map[string]interface{}),
		expanding: make(map[string]bool),
	}
}

// Parse converts Blueprint YAML content to an App
func (p *Parser) Parse(content []byte) (*App, error) {
	var bp Blueprint
	if err := yaml.Unmarshal(content, &bp); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if bp.App.ID == "" {
		return nil, fmt.Errorf("app.id is required")
	}
	if bp.App.Name == "" {
		return nil, fmt.Errorf("app.name is required")
	}
	if bp.UI == nil {
		return nil, fmt.Errorf("ui is required")
	}

	if bp.Templates != nil {
		p.templates = bp.Templates
	}

	uiSpec := p.expandUISpec(bp.UI)
	if p.expandErr != nil {
		return nil, p.expandErr
	}

	return &App{
		ID:          bp.App.ID,
		Name:        bp.App.Name,
		Description: bp.App.Description,
		Icon:        bp.App.Icon,
		Version:     bp.App.Version,
		Author:      bp.App.Author,
		Tags:        bp.App.Tags,
		UISpec:      uiSpec,
	}, nil
}

// ParseFile reads and parses a blueprint file
func (p *Parser) ParseFile(path string) (*App, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint: %w", err)
	}
	app, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return app, nil
}

// LoadDir parses every .bp and .yaml blueprint in a directory. Files that
// fail to parse are skipped and reported in the returned error slice so one
// bad blueprint cannot block the rest.
func LoadDir(dir string) ([]*App, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read blueprint dir: %w", err)}
	}

	var apps []*App
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".bp" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		app, err := NewParser().ParseFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		apps = append(apps, app)
	}
	return apps, errs
}

// expandUISpec converts Blueprint UI to the engine's spec format
func (p *Parser) expandUISpec(ui map[string]interface{}) map[string]interface{} {
	title, _ := ui["title"].(string)
	layout, _ := ui["layout"].(string)
	if layout == "" {
		layout = "vertical"
	}

	components, _ := ui["components"].([]interface{})

	return map[string]interface{}{
		"type": "app",
		"props": map[string]interface{}{
			"title":  title,
			"layout": layout,
		},
		"children": p.expandComponents(components),
	}
}

// expandComponents recursively expands Blueprint components
func (p *Parser) expandComponents(components []interface{}) []interface{} {
	result := make([]interface{}, 0, len(components))

	for _, comp := range components {
		expanded := p.expandComponent(comp)
		if expanded != nil {
			result = append(result, expanded)
		}
	}

	return result
}

// expandComponent expands a single component with all shortcuts
func (p *Parser) expandComponent(comp interface{}) map[string]interface{} {
	switch v := comp.(type) {
	case string:
		// Simple string: "Hello" -> text component
		return map[string]interface{}{
			"type": "text",
			"props": map[string]interface{}{
				"content": v,
			},
		}

	case map[string]interface{}:
		// Component object: the first key carries "type#id"
		for key, props := range v {
			propsMap, ok := props.(map[string]interface{})
			if !ok {
				continue
			}

			parts := strings.Split(key, "#")
			compType := parts[0]
			var compID string
			if len(parts) > 1 {
				compID = parts[1]
			}

			// Layout shortcuts
			switch compType {
			case "row":
				compType = "container"
				propsMap["layout"] = "horizontal"
			case "col":
				compType = "container"
				propsMap["layout"] = "vertical"
			}

			// Template reference
			if compType == "use" {
				if name, ok := propsMap["template"].(string); ok {
					if p.expanding[name] {
						p.expandErr = fmt.Errorf("template cycle detected at %q", name)
						return nil
					}
					if tmpl, ok := p.templates[name].(map[string]interface{}); ok {
						p.expanding[name] = true
						expanded := p.expandComponent(tmpl)
						delete(p.expanding, name)
						return expanded
					}
				}
				return nil
			}

			return p.buildSpec(compType, compID, propsMap)
		}
		return nil

	default:
		return nil
	}
}

// buildSpec assembles the engine spec for one component, splitting nested
// children and event bindings out of the props map.
func (p *Parser) buildSpec(compType, compID string, propsMap map[string]interface{}) map[string]interface{} {
	spec := map[string]interface{}{
		"type": compType,
	}
	if compID != "" {
		spec["id"] = compID
	}

	props := make(map[string]interface{}, len(propsMap))
	for key, value := range propsMap {
		switch key {
		case "children":
			if rawChildren, ok := value.([]interface{}); ok {
				spec["children"] = p.expandComponents(rawChildren)
			}
		case "on":
			if events, ok := value.(map[string]interface{}); ok {
				spec["on_event"] = events
			}
		default:
			props[key] = value
		}
	}
	if len(props) > 0 {
		spec["props"] = props
	}

	return spec
}
