package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"hotelops/internal/infrastructure/llm"
)

//go:embed prompt.yaml
var promptYAML []byte

// Catalogue is the system prompt plus the tool declarations sent with every
// completion request.
type Catalogue struct {
	System string
	Tools  []llm.Tool
}

type catalogueFile struct {
	System string     `yaml:"system"`
	Tools  []toolSpec `yaml:"tools"`
}

type toolSpec struct {
	Name        ToolName       `yaml:"name"`
	Description string         `yaml:"description"`
	Parameters  map[string]any `yaml:"parameters"`
}

// LoadCatalogue parses the embedded prompt file. Every ToolName must be
// declared exactly once.
func LoadCatalogue() (*Catalogue, error) {
	return parseCatalogue(promptYAML)
}

func parseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalogue: %w", err)
	}
	if file.System == "" {
		return nil, fmt.Errorf("prompt catalogue has no system prompt")
	}

	seen := make(map[ToolName]bool, len(file.Tools))
	tools := make([]llm.Tool, 0, len(file.Tools))
	for _, spec := range file.Tools {
		if !spec.Name.IsValid() {
			return nil, fmt.Errorf("prompt catalogue declares unknown tool %q", spec.Name)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("prompt catalogue declares tool %q twice", spec.Name)
		}
		seen[spec.Name] = true

		params, err := json.Marshal(spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("invalid parameters for tool %q: %w", spec.Name, err)
		}
		tools = append(tools, llm.NewTool(string(spec.Name), spec.Description, params))
	}
	for _, name := range allTools {
		if !seen[name] {
			return nil, fmt.Errorf("prompt catalogue is missing tool %q", name)
		}
	}

	return &Catalogue{System: file.System, Tools: tools}, nil
}
