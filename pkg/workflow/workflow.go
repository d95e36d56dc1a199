package workflow

import (
	"encoding/json"

	"github.com/flowlens/flowlens/pkg/xmlmap"
)

// EngineKind classifies how a tool is executed by the engine.
type EngineKind string

const (
	// EngineDLL is a native tool backed by an engine DLL.
	EngineDLL EngineKind = "DLL"
	// EnginePython is a Python SDK tool; its entry point is a script path.
	EnginePython EngineKind = "Python"
	// EngineGUI is a canvas-only tool (e.g. TextBox) with no engine settings.
	EngineGUI EngineKind = "GUI"
)

// Workflow is the structured form of one .yxmd document. The JSON field
// names match the output format of the original extraction scripts so
// downstream consumers keep working.
type Workflow struct {
	Info        MetaInfo     `json:"workflow_info"`
	Tools       []Tool       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Properties  Properties   `json:"properties"`
}

// MetaInfo holds workflow-level metadata from Properties/MetaInfo.
type MetaInfo struct {
	Version         string           `json:"version,omitempty"` // yxmdVer attribute on the document root
	Name            string           `json:"name,omitempty"`
	Description     string           `json:"description,omitempty"`
	Author          string           `json:"author,omitempty"`
	Company         string           `json:"company,omitempty"`
	Copyright       string           `json:"copyright,omitempty"`
	RootToolName    string           `json:"root_tool_name,omitempty"`
	ToolVersion     string           `json:"tool_version,omitempty"`
	CategoryName    string           `json:"category_name,omitempty"`
	SearchTags      string           `json:"search_tags,omitempty"`
	NameIsFileName  string           `json:"name_is_filename,omitempty"`
	ToolInDB        string           `json:"tool_in_db,omitempty"`
	DescriptionLink *DescriptionLink `json:"description_link,omitempty"`
}

// DescriptionLink is an optional link in the workflow metadata.
type DescriptionLink struct {
	Actual    string `json:"actual"`
	Displayed string `json:"displayed"`
	Text      string `json:"text,omitempty"`
}

// Properties holds workflow-level runtime settings.
type Properties struct {
	MemoryDefault     string `json:"memory_default,omitempty"`
	GlobalRecordLimit string `json:"global_record_limit,omitempty"`
	ZoomLevel         string `json:"zoom_level,omitempty"`
	LayoutType        string `json:"layout_type,omitempty"`
}

// Tool is one node on the workflow canvas.
type Tool struct {
	ID            string         `json:"tool_id"`
	Plugin        string         `json:"plugin,omitempty"`
	Position      Position       `json:"position"`
	Configuration xmlmap.Value   `json:"configuration,omitempty"`
	Annotation    xmlmap.Value   `json:"annotation,omitempty"`
	Engine        EngineSettings `json:"engine_settings"`
}

// toolJSON mirrors Tool with raw configuration and annotation payloads,
// so UnmarshalJSON can rebuild the schema-free values.
type toolJSON struct {
	ID            string          `json:"tool_id"`
	Plugin        string          `json:"plugin,omitempty"`
	Position      Position        `json:"position"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Annotation    json.RawMessage `json:"annotation,omitempty"`
	Engine        EngineSettings  `json:"engine_settings"`
}

// UnmarshalJSON decodes an archived tool record. Needed because the
// configuration and annotation fields are interface-typed and cannot be
// decoded by the default unmarshaler.
func (t *Tool) UnmarshalJSON(data []byte) error {
	var raw toolJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cfg, err := xmlmap.DecodeJSON(raw.Configuration)
	if err != nil {
		return err
	}
	ann, err := xmlmap.DecodeJSON(raw.Annotation)
	if err != nil {
		return err
	}

	*t = Tool{
		ID:            raw.ID,
		Plugin:        raw.Plugin,
		Position:      raw.Position,
		Configuration: cfg,
		Annotation:    ann,
		Engine:        raw.Engine,
	}
	return nil
}

// Position is a canvas coordinate. Values stay strings: the document
// stores them as attribute text and the output format passes them
// through verbatim.
type Position struct {
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
}

// EngineSettings describes how the engine runs a tool.
type EngineSettings struct {
	DLL        string     `json:"dll,omitempty"`
	EntryPoint string     `json:"entry_point,omitempty"`
	Kind       EngineKind `json:"type"`
}

// Connection is a directed link between two tool anchors.
type Connection struct {
	Origin      Endpoint `json:"origin"`
	Destination Endpoint `json:"destination"`
}

// Endpoint identifies one side of a connection: the tool and the anchor
// name on that tool ("Output", "Left", "Join", ...).
type Endpoint struct {
	ToolID string `json:"tool_id"`
	Anchor string `json:"connection,omitempty"`
}

// Tool returns the tool with the given ID and true, or a zero Tool and
// false if no tool has that ID.
func (w *Workflow) Tool(id string) (Tool, bool) {
	for _, t := range w.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}
