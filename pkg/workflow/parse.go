package workflow

import (
	"io"
	"strings"

	"github.com/flowlens/flowlens/pkg/errors"
	"github.com/flowlens/flowlens/pkg/xmlmap"
)

// rootTag is the document element of every .yxmd file.
const rootTag = "AlteryxDocument"

// Parse reads and extracts the workflow document at path.
//
// Errors carry structured codes: FILE_NOT_FOUND when the path cannot be
// opened, MALFORMED_INPUT for invalid XML, and INVALID_WORKFLOW when the
// document is well-formed XML but not a workflow file.
func Parse(path string) (*Workflow, error) {
	root, err := xmlmap.Load(path)
	if err != nil {
		return nil, err
	}
	return fromElement(root)
}

// Decode extracts a workflow document from r. See [Parse] for the error
// contract, minus FILE_NOT_FOUND.
func Decode(r io.Reader) (*Workflow, error) {
	root, err := xmlmap.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromElement(root)
}

func fromElement(root *xmlmap.Element) (*Workflow, error) {
	if root.Tag != rootTag {
		return nil, errors.New(errors.ErrCodeInvalidWorkflow, "not a workflow document: root element is <%s>, expected <%s>", root.Tag, rootTag)
	}

	w := &Workflow{
		Info:        extractInfo(root),
		Tools:       extractTools(root),
		Connections: extractConnections(root),
		Properties:  extractProperties(root),
	}
	return w, nil
}

func extractInfo(root *xmlmap.Element) MetaInfo {
	info := MetaInfo{Version: root.Attr("yxmdVer")}

	meta := root.Find("Properties", "MetaInfo")
	if meta == nil {
		return info
	}

	info.Name = childText(meta, "Name")
	info.Description = childText(meta, "Description")
	info.Author = childText(meta, "Author")
	info.Company = childText(meta, "Company")
	info.Copyright = childText(meta, "Copyright")
	info.RootToolName = childText(meta, "RootToolName")
	info.ToolVersion = childText(meta, "ToolVersion")
	info.CategoryName = childText(meta, "CategoryName")
	info.SearchTags = childText(meta, "SearchTags")

	if el := meta.Find("NameIsFileName"); el != nil {
		info.NameIsFileName = el.Attr("value")
	}
	if el := meta.Find("ToolInDb"); el != nil {
		info.ToolInDB = el.Attr("value")
	}
	if el := meta.Find("DescriptionLink"); el != nil {
		info.DescriptionLink = &DescriptionLink{
			Actual:    el.Attr("actual"),
			Displayed: el.Attr("displayed"),
			Text:      strings.TrimSpace(el.Text),
		}
	}

	return info
}

func extractTools(root *xmlmap.Element) []Tool {
	nodes := root.Find("Nodes")
	if nodes == nil {
		return nil
	}

	var tools []Tool
	for _, node := range nodes.FindAll("Node") {
		tool := Tool{ID: node.Attr("ToolID")}

		if gui := node.Find("GuiSettings"); gui != nil {
			tool.Plugin = gui.Attr("Plugin")
			if pos := gui.Find("Position"); pos != nil {
				tool.Position = Position{X: pos.Attr("x"), Y: pos.Attr("y")}
			}
		}

		if props := node.Find("Properties"); props != nil {
			if cfg := props.Find("Configuration"); cfg != nil {
				tool.Configuration = xmlmap.Map(cfg)
			}
			if ann := props.Find("Annotation"); ann != nil {
				tool.Annotation = xmlmap.Map(ann)
			}
		}

		tool.Engine = extractEngine(node)
		tools = append(tools, tool)
	}
	return tools
}

func extractEngine(node *xmlmap.Element) EngineSettings {
	engine := node.Find("EngineSettings")
	if engine == nil {
		// Canvas-only tools like TextBox have no engine settings.
		return EngineSettings{Kind: EngineGUI}
	}

	settings := EngineSettings{
		DLL:        engine.Attr("EngineDll"),
		EntryPoint: engine.Attr("EngineDllEntryPoint"),
		Kind:       EngineDLL,
	}
	if settings.DLL == "Python" {
		// Python SDK tools report "Python" as the DLL; the entry point is
		// the script path.
		settings.Kind = EnginePython
	}
	return settings
}

func extractConnections(root *xmlmap.Element) []Connection {
	conns := root.Find("Connections")
	if conns == nil {
		return nil
	}

	var out []Connection
	for _, conn := range conns.FindAll("Connection") {
		origin := conn.Find("Origin")
		dest := conn.Find("Destination")
		if origin == nil || dest == nil {
			continue
		}
		out = append(out, Connection{
			Origin:      Endpoint{ToolID: origin.Attr("ToolID"), Anchor: origin.Attr("Connection")},
			Destination: Endpoint{ToolID: dest.Attr("ToolID"), Anchor: dest.Attr("Connection")},
		})
	}
	return out
}

func extractProperties(root *xmlmap.Element) Properties {
	props := root.Find("Properties")
	if props == nil {
		return Properties{}
	}

	p := Properties{}
	if el := props.Find("Memory"); el != nil {
		p.MemoryDefault = el.Attr("default")
	}
	if el := props.Find("GlobalRecordLimit"); el != nil {
		p.GlobalRecordLimit = el.Attr("value")
	}
	if el := props.Find("ZoomLevel"); el != nil {
		p.ZoomLevel = el.Attr("value")
	}
	if el := props.Find("LayoutType"); el != nil {
		p.LayoutType = strings.TrimSpace(el.Text)
	}
	return p
}

func childText(parent *xmlmap.Element, tag string) string {
	el := parent.Find(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text)
}
