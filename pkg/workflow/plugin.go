package workflow

import "strings"

// Plugin categories derived from the plugin string prefix.
const (
	CategoryStandard  = "Standard Alteryx"
	CategoryGUIKit    = "GUI Toolkit"
	CategoryConnector = "Connector"
	CategoryCustom    = "Custom/Third-party"
)

// standardPrefixes are the namespaces of plugins that ship with Alteryx.
// Anything else is a custom or third-party tool (often versioned names
// like "SKOPOSSFTPDownload_v1.0" with no dotted namespace at all).
var standardPrefixes = []string{
	"AlteryxBasePluginsGui",
	"AlteryxGuiToolkit",
	"AlteryxConnectorGui",
}

// ShortName extracts a readable tool name from a plugin string.
//
// Standard Alteryx plugins use dotted namespaces such as
// "AlteryxBasePluginsGui.DbFileInput.DbFileInput"; the last segment is
// the tool name. Custom plugins keep their full string since splitting a
// name like "SKOPOSSFTPDownload_v1.0" on dots would mangle the version.
func ShortName(plugin string) string {
	if plugin == "" {
		return "Unknown"
	}
	if strings.Count(plugin, ".") >= 2 && hasStandardPrefix(plugin) {
		parts := strings.Split(plugin, ".")
		return parts[len(parts)-1]
	}
	return plugin
}

// Category classifies a plugin string by its namespace prefix.
func Category(plugin string) string {
	switch {
	case strings.HasPrefix(plugin, "AlteryxBasePluginsGui"):
		return CategoryStandard
	case strings.HasPrefix(plugin, "AlteryxGuiToolkit"):
		return CategoryGUIKit
	case strings.HasPrefix(plugin, "AlteryxConnectorGui"):
		return CategoryConnector
	default:
		return CategoryCustom
	}
}

func hasStandardPrefix(plugin string) bool {
	for _, p := range standardPrefixes {
		if strings.Contains(plugin, p) {
			return true
		}
	}
	return false
}

// Stats summarizes a workflow for reporting.
type Stats struct {
	Tools       int
	Connections int
	EngineKinds map[EngineKind]int
	Categories  map[string]int
}

// Collect computes summary statistics for a workflow: tool and
// connection counts plus engine kind and plugin category distributions.
func Collect(w *Workflow) Stats {
	s := Stats{
		Tools:       len(w.Tools),
		Connections: len(w.Connections),
		EngineKinds: make(map[EngineKind]int),
		Categories:  make(map[string]int),
	}
	for _, t := range w.Tools {
		s.EngineKinds[t.Engine.Kind]++
		s.Categories[Category(t.Plugin)]++
	}
	return s
}
