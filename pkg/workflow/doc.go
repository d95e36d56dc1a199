// Package workflow parses Alteryx .yxmd workflow documents.
//
// A .yxmd file is an XML document describing a visual data pipeline:
// tools (Nodes), the connections between them, and workflow-level
// properties and metadata. This package extracts the known paths of
// that dialect into typed records; tool configurations, which vary per
// plugin, are carried as schema-agnostic [xmlmap.Value] trees.
//
//	w, err := workflow.Parse("pipeline.yxmd")
//	if err != nil { ... }
//	fmt.Println(w.Info.Name, len(w.Tools), len(w.Connections))
package workflow
