package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/pkg/workflow"
)

// newSummaryCmd creates the summary command.
// It prints workflow metadata and tool statistics in a human-readable
// format, without the full configuration payloads.
func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <workflow.yxmd>",
		Short: "Print workflow metadata and tool statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSummary(c.Context(), args[0])
		},
	}
}

func runSummary(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Parsing %s", path)

	wf, err := workflow.Parse(path)
	if err != nil {
		return err
	}
	stats := workflow.Collect(wf)

	name := wf.Info.Name
	if name == "" {
		name = path
	}
	fmt.Println(StyleTitle.Render(name))
	printNewline()

	if wf.Info.Version != "" {
		printKeyValue("Version", wf.Info.Version)
	}
	if wf.Info.Author != "" {
		printKeyValue("Author", wf.Info.Author)
	}
	if wf.Info.Company != "" {
		printKeyValue("Company", wf.Info.Company)
	}
	if wf.Info.Description != "" {
		printKeyValue("Description", wf.Info.Description)
	}
	printKeyValue("Tools", fmt.Sprintf("%d", stats.Tools))
	printKeyValue("Connections", fmt.Sprintf("%d", stats.Connections))

	if len(stats.EngineKinds) > 0 {
		printNewline()
		printInfo("Engines")
		for _, kind := range []workflow.EngineKind{workflow.EngineDLL, workflow.EnginePython, workflow.EngineGUI} {
			if n := stats.EngineKinds[kind]; n > 0 {
				printDetail("%-8s %d", kind, n)
			}
		}
	}

	if len(stats.Categories) > 0 {
		printNewline()
		printInfo("Plugin categories")
		for _, cat := range []string{workflow.CategoryStandard, workflow.CategoryGUIKit, workflow.CategoryConnector, workflow.CategoryCustom} {
			if n := stats.Categories[cat]; n > 0 {
				printDetail("%-10s %d", cat, n)
			}
		}
	}

	if len(wf.Tools) > 0 {
		printNewline()
		printInfo("Tools")
		for _, t := range wf.Tools {
			printDetail("%-6s %-30s %s", t.ID, workflow.ShortName(t.Plugin), t.Engine.Kind)
		}
	}

	if len(wf.Connections) > 0 {
		printNewline()
		printInfo("Connections")
		for _, c := range wf.Connections {
			printDetail("%s %s %s  (%s %s %s)",
				c.Origin.ToolID, iconArrow, c.Destination.ToolID,
				c.Origin.Anchor, iconArrow, c.Destination.Anchor)
		}
	}

	printNewline()
	printNextStep("Full record", fmt.Sprintf("flowlens parse %s", path))
	printNextStep("Tool graph", fmt.Sprintf("flowlens graph %s --format svg -o graph.svg", path))
	return nil
}
