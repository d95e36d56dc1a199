package workflow

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		name   string
		plugin string
		want   string
	}{
		{"standard input tool", "AlteryxBasePluginsGui.DbFileInput.DbFileInput", "DbFileInput"},
		{"standard select tool", "AlteryxBasePluginsGui.AlteryxSelect.AlteryxSelect", "AlteryxSelect"},
		{"gui toolkit", "AlteryxGuiToolkit.TextBox.TextBox", "TextBox"},
		{"connector", "AlteryxConnectorGui.Salesforce.Input", "Input"},
		{"custom versioned name kept whole", "SKOPOSSFTPDownload_v1.0", "SKOPOSSFTPDownload_v1.0"},
		{"custom with dots but no standard prefix", "com.vendor.CustomTool", "com.vendor.CustomTool"},
		{"empty", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortName(tt.plugin); got != tt.want {
				t.Errorf("ShortName(%q) = %q, want %q", tt.plugin, got, tt.want)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		plugin string
		want   string
	}{
		{"AlteryxBasePluginsGui.Filter.Filter", CategoryStandard},
		{"AlteryxGuiToolkit.TextBox.TextBox", CategoryGUIKit},
		{"AlteryxConnectorGui.Salesforce.Input", CategoryConnector},
		{"SKOPOSSFTPDownload_v1.0", CategoryCustom},
		{"", CategoryCustom},
	}

	for _, tt := range tests {
		if got := Category(tt.plugin); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.plugin, got, tt.want)
		}
	}
}

func TestCollect(t *testing.T) {
	w := parseSample(t)
	s := Collect(w)

	if s.Tools != 5 {
		t.Errorf("Tools = %d, want 5", s.Tools)
	}
	if s.Connections != 3 {
		t.Errorf("Connections = %d, want 3", s.Connections)
	}
	if s.EngineKinds[EngineDLL] != 3 {
		t.Errorf("DLL tools = %d, want 3", s.EngineKinds[EngineDLL])
	}
	if s.EngineKinds[EnginePython] != 1 {
		t.Errorf("Python tools = %d, want 1", s.EngineKinds[EnginePython])
	}
	if s.EngineKinds[EngineGUI] != 1 {
		t.Errorf("GUI tools = %d, want 1", s.EngineKinds[EngineGUI])
	}
	if s.Categories[CategoryStandard] != 3 {
		t.Errorf("standard plugins = %d, want 3", s.Categories[CategoryStandard])
	}
	if s.Categories[CategoryCustom] != 1 {
		t.Errorf("custom plugins = %d, want 1", s.Categories[CategoryCustom])
	}
	if s.Categories[CategoryGUIKit] != 1 {
		t.Errorf("gui toolkit plugins = %d, want 1", s.Categories[CategoryGUIKit])
	}
}
