package cmd

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "camshell" {
		t.Errorf("rootCmd.Use = %q, want camshell", rootCmd.Use)
	}

	// Check for expected subcommands (compare by Name(), not Use which
	// includes args)
	expected := []string{"detect", "get", "set", "capture", "list-config", "export", "monitor"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, name := range expected {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "port", "binary", "simulate", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestSetFlagValidation(t *testing.T) {
	if setCmd.Flags().Lookup("index") == nil {
		t.Fatal("set must expose --index")
	}
	if err := setCmd.Args(setCmd, []string{}); err == nil {
		t.Error("set with no args should fail argument validation")
	}
	if err := setCmd.Args(setCmd, []string{"/main/imgsettings/iso", "400"}); err != nil {
		t.Errorf("set with path and value should pass validation: %v", err)
	}
}

func TestExportFormatRejected(t *testing.T) {
	exportFormat = "xml"
	defer func() { exportFormat = "yaml" }()
	if err := runExport(exportCmd, nil); err == nil {
		t.Error("unknown export format should fail before connecting")
	}
}
