package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"camshell/internal/camera"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the camera configuration",
	Long: `Refresh the complete configuration model and write it as YAML or
JSON, suitable for diffing camera state or seeding a simulator script.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

// exportEntry is the serialized form of one configuration entry.
type exportEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Path     string   `yaml:"path,omitempty" json:"path,omitempty"`
	Label    string   `yaml:"label,omitempty" json:"label,omitempty"`
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Current  string   `yaml:"current" json:"current"`
	Readonly bool     `yaml:"readonly,omitempty" json:"readonly,omitempty"`
	Choices  []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	Bottom   float64  `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	Top      float64  `yaml:"top,omitempty" json:"top,omitempty"`
	Step     float64  `yaml:"step,omitempty" json:"step,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "yaml" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q: want yaml or json", exportFormat)
	}

	conn, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.session.RefreshAll(); err != nil {
		return err
	}
	if err := conn.drain(); err != nil {
		return err
	}

	entries := exportEntries(conn.session.Model())

	var data []byte
	switch exportFormat {
	case "json":
		data, err = json.MarshalIndent(entries, "", "  ")
	default:
		data, err = yaml.Marshal(entries)
	}
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(exportOutput, data, 0644)
}

func exportEntries(model *camera.Model) []exportEntry {
	out := make([]exportEntry, 0, model.Len())
	for _, e := range model.Entries() {
		ee := exportEntry{
			Name:     e.Name,
			Path:     e.Path,
			Label:    e.Label,
			Type:     e.Type,
			Current:  e.Current,
			Readonly: e.Readonly,
			Bottom:   e.Bottom,
			Top:      e.Top,
			Step:     e.Step,
		}
		for _, ch := range e.Choices {
			ee.Choices = append(ee.Choices, ch.Label)
		}
		out = append(out, ee)
	}
	return out
}
