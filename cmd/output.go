package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listFormat selects machine-readable output for the list commands.
type listFormat struct {
	json bool
	yaml bool
}

func (f *listFormat) register(cmd *cobra.Command, noun string) {
	cmd.Flags().BoolVar(&f.json, "json", false, "print "+noun+" as JSON")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "print "+noun+" as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func (f listFormat) structured() bool {
	return f.json || f.yaml
}

func (f listFormat) write(out io.Writer, v any) error {
	if f.yaml {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
