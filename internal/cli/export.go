package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"medsim/internal/platform/config"
	"medsim/internal/platform/persistence"
)

func newExportCmd(st *state) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every persisted registry bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if st.cfg.Persistence.Driver == config.DriverMemory {
				return fmt.Errorf("nothing to export: persistence driver is %q", config.DriverMemory)
			}
			backend, err := persistence.Open(cmd.Context(), st.cfg.Persistence)
			if err != nil {
				return err
			}
			snap := persistence.NewSnapshotter(backend, persistence.WithLogger(st.logger))
			defer func() { _ = snap.Close() }()

			buckets, err := snap.Export(cmd.Context())
			if err != nil {
				return err
			}
			return writeExport(cmd.OutOrStdout(), format, buckets)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "yaml", `output format ("yaml" or "json")`)
	return cmd
}

func writeExport(w io.Writer, format string, buckets map[string]json.RawMessage) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(buckets)
	case "yaml":
		doc := make(map[string]any, len(buckets))
		for bucket, payload := range buckets {
			var v any
			if err := json.Unmarshal(payload, &v); err != nil {
				return fmt.Errorf("decode %s: %w", bucket, err)
			}
			doc[bucket] = v
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
