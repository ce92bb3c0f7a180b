package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/trajectory-cli/internal/adapters/render/results"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/spf13/cobra"
)

type traitSpecOutput struct {
	Name    domain.TraitName `json:"name"`
	Label   string           `json:"label"`
	Kind    domain.TraitKind `json:"kind"`
	Min     int              `json:"min"`
	Max     int              `json:"max"`
	Default int              `json:"default"`
}

func newTraitsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "traits",
		Short:       "List the traits a profile can set",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipWire: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs := domain.TraitSpecs()

			if asJSON {
				out := make([]traitSpecOutput, 0, len(specs))
				for _, spec := range specs {
					out = append(out, traitSpecOutput(spec))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			rendered, err := results.RenderCatalogue(specs)
			if err != nil {
				return fmt.Errorf("render traits: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
