package cli

import (
	"github.com/spf13/cobra"

	"github.com/veritext/frameunify/internal/application/ontologysvc"
)

// newOntologyCmd builds the ontology processing command.
func newOntologyCmd() *cobra.Command {
	var (
		inputFile string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "ontology",
		Short: "Process the raw frame ontology into navigable artifacts",
		Long: "ontology reads the raw frame declarations, derives the parent/child\n" +
			"hierarchy from ancestor lists, and writes the processed frame table,\n" +
			"hierarchy index, search index and metadata.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cc.Config

			if inputFile != "" {
				cfg.Ontology.InputFile = inputFile
			}
			if outputDir != "" {
				cfg.Ontology.OutputDir = outputDir
			}

			svc := ontologysvc.NewService(cc.Logger)
			result, err := svc.Process(cfg.Ontology.InputFile)
			if err != nil {
				return err
			}
			if err := svc.Write(cfg.Ontology.OutputDir, result); err != nil {
				return err
			}

			cmd.Printf("%d frames processed (%d roots), output written to %s\n",
				result.Metadata.FrameCount, result.Metadata.RootCount, cfg.Ontology.OutputDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&inputFile, "input", "i", "", "raw ontology JSON file (overrides config)")
	f.StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")

	return cmd
}
