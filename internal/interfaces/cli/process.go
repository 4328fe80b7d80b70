package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/veritext/frameunify/internal/application/ontologysvc"
	"github.com/veritext/frameunify/internal/application/unify"
)

// newProcessCmd builds the corpus unification command.
func newProcessCmd() *cobra.Command {
	var (
		versionADir string
		versionBDir string
		outputDir   string
		ontologyIn  string
		spanPolicy  string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Unify both corpus releases into canonical chunked output",
		Long: "process loads every configured split from both release directories,\n" +
			"normalizes the two encodings, pairs instances by ID, flags semantic\n" +
			"disagreements, and writes chunked JSON plus frame and search indices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cc.Config

			if versionADir != "" {
				cfg.Corpus.VersionADir = versionADir
			}
			if versionBDir != "" {
				cfg.Corpus.VersionBDir = versionBDir
			}
			if outputDir != "" {
				cfg.Corpus.OutputDir = outputDir
			}
			if ontologyIn != "" {
				cfg.Ontology.InputFile = ontologyIn
			}
			if spanPolicy != "" {
				cfg.Corpus.SpanPolicy = spanPolicy
			}
			if workers > 0 {
				cfg.Corpus.Workers = workers
			}

			table, err := ontologysvc.NewService(cc.Logger).LoadTable(cfg.Ontology.InputFile)
			if err != nil {
				return err
			}

			svc := unify.NewService(cfg.Corpus, table, cc.Logger, nil)
			result, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			writer := unify.NewWriter(cfg.Corpus.OutputDir, cfg.Corpus.ChunkSize, cfg.Corpus.SearchTextLimit, cc.Logger)
			if err := writer.Write(result); err != nil {
				return err
			}

			r := result.Report
			cmd.Printf("run %s: %d instances unified (%d differing, %d skipped, %d fragments dropped) in %s\n",
				r.RunID, r.TotalUnified, r.TotalDiffering, r.TotalSkipped, r.TotalDropped, r.Duration.Round(time.Millisecond))
			cmd.Printf("output written to %s\n", cfg.Corpus.OutputDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&versionADir, "version-a", "", "span-based release directory (overrides config)")
	f.StringVar(&versionBDir, "version-b", "", "template-based release directory (overrides config)")
	f.StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	f.StringVar(&ontologyIn, "ontology", "", "raw ontology JSON file (overrides config)")
	f.StringVar(&spanPolicy, "span-policy", "", "span policy: fallback or strict (overrides config)")
	f.IntVar(&workers, "workers", 0, "parallel normalization workers (overrides config)")

	return cmd
}
