// File: reconstruct.go
// Role: Drive an external CarveMe-style reconstruction tool and sanity-check
//       the model it produces.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/gemflux/internal/cli/ui"
)

var (
	reconOutput   string
	reconUniverse string
	reconTool     string
	reconArgs     []string
)

func init() {
	reconstructCmd.Flags().StringVarP(&reconOutput, "output", "o", "", "path for the reconstructed SBML model (required)")
	reconstructCmd.Flags().StringVar(&reconUniverse, "universe", "", "reaction universe passed to the tool (e.g. grampos)")
	reconstructCmd.Flags().StringVar(&reconTool, "tool", "", "reconstruction binary (default from config: carve)")
	reconstructCmd.Flags().StringArrayVar(&reconArgs, "arg", nil, "extra argument forwarded to the tool (repeatable)")
}

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <genome>",
	Short: "Reconstruct a draft model from a genome",
	Long: `Invoke an external reconstruction tool (CarveMe-style: 'carve genome.faa
-o model.xml') on the given genome, then load the produced SBML to verify
it parses. The binary name and standing arguments come from the
reconstruct section of gemflux.yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reconOutput == "" {
			return fmt.Errorf("-o is required")
		}

		tool := reconTool
		if tool == "" {
			tool = cfg.Reconstruct.Binary
		}
		path, err := exec.LookPath(tool)
		if err != nil {
			return fmt.Errorf("reconstruction tool %q not found in PATH", tool)
		}

		cmdArgs := []string{args[0], "-o", reconOutput}
		if reconUniverse != "" {
			cmdArgs = append(cmdArgs, "--universe", reconUniverse)
		}
		cmdArgs = append(cmdArgs, cfg.Reconstruct.Args...)
		cmdArgs = append(cmdArgs, reconArgs...)

		ctx := cmd.Context()
		logger.Info("reconstruction started",
			zap.String("run_id", runID),
			zap.String("tool", path),
			zap.Strings("args", cmdArgs))

		start := time.Now()
		tc := exec.CommandContext(ctx, path, cmdArgs...)
		tc.Stdout = os.Stdout
		tc.Stderr = os.Stderr
		if err := tc.Run(); err != nil {
			return fmt.Errorf("%s failed: %w", tool, err)
		}

		// The tool exited cleanly; make sure it actually left a usable model.
		m, err := loadModel(ctx, reconOutput)
		if err != nil {
			return fmt.Errorf("%s wrote an unreadable model: %w", tool, err)
		}

		st := m.Stats()
		ui.OK(os.Stdout, "reconstructed %s: %d metabolites, %d reactions, %d genes in %.1fs",
			reconOutput, st.MetaboliteCount, st.ReactionCount, st.GeneCount,
			time.Since(start).Seconds())

		return nil
	},
}
