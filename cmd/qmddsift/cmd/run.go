// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dalzilio-labs/qmddsift/internal/circuit"
	"github.com/dalzilio-labs/qmddsift/internal/cnum"
	"github.com/dalzilio-labs/qmddsift/internal/qmdd"
)

var (
	dotPath    string
	schemeFlag string
)

var runCmd = &cobra.Command{
	Use:   "run <circuit-file>",
	Short: "Build a circuit's functionality diagram and reorder it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&dotPath, "dot", "", "Write the final diagram to this Graphviz dot file (\"-\" for stdout)")
	runCmd.Flags().StringVar(&schemeFlag, "scheme", "", "Reorder scheme: sifting, lt-upper, lt-lower, lt-mixed, none (overrides config)")
}

func runRun(c *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	circ, err := circuit.Parse(f)
	if err != nil {
		return fmt.Errorf("qmddsift: %w", err)
	}

	schemeName := cfg.Optimize.Scheme
	if schemeFlag != "" {
		schemeName = schemeFlag
	}
	scheme, err := qmdd.ParseScheme(schemeName)
	if err != nil {
		return err
	}

	weights := cnum.New(cnum.DefaultTolerance)
	var opts []func(*qmdd.Configs)
	if cfg.Table.BucketSize > 0 {
		opts = append(opts, qmdd.Bucketsize(cfg.Table.BucketSize))
	}
	if cfg.Table.NodeSize > 0 {
		opts = append(opts, qmdd.Nodesize(cfg.Table.NodeSize))
	}

	d, err := qmdd.NewDiagram(circ.NumQubits, weights, opts...)
	if err != nil {
		return fmt.Errorf("qmddsift: %w", err)
	}

	root, weight, err := circuit.Build(d, circ)
	if err != nil {
		return fmt.Errorf("qmddsift: %w", err)
	}
	d.Table().IncRef(root)

	sizeBefore := d.Size()
	log.Info().Int("qubits", circ.NumQubits).Int("gates", len(circ.Gates)).Int("size", sizeBefore).Msg("qmddsift: functionality built")

	if scheme != qmdd.SchemeNone {
		optCfg := qmdd.OptimizeConfig{
			MaxRounds:    cfg.Optimize.MaxRounds,
			StableRounds: cfg.Optimize.StableRounds,
			Tolerance:    cfg.Optimize.Tolerance,
		}
		if _, err := d.Optimize(root, scheme, optCfg); err != nil {
			return fmt.Errorf("qmddsift: %w", err)
		}
	}
	sizeAfter := d.Size()

	fmt.Printf("scheme:      %s\n", scheme)
	fmt.Printf("size before: %d\n", sizeBefore)
	fmt.Printf("size after:  %d\n", sizeAfter)
	fmt.Print(d.PrintOrder("x"))

	if dotPath != "" {
		if err := d.ExportDot(dotPath, root, weight); err != nil {
			return fmt.Errorf("qmddsift: writing dot: %w", err)
		}
	}
	return nil
}
