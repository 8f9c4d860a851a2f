// Package cli implements the askchem command line: an offline front door to
// the dispatch engine for quick checks and curriculum review, no services
// required.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askchem/askchem/internal/dispatch"
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
	"github.com/askchem/askchem/internal/solver"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// NewRootCmd assembles the askchem command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "askchem",
		Short:         "Deterministic chemistry exam question answering",
		Long:          "askchem answers board, NEET, and JEE organic chemistry questions through a fixed catalog of reaction rules. No network, no model, same answer every time.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAskCmd(), newSolversCmd(), newServeCmd())
	return root
}

func newPipeline() *dispatch.Pipeline {
	return dispatch.NewPipeline(
		question.NewGate(0),
		solver.NewGuard(),
		solver.NewRegistry().Ordered(),
		nil,
		nil,
	)
}

func newAskCmd() *cobra.Command {
	var (
		mode    string
		subject string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one exam question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			result := newPipeline().Dispatch(dispatch.Request{
				Question: q,
				Mode:     mode,
				Subject:  subject,
			})

			if asJSON {
				return printJSON(cmd, result)
			}
			printResult(cmd, q, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "BOARD", "exam mode: BOARD, NEET, or JEE")
	cmd.Flags().StringVar(&subject, "subject", "chemistry", "subject hint")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw answer contract as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, result dispatch.Result) error {
	out := struct {
		Kind         string                  `json:"kind"`
		QuestionType string                  `json:"question_type"`
		Solver       string                  `json:"solver,omitempty"`
		Answer       answer.Answer           `json:"answer"`
		Rendered     answer.RenderedResponse `json:"rendered"`
	}{
		Kind:         string(result.Kind),
		QuestionType: string(result.QuestionType),
		Solver:       result.SolverName,
		Answer:       result.Answer,
		Rendered:     result.Rendered,
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

const divider = "────────────────────────────────────────────────────────────"

func printResult(cmd *cobra.Command, q string, result dispatch.Result) {
	w := cmd.OutOrStdout()

	if result.Kind == dispatch.KindOutOfDomain {
		fmt.Fprintln(w, "Out of domain: askchem answers chemistry questions only.")
		return
	}

	s := result.Rendered.Sections
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "Question      %s\n", q)
	if result.SolverName != "" {
		fmt.Fprintf(w, "Solver        %s\n", result.SolverName)
	}
	fmt.Fprintf(w, "Decision      %s\n", result.Rendered.Decision)
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "Concept       %s\n", s.Concept)
	fmt.Fprintln(w, "Steps")
	for _, step := range strings.Split(s.Steps, "\n") {
		fmt.Fprintf(w, "  - %s\n", step)
	}
	fmt.Fprintf(w, "Final answer  %s\n", s.FinalAnswer)
	fmt.Fprintf(w, "Exam tip      %s\n", s.ExamTip)
	fmt.Fprintln(w, divider)
}

func newSolversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List the solver catalog in trial order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := solver.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tNAME\tTOPIC")
			for i, s := range registry.Ordered() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, s.Name(), s.Topic())
			}
			return w.Flush()
		},
	}
}
