// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// checkCmd loads the program and reports whether it composes cleanly:
// sources parse, imports stay acyclic, and every module's effective rule
// set resolves without ambiguity.
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse and check the project sources",
	Long: `Load the Phi sources, compose the modules, and verify that the system
can be finalized: imports are acyclic and every module's effective rule
set resolves without ambiguity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args)
		if err != nil {
			return err
		}

		modules := prog.sys.Modules()
		ruleCount := 0
		for _, m := range modules {
			// Resolution surfaces cross-import ambiguities finalize cannot see.
			if _, err := prog.sys.EffectiveRules(m.Name()); err != nil {
				return domainError(err, fmt.Sprintf("resolve rules of %s", m.Name()))
			}
			ruleCount += len(m.Rules())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d module(s), %d rule(s), %d source file(s)\n",
			SuccessStyle.Render("ok:"), len(modules), ruleCount, len(prog.sources))

		if verbose {
			order, err := prog.sys.ImportOrder()
			if err != nil {
				return domainError(err, "order modules")
			}
			fmt.Fprintln(cmd.OutOrStdout(), VerboseStyle.Render("import order: ")+NameStyle.Render(strings.Join(order, ", ")))
		}
		return nil
	},
}
