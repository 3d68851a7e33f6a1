// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"philang/internal/issue"
	"philang/pkg/phisys"
	"philang/pkg/validate"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// renderVerdict prints a verdict: status line, result, violations with
// attribution, adaptations, and optionally the full trail.
func renderVerdict(cmd *cobra.Command, v *validate.Verdict, withTrail bool) {
	out := cmd.OutOrStdout()

	switch v.Status {
	case validate.StatusAccept:
		fmt.Fprintln(out, SuccessStyle.Render("ACCEPT"))
		if v.Invocation != nil {
			fmt.Fprintf(out, "result: %v\n", v.Invocation.Result)
		}
	case validate.StatusReject:
		fmt.Fprintln(out, ErrorStyle.Render("REJECT"))
	case validate.StatusError:
		fmt.Fprintln(out, ErrorStyle.Render("ERROR"))
		if v.Err != nil {
			fmt.Fprintln(out, WarningStyle.Render(v.Err.Error()))
			printIssue(issue.OperationFailedId)
		}
	}

	for _, viol := range v.Violations {
		fmt.Fprintf(out, "%s %s rule %s from module %s\n",
			kindStyle(viol.Kind).Render("violated"),
			strings.ToUpper(string(viol.Kind)),
			NameStyle.Render(viol.RuleID),
			NameStyle.Render(viol.Source))
	}
	for _, ad := range v.Adaptations {
		fmt.Fprintf(out, "%s rule %s from module %s deactivated for this invocation\n",
			WarningStyle.Render("adapted:"),
			NameStyle.Render(ad.RuleID),
			NameStyle.Render(ad.Source))
	}

	if v.Status == validate.StatusReject && verbose {
		printIssue(issue.InvocationRejectedId)
	}

	if withTrail {
		fmt.Fprintln(out, SubtitleStyle.Render("trail:"))
		for _, line := range v.Trail {
			fmt.Fprintln(out, VerboseStyle.Render("  "+line))
		}
	}
}

func kindStyle(k phisys.RuleKind) lipgloss.Style {
	if k == phisys.KindHard {
		return ErrorStyle
	}
	return WarningStyle
}
