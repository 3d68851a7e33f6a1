// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"philang/pkg/phisys"

	"github.com/spf13/cobra"
)

var graphModule string

// graphCmd shows the composition graph, or everything a single module can
// see when --module is given.
var graphCmd = &cobra.Command{
	Use:   "graph [files...]",
	Short: "Show modules and their import graph",
	Long: `Print every module with its imports in dependency order. With --module,
print the effective rule set and visible transformations of that module,
including everything inherited through imports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if graphModule != "" {
			return printModuleView(cmd, prog, graphModule)
		}

		order, err := prog.sys.ImportOrder()
		if err != nil {
			return domainError(err, "order modules")
		}
		for _, name := range order {
			m, err := prog.sys.Module(name)
			if err != nil {
				return domainError(err, "look up module")
			}
			fmt.Fprint(out, NameStyle.Render(name))
			if imports := m.Imports(); len(imports) > 0 {
				fmt.Fprint(out, SubtitleStyle.Render(" -> "+strings.Join(imports, ", ")))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphModule, "module", "m", "", "show the view of a single module")
}

func printModuleView(cmd *cobra.Command, prog *loadedProgram, name string) error {
	out := cmd.OutOrStdout()

	m, err := prog.sys.Module(name)
	if err != nil {
		return domainError(err, "look up module")
	}

	fmt.Fprintln(out, TitleStyle.Render("module ")+NameStyle.Render(m.Name()))
	if imports := m.Imports(); len(imports) > 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("imports: ")+strings.Join(imports, ", "))
	}

	rules, err := prog.sys.EffectiveRules(name)
	if err != nil {
		return domainError(err, fmt.Sprintf("resolve rules of %s", name))
	}
	if len(rules) > 0 {
		fmt.Fprintln(out, SubtitleStyle.Render("rules:"))
		for _, rr := range rules {
			origin := ""
			if rr.Source != name {
				origin = SubtitleStyle.Render("  (from " + rr.Source + ")")
			}
			fmt.Fprintf(out, "  %s %s %s%s\n",
				NameStyle.Render(rr.Rule.ID),
				kindStyle(rr.Rule.Kind).Render(strings.ToUpper(string(rr.Rule.Kind))),
				VerboseStyle.Render(rr.Rule.Predicate.String()),
				origin)
		}
	}

	fmt.Fprintln(out, SubtitleStyle.Render("transformations:"))
	for _, vt := range visibleTransformations(prog.sys, name) {
		origin := ""
		if vt.origin != name {
			origin = SubtitleStyle.Render("  (from " + vt.origin + ")")
		}
		fmt.Fprintf(out, "  %s/%d%s%s\n",
			NameStyle.Render(vt.tr.Name), vt.tr.Arity, boundMarker(vt.tr.Apply != nil), origin)
	}
	return nil
}

// visibleTransformation pairs a transformation with the module that
// contributes it to the viewed module.
type visibleTransformation struct {
	tr     *phisys.Transformation
	origin string
}

// visibleTransformations lists everything a module can invoke, walking
// imports depth-first in declaration order with first-seen shadowing. The
// walk matches the resolution order of invocations, so the listed origin is
// the definition a call would actually reach.
func visibleTransformations(sys *phisys.System, name string) []visibleTransformation {
	var out []visibleTransformation
	seen := map[string]bool{}
	visited := map[string]bool{}

	var walk func(cur string)
	walk = func(cur string) {
		if visited[cur] {
			return
		}
		visited[cur] = true

		m, err := sys.Module(cur)
		if err != nil {
			return
		}
		for _, tr := range m.Transformations() {
			if seen[tr.Name] {
				continue
			}
			seen[tr.Name] = true
			out = append(out, visibleTransformation{tr: tr, origin: cur})
		}
		for _, imp := range m.Imports() {
			walk(imp)
		}
	}
	walk(name)
	return out
}

func boundMarker(bound bool) string {
	if bound {
		return ""
	}
	return WarningStyle.Render("  [unbound]")
}
