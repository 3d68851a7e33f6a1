// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProgramNotFoundId Id = iota + 1
	ProgramParseErrorId
	ModuleNotFoundId
	TransformationNotFoundId
	CyclicImportId
	AmbiguousRuleId
	SystemFinalizedId
	InvocationRejectedId
	OperationFailedId
	ConfigLoadFailedId
	ManifestNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# No Phi sources found!

We searched for .phi files but couldn't find any in the expected locations.

## Search locations (in order of precedence):
1. Files listed in phiproj.toml
2. Paths given on the command line
3. The current directory

## Things you can try:
- Pass the source files explicitly:
~~~
$ phi check core.phi finance.phi
~~~

- Or list them in a phiproj.toml manifest:
~~~toml
sources = ["core.phi", "finance.phi"]
default_module = "Finance"
~~~

## Example program structure:
~~~
module CoreMath {
    data Number

    def divide : Number -> Number -> Number

    axiom nonzero : hard (b != 0)
}

module Finance {
    import CoreMath
}
~~~`,
	}

	programParseErrorIssue = &Issue{
		id: ProgramParseErrorId,
		mdMsg: `
# Failed to parse Phi source!

One of your .phi files contains a syntax error.

## Common issues:
- A directive outside a module block
- A missing closing brace on a module block
- An axiom kind other than hard or soft
- An unparenthesized axiom body

## Things you can try:
- Check the error message above for the file and line
- Run with verbose mode for more details:
~~~
$ phi --verbose check
~~~

## Example of a valid module:
~~~
module MatrixAlg {
    data Matrix

    def mat_multiply : Matrix -> Matrix -> Matrix

    axiom commutative : soft (commutativity)
}
~~~`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

The module you specified is not defined in any of the loaded sources.

## Things you can try:
- List the loaded modules:
~~~
$ phi graph
~~~

- Check for typos in the module name (module names are case sensitive)
- Verify the file declaring the module is among the loaded sources`,
	}

	transformationNotFoundIssue = &Issue{
		id: TransformationNotFoundId,
		mdMsg: `
# Transformation not visible!

The transformation is declared neither in the module you invoked it from
nor in any module it imports.

## Things you can try:
- Declare it in the module:
~~~
def divide : Number -> Number -> Number
~~~

- Or import the module that declares it:
~~~
import CoreMath
~~~

- List everything a module can see:
~~~
$ phi graph --module Finance
~~~`,
	}

	cyclicImportIssue = &Issue{
		id: CyclicImportId,
		mdMsg: `
# Import cycle detected!

Your module imports form a cycle. Composition must stay acyclic, so the
edge that would close the cycle is rejected and nothing is recorded.

## Example of a cycle:
~~~
module A {
    import B
}
module B {
    import A   // Cycle: A -> B -> A
}
~~~

## Things you can try:
- Review the import lines named in the error
- Move the shared rules into a third module both sides import`,
	}

	ambiguousRuleIssue = &Issue{
		id: AmbiguousRuleId,
		mdMsg: `
# Ambiguous inherited rule!

The same rule name reaches a module from two imports that disagree on its
kind or its predicate. There is no implicit precedence between imports, so
the conflict must be resolved in source.

## Things you can try:
- Rename one of the conflicting axioms
- Align both declarations on the same kind and predicate (agreeing
  restatements are allowed)
- Drop one of the imports`,
	}

	systemFinalizedIssue = &Issue{
		id: SystemFinalizedId,
		mdMsg: `
# System already finalized!

The system has been frozen and no further modules, imports, or rules can
be added. Finalization is one-way; validation requires it.

## Things you can try:
- Move the mutation before the finalize step
- Build a fresh system if you need a different composition`,
	}

	invocationRejectedIssue = &Issue{
		id: InvocationRejectedId,
		mdMsg: `
# Invocation rejected!

At least one hard rule was violated. Hard rules can never be deactivated;
the invocation's result is discarded.

## Things you can try:
- Read the trail above for the violated rules and their declaring modules
- Fix the operands so the rule holds
- If the rule is too strict for this module, declare it soft where it is
  defined`,
	}

	operationFailedIssue = &Issue{
		id: OperationFailedId,
		mdMsg: `
# Operation failed!

The transformation itself failed before any rule was evaluated. This is
not a rule violation; it is a malfunction of the invoked operation.

## Common causes:
- Wrong operand count for the transformation's signature
- The transformation is declared but has no bound implementation
- The host implementation returned an error

## Things you can try:
- Check the operand list against the def signature
- Run with verbose mode for the underlying error:
~~~
$ phi --verbose validate ...
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the phi configuration file.

## Configuration file locations:
- Linux: ~/.config/phi/config.cue
- macOS: ~/Library/Application Support/phi/config.cue
- Windows: %APPDATA%\phi\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/phi/config.cue
~~~

## Example configuration:
~~~cue
validation: {
  max_probe_depth: 4
  trail: true
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No project manifest found!

We looked for a phiproj.toml but couldn't find one in this directory or
any parent directory.

## Things you can try:
- Create one next to your sources:
~~~toml
sources = ["core.phi", "finance.phi"]
default_module = "Finance"
max_probe_depth = 4
~~~

- Or skip the manifest and pass files directly:
~~~
$ phi check core.phi finance.phi
~~~`,
	}

	issues = map[Id]*Issue{
		programNotFoundIssue.Id():        programNotFoundIssue,
		programParseErrorIssue.Id():      programParseErrorIssue,
		moduleNotFoundIssue.Id():         moduleNotFoundIssue,
		transformationNotFoundIssue.Id(): transformationNotFoundIssue,
		cyclicImportIssue.Id():           cyclicImportIssue,
		ambiguousRuleIssue.Id():          ambiguousRuleIssue,
		systemFinalizedIssue.Id():        systemFinalizedIssue,
		invocationRejectedIssue.Id():     invocationRejectedIssue,
		operationFailedIssue.Id():        operationFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		manifestNotFoundIssue.Id():       manifestNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
