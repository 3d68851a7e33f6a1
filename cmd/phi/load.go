// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"philang/internal/issue"
	"philang/internal/project"
	"philang/pkg/phifile"
	"philang/pkg/phisys"
)

// loadedProgram is a parsed, bound, and finalized system plus the project
// context it came from.
type loadedProgram struct {
	sys      *phisys.System
	manifest *project.Manifest // nil when sources came from flags or config
	sources  []string
}

// defaultModule returns the module to use when a command names none.
func (p *loadedProgram) defaultModule() string {
	if p.manifest != nil && p.manifest.DefaultModule != "" {
		return p.manifest.DefaultModule
	}
	return ""
}

// probeDepth returns the manifest's probe budget, falling back to config.
func (p *loadedProgram) probeDepth() int {
	if p.manifest != nil && p.manifest.MaxProbeDepth > 0 {
		return p.manifest.MaxProbeDepth
	}
	return cfg.Validation.MaxProbeDepth
}

// loadProgram resolves the source list, parses it, binds host
// transformations, and finalizes the system.
//
// Source precedence: explicit file arguments, then --src flags, then the
// phiproj.toml manifest, then config. With no source anywhere the program
// cannot be loaded.
func loadProgram(args []string) (*loadedProgram, error) {
	prog := &loadedProgram{}

	switch {
	case len(args) > 0:
		prog.sources = args
	case len(srcFiles) > 0:
		prog.sources = srcFiles
	default:
		manifest, err := project.Load(".")
		switch {
		case err == nil:
			prog.manifest = manifest
			prog.sources = manifest.SourcePaths()
		case errors.Is(err, project.ErrNoManifest) && len(cfg.Sources) > 0:
			prog.sources = cfg.Sources
		case errors.Is(err, project.ErrNoManifest):
			printIssue(issue.ProgramNotFoundId)
			return nil, &ExitError{Code: 1, Err: errors.New("no Phi sources found")}
		default:
			return nil, issue.WrapWithOperation(err, "load project manifest")
		}
	}

	sys, err := phifile.ParseFiles(prog.sources...)
	if err != nil {
		return nil, domainError(err, "load program")
	}
	if err := bindHostTransforms(sys); err != nil {
		return nil, issue.WrapWithOperation(err, "bind transformations")
	}
	if err := sys.Finalize(); err != nil {
		return nil, domainError(err, "finalize system")
	}

	prog.sys = sys
	return prog, nil
}

// domainError wraps a domain error with operation context and, when the
// catalog knows the failure class, prints its remediation card.
func domainError(err error, operation string) error {
	if iss, ok := issue.Classify(err); ok {
		printRenderedIssue(iss)
	}
	return issue.WrapWithOperation(err, operation)
}

func printIssue(id issue.Id) {
	printRenderedIssue(issue.Get(id))
}

func printRenderedIssue(iss *issue.Issue) {
	out, err := iss.Render(string(cfg.UI.ColorScheme))
	if err != nil {
		// Fall back to the raw markdown rather than hiding the guidance.
		out = string(iss.MarkdownMsg())
	}
	fmt.Fprint(os.Stderr, out)
}
