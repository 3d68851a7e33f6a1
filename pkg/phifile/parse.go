// SPDX-License-Identifier: MPL-2.0

package phifile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"philang/pkg/phiexpr"
	"philang/pkg/phisys"
)

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

type (
	declKind int

	// decl is one parsed directive inside a module block.
	decl struct {
		kind     declKind
		line     int
		name     string
		arity    int             // def only
		ruleKind phisys.RuleKind // axiom only
		body     string          // axiom only; empty means builtin by name
	}

	moduleAST struct {
		name  string
		line  int
		decls []decl
	}

	fileAST struct {
		name    string
		modules []*moduleAST
	}
)

const (
	declImport declKind = iota
	declData
	declDef
	declAxiom
)

// ParseFiles reads a set of Phi source files into one system. Every module
// block across all files is defined before any import is wired, so files may
// reference modules declared later or in another file. The returned system
// is left unfinalized: bind transformation implementations, then finalize.
func ParseFiles(paths ...string) (*phisys.System, error) {
	asts := make([]*fileAST, 0, len(paths))
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		ast, err := parseSource(path, src)
		if err != nil {
			return nil, err
		}
		asts = append(asts, ast)
	}

	sys := phisys.NewSystem()
	if err := build(sys, asts); err != nil {
		return nil, err
	}
	return sys, nil
}

// ParseString parses a single source text into a fresh system.
func ParseString(filename, src string) (*phisys.System, error) {
	ast, err := parseSource(filename, []byte(src))
	if err != nil {
		return nil, err
	}
	sys := phisys.NewSystem()
	if err := build(sys, []*fileAST{ast}); err != nil {
		return nil, err
	}
	return sys, nil
}

// ParseReader parses one source stream into an existing unfinalized system.
// Modules already present in the system are extended, matching the re-open
// semantics of multi-file programs.
func ParseReader(sys *phisys.System, filename string, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	ast, err := parseSource(filename, src)
	if err != nil {
		return err
	}
	return build(sys, []*fileAST{ast})
}

// parseSource turns one file into its syntactic form without touching any
// system state.
func parseSource(filename string, src []byte) (*fileAST, error) {
	ast := &fileAST{name: filename}
	var current *moduleAST

	sc := bufio.NewScanner(strings.NewReader(string(src)))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}

		if current == nil {
			name, err := parseModuleHeader(filename, lineNo, line)
			if err != nil {
				return nil, err
			}
			current = &moduleAST{name: name, line: lineNo}
			continue
		}

		if line == "}" {
			ast.modules = append(ast.modules, current)
			current = nil
			continue
		}

		d, err := parseDecl(filename, lineNo, line)
		if err != nil {
			return nil, err
		}
		current.decls = append(current.decls, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if current != nil {
		return nil, errorf(filename, current.line, "module %q is missing its closing brace", current.name)
	}
	return ast, nil
}

func parseModuleHeader(file string, line int, text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 || fields[0] != "module" || fields[2] != "{" {
		return "", errorf(file, line, "expected `module <Name> {`, got %q", text)
	}
	if !identRe.MatchString(fields[1]) {
		return "", errorf(file, line, "invalid module name %q", fields[1])
	}
	return fields[1], nil
}

func parseDecl(file string, line int, text string) (decl, error) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "import":
		if len(fields) != 2 || !identRe.MatchString(fields[1]) {
			return decl{}, errorf(file, line, "expected `import <Module>`, got %q", text)
		}
		return decl{kind: declImport, line: line, name: fields[1]}, nil

	case "data":
		if len(fields) != 2 || !identRe.MatchString(fields[1]) {
			return decl{}, errorf(file, line, "expected `data <Name>`, got %q", text)
		}
		return decl{kind: declData, line: line, name: fields[1]}, nil

	case "def":
		return parseDef(file, line, text)

	case "axiom":
		return parseAxiom(file, line, text)

	case "module":
		return decl{}, errorf(file, line, "module blocks cannot be nested")

	default:
		return decl{}, errorf(file, line, "unknown directive %q", fields[0])
	}
}

// parseDef handles `def name : A -> B -> C`. The arity is the arrow count;
// the final segment is the result type. Type names are currently
// declarative only.
func parseDef(file string, line int, text string) (decl, error) {
	name, rest, ok := splitHeader(text, "def")
	if !ok {
		return decl{}, errorf(file, line, "expected `def <name> : <signature>`, got %q", text)
	}
	if !identRe.MatchString(name) {
		return decl{}, errorf(file, line, "invalid transformation name %q", name)
	}
	segments := strings.Split(rest, "->")
	if rest == "" || len(segments) < 2 {
		return decl{}, errorf(file, line, "transformation %q needs an arrow signature", name)
	}
	for _, seg := range segments {
		if !identRe.MatchString(strings.TrimSpace(seg)) {
			return decl{}, errorf(file, line, "invalid type %q in signature of %q", strings.TrimSpace(seg), name)
		}
	}
	return decl{kind: declDef, line: line, name: name, arity: len(segments) - 1}, nil
}

// parseAxiom handles `axiom name : hard|soft (expr)`. The parenthesized
// body may be omitted when the rule name itself is a builtin predicate.
func parseAxiom(file string, line int, text string) (decl, error) {
	name, rest, ok := splitHeader(text, "axiom")
	if !ok {
		return decl{}, errorf(file, line, "expected `axiom <name> : <kind> (<expr>)`, got %q", text)
	}
	if !identRe.MatchString(name) {
		return decl{}, errorf(file, line, "invalid rule name %q", name)
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return decl{}, errorf(file, line, "rule %q is missing its kind", name)
	}
	kind := phisys.RuleKind(fields[0])
	if !kind.IsValid() {
		return decl{}, errorf(file, line, "rule %q has kind %q, want %q or %q",
			name, fields[0], phisys.KindHard, phisys.KindSoft)
	}

	body := strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
	if body != "" {
		inner, ok := stripOuterParens(body)
		if !ok {
			return decl{}, errorf(file, line, "rule %q body must be parenthesized", name)
		}
		body = inner
		if body == "" {
			return decl{}, errorf(file, line, "rule %q has an empty body", name)
		}
	}
	return decl{kind: declAxiom, line: line, name: name, ruleKind: kind, body: body}, nil
}

// splitHeader splits `<keyword> <name> : <rest>` and trims all parts.
func splitHeader(text, keyword string) (name, rest string, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(text, keyword))
	name, rest, found := strings.Cut(text, ":")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(name), strings.TrimSpace(rest), true
}

// stripComment removes a trailing // comment and surrounding whitespace.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// stripOuterParens removes one pair of enclosing parentheses, but only when
// the opening paren matches the final one, so `(a) == (b)` stays intact.
func stripOuterParens(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				// The opening paren closes early; the parens are not a
				// single enclosing pair.
				return strings.TrimSpace(s), true
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

// build applies parsed files to a system: first every module block is
// defined (re-opening extends), then declarations are wired in source order.
func build(sys *phisys.System, files []*fileAST) error {
	for _, f := range files {
		for _, mb := range f.modules {
			if _, err := sys.Module(mb.name); err == nil {
				continue
			}
			if _, err := sys.DefineModule(mb.name); err != nil {
				return fmt.Errorf("%s:%d: %w", f.name, mb.line, err)
			}
		}
	}

	for _, f := range files {
		for _, mb := range f.modules {
			m, err := sys.Module(mb.name)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", f.name, mb.line, err)
			}
			for _, d := range mb.decls {
				if err := applyDecl(m, d); err != nil {
					return fmt.Errorf("%s:%d: %w", f.name, d.line, err)
				}
			}
		}
	}
	return nil
}

func applyDecl(m *phisys.Module, d decl) error {
	switch d.kind {
	case declImport:
		return m.AddImport(d.name)
	case declData:
		return m.AddGenerator(phisys.Generator{Name: d.name})
	case declDef:
		return m.DeclareTransformation(d.name, d.arity)
	case declAxiom:
		pred, err := resolvePredicate(d)
		if err != nil {
			return err
		}
		return m.AddRule(phisys.Rule{
			ID:        d.name,
			Kind:      d.ruleKind,
			Predicate: pred,
			Module:    m.Name(),
		})
	}
	return fmt.Errorf("unhandled declaration kind %d", d.kind)
}

// resolvePredicate binds an axiom body. A body naming a builtin predicate
// takes it directly; an absent body falls back to the rule's own name; any
// other body compiles as a constraint expression.
func resolvePredicate(d decl) (phisys.Predicate, error) {
	if d.body == "" {
		pred, ok := phiexpr.Builtin(d.name)
		if !ok {
			return nil, fmt.Errorf("rule %q has no body and names no builtin predicate", d.name)
		}
		return pred, nil
	}
	if pred, ok := phiexpr.Builtin(d.body); ok {
		return pred, nil
	}
	pred, err := phiexpr.New(d.body)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", d.name, err)
	}
	return pred, nil
}
