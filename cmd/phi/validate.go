// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"philang/pkg/phisys"
	"philang/pkg/validate"

	"github.com/spf13/cobra"
)

var (
	validateModule string
	showTrail      bool
)

// validateCmd runs one transformation invocation through the validation
// loop and reports the verdict. A rejection exits non-zero.
var validateCmd = &cobra.Command{
	Use:   "validate <transformation> [operands...]",
	Short: "Validate a transformation invocation",
	Long: `Invoke a transformation in a module and evaluate every rule the module
declares or inherits against the outcome. Hard violations reject the
invocation; soft violations are deactivated for this invocation only.

Operands are numbers or JSON matrices:

  phi validate divide 10 2 --module Finance
  phi validate mat_multiply '[[1,2],[3,4]]' '[[0,1],[1,0]]' --module MatrixAlg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(nil)
		if err != nil {
			return err
		}

		module := validateModule
		if module == "" {
			module = prog.defaultModule()
		}
		if module == "" {
			return errors.New("no module given and the manifest names no default_module")
		}

		operands, err := parseOperands(args[1:])
		if err != nil {
			return fmt.Errorf("parsing operands: %w", err)
		}

		v := validate.New(prog.sys, validate.WithMaxProbeDepth(prog.probeDepth()))
		verdict, err := v.Validate(module, args[0], operands)
		if err != nil {
			return domainError(err, "validate invocation")
		}

		renderVerdict(cmd, verdict, showTrail || cfg.Validation.Trail || verbose)

		if verdict.Status != validate.StatusAccept {
			return &ExitError{Code: 1}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateModule, "module", "m", "", "module to invoke from (default: manifest default_module)")
	validateCmd.Flags().BoolVar(&showTrail, "trail", false, "print the full decision trail")
}

// parseOperands converts CLI arguments into values: integers and floats
// become numbers, [[...]] literals become matrices, everything else stays a
// string.
func parseOperands(args []string) ([]phisys.Value, error) {
	operands := make([]phisys.Value, len(args))
	for i, arg := range args {
		v, err := parseOperand(arg)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i+1, err)
		}
		operands[i] = v
	}
	return operands, nil
}

func parseOperand(arg string) (phisys.Value, error) {
	if n, err := strconv.ParseFloat(arg, 64); err == nil {
		return n, nil
	}
	if strings.HasPrefix(strings.TrimSpace(arg), "[") {
		var rows [][]float64
		if err := json.Unmarshal([]byte(arg), &rows); err != nil {
			return nil, fmt.Errorf("invalid matrix literal %q: %w", arg, err)
		}
		return phisys.Matrix(rows), nil
	}
	return arg, nil
}
