package functions

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gridkit/cellcalc/logger"
	"github.com/gridkit/cellcalc/types"
)

// RegisterExprFunction compiles an expr-lang source once and registers it
// as a custom worksheet function. Inside the expression the arguments are
// available as the slice "args" and as "arg1", "arg2", ... (realized
// scalars; reference arguments dereference first). A runtime failure of
// the program surfaces as #VALUE! rather than a host error.
func RegisterExprFunction(name, description string, minArgs, maxArgs int, src string) error {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("function %s: compile %q: %w", name, src, err)
	}
	return Register(FunctionSpec{
		Name:        name,
		Category:    CategoryCustom,
		Description: description,
		MinArgs:     minArgs,
		MaxArgs:     maxArgs,
		ThreadSafe:  true,
		Fn:          exprEntry(name, program),
	})
}

func exprEntry(name string, program *vm.Program) EntryFunc {
	return func(ctx FunctionContext, args []types.ArgValue) types.Value {
		env := make(map[string]interface{}, len(args)+1)
		plain := make([]interface{}, len(args))
		for i, arg := range args {
			v, ek := realizeOperand(ctx, arg)
			if ek != types.ErrNone {
				return types.NewError(ek)
			}
			plain[i] = valueToAny(v)
			env[fmt.Sprintf("arg%d", i+1)] = plain[i]
		}
		env["args"] = plain

		out, err := expr.Run(program, env)
		if err != nil {
			logger.Warn("custom function %s failed: %v", name, err)
			return types.NewError(types.ErrValue)
		}
		return ValueFromAny(out)
	}
}

// ExprFunctionOptions exposes every registered worksheet function to an
// expr-lang compilation, so host expressions can call them by name. Each
// function is also bound under its uppercase spelling. Parameters cross
// the boundary as plain Go values and come back the same way; a function
// returning an error value surfaces it as a host error so the expression
// aborts instead of computing with an error string.
func ExprFunctionOptions(ctx FunctionContext) []expr.Option {
	all := ListAll()
	options := make([]expr.Option, 0, 2*len(all))
	for name, spec := range all {
		wrapped := wrapForExpr(ctx, spec)
		options = append(options, expr.Function(name, wrapped))
		if upper := strings.ToUpper(name); upper != name {
			options = append(options, expr.Function(upper, wrapped))
		}
	}
	return options
}

// ExprEnvironment builds a run environment matching ExprFunctionOptions,
// merged over the caller's data bindings.
func ExprEnvironment(ctx FunctionContext, data map[string]interface{}) map[string]interface{} {
	env := make(map[string]interface{}, len(data)+2*len(ListAll()))
	for k, v := range data {
		env[k] = v
	}
	for name, spec := range ListAll() {
		wrapped := wrapForExpr(ctx, spec)
		env[name] = wrapped
		env[strings.ToUpper(name)] = wrapped
	}
	return env
}

func wrapForExpr(ctx FunctionContext, spec *FunctionSpec) func(params ...interface{}) (interface{}, error) {
	return func(params ...interface{}) (interface{}, error) {
		if err := spec.ValidateArgCount(len(params)); err != nil {
			return nil, err
		}
		args := make([]types.ArgValue, len(params))
		for i, p := range params {
			args[i] = types.ScalarArg(ValueFromAny(p))
		}
		result := spec.Fn(ctx, args)
		if result.IsError() {
			return nil, fmt.Errorf("function %s returned %s", spec.Name, result.ErrKind().String())
		}
		return valueToAny(result), nil
	}
}
