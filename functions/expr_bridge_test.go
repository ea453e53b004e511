package functions

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/cellcalc/types"
)

func TestRegisterExprFunction(t *testing.T) {
	require.NoError(t, RegisterExprFunction(
		"celsius_to_fahrenheit", "Convert Celsius to Fahrenheit", 1, 1,
		"arg1 * 9 / 5 + 32"))
	defer Unregister("celsius_to_fahrenheit")

	ctx := newMockContext()
	result := mustCall(t, ctx, "celsius_to_fahrenheit", num(100))
	require.Equal(t, types.KindNumber, result.Kind())
	assert.Equal(t, 212.0, result.Number())
}

func TestRegisterExprFunctionArgsSlice(t *testing.T) {
	require.NoError(t, RegisterExprFunction(
		"arg_count", "Number of arguments", 0, -1, "len(args)"))
	defer Unregister("arg_count")

	ctx := newMockContext()
	result := mustCall(t, ctx, "arg_count", num(1), num(2), num(3))
	assert.Equal(t, 3.0, result.Number())
}

func TestRegisterExprFunctionCompileError(t *testing.T) {
	assert.Error(t, RegisterExprFunction("broken", "", 1, 1, "1 +"))
	_, exists := Get("broken")
	assert.False(t, exists)
}

func TestExprFunctionDereferencesArguments(t *testing.T) {
	require.NoError(t, RegisterExprFunction(
		"double_cell", "Double a value", 1, 1, "arg1 * 2"))
	defer Unregister("double_cell")

	ctx := newMockContext()
	ctx.set(0, 1, 1, types.NewNumber(21))
	ref := types.Reference{Sheet: 0, Start: types.CellAddr{Row: 1, Col: 1}, End: types.CellAddr{Row: 1, Col: 1}}

	result := mustCall(t, ctx, "double_cell", types.ReferenceArg(ref))
	assert.Equal(t, 42.0, result.Number())
}

func TestExprFunctionRuntimeFailureIsValueError(t *testing.T) {
	require.NoError(t, RegisterExprFunction(
		"bad_at_runtime", "Indexes past the end", 1, 1, "args[5]"))
	defer Unregister("bad_at_runtime")

	ctx := newMockContext()
	result := mustCall(t, ctx, "bad_at_runtime", num(1))
	require.True(t, result.IsError())
	assert.Equal(t, types.ErrValue, result.ErrKind())
}

func TestExprEnvironmentExposesWorksheetFunctions(t *testing.T) {
	ctx := newMockContext()
	env := ExprEnvironment(ctx, map[string]interface{}{"x": 2.5})

	result, err := expr.Eval("SUM(1.0, 2.0) + x", env)
	require.NoError(t, err)
	assert.Equal(t, 5.5, result)

	result, err = expr.Eval(`countif(3.0, ">2")`, env)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result)
}

func TestExprFunctionOptionsCompile(t *testing.T) {
	ctx := newMockContext()
	opts := append([]expr.Option{expr.Env(map[string]interface{}{})},
		ExprFunctionOptions(ctx)...)
	opts = append(opts, expr.AllowUndefinedVariables())

	program, err := expr.Compile("roundup(2.1, 0.0)", opts...)
	require.NoError(t, err)

	out, err := expr.Run(program, ExprEnvironment(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, 3.0, out)
}

func TestExprWrapperSurfacesWorksheetErrors(t *testing.T) {
	ctx := newMockContext()
	env := ExprEnvironment(ctx, nil)

	// MOD with a zero divisor yields #DIV/0!, which crosses the bridge as
	// a host error.
	_, err := expr.Eval("mod(7.0, 0.0)", env)
	assert.Error(t, err)
}
