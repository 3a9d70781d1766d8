// Package cel evaluates CEL expressions against a loaded document. The
// document is bound to the variable "_", so expressions read like
// "_.items.filter(x, x.active)" or "size(_.records)".
package cel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"
)

// Evaluator compiles and evaluates CEL expressions against document data.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the standard extension libraries
// enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
}

// Evaluate compiles expr, runs it with doc bound to "_", and converts the
// result to native Go values.
func (e *Evaluator) Evaluate(expr string, doc any) (any, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	result, _, err := prg.Eval(map[string]any{"_": doc})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}

	converted := toGo(result)
	if refVal, ok := converted.(ref.Val); ok {
		converted = refVal.Value()
	}
	return converted, nil
}

// Functions returns the callable functions and macros of the environment,
// formatted one per line as "name(args) -> result".
func (e *Evaluator) Functions() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 100)

	for _, fn := range e.env.Functions() {
		if isOperator(fn.Name()) {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			entry := usageFromOverload(fn.Name(), o.ArgTypes(), o.ResultType(), o.IsMemberFunction())
			if seen[entry] {
				continue
			}
			seen[entry] = true
			out = append(out, entry)
		}
	}
	for _, m := range e.env.Macros() {
		name := m.Function()
		if isOperator(name) || seen[name+"()"] {
			continue
		}
		seen[name+"()"] = true
		out = append(out, name+"()")
	}

	sort.Strings(out)
	return out
}

// toGo converts CEL values to Go native types recursively.
func toGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	inner := val.Value()
	switch iv := inner.(type) {
	case []ref.Val:
		out := make([]any, len(iv))
		for i, elem := range iv {
			out[i] = toGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(iv))
		for i, elem := range iv {
			out[i] = convertElement(elem)
		}
		return out
	case map[string]any:
		return convertMapValues(iv)
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(iv))
		for k, v := range iv {
			out[fmt.Sprintf("%v", k.Value())] = toGo(v)
		}
		return out
	}
	return inner
}

func convertElement(elem any) any {
	switch e := elem.(type) {
	case ref.Val:
		return toGo(e)
	case map[string]any:
		return convertMapValues(e)
	case []any:
		out := make([]any, len(e))
		for i, inner := range e {
			out[i] = convertElement(inner)
		}
		return out
	default:
		return elem
	}
}

func convertMapValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertElement(v)
	}
	return out
}

// isOperator filters operator-style internal declarations out of listings.
func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	return strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_")
}

func usageFromOverload(name string, params []*types.Type, result *types.Type, member bool) string {
	label := func(t *types.Type) string {
		if t == nil {
			return "any"
		}
		if n := t.DeclaredTypeName(); n != "" {
			return n
		}
		if n := t.TypeName(); n != "" {
			return n
		}
		return "any"
	}
	join := func(ts []*types.Type) string {
		parts := make([]string, len(ts))
		for i, t := range ts {
			parts[i] = label(t)
		}
		return strings.Join(parts, ", ")
	}

	var call string
	if member && len(params) > 0 {
		call = label(params[0]) + "." + name + "(" + join(params[1:]) + ")"
	} else {
		call = name + "(" + join(params) + ")"
	}
	if result != nil {
		call += " -> " + label(result)
	}
	return call
}
