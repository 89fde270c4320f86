package template

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mockhub/mockhub/internal/id"
)

// exprEvaluator implements the third rendering pass: remaining {{...}}
// placeholders are evaluated as expr-lang expressions over the request
// context plus a small set of helper functions. Compiled programs are cached
// across requests.
type exprEvaluator struct {
	gen      *Generator
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newExprEvaluator(gen *Generator) *exprEvaluator {
	return &exprEvaluator{
		gen:      gen,
		programs: make(map[string]*vm.Program),
	}
}

// placeholderPattern scans any surviving {{ ... }} marker.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// pass evaluates surviving placeholders. The pass only engages when
// delimiter markers remain, and it fails closed: if any placeholder cannot
// be compiled or evaluated, the input text is returned unchanged so a
// malformed template never breaks response delivery.
func (ev *exprEvaluator) pass(text string, ctx *Context, reqID string, log *slog.Logger) string {
	if !strings.Contains(text, "{{") || !strings.Contains(text, "}}") {
		return text
	}

	env := ev.buildEnv(ctx, reqID)
	failed := false

	result := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		if failed {
			return match
		}
		expression := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])
		value, resolved, err := ev.eval(expression, env)
		if err != nil {
			log.Debug("template expression fallback", "expr", expression, "error", err)
			failed = true
			return match
		}
		if !resolved {
			// A nil result means the expression referenced data the request
			// does not carry; the placeholder stays literal.
			return match
		}
		return value
	})

	if failed {
		return text
	}
	return result
}

func (ev *exprEvaluator) eval(expression string, env map[string]any) (string, bool, error) {
	program, err := ev.compile(expression)
	if err != nil {
		return "", false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return "", false, err
	}
	if out == nil {
		return "", false, nil
	}
	return stringify(out), true, nil
}

// compile returns a cached program for the expression, compiling on first
// use. Only successful compilations are cached.
func (ev *exprEvaluator) compile(expression string) (*vm.Program, error) {
	ev.mu.RLock()
	program, ok := ev.programs[expression]
	ev.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}

	ev.mu.Lock()
	ev.programs[expression] = program
	ev.mu.Unlock()
	return program, nil
}

// buildEnv exposes the request context and helper functions to expressions.
func (ev *exprEvaluator) buildEnv(ctx *Context, reqID string) map[string]any {
	request := map[string]any{
		"id":     reqID,
		"method": "",
		"path":   "",
	}
	if ctx != nil {
		request["method"] = ctx.Method
		request["path"] = ctx.Path
		// map[string]any so a missing key evaluates to nil and the
		// placeholder survives, instead of collapsing to "".
		request["params"] = anyMap(ctx.Params)
		request["query"] = anyMap(ctx.flatQuery())
		request["headers"] = anyMap(ctx.flatHeaders())
		request["body"] = ctx.Body
	}

	return map[string]any{
		"request": request,
		"now": func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
		"timestamp": func() int64 {
			return time.Now().Unix()
		},
		"uuid": func() string {
			return id.New()
		},
		"guid": func() string {
			return id.New()
		},
		"random_int": func(min, max int) int {
			return ev.gen.rnd.Between(min, max)
		},
		"random_string": func(n int) string {
			return ev.gen.RandomString(n)
		},
	}
}

func anyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// stringify renders an evaluated expression result as output text.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
