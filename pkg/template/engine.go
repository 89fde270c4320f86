// Package template renders response body templates against per-request
// context and synthetic data generators.
//
// Rendering runs three ordered passes over the template text:
//
//  1. context substitution: request.params/query/headers/body references
//     plus request.id|method|path metadata
//  2. synthetic values: faker.<expr> and $<expr> references and the bare
//     keywords now, nowUnix, nowMs, uuid, guid, today
//  3. expression evaluation: any surviving {{...}} placeholders are
//     evaluated as expressions over the same context; this pass fails
//     closed, returning its input unchanged on any error
//
// References that cannot be resolved in the first two passes are left literally in
// place. A template with no recognizable placeholder renders byte-for-byte
// unchanged.
package template

import (
	"log/slog"
	"regexp"
	"strconv"

	"github.com/mockhub/mockhub/internal/id"
	"github.com/mockhub/mockhub/internal/rng"
	"github.com/mockhub/mockhub/pkg/logging"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Engine renders templates. It is stateless apart from the shared random
// source and the expression compile cache, and safe for concurrent use.
type Engine struct {
	gen  *Generator
	log  *slog.Logger
	expr *exprEvaluator
}

// New creates a template engine drawing random values from rnd.
func New(rnd *rng.Source) *Engine {
	if rnd == nil {
		rnd = rng.New()
	}
	gen := NewGenerator(rnd)
	return &Engine{
		gen:  gen,
		log:  logging.Nop(),
		expr: newExprEvaluator(gen),
	}
}

// SetLogger sets the operational logger used to report template fallbacks.
func (e *Engine) SetLogger(log *slog.Logger) {
	if log != nil {
		e.log = log
	}
}

// Generator exposes the engine's synthetic value generator.
func (e *Engine) Generator() *Generator {
	return e.gen
}

var (
	// {{request.(params|query|headers).key}}; keys may contain dashes for
	// header names but never dots, so a dotted reference outside body is
	// left for the expression pass.
	ctxFieldPattern = regexp.MustCompile(`\{\{\s*request\.(params|query|headers)\.([A-Za-z0-9_][A-Za-z0-9_\-]*)\s*\}\}`)

	// {{request.body.key}}; the key may be dotted for nested fields.
	ctxBodyPattern = regexp.MustCompile(`\{\{\s*request\.body\.([A-Za-z0-9_][A-Za-z0-9_.\-]*)\s*\}\}`)

	// {{request.id}}, {{request.method}}, {{request.path}}
	ctxMetaPattern = regexp.MustCompile(`\{\{\s*request\.(id|method|path)\s*\}\}`)

	// {{faker.category.method}} with optional argument list
	fakerRefPattern = regexp.MustCompile(`\{\{\s*faker\.([A-Za-z_][A-Za-z0-9_.]*(?:\([^)]*\))?)\s*\}\}`)

	// {{$variable}} with optional argument list
	dynamicRefPattern = regexp.MustCompile(`\{\{\s*\$(\w+(?:\([^)]*\))?)\s*\}\}`)

	// Bare keywords
	keywordPattern = regexp.MustCompile(`\{\{\s*(now|nowUnix|nowMs|uuid|guid|today)\s*\}\}`)
)

// Render turns a template plus request context into final response text.
// It never fails: unresolved references stay literal and an unparsable
// expression pass falls back to the text from before that pass.
func (e *Engine) Render(tmpl string, ctx *Context) string {
	if tmpl == "" {
		return tmpl
	}
	reqID := id.RequestID()

	out := e.contextPass(tmpl, ctx, reqID)
	out = e.syntheticPass(out)
	return e.expr.pass(out, ctx, reqID, e.log)
}

// contextPass substitutes structured request references. Keys absent from
// their source map leave the placeholder untouched.
func (e *Engine) contextPass(tmpl string, ctx *Context, reqID string) string {
	if ctx == nil {
		return tmpl
	}

	out := ctxFieldPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		m := ctxFieldPattern.FindStringSubmatch(match)
		location, key := m[1], m[2]
		switch location {
		case "params":
			if v, ok := ctx.Params[key]; ok {
				return v
			}
		case "query":
			if v, ok := ctx.queryValue(key); ok {
				return v
			}
		case "headers":
			if v, ok := ctx.headerValue(key); ok {
				return v
			}
		}
		return match
	})

	out = ctxBodyPattern.ReplaceAllStringFunc(out, func(match string) string {
		key := ctxBodyPattern.FindStringSubmatch(match)[1]
		if v, ok := bodyValue(ctx.Body, key); ok {
			return v
		}
		return match
	})

	return ctxMetaPattern.ReplaceAllStringFunc(out, func(match string) string {
		switch ctxMetaPattern.FindStringSubmatch(match)[1] {
		case "id":
			return reqID
		case "method":
			return ctx.Method
		case "path":
			return ctx.Path
		}
		return match
	})
}

// syntheticPass substitutes faker references, dynamic variables and bare
// keywords. Unknown expressions stay literal.
func (e *Engine) syntheticPass(tmpl string) string {
	out := fakerRefPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		expr := fakerRefPattern.FindStringSubmatch(match)[1]
		if v, ok := e.gen.Faker(expr); ok {
			return v
		}
		return match
	})

	out = dynamicRefPattern.ReplaceAllStringFunc(out, func(match string) string {
		expr := dynamicRefPattern.FindStringSubmatch(match)[1]
		if v, ok := e.gen.Dynamic(expr); ok {
			return v
		}
		return match
	})

	return keywordPattern.ReplaceAllStringFunc(out, func(match string) string {
		if v, ok := e.gen.Keyword(keywordPattern.FindStringSubmatch(match)[1]); ok {
			return v
		}
		return match
	})
}

// bodyValue extracts a (possibly nested) field from the parsed request body
// using a JSONPath lookup. Composite values are re-encoded as JSON.
func bodyValue(body any, key string) (string, bool) {
	if body == nil {
		return "", false
	}
	expr, err := jp.ParseString("$." + key)
	if err != nil {
		return "", false
	}
	results := expr.Get(body)
	if len(results) == 0 {
		return "", false
	}
	return formatValue(results[0]), true
}

// formatValue renders a body value as template output text.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		// Objects and arrays keep their JSON shape.
		return oj.JSON(val)
	}
}
