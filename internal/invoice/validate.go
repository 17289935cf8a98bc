package invoice

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes (E200-E209)
const (
	ErrCodeInvalidField = "E201" // value does not satisfy the schema
	ErrCodeSchema       = "E202" // invoice could not be encoded for checking
)

// FieldError is a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validator checks invoices against the embedded CUE schema.
// It is safe for concurrent use.
type Validator struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the invoice schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile invoice schema: %w", err)
	}
	def := root.LookupPath(cue.ParsePath("#Invoice"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Invoice: %w", err)
	}
	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate checks the given fields of inv and returns every violation found.
// With no fields the whole invoice is checked. Optional fields that are not
// set on inv are skipped.
func (v *Validator) Validate(inv *Invoice, fields ...Field) []FieldError {
	v.mu.Lock()
	defer v.mu.Unlock()

	doc, err := v.encode(inv)
	if err != nil {
		return []FieldError{{Field: "invoice", Message: err.Error(), Code: ErrCodeSchema}}
	}
	unified := v.schema.Unify(doc)

	if len(fields) == 0 {
		return collect("invoice", unified.Validate(cue.Concrete(true)))
	}

	var errs []FieldError
	for _, f := range fields {
		if !f.present(inv) {
			continue
		}
		sub := unified.LookupPath(cue.ParsePath(f.String()))
		if !sub.Exists() {
			errs = append(errs, FieldError{Field: f.String(), Message: "field is required", Code: ErrCodeInvalidField})
			continue
		}
		errs = append(errs, collect(f.String(), sub.Validate(cue.Concrete(true)))...)
	}
	return errs
}

// encode turns inv into a CUE value through its JSON form, so the schema
// sees exactly what the API would receive.
func (v *Validator) encode(inv *Invoice) (cue.Value, error) {
	c := *inv
	c.Details.Items = append([]LineItem{}, inv.Details.Items...)
	c.ClampAmounts()
	data, err := json.Marshal(&c)
	if err != nil {
		return cue.Value{}, fmt.Errorf("encode invoice: %w", err)
	}
	expr, err := cuejson.Extract("invoice.json", data)
	if err != nil {
		return cue.Value{}, fmt.Errorf("extract invoice: %w", err)
	}
	doc := v.ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("build invoice: %w", err)
	}
	return doc, nil
}

// collect flattens a CUE error list into FieldErrors, dropping duplicates.
// Errors without a path are attributed to fallback.
func collect(fallback string, err error) []FieldError {
	if err == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []FieldError
	for _, e := range cueerrors.Errors(err) {
		path := strings.Join(e.Path(), ".")
		if path == "" {
			path = fallback
		}
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		key := path + "\x00" + msg
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, FieldError{Field: path, Message: msg, Code: ErrCodeInvalidField})
	}
	return out
}
