// Package template renders text containing {{ statement }} holes. A
// statement is either a dice expression, which is rolled, or a name that is
// looked up in the caller's values or random tables.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dryack/gDiceTable/core/diag"
	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/dryack/gDiceTable/core/table"
)

// ErrorPlaceholder is emitted for a statement that could not be resolved
// when the Reporter chose to continue.
const ErrorPlaceholder = "<ERROR>"

var (
	// ErrUnresolved indicates a statement named neither a value nor a table.
	ErrUnresolved = errors.New("statement not in values or tables")
	// ErrTooManyPicks indicates an evaluation exceeded MaxPicks.
	ErrTooManyPicks = errors.New("too many table picks")
)

// maxNesting bounds table rows whose descriptions pick from other tables.
const maxNesting = 16

// MaxPicks bounds the table picks made by one evaluation, nested ones
// included.
const MaxPicks = 1000

type partKind int

const (
	partText partKind = iota
	partExpression
	partLookup
)

type part struct {
	kind partKind
	text string
	expr *dsl.Expression
}

// Template is a parsed template. It is immutable.
type Template struct {
	text  string
	parts []part
}

// Parse splits text into literal parts and statements.
func Parse(text string) (*Template, error) {
	doc, err := templateParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	t := &Template{text: text}
	for _, seg := range doc.Parts {
		switch {
		case seg.Text != nil:
			t.parts = append(t.parts, part{kind: partText, text: *seg.Text})
		case seg.Statement != nil:
			stmt := strings.TrimSpace(seg.Statement.Body)
			if expr, err := dsl.Parse(stmt); err == nil {
				t.parts = append(t.parts, part{kind: partExpression, text: stmt, expr: expr})
			} else {
				t.parts = append(t.parts, part{kind: partLookup, text: stmt})
			}
		}
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Text returns the source text.
func (t *Template) Text() string { return t.text }

func (t *Template) String() string { return t.text }

// Context supplies everything a template may refer to.
type Context struct {
	// Values are consulted before Tables. *dsl.Expression and dice.Dice
	// values are rolled; anything else is printed with fmt.
	Values map[string]any
	Tables table.Registry
	Source dice.Source
	// Reporter receives unresolved statements and evaluation errors. A nil
	// Reporter fails the evaluation.
	Reporter diag.Reporter
}

// Evaluate renders the template.
func (t *Template) Evaluate(ctx Context) (string, error) {
	if ctx.Source == nil {
		ctx.Source = dice.DefaultSource
	}
	if ctx.Reporter == nil {
		ctx.Reporter = diag.Raiser{}
	}
	r := &renderer{ctx: ctx, tracker: &diag.Tracker{}}
	var b strings.Builder
	if err := r.render(&b, t, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

type renderer struct {
	ctx     Context
	tracker *diag.Tracker
	picks   int
}

func (r *renderer) render(b *strings.Builder, t *Template, depth int) error {
	for _, p := range t.parts {
		switch p.kind {
		case partText:
			b.WriteString(p.text)
		case partExpression:
			v, err := p.expr.EvaluateWith(r.ctx.Source)
			if err != nil {
				if err := r.fail(b, p.text, err); err != nil {
					return err
				}
				continue
			}
			b.WriteString(v.String())
		case partLookup:
			if err := r.lookup(b, p.text, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) lookup(b *strings.Builder, name string, depth int) error {
	if v, ok := r.ctx.Values[name]; ok {
		s, err := formatValue(v, r.ctx.Source)
		if err != nil {
			return r.fail(b, name, err)
		}
		b.WriteString(s)
		return nil
	}

	if _, ok := r.ctx.Tables[name]; !ok {
		return r.fail(b, name, fmt.Errorf("%w: %q", ErrUnresolved, name))
	}
	if depth >= maxNesting {
		return r.fail(b, name, fmt.Errorf("%w: table %q", table.ErrSubtableDepth, name))
	}
	if r.picks >= MaxPicks {
		return r.fail(b, name, fmt.Errorf("%w: limit is %d", ErrTooManyPicks, MaxPicks))
	}
	r.picks++
	pick, err := r.ctx.Tables.Pick(name, r.ctx.Source)
	if err != nil {
		return r.fail(b, name, err)
	}

	r.tracker.Push(name)
	defer r.tracker.Pop(1)
	for i, row := range pick.Rows {
		if i > 0 {
			b.WriteByte(' ')
		}
		nested, err := Parse(row.Description)
		if err != nil {
			if err := r.fail(b, name, err); err != nil {
				return err
			}
			continue
		}
		if err := r.render(b, nested, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// fail reports err and, when the reporter lets rendering continue, writes
// the placeholder.
func (r *renderer) fail(b *strings.Builder, statement string, err error) error {
	r.tracker.Push(statement)
	defer r.tracker.Pop(1)
	if err := r.ctx.Reporter.Report(r.tracker, err); err != nil {
		return err
	}
	b.WriteString(ErrorPlaceholder)
	return nil
}

func formatValue(v any, src dice.Source) (string, error) {
	switch v := v.(type) {
	case *dsl.Expression:
		n, err := v.EvaluateWith(src)
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case dice.Dice:
		return fmt.Sprint(v.Roll(src).Result()), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return fmt.Sprint(v), nil
}
