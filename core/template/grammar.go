package template

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// document is the top-level structure of a template
type document struct {
	Parts []*segment `parser:"@@*"`
}

// segment is either literal text or a {{ statement }}
type segment struct {
	Text      *string    `parser:"  @Text"`
	Statement *statement `parser:"| @@"`
}

type statement struct {
	Body string `parser:"Open @Body? Close"`
}

// templateLexer switches into the Statement state between "{{" and "}}".
var templateLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Open", Pattern: `\{\{`, Action: lexer.Push("Statement")},
		{Name: "Text", Pattern: `(?:[^{]|\{[^{]|\{$)+`},
	},
	"Statement": {
		{Name: "Close", Pattern: `\}\}`, Action: lexer.Pop()},
		{Name: "Body", Pattern: `(?:[^}]|\}[^}])+`},
	},
})

var templateParser = participle.MustBuild[document](
	participle.Lexer(templateLexer),
)
