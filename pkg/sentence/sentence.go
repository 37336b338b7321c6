// Package sentence implements the recursive block/sentence parser that
// turns a source file into an untyped syntax tree of nested blocks and
// lines.
package sentence

import (
	"strings"

	"github.com/mcpplang/mcpp/pkg/diagnostics"
)

// Kind classifies a Sentence by its specifier's first token.
type Kind int

const (
	// Plain is an anonymous or unclassified block.
	Plain Kind = iota
	// Fn is a named function definition ("fn <name> { ... }").
	Fn
	// If is a conditionally executed block ("if <expr> { ... }").
	If
	// While is reserved but not implemented.
	While
	// For is reserved but not implemented.
	For
)

func classify(specifierTokens []string) Kind {
	if len(specifierTokens) == 0 {
		return Plain
	}
	switch specifierTokens[0] {
	case "fn":
		return Fn
	case "if":
		return If
	case "while":
		return While
	case "for":
		return For
	default:
		return Plain
	}
}

// LineKind discriminates a Line's variant.
type LineKind int

const (
	LineComment LineKind = iota
	LineFormula
	LineSentence
	// LineParseError marks a nested sentence that failed to parse. Per
	// the propagation policy, a parse error aborts only the
	// nested sentence; the enclosing sentence keeps this placeholder and
	// continues with its sibling lines. The compiler turns it into a
	// skip comment.
	LineParseError
)

// Line is one entry inside a Sentence's body: a comment, a formula, or a
// nested Sentence.
type Line struct {
	Kind     LineKind
	Text     string // Comment or Formula text.
	Sentence *Sentence
}

// Sentence is one brace-delimited block with an optional specifier
// prefix.
type Sentence struct {
	SpecifierTokens []string
	Kind            Kind
	Name            string
	Lines           []Line
}

// Guard returns the `if` sentence's guard expression: its specifier
// tokens after "if", rejoined with spaces.
func (s *Sentence) Guard() string {
	if len(s.SpecifierTokens) < 2 {
		return ""
	}
	return strings.Join(s.SpecifierTokens[1:], " ")
}

// Parse parses source into a Sentence tree using a default name
// generator.
func Parse(source string) (*Sentence, error) {
	return NewParser(NewNameGenerator(0)).Parse(source)
}

// Parser holds the configuration needed to parse source text; its only
// configurable piece is the random name generator, so tests can pin
// generated names with a fixed seed.
type Parser struct {
	names *NameGenerator
}

// NewParser returns a Parser that generates anonymous sentence names
// with gen.
func NewParser(gen *NameGenerator) *Parser {
	return &Parser{names: gen}
}

// Parse parses a complete source string whose outermost form is a
// brace-balanced block.
func (p *Parser) Parse(source string) (*Sentence, error) {
	return p.parseSentence(strings.TrimSpace(source))
}

// parseSentence splits a specifier from its body, validates the
// braces, classifies and names the sentence, then recurses into the body.
func (p *Parser) parseSentence(text string) (*Sentence, error) {
	brace := strings.IndexByte(text, '{')
	if brace < 0 {
		return nil, diagnostics.New(diagnostics.SentenceHasNoStartIdentifier)
	}
	specifierText := strings.TrimSpace(text[:brace])
	rest := strings.TrimSpace(text[brace+1:])
	if !strings.HasSuffix(rest, "}") {
		return nil, diagnostics.New(diagnostics.SentenceDoesntEndWithEndSpecifier)
	}
	inside := rest[:len(rest)-1]

	var specifierTokens []string
	if specifierText != "" {
		specifierTokens = strings.Fields(specifierText)
	}
	kind := classify(specifierTokens)

	name, err := p.sentenceName(kind, specifierTokens)
	if err != nil {
		return nil, err
	}

	lines, err := p.parseLines(inside)
	if err != nil {
		return nil, err
	}

	return &Sentence{SpecifierTokens: specifierTokens, Kind: kind, Name: name, Lines: lines}, nil
}

func (p *Parser) sentenceName(kind Kind, specifierTokens []string) (string, error) {
	switch kind {
	case Fn:
		if len(specifierTokens) < 2 {
			return "", diagnostics.New(diagnostics.UnnamedFunction)
		}
		return specifierTokens[1], nil
	case Plain:
		return p.names.Anonymous(), nil
	default:
		// if/while/for: the specifier was recognized but the sentence
		// itself carries no name.
		return p.names.Classified(), nil
	}
}

// parseLines normalizes the block's inside text and splits it into
// Comment, Formula, and nested-Sentence lines.
func (p *Parser) parseLines(inside string) ([]Line, error) {
	normalized := normalizeClosingBraces(inside)

	var lines []Line
	for _, segment := range splitStatements(normalized) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		switch {
		case strings.HasPrefix(segment, "#"):
			lines = append(lines, Line{Kind: LineComment, Text: segment})
		case strings.HasSuffix(segment, "}"):
			child, err := p.parseSentence(segment)
			if err != nil {
				lines = append(lines, Line{Kind: LineParseError, Text: err.Error()})
				continue
			}
			lines = append(lines, Line{Kind: LineSentence, Sentence: child})
		default:
			lines = append(lines, Line{Kind: LineFormula, Text: segment})
		}
	}
	return lines, nil
}

// normalizeClosingBraces replaces each '}' with "};" so a closing brace
// always terminates the statement it closes, without disturbing nested
// braces (they are recursed into once their segment is isolated).
func normalizeClosingBraces(s string) string {
	return strings.ReplaceAll(s, "}", "};")
}

// splitStatements splits on ';' while tracking brace depth, so a ';'
// that belongs to a nested sentence's formula does not prematurely end
// the outer segment.
func splitStatements(s string) []string {
	var segments []string
	var current strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '{':
			depth++
			current.WriteByte(ch)
			continue
		case '}':
			depth--
			current.WriteByte(ch)
			continue
		case ';':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteByte(ch)
	}
	if strings.TrimSpace(current.String()) != "" {
		segments = append(segments, current.String())
	}
	return segments
}
