// Package parser builds an ast.Tree from the lexer's token stream.
//
// The grammar is the usual three-tier precedence: alternation binds
// loosest, then concatenation, then postfix quantifiers bind tightest to
// the atom immediately to their left. There is no separate "Sequence" AST
// kind, so a concatenation is just the ordered Children list of whichever
// node contains it (Root or a KindGroup), and an alternation's branches
// are synthetic non-capturing KindGroup nodes wrapping each arm's own
// concatenation.
package parser

import (
	"github.com/coregx/rex/internal/ast"
	"github.com/coregx/rex/internal/lexer"
)

// Parser consumes a lexer.Lexer's tokens and assembles an ast.Tree.
// Capturing groups are numbered 1, 2, 3... in the order their opening '('
// is encountered.
type Parser struct {
	lex  *lexer.Lexer
	tok  lexer.Token
	tree *ast.Tree

	nextGroup int
}

// Parse parses pattern into a complete ast.Tree. Grammar-level failures
// return a *SyntaxError; when the failure originates in the lexer, the
// lexer's own *lexer.SyntaxError is returned as-is.
func Parse(pattern string) (*ast.Tree, error) {
	p := &Parser{
		lex:       lexer.New(pattern),
		tree:      ast.NewTree(),
		nextGroup: 1,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	children, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EndOfPattern {
		return nil, newSyntaxError(p.tok.Pos, "unexpected %q", p.tok)
	}

	root := p.tree.Add(ast.Node{Kind: ast.KindRoot, Min: 1, Max: 1, GroupIndex: ast.NoGroup, Children: children})
	p.tree.SetRoot(root)
	return p.tree, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseAlternation parses a `branch (| branch)*` production and returns the
// Children list for whatever node contains it: the branches themselves when
// there is exactly one (no alternation present at this level), or a single
// index naming a freshly built KindAlternation node otherwise.
func (p *Parser) parseAlternation() ([]int, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.Alt {
		return first, nil
	}

	branches := []int{p.addBranch(first)}
	for p.tok.Kind == lexer.Alt {
		if err := p.advance(); err != nil {
			return nil, err
		}
		seq, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, p.addBranch(seq))
	}

	alt := p.tree.Add(ast.NewAlternation(branches))
	return []int{alt}, nil
}

// addBranch wraps a branch's concatenation in a synthetic non-capturing
// group, the only way the seven-kind node model has to give an alternation
// arm a single child index.
func (p *Parser) addBranch(seq []int) int {
	return p.tree.Add(ast.NewGroup(false, ast.NoGroup, seq))
}

// parseConcat parses a sequence of quantified atoms, stopping at `|`, `)`,
// or end of pattern. An empty sequence (e.g. the branch between two `|`s in
// `a||b`, or an empty group `()`) is legal and yields an empty element: a
// zero-width KindElement-less match, represented here as no children at
// all.
func (p *Parser) parseConcat() ([]int, error) {
	var seq []int
	for p.tok.Kind != lexer.Alt && p.tok.Kind != lexer.GroupClose && p.tok.Kind != lexer.EndOfPattern {
		idx, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		seq = append(seq, idx)
	}
	return seq, nil
}

// parseQuantified parses one atom and an optional trailing `* + ? {m,n}`.
// A quantifier with no preceding atom (e.g. a pattern starting with `*`) is
// a syntax error: this core has no "repeat the empty string" operator.
func (p *Parser) parseQuantified() (int, error) {
	pos := p.tok.Pos
	idx, err := p.parseAtom()
	if err != nil {
		return 0, err
	}

	var min, max int
	switch p.tok.Kind {
	case lexer.QuantStar:
		min, max = 0, ast.Unbounded
	case lexer.QuantPlus:
		min, max = 1, ast.Unbounded
	case lexer.QuantQMark:
		min, max = 0, 1
	case lexer.QuantBounded:
		min, max = p.tok.Min, p.tok.Max
	default:
		return idx, nil
	}

	node := p.tree.At(idx)
	if node.Kind == ast.KindAnchor {
		return 0, newSyntaxError(pos, "anchors cannot be quantified")
	}
	node.Min, node.Max = min, max
	if err := p.advance(); err != nil {
		return 0, err
	}
	return idx, nil
}

// parseAtom parses a single non-quantified unit: a literal, `.`, an
// anchor, a character class, an escaped class, or a parenthesized group.
func (p *Parser) parseAtom() (int, error) {
	tok := p.tok
	switch tok.Kind {
	case lexer.Literal:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.tree.Add(ast.NewElement(tok.Byte)), nil

	case lexer.Wildcard:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.tree.Add(ast.NewWildcard()), nil

	case lexer.StartAnchor:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.tree.Add(ast.NewAnchor(ast.AnchorStart)), nil

	case lexer.EndAnchor:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.tree.Add(ast.NewAnchor(ast.AnchorEnd)), nil

	case lexer.EscapedClass:
		if err := p.advance(); err != nil {
			return 0, err
		}
		set, negated := escapedClassSet(tok.EscapeKind)
		return p.tree.Add(ast.NewClass(set, negated)), nil

	case lexer.ClassOpen:
		return p.parseClass()

	case lexer.GroupOpen:
		return p.parseGroup(true)

	case lexer.NonCapturingOpen:
		return p.parseGroup(false)

	case lexer.QuantStar, lexer.QuantPlus, lexer.QuantQMark, lexer.QuantBounded:
		return 0, newSyntaxError(tok.Pos, "quantifier with nothing to repeat")

	case lexer.GroupClose:
		return 0, newSyntaxError(tok.Pos, "unmatched ')'")

	default:
		return 0, newSyntaxError(tok.Pos, "unexpected token %q", tok)
	}
}

// escapedClassSet maps a lexer.EscapeKind to its ByteSet and negation flag.
func escapedClassSet(k lexer.EscapeKind) (ast.ByteSet, bool) {
	switch k {
	case lexer.Digit:
		return ast.DigitClass(), false
	case lexer.NotDigit:
		return ast.DigitClass(), true
	case lexer.Word:
		return ast.WordClass(), false
	case lexer.NotWord:
		return ast.WordClass(), true
	case lexer.Space:
		return ast.SpaceClass(), false
	case lexer.NotSpace:
		return ast.SpaceClass(), true
	default:
		return ast.ByteSet{}, false
	}
}

// parseGroup parses the body of a `(...)` or `(?:...)` already positioned
// just past the opening token, assigns a 1-based GroupIndex for capturing
// groups in opening-paren order, and requires a matching `)`.
func (p *Parser) parseGroup(capturing bool) (int, error) {
	openPos := p.tok.Pos
	groupIndex := ast.NoGroup
	if capturing {
		groupIndex = p.nextGroup
		p.nextGroup++
	}
	if err := p.advance(); err != nil {
		return 0, err
	}

	children, err := p.parseAlternation()
	if err != nil {
		return 0, err
	}
	if p.tok.Kind != lexer.GroupClose {
		return 0, newSyntaxError(openPos, "unterminated group: expected ')'")
	}
	if err := p.advance(); err != nil {
		return 0, err
	}

	return p.tree.Add(ast.NewGroup(capturing, groupIndex, children)), nil
}

// parseClass parses a `[...]` already positioned at ClassOpen, building the
// union of any ClassRange/Literal/EscapedClass members it finds before the
// matching ClassClose. The ClassOpen token itself carries whether a
// leading '^' negates the whole class.
func (p *Parser) parseClass() (int, error) {
	openTok := p.tok
	if err := p.advance(); err != nil {
		return 0, err
	}

	var set ast.ByteSet
	for p.tok.Kind != lexer.ClassClose {
		if p.tok.Kind == lexer.EndOfPattern {
			return 0, newSyntaxError(openTok.Pos, "unterminated character class")
		}
		switch p.tok.Kind {
		case lexer.ClassRange:
			set.AddRange(p.tok.Lo, p.tok.Hi)
		case lexer.Literal:
			set.AddByte(p.tok.Byte)
		case lexer.EscapedClass:
			member, negated := escapedClassSet(p.tok.EscapeKind)
			if negated {
				member = member.Negated()
			}
			set = set.Union(member)
		default:
			return 0, newSyntaxError(p.tok.Pos, "unexpected token %q in character class", p.tok)
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
	}
	if err := p.advance(); err != nil { // consume ClassClose
		return 0, err
	}

	return p.tree.Add(ast.NewClass(set, openTok.Negated)), nil
}
