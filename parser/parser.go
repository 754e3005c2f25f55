// Package parser implements Skillet's Pratt/operator-precedence
// parser (spec.md §4.2), turning a lexer.Lexer's token stream into an
// ast.Expression tree.
package parser

import (
	"strconv"
	"strings"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/lexer"
	"github.com/skillet-run/skillet/values"
)

// precedence levels, lowest to highest, matching spec.md §4.2.
const (
	precLowest = iota
	precTernary
	precOr
	precAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
)

var binPrecedence = map[lexer.Kind]int{
	lexer.PIPE_PIPE:   precOr,
	lexer.KEYWORD_OR:  precOr,
	lexer.AMP_AMP:     precAnd,
	lexer.KEYWORD_AND: precAnd,
	lexer.EQ:          precEquality,
	lexer.NEQ:         precEquality,
	lexer.GT:          precComparison,
	lexer.LT:          precComparison,
	lexer.GTE:         precComparison,
	lexer.LTE:         precComparison,
	lexer.PLUS:        precAdditive,
	lexer.MINUS:       precAdditive,
	lexer.STAR:        precMultiplicative,
	lexer.SLASH:       precMultiplicative,
	lexer.PERCENT:     precMultiplicative,
	lexer.CARET:       precExponent,
}

var binOps = map[lexer.Kind]ast.BinaryOp{
	lexer.PLUS:        ast.OpAdd,
	lexer.MINUS:       ast.OpSub,
	lexer.STAR:        ast.OpMul,
	lexer.SLASH:       ast.OpDiv,
	lexer.PERCENT:     ast.OpMod,
	lexer.CARET:       ast.OpPow,
	lexer.GT:          ast.OpGt,
	lexer.LT:          ast.OpLt,
	lexer.GTE:         ast.OpGte,
	lexer.LTE:         ast.OpLte,
	lexer.EQ:          ast.OpEq,
	lexer.NEQ:         ast.OpNeq,
	lexer.AMP_AMP:     ast.OpAnd,
	lexer.KEYWORD_AND: ast.OpAnd,
	lexer.PIPE_PIPE:   ast.OpOr,
	lexer.KEYWORD_OR:  ast.OpOr,
}

// Parser holds a one-token lookahead pair on top of a lexer.Lexer,
// following the teacher's Pratt-parser shape (pratt_parser.go).
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	next lexer.Token
}

// New creates a Parser over src, primed so cur holds the first token.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	tok, err := p.lex.NextToken()
	if err != nil {
		return nil, err
	}
	p.cur = tok
	tok2, err := p.lex.NextToken()
	if err != nil {
		return nil, err
	}
	p.next = tok2
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.next
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.next = tok
	return nil
}

// Parse parses src end-to-end and returns the resulting Expression, or
// a *errors.Error with Kind ParseError/LexError on failure.
func Parse(src string) (ast.Expression, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "trailing input near %q", p.cur.Text)
	}
	return expr, nil
}

func (p *Parser) parseTopLevel() (ast.Expression, error) {
	exprs, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return ast.NewSequence(exprs[0].Pos(), exprs), nil
}

// parseSequence parses `;`-separated assignments/expressions (spec.md
// §4.2's assignment statement form).
func (p *Parser) parseSequence() ([]ast.Expression, error) {
	var exprs []ast.Expression
	for {
		e, err := p.parseAssignmentOrExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.cur.Kind != lexer.SEMICOLON {
			return exprs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == lexer.EOF {
			return exprs, nil
		}
	}
}

func (p *Parser) parseAssignmentOrExpression() (ast.Expression, error) {
	if p.cur.Kind == lexer.VARIABLE && p.next.Kind == lexer.WALRUS {
		offset := p.cur.Offset
		name := p.cur.Text
		if err := p.advance(); err != nil { // consume variable
			return nil, err
		}
		if err := p.advance(); err != nil { // consume ':='
			return nil, err
		}
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(offset, name, val), nil
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.cur.Kind == lexer.QUESTION && minPrec <= precTernary {
			left, err = p.parseTernary(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		prec, ok := binPrecedence[p.cur.Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := binOps[p.cur.Kind]
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		nextMinPrec := prec + 1
		if op == ast.OpPow {
			nextMinPrec = prec // right-associative
		}
		right, err := p.parseExpression(nextMinPrec)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(offset, op, left, right)
	}
}

func (p *Parser) parseTernary(cond ast.Expression) (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '?'
		return nil, err
	}
	then, err := p.parseExpression(precTernary + 1)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.COLON {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ':' in ternary expression")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	// Right-associative: `a?b:c?d:e` == `a?b:(c?d:e)`.
	els, err := p.parseExpression(precTernary)
	if err != nil {
		return nil, err
	}
	return ast.NewTernary(offset, cond, then, els), nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur.Kind {
	case lexer.MINUS:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(offset, ast.OpNeg, operand), nil
	case lexer.PLUS:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(offset, ast.OpPos, operand), nil
	case lexer.BANG, lexer.KEYWORD_NOT:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(offset, ast.OpNot, operand), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Kind {
		case lexer.LBRACKET:
			expr, err = p.parseIndexOrSlice(expr)
			if err != nil {
				return nil, err
			}
		case lexer.DOT:
			expr, err = p.parseMethodCall(expr, false)
			if err != nil {
				return nil, err
			}
		case lexer.SAFE_NAV:
			expr, err = p.parseSafeAccess(expr)
			if err != nil {
				return nil, err
			}
		case lexer.CAST:
			expr, err = p.parseCast(expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseIndexOrSlice(receiver ast.Expression) (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var start ast.Expression
	var err error
	if p.cur.Kind != lexer.COLON {
		start, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if p.cur.Kind == lexer.COLON {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var end ast.Expression
		if p.cur.Kind != lexer.RBRACKET {
			end, err = p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
		}
		if p.cur.Kind != lexer.RBRACKET {
			return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ']' closing slice")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewSlice(offset, receiver, start, end), nil
	}
	if p.cur.Kind != lexer.RBRACKET {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ']' closing index")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewIndex(offset, receiver, start), nil
}

// parseMethodCall handles `.name(args)` / `.name?(args)`.
func (p *Parser) parseMethodCall(receiver ast.Expression, viaSafeNav bool) (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '.'
		return nil, err
	}
	if p.cur.Kind != lexer.IDENT {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected method name after '.'")
	}
	name := p.cur.Text
	nameEnd := p.cur.Offset + len(p.cur.Text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	isPredicate := false
	if p.cur.Kind == lexer.QUESTION && p.cur.Offset == nameEnd {
		isPredicate = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	args, err := p.parseOptionalArgs()
	if err != nil {
		return nil, err
	}
	return ast.NewMethodCall(offset, receiver, name, args, isPredicate), nil
}

func (p *Parser) parseSafeAccess(receiver ast.Expression) (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '&.'
		return nil, err
	}
	if p.cur.Kind != lexer.IDENT {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected name after '&.'")
	}
	name := p.cur.Text
	nameEnd := p.cur.Offset + len(p.cur.Text)
	if err := p.advance(); err != nil {
		return nil, err
	}
	isPredicate := false
	if p.cur.Kind == lexer.QUESTION && p.cur.Offset == nameEnd {
		isPredicate = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	var rhs ast.Expression
	if p.cur.Kind == lexer.LPAREN {
		args, err := p.parseOptionalArgs()
		if err != nil {
			return nil, err
		}
		rhs = ast.NewMethodCall(offset, nil, name, args, isPredicate)
	} else {
		rhs = ast.NewMethodCall(offset, nil, name, nil, isPredicate)
	}
	return ast.NewSafeAccess(offset, receiver, rhs), nil
}

// parseOptionalArgs parses `(args)` if present, else returns nil
// (field-style safe-nav access with no call parens).
func (p *Parser) parseOptionalArgs() ([]ast.Expression, error) {
	if p.cur.Kind != lexer.LPAREN {
		return nil, nil
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Expression
	for p.cur.Kind != lexer.RPAREN {
		var arg ast.Expression
		var err error
		if p.cur.Kind == lexer.SPREAD {
			offset := p.cur.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			arg = ast.NewSpread(offset, inner)
		} else {
			arg, err = p.parseLambdaOrExpression()
			if err != nil {
				return nil, err
			}
		}
		args = append(args, arg)
		if p.cur.Kind == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind != lexer.RPAREN {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ')' closing argument list")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return args, nil
}

// parseLambdaOrExpression parses a single argument expression. Lambda
// bodies (the `:x > 50`-style argument to FILTER/MAP/...) are ordinary
// expressions at parse time — the evaluator is what treats them
// specially based on which builtin consumes them (spec.md §4.5).
func (p *Parser) parseLambdaOrExpression() (ast.Expression, error) {
	return p.parseExpression(precLowest)
}

func (p *Parser) parseCast(receiver ast.Expression) (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '::'
		return nil, err
	}
	if p.cur.Kind != lexer.IDENT {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected type name after '::'")
	}
	target, err := targetTypeFromName(p.cur.Text)
	if err != nil {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "%s", err.Error())
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewCast(offset, receiver, target), nil
}

func targetTypeFromName(name string) (ast.TargetType, error) {
	switch strings.ToLower(name) {
	case "integer", "int":
		return ast.CastInteger, nil
	case "float":
		return ast.CastFloat, nil
	case "string":
		return ast.CastString, nil
	case "boolean", "bool":
		return ast.CastBoolean, nil
	case "array":
		return ast.CastArray, nil
	case "currency":
		return ast.CastCurrency, nil
	case "datetime":
		return ast.CastDateTime, nil
	case "json":
		return ast.CastJson, nil
	}
	return 0, errors.Newf(errors.ParseError, "unknown cast target %q", name)
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Kind {
	case lexer.INTEGER, lexer.FLOAT:
		offset := p.cur.Offset
		n := p.cur.Num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLiteral(offset, values.NewNumber(n)), nil
	case lexer.STRING:
		offset := p.cur.Offset
		s := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLiteral(offset, values.NewString(s)), nil
	case lexer.KEYWORD_TRUE:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLiteral(offset, values.NewBoolean(true)), nil
	case lexer.KEYWORD_FALSE:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLiteral(offset, values.NewBoolean(false)), nil
	case lexer.KEYWORD_NULL:
		offset := p.cur.Offset
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLiteral(offset, values.NewNull()), nil
	case lexer.VARIABLE:
		offset := p.cur.Offset
		name := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewVariableRef(offset, name), nil
	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != lexer.RPAREN {
			return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBRACKET:
		return p.parseArrayLit()
	case lexer.LBRACE:
		return p.parseObjectLit()
	case lexer.IDENT:
		return p.parseCallOrBareIdent()
	}
	return nil, errors.Atf(errors.ParseError, p.cur.Offset, "unexpected token %s", p.cur.Kind)
}

func (p *Parser) parseArrayLit() (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var items []ast.Expression
	for p.cur.Kind != lexer.RBRACKET {
		var item ast.Expression
		var err error
		if p.cur.Kind == lexer.SPREAD {
			so := p.cur.Offset
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			item = ast.NewSpread(so, inner)
		} else {
			item, err = p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
		}
		items = append(items, item)
		if p.cur.Kind == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind != lexer.RBRACKET {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ']' closing array literal")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewArrayLit(offset, items), nil
}

func (p *Parser) parseObjectLit() (ast.Expression, error) {
	offset := p.cur.Offset
	if err := p.advance(); err != nil { // consume '{'
		return nil, err
	}
	var entries []ast.ObjectEntry
	for p.cur.Kind != lexer.RBRACE {
		var key string
		switch p.cur.Kind {
		case lexer.IDENT:
			key = p.cur.Text
		case lexer.STRING:
			key = p.cur.Text
		default:
			return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected object key")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind != lexer.COLON {
			return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected ':' after object key")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.ObjectEntry{Key: key, Value: val})
		if p.cur.Kind == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.cur.Kind != lexer.RBRACE {
		return nil, errors.Atf(errors.ParseError, p.cur.Offset, "expected '}' closing object literal")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewObjectLit(offset, entries), nil
}

func (p *Parser) parseCallOrBareIdent() (ast.Expression, error) {
	offset := p.cur.Offset
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	args, err := p.parseOptionalArgs()
	if err != nil {
		return nil, err
	}
	if args == nil && p.cur.Kind != lexer.LPAREN {
		// Bare identifier with no call parens: only valid as a
		// function name with zero arguments, e.g. NOW().
		return ast.NewCall(offset, name, nil), nil
	}
	return ast.NewCall(offset, name, args), nil
}

// ParseCriteria parses a SUMIF/AVGIF/COUNTIF criteria string (spec.md
// §4.5), e.g. ">25", "=20", "<>20", ">=20", "<=20", or a bare number
// (implicit equality). Returns the comparator and the constant.
func ParseCriteria(s string) (comparator string, constant float64, err error) {
	s = strings.TrimSpace(s)
	for _, c := range []string{">=", "<=", "<>", "!=", ">", "<", "="} {
		if strings.HasPrefix(s, c) {
			numStr := strings.TrimSpace(s[len(c):])
			n, perr := strconv.ParseFloat(numStr, 64)
			if perr != nil {
				return "", 0, errors.Newf(errors.TypeError, "invalid criteria %q", s)
			}
			if c == "=" {
				return "==", n, nil
			}
			if c == "<>" {
				return "!=", n, nil
			}
			return c, n, nil
		}
	}
	n, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return "", 0, errors.Newf(errors.TypeError, "invalid criteria %q", s)
	}
	return "==", n, nil
}
