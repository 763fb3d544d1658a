// Package parser turns a lexer word stream into an ast.Expression tree.
//
// Parsing proceeds in two passes per grouping level. parsePrimary
// collects a run of juxtaposed terms (bracket groups, property chains,
// bare symbols) and folds them left-to-right into function-call nodes —
// "f a b" becomes "(f a) b". The enclosing parseOperatorRun then collects
// a flat list of primary/operator/primary/operator/... siblings and
// folds that list by operator priority, one priority group at a time
// (foldOperators), rather than resolving precedence through recursion. This mirrors the
// interpreter this package is modeled on, which never builds a separate
// precedence-climbing parser: operator priority is purely a property of
// how a finished list of siblings gets folded, computed after the fact.
package parser

import (
	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/lexer"
	"github.com/flc-lang/flc/internal/token"
)

var brackets = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}

var closingBrackets = map[string]bool{")": true, "]": true, "}": true}

// Parser consumes a Word stream and produces an expression tree. It is
// single-use: construct one with New and call ParseProgram once.
type Parser struct {
	words []lexer.Word
	i     int
	errs  []*Error
}

// New creates a Parser over words.
func New(words []lexer.Word) *Parser {
	return &Parser{words: words}
}

// Errors returns every Error accumulated during parsing. Parsing never
// stops at the first one: the offending construct is skipped or kept as
// a bare Symbol and parsing continues, so a single `flc parse` run can
// report more than one mistake.
func (p *Parser) Errors() []*Error { return p.errs }

func (p *Parser) errorf(pos token.Position, msg string) {
	p.errs = append(p.errs, &Error{Message: msg, Pos: pos})
}

func (p *Parser) peek() (lexer.Word, bool) {
	if p.i >= len(p.words) {
		return lexer.Word{}, false
	}
	return p.words[p.i], true
}

func (p *Parser) lastPos() token.Position {
	if p.i > 0 {
		return p.words[p.i-1].Pos
	}
	if len(p.words) > 0 {
		return p.words[0].Pos
	}
	return token.Position{}
}

// ParseProgram parses the entire word stream as a single top-level
// expression, as `flc run`/`flc parse` do. An empty word stream parses
// to an empty Tuple — the language's unit value — rather than being
// reported as incomplete: an empty file or an empty `-e` expression is a
// deliberate, common case, not truncated input.
func (p *Parser) ParseProgram() (ast.Expression, error) {
	if len(p.words) == 0 {
		return ast.NewTuple(nil, token.Position{Line: 1, Column: 1}), nil
	}
	expr, err := p.parseExpression(false, true)
	if err != nil {
		return nil, err
	}
	if w, ok := p.peek(); ok {
		p.errorf(w.Pos, "unexpected token "+w.Text)
	}
	return expr, nil
}

// parseExpression parses one grouping level: a flat run of primaries
// separated by operators, optionally further split into a Tuple by
// top-level commas. inTuple suppresses comma handling: the caller is
// already collecting an enclosing Tuple's elements, and a comma here
// closes that element, not one of ours. priority gates whether commas
// at this level fold into a Tuple at all (false inside a `\` filter or
// a property name, where a bare comma would be a syntax error instead).
func (p *Parser) parseExpression(inTuple, priority bool) (ast.Expression, error) {
	first, err := p.parseOperatorRun(inTuple)
	if err != nil {
		return nil, err
	}

	if w, ok := p.peek(); ok && w.Text == "\\" {
		p.i++
		filter, err := p.parseOperatorRun(inTuple)
		if err != nil {
			return nil, err
		}
		if arrow, ok := p.peek(); !ok || arrow.Text != "|->" {
			return nil, &ErrIncomplete{Pos: p.lastPos()}
		}
		p.i++
		body, err := p.parseExpression(inTuple, true)
		if err != nil {
			return nil, err
		}
		first = ast.NewFunctionDefinition(first, filter, body, first.Pos())
	} else if ok && w.Text == "|->" {
		p.i++
		body, err := p.parseExpression(inTuple, true)
		if err != nil {
			return nil, err
		}
		first = ast.NewFunctionDefinition(first, nil, body, first.Pos())
	}

	if !priority || inTuple {
		return first, nil
	}

	w, ok := p.peek()
	if !ok || w.Text != "," {
		return first, nil
	}

	elems := []ast.Expression{first}
	for ok && w.Text == "," {
		p.i++
		if _, stop := closingBrackets[peekText(p)]; stop {
			break
		}
		next, err := p.parseExpression(false, false)
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
		w, ok = p.peek()
	}
	return ast.NewTuple(elems, elems[0].Pos()), nil
}

func peekText(p *Parser) string {
	if w, ok := p.peek(); ok {
		return w.Text
	}
	return ""
}

// parseOperatorRun collects a flat [primary, opSymbol, primary,
// opSymbol, primary, ...] list at this grouping level and folds it by
// operator priority. A leading operator (no left operand, e.g. unary
// "-5") is represented by an empty left slot.
func (p *Parser) parseOperatorRun(inTuple bool) (ast.Expression, error) {
	var operands []ast.Expression
	var operators []*ast.Symbol

	if w, ok := p.peek(); ok && isOperatorWord(w.Text) && !isReserved(w.Text) {
		// Leading operator: unary/prefix form. Leave operands empty for
		// this first slot; foldOperators treats the first operator as
		// prefix when len(operands) == len(operators).
	} else {
		first, err := p.parsePrimary(inTuple)
		if err != nil {
			return nil, err
		}
		operands = append(operands, first)
	}

	for {
		w, ok := p.peek()
		if !ok || !isOperatorWord(w.Text) || isReserved(w.Text) {
			break
		}
		p.i++
		operators = append(operators, ast.NewSymbol(w.Text, w.Pos))

		if _, ok := p.peek(); !ok {
			if w.Text == ";" {
				// A final ";" closes the program; the run's value is the
				// expression before it.
				operators = operators[:len(operators)-1]
				break
			}
			return nil, &ErrIncomplete{Pos: w.Pos}
		}
		if nw, ok := p.peek(); ok && (closingBrackets[nw.Text] || nw.Text == "," || nw.Text == "\\" || nw.Text == "|->") {
			p.errorf(w.Pos, "operator "+w.Text+" must be followed by an expression")
			continue
		}
		term, err := p.parsePrimary(inTuple)
		if err != nil {
			return nil, err
		}
		operands = append(operands, term)
	}

	if len(operators) == 0 {
		if len(operands) == 0 {
			return nil, &ErrIncomplete{Pos: p.lastPos()}
		}
		return operands[0], nil
	}
	return foldOperators(operands, operators), nil
}

// parsePrimary parses one juxtaposed run — brackets, property chains,
// and bare symbols applied to each other as function calls — stopping
// at an operator, comma, closing bracket, or function-literal marker.
func (p *Parser) parsePrimary(inTuple bool) (ast.Expression, error) {
	var terms []ast.Expression

	for {
		w, ok := p.peek()
		if !ok {
			break
		}

		if closer, isOpen := brackets[w.Text]; isOpen {
			open := w
			p.i++
			var inner ast.Expression
			if next, ok := p.peek(); ok && next.Text == closer {
				p.i++
				inner = ast.NewTuple(nil, open.Pos)
			} else {
				parsed, err := p.parseExpression(false, true)
				if err != nil {
					return nil, err
				}
				if c, ok := p.peek(); !ok || c.Text != closer {
					return nil, &ErrIncomplete{Pos: open.Pos}
				}
				p.i++
				if sym, ok := parsed.(*ast.Symbol); ok {
					sym.Escaped = true
				}
				inner = parsed
			}
			terms = append(terms, inner)
			continue
		}

		if closingBrackets[w.Text] || w.Text == "," || isOperatorWord(w.Text) && !isReserved(w.Text) {
			break
		}
		if w.Text == "\\" || w.Text == "|->" {
			break
		}
		if isReserved(w.Text) && w.Text != "->" {
			p.errorf(w.Pos, "unexpected token "+w.Text)
			p.i++
			continue
		}
		if w.Text == "->" {
			if len(terms) == 0 {
				p.errorf(w.Pos, "'->' must follow an expression")
				p.i++
				continue
			}
			p.i++
			name, ok := p.peek()
			if !ok {
				return nil, &ErrIncomplete{Pos: w.Pos}
			}
			p.i++
			obj := terms[len(terms)-1]
			terms[len(terms)-1] = ast.NewProperty(obj, name.Text, w.Pos)
			continue
		}

		// Plain word: a literal, identifier, or keyword; becomes a Symbol.
		p.i++
		terms = append(terms, ast.NewSymbol(w.Text, w.Pos))
	}

	if len(terms) == 0 {
		return nil, &ErrIncomplete{Pos: p.lastPos()}
	}
	result := terms[0]
	for _, arg := range terms[1:] {
		result = ast.NewFunctionCall(result, arg, result.Pos())
	}
	return result, nil
}

// foldOperators folds a flat operand/operator run into a single tree.
//
// A leading prefix operator (len(operators) == len(operands), e.g. unary
// "-5") is spliced first and unconditionally, regardless of its priority
// relative to the rest of the run — conventional unary-operator
// precedence. What remains is always a strict operand/operator
// alternation (len(operands) == len(operators)+1).
//
// The remaining binary run is then folded by repeatedly scanning
// left to right over the current operator group, tightest priority
// first (groupOperators/compareOperators), splicing each matching
// operator with its current left and right neighbours into a single
// FunctionCall node and removing it from both slices. The scan does not
// advance past a splice, so a repeated same-priority operator still
// associates left: "1 - 2 - 3" folds to "(1 - 2) - 3".
func foldOperators(operands []ast.Expression, operators []*ast.Symbol) ast.Expression {
	vals := append([]ast.Expression(nil), operands...)
	ops := append([]*ast.Symbol(nil), operators...)

	if len(ops) == len(vals) {
		unary := ast.NewFunctionCall(ops[0], vals[0], ops[0].Pos())
		vals[0] = unary
		ops = ops[1:]
	}

	for _, group := range groupOperators(ops) {
		j := 0
		for j < len(ops) {
			if !group[ops[j].Name] {
				j++
				continue
			}
			left, right := vals[j], vals[j+1]
			args := ast.NewTuple([]ast.Expression{left, right}, ops[j].Pos())
			call := ast.NewFunctionCall(ops[j], args, ops[j].Pos())

			vals = append(vals[:j], append([]ast.Expression{call}, vals[j+2:]...)...)
			ops = append(ops[:j], ops[j+1:]...)
			// vals[j] now holds the spliced result; stay at j in case the
			// new right neighbour shares this group's priority.
		}
	}

	return vals[0]
}

// groupOperators partitions the operator run into priority-equal name
// sets, ordered from tightest-binding to loosest.
func groupOperators(ops []*ast.Symbol) []map[string]bool {
	var order []string
	seen := map[string]bool{}
	for _, op := range ops {
		if !seen[op.Name] {
			seen[op.Name] = true
			order = append(order, op.Name)
		}
	}

	var groups []map[string]bool
	placed := map[string]bool{}
	for _, name := range order {
		if placed[name] {
			continue
		}
		group := map[string]bool{name: true}
		placed[name] = true
		for _, other := range order {
			if !placed[other] && compareOperators(name, other) == 0 {
				group[other] = true
				placed[other] = true
			}
		}
		groups = append(groups, group)
	}

	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			var ni, nj string
			for n := range groups[i] {
				ni = n
				break
			}
			for n := range groups[j] {
				nj = n
				break
			}
			if compareOperators(ni, nj) < 0 {
				groups[i], groups[j] = groups[j], groups[i]
			}
		}
	}
	return groups
}
