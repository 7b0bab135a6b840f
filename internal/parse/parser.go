package parse

import (
	"github.com/yashagw/craneopt/internal/parse/parserdata"
	"github.com/yashagw/craneopt/internal/query"
)

// Parser is a parser for the query language:
//
//	SELECT (* | field {, field}) FROM table {, table} [WHERE term {AND term}]
//
// where each term is "field = constant", "constant = field" or "field = field".
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser.
func NewParser(lexer *Lexer) *Parser {
	return &Parser{
		lexer: lexer,
	}
}

// NewParserFromString creates a new Parser from a string.
func NewParserFromString(sql string) *Parser {
	lexer := NewLexer(sql)
	return NewParser(lexer)
}

func (p *Parser) field() (string, error) {
	id, err := p.lexer.EatId()
	if err != nil {
		return "", err
	}
	return id, nil
}

func (p *Parser) constant() (any, error) {
	if p.lexer.MatchIntConstant() {
		val, err := p.lexer.EatIntConstant()
		if err != nil {
			return 0, err
		}
		return val, nil
	}
	if p.lexer.MatchStringConstant() {
		val, err := p.lexer.EatStringConstant()
		if err != nil {
			return "", err
		}
		return val, nil
	}
	return nil, ErrBadSyntax
}

func (p *Parser) expression() (*query.Expression, error) {
	if p.lexer.MatchId() {
		id, err := p.field()
		if err != nil {
			return nil, err
		}
		return query.NewFieldNameExpression(id), nil
	}
	if p.lexer.MatchIntConstant() || p.lexer.MatchStringConstant() {
		val, err := p.constant()
		if err != nil {
			return nil, err
		}
		switch v := val.(type) {
		case int:
			return query.NewConstantExpression(*query.NewIntConstant(v)), nil
		case string:
			return query.NewConstantExpression(*query.NewStringConstant(v)), nil
		default:
			return nil, ErrBadSyntax
		}
	}
	return nil, ErrBadSyntax
}

func (p *Parser) term() (query.Predicate, error) {
	left, err := p.expression()
	if err != nil {
		return query.Predicate{}, err
	}
	err = p.lexer.EatDelim('=')
	if err != nil {
		return query.Predicate{}, err
	}
	right, err := p.expression()
	if err != nil {
		return query.Predicate{}, err
	}
	pred, err := query.NewPredicateFromExpressions(*left, *right)
	if err != nil {
		return query.Predicate{}, ErrBadSyntax
	}
	return pred, nil
}

func (p *Parser) predicate() ([]query.Predicate, error) {
	firstTerm, err := p.term()
	if err != nil {
		return nil, err
	}
	preds := []query.Predicate{firstTerm}
	for p.lexer.MatchKeyword("and") {
		if err := p.lexer.EatKeyword("and"); err != nil {
			return nil, err
		}
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		preds = append(preds, term)
	}
	return preds, nil
}

// Query parses a complete SELECT statement. An optional trailing ';' is
// accepted; anything else after the statement is a syntax error.
func (p *Parser) Query() (*parserdata.QueryData, error) {
	// Select
	err := p.lexer.EatKeyword("select")
	if err != nil {
		return nil, err
	}
	// Field List
	var fields []string
	if p.lexer.MatchDelim('*') {
		if err := p.lexer.EatDelim('*'); err != nil {
			return nil, err
		}
	} else {
		fields, err = p.fieldList()
		if err != nil {
			return nil, err
		}
	}
	// From
	err = p.lexer.EatKeyword("from")
	if err != nil {
		return nil, err
	}
	// Table List
	tableNames, err := p.tableList()
	if err != nil {
		return nil, err
	}

	var predicates []query.Predicate
	if p.lexer.MatchKeyword("where") {
		// Where
		err = p.lexer.EatKeyword("where")
		if err != nil {
			return nil, err
		}
		// Predicate
		predicates, err = p.predicate()
		if err != nil {
			return nil, err
		}
	}

	if p.lexer.MatchDelim(';') {
		_ = p.lexer.EatDelim(';')
	}
	if !p.lexer.AtEnd() {
		return nil, ErrBadSyntax
	}

	return parserdata.NewQueryData(fields, tableNames, predicates), nil
}

func (p *Parser) fieldList() ([]string, error) {
	fields := []string{}

	firstField, err := p.field()
	if err != nil {
		return nil, err
	}
	fields = append(fields, firstField)

	// Now look for ", field" patterns.
	for p.lexer.MatchDelim(',') {
		err = p.lexer.EatDelim(',')
		if err != nil {
			return nil, err
		}
		field, err := p.field()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return fields, nil
}

func (p *Parser) tableList() ([]string, error) {
	tableNames := []string{}

	firstTable, err := p.lexer.EatId()
	if err != nil {
		return nil, err
	}
	tableNames = append(tableNames, firstTable)

	// Now look for ", table" patterns.
	for p.lexer.MatchDelim(',') {
		err = p.lexer.EatDelim(',')
		if err != nil {
			return nil, err
		}
		table, err := p.lexer.EatId()
		if err != nil {
			return nil, err
		}
		tableNames = append(tableNames, table)
	}

	return tableNames, nil
}
