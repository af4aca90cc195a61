package world

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/calyx-lang/calyx/pkg/types"
)

// ParseType parses a type expression of the form Name or Name[Arg, ...].
// Identifiers found in params become type parameters.
func ParseType(s string, params map[string]struct{}) (types.Type, error) {
	p := &typeParser{
		src:    s,
		params: params,
	}

	t, err := p.parse()
	if err != nil {
		return types.Type{}, err
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return types.Type{}, fmt.Errorf("invalid type expression %q: trailing input at offset %d", s, p.pos)
	}

	return t, nil
}

type typeParser struct {
	src    string
	pos    int
	params map[string]struct{}
}

func (p *typeParser) parse() (types.Type, error) {
	p.skipSpace()

	name := p.ident()
	if name == "" {
		return types.Type{}, fmt.Errorf("invalid type expression %q: expected identifier at offset %d", p.src, p.pos)
	}

	if _, ok := p.params[name]; ok {
		return types.Param(name), nil
	}

	p.skipSpace()
	if !p.eat('[') {
		return types.New(name), nil
	}

	var args []types.Type
	for {
		arg, err := p.parse()
		if err != nil {
			return types.Type{}, err
		}
		args = append(args, arg)

		p.skipSpace()
		if p.eat(',') {
			continue
		}
		if p.eat(']') {
			break
		}

		return types.Type{}, fmt.Errorf("invalid type expression %q: expected ',' or ']' at offset %d", p.src, p.pos)
	}

	return types.New(name, args...), nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '.' {
			break
		}
		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *typeParser) eat(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}

	return false
}

func (p *typeParser) skipSpace() {
	p.pos += len(p.src[p.pos:]) - len(strings.TrimLeft(p.src[p.pos:], " \t"))
}
