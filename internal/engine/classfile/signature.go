package classfile

import "strings"

// sigParser is a recursive-descent parser over the generic signature grammar.
// It accepts class, method and field signatures and yields the internal name of
// the outermost class of every class type signature it meets.
type sigParser struct {
	s     string
	pos   int
	yield func(string)
}

// parseSignature parses a class, method or field signature.
func parseSignature(sig string, yield func(string)) error {
	if sig == "" {
		return malformed("empty signature")
	}
	p := &sigParser{s: sig, yield: yield}
	if err := p.signature(); err != nil {
		return err
	}
	if p.pos != len(p.s) {
		return p.errorf("trailing characters")
	}
	return nil
}

func (p *sigParser) signature() error {
	if p.peek() == '<' {
		if err := p.typeParameters(); err != nil {
			return err
		}
	}
	if p.peek() == '(' {
		return p.methodSignature()
	}
	// A class signature is a non-empty sequence of class type signatures; a field
	// signature is a single reference type signature.
	for p.pos < len(p.s) {
		if err := p.referenceType(); err != nil {
			return err
		}
	}
	return nil
}

func (p *sigParser) typeParameters() error {
	p.pos++ // '<'
	if p.peek() == '>' {
		return p.errorf("empty type parameter list")
	}
	for p.peek() != '>' {
		if p.pos >= len(p.s) {
			return p.errorf("unterminated type parameter list")
		}
		if _, err := p.identifier(); err != nil {
			return err
		}
		if p.peek() != ':' {
			return p.errorf("expected ':' after type parameter name")
		}
		p.pos++
		// Class bound is optional.
		if c := p.peek(); c != ':' && c != '>' {
			if err := p.referenceType(); err != nil {
				return err
			}
		}
		for p.peek() == ':' {
			p.pos++
			if err := p.referenceType(); err != nil {
				return err
			}
		}
	}
	p.pos++ // '>'
	return nil
}

func (p *sigParser) methodSignature() error {
	p.pos++ // '('
	for p.peek() != ')' {
		if p.pos >= len(p.s) {
			return p.errorf("unterminated parameter list")
		}
		if err := p.javaType(); err != nil {
			return err
		}
	}
	p.pos++ // ')'
	if p.peek() == 'V' {
		p.pos++
	} else if err := p.javaType(); err != nil {
		return err
	}
	for p.peek() == '^' {
		p.pos++
		switch p.peek() {
		case 'L':
			if err := p.classType(); err != nil {
				return err
			}
		case 'T':
			if err := p.typeVariable(); err != nil {
				return err
			}
		default:
			return p.errorf("invalid throws signature")
		}
	}
	return nil
}

func (p *sigParser) javaType() error {
	switch p.peek() {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		p.pos++
		return nil
	default:
		return p.referenceType()
	}
}

func (p *sigParser) referenceType() error {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		return p.typeVariable()
	case '[':
		p.pos++
		return p.javaType()
	default:
		return p.errorf("expected reference type")
	}
}

// classType parses L [PackageSpecifier] SimpleClassTypeSignature {. SimpleClassTypeSignature} ;
// Inner class suffixes share the outer class's package, so only the outer name is yielded.
func (p *sigParser) classType() error {
	p.pos++ // 'L'
	var name strings.Builder
	for {
		id, err := p.identifier()
		if err != nil {
			return err
		}
		name.WriteString(id)
		if p.peek() != '/' {
			break
		}
		p.pos++
		name.WriteByte('/')
	}
	p.yield(name.String())

	if err := p.typeArguments(); err != nil {
		return err
	}
	for p.peek() == '.' {
		p.pos++
		if _, err := p.identifier(); err != nil {
			return err
		}
		if err := p.typeArguments(); err != nil {
			return err
		}
	}
	if p.peek() != ';' {
		return p.errorf("expected ';' to end class type")
	}
	p.pos++
	return nil
}

func (p *sigParser) typeArguments() error {
	if p.peek() != '<' {
		return nil
	}
	p.pos++
	if p.peek() == '>' {
		return p.errorf("empty type argument list")
	}
	for p.peek() != '>' {
		switch p.peek() {
		case 0:
			return p.errorf("unterminated type argument list")
		case '*':
			p.pos++
		case '+', '-':
			p.pos++
			if err := p.referenceType(); err != nil {
				return err
			}
		default:
			if err := p.referenceType(); err != nil {
				return err
			}
		}
	}
	p.pos++ // '>'
	return nil
}

func (p *sigParser) typeVariable() error {
	p.pos++ // 'T'
	if _, err := p.identifier(); err != nil {
		return err
	}
	if p.peek() != ';' {
		return p.errorf("expected ';' to end type variable")
	}
	p.pos++
	return nil
}

func (p *sigParser) identifier() (string, error) {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(".;[/<>:", rune(p.s[p.pos])) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.s[start:p.pos], nil
}

// peek returns the current byte, or 0 at the end of input.
func (p *sigParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) errorf(msg string) error {
	return malformed("invalid signature %q at position %d: %s", p.s, p.pos, msg)
}
