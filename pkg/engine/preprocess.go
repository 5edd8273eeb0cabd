package engine

import "strconv"

// preprocessSource rewrites cabinet source into something zygomys reads:
//
//   - :keyword becomes the string "__kw_keyword", so keywords never need
//     registering as globals that would shadow user variables.
//   - kebab-case identifiers become snake_case; zygomys reads a hyphen
//     between letters as subtraction.
//   - ; and ;; line comments become //.
//   - shop fractions become decimals: 3/4 -> 0.75, 23-1/4 -> 23.25.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	r := rewriter{src: []byte(source)}
	r.out = make([]byte, 0, len(source)+len(source)/4)
	for r.pos < len(r.src) {
		switch c := r.src[r.pos]; {
		case c == '"':
			r.quoted('"', true)
		case c == '`':
			r.quoted('`', false)
		case c == ';':
			r.comment()
		case c == ':' && r.keyword():
		case isDigit(c) && r.fraction():
		case c == '-' && r.kebab():
		default:
			r.emit(c)
		}
	}
	return string(r.out)
}

type rewriter struct {
	src []byte
	out []byte
	pos int
}

func (r *rewriter) emit(b ...byte) {
	r.out = append(r.out, b...)
	r.pos += len(b)
}

func (r *rewriter) peek(off int) (byte, bool) {
	if i := r.pos + off; i >= 0 && i < len(r.src) {
		return r.src[i], true
	}
	return 0, false
}

// quoted copies a string literal through its closing quote. Backslash
// escapes apply to double-quoted strings only.
func (r *rewriter) quoted(q byte, escapes bool) {
	r.emit(q)
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if escapes && c == '\\' && r.pos+1 < len(r.src) {
			r.emit(c, r.src[r.pos+1])
			continue
		}
		r.emit(c)
		if c == q {
			return
		}
	}
}

func (r *rewriter) comment() {
	for r.pos < len(r.src) && r.src[r.pos] == ';' {
		r.pos++
	}
	r.out = append(r.out, '/', '/')
	for r.pos < len(r.src) && r.src[r.pos] != '\n' {
		r.emit(r.src[r.pos])
	}
}

// keyword rewrites :name. The := operator is left alone.
func (r *rewriter) keyword() bool {
	next, ok := r.peek(1)
	if !ok {
		return false
	}
	if next == '=' {
		r.emit(':', '=')
		return true
	}
	if !isLetter(next) {
		return false
	}
	end := r.pos + 1
	for end < len(r.src) && isKWChar(r.src[end]) {
		end++
	}
	r.out = append(r.out, '"')
	r.out = append(r.out, kwPrefix...)
	r.out = append(r.out, r.src[r.pos+1:end]...)
	r.out = append(r.out, '"')
	r.pos = end
	return true
}

// kebab turns a hyphen between identifier characters into an underscore.
func (r *rewriter) kebab() bool {
	prev, okPrev := r.peek(-1)
	next, okNext := r.peek(1)
	if !okPrev || !okNext || !isIdentChar(prev) || !isLetter(next) {
		return false
	}
	r.out = append(r.out, '_')
	r.pos++
	return true
}

// fraction rewrites a standalone numerator/denominator token, optionally
// with a whole part joined by a hyphen, as a decimal literal.
func (r *rewriter) fraction() bool {
	if prev, ok := r.peek(-1); ok && (isIdentChar(prev) || prev == '.') {
		return false
	}
	i := r.pos
	digits := func() (int, bool) {
		start := i
		for i < len(r.src) && isDigit(r.src[i]) {
			i++
		}
		if i == start {
			return 0, false
		}
		n, err := strconv.Atoi(string(r.src[start:i]))
		return n, err == nil
	}

	whole, num, ok := 0, 0, false
	if num, ok = digits(); !ok {
		return false
	}
	if i < len(r.src) && r.src[i] == '-' {
		i++
		whole = num
		if num, ok = digits(); !ok {
			return false
		}
	}
	if i >= len(r.src) || r.src[i] != '/' {
		return false
	}
	i++
	den, ok := digits()
	if !ok || den == 0 {
		return false
	}
	if i < len(r.src) && !isDelimiter(r.src[i]) {
		return false
	}

	v := float64(whole) + float64(num)/float64(den)
	r.out = strconv.AppendFloat(r.out, v, 'f', -1, 64)
	if v == float64(int64(v)) {
		r.out = append(r.out, '.', '0')
	}
	r.pos = i
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ')', ']', '}':
		return true
	}
	return false
}
