package glfake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Faultbox/learngl/internal/engine/shader"
)

var (
	headerPattern = regexp.MustCompile(`^\w+\s+\w+\s*\([^=]*\)$`)
	controlPrefix = regexp.MustCompile(`^(if|else|for|while)\b`)
)

func (s *shaderObject) compile() {
	*s = shaderObject{stage: s.stage, source: s.source}

	lines := strings.Split(s.source, "\n")
	var body strings.Builder
	sawVersion := false
	depth, parens := 0, 0

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if !sawVersion {
			if !strings.HasPrefix(line, "#version") {
				s.fail(lineNo, "no #version directive before first statement")
				return
			}
			sawVersion = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if depth == 0 {
			if m := declPattern.FindStringSubmatch(line); m != nil {
				v := variable{typ: m[2], name: m[3]}
				switch m[1] {
				case "in":
					s.ins = append(s.ins, v)
				case "out":
					s.outs = append(s.outs, v)
				case "uniform":
					s.uniforms = append(s.uniforms, v)
				}
				continue
			}
		}

		for col, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
			case '(':
				parens++
			case ')':
				parens--
			}
			if depth < 0 || parens < 0 {
				s.failAt(lineNo, col+1, fmt.Sprintf("syntax error, unexpected '%c'", r))
				return
			}
		}

		if !terminated(line, parens) {
			s.failAt(lineNo, len(line)+1, "syntax error, missing ';' at end of statement")
			return
		}

		body.WriteString(line)
		body.WriteByte('\n')
	}

	if !sawVersion {
		s.fail(1, "no #version directive before first statement")
		return
	}
	if depth != 0 || parens != 0 {
		s.fail(len(lines), "syntax error, unexpected end of file")
		return
	}

	s.body = body.String()
	s.hasMain = mainPattern.MatchString(s.body)
	s.compiled = true
}

func (s *shaderObject) fail(line int, msg string) {
	s.failAt(line, 1, msg)
}

func (s *shaderObject) failAt(line, col int, msg string) {
	s.compiled = false
	s.log = fmt.Sprintf("0:%d(%d): error: %s\n", line, col, msg)
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

func terminated(line string, parens int) bool {
	if parens > 0 {
		return true
	}
	switch line[len(line)-1] {
	case ';', '{', '}', ',', '(', '+', '-', '*', '/', '?', ':', '&', '|':
		return true
	}
	return headerPattern.MatchString(line) || controlPrefix.MatchString(line)
}

func (p *programObject) link(stages []*shaderObject) {
	p.linked = false
	p.uniforms = nil

	var errs []string
	errorf := func(format string, args ...any) {
		errs = append(errs, "error: "+fmt.Sprintf(format, args...))
	}

	var vertex, fragment *shaderObject
	for _, s := range stages {
		if !s.compiled {
			errorf("linking with uncompiled %s shader", s.stage)
			continue
		}
		switch s.stage {
		case shader.Vertex:
			vertex = s
		case shader.Fragment:
			fragment = s
		}
	}
	if len(errs) > 0 {
		p.log = strings.Join(errs, "\n") + "\n"
		return
	}
	if vertex == nil {
		errorf("program lacks a vertex shader")
	}
	if fragment == nil {
		errorf("program lacks a fragment shader")
	}
	if vertex == nil || fragment == nil {
		p.log = strings.Join(errs, "\n") + "\n"
		return
	}

	for _, s := range []*shaderObject{vertex, fragment} {
		if !s.hasMain {
			errorf("%s shader lacks `main'", s.stage)
		}
	}

	for _, in := range fragment.ins {
		out, ok := find(vertex.outs, in.name)
		switch {
		case !ok:
			errorf("fragment shader input `%s' has no matching output in the previous stage", in.name)
		case out.typ != in.typ:
			errorf("vertex shader output `%s' declared as type `%s', but fragment shader input declared as type `%s'",
				in.name, out.typ, in.typ)
		}
	}

	var location int32
	for _, s := range []*shaderObject{vertex, fragment} {
		for _, u := range s.uniforms {
			if prev := p.findUniform(u.name); prev != nil {
				if prev.typ != u.typ {
					errorf("uniform `%s' declared as type `%s' and type `%s'", u.name, prev.typ, u.typ)
				}
				continue
			}
			if !referenced(vertex, u.name) && !referenced(fragment, u.name) {
				continue
			}
			n := components(u.typ)
			if n == 0 {
				n = 1
			}
			p.uniforms = append(p.uniforms, &uniform{
				variable: u,
				location: location,
				value:    make([]float32, n),
			})
			location++
		}
	}

	if len(errs) > 0 {
		p.uniforms = nil
		p.log = strings.Join(errs, "\n") + "\n"
		return
	}
	p.log = ""
	p.linked = true
}

func (p *programObject) findUniform(name string) *uniform {
	for _, u := range p.uniforms {
		if u.name == name {
			return u
		}
	}
	return nil
}

func find(vars []variable, name string) (variable, bool) {
	for _, v := range vars {
		if v.name == name {
			return v, true
		}
	}
	return variable{}, false
}

func referenced(s *shaderObject, name string) bool {
	if _, ok := find(s.uniforms, name); !ok {
		return false
	}
	return containsWord(s.body, name)
}

// containsWord reports whether word occurs in text as a whole identifier.
func containsWord(text, word string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if (start == 0 || !isIdent(text[start-1])) && (end == len(text) || !isIdent(text[end])) {
			return true
		}
		from = start + 1
	}
}

func isIdent(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
