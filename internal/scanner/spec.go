package scanner

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type tokenKind int

const (
	kindInvalid tokenKind = iota
	kindLiteral
	kindURL
	kindHost
)

// Token is one element of an argument template: a literal argument or a
// placeholder bound against the target at render time.
type Token struct {
	kind  tokenKind
	value string
}

// Placeholders.
var (
	URL  = Token{kind: kindURL}
	Host = Token{kind: kindHost}
)

// Lit returns a literal token passed to the executable unchanged.
func Lit(s string) Token {
	return Token{kind: kindLiteral, value: s}
}

// Lits returns one literal token per argument.
func Lits(args ...string) []Token {
	tokens := make([]Token, len(args))
	for i, a := range args {
		tokens[i] = Lit(a)
	}
	return tokens
}

// IsPlaceholder reports whether the token is resolved against the target.
func (t Token) IsPlaceholder() bool {
	return t.kind == kindURL || t.kind == kindHost
}

func (t Token) String() string {
	switch t.kind {
	case kindLiteral:
		return t.value
	case kindURL:
		return "{URL}"
	case kindHost:
		return "{HOST}"
	default:
		return "{INVALID}"
	}
}

// Spec declares how to launch one tool.
type Spec struct {
	ID          ID
	Executable  string
	Args        []Token
	Description string
	Homepage    string
}

// NeedsHost reports whether the template requires the target's host view.
func (s Spec) NeedsHost() bool {
	for _, t := range s.Args {
		if t.kind == kindHost {
			return true
		}
	}
	return false
}

// Input describes what the tool consumes: "host" or "url".
func (s Spec) Input() string {
	if s.NeedsHost() {
		return "host"
	}
	return "url"
}

// Template renders the argument template with symbolic placeholders.
func (s Spec) Template() string {
	parts := make([]string, len(s.Args))
	for i, t := range s.Args {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// LookPath resolves the executable the way Spawn will.
func (s Spec) LookPath() (string, error) {
	return exec.LookPath(s.Executable)
}

// Validate checks the spec at registry construction time. A literal spelled
// like a placeholder sentinel is almost certainly a template typo.
func (s Spec) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Executable) == "" {
		errs = append(errs, fmt.Errorf("%s: executable is empty", s.ID))
	}
	for i, t := range s.Args {
		switch t.kind {
		case kindURL, kindHost:
		case kindLiteral:
			if t.value == "URL" || t.value == "HOST" {
				errs = append(errs, fmt.Errorf("%s: argument %d is the literal %q, use the %s placeholder", s.ID, i, t.value, t.value))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: argument %d is not a valid token", s.ID, i))
		}
	}
	return errors.Join(errs...)
}

func (s Spec) clone() Spec {
	c := s
	c.Args = append([]Token(nil), s.Args...)
	return c
}
