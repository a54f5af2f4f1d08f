package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/validator"
)

// Mode selects how malformed query parameters are treated.
type Mode int

const (
	// Lenient silently replaces malformed values with defaults.
	Lenient Mode = iota
	// Strict records every malformed value; Err reports them.
	Strict
)

// ParseMode maps the QUERY_STRICT flag to a Mode.
func ParseMode(strict bool) Mode {
	if strict {
		return Strict
	}
	return Lenient
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Raw holds the query string as key -> value. A missing key means "not provided".
type Raw map[string]string

// FromGin collects the first value of every query parameter.
func FromGin(c *gin.Context) Raw {
	values := c.Request.URL.Query()
	raw := make(Raw, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw
}

// Parser reads typed values out of a Raw map.
type Parser struct {
	raw    Raw
	mode   Mode
	issues []validator.Node
}

func NewParser(raw Raw, mode Mode) *Parser {
	if raw == nil {
		raw = Raw{}
	}
	return &Parser{raw: raw, mode: mode}
}

func (p *Parser) lookup(key string) (string, bool) {
	v, ok := p.raw[key]
	return v, ok
}

func (p *Parser) reject(key, constraint, message string, value string) {
	if p.mode != Strict {
		return
	}
	p.issues = append(p.issues, validator.Node{
		Property:    key,
		Constraints: map[string]string{constraint: message},
		Value:       value,
	})
}

// Int parses key as an integer. Absent, empty or malformed values yield def;
// the result is then floored at min.
func (p *Parser) Int(key string, def, min int) int {
	v, ok := p.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.reject(key, "isInt", fmt.Sprintf("%s must be an integer", key), v)
		return def
	}
	if n < min {
		return min
	}
	return n
}

// Enum returns the value of key when it is one of allowed, def otherwise.
func (p *Parser) Enum(key string, allowed []string, def string) string {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	p.reject(key, "isIn", fmt.Sprintf("%s must be one of: %s", key, strings.Join(allowed, ", ")), v)
	return def
}

// Order parses asc/desc (case-insensitive).
func (p *Parser) Order(key string, def Order) Order {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return def
	}
	switch Order(strings.ToLower(v)) {
	case Asc:
		return Asc
	case Desc:
		return Desc
	}
	p.reject(key, "isIn", fmt.Sprintf("%s must be one of: asc, desc", key), v)
	return def
}

// TriBool parses true/1/yes and false/0/no. Anything else is "unfiltered" (nil).
func (p *Parser) TriBool(key string) *bool {
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		t := true
		return &t
	case "false", "0", "no":
		f := false
		return &f
	}
	p.reject(key, "isBoolean", fmt.Sprintf("%s must be a boolean", key), v)
	return nil
}

// Search trims the value of key; blank means absent.
func (p *Parser) Search(key string) *string {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// First returns the first non-empty value among keys, in order.
func (p *Parser) First(keys ...string) *string {
	for _, k := range keys {
		if v, ok := p.lookup(k); ok && v != "" {
			return &v
		}
	}
	return nil
}

// Err returns the collected problems as a validation error (strict mode only).
func (p *Parser) Err() error {
	if len(p.issues) == 0 {
		return nil
	}
	return validator.NewError("Invalid query parameters", validator.Node{
		Property: "query",
		Children: p.issues,
	})
}

// Clamp bounds v to [min, max]. max <= 0 disables the upper bound.
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
