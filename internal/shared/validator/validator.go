package validator

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Node is one entry of a nested validation error tree.
type Node struct {
	Property    string            `json:"property"`
	Constraints map[string]string `json:"constraints,omitempty"`
	Value       any               `json:"value,omitempty"`
	Children    []Node            `json:"children,omitempty"`
}

// FieldError is a flattened validation failure returned to clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// Format flattens nodes into one FieldError per non-empty constraint message.
// Field is the dot-joined path from the root node to the failing property.
func Format(nodes []Node) []FieldError {
	out := make([]FieldError, 0)
	for _, n := range nodes {
		out = appendNode(out, "", n)
	}
	return out
}

func appendNode(out []FieldError, parent string, n Node) []FieldError {
	path := n.Property
	if parent != "" {
		path = parent + "." + n.Property
	}

	keys := make([]string, 0, len(n.Constraints))
	for k := range n.Constraints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		msg := n.Constraints[k]
		if strings.TrimSpace(msg) == "" {
			continue
		}
		out = append(out, FieldError{Field: path, Message: msg, Value: n.Value})
	}

	for _, child := range n.Children {
		out = appendNode(out, path, child)
	}
	return out
}

// FromOzzo converts an ozzo-validation result into a Node rooted at property.
// values supplies the offending input per field name; missing entries stay nil.
func FromOzzo(property string, err error, values map[string]any) Node {
	root := Node{Property: property}
	if err == nil {
		return root
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		root.Constraints = map[string]string{constraintKey(err): err.Error()}
		return root
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		fieldErr := errs[f]
		if fieldErr == nil {
			continue
		}

		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			var childValues map[string]any
			if m, ok := values[f].(map[string]any); ok {
				childValues = m
			}
			root.Children = append(root.Children, FromOzzo(f, nested, childValues))
			continue
		}

		root.Children = append(root.Children, Node{
			Property:    f,
			Constraints: map[string]string{constraintKey(fieldErr): fieldErr.Error()},
			Value:       values[f],
		})
	}
	return root
}

func constraintKey(err error) string {
	var eo validation.ErrorObject
	if errors.As(err, &eo) && eo.Code() != "" {
		return eo.Code()
	}
	return "invalid"
}

// Error is returned by services when input fails validation.
type Error struct {
	Message string
	Fields  []FieldError
}

// NewError formats nodes into an Error.
func NewError(message string, nodes ...Node) *Error {
	return &Error{Message: message, Fields: Format(nodes)}
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Fields[0].Field + " " + e.Fields[0].Message
}

// Lookup indexes messages by field path. Every entry is reachable by its
// full path and by its path with the leading "payload." removed, so a form
// can resolve either "siteTitle" or "payload.siteTitle".
func (e *Error) Lookup() map[string][]string {
	out := make(map[string][]string, len(e.Fields)*2)
	for _, f := range e.Fields {
		bare := strings.TrimPrefix(f.Field, "payload.")
		out[bare] = append(out[bare], f.Message)
		out["payload."+bare] = append(out["payload."+bare], f.Message)
	}
	return out
}

// Details is the value placed in error.details of the response envelope.
func (e *Error) Details() []FieldError {
	return e.Fields
}

// IsValidationError reports whether err carries a validation Error.
func IsValidationError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
