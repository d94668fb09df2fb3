package dom

import (
	"errors"
	"strconv"
	"strings"
)

// AttributeDecoder is the extension point for typed attribute parsing.
// Implementations receive the resolved attribute (nil when absent) and
// the owning element as context, so a decoder may consult sibling
// attributes or tree position.
type AttributeDecoder interface {
	DecodeAttribute(attr *Attribute, el ElementNode) error
}

// ErrAttributeMissing is the conventional cause for decoders that
// require the attribute to be present.
var ErrAttributeMissing = errors.New("dom: required attribute missing")

// ErrNoValue is the conventional cause for decoders that require the
// attribute to carry a value.
var ErrNoValue = errors.New("dom: attribute has no value")

// DecodeError reports a failed typed-attribute decode. The cause is the
// error the decoder implementation returned its failure with.
type DecodeError struct {
	Name QName
	Err  error
}

func (e *DecodeError) Error() string {
	return "dom: decode attribute " + e.Name.String() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decoderPtr constrains PT to a pointer to T implementing
// AttributeDecoder, so Decode resolves the capability statically.
type decoderPtr[T any] interface {
	*T
	AttributeDecoder
}

// Decode parses the named attribute of el into a T. The attribute
// lookup result is handed to T's decoder as-is: decoders see nil for an
// absent attribute and choose their own policy (fail, default, ...).
// Decoder errors are propagated unwrapped; a DecodeError whose Name the
// decoder could not know (the attribute was absent) is filled in with
// the requested name.
func Decode[T any, PT decoderPtr[T]](el ElementNode, name QName) (T, error) {
	var v T
	var attr *Attribute
	if a, ok := el.Attribute(name); ok {
		attr = &a
	}
	if err := PT(&v).DecodeAttribute(attr, el); err != nil {
		var de *DecodeError
		if errors.As(err, &de) && de.Name == (QName{}) {
			de.Name = name
		}
		return v, err
	}
	return v, nil
}

// Stock decodable types. Collaborators define their own; these cover
// the common primitive cases and double as reference implementations.

// IntValue decodes a required integer attribute.
type IntValue int

func (v *IntValue) DecodeAttribute(attr *Attribute, el ElementNode) error {
	s, err := requireValue(attr)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return &DecodeError{Name: attr.Name, Err: err}
	}
	*v = IntValue(n)
	return nil
}

// FloatValue decodes a required floating-point attribute.
type FloatValue float64

func (v *FloatValue) DecodeAttribute(attr *Attribute, el ElementNode) error {
	s, err := requireValue(attr)
	if err != nil {
		return err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &DecodeError{Name: attr.Name, Err: err}
	}
	*v = FloatValue(f)
	return nil
}

// StringList decodes a required comma-separated attribute. Items are
// trimmed of surrounding spaces; empty items are kept out.
type StringList []string

func (v *StringList) DecodeAttribute(attr *Attribute, el ElementNode) error {
	s, err := requireValue(attr)
	if err != nil {
		return err
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*v = items
	return nil
}

// FlagValue decodes with boolean-attribute semantics: true for any
// presence, false when absent. It never fails.
type FlagValue bool

func (v *FlagValue) DecodeAttribute(attr *Attribute, el ElementNode) error {
	*v = attr != nil
	return nil
}

func requireValue(attr *Attribute) (string, error) {
	if attr == nil {
		return "", &DecodeError{Err: ErrAttributeMissing}
	}
	s, ok := attr.Val()
	if !ok {
		return "", &DecodeError{Name: attr.Name, Err: ErrNoValue}
	}
	return s, nil
}
