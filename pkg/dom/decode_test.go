package dom

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeInt(t *testing.T) {
	el := buildElement(t, Name("input"),
		Attr("min", "42"),
		Attr("max", "not a number"),
		MarkerAttr("bare"),
	)

	got, err := Decode[IntValue](el, Name("min"))
	if err != nil {
		t.Fatalf("Decode(min) error: %v", err)
	}
	if got != 42 {
		t.Errorf("Decode(min) = %d, want 42", got)
	}

	if _, err := Decode[IntValue](el, Name("max")); err == nil {
		t.Error("Decode(max) succeeded on malformed value")
	}

	_, err = Decode[IntValue](el, Name("missing"))
	if !errors.Is(err, ErrAttributeMissing) {
		t.Errorf("Decode(missing) error = %v, want ErrAttributeMissing", err)
	}

	_, err = Decode[IntValue](el, Name("bare"))
	if !errors.Is(err, ErrNoValue) {
		t.Errorf("Decode(bare) error = %v, want ErrNoValue", err)
	}
}

func TestDecodeFloat(t *testing.T) {
	el := buildElement(t, Name("meter"), Attr("value", "0.75"))

	got, err := Decode[FloatValue](el, Name("value"))
	if err != nil {
		t.Fatalf("Decode(value) error: %v", err)
	}
	if got != 0.75 {
		t.Errorf("Decode(value) = %v, want 0.75", got)
	}
}

func TestDecodeStringList(t *testing.T) {
	el := buildElement(t, Name("div"), Attr("tags", "a, b ,,c"))

	got, err := Decode[StringList](el, Name("tags"))
	if err != nil {
		t.Fatalf("Decode(tags) error: %v", err)
	}
	want := StringList{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(tags) = %v, want %v", got, want)
	}
}

func TestDecodeFlag(t *testing.T) {
	el := buildElement(t, Name("input"),
		MarkerAttr("disabled"),
		Attr("readonly", "false"),
	)

	tests := []struct {
		name string
		attr QName
		want FlagValue
	}{
		{"marker", Name("disabled"), true},
		{"explicit false still present", Name("readonly"), true},
		{"absent", Name("missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[FlagValue](el, tt.attr)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode(%v) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	el := buildElement(t, Name("input"), Attr("min", "nope"))

	_, err := Decode[IntValue](el, Name("min"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a *DecodeError", err)
	}
	if de.Name != Name("min") {
		t.Errorf("DecodeError.Name = %v, want min", de.Name)
	}
	if de.Unwrap() == nil {
		t.Error("DecodeError.Unwrap() = nil, want cause")
	}
}

func TestDecodeMissingAttributeNamesAttribute(t *testing.T) {
	el := buildElement(t, Name("input"))

	_, err := Decode[IntValue](el, Name("min"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a *DecodeError", err)
	}
	if de.Name != Name("min") {
		t.Errorf("DecodeError.Name = %v, want min", de.Name)
	}
	if !strings.Contains(de.Error(), "min") {
		t.Errorf("error %q does not name the attribute", de.Error())
	}
}

// rangeValue exercises the decoding context: it reads its own attribute
// plus the sibling "max" attribute of the same element.
type rangeValue struct {
	Value, Max int
}

func (r *rangeValue) DecodeAttribute(attr *Attribute, el ElementNode) error {
	max, err := Decode[IntValue](el, Name("max"))
	if err != nil {
		return err
	}
	var value IntValue
	if err := value.DecodeAttribute(attr, el); err != nil {
		return err
	}
	r.Value, r.Max = int(value), int(max)
	return nil
}

func TestDecodeWithElementContext(t *testing.T) {
	el := buildElement(t, Name("progress"),
		Attr("value", "3"),
		Attr("max", "10"),
	)

	got, err := Decode[rangeValue](el, Name("value"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got.Value != 3 || got.Max != 10 {
		t.Errorf("Decode = %+v, want {3 10}", got)
	}
}
