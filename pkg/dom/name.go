package dom

// QName is a namespace-qualified name for tags and attributes.
// Two names are equal iff both fields match; an empty Space means
// unqualified and is distinct from any namespace string.
type QName struct {
	Space string // Namespace, "" when unqualified
	Local string // Local name
}

// Name returns an unqualified QName. This is the ergonomic constructor
// for the common lookup case: el.Attribute(dom.Name("class")).
func Name(local string) QName {
	return QName{Local: local}
}

// SpacedName returns a namespace-qualified QName.
func SpacedName(space, local string) QName {
	return QName{Space: space, Local: local}
}

// String returns "space:local", or just "local" when unqualified.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return q.Space + ":" + q.Local
}

// Attribute is a single name/value pair on an element.
// A nil Value means the attribute is present without a value, as in
// <input disabled>. Names within one element are not required to be
// unique; lookup returns the first match in document order.
type Attribute struct {
	Name  QName
	Value *string
}

// Attr creates an attribute with an unqualified name and a value.
func Attr(local, value string) Attribute {
	return Attribute{Name: Name(local), Value: &value}
}

// AttrNS creates a namespace-qualified attribute with a value.
func AttrNS(space, local, value string) Attribute {
	return Attribute{Name: SpacedName(space, local), Value: &value}
}

// MarkerAttr creates an attribute that is present without a value.
func MarkerAttr(local string) Attribute {
	return Attribute{Name: Name(local)}
}

// Val returns the attribute value. The second result is false when the
// attribute carries no value.
func (a Attribute) Val() (string, bool) {
	if a.Value == nil {
		return "", false
	}
	return *a.Value, true
}

// String returns the attribute in markup form: name, name="value".
func (a Attribute) String() string {
	if a.Value == nil {
		return a.Name.String()
	}
	return a.Name.String() + `="` + *a.Value + `"`
}

// ElementData is the payload of an element node: its qualified tag name
// and the attribute list in document order, duplicates preserved.
type ElementData struct {
	Name  QName
	Attrs []Attribute
}
