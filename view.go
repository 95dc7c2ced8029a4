package formz

import "reflect"

// View is the concrete UI element backing a Field. The Field never owns its
// lifecycle; it only writes named attributes, the displayed value and focus.
type View interface {
	// SetAttribute sets a named attribute on the element.
	SetAttribute(name, value string)

	// SetValue replaces the value displayed by the element.
	SetValue(value string)

	// Focus requests input focus for the element.
	Focus()
}

// ChangeEvent is the payload of a UI change event.
type ChangeEvent struct {
	Value string
}

// BlurEvent is the payload of a UI blur event.
type BlurEvent struct{}

// isNilView reports whether v is nil or an interface wrapping a nil pointer.
func isNilView(v View) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
