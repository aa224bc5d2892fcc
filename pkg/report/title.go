package report

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var (
	titlePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(\(\))?$`)
	stringerType = reflect.TypeFor[fmt.Stringer]()
	errorType    = reflect.TypeFor[error]()
)

// titleExpr is a validated accessor: either a field read ("Name") or a zero
// argument method call ("Title()").
type titleExpr struct {
	raw  string
	name string
	call bool
}

func parseTitle(expr string) (*titleExpr, error) {
	trimmed := strings.TrimSpace(expr)
	m := titlePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not a field or zero-argument method", ErrInvalidTitleExpression, expr)
	}
	return &titleExpr{raw: trimmed, name: m[1], call: m[2] != ""}, nil
}

// validate checks the expression against the model type. Interface types are
// only checked syntactically since the dynamic type is unknown.
func (e *titleExpr) validate(t reflect.Type) error {
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}
	if e.call {
		return e.validateMethod(t)
	}

	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Struct:
		field, ok := base.FieldByName(e.name)
		if !ok || !field.IsExported() {
			return fmt.Errorf("%w: %s has no exported field %q", ErrInvalidTitleExpression, t, e.name)
		}
		return nil
	case reflect.Map:
		if base.Key().Kind() != reflect.String {
			return fmt.Errorf("%w: %s keys are not strings", ErrInvalidTitleExpression, t)
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot read %q from %s", ErrInvalidTitleExpression, e.name, t)
	}
}

func (e *titleExpr) validateMethod(t reflect.Type) error {
	method, ok := t.MethodByName(e.name)
	if !ok && t.Kind() != reflect.Pointer {
		method, ok = reflect.PointerTo(t).MethodByName(e.name)
	}
	if !ok {
		return fmt.Errorf("%w: %s has no method %q", ErrInvalidTitleExpression, t, e.name)
	}
	// Method.Type carries the receiver as its first input.
	if method.Type.NumIn() != 1 {
		return fmt.Errorf("%w: method %q takes arguments", ErrInvalidTitleExpression, e.name)
	}
	if !validTitleResult(method.Type) {
		return fmt.Errorf("%w: method %q must return a string, a fmt.Stringer, or (string, error)", ErrInvalidTitleExpression, e.name)
	}
	return nil
}

func validTitleResult(fn reflect.Type) bool {
	switch fn.NumOut() {
	case 1:
	case 2:
		if fn.Out(1) != errorType {
			return false
		}
	default:
		return false
	}
	out := fn.Out(0)
	return out.Kind() == reflect.String || out.Implements(stringerType)
}

func (e *titleExpr) eval(model any) (string, error) {
	v := reflect.ValueOf(model)
	if !v.IsValid() {
		return "", nil
	}
	if e.call {
		return e.callMethod(v)
	}
	return e.readField(v)
}

func (e *titleExpr) callMethod(v reflect.Value) (string, error) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return "", nil
	}
	m := v.MethodByName(e.name)
	if !m.IsValid() && v.Kind() != reflect.Pointer {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		m = ptr.MethodByName(e.name)
	}
	if !m.IsValid() {
		return "", fmt.Errorf("report: title method %q not found on %s", e.name, v.Type())
	}
	if m.Type().NumIn() != 0 || !validTitleResult(m.Type()) {
		return "", fmt.Errorf("%w: method %q has an unsupported signature", ErrInvalidTitleExpression, e.name)
	}

	out := m.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return "", out[1].Interface().(error)
	}
	return formatTitle(out[0]), nil
}

func (e *titleExpr) readField(v reflect.Value) (string, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		sf, ok := v.Type().FieldByName(e.name)
		if !ok || !sf.IsExported() {
			return "", fmt.Errorf("report: title field %q not found on %s", e.name, v.Type())
		}
		field, err := v.FieldByIndexErr(sf.Index)
		if err != nil {
			return "", fmt.Errorf("report: read title field %q: %w", e.name, err)
		}
		return formatTitle(field), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return "", fmt.Errorf("%w: %s keys are not strings", ErrInvalidTitleExpression, v.Type())
		}
		entry := v.MapIndex(reflect.ValueOf(e.name).Convert(v.Type().Key()))
		if !entry.IsValid() {
			return "", nil
		}
		return formatTitle(entry), nil
	default:
		return "", fmt.Errorf("report: cannot read title field %q from %s", e.name, v.Type())
	}
}

func formatTitle(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return ""
		}
	}
	return fmt.Sprint(v.Interface())
}
