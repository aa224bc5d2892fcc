package report

import "errors"

var (
	// ErrMissingTemplate is returned when rendering or composing without a
	// body template.
	ErrMissingTemplate = errors.New("report: template must be configured before use")

	// ErrMissingConverter is returned by Convert when no converter is set.
	ErrMissingConverter = errors.New("report: no custom renderer has been configured")

	// ErrInvalidTitleExpression is returned when a title expression is not a
	// field read or a zero argument method call on the model.
	ErrInvalidTitleExpression = errors.New("report: invalid title expression")
)
