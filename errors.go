package configarray

import "fmt"

// NotNormalizedError is returned when a query method is called on a
// ConfigArray that has not yet been normalized.
type NotNormalizedError struct {
	Op string // the operation that was attempted, e.g. "GetConfig"
}

func (e *NotNormalizedError) Error() string {
	return fmt.Sprintf("configarray: %s called before Normalize/NormalizeSync", e.Op)
}

// NotExtensibleError is returned by Push once the array has been frozen by
// a successful Normalize/NormalizeSync call.
type NotExtensibleError struct{}

func (e *NotExtensibleError) Error() string {
	return "configarray: Push called on a normalized (frozen) ConfigArray"
}

// UnexpectedArrayError is returned during normalization when a nested array
// is encountered but ArrayType was not enabled in ExtraConfigTypes.
type UnexpectedArrayError struct{}

func (e *UnexpectedArrayError) Error() string {
	return "configarray: nested array found but extraConfigTypes does not include ArrayType"
}

// UnexpectedFunctionError is returned during normalization when a factory
// callable is encountered but FunctionType was not enabled in
// ExtraConfigTypes.
type UnexpectedFunctionError struct{}

func (e *UnexpectedFunctionError) Error() string {
	return "configarray: factory found but extraConfigTypes does not include FunctionType"
}

// InvalidReturnError is returned when a factory callable returns another
// factory callable instead of a config value.
type InvalidReturnError struct{}

func (e *InvalidReturnError) Error() string {
	return "configarray: factory returned another factory, which is not allowed"
}

// AsyncNotSupportedError is returned by NormalizeSync when a factory
// returns a Deferred value.
type AsyncNotSupportedError struct{}

func (e *AsyncNotSupportedError) Error() string {
	return "configarray: factory returned a Deferred value during NormalizeSync"
}

// ValidationError is returned when an entry fails schema validation. It
// always carries the offending key name.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(`configarray: Key %q: %s`, e.Key, e.Message)
}

// InvalidFilesError is raised lazily, at GetConfig time, when an entry's
// files value is present but is not a non-empty []Pattern or []string. A
// files list with a malformed element fails normalization with a
// ValidationError instead.
type InvalidFilesError struct {
	Message string
}

func (e *InvalidFilesError) Error() string {
	return fmt.Sprintf("configarray: invalid files value: %s", e.Message)
}

// InvalidPatternError is returned by the glob engine when a string pattern
// cannot be parsed (e.g. it is empty, or becomes empty after stripping
// negation/trailing-slash markers).
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("configarray: invalid pattern %q: %s", e.Pattern, e.Reason)
}
