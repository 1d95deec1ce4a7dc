package assertions

// Failures turns a failed expectation into the error returned to the caller.
type Failures interface {
	Failure(info Info, message ErrorMessageFactory) error
}

// FailuresFunc adapts a function to the Failures interface.
type FailuresFunc func(info Info, message ErrorMessageFactory) error

func (f FailuresFunc) Failure(info Info, message ErrorMessageFactory) error {
	return f(info, message)
}

type standardFailures struct{}

// StandardFailures returns the Failures that builds an *AssertionError from
// the description and representation carried by info.
func StandardFailures() Failures {
	return standardFailures{}
}

func (standardFailures) Failure(info Info, message ErrorMessageFactory) error {
	return &AssertionError{
		Kind:        message.Kind(),
		Description: info.Description,
		Message:     message.Create(info.representation()),
	}
}
