package main

// AppError is returned by the commands to provide a message for the operator
// and the original underlying error.
type AppError struct {
	message string
	err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.err == nil {
		return e.message
	}
	return e.message + ": " + e.err.Error()
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}
