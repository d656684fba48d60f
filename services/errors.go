package services

// validationError and conflictError let transaction bodies signal
// caller-visible failures distinct from storage errors, so handlers map
// them to 400/409 instead of a generic 500.

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func errValidation(msg string) error { return &validationError{msg: msg} }

type conflictError struct{ msg string }

func (e *conflictError) Error() string { return e.msg }

func errConflict(msg string) error { return &conflictError{msg: msg} }

type forbiddenError struct{ msg string }

func (e *forbiddenError) Error() string { return e.msg }

func errForbidden(msg string) error { return &forbiddenError{msg: msg} }
