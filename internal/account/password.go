// Package account holds the credential-rotation logic: the password-change
// workflow and the redirect gate for users with a pending mandatory change.
// Everything here is pure or runs only through injected collaborators, so
// the HTTP layer and tests can drive it without a database.
package account

const minPasswordLength = 8

// Messages are returned as-is to the client.
const (
	MsgPasswordTooShort = "password must be at least 8 characters"
	MsgPasswordMismatch = "password and confirmation do not match"
	MsgTryAgainLater    = "could not update the password, please try again later"
)

// ResultKind tags the outcome of a password change attempt.
type ResultKind int

const (
	Success ResultKind = iota
	ValidationError
	Error
)

// Result is the per-invocation outcome. Message is empty on Success and
// display-ready otherwise.
type Result struct {
	Kind    ResultKind
	Message string
}

// ProcessPasswordChange validates the candidate password locally and, only
// then, runs the two collaborators strictly in order: updatePassword first,
// markChanged only after updatePassword succeeded. Each runs at most once;
// there are no retries and no rollback. Collaborator errors are surfaced
// with their own message, or a generic retry message when they carry none.
func ProcessPasswordChange(password, confirmation string, updatePassword func(string) error, markChanged func() error) Result {
	if len(password) < minPasswordLength {
		return Result{Kind: ValidationError, Message: MsgPasswordTooShort}
	}
	if password != confirmation {
		return Result{Kind: ValidationError, Message: MsgPasswordMismatch}
	}
	if err := updatePassword(password); err != nil {
		return Result{Kind: Error, Message: errorMessage(err)}
	}
	if err := markChanged(); err != nil {
		return Result{Kind: Error, Message: errorMessage(err)}
	}
	return Result{Kind: Success}
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgTryAgainLater
}
