package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/oddkernel/pkg/errors"
)

// Exit codes returned by the oddkernel binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInput       = 2   // rejected input: bad flags, files, graphs or options
	ExitInternal    = 70  // a kernel stage received data it should never see
	ExitInterrupted = 130 // SIGINT, following the shell convention
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	if errors.IsContractViolation(err) {
		return ExitInternal
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidHeight,
		errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidIdentity,
		errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound:
		return ExitInput
	}
	return ExitFailure
}

// ErrorMessage formats err for the terminal.
func ErrorMessage(err error) string {
	return styleIconError.Render(iconError) + " " + err.Error()
}
