package config

import (
	"errors"
	"flag"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
)

// Exit statuses reported by the qwixx commands.
const (
	ExitOK     = 0
	ExitFatal  = 1
	ExitConfig = 2
)

// ExitCode maps a run error to the process exit status.
// Configuration and usage problems exit with ExitConfig so scripts can tell
// them apart from rule-engine failures.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeRulesInvalid,
		apperrors.CodePlayerCountInvalid,
		apperrors.CodeConfigInvalid,
		apperrors.CodeScriptInvalid:
		return ExitConfig
	default:
		return ExitFatal
	}
}
