// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Rules/configuration errors
	CodeRulesInvalid       Code = "RULES_INVALID"
	CodePlayerCountInvalid Code = "PLAYER_COUNT_INVALID"
	CodeConfigInvalid      Code = "CONFIG_INVALID"

	// Lane and board errors
	CodeIllegalSelection    Code = "ILLEGAL_SELECTION"
	CodeSkipLimitExceeded   Code = "SKIP_LIMIT_EXCEEDED"
	CodeUnknownColor        Code = "UNKNOWN_COLOR"
	CodeSelectionEmpty      Code = "SELECTION_EMPTY"
	CodeNoDiceOptions       Code = "NO_DICE_OPTIONS"
	CodeInvariantViolation  Code = "INVARIANT_VIOLATION"
	CodePromptAttemptsSpent Code = "PROMPT_ATTEMPTS_EXHAUSTED"
	CodeMatchFinished       Code = "MATCH_FINISHED"

	// Dice/mechanics errors
	CodeDiceMissing     Code = "DICE_MISSING"
	CodeDiceInvalidSpec Code = "DICE_INVALID_SPEC"
	CodeDiceNotRolled   Code = "DICE_NOT_ROLLED"
	CodeChoiceParse     Code = "CHOICE_PARSE"

	// Player/script errors
	CodeScriptInvalid Code = "SCRIPT_INVALID"
)

// Fatal reports whether errors carrying this code indicate a logic defect
// that must abort the round instead of being surfaced for re-entry.
func (c Code) Fatal() bool {
	switch c {
	// Recoverable - surfaced to the player, who is asked again
	case CodeIllegalSelection,
		CodeSelectionEmpty,
		CodeChoiceParse,
		CodeUnknownColor:
		return false

	// Configuration - rejected before any play starts
	case CodeRulesInvalid,
		CodePlayerCountInvalid,
		CodeConfigInvalid,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeScriptInvalid:
		return false

	// Fatal - the termination or validation checks were bypassed
	case CodeSkipLimitExceeded,
		CodeInvariantViolation,
		CodePromptAttemptsSpent,
		CodeMatchFinished,
		CodeDiceNotRolled,
		CodeNoDiceOptions:
		return true

	default:
		return true
	}
}
