package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeRulesInvalid        = "RULES_INVALID"
	CodePlayerCountInvalid  = "PLAYER_COUNT_INVALID"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeIllegalSelection    = "ILLEGAL_SELECTION"
	CodeSkipLimitExceeded   = "SKIP_LIMIT_EXCEEDED"
	CodeUnknownColor        = "UNKNOWN_COLOR"
	CodeSelectionEmpty      = "SELECTION_EMPTY"
	CodeNoDiceOptions       = "NO_DICE_OPTIONS"
	CodeInvariantViolation  = "INVARIANT_VIOLATION"
	CodePromptAttemptsSpent = "PROMPT_ATTEMPTS_EXHAUSTED"
	CodeMatchFinished       = "MATCH_FINISHED"
	CodeDiceMissing         = "DICE_MISSING"
	CodeDiceInvalidSpec     = "DICE_INVALID_SPEC"
	CodeDiceNotRolled       = "DICE_NOT_ROLLED"
	CodeChoiceParse         = "CHOICE_PARSE"
	CodeScriptInvalid       = "SCRIPT_INVALID"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeRulesInvalid:       "Rule variant is invalid: {{.Reason}}",
		CodePlayerCountInvalid: "Player count must be between {{.Min}} and {{.Max}}",
		CodeConfigInvalid:      "Configuration is invalid: {{.Reason}}",

		CodeIllegalSelection:  "Selection can not be applied to board, try again.",
		CodeSkipLimitExceeded: "Board already used all {{.Cap}} misses",
		CodeUnknownColor:      "Unknown lane color {{.Color}}",
		CodeSelectionEmpty:    "Choose at least one number",
		CodeNoDiceOptions:     "No dice options available",

		CodeInvariantViolation:  "Internal rule error: {{.Reason}}",
		CodePromptAttemptsSpent: "Player {{.Player}} gave no valid answer after {{.Attempts}} attempts",
		CodeMatchFinished:       "The match is already over",

		CodeDiceMissing:     "At least one die must be specified",
		CodeDiceInvalidSpec: "Dice must have positive sides and count",
		CodeDiceNotRolled:   "Dice must be rolled at least once.",
		CodeChoiceParse:     "Invalid input: {{.Input}} ({{.Reason}}) Try again.",

		CodeScriptInvalid: "Bot script is invalid: {{.Reason}}",
	},
}
