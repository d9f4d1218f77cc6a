package i18n

var deDECatalog = &Catalog{
	locale: "de-DE",
	messages: map[Code]string{
		CodeRulesInvalid:       "Regelvariante ist ungültig: {{.Reason}}",
		CodePlayerCountInvalid: "Spieleranzahl muss zwischen {{.Min}} und {{.Max}} liegen",
		CodeConfigInvalid:      "Konfiguration ist ungültig: {{.Reason}}",

		CodeIllegalSelection:  "Auswahl passt nicht auf den Block, bitte erneut wählen.",
		CodeSkipLimitExceeded: "Alle {{.Cap}} Fehlwürfe sind bereits eingetragen",
		CodeUnknownColor:      "Unbekannte Reihenfarbe {{.Color}}",
		CodeSelectionEmpty:    "Mindestens eine Zahl wählen",
		CodeNoDiceOptions:     "Keine Würfeloptionen verfügbar",

		CodeInvariantViolation:  "Interner Regelfehler: {{.Reason}}",
		CodePromptAttemptsSpent: "Spieler {{.Player}} hat nach {{.Attempts}} Versuchen keine gültige Antwort gegeben",
		CodeMatchFinished:       "Das Spiel ist bereits beendet",

		CodeDiceMissing:     "Mindestens ein Würfel muss angegeben werden",
		CodeDiceInvalidSpec: "Würfel brauchen positive Seiten- und Anzahlwerte",
		CodeDiceNotRolled:   "Es muss mindestens einmal gewürfelt werden.",
		CodeChoiceParse:     "Ungültige Eingabe: {{.Input}} ({{.Reason}}) Bitte erneut.",

		CodeScriptInvalid: "Bot-Skript ist ungültig: {{.Reason}}",
	},
}
