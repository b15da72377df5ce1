package model

// Account is one row of the chart of accounts offered to the AI for
// expense-account assignment.
type Account struct {
	Code string
	Name string
}

// Label renders the account the way it appears in prompts and filenames,
// e.g. "4400 - Einkauf Dienstleistungen".
func (a Account) Label() string {
	return a.Code + " - " + a.Name
}
