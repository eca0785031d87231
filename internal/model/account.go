// Package model holds the static display data composed into the dashboard.
package model

// Account is the static account/profile card content.
type Account struct {
	Name   string
	Email  string
	Plan   string
	Status string
	Region string
}

// Active reports whether the account status reads as active.
func (a Account) Active() bool {
	return containsIgnoreCase(a.Status, "active") && !containsIgnoreCase(a.Status, "inactive")
}
