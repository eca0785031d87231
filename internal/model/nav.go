package model

import "strings"

// NavItem is one entry in the sidebar navigation list.
type NavItem struct {
	Label string
	Hint  string
}

// DefaultNav is the static sidebar list.
var DefaultNav = []NavItem{
	{Label: "Overview", Hint: "Account and live utilization"},
	{Label: "Utilization", Hint: "Sample stream chart"},
	{Label: "Expiry", Hint: "Countdown to the account deadline"},
	{Label: "Events", Hint: "Notification history"},
	{Label: "Alerts", Hint: "Threshold notifications"},
	{Label: "Billing", Hint: "Plan and invoices"},
	{Label: "Team", Hint: "Members and roles"},
	{Label: "Settings", Hint: "Dashboard preferences"},
}

// FilterNav returns the items whose label contains query, ignoring case.
// An empty query returns items unchanged.
func FilterNav(items []NavItem, query string) []NavItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	var result []NavItem
	for _, it := range items {
		if containsIgnoreCase(it.Label, query) {
			result = append(result, it)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
