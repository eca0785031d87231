package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Name     string
	Email    string
	Plan     string
	Target   string
	PeriodMs string
	Theme    string
}

// SetupValuesFrom seeds the form with cfg's current settings.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Name:     cfg.Account.Name,
		Email:    cfg.Account.Email,
		Plan:     cfg.Account.Plan,
		Target:   cfg.Countdown.Target,
		PeriodMs: strconv.Itoa(cfg.Stream.PeriodMs),
		Theme:    cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the interactive configuration form bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pulse").
				Description("Set up the account card, the expiry countdown\nand the dashboard theme."),
			huh.NewInput().
				Title("Account name").
				Value(&v.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("optional").
				Value(&v.Email),
			huh.NewSelect[string]().
				Title("Plan").
				Options(huh.NewOptions("Free", "Standard", "Pro", "Enterprise")...).
				Value(&v.Plan),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Expiry date").
				Description("DD/MM/YYYY, blank counts down to the end of today").
				Value(&v.Target).
				Validate(validateTarget),
			huh.NewInput().
				Title("Sample period (ms)").
				Value(&v.PeriodMs).
				Validate(validatePeriod),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Apply copies the answers into cfg and validates the result.
func (v SetupValues) Apply(cfg *config.Config) error {
	cfg.Account.Name = strings.TrimSpace(v.Name)
	cfg.Account.Email = strings.TrimSpace(v.Email)
	if v.Plan != "" {
		cfg.Account.Plan = v.Plan
	}
	cfg.Countdown.Target = strings.TrimSpace(v.Target)
	if err := validatePeriod(v.PeriodMs); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	cfg.Stream.PeriodMs, _ = strconv.Atoi(strings.TrimSpace(v.PeriodMs))
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg.Validate()
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateTarget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := countdown.ParseDate(s, time.Local)
	return err
}

func validatePeriod(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("period must be a whole number of milliseconds")
	}
	if n <= 0 {
		return errors.New("period must be positive")
	}
	return nil
}
