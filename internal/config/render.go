package config

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/edgard/dualcoach/internal/fitness"
)

// Coach returns the persona name used for a profile of gender g.
func (m *MessagesConfig) Coach(g fitness.Gender) string {
	if g == fitness.GenderFemale {
		return m.CoachFemale
	}
	return m.CoachMale
}

// BMICategory returns the display name of c, falling back to its identifier.
func (m *MessagesConfig) BMICategory(c fitness.BMICategory) string {
	if name, ok := m.BMICategories[string(c)]; ok {
		return name
	}
	return string(c)
}

// Render executes the message template src with data.
func (m *MessagesConfig) Render(src string, data any) (string, error) {
	tmpl, err := template.New("message").Funcs(m.funcs()).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse message template: %w", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render message template: %w", err)
	}
	return sb.String(), nil
}

// FormatMeasurements lists m one circumference per line.
func (m *MessagesConfig) FormatMeasurements(meas fitness.Measurements) string {
	l := m.MeasurementLabels
	lines := []string{
		fmt.Sprintf("• %s: %s см", l.Chest, formatNumber(meas.Chest)),
		fmt.Sprintf("• %s: %s см", l.Waist, formatNumber(meas.Waist)),
		fmt.Sprintf("• %s: %s см", l.Hips, formatNumber(meas.Hips)),
		fmt.Sprintf("• %s: %s см", l.Bicep, formatNumber(meas.Bicep)),
	}
	return strings.Join(lines, "\n")
}

func (m *MessagesConfig) funcs() template.FuncMap {
	return template.FuncMap{
		"num":          formatNumber,
		"signed":       formatSigned,
		"measurements": m.FormatMeasurements,
	}
}

// templates lists the message fields that are rendered as templates.
func (m *MessagesConfig) templates() map[string]string {
	return map[string]string{
		"greeting_back":        m.GreetingBack,
		"onboarding_completed": m.OnboardingCompleted,
		"measurements_updated": m.MeasurementsUpdated,
		"settings":             m.Settings,
		"progress":             m.Progress,
		"farewell":             m.Farewell,
	}
}

func (m *MessagesConfig) checkTemplates() error {
	for name, src := range m.templates() {
		if _, err := template.New(name).Funcs(m.funcs()).Parse(src); err != nil {
			return fmt.Errorf("%w: messages.%s: %w", ErrValidation, name, err)
		}
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSigned(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}
