package services

import (
	"fmt"
	"strings"

	"github.com/unis-raj-shah/warehouse-scheduler/internal/config"
	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
)

// Notifier is the sink for computed schedules. Implementations must treat
// each send independently; the orchestrator never aborts a run on a failed
// notification.
type Notifier interface {
	SendSchedule(day model.DayResult) error
	SendStaffingForecast(tomorrow, dayAfter model.DayResult, shortages map[string]int) error
}

// EmailSender is the transport EmailNotifier writes to.
type EmailSender interface {
	SendEmail(to []string, subject, htmlBody string) error
}

// EmailNotifier renders schedule and forecast emails and sends them to the
// configured recipient list.
type EmailNotifier struct {
	sender     EmailSender
	recipients []string
	shift      config.ShiftInfo
}

// NewEmailNotifier creates a notifier from the application configuration.
func NewEmailNotifier(sender EmailSender, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{
		sender:     sender,
		recipients: cfg.Recipients,
		shift:      cfg.DefaultShift,
	}
}

// SendSchedule emails the staffing plan for one day.
func (n *EmailNotifier) SendSchedule(day model.DayResult) error {
	subject := fmt.Sprintf("Warehouse Shift Schedule for %s (%s)", day.Date, day.DayName)
	return n.sender.SendEmail(n.recipients, subject, n.renderSchedule(day))
}

// SendStaffingForecast emails the combined two-day forecast with the
// shortage table for the nearer day.
func (n *EmailNotifier) SendStaffingForecast(tomorrow, dayAfter model.DayResult, shortages map[string]int) error {
	subject := fmt.Sprintf("Forecast and Staffing Alert for %s and %s", tomorrow.Date, dayAfter.Date)

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>Two-Day Workload Forecast</h2>")
	writeForecastTable(&b, tomorrow, dayAfter)

	b.WriteString(fmt.Sprintf("<h2>Required Staffing for %s</h2>", tomorrow.Date))
	writeRequiredRolesTable(&b, tomorrow.RequiredRoles)
	b.WriteString(fmt.Sprintf("<h2>Required Staffing for %s</h2>", dayAfter.Date))
	writeRequiredRolesTable(&b, dayAfter.RequiredRoles)

	if len(shortages) > 0 {
		b.WriteString(fmt.Sprintf("<h2>Staffing Shortages for %s</h2>", tomorrow.Date))
		b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Role</th><th>Short By</th></tr>")
		for _, rc := range tomorrow.RequiredRoles.Flatten() {
			if missing, ok := shortages[rc.Key]; ok {
				b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td></tr>", prettyRoleKey(rc.Key), missing))
			}
		}
		b.WriteString("</table>")
	}

	b.WriteString("</body></html>")
	return n.sender.SendEmail(n.recipients, subject, b.String())
}

func (n *EmailNotifier) renderSchedule(day model.DayResult) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<h2>Shift Schedule for %s, %s</h2>", day.DayName, day.Date))

	if n.shift.StartTime != "" {
		b.WriteString(fmt.Sprintf("<p>Shift: %s - %s (lunch %s) at %s</p>",
			n.shift.StartTime, n.shift.EndTime, n.shift.LunchDuration, n.shift.Location))
	}

	b.WriteString("<h3>Required Roles</h3>")
	writeRequiredRolesTable(&b, day.RequiredRoles)

	b.WriteString("<h3>Assigned Employees</h3>")
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Role</th><th>Employees</th></tr>")
	for _, rc := range day.RequiredRoles.Flatten() {
		assigned := day.AssignedEmployees[rc.Key]
		names := "-"
		if len(assigned) > 0 {
			names = strings.Join(assigned, ", ")
		}
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td></tr>", prettyRoleKey(rc.Key), names))
	}
	b.WriteString("</table>")

	b.WriteString("</body></html>")
	return b.String()
}

func writeForecastTable(b *strings.Builder, tomorrow, dayAfter model.DayResult) {
	b.WriteString("<table border=\"1\" cellpadding=\"4\">")
	b.WriteString(fmt.Sprintf("<tr><th>Signal</th><th>%s (%s)</th><th>%s (%s)</th></tr>",
		tomorrow.Date, tomorrow.DayName, dayAfter.Date, dayAfter.DayName))
	rows := []struct {
		label string
		a, b  float64
	}{
		{"Incoming pallets", tomorrow.Forecast.IncomingPallets, dayAfter.Forecast.IncomingPallets},
		{"Shipping pallets", tomorrow.Forecast.ShippingPallets, dayAfter.Forecast.ShippingPallets},
		{"Order qty", tomorrow.Forecast.TotalOrderQty, dayAfter.Forecast.TotalOrderQty},
		{"Cases to pick", tomorrow.Forecast.CasesToPick, dayAfter.Forecast.CasesToPick},
		{"Staged pallets", tomorrow.Forecast.StagedPallets, dayAfter.Forecast.StagedPallets},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.0f</td><td>%.0f</td></tr>", row.label, row.a, row.b))
	}
	b.WriteString("</table>")
}

func writeRequiredRolesTable(b *strings.Builder, required model.RequiredRoles) {
	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Role</th><th>Headcount</th></tr>")
	for _, rc := range required.Flatten() {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%d</td></tr>", prettyRoleKey(rc.Key), rc.Count))
	}
	b.WriteString("</table>")
}

// prettyRoleKey turns "inbound_forklift_driver" into "Inbound Forklift Driver".
func prettyRoleKey(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
