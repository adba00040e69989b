package email

import (
	"fmt"
	"html"
)

// AppointmentEmailData carries what the patient sees about one appointment.
type AppointmentEmailData struct {
	Name               string
	Email              string
	Doctor             string
	Date               string
	Time               string
	Status             string
	CancellationReason string
	AppName            string
}

// BuildAppointmentEmail renders the notification for the appointment's
// current status. Unknown statuses get the request-received wording.
func BuildAppointmentEmail(data AppointmentEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "CarePulse"
	}

	name := data.Name
	if name == "" {
		name = "Patient"
	}

	var subject, lead string
	switch data.Status {
	case "scheduled":
		subject = "Your appointment is confirmed"
		lead = fmt.Sprintf("your appointment is confirmed for %s at %s.", data.Date, data.Time)
	case "cancelled":
		subject = "Your appointment has been cancelled"
		lead = fmt.Sprintf("your appointment on %s at %s has been cancelled.", data.Date, data.Time)
	default:
		subject = "We received your appointment request"
		lead = fmt.Sprintf("we received your request for %s at %s. We will confirm it shortly.", data.Date, data.Time)
	}

	var extra string
	if data.Doctor != "" {
		extra = fmt.Sprintf("\nDoctor: %s", data.Doctor)
	}
	if data.Status == "cancelled" && data.CancellationReason != "" {
		extra += fmt.Sprintf("\nReason: %s", data.CancellationReason)
	}

	textBody := fmt.Sprintf(`Hello %s,

%s%s

Thanks,
The %s Team`, name, capitalize(lead), extra, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #24ae7c;">Hello %s,</h2>
    <p>%s</p>
    <pre style="font-family: inherit;">%s</pre>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		html.EscapeString(name), html.EscapeString(capitalize(lead)), html.EscapeString(extra), html.EscapeString(appName))

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
