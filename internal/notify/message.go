package notify

import (
	"fmt"
	"time"

	"github.com/couchcryptid/windwatch/internal/domain"
)

// windEmoji picks a Telegram message emoji by Beaufort band.
func windEmoji(beaufortNum int) string {
	switch {
	case beaufortNum <= 3:
		return "🌬️"
	case beaufortNum <= 5:
		return "💨"
	case beaufortNum <= 7:
		return "🌪️"
	default:
		return "⚠️🌪️"
	}
}

func subjectLine(alert Alert) string {
	return fmt.Sprintf("High Wind Alert: %s", domain.FormatSpeed(&alert.SpeedKnots))
}

// markdownMessage renders the Telegram alert body.
func markdownMessage(alert Alert, location, websiteURL string) string {
	beaufortNum, description := domain.Beaufort(&alert.SpeedKnots)
	emoji := windEmoji(beaufortNum)

	return fmt.Sprintf(`%s *High Wind Alert* %s

*Location:* %s

*Current Wind Speed:* %s
*Wind Conditions:* %s
*Wind Gusts:* %s
*Alert Threshold:* %g knots

Click [here](%s) to check the port website.

_Sent by windwatch_`,
		emoji, emoji,
		location,
		domain.FormatSpeed(&alert.SpeedKnots),
		description,
		domain.FormatSpeed(alert.GustKnots),
		alert.Threshold,
		websiteURL,
	)
}

// textMessage renders the plain-text email body.
func textMessage(alert Alert, location, websiteURL string) string {
	_, description := domain.Beaufort(&alert.SpeedKnots)

	return fmt.Sprintf(`High Wind Alert

High wind conditions have been detected at %s!

Current wind speed: %s
Wind conditions: %s
Wind gusts: %s
Alert threshold: %g knots

Check the website for more details: %s

This is an automated message from windwatch.
Time: %s
`,
		location,
		domain.FormatSpeed(&alert.SpeedKnots),
		description,
		domain.FormatSpeed(alert.GustKnots),
		alert.Threshold,
		websiteURL,
		time.Now().Format(time.RFC1123),
	)
}

// htmlMessage renders the styled HTML email body.
func htmlMessage(alert Alert, location, websiteURL string) string {
	_, description := domain.Beaufort(&alert.SpeedKnots)

	return fmt.Sprintf(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
h1 { color: #e74c3c; border-bottom: 1px solid #eee; padding-bottom: 10px; }
.data-row { display: flex; margin-bottom: 10px; }
.label { font-weight: bold; width: 180px; }
.highlight { color: #e74c3c; font-weight: bold; }
.footer { margin-top: 30px; font-size: 0.8em; color: #777; border-top: 1px solid #eee; padding-top: 10px; }
.button { display: inline-block; background-color: #3498db; color: white; padding: 10px 15px; text-decoration: none; border-radius: 4px; margin-top: 15px; }
</style>
</head>
<body>
<div class="container">
<h1>🌬️ High Wind Alert 🌬️</h1>
<p>High wind conditions have been detected at <strong>%s</strong>!</p>
<div class="data-row"><div class="label">Current wind speed:</div><div class="value highlight">%s</div></div>
<div class="data-row"><div class="label">Wind conditions:</div><div class="value">%s</div></div>
<div class="data-row"><div class="label">Wind gusts:</div><div class="value">%s</div></div>
<div class="data-row"><div class="label">Alert threshold:</div><div class="value">%g knots</div></div>
<p><a href="%s" class="button">View Port Website</a></p>
<div class="footer">This is an automated message from windwatch.<br>Time: %s</div>
</div>
</body>
</html>`,
		location,
		domain.FormatSpeed(&alert.SpeedKnots),
		description,
		domain.FormatSpeed(alert.GustKnots),
		alert.Threshold,
		websiteURL,
		time.Now().Format(time.RFC1123),
	)
}
