// Package timezone keeps the console's notion of "today" aligned with the hotel.
//
// The location is configured via APP_TIMEZONE and applied with Setup during startup:
//
//	timezone.Setup(cfg.App.Timezone)
//	today := timezone.Today()                     // midnight of the current hotel day
//	d, err := timezone.Parse("2006-01-02", "2025-03-10")
//
// Until Setup runs, every helper works in UTC.
// Use standard IANA timezone database names such as "UTC", "Asia/Jakarta" or "Europe/London".
package timezone
