// Package timezone pins the facility clock to APP_TIMEZONE.
//
// Booking dates (YYYY-MM-DD) and slot times (HH:MM) are wall-clock values in
// the facility's zone, so "today" and "now" must come from here rather than
// from the host clock:
//
//	today := timezone.Today()             // "2026-10-20"
//	minute := timezone.MinuteOfDay(now)   // 0..1439
//
// The zone is loaded from config on first use. Unknown zone names fall back
// to UTC. Use IANA names such as "Asia/Jakarta" or "Europe/London".
package timezone
