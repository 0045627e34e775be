// Package calendar exports the team schedule as an iCalendar document that
// families can subscribe to or import.
package calendar
