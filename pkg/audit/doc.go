// Package audit provides security audit logging in RFC5424 syslog format.
//
// Events describe authentication attempts, user registration, and CRUD
// operations on reference data. Each event is written as a structured
// syslog line to stdout and, when AUDIT_DATABASE_URL is set, persisted
// to a messages table.
//
// Auditing is toggled with the REFDATA_AUDIT_ENABLED environment
// variable and defaults to on.
package audit
