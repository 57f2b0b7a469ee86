// Package validation enforces the field-level constraints declared as
// `validate` struct tags on the models, and reports failures as a
// field→messages map suitable for a 400 response body.
package validation
