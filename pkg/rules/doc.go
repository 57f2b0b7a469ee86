// Package rules loads rule definitions from YAML files into the
// rule_names table. Definitions are keyed by name so a rules file can
// be re-applied safely.
package rules
