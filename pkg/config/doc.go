// Package config loads refdata server settings from
// /etc/refdata/config/refdata.yml (or REFDATA_CONFIG_PATH) with
// REFDATA_* environment variables taking precedence, and tracks the
// source of every attribute.
package config
