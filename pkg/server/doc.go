// Package server wires the HTTP router, stores, identity provider and
// token manager into a running REST API.
package server
