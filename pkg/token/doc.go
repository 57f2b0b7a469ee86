// Package token issues and verifies the opaque bearer tokens returned
// by login. Tokens are HMAC-signed JWTs carrying the username and role
// memberships; the signing key comes from REFDATA_TOKEN_KEY.
package token
