// Package main provides the entry point of the identity endpoint.
// It runs a Fiber web server that exchanges Google ID tokens for refresh and
// access tokens, registering each user with an immutable role (student or
// expert) on first login. Users are persisted with gorm in MySQL, PostgreSQL
// or SQLite.
package main
