// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"strings"
)

const (
	greetingNoAuth     = "PJLINK 0"
	greetingAuthPrefix = "PJLINK 1 "
	authErrorReply     = "PJLINK ERRA"
)

// AuthContext holds the authentication state of one connection.
// RequiresAuth and Seed come from the device's greeting and are rebuilt on
// every connection; Password is supplied by the caller.
type AuthContext struct {
	RequiresAuth bool
	Seed         string
	Password     string
}

// ApplyGreeting updates the context from a trimmed greeting line.
// A "PJLINK 0" greeting clears any seed so no digest is sent.
func (a *AuthContext) ApplyGreeting(greeting string) error {
	if err := newInputValidator().ValidateGreeting(greeting); err != nil {
		return protocolError("AuthContext.ApplyGreeting", "invalid greeting from device", err)
	}

	switch {
	case greeting == greetingNoAuth:
		a.RequiresAuth = false
		a.Seed = ""
	case greeting == authErrorReply:
		a.RequiresAuth = false
		a.Seed = ""
		return authenticationError("AuthContext.ApplyGreeting", "device refused the connection", nil)
	default:
		a.RequiresAuth = true
		a.Seed = greeting[len(greetingAuthPrefix):]
	}

	return nil
}

// Authenticate returns the wire form of cmd, prefixed with the digest when
// the device requested authentication and issued a seed.
func (a *AuthContext) Authenticate(cmd Command) string {
	if a.RequiresAuth && a.Seed != "" {
		return Digest(a.Seed, a.Password) + cmd.String()
	}
	return cmd.String()
}

// String describes the context without revealing the password.
func (a *AuthContext) String() string {
	if !a.RequiresAuth {
		return "no authentication"
	}
	return fmt.Sprintf("authentication seed=%s", a.Seed)
}

// trimGreeting strips line terminators, NUL padding and surrounding spaces.
func trimGreeting(raw string) string {
	return strings.Trim(raw, "\r\n\x00 ")
}

// trimResponse strips the carriage return and NUL padding a device appends.
func trimResponse(raw string) string {
	return strings.Trim(raw, "\r\x00")
}
