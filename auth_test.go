// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"strings"
	"testing"
)

func TestAuthContext_ApplyGreeting(t *testing.T) {
	tests := []struct {
		name         string
		greeting     string
		wantAuth     bool
		wantSeed     string
		wantErrCode  ErrorCode
		expectsError bool
	}{
		{name: "no authentication", greeting: "PJLINK 0"},
		{name: "authentication", greeting: "PJLINK 1 498e4a67", wantAuth: true, wantSeed: "498e4a67"},
		{name: "refused", greeting: "PJLINK ERRA", expectsError: true, wantErrCode: ErrAuthentication},
		{name: "missing seed", greeting: "PJLINK 1 ", expectsError: true, wantErrCode: ErrProtocol},
		{name: "seed with space", greeting: "PJLINK 1 ab cd", expectsError: true, wantErrCode: ErrProtocol},
		{name: "unknown class", greeting: "PJLINK 2", expectsError: true, wantErrCode: ErrProtocol},
		{name: "empty", greeting: "", expectsError: true, wantErrCode: ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a AuthContext
			err := a.ApplyGreeting(tt.greeting)

			if tt.expectsError {
				if !IsPJLinkError(err, tt.wantErrCode) {
					t.Fatalf("ApplyGreeting(%q) error = %v, want code %v", tt.greeting, err, tt.wantErrCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyGreeting(%q) error = %v", tt.greeting, err)
			}
			if a.RequiresAuth != tt.wantAuth || a.Seed != tt.wantSeed {
				t.Errorf("ApplyGreeting(%q) = {%v %q}, want {%v %q}",
					tt.greeting, a.RequiresAuth, a.Seed, tt.wantAuth, tt.wantSeed)
			}
		})
	}
}

func TestAuthContext_NoAuthGreetingClearsSeed(t *testing.T) {
	a := AuthContext{Password: "JBMIAProjectorLink"}

	if err := a.ApplyGreeting("PJLINK 1 498e4a67"); err != nil {
		t.Fatal(err)
	}
	if err := a.ApplyGreeting("PJLINK 0"); err != nil {
		t.Fatal(err)
	}

	if a.Seed != "" || a.RequiresAuth {
		t.Errorf("seed should be cleared, got %s", a.String())
	}
	if got := a.Authenticate(Query(CmdPower)); got != "%1POWR ?\r" {
		t.Errorf("Authenticate() = %q, want plain command", got)
	}
}

func TestAuthContext_Authenticate(t *testing.T) {
	a := AuthContext{Password: "JBMIAProjectorLink"}
	if err := a.ApplyGreeting("PJLINK 1 498e4a67"); err != nil {
		t.Fatal(err)
	}

	want := "5d8409bc1c3fa39749434aa3a5c38682%1POWR 1\r"
	if got := a.Authenticate(PowerCommand(true)); got != want {
		t.Errorf("Authenticate() = %q, want %q", got, want)
	}

	// RequiresAuth without a seed sends the plain command.
	b := AuthContext{RequiresAuth: true, Password: "x"}
	if got := b.Authenticate(PowerCommand(true)); got != "%1POWR 1\r" {
		t.Errorf("Authenticate() without seed = %q", got)
	}
}

func TestAuthContext_StringHidesPassword(t *testing.T) {
	a := AuthContext{RequiresAuth: true, Seed: "abcdef", Password: "hunter2"}
	s := a.String()
	if strings.Contains(s, "hunter2") {
		t.Errorf("String() leaked password: %q", s)
	}
	if !strings.Contains(s, "abcdef") {
		t.Errorf("String() = %q, want seed", s)
	}
	if got := (&AuthContext{}).String(); got != "no authentication" {
		t.Errorf("String() = %q", got)
	}
}

func TestTrimHelpers(t *testing.T) {
	if got := trimGreeting("\x00PJLINK 1 abc\r\n "); got != "PJLINK 1 abc" {
		t.Errorf("trimGreeting() = %q", got)
	}
	if got := trimResponse("\x00%1NAME=Hall \r\x00"); got != "%1NAME=Hall " {
		t.Errorf("trimResponse() = %q", got)
	}
}
