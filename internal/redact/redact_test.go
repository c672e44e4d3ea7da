package redact

import "testing"

func TestSensitive(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"Password", true},
		{"user_password_hash", true},
		{"api_key", true},
		{"ApiKey", true},
		{"refresh_token", true},
		{"jwt_secret", true},
		{"credit_card_number", true},
		{"ssn", true},
		{"username", false},
		{"email", false},
		{"city", false},
	}
	for _, tc := range cases {
		if got := Sensitive(tc.key); got != tc.want {
			t.Errorf("Sensitive(%q): got %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestMap(t *testing.T) {
	in := map[string]any{
		"username": "admin",
		"password": "hunter2",
		"profile": map[string]any{
			"email":     "a@example.com",
			"api_key":   "abc123",
		},
		"attempts": []any{
			map[string]any{"token": "t1", "ip": "127.0.0.1"},
		},
	}

	got := Map(in)

	if got["username"] != "admin" {
		t.Errorf("username: got %v", got["username"])
	}
	if got["password"] != Marker {
		t.Errorf("password: got %v, want marker", got["password"])
	}

	profile := got["profile"].(map[string]any)
	if profile["email"] != "a@example.com" {
		t.Errorf("email: got %v", profile["email"])
	}
	if profile["api_key"] != Marker {
		t.Errorf("api_key: got %v, want marker", profile["api_key"])
	}

	attempts := got["attempts"].([]any)
	attempt := attempts[0].(map[string]any)
	if attempt["token"] != Marker {
		t.Errorf("token: got %v, want marker", attempt["token"])
	}
	if attempt["ip"] != "127.0.0.1" {
		t.Errorf("ip: got %v", attempt["ip"])
	}

	// Original map is untouched.
	if in["password"] != "hunter2" {
		t.Errorf("input mutated: %v", in["password"])
	}
}
