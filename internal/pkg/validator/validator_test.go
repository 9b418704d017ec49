package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-28"); !ok {
		t.Error("IsValidDate(2026-02-28) = false, want true")
	}
	for _, s := range []string{"2026-13-01", "28-02-2026", "2026-02-30", "yesterday", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	for _, s := range []string{"09:00", "19:00", "23:59"} {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"24:00", "9am", "19:60", ""} {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	cases := []struct {
		month, year int
		want        bool
	}{
		{1, 2026, true},
		{12, 2026, true},
		{0, 2026, false},
		{13, 2026, false},
		{6, 1999, false},
		{6, 2101, false},
	}
	for _, c := range cases {
		if got := IsValidPeriod(c.month, c.year); got != c.want {
			t.Errorf("IsValidPeriod(%d, %d) = %v, want %v", c.month, c.year, got, c.want)
		}
	}
}
