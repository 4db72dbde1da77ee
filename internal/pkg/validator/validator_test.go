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
	valid := []string{"2026-01-15", "2026-12-31", "2024-02-29"}
	invalid := []string{"2026-13-01", "2026-02-30", "15-01-2026", "2026/01/15", "today", ""}
	for _, date := range valid {
		if _, ok := IsValidDate(date); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if _, ok := IsValidDate(date); ok {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"09:00", "23:59", "00:00", "09:00:30"}
	invalid := []string{"24:00", "9am", "09:60", ""}
	for _, clock := range valid {
		if _, ok := IsValidClockTime(clock); !ok {
			t.Errorf("IsValidClockTime(%q) = false, want true", clock)
		}
	}
	for _, clock := range invalid {
		if _, ok := IsValidClockTime(clock); ok {
			t.Errorf("IsValidClockTime(%q) = true, want false", clock)
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	valid := []string{"0", "100", "99.95", "0.01"}
	invalid := []string{"-1", "-0.01", "abc", "", "10,5"}
	for _, amount := range valid {
		if _, ok := IsValidAmount(amount); !ok {
			t.Errorf("IsValidAmount(%q) = false, want true", amount)
		}
	}
	for _, amount := range invalid {
		if _, ok := IsValidAmount(amount); ok {
			t.Errorf("IsValidAmount(%q) = true, want false", amount)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+6281234567890", "081234567890", "0812-3456-7890", "0812 3456 7890"}
	invalid := []string{"12345", "phone", "+", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"daily", "regular", "all"}
	if !IsInSlice("daily", slice) {
		t.Error("IsInSlice(daily) = false, want true")
	}
	if IsInSlice("DAILY", slice) {
		t.Error("IsInSlice(DAILY) = true, want false")
	}
	if IsInSlice("", slice) {
		t.Error("IsInSlice(\"\") = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["email"] != "email is required" {
		t.Errorf("ToMap()[email] = %q", m["email"])
	}
}
