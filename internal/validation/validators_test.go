package validation

import "testing"

func TestValidUsername(t *testing.T) {
	t.Parallel()

	valid := []string{"abc", "alice_99", "A_b_C_1234567890_xyz"}
	invalid := []string{"", "ab", "this_username_is_way_too_long", "bad name", "bad-name", "émile"}

	for _, s := range valid {
		if !ValidUsername(s) {
			t.Errorf("ValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidUsername(s) {
			t.Errorf("ValidUsername(%q) = true, want false", s)
		}
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"alice@x.com", "a.b-c@mail.example.org"}
	invalid := []string{"", "alice", "alice@", "@x.com", "alice@x"}

	for _, s := range valid {
		if !ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true, want false", s)
		}
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Abcd123!", true},
		{"Str0ng&Pass", true},
		{"short1A!", true},
		{"Abc123!", false},      // too short
		{"abcd123!", false},     // no uppercase
		{"ABCD123!", false},     // no lowercase
		{"Abcdefg!", false},     // no digit
		{"Abcd1234", false},     // no symbol
		{"Abcd123! ", false},    // space outside the alphabet
		{"Abcd123#", false},     // symbol not in the fixed set
	}

	for _, tt := range tests {
		if got := ValidPassword(tt.password); got != tt.want {
			t.Errorf("ValidPassword(%q) = %t, want %t", tt.password, got, tt.want)
		}
	}
}

func TestValidWeight(t *testing.T) {
	t.Parallel()

	for _, w := range []float64{0.1, 25, 199.9} {
		if !ValidWeight(w) {
			t.Errorf("ValidWeight(%v) = false, want true", w)
		}
	}
	for _, w := range []float64{0, -5, 200, 1000} {
		if ValidWeight(w) {
			t.Errorf("ValidWeight(%v) = true, want false", w)
		}
	}
}

func TestValidDate(t *testing.T) {
	t.Parallel()

	if _, ok := ValidDate("2020-05-17"); !ok {
		t.Errorf("ValidDate(2020-05-17) = false, want true")
	}
	for _, s := range []string{"", "17-05-2020", "2020/05/17", "2020-13-01"} {
		if _, ok := ValidDate(s); ok {
			t.Errorf("ValidDate(%q) = true, want false", s)
		}
	}
}
