package classification

import "testing"

func TestCode(t *testing.T) {
	tests := []struct {
		c    Classification
		want int64
	}{
		{Same, 1},
		{Different, 0},
		{Opposite, -1},
	}
	for _, tc := range tests {
		if got := tc.c.Code(); got != tc.want {
			t.Errorf("%s.Code() = %d, want %d", tc.c, got, tc.want)
		}
	}
}

func TestIsMatch(t *testing.T) {
	if !Same.IsMatch() || !Opposite.IsMatch() {
		t.Error("Same and Opposite must be matches")
	}
	if Different.IsMatch() {
		t.Error("Different must not be a match")
	}
}

func TestString(t *testing.T) {
	if Same.String() != "same" {
		t.Errorf("Same = %q", Same.String())
	}
	if Opposite.String() != "opposite" {
		t.Errorf("Opposite = %q", Opposite.String())
	}
	if Different.String() != "different" {
		t.Errorf("Different = %q", Different.String())
	}
	if got := Classification(5).String(); got != "unknown(5)" {
		t.Errorf("Classification(5) = %q", got)
	}
}

func TestFromCode(t *testing.T) {
	for _, c := range []Classification{Same, Different, Opposite} {
		got, err := FromCode(c.Code())
		if err != nil {
			t.Fatalf("FromCode(%d): %v", c.Code(), err)
		}
		if got != c {
			t.Errorf("FromCode(%d) = %s, want %s", c.Code(), got, c)
		}
	}

	if _, err := FromCode(2); err == nil {
		t.Error("expected error for code 2")
	}
	if _, err := FromCode(-7); err == nil {
		t.Error("expected error for code -7")
	}
}
