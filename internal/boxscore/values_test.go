package boxscore

import "testing"

func TestCoerceCellAbsent(t *testing.T) {
	for _, text := range []string{"", "-", "  ", "n/a"} {
		if _, ok := CoerceCell(text, "yds"); ok {
			t.Errorf("CoerceCell(%q) = present, want absent", text)
		}
	}
}

func TestCoerceCellIntegers(t *testing.T) {
	tests := []struct {
		text  string
		field string
		want  int64
	}{
		{"23", "yds", 23},
		{"23t", "lg", 23}, // touchdown marker stripped
		{"1,234", "yds", 1234},
		{" 7 ", "td", 7},
		{"-3", "yds", -3},
	}
	for _, tt := range tests {
		v, ok := CoerceCell(tt.text, tt.field)
		if !ok {
			t.Errorf("CoerceCell(%q, %q) absent, want %d", tt.text, tt.field, tt.want)
			continue
		}
		if v.IsFloat || v.Int != tt.want {
			t.Errorf("CoerceCell(%q, %q) = %+v, want int %d", tt.text, tt.field, v, tt.want)
		}
	}
}

func TestCoerceCellFloats(t *testing.T) {
	tests := []struct {
		text  string
		field string
		want  float64
	}{
		{"4.5", "avg", 4.5},
		{"75.0", "pct", 75.0},
		{"118.3", "rtg", 118.3},
		{"1.5", "sacks", 1.5},
	}
	for _, tt := range tests {
		v, ok := CoerceCell(tt.text, tt.field)
		if !ok || !v.IsFloat || v.Float != tt.want {
			t.Errorf("CoerceCell(%q, %q) = %+v ok=%v, want float %v", tt.text, tt.field, v, ok, tt.want)
		}
	}
}

func TestCoerceCellIntFieldWithDecimalPoint(t *testing.T) {
	v, ok := CoerceCell("12.0", "yds")
	if !ok || !v.IsFloat || v.Float != 12.0 {
		t.Errorf("CoerceCell(12.0, yds) = %+v ok=%v, want float 12.0", v, ok)
	}
}

func TestCompletionPct(t *testing.T) {
	if got := CompletionPct(0, 0); got != 0.0 {
		t.Errorf("CompletionPct(0, 0) = %v, want 0.0", got)
	}
	if got := CompletionPct(20, 15); got != 75.0 {
		t.Errorf("CompletionPct(20, 15) = %v, want 75.0", got)
	}
	if got := CompletionPct(3, 2); got != 66.67 {
		t.Errorf("CompletionPct(3, 2) = %v, want 66.67", got)
	}
}

func TestStatRowAbsentNeverZero(t *testing.T) {
	row := NewStatRow("pfa_20240101", "pfa_test01", "New Orleans Saints", Rushing)
	if v, ok := CoerceCell("-", "yds"); ok {
		row.Set("yds", v)
	}
	if row.Value("yds") != nil {
		t.Errorf("absent field bound as %v, want nil", row.Value("yds"))
	}
	if _, ok := row.Int("yds"); ok {
		t.Error("absent field present in Ints")
	}
}

func TestParseIntText(t *testing.T) {
	if n, ok := ParseIntText("70,112"); !ok || n != 70112 {
		t.Errorf("ParseIntText(70,112) = %d ok=%v", n, ok)
	}
	if _, ok := ParseIntText(""); ok {
		t.Error("ParseIntText(empty) = ok, want not ok")
	}
}
