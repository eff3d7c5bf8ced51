package intake

import "testing"

func TestValidateSerialFixtures(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		valid   bool
		wantErr string
	}{
		{"imei 15 digits", "123456789012345", true, ""},
		{"alphanumeric serial", "G9566RL4YC", true, ""},
		{"model name with space", "iPhone 15", false, errSerialModelName},
		{"placeholder", "N/A", false, errSerialPlaceholder},
		{"placeholder short", "na", false, errSerialPlaceholder},
		{"repeated digits", "111111111111", false, errSerialRepeated},
		{"empty", "", false, errSerialRequired},
		{"whitespace only", "   ", false, errSerialRequired},
		{"short numeric", "12345678", false, errSerialNumericMin},
		{"too many digits", "123456789012345678901", false, errSerialTooLong},
		{"description", "black phone cracked screen", false, errSerialDescription},
		{"mixed serial", "AB12CD34", true, ""},
		{"imei with separators", "35-209900-176148-1", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			valid, msg := ValidateSerial(tc.input)
			if valid != tc.valid {
				t.Fatalf("ValidateSerial(%q) valid = %v, want %v (msg %q)", tc.input, valid, tc.valid, msg)
			}
			if !tc.valid && msg != tc.wantErr {
				t.Errorf("ValidateSerial(%q) error = %q, want %q", tc.input, msg, tc.wantErr)
			}
		})
	}
}

func TestValidateSerialNeverPanics(t *testing.T) {
	inputs := []string{"", " ", "\t", "ééééééééé", "1 2 3 4 5 6 7 8 9 0 1 2", "🙂🙂🙂🙂🙂🙂🙂🙂"}
	for _, in := range inputs {
		_, _ = ValidateSerial(in)
	}
}
