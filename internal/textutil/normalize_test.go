package textutil

import "testing"

func TestAlphanumericKey(t *testing.T) {
	tests := map[string]string{
		"TYPE-MOON":      "typemoon",
		"  Key / Visual ": "keyvisual",
		"ｋｅｙ":            "key",
		"ゆずソフト":          "ゆずソフト",
		"":               "",
		"!!!":            "",
	}
	for input, want := range tests {
		if got := AlphanumericKey(input); got != want {
			t.Errorf("AlphanumericKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestContainsAnyFold(t *testing.T) {
	keywords := []string{"fandisc", "fan disc"}
	if !ContainsAnyFold("Some FanDisc Edition", keywords) {
		t.Fatal("expected case-insensitive keyword hit")
	}
	if ContainsAnyFold("Main Story", keywords) {
		t.Fatal("unexpected keyword hit")
	}
	if ContainsAnyFold("", keywords) {
		t.Fatal("empty value must not match")
	}
}

func TestDetectScript(t *testing.T) {
	tests := map[string]string{
		"ひぐらしのなく頃に": ScriptJapanese,
		"カタカナ":      ScriptJapanese,
		"漢字":        ScriptJapanese,
		"Clannad":   ScriptOther,
		"":          ScriptOther,
	}
	for input, want := range tests {
		if got := DetectScript(input); got != want {
			t.Errorf("DetectScript(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"[TYPE-MOON][040129][L40] Fate/Stay": "[TYPE-MOON][040129][L40] Fate-Stay",
		"What? <Really>":                     "What Really",
		"Trailing dots...":                   "Trailing dots",
		"  ":                                 "",
	}
	for input, want := range tests {
		if got := SanitizeFileName(input); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", input, got, want)
		}
	}
}
