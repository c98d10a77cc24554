package textutil

// Script labels returned by DetectScript.
const (
	ScriptJapanese = "JP"
	ScriptOther    = "EN"
)

// DetectScript returns ScriptJapanese when text contains Hiragana, Katakana,
// or CJK unified ideographs, and ScriptOther otherwise.
func DetectScript(text string) string {
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309F,
			r >= 0x30A0 && r <= 0x30FF,
			r >= 0x4E00 && r <= 0x9FFF:
			return ScriptJapanese
		}
	}
	return ScriptOther
}
