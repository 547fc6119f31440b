package prefs

// Preferences is the fixed record of user accessibility settings. It
// is persisted as a single JSON blob so a partial write can never
// leave the record half-updated.
type Preferences struct {
	Contrast     string `json:"contrast"`
	Motion       string `json:"motion"`
	TextSize     string `json:"textSize"`
	FocusSize    string `json:"focusSize"`
	ColorVision  string `json:"colorVision"`
	ScreenReader bool   `json:"screenReader"`
	KeyboardOnly bool   `json:"keyboardOnly"`
}

// Defaults returns the record every user starts from: everything off
// or normal.
func Defaults() Preferences {
	return Preferences{
		Contrast:    "normal",
		Motion:      "normal",
		TextSize:    "normal",
		FocusSize:   "normal",
		ColorVision: "off",
	}
}
