package clean

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Profile lists the columns and values the cleaning pass works on.
type Profile struct {
	NAValues           []string `toml:"na_values"`
	ExcludeFromMissing []string `toml:"exclude_from_missing"`
	DateColumn         string   `toml:"date_column"`
	ModeColumns        []string `toml:"mode_columns"`
	ModePlaceholders   []string `toml:"mode_placeholders"`
	ModeFallback       string   `toml:"mode_fallback"`
	DropColumns        []string `toml:"drop_columns"`
	TextColumns        []string `toml:"text_columns"`
	TextNAValues       []string `toml:"text_na_values"`
	TextFill           string   `toml:"text_fill"`
	StripMarkup        bool     `toml:"strip_markup"`
}

// DefaultProfile matches the phishing email dataset layout.
func DefaultProfile() Profile {
	return Profile{
		NAValues: []string{
			"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
			"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
			"n/a", "nan", "null", "na", "Unknown",
		},
		ExcludeFromMissing: []string{"Email_Content"},
		DateColumn:         "Sending_Date",
		ModeColumns:        []string{"Sending_Time", "Day"},
		ModePlaceholders:   []string{"nan", "NaT", "NA", "na", "", "Unknown"},
		ModeFallback:       "Unknown",
		DropColumns:        []string{"To", "Logo", "Sender_Name"},
		TextColumns:        []string{"Closing_Remarks", "CoinedWord", "Sender_Email", "Sender_Title", "Url_Title"},
		TextNAValues:       []string{"nan", "na", "n/a", "none", "null", "", "no data", "nil"},
		TextFill:           "No data provided",
	}
}

// LoadProfile decodes a TOML profile on top of DefaultProfile.
// An empty path returns the defaults.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	if _, err := toml.DecodeFile(path, &profile); err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}
	if profile.TextFill == "" {
		return Profile{}, fmt.Errorf("profile %s: text_fill must not be empty", path)
	}
	return profile, nil
}
