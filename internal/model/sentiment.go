package model

import (
	"encoding/json"
	"time"
)

// Headline is a news item used as sentiment input.
type Headline struct {
	Headline  string    `json:"headline"`
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// StringList decodes either a JSON string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Sentiment is the language-model research result for one symbol.
// Either Error is set or the analysis fields are populated.
type Sentiment struct {
	Error         string     `json:"error,omitempty"`
	Sentiment     string     `json:"sentiment,omitempty"`
	KeyDrivers    StringList `json:"key_drivers,omitempty"`
	Risks         StringList `json:"risks,omitempty"`
	FutureOutlook string     `json:"future_outlook,omitempty"`
	RecentNews    []Headline `json:"recent_news,omitempty"`
}

// Failed reports whether the research could not be obtained.
func (s *Sentiment) Failed() bool { return s == nil || s.Error != "" }
