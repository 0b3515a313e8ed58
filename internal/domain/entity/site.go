package entity

import "fmt"

// Site describes the markup of the timecard service. When the target site
// changes its layout or labels, this is the only value that needs updating.
type Site struct {
	EntryURL                string
	LoginLinkSelector       string
	LoginLinkText           string
	CredentialInputSelector string
	ActionButtonSelector    string
	ActionLabels            map[Action]string
}

var FreeeHR = Site{
	EntryURL:                "https://www.freee.co.jp/hr/",
	LoginLinkSelector:       "#gatsby-focus-wrapper > header > div.g-header_inner > div > div.g-headerBtn > a",
	LoginLinkText:           "ログインする",
	CredentialInputSelector: "input",
	ActionButtonSelector:    "#global-navigation-body-block button",
	ActionLabels: map[Action]string{
		ActionBreakStart: "休憩開始",
		ActionBreakEnd:   "休憩終了",
		ActionClockIn:    "出勤",
		ActionClockOut:   "退勤",
	},
}

// Label returns the visible button text for the action.
func (s Site) Label(a Action) (string, error) {
	label, ok := s.ActionLabels[a]
	if !ok || label == "" {
		return "", fmt.Errorf("%w: no button label for %q", ErrUnknownAction, a)
	}
	return label, nil
}
