package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name string
		want Action
	}{
		{"break-start", ActionBreakStart},
		{"break-end", ActionBreakEnd},
		{"clock-in", ActionClockIn},
		{"clock-out", ActionClockOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAction(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAction_Unknown(t *testing.T) {
	for _, name := range []string{"", "lunch", "Clock-In", "clock_in"} {
		_, err := ParseAction(name)
		assert.ErrorIs(t, err, ErrUnknownAction, name)
	}
}

func TestActions_Order(t *testing.T) {
	assert.Equal(t, []Action{ActionBreakStart, ActionBreakEnd, ActionClockIn, ActionClockOut}, Actions())
}

func TestFreeeHR_LabelsCoverEveryAction(t *testing.T) {
	want := map[Action]string{
		ActionBreakStart: "休憩開始",
		ActionBreakEnd:   "休憩終了",
		ActionClockIn:    "出勤",
		ActionClockOut:   "退勤",
	}
	for _, a := range Actions() {
		label, err := FreeeHR.Label(a)
		require.NoError(t, err)
		assert.Equal(t, want[a], label)
	}
}

func TestSite_LabelMissing(t *testing.T) {
	site := Site{ActionLabels: map[Action]string{ActionClockIn: "in"}}

	_, err := site.Label(ActionClockOut)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCredential_MaskedEmail(t *testing.T) {
	assert.Equal(t, "", Credential{}.MaskedEmail())
	assert.Equal(t, "t***@example.com", Credential{Email: "taro@example.com"}.MaskedEmail())
	assert.Equal(t, "***", Credential{Email: "not-an-email"}.MaskedEmail())
}
