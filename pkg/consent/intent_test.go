package consent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tbl := []struct {
		in   string
		want Intent
	}{
		{"accept-all", AcceptAll},
		{"reject-all", RejectAll},
		{"open-details", OpenDetails},
		{"toggle-analytics", ToggleAnalytics},
		{"toggle-marketing", ToggleMarketing},
		{"save", Save},
		{" Back ", Back},
	}

	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntent(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseIntent("delete")
	require.ErrorIs(t, err, ErrUnknownIntent)
	assert.Contains(t, err.Error(), `"delete"`)
}

func TestIntent_String(t *testing.T) {
	for _, i := range Intents() {
		parsed, err := ParseIntent(i.String())
		require.NoError(t, err)
		assert.Equal(t, i, parsed)
	}
	assert.Equal(t, "intent(42)", Intent(42).String())
}
