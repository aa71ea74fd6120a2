package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIcon(t *testing.T) {
	testCases := []struct {
		in       string
		expected Icon
		wantErr  bool
	}{
		{in: "gift", expected: IconGift},
		{in: "  Trophy ", expected: IconTrophy},
		{in: "SPARKLES", expected: IconSparkles},
		{in: "rocket", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			icon, err := ParseIcon(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownIcon)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, icon)
		})
	}
}

func TestIconValueAndScan(t *testing.T) {
	v, err := IconZap.Value()
	require.NoError(t, err)
	assert.Equal(t, "zap", v)

	_, err = Icon("rocket").Value()
	require.ErrorIs(t, err, ErrUnknownIcon)

	var i Icon
	require.NoError(t, i.Scan([]byte("globe")))
	assert.Equal(t, IconGlobe, i)

	require.NoError(t, i.Scan("rocket"))
	assert.Equal(t, IconFallback, i)

	require.NoError(t, i.Scan(nil))
	assert.Equal(t, IconFallback, i)

	require.Error(t, i.Scan(42))
	assert.Len(t, Icons(), 10)
}

func TestSweepstakeHooks(t *testing.T) {
	s := &Sweepstake{Status: SweepstakeActive, MaxTickets: 100, TicketsSold: 100}
	require.NoError(t, s.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, s.ID)
	require.NoError(t, s.BeforeSave(nil))

	id := s.ID
	require.NoError(t, s.BeforeCreate(nil))
	assert.Equal(t, id, s.ID, "existing id is kept")

	s.TicketsSold = 101
	require.ErrorIs(t, s.BeforeSave(nil), ErrTicketsOversold)

	s.TicketsSold = -1
	require.ErrorIs(t, s.BeforeSave(nil), ErrTicketsOversold)

	s.TicketsSold = 0
	s.Status = "paused"
	require.ErrorIs(t, s.BeforeSave(nil), ErrUnknownSweepstakeStatus)
}
