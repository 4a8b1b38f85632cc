package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-availability/internal/availability"
)

func d(s string) time.Time {
	t, err := time.Parse(availability.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindAvailability, Kind("Availability(H1, 20240901, SGL)"))
	assert.Equal(t, KindSearch, Kind("Search(H1, 365, SGL)"))
	assert.Equal(t, KindUnknown, Kind(" Search(H1, 365, SGL)"))
	assert.Equal(t, KindUnknown, Kind("help"))
}

func TestDate(t *testing.T) {
	got, err := Date(" 20240229 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"2024-09-01", "20240931", "2024091", "", "01092024x"} {
		_, err := Date(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestAvailabilityLine(t *testing.T) {
	testCases := []struct {
		name      string
		line      string
		expected  []availability.Command
		expectErr error
	}{
		{
			name: "Single date",
			line: "Availability(H1, 20240901, SGL)",
			expected: []availability.Command{
				{HotelID: "H1", RoomType: "SGL", Range: availability.DateRange{Start: d("20240901"), End: d("20240901")}},
			},
		},
		{
			name: "Date range with overbooking",
			line: "Availability(H1, 20240901-20240903, DBL, OVB)",
			expected: []availability.Command{
				{HotelID: "H1", RoomType: "DBL", Range: availability.DateRange{Start: d("20240901"), End: d("20240903")}, AllowOverbooking: true},
			},
		},
		{
			name: "Fifth token other than ovb",
			line: "Availability(H1, 20240901, DBL, maybe)",
			expected: []availability.Command{
				{HotelID: "H1", RoomType: "DBL", Range: availability.DateRange{Start: d("20240901"), End: d("20240901")}},
			},
		},
		{
			name: "Several commands separated by two spaces",
			line: "Availability(H1, 20240901, SGL)  Availability(H2, 20240902-20240905, DBL, ovb)",
			expected: []availability.Command{
				{HotelID: "H1", RoomType: "SGL", Range: availability.DateRange{Start: d("20240901"), End: d("20240901")}},
				{HotelID: "H2", RoomType: "DBL", Range: availability.DateRange{Start: d("20240902"), End: d("20240905")}, AllowOverbooking: true},
			},
		},
		{
			name:      "Too few tokens",
			line:      "Availability(H1, 20240901)",
			expectErr: ErrInvalidFormat,
		},
		{
			name:      "Too many tokens",
			line:      "Availability(H1, 20240901, SGL, ovb, extra)",
			expectErr: ErrInvalidFormat,
		},
		{
			name:      "Bad date",
			line:      "Availability(H1, 2024-09-01, SGL)",
			expectErr: ErrInvalidDate,
		},
		{
			name:      "Open range",
			line:      "Availability(H1, 20240901-, SGL)",
			expectErr: ErrInvalidDate,
		},
		{
			name:      "One bad command rejects the line",
			line:      "Availability(H1, 20240901, SGL)  Availability(H1)",
			expectErr: ErrInvalidFormat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			commands, err := AvailabilityLine(tc.line)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, commands)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, commands)
		})
	}
}

func TestSearchLine(t *testing.T) {
	testCases := []struct {
		name      string
		line      string
		expected  SearchCommand
		expectErr error
	}{
		{
			name:     "Valid",
			line:     "Search(H1, 365, SGL)",
			expected: SearchCommand{HotelID: "H1", DaysAhead: 365, RoomType: "SGL"},
		},
		{
			name:     "Negative days parse",
			line:     "Search(H1, -3, SGL)",
			expected: SearchCommand{HotelID: "H1", DaysAhead: -3, RoomType: "SGL"},
		},
		{
			name:      "Missing room type",
			line:      "Search(H1, 365)",
			expectErr: ErrInvalidFormat,
		},
		{
			name:      "Extra token",
			line:      "Search(H1, 365, SGL, ovb)",
			expectErr: ErrInvalidFormat,
		},
		{
			name:      "Days not a number",
			line:      "Search(H1, a year, SGL)",
			expectErr: ErrInvalidDays,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := SearchLine(tc.line)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}
