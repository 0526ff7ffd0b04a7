package daterange

import (
	"testing"
	"time"

	"github.com/Fellipe-Tripovichy/ubs-watchdog/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	r := Default(today)

	assert.Equal(t, NewDate(2024, time.June, 1), r.Start)
	assert.Equal(t, today, r.End)
	assert.True(t, IsValid(r, today))
}

func TestDefault_FirstDayOfMonth(t *testing.T) {
	today := NewDate(2024, time.March, 1)

	r := Default(today)

	assert.Equal(t, today, r.Start)
	assert.Equal(t, today, r.End)
}

func TestNormalize(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name      string
		start     Date
		end       Date
		want      Range
		wantError bool
	}{
		{
			name:  "absent end becomes today",
			start: NewDate(2024, time.May, 1),
			want:  Range{Start: NewDate(2024, time.May, 1), End: today},
		},
		{
			name: "absent start becomes first of month",
			end:  NewDate(2024, time.June, 10),
			want: Range{Start: NewDate(2024, time.June, 1), End: NewDate(2024, time.June, 10)},
		},
		{
			name:  "well formed range passes through",
			start: NewDate(2024, time.January, 1),
			end:   NewDate(2024, time.February, 1),
			want:  Range{Start: NewDate(2024, time.January, 1), End: NewDate(2024, time.February, 1)},
		},
		{
			name:  "inverted range with past start moves end to today",
			start: NewDate(2024, time.May, 20),
			end:   NewDate(2024, time.May, 1),
			want:  Range{Start: NewDate(2024, time.May, 20), End: today},
		},
		{
			name:  "single day range",
			start: today,
			end:   today,
			want:  Range{Start: today, End: today},
		},
		{
			name:      "future end is rejected",
			start:     NewDate(2024, time.June, 1),
			end:       NewDate(2024, time.June, 16),
			want:      Range{Start: NewDate(2024, time.June, 1), End: NewDate(2024, time.June, 16)},
			wantError: true,
		},
		{
			name:      "inverted range with future start collapses to single day",
			start:     NewDate(2024, time.December, 31),
			end:       NewDate(2024, time.January, 1),
			want:      Range{Start: NewDate(2024, time.December, 31), End: NewDate(2024, time.December, 31)},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.start, tt.end, today)

			assert.Equal(t, tt.want, got)
			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.True(t, IsValid(got, today), "normalized range must be valid")
			assert.False(t, got.End.Before(got.Start))
			assert.False(t, got.End.After(today))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	candidates := [][2]Date{
		{NewDate(2024, time.May, 20), NewDate(2024, time.May, 1)},
		{NewDate(2024, time.January, 1), {}},
		{{}, {}},
		{NewDate(2023, time.December, 31), NewDate(2024, time.June, 15)},
		{NewDate(2024, time.December, 31), NewDate(2024, time.January, 1)},
	}

	for _, c := range candidates {
		first, firstErr := Normalize(c[0], c[1], today)
		second, secondErr := Normalize(first.Start, first.End, today)

		assert.Equal(t, first, second, "candidate %s..%s", c[0], c[1])
		assert.Equal(t, firstErr == nil, secondErr == nil)
	}
}

func TestIsValid(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name string
		r    Range
		want bool
	}{
		{"valid", Range{Start: NewDate(2024, time.June, 1), End: today}, true},
		{"missing start", Range{End: today}, false},
		{"missing end", Range{Start: today}, false},
		{"inverted", Range{Start: today, End: NewDate(2024, time.June, 1)}, false},
		{"future end", Range{Start: today, End: NewDate(2024, time.June, 16)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.r, today))
			if tt.want {
				assert.NoError(t, Validate(tt.r, today))
			} else {
				assert.ErrorIs(t, Validate(tt.r, today), apperrors.ErrInvalidRange)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: NewDate(2024, time.June, 1), End: NewDate(2024, time.June, 15)}

	t.Run("inclusive start of day", func(t *testing.T) {
		assert.True(t, r.Contains(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), time.UTC))
	})

	t.Run("inclusive end of day", func(t *testing.T) {
		assert.True(t, r.Contains(time.Date(2024, time.June, 15, 23, 59, 59, 999999999, time.UTC), time.UTC))
	})

	t.Run("day after end is excluded", func(t *testing.T) {
		assert.False(t, r.Contains(time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), time.UTC))
	})

	t.Run("day before start is excluded", func(t *testing.T) {
		assert.False(t, r.Contains(time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC), time.UTC))
	})

	t.Run("compares in caller location", func(t *testing.T) {
		saoPaulo := time.FixedZone("BRT", -3*60*60)
		// 01:30 UTC on the 16th is still the evening of the 15th in São Paulo.
		late := time.Date(2024, time.June, 16, 1, 30, 0, 0, time.UTC)

		assert.True(t, r.Contains(late, saoPaulo))
		assert.False(t, r.Contains(late, time.UTC))
	})
}

func TestRange_Bounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	r := Range{Start: NewDate(2024, time.June, 1), End: NewDate(2024, time.June, 15)}

	from, to := r.Bounds(loc)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2024, time.June, 15, 23, 59, 59, 999999999, loc), to)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.February, 29)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(b))

	var back Date
	require.NoError(t, back.UnmarshalJSON(b))
	assert.Equal(t, d, back)

	var empty Date
	require.NoError(t, empty.UnmarshalJSON([]byte("null")))
	assert.True(t, empty.IsZero())
}

func TestDate_Accessors(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	next := d.AddDays(1)

	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.True(t, next.Equal(NewDate(2024, time.March, 1)))
	assert.Equal(t, "2024-03-01", next.String())
	assert.Equal(t, "", Date{}.String())

	b, err := Date{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.June, 15), d)

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("15/06/2024")
	assert.Error(t, err)
}
