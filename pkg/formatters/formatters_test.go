package formatters_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/entitlements/pkg/formatters"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	t.Run("usd in english", func(t *testing.T) {
		t.Parallel()

		got := formatters.FormatPrice(123450, "USD", "en-US")
		assert.Contains(t, got, "$")
		assert.Contains(t, got, "1,234.50")
	})

	t.Run("empty locale uses default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, formatters.FormatPrice(999, "USD", "en-US"), formatters.FormatPrice(999, "USD", ""))
	})

	t.Run("german grouping", func(t *testing.T) {
		t.Parallel()

		got := formatters.FormatPrice(123450, "EUR", "de")
		assert.Contains(t, got, "€")
		assert.Contains(t, got, "1.234,50")
	})

	t.Run("zero decimal currency", func(t *testing.T) {
		t.Parallel()

		got := formatters.FormatPrice(150000, "JPY", "en")
		assert.Contains(t, got, "1,500")
		assert.NotContains(t, got, "1,500.00")
	})

	t.Run("unknown currency falls back", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "12.00 XYZ", formatters.FormatPrice(1200, "xyz", "en"))
	})
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  int
		want string
	}{
		{1, "March 1st, 2024"},
		{2, "March 2nd, 2024"},
		{3, "March 3rd, 2024"},
		{4, "March 4th, 2024"},
		{11, "March 11th, 2024"},
		{12, "March 12th, 2024"},
		{13, "March 13th, 2024"},
		{21, "March 21st, 2024"},
		{22, "March 22nd, 2024"},
		{23, "March 23rd, 2024"},
		{31, "March 31st, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatters.FormatDate(time.Date(2024, 3, tt.day, 10, 0, 0, 0, time.UTC)))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 7, 4, 15, 5, 0, 0, time.UTC)
	assert.Equal(t, "July 4th, 2024 3:05 PM UTC", formatters.FormatDateTime(ts))

	paris := time.FixedZone("CEST", 2*60*60)
	assert.Equal(t, "July 4th, 2024 3:05 PM UTC", formatters.FormatDateTime(ts.In(paris)))
	assert.Equal(t, "July 5th, 2024", formatters.FormatDate(time.Date(2024, 7, 4, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))))
}

func TestFormatPtr(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatters.FormatDatePtr(nil))
	assert.Empty(t, formatters.FormatDateTimePtr(nil))

	ts := time.Date(2023, 12, 22, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "December 22nd, 2023", formatters.FormatDatePtr(&ts))
	assert.Equal(t, "December 22nd, 2023 12:00 AM UTC", formatters.FormatDateTimePtr(&ts))
}
