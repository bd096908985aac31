package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("DOCSUM_TEST_STRING", "")
	assert.Equal(t, ":8080", GetEnvString("DOCSUM_TEST_STRING", ":8080"))

	t.Setenv("DOCSUM_TEST_STRING", ":9090")
	assert.Equal(t, ":9090", GetEnvString("DOCSUM_TEST_STRING", ":8080"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "12", want: 12},
		{name: "surrounding spaces", value: " 3 ", want: 3},
		{name: "negative", value: "-1", want: -1},
		{name: "trailing garbage", value: "12abc", want: 7},
		{name: "not a number", value: "many", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DOCSUM_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("DOCSUM_TEST_INT", 7))
		})
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("DOCSUM_TEST_INT64", "20971520")
	assert.Equal(t, int64(20971520), GetEnvInt64("DOCSUM_TEST_INT64", 1))

	t.Setenv("DOCSUM_TEST_INT64", "20MB")
	assert.Equal(t, int64(1), GetEnvInt64("DOCSUM_TEST_INT64", 1))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "", def: true, want: true},
		{value: "true", def: false, want: true},
		{value: "1", def: false, want: true},
		{value: "FALSE", def: true, want: false},
		{value: "0", def: true, want: false},
		{value: "yes", def: true, want: true},
		{value: "yes", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("DOCSUM_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("DOCSUM_TEST_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "", want: time.Minute},
		{value: "30s", want: 30 * time.Second},
		{value: "1h30m", want: 90 * time.Minute},
		{value: "0", want: 0},
		{value: "30", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("DOCSUM_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("DOCSUM_TEST_DURATION", time.Minute))
		})
	}
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))

	assert.NoError(t, ValidateNonNegativeDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(time.Second))
	assert.Error(t, ValidateNonNegativeDuration(-time.Second))
}
