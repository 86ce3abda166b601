package analysis

import (
	"testing"
	"time"
)

func TestFormatLapTime(t *testing.T) {
	toDur := func(d time.Duration) *time.Duration { return &d }
	tests := []struct {
		name string
		arg  *time.Duration
		want string
	}{
		{
			name: "no time",
			arg:  nil,
			want: "No Time",
		},
		{
			name: "typical lap",
			arg:  toDur(83*time.Second + 456*time.Millisecond),
			want: "1:23.456",
		},
		{
			name: "sub minute",
			arg:  toDur(59*time.Second + 999*time.Millisecond),
			want: "0:59.999",
		},
		{
			name: "exact minute",
			arg:  toDur(time.Minute),
			want: "1:00.000",
		},
		{
			name: "minutes not padded",
			arg:  toDur(65*time.Minute + 1*time.Millisecond),
			want: "65:00.001",
		},
		{
			name: "sub millisecond truncated",
			arg:  toDur(83*time.Second + 456*time.Millisecond + 700*time.Microsecond),
			want: "1:23.456",
		},
		{
			name: "zero",
			arg:  toDur(0),
			want: "0:00.000",
		},
		{
			name: "negative clamps to zero",
			arg:  toDur(-time.Second),
			want: "0:00.000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLapTime(tt.arg); got != tt.want {
				t.Errorf("FormatLapTime() = %v, want %v", got, tt.want)
			}
		})
	}
}
