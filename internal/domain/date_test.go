package domain

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGenDate_OverlapConsistent(t *testing.T) {
	tests := []struct {
		name string
		a, b GenDate
		want bool
	}{
		{
			name: "identical exact dates",
			a:    NewExactDate(day("1850-01-01")),
			b:    NewExactDate(day("1850-01-01")),
			want: true,
		},
		{
			name: "disjoint exact dates",
			a:    NewExactDate(day("1850-01-01")),
			b:    NewExactDate(day("1851-01-01")),
			want: false,
		},
		{
			name: "disjoint but accuracy tolerance closes the gap",
			a:    NewDateRange(day("1850-01-01"), day("1850-01-01"), 10),
			b:    NewDateRange(day("1850-01-05"), day("1850-01-05"), 0),
			want: true,
		},
		{
			name: "ranges overlap",
			a:    NewDateRange(day("1850-01-01"), day("1850-06-01"), 0),
			b:    NewDateRange(day("1850-03-01"), day("1850-09-01"), 0),
			want: true,
		},
		{
			name: "ranges do not overlap even with accuracy",
			a:    NewDateRange(day("1850-01-01"), day("1850-02-01"), 1),
			b:    NewDateRange(day("1850-06-01"), day("1850-07-01"), 1),
			want: false,
		},
		{
			name: "zero date never overlaps",
			a:    GenDate{},
			b:    NewExactDate(day("1850-01-01")),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.OverlapConsistent(tt.b); got != tt.want {
				t.Errorf("a.OverlapConsistent(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.OverlapConsistent(tt.a); got != tt.want {
				t.Errorf("OverlapConsistent is not symmetric: b.OverlapConsistent(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenDate_Validate(t *testing.T) {
	if err := (GenDate{}).Validate(); err != nil {
		t.Errorf("zero date should validate, got %v", err)
	}
	bad := GenDate{Start: day("1850-01-01"), End: day("1840-01-01")}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for end before start")
	}
	negAcc := GenDate{Start: day("1850-01-01"), End: day("1850-01-01"), Accuracy: -1}
	if err := negAcc.Validate(); err == nil {
		t.Error("expected error for negative accuracy")
	}
}

func TestGenDate_Before(t *testing.T) {
	a := NewExactDate(day("1850-01-01"))
	b := NewExactDate(day("1860-01-01"))
	if !a.Before(b) {
		t.Error("expected a before b")
	}
	if b.Before(a) {
		t.Error("expected b not before a")
	}
}
