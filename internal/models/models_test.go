package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestKidAgeAt(t *testing.T) {
	tests := []struct {
		name  string
		dob   time.Time
		today time.Time
		want  int
	}{
		{
			name:  "day before birthday",
			dob:   date(2015, time.July, 20),
			today: date(2024, time.July, 19),
			want:  8,
		},
		{
			name:  "on birthday",
			dob:   date(2015, time.July, 20),
			today: date(2024, time.July, 20),
			want:  9,
		},
		{
			name:  "day after birthday",
			dob:   date(2015, time.July, 20),
			today: date(2024, time.July, 21),
			want:  9,
		},
		{
			name:  "earlier month",
			dob:   date(2018, time.December, 1),
			today: date(2024, time.March, 15),
			want:  5,
		},
		{
			name:  "leap day birthday in non-leap year before march",
			dob:   date(2016, time.February, 29),
			today: date(2023, time.February, 28),
			want:  6,
		},
		{
			name:  "leap day birthday in non-leap year march first",
			dob:   date(2016, time.February, 29),
			today: date(2023, time.March, 1),
			want:  7,
		},
		{
			name:  "born today",
			dob:   date(2024, time.June, 1),
			today: date(2024, time.June, 1),
			want:  0,
		},
		{
			name:  "future date of birth",
			dob:   date(2026, time.January, 1),
			today: date(2024, time.June, 1),
			want:  -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kid := NewKid(1, "Maya", tt.dob, "F")
			got, err := kid.AgeAt(tt.today)
			if err != nil {
				t.Fatalf("AgeAt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKidAgeIgnoresTimeOfDay(t *testing.T) {
	kid := &Kid{ID: 3}
	kid.SetDateOfBirth(time.Date(2015, time.July, 20, 23, 59, 0, 0, time.UTC))

	got, err := kid.AgeAt(time.Date(2024, time.July, 20, 0, 1, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("AgeAt() error = %v", err)
	}
	if got != 9 {
		t.Errorf("AgeAt() = %d, want 9", got)
	}
}

func TestKidAgeMissingDateOfBirth(t *testing.T) {
	kid := &Kid{ID: 7, Name: "Sam"}

	_, err := kid.Age()
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Age() error = %v, want MissingFieldError", err)
	}
	if missing.Field != "date_of_birth" || missing.ID != 7 {
		t.Errorf("unexpected error fields: %+v", missing)
	}
}

func TestCheckinValidate(t *testing.T) {
	tests := []struct {
		name      string
		departure *ClockTime
		wantErr   bool
	}{
		{name: "still open", departure: nil},
		{name: "later departure", departure: &ClockTime{Hour: 11, Minute: 30}},
		{name: "same time", departure: &ClockTime{Hour: 9}},
		{name: "earlier departure", departure: &ClockTime{Hour: 8, Minute: 59}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCheckin(1, "P1", date(2024, time.June, 1), NewClockTime(9, 0, 0))
			c.DepartureTime = tt.departure

			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrDepartureBeforeArrival) {
				t.Errorf("Validate() error = %v, want ErrDepartureBeforeArrival", err)
			}
		})
	}
}

func TestStringRepresentations(t *testing.T) {
	departure := NewClockTime(11, 30, 0)
	tests := []struct {
		name   string
		value  interface{ String() string }
		expect []string
	}{
		{
			name:   "user",
			value:  User{ID: 4, Name: "Ana", Email: "ana@example.com"},
			expect: []string{"user_id=4", "name=Ana", "email=ana@example.com"},
		},
		{
			name:   "kid",
			value:  Kid{ID: 9, Name: "Leo"},
			expect: []string{"kid_id=9", "name=Leo"},
		},
		{
			name: "checkin",
			value: Checkin{
				ID: 2, UserID: 4, CheckinDate: date(2024, time.June, 1),
				ArrivalTime: NewClockTime(9, 0, 0), DepartureTime: &departure, ParkID: "P1",
			},
			expect: []string{"checkin_id=2", "checkin_date=2024-06-01", "user_id=4", "arrival_time=09:00:00", "departure_time=11:30:00", "park_id=P1"},
		},
		{
			name:   "kid checkin",
			value:  KidCheckin{ID: 5, CheckinID: 2, KidID: 9},
			expect: []string{"kid_checkin_id=5", "checkin_id=2", "kid_id=9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.value.String()
			for _, part := range tt.expect {
				if !strings.Contains(s, part) {
					t.Errorf("String() = %q, missing %q", s, part)
				}
			}
		})
	}
}

func TestClockTimeScan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    ClockTime
		wantErr bool
	}{
		{name: "postgres time", src: time.Date(0, 1, 1, 9, 15, 30, 0, time.UTC), want: ClockTime{9, 15, 30}},
		{name: "mysql bytes", src: []byte("11:30:00"), want: ClockTime{11, 30, 0}},
		{name: "sqlite string", src: "08:05:00", want: ClockTime{8, 5, 0}},
		{name: "fractional seconds", src: "08:05:00.000000", want: ClockTime{8, 5, 0}},
		{name: "hours and minutes", src: "17:45", want: ClockTime{17, 45, 0}},
		{name: "null", src: nil, wantErr: true},
		{name: "garbage", src: "noon", wantErr: true},
		{name: "unsupported type", src: int64(5), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ClockTime
			err := got.Scan(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClockTimeValueAndJSON(t *testing.T) {
	c := NewClockTime(9, 0, 0)

	v, err := c.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "09:00:00" {
		t.Errorf("Value() = %v, want 09:00:00", v)
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"09:00:00"` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded ClockTime
	if err := json.Unmarshal([]byte(`"14:20"`), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != NewClockTime(14, 20, 0) {
		t.Errorf("Unmarshal() = %v", decoded)
	}

	if got := NewClockTime(11, 30, 0).Sub(c); got != 150*time.Minute {
		t.Errorf("Sub() = %v, want 2h30m", got)
	}
}
