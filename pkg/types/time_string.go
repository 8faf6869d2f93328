package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidTimeString возвращается, если строка не в формате HH:MM
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

var timeStringPattern = regexp.MustCompile(`^(([01]\d|2[0-3]):[0-5]\d|24:00)$`)

// EndOfDay конец суток, допустим только как правая граница интервала
const EndOfDay TimeString = "24:00"

// TimeString время суток в формате "HH:MM" (24 часа, с ведущими нулями)
// "24:00" означает полночь следующего дня
// Лексикографическое сравнение совпадает с хронологическим
type TimeString string

// NewTimeString создает TimeString из часов и минут переданного времени
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит и валидирует строку "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes количество минут от полуночи
func (t TimeString) Minutes() int {
	if t.Validate() != nil {
		return 0
	}
	s := string(t)
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours*60 + minutes
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// AddMinutes сдвигает время вперед
// Возвращает ошибку, если результат выходит за пределы суток ("24:00" допустимо)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d min is out of day bounds", ErrInvalidTimeString, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// OnDate возвращает момент времени на указанную дату в UTC
// "09:00" на 2025-03-03 -> 2025-03-03T09:00:00Z
func (t TimeString) OnDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(time.Duration(t.Minutes()) * time.Minute)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner
// Принимает "HH:MM", "HH:MM:SS" и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}

	if len(raw) > 5 {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
