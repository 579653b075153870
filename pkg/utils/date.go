package utils

import (
	"time"

	"github.com/pkg/errors"
)

// ParseDate interpreta uma data YYYY-MM-DD como meia-noite no fuso informado.
// Uma string vazia retorna nil.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	return &date, nil
}
