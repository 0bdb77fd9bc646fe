package utils

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// WireDateLayout is the day-level format users type (dd/mm/yyyy).
	WireDateLayout = "02/01/2006"
	// StorageDateLayout is the format dates are stored and returned in.
	StorageDateLayout = "2006-01-02"
)

var (
	wireDateRe    = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	storageDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseWireDate parses a dd/mm/yyyy date into a UTC midnight time.
func ParseWireDate(s string) (time.Time, error) {
	if !wireDateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not in dd/mm/yyyy format", s)
	}
	t, err := time.Parse(WireDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q does not exist: %w", s, err)
	}
	return t, nil
}

// ParseStorageDate parses a yyyy-mm-dd date into a UTC midnight time.
func ParseStorageDate(s string) (time.Time, error) {
	if !storageDateRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not in yyyy-mm-dd format", s)
	}
	t, err := time.Parse(StorageDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q does not exist: %w", s, err)
	}
	return t, nil
}

// ParseAnyDate accepts either dd/mm/yyyy or yyyy-mm-dd.
func ParseAnyDate(s string) (time.Time, error) {
	if storageDateRe.MatchString(s) {
		return ParseStorageDate(s)
	}
	return ParseWireDate(s)
}

// WireToStorage rewrites a dd/mm/yyyy date as yyyy-mm-dd.
func WireToStorage(s string) (string, error) {
	t, err := ParseWireDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// FormatDate renders t as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(StorageDateLayout)
}

// DateOnly drops the clock part of t and moves it to UTC, keeping the
// calendar day it had in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
