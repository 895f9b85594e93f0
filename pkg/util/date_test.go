package util

import (
    "testing"
    "time"
)

func TestParseDateISO(t *testing.T) {
    got, ok := ParseDate("2024-01-15")
    if !ok {
        t.Fatalf("expected ok")
    }
    want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseDateSlashAndTimestamp(t *testing.T) {
    got, ok := ParseDate("2024/02/01")
    if !ok || got.Month() != time.February {
        t.Fatalf("unexpected %v ok=%v", got, ok)
    }
    got, ok = ParseDate("2024-02-01 13:45:00")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Hour() != 0 {
        t.Fatalf("expected midnight, got %v", got)
    }
}

func TestParseDateInvalid(t *testing.T) {
    if _, ok := ParseDate("not-a-date"); ok {
        t.Fatalf("expected failure")
    }
    if _, ok := ParseDate(""); ok {
        t.Fatalf("expected failure for empty")
    }
}

func TestParseFloat(t *testing.T) {
    v, ok := ParseFloat("1,234.5")
    if !ok || v != 1234.5 {
        t.Fatalf("unexpected %v ok=%v", v, ok)
    }
    if _, ok := ParseFloat("NaN"); ok {
        t.Fatalf("NaN must be rejected")
    }
    if _, ok := ParseFloat("abc"); ok {
        t.Fatalf("expected failure")
    }
}
