package db

import (
	"reflect"
	"testing"
)

func TestNullIfEmpty(t *testing.T) {
	if v := NullIfEmpty(""); v != nil {
		t.Fatalf("expected nil for empty string, got %v", v)
	}
	if v := NullIfEmpty("2024-06-01"); v != "2024-06-01" {
		t.Fatalf("expected passthrough, got %v", v)
	}
}

func TestStringListValue(t *testing.T) {
	v, err := StringList{"Dean Thorne", "Billy Smith"}.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if v != `["Dean Thorne","Billy Smith"]` {
		t.Fatalf("unexpected encoding: %v", v)
	}

	// nil and empty both persist as an empty JSON array
	v, err = StringList(nil).Value()
	if err != nil || v != "[]" {
		t.Fatalf("expected [] for nil list, got %v err %v", v, err)
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan([]byte(`["Dean Thorne"]`)); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if !reflect.DeepEqual([]string(l), []string{"Dean Thorne"}) {
		t.Fatalf("unexpected list: %v", l)
	}

	if err := l.Scan(nil); err != nil {
		t.Fatalf("Scan nil error: %v", err)
	}
	if len(l) != 0 {
		t.Fatalf("expected empty list after nil scan, got %v", l)
	}
}
