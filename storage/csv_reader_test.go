package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVReaderLoadsFixture(t *testing.T) {
	apps, err := NewCSVReader(filepath.Join("testdata", "apps.csv")).Load()
	if err != nil {
		t.Fatalf("Load: unexpected error %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("rows: got %d, want 3", len(apps))
	}

	mc := apps[1]
	if mc.Name != "Minecraft" || mc.Category != "FAMILY" {
		t.Errorf("row 1: got %q/%q, want Minecraft/FAMILY", mc.Name, mc.Category)
	}
	if !mc.HasRating || mc.Rating != 4.5 {
		t.Errorf("Rating: got %.2f (present=%v), want 4.5", mc.Rating, mc.HasRating)
	}
	if mc.Reviews != 2376564 {
		t.Errorf("Reviews: got %d, want 2376564", mc.Reviews)
	}
	if mc.Installs != "10,000,000" || mc.Price != "$6.99" {
		t.Errorf("Installs/Price should stay raw text, got %q/%q", mc.Installs, mc.Price)
	}
	if mc.Genres != "Arcade;Action & Adventure" {
		t.Errorf("Genres: got %q", mc.Genres)
	}

	if apps[2].HasRating {
		t.Error("empty Rating cell should be read as missing")
	}
}

func TestCSVReaderMissingFile(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv")).Load()

	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected *DataLoadError, got %T (%v)", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestReadAppsMissingColumns(t *testing.T) {
	in := "App,Category,Rating\nFoo,TOOLS,4.1\n"
	_, err := ReadApps(strings.NewReader(in), "inline")

	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected *DataLoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "Reviews") || !strings.Contains(err.Error(), "Genres") {
		t.Errorf("error should name the missing columns, got %q", err.Error())
	}
}

func TestReadAppsMalformedNumber(t *testing.T) {
	in := "App,Category,Rating,Reviews,Size_MBs,Installs,Type,Price,Content_Rating,Genres\n" +
		"Ok,TOOLS,4.1,10,1.5,100,Free,0,Everyone,Tools\n" +
		"Bad,TOOLS,4.1,lots,1.5,100,Free,0,Everyone,Tools\n"
	_, err := ReadApps(strings.NewReader(in), "inline")

	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected *DataLoadError, got %v", err)
	}
	if dle.Line != 3 {
		t.Errorf("Line: got %d, want 3", dle.Line)
	}
}

func TestReadAppsEmpty(t *testing.T) {
	_, err := ReadApps(strings.NewReader(""), "inline")
	var dle *DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("expected *DataLoadError for empty input, got %v", err)
	}
}

func TestReadAppsMissingMarkers(t *testing.T) {
	in := "App,Category,Rating,Reviews,Size_MBs,Installs,Type,Price,Content_Rating,Genres\n" +
		"A,TOOLS,NaN,10,1.5,100,Free,0,Everyone,Tools\n" +
		"B,TOOLS,n/a,10,1.5,100,Free,0,Everyone,Tools\n"
	apps, err := ReadApps(strings.NewReader(in), "inline")
	if err != nil {
		t.Fatalf("ReadApps: unexpected error %v", err)
	}
	for _, a := range apps {
		if a.HasRating {
			t.Errorf("%s: rating marker should be missing", a.Name)
		}
	}
}
