package models

import "strings"

// RawApp is one row of the input file as loaded, before any cleaning.
// Last_Updated and Android_Ver are never mapped. The struct is comparable so
// exact duplicate rows can be detected with ==.
type RawApp struct {
	Name          string
	Category      string
	Rating        float64
	HasRating     bool
	Reviews       int64
	SizeMBs       float64
	Installs      string
	Type          string
	Price         string
	ContentRating string
	Genres        string
}

// App is the cleaned, type-normalized record every aggregate is computed from.
type App struct {
	Name            string  `json:"app"`
	Category        string  `json:"category"`
	Rating          float64 `json:"rating"`
	Reviews         int64   `json:"reviews"`
	SizeMBs         float64 `json:"size_mbs"`
	Installs        int64   `json:"installs"`
	Type            string  `json:"type"`
	Price           float64 `json:"price"`
	ContentRating   string  `json:"content_rating"`
	Genres          string  `json:"genres"`
	RevenueEstimate float64 `json:"revenue_estimate"`
}

// GenreList splits the semicolon-delimited Genres field.
func (a App) GenreList() []string {
	if a.Genres == "" {
		return nil
	}
	parts := strings.Split(a.Genres, ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
