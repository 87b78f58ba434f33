package storage

import "playstore-dashboard/models"

// AppSource is the interface any input backend must satisfy. Load is called
// exactly once at startup.
type AppSource interface {
	Load() ([]models.RawApp, error)
	Name() string
}
