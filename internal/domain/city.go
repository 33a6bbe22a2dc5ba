package domain

import "context"

// City is a lookup row referenced by profiles and conferences.
// swagger:model City
type City struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Governorate string `json:"governorate"`
}

// CityRepository reads the city lookup table.
type CityRepository interface {
	List(ctx context.Context) ([]*City, error)
	GetByID(ctx context.Context, id string) (*City, error)
}
