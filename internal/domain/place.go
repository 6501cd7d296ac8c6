// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import "errors"

// ErrNotFound is returned by lookup operations when the requested
// entity does not exist. Ranking and feed operations never return it;
// they degrade to empty results instead.
var ErrNotFound = errors.New("not found")

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the minimal capability shared by cities, regions and
// countries. Proximity ranking is written once against this interface
// instead of being triplicated per place kind.
type Place interface {
	PlaceID() int
	Location() Coordinate
}

// City is a city row as read from storage.
type City struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	RegionID  int     `json:"regionId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceID implements Place.
func (c City) PlaceID() int { return c.ID }

// Location implements Place.
func (c City) Location() Coordinate {
	return Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Region groups cities inside a country.
type Region struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	CountryID int     `json:"countryId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceID implements Place.
func (r Region) PlaceID() int { return r.ID }

// Location implements Place.
func (r Region) Location() Coordinate {
	return Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// Country is a country row as read from storage.
type Country struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Iso2        string  `json:"iso2"`
	ContinentID int     `json:"continentId"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// PlaceID implements Place.
func (c Country) PlaceID() int { return c.ID }

// Location implements Place.
func (c Country) Location() Coordinate {
	return Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// CityDetail is a city joined with its region and country names,
// the shape most read paths return to callers.
type CityDetail struct {
	City
	Region      string `json:"region"`
	CountryIso2 string `json:"iso2"`
	Country     string `json:"country"`
}

// Identity is the current user as resolved by the authentication
// collaborator. The ranking core never loads user rows itself.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
