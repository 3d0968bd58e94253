// Package geolocate resolves an IP address to a starting map position
// using a MaxMind GeoIP2/GeoLite2 City database.
package geolocate

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/dshills/teletextmap/internal/session"
)

var (
	// ErrInvalidIP indicates an address that does not parse.
	ErrInvalidIP = errors.New("invalid IP address")

	// ErrNoLocation indicates the database has no coordinates for the address.
	ErrNoLocation = errors.New("no location for address")
)

// cityReader is the subset of *geoip2.Reader the locator needs.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// Locator looks up positions in a City database.
type Locator struct {
	reader cityReader
	zoom   int
}

// Open opens the database at path. Positions are returned at zoom.
func Open(path string, zoom int) (*Locator, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Locator{reader: r, zoom: zoom}, nil
}

// Lookup returns the position recorded for ip.
func (l *Locator) Lookup(ip string) (session.Position, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return session.Position{}, fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	city, err := l.reader.City(addr)
	if err != nil {
		return session.Position{}, fmt.Errorf("lookup %s: %w", ip, err)
	}
	loc := city.Location
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return session.Position{}, fmt.Errorf("%w: %s", ErrNoLocation, ip)
	}

	p := session.Position{Lat: loc.Latitude, Lng: loc.Longitude}
	return p.ZoomBy(l.zoom), nil
}

// Close releases the database.
func (l *Locator) Close() error {
	return l.reader.Close()
}
