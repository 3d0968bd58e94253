package geolocate

import (
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/oschwald/geoip2-golang"
)

type fakeReader struct {
	city   geoip2.City
	err    error
	closed bool
}

func (f *fakeReader) City(ip net.IP) (*geoip2.City, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := f.city
	return &c, nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestLookup(t *testing.T) {
	r := &fakeReader{}
	r.city.Location.Latitude = 39.0997
	r.city.Location.Longitude = -94.5786
	l := &Locator{reader: r, zoom: 12}

	p, err := l.Lookup("203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 39.0997 || p.Lng != -94.5786 || p.Zoom != 12 {
		t.Errorf("expected 39.0997,-94.5786 z12, got %+v", p)
	}

	if err := l.Close(); err != nil || !r.closed {
		t.Errorf("expected reader to be closed, err=%v", err)
	}
}

func TestLookupZoomClamped(t *testing.T) {
	r := &fakeReader{}
	r.city.Location.Latitude = 1
	l := &Locator{reader: r, zoom: 99}
	p, err := l.Lookup("::1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Zoom != 20 {
		t.Errorf("expected zoom clamped to 20, got %d", p.Zoom)
	}
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name   string
		ip     string
		reader *fakeReader
		want   error
	}{
		{"invalid ip", "not-an-ip", &fakeReader{}, ErrInvalidIP},
		{"no location", "192.0.2.1", &fakeReader{}, ErrNoLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Locator{reader: tt.reader, zoom: 10}
			if _, err := l.Lookup(tt.ip); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	readErr := errors.New("corrupt")
	l := &Locator{reader: &fakeReader{err: readErr}}
	if _, err := l.Lookup("192.0.2.1"); !errors.Is(err, readErr) {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"), 10); err == nil {
		t.Error("expected error for missing database")
	}
}
