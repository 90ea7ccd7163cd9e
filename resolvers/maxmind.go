package resolvers

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/maxminddb-golang"
	"github.com/spf13/afero"

	"github.com/audimeta/geodash/geolib"
)

const NameMaxmind = "maxmind"

type maxmindLookupResult struct {
	City struct {
		Names struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"city"`
	Country struct {
		IsoCode string `maxminddb:"iso_code"`
		Names   struct {
			En string `maxminddb:"en"`
		} `maxminddb:"names"`
	} `maxminddb:"country"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
}

type mmdbReader interface {
	Lookup(ip net.IP, result interface{}) error
}

type maxmindResolver struct {
	db mmdbReader
}

func (m maxmindResolver) Name() string {
	return NameMaxmind
}

// Lookup resolves against the local database. Records without both
// coordinates are skips: a GeoLite2 city file answers many addresses
// with an empty record rather than a not-found error.
func (m maxmindResolver) Lookup(ctx context.Context, ip string) (geolib.GeoRecord, error) {
	rv := geolib.GeoRecord{}

	ipAddr := net.ParseIP(ip)
	if ipAddr == nil {
		return rv, ErrBadIP
	}

	record := maxmindLookupResult{}

	if err := m.db.Lookup(ipAddr, &record); err != nil {
		return rv, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	if record.Location.Latitude == 0 || record.Location.Longitude == 0 {
		return rv, ErrNoCoordinates
	}

	rv.IP = ip
	rv.Lat = record.Location.Latitude
	rv.Lng = record.Location.Longitude
	rv.City = orUnknown(record.City.Names.En)
	rv.Country = orUnknown(record.Country.Names.En)
	rv.CountryCode = orUnknownCode(strings.ToUpper(record.Country.IsoCode))

	return rv, nil
}

// NewMaxmind loads a GeoLite2 City database into memory and serves
// offline lookups from it. The reader is read-only afterwards, so one
// resolver is safe for any number of concurrent requests.
func NewMaxmind(fs afero.Fs, path string) (geolib.Resolver, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read the database file: %w", err)
	}

	reader, err := maxminddb.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize a reader of maxminddb: %w", err)
	}

	return maxmindResolver{db: reader}, nil
}
