package facility

import (
	"sort"

	"github.com/carelink/carelink/internal/domain/apperr"
)

// Service answers routing lookups against the static reference data.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Regions returns all known regions, sorted.
func (s *Service) Regions() []string {
	regions := make([]string, 0, len(routingTable))
	for r := range routingTable {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// Constituencies returns the constituencies of a region, sorted. The second
// return value is false when the region is unknown.
func (s *Service) Constituencies(region string) ([]string, bool) {
	constituencies, ok := routingTable[region]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(constituencies))
	for c := range constituencies {
		names = append(names, c)
	}
	sort.Strings(names)
	return names, true
}

// Facilities returns the facilities of a constituency within a region. The
// second return value is false when the pair is unknown.
func (s *Service) Facilities(region, constituency string) ([]string, bool) {
	constituencies, ok := routingTable[region]
	if !ok {
		return nil, false
	}
	facilities, ok := constituencies[constituency]
	if !ok {
		return nil, false
	}
	out := make([]string, len(facilities))
	copy(out, facilities)
	return out, true
}

// ValidateRoute checks that the submitted region/constituency/facility triple
// is internally consistent: the constituency belongs to the region and the
// facility belongs to the constituency. Returns a field-attributed
// ValidationError on the first rule that fails.
func (s *Service) ValidateRoute(region, constituency, facility string) error {
	constituencies, ok := routingTable[region]
	if !ok {
		return apperr.NewValidationError("region", "unknown region: "+region)
	}
	facilities, ok := constituencies[constituency]
	if !ok {
		return apperr.NewValidationError("constituency", "constituency "+constituency+" is not in region "+region)
	}
	for _, f := range facilities {
		if f == facility {
			return nil
		}
	}
	return apperr.NewValidationError("facility", "facility "+facility+" is not in constituency "+constituency)
}
