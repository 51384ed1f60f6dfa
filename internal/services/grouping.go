package services

import (
	"sort"
	"strconv"
	"strings"

	"visit-planner-service/internal/domain"
)

// GroupingPolicy selects how visits are merged into atomic service stops.
type GroupingPolicy string

const (
	// GroupByRadius merges visits within a fixed walking radius of a seed visit.
	GroupByRadius GroupingPolicy = "radius"
	// GroupByStreet merges visits with adjacent house numbers on the same street.
	GroupByStreet GroupingPolicy = "street"
)

// groupRadiusMiles is the walking radius within which two visits are close
// enough to be served without moving the vehicle.
const groupRadiusMiles = 0.1

// houseNumberGap is the largest house-number difference that still chains two
// visits on the same street into one group.
const houseNumberGap = 10

// GroupVisits partitions visits into proximity groups under the given policy.
// Every input visit lands in exactly one group; a visit with no group-mates
// becomes a singleton group. Unknown policies fall back to the radius policy.
func GroupVisits(visits []domain.Visit, policy GroupingPolicy) []domain.Group {
	if policy == GroupByStreet {
		return groupByStreet(visits)
	}
	return groupByRadius(visits)
}

// groupByRadius repeatedly takes the first unused visit as a seed and closes
// a group around every unused visit within groupRadiusMiles of it. The
// first-unused-first policy keeps the result deterministic for a given input
// order. O(n²) over visits.
func groupByRadius(visits []domain.Visit) []domain.Group {
	used := make([]bool, len(visits))
	groups := make([]domain.Group, 0, len(visits))

	for i := range visits {
		if used[i] {
			continue
		}
		used[i] = true

		members := []domain.Visit{visits[i]}
		for j := i + 1; j < len(visits); j++ {
			if used[j] {
				continue
			}
			if domain.Distance(visits[i].Coordinate, visits[j].Coordinate) <= groupRadiusMiles {
				used[j] = true
				members = append(members, visits[j])
			}
		}

		groups = append(groups, domain.Group{ID: len(groups), Members: members})
	}

	return groups
}

// parsedAddress is a visit address reduced to its grouping key.
type parsedAddress struct {
	houseNumber int
	street      string
}

var directionals = map[string]struct{}{
	"n": {}, "s": {}, "e": {}, "w": {},
	"ne": {}, "nw": {}, "se": {}, "sw": {},
	"north": {}, "south": {}, "east": {}, "west": {},
}

var streetSuffixes = map[string]struct{}{
	"st": {}, "ave": {}, "rd": {}, "dr": {}, "ln": {},
	"blvd": {}, "ct": {}, "pl": {}, "way": {}, "cir": {},
}

// parseAddress extracts a leading house number and a normalized street name.
// Directional prefixes/suffixes and common suffix abbreviations are stripped
// case-insensitively. A false return means the address does not fit the
// "number street" shape and the visit groups as a singleton.
func parseAddress(address string) (parsedAddress, bool) {
	// Only the street line matters; drop city/state/zip parts.
	line := address
	if idx := strings.IndexByte(line, ','); idx >= 0 {
		line = line[:idx]
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) < 2 {
		return parsedAddress{}, false
	}

	number, err := strconv.Atoi(strings.TrimSuffix(fields[0], "."))
	if err != nil || number <= 0 {
		return parsedAddress{}, false
	}

	name := fields[1:]
	for len(name) > 0 {
		w := strings.Trim(name[0], ".")
		if _, ok := directionals[w]; !ok {
			break
		}
		name = name[1:]
	}
	for len(name) > 0 {
		w := strings.Trim(name[len(name)-1], ".")
		_, isSuffix := streetSuffixes[w]
		_, isDirectional := directionals[w]
		if !isSuffix && !isDirectional {
			break
		}
		name = name[:len(name)-1]
	}

	if len(name) == 0 {
		return parsedAddress{}, false
	}

	return parsedAddress{houseNumber: number, street: strings.Join(name, " ")}, true
}

// groupByStreet chains visits that share a normalized street name whenever
// consecutive house numbers differ by at most houseNumberGap. Visits whose
// address fails to parse become singleton groups; parse failure is never an
// error.
func groupByStreet(visits []domain.Visit) []domain.Group {
	type streetVisit struct {
		visit domain.Visit
		num   int
	}

	byStreet := make(map[string][]streetVisit)
	streets := make([]string, 0)
	singles := make([]domain.Visit, 0)

	for _, v := range visits {
		addr, ok := parseAddress(v.Address)
		if !ok {
			singles = append(singles, v)
			continue
		}
		if _, seen := byStreet[addr.street]; !seen {
			streets = append(streets, addr.street)
		}
		byStreet[addr.street] = append(byStreet[addr.street], streetVisit{visit: v, num: addr.houseNumber})
	}

	groups := make([]domain.Group, 0, len(visits))
	appendGroup := func(members []domain.Visit) {
		groups = append(groups, domain.Group{ID: len(groups), Members: members})
	}

	// Streets iterate in first-seen order so the result is deterministic.
	for _, street := range streets {
		onStreet := byStreet[street]
		sort.SliceStable(onStreet, func(i, j int) bool {
			return onStreet[i].num < onStreet[j].num
		})

		members := []domain.Visit{onStreet[0].visit}
		prev := onStreet[0].num
		for _, sv := range onStreet[1:] {
			if sv.num-prev > houseNumberGap {
				appendGroup(members)
				members = []domain.Visit{}
			}
			members = append(members, sv.visit)
			prev = sv.num
		}
		appendGroup(members)
	}

	for _, v := range singles {
		appendGroup([]domain.Visit{v})
	}

	return groups
}
