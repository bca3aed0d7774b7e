// File: internal/room/refine.go
package room

import (
	"sort"
	"strings"
)

// SortKey identifies an ordering for refined room lists.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortBedroomsDesc SortKey = "bedrooms-desc"
)

// Bedroom filter buckets. "3+" matches three or more bedrooms; "studio"
// matches zero.
const (
	BedroomsAny    = ""
	BedroomsStudio = "studio"
	BedroomsThree  = "3+"
)

// RefineOptions narrows and orders a room list in memory, after the
// database/search layer has produced it.
type RefineOptions struct {
	Query    string
	Bedrooms string
	Sort     SortKey
}

// IsZero reports whether the options would leave the list untouched.
func (o RefineOptions) IsZero() bool {
	return o.Query == "" && o.Bedrooms == BedroomsAny && o.Sort == ""
}

// Refine filters and sorts rooms according to the options. The input slice
// is not modified; a new slice is returned.
func Refine(rooms []Room, opts RefineOptions) []Room {
	out := make([]Room, 0, len(rooms))

	query := strings.ToLower(strings.TrimSpace(opts.Query))
	for _, room := range rooms {
		if query != "" && !matchesQuery(&room, query) {
			continue
		}
		if !matchesBedrooms(&room, opts.Bedrooms) {
			continue
		}
		out = append(out, room)
	}

	sortRooms(out, opts.Sort)
	return out
}

func matchesQuery(r *Room, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Location), query) {
		return true
	}
	return r.Description != nil && strings.Contains(strings.ToLower(*r.Description), query)
}

func matchesBedrooms(r *Room, bucket string) bool {
	switch bucket {
	case BedroomsAny:
		return true
	case BedroomsStudio:
		return r.Bedrooms == 0
	case "1":
		return r.Bedrooms == 1
	case "2":
		return r.Bedrooms == 2
	case BedroomsThree:
		return r.Bedrooms >= 3
	default:
		return true
	}
}

func sortRooms(rooms []Room, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Price < rooms[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Price > rooms[j].Price
		})
	case SortBedroomsDesc:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Bedrooms > rooms[j].Bedrooms
		})
	case SortNewest:
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
		})
	}
}
