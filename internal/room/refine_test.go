// File: internal/room/refine_test.go
package room

import (
	"testing"
	"time"

	"ktm_rentals_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeRoom(title, location string, price float64, bedrooms int, createdAt time.Time) Room {
	return Room{
		BaseModel: common.BaseModel{ID: uuid.New(), CreatedAt: createdAt},
		Title:     title,
		Location:  location,
		Price:     price,
		Bedrooms:  bedrooms,
		Available: true,
	}
}

func sampleRooms() []Room {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rooms := []Room{
		makeRoom("Sunny flat", "Patan, Lalitpur", 25000, 2, base.Add(3*time.Hour)),
		makeRoom("Cozy studio", "Thamel, Kathmandu", 12000, 0, base.Add(2*time.Hour)),
		makeRoom("Family apartment", "Baneshwor, Kathmandu", 40000, 3, base.Add(1*time.Hour)),
		makeRoom("Shared room", "Patan Dhoka", 8000, 1, base),
	}
	desc := "Spacious attic with mountain view"
	rooms[2].Description = &desc
	return rooms
}

func TestRefine_QueryMatchesTitleOrLocation(t *testing.T) {
	rooms := sampleRooms()

	got := Refine(rooms, RefineOptions{Query: "patan"})

	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Contains(t, []string{"Sunny flat", "Shared room"}, r.Title)
	}
}

func TestRefine_QueryMatchesDescription(t *testing.T) {
	rooms := sampleRooms()

	got := Refine(rooms, RefineOptions{Query: "mountain"})

	assert.Len(t, got, 1)
	assert.Equal(t, "Family apartment", got[0].Title)
}

func TestRefine_QueryIgnoresNilDescription(t *testing.T) {
	got := Refine(sampleRooms(), RefineOptions{Query: "garden"})

	assert.Empty(t, got)
}

func TestRefine_QueryIsCaseInsensitive(t *testing.T) {
	rooms := sampleRooms()

	got := Refine(rooms, RefineOptions{Query: "  COZY "})

	assert.Len(t, got, 1)
	assert.Equal(t, "Cozy studio", got[0].Title)
}

func TestRefine_QueryWithNoMatchesReturnsEmpty(t *testing.T) {
	got := Refine(sampleRooms(), RefineOptions{Query: "pokhara"})

	assert.Empty(t, got)
}

func TestRefine_BedroomBuckets(t *testing.T) {
	rooms := sampleRooms()

	tests := []struct {
		bucket string
		titles []string
	}{
		{BedroomsStudio, []string{"Cozy studio"}},
		{"1", []string{"Shared room"}},
		{"2", []string{"Sunny flat"}},
		{BedroomsThree, []string{"Family apartment"}},
		{BedroomsAny, []string{"Sunny flat", "Cozy studio", "Family apartment", "Shared room"}},
	}

	for _, tt := range tests {
		t.Run("bucket "+tt.bucket, func(t *testing.T) {
			got := Refine(rooms, RefineOptions{Bedrooms: tt.bucket})
			titles := make([]string, 0, len(got))
			for _, r := range got {
				titles = append(titles, r.Title)
			}
			assert.ElementsMatch(t, tt.titles, titles)
		})
	}
}

func TestRefine_SortOrders(t *testing.T) {
	rooms := sampleRooms()

	priceAsc := Refine(rooms, RefineOptions{Sort: SortPriceAsc})
	assert.Equal(t, "Shared room", priceAsc[0].Title)
	assert.Equal(t, "Family apartment", priceAsc[len(priceAsc)-1].Title)

	priceDesc := Refine(rooms, RefineOptions{Sort: SortPriceDesc})
	assert.Equal(t, "Family apartment", priceDesc[0].Title)

	oldest := Refine(rooms, RefineOptions{Sort: SortOldest})
	assert.Equal(t, "Shared room", oldest[0].Title)

	newest := Refine(rooms, RefineOptions{Sort: SortNewest})
	assert.Equal(t, "Sunny flat", newest[0].Title)

	bedrooms := Refine(rooms, RefineOptions{Sort: SortBedroomsDesc})
	assert.Equal(t, "Family apartment", bedrooms[0].Title)
}

func TestRefine_FilterAndSortCompose(t *testing.T) {
	rooms := sampleRooms()

	got := Refine(rooms, RefineOptions{Query: "kathmandu", Sort: SortPriceAsc})

	assert.Len(t, got, 2)
	assert.Equal(t, "Cozy studio", got[0].Title)
	assert.Equal(t, "Family apartment", got[1].Title)
}

func TestRefine_DoesNotMutateInput(t *testing.T) {
	rooms := sampleRooms()
	firstTitle := rooms[0].Title

	_ = Refine(rooms, RefineOptions{Sort: SortPriceAsc})

	assert.Equal(t, firstTitle, rooms[0].Title)
}

func TestRefineOptionsIsZero(t *testing.T) {
	assert.True(t, RefineOptions{}.IsZero())
	assert.False(t, RefineOptions{Query: "patan"}.IsZero())
	assert.False(t, RefineOptions{Sort: SortNewest}.IsZero())
}

func TestNewSlug(t *testing.T) {
	s := NewSlug("Sunny Flat in Patan!")
	assert.Contains(t, s, "sunny-flat-in-patan-")

	another := NewSlug("Sunny Flat in Patan!")
	assert.NotEqual(t, s, another)

	empty := NewSlug("???")
	assert.Contains(t, empty, "room-")
}
