package domain

import "testing"

func testCities() []City {
	return []City{
		{ID: 1, Name: "Anchor", Latitude: 10, Longitude: 10},
		{ID: 2, Name: "Near", Latitude: 10.01, Longitude: 10},
		{ID: 3, Name: "Far", Latitude: 12, Longitude: 10},
		{ID: 4, Name: "Mid", Latitude: 10.5, Longitude: 10},
	}
}

func TestRankByProximity_Ordering(t *testing.T) {
	ranked := RankByProximity(1, testCities(), 0, 0)

	wantOrder := []int{2, 4, 3}
	if len(ranked) != len(wantOrder) {
		t.Fatalf("got %d results, want %d", len(ranked), len(wantOrder))
	}
	for i, id := range wantOrder {
		if ranked[i].Place.ID != id {
			t.Errorf("position %d: got city %d, want %d", i, ranked[i].Place.ID, id)
		}
	}

	// Distances must be non-decreasing.
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Distance < ranked[i-1].Distance {
			t.Errorf("distances not ascending at %d: %v < %v", i, ranked[i].Distance, ranked[i-1].Distance)
		}
	}
}

func TestRankByProximity_ExcludesAnchor(t *testing.T) {
	for _, r := range RankByProximity(1, testCities(), 0, 0) {
		if r.Place.ID == 1 {
			t.Error("anchor present in its own result set")
		}
	}
}

func TestRankByProximity_AnchorAbsent(t *testing.T) {
	if got := RankByProximity(99, testCities(), 0, 0); len(got) != 0 {
		t.Errorf("expected empty result for unknown anchor, got %d entries", len(got))
	}
}

func TestRankByProximity_TiesKeepInputOrder(t *testing.T) {
	cities := []City{
		{ID: 1, Latitude: 0, Longitude: 0},
		{ID: 2, Latitude: 1, Longitude: 0},
		{ID: 3, Latitude: -1, Longitude: 0}, // same distance as 2
	}

	ranked := RankByProximity(1, cities, 0, 0)
	if ranked[0].Place.ID != 2 || ranked[1].Place.ID != 3 {
		t.Errorf("tie not broken by input order: got %d, %d", ranked[0].Place.ID, ranked[1].Place.ID)
	}
}

func TestRankByProximity_Pagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []int
	}{
		{name: "first page", page: 1, pageSize: 2, wantIDs: []int{2, 4}},
		{name: "second page", page: 2, pageSize: 2, wantIDs: []int{3}},
		{name: "out of range", page: 5, pageSize: 2, wantIDs: nil},
		{name: "no pagination", page: 0, pageSize: 0, wantIDs: []int{2, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankByProximity(1, testCities(), tt.page, tt.pageSize)
			if len(ranked) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(ranked), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if ranked[i].Place.ID != id {
					t.Errorf("position %d: got %d, want %d", i, ranked[i].Place.ID, id)
				}
			}
		})
	}
}

func TestRankByProximity_Regions(t *testing.T) {
	regions := []Region{
		{ID: 10, Latitude: 0, Longitude: 0},
		{ID: 11, Latitude: 0, Longitude: 3},
		{ID: 12, Latitude: 0, Longitude: 1},
	}

	ranked := RankByProximity(10, regions, 0, 0)
	if len(ranked) != 2 || ranked[0].Place.ID != 12 || ranked[1].Place.ID != 11 {
		t.Errorf("unexpected region ranking: %+v", ranked)
	}
}
