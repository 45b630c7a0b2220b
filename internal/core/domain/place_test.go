package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace_AverageRanking(t *testing.T) {
	tests := []struct {
		name    string
		reviews []Review
		want    float64
	}{
		{name: "no reviews", want: 0},
		{name: "only unranked", reviews: []Review{{User: "ana"}}, want: 0},
		{name: "unranked ignored", reviews: []Review{{Ranking: 4}, {Ranking: 0}, {Ranking: 5}}, want: 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Place{Reviews: tt.reviews}
			assert.InDelta(t, tt.want, p.AverageRanking(), 1e-9)
		})
	}
}

func TestPlace_IdentityAndTypes(t *testing.T) {
	p := Place{
		Types:    []string{"Bar", "Café"},
		Location: EnrichedLocation{PlaceID: "abc123"},
	}

	assert.Equal(t, PlaceIdentity("abc123"), p.Identity())
	assert.True(t, p.HasType("Café"))
	assert.False(t, p.HasType("café"))
}

func TestRowOutcome(t *testing.T) {
	ok := Success("abc", Place{})
	assert.True(t, ok.OK())
	assert.Nil(t, ok.Err)

	failed := Failure("", ErrNoIdentity.Error(), &RowErrorMeta{Row: 3})
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Place)
	assert.Equal(t, "missing Google Maps link", failed.Err.Error)
	assert.Equal(t, 3, failed.Err.Meta.Row)
}
