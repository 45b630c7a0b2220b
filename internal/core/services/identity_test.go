package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		want    domain.PlaceIdentity
		wantErr error
	}{
		{name: "canonical", link: "https://www.google.com/maps/place/?q=place_id:ChIJN1t_tDeuEmsRUsoyG83frY4", want: "ChIJN1t_tDeuEmsRUsoyG83frY4"},
		{name: "without www", link: "https://google.com/maps/place/?q=place_id:abc123", want: "abc123"},
		{name: "http", link: "http://www.google.com/maps/place/?q=place_id:abc-123", want: "abc-123"},
		{name: "surrounding spaces", link: "  https://www.google.com/maps/place/?q=place_id:abc123 ", want: "abc123"},
		{name: "empty", link: "", wantErr: domain.ErrNoIdentity},
		{name: "blank", link: "   ", wantErr: domain.ErrNoIdentity},
		{name: "search link", link: "https://www.google.com/maps/search/?api=1&query=bar", wantErr: domain.ErrIdentityNotFound},
		{name: "short link", link: "https://maps.app.goo.gl/xyz", wantErr: domain.ErrIdentityNotFound},
		{name: "trailing garbage", link: "https://www.google.com/maps/place/?q=place_id:abc123&hl=pt", wantErr: domain.ErrIdentityNotFound},
		{name: "empty id", link: "https://www.google.com/maps/place/?q=place_id:", wantErr: domain.ErrIdentityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractIdentity(tt.link)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
