package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docscan/internal/scanner/domain/entities"
)

func TestTokenPairExpiresWithin(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	window := 60 * time.Second

	tests := []struct {
		name string
		pair *entities.TokenPair
		want bool
	}{
		{"nil pair", nil, false},
		{"unknown expiry", &entities.TokenPair{AccessToken: "a", RefreshToken: "r"}, false},
		{"30s left", &entities.TokenPair{AccessExp: now.Unix() + 30}, true},
		{"59s left", &entities.TokenPair{AccessExp: now.Unix() + 59}, true},
		{"exactly 60s left", &entities.TokenPair{AccessExp: now.Unix() + 60}, false},
		{"61s left", &entities.TokenPair{AccessExp: now.Unix() + 61}, false},
		{"already expired", &entities.TokenPair{AccessExp: now.Unix() - 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pair.ExpiresWithin(now, window))
		})
	}
}

func TestTokenPairValidAndClone(t *testing.T) {
	var nilPair *entities.TokenPair
	assert.False(t, nilPair.Valid())
	assert.Nil(t, nilPair.Clone())

	p := &entities.TokenPair{AccessToken: "a", RefreshToken: "r", AccessExp: 10}
	assert.True(t, p.Valid())

	c := p.Clone()
	c.AccessToken = "changed"
	assert.Equal(t, "a", p.AccessToken)

	assert.False(t, (&entities.TokenPair{AccessToken: "a"}).Valid())
}

func TestCategoryOf(t *testing.T) {
	cat, ok := entities.CategoryOf("GDPR")
	assert.True(t, ok)
	assert.Equal(t, entities.CategoryDocument, cat)

	cat, ok = entities.CategoryOf("CI")
	assert.True(t, ok)
	assert.Equal(t, entities.CategoryImage, cat)

	_, ok = entities.CategoryOf("UNKNOWN")
	assert.False(t, ok)

	assert.True(t, entities.IsImageType("Card Tahograf"))
	assert.False(t, entities.IsDocumentType("Card Tahograf"))
}
