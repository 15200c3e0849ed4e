package model_test

import (
	"sync"
	"testing"

	"pinboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestForeignKeys_OnDelete(t *testing.T) {
	cache := &sync.Map{}
	naming := schema.NamingStrategy{}

	tests := []struct {
		model    interface{}
		relation string
		table    string
		onDelete string
	}{
		{&model.Board{}, "Owner", "users", "CASCADE"},
		{&model.Pin{}, "Owner", "users", "CASCADE"},
		{&model.Pin{}, "Board", "boards", "SET NULL"},
		{&model.Comment{}, "Pin", "pins", "CASCADE"},
		{&model.Comment{}, "Author", "users", "CASCADE"},
		{&model.PinLike{}, "Pin", "pins", "CASCADE"},
		{&model.PinLike{}, "User", "users", "CASCADE"},
	}

	for _, tt := range tests {
		s, err := schema.Parse(tt.model, cache, naming)
		require.NoError(t, err)

		t.Run(s.Table+"."+tt.relation, func(t *testing.T) {
			rel, ok := s.Relationships.Relations[tt.relation]
			require.True(t, ok)

			constraint := rel.ParseConstraint()
			require.NotNil(t, constraint)
			assert.Equal(t, tt.table, constraint.ReferenceSchema.Table)
			assert.Equal(t, tt.onDelete, constraint.OnDelete)
		})
	}
}
