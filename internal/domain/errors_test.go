package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("category", "Category is required.", nil)

	assert.Equal(t, "category: Category is required.", err.Error())
	assert.True(t, errors.Is(err, ErrValidation), "nil cause should default to ErrValidation")

	wrapped := fmt.Errorf("create room: %w", err)
	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "Category is required.", ve.Message)

	noField := NewValidationError("", "This user is not a host.", nil)
	assert.Equal(t, "This user is not a host.", noField.Error())
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("name", "This field is required.")
	fe.Add("price", "Ensure this value is greater than or equal to 0.")
	fe.Add("name", "Ensure this field has no more than 140 characters.")

	assert.Len(t, fe["name"], 2)
	assert.Equal(t,
		"validation failed: name: This field is required. Ensure this field has no more than 140 characters.; "+
			"price: Ensure this value is greater than or equal to 0.",
		fe.Error())

	var err error = fe
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCategoryRequireKind(t *testing.T) {
	rooms := &Category{ID: 1, Name: "Cabins", Kind: CategoryKindRooms}
	experiences := &Category{ID: 5, Name: "Food tours", Kind: CategoryKindExperiences}

	assert.NoError(t, rooms.RequireKind(CategoryKindRooms))

	err := experiences.RequireKind(CategoryKindRooms)
	assert.True(t, errors.Is(err, ErrCategoryKindMismatch))

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "The category's kind should be 'rooms'.", ve.Message)
}

func TestUserHelpers(t *testing.T) {
	u := &User{ID: 7, Username: "alice", Name: "Alice", HashedPassword: "$2a$10$abc"}
	assert.True(t, u.HasUsablePassword())

	u.HashedPassword = UnusablePasswordPrefix + "random"
	assert.False(t, u.HasUsablePassword())

	assert.Equal(t, UserSummary{ID: 7, Username: "alice", Name: "Alice"}, u.Summary())
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))

	room := &Room{OwnerID: 7}
	assert.True(t, room.IsOwnedBy(u))
	assert.False(t, room.IsOwnedBy(&User{ID: 8}))
	assert.False(t, room.IsOwnedBy(nil))
}
