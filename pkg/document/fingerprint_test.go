package document

import (
	"testing"

	"Taxflow-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFingerprintStableAndContentSensitive(t *testing.T) {
	a := Fingerprint([]byte("invoice body"))
	b := Fingerprint([]byte("invoice body"))
	c := Fingerprint([]byte("invoice body "))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestSweepStaleDuplicateRefsClearsDanglingReference(t *testing.T) {
	missingID := uuid.New().String()
	stale := &entities.Document{
		ID:            uuid.New(),
		Status:        entities.DocumentStatusPotentialDuplicate,
		DuplicateOfID: &missingID,
	}
	clean := &entities.Document{ID: uuid.New(), Status: entities.DocumentStatusOK}

	next, changed := SweepStaleDuplicateRefs([]*entities.Document{stale, clean})

	assert.True(t, changed)
	assert.Nil(t, next[0].DuplicateOfID)
	assert.Equal(t, entities.DocumentStatusOK, next[0].Status)
	// the input document must not be mutated
	assert.NotNil(t, stale.DuplicateOfID)
	// untouched documents come back pointer-identical
	assert.Same(t, clean, next[1])
}

func TestSweepStaleDuplicateRefsKeepsValidReference(t *testing.T) {
	original := &entities.Document{ID: uuid.New(), Status: entities.DocumentStatusOK}
	originalID := original.ID.String()
	dup := &entities.Document{
		ID:            uuid.New(),
		Status:        entities.DocumentStatusPotentialDuplicate,
		DuplicateOfID: &originalID,
	}

	next, changed := SweepStaleDuplicateRefs([]*entities.Document{original, dup})

	assert.False(t, changed)
	assert.Same(t, dup, next[1])
}

func TestSweepStaleDuplicateRefsRespectsManualResolution(t *testing.T) {
	missingID := uuid.New().String()
	resolved := &entities.Document{
		ID:               uuid.New(),
		Status:           entities.DocumentStatusPotentialDuplicate,
		DuplicateOfID:    &missingID,
		DuplicateIgnored: true,
	}

	next, changed := SweepStaleDuplicateRefs([]*entities.Document{resolved})

	assert.True(t, changed)
	assert.Nil(t, next[0].DuplicateOfID)
	// the user already took a decision, the sweep must not override it
	assert.Equal(t, entities.DocumentStatusPotentialDuplicate, next[0].Status)
}
