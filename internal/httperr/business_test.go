package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessMatchesCode(t *testing.T) {
	err := ErrBusiness(CodeBreedHasAnimals)

	assert.True(t, IsBusiness(err, CodeBreedHasAnimals))
	assert.False(t, IsBusiness(err, CodeAnimalNotFound))
}

func TestIsBusinessUnwrapsChains(t *testing.T) {
	err := fmt.Errorf("delete breed: %w", ErrBusiness(CodeBreedHasAnimals))

	assert.True(t, IsBusiness(err, CodeBreedHasAnimals))
}

func TestIsBusinessIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsBusiness(errors.New("boom"), CodeAnimalNotFound))
	assert.False(t, IsBusiness(nil, CodeAnimalNotFound))
}
