package generator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/result"
)

func TestGuardRecoversPanics(t *testing.T) {
	r := Guard("test", func() result.Of[string] {
		panic("kaboom")
	})
	require.True(t, r.IsFailure())
	assert.Contains(t, r.Message(), "kaboom")
	assert.Contains(t, r.Message(), "test generator")

	sentinel := errors.New("bad type")
	r = Guard("test", func() result.Of[string] {
		panic(sentinel)
	})
	require.True(t, r.IsFailure())
	assert.True(t, errors.Is(r.Err(), sentinel))

	ok := Guard("test", func() result.Of[string] { return result.Ok("fine") })
	require.True(t, ok.IsSucceed())
	assert.Equal(t, "fine", ok.Value())
}

func TestValidateDto(t *testing.T) {
	r := ValidateDto(nil)
	require.True(t, r.IsFailure())
	assert.Equal(t, MsgNilDto, r.Message())

	r = ValidateDto(&dto.Definition{})
	require.True(t, r.IsFailure())
	assert.ErrorIs(t, r.Err(), dto.ErrInvalidDefinition)

	require.True(t, ValidateDto(&dto.Definition{Name: "User"}).IsSucceed())
}
