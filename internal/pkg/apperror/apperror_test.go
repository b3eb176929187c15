package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New(http.StatusConflict, "slot already booked")
	err := Wrapf(sentinel, http.StatusConflict, "slot %s is already booked", "A1")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "slot A1 is already booked", err.Error())

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
}
