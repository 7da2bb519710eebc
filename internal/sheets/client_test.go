package sheets

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestToStringRows(t *testing.T) {
	rows := toStringRows([][]any{
		{"cal-1", "Weekly Sync", 12.5},
		{"cal-2"},
	})

	assert.Equal(t, [][]string{
		{"cal-1", "Weekly Sync", "12.5"},
		{"cal-2"},
	}, rows)
}

func TestToStringRowsEmpty(t *testing.T) {
	assert.Empty(t, toStringRows(nil))
}

func TestToInterfaceRows(t *testing.T) {
	rows := toInterfaceRows([][]any{{"a", 1}, {"b"}})
	assert.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"a", 1}, rows[0])
}

func TestWrapErrRateLimited(t *testing.T) {
	err := wrapErr("read range A1:B2", &googleapi.Error{Code: http.StatusTooManyRequests})
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestWrapErrUnavailable(t *testing.T) {
	err := wrapErr("read range A1:B2", &googleapi.Error{Code: http.StatusBadGateway})
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "A1:B2")
}
