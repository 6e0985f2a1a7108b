package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("классифицированные ошибки", func(t *testing.T) {
		require.Equal(t, KindValidation, KindOf(Validation("bad input")))
		require.Equal(t, KindForbidden, KindOf(Forbidden("no access")))
		require.Equal(t, KindNotFound, KindOf(NotFound("missing")))
		require.Equal(t, KindConflict, KindOf(Conflict("busy")))
	})

	t.Run("обёрнутая ошибка сохраняет класс", func(t *testing.T) {
		err := errors.Wrap(NotFound("missing"), "context")
		require.Equal(t, KindNotFound, KindOf(err))
		require.True(t, IsNotFound(err))
	})

	t.Run("неклассифицированная ошибка считается Dependency", func(t *testing.T) {
		require.Equal(t, KindDependency, KindOf(errors.New("boom")))
	})
}

func TestDependencyKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependency(cause, "failed to save")
	require.Equal(t, "failed to save", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad")))
	require.Equal(t, http.StatusUnauthorized, HTTPStatus(Auth("no token")))
	require.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("no access")))
	require.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	require.Equal(t, http.StatusConflict, HTTPStatus(Conflict("busy")))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
