package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"internhub/internal/app/models/dto"
	"internhub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondWith(t *testing.T, err error) (int, *dto.ErrorDetail) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, err)

	var body struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return recorder.Code, body.Error
}

func TestHandleAPIErrorSentinelMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"resource not found", apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid file type", apperrors.ErrInvalidFileType, http.StatusBadRequest, dto.ErrorCodeInvalidFileType},
		{"duplicate application", apperrors.ErrDuplicateApplication, http.StatusConflict, dto.ErrorCodeDuplicateApplication},
		{"already placed", apperrors.ErrAlreadyPlaced, http.StatusConflict, dto.ErrorCodeAlreadyPlaced},
		{"already handled", apperrors.ErrAlreadyHandled, http.StatusConflict, dto.ErrorCodeAlreadyHandled},
		{"attendance locked", apperrors.ErrAttendanceLocked, http.StatusConflict, dto.ErrorCodeAttendanceLocked},
		{"duplicate week", apperrors.ErrDuplicateWeek, http.StatusConflict, dto.ErrorCodeDuplicateWeek},
		{"deadline passed", apperrors.ErrDeadlinePassed, http.StatusBadRequest, dto.ErrorCodeDeadlinePassed},
		{"immutable record", apperrors.ErrImmutable, http.StatusConflict, dto.ErrorCodeImmutable},
		{"side already submitted", apperrors.ErrAlreadySubmitted, http.StatusConflict, dto.ErrorCodeAlreadySubmitted},
		{"evaluation window shut", apperrors.ErrEvaluationWindowShut, http.StatusBadRequest, dto.ErrorCodeWindowNotOpen},
		{"no academic supervisor", apperrors.ErrNoAcademicSupervisor, http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := respondWith(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, detail.Code)
		})
	}
}

func TestHandleAPIErrorCustomErrorKeepsMessage(t *testing.T) {
	status, detail := respondWith(t, apperrors.NewForbiddenError("application is outside your department"))

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, detail.Code)
	assert.Equal(t, "application is outside your department", detail.Message)
}

func TestHandleAPIErrorCustomErrorDerivesStatusFromSentinel(t *testing.T) {
	status, detail := respondWith(t, apperrors.NewResourceNotFoundError("placement not found"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, detail.Code)
	assert.Equal(t, "placement not found", detail.Message)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("loading placement"), apperrors.ErrResourceNotFound)

	status, detail := respondWith(t, wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, detail.Code)
}
