package dataset

import (
	"errors"
	"net/http"
	"testing"

	"geolocations/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestNewMinIOSource_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{"missing endpoint", config.MinIOConfig{}, "minio endpoint is required"},
		{"missing credentials", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k"}, "minio credentials are required"},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"}, "minio bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMinIOSource(tt.cfg)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestTranslateMinIOError(t *testing.T) {
	assert.ErrorIs(t, translateMinIOError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrObjectNotFound)
	assert.ErrorIs(t, translateMinIOError(minio.ErrorResponse{StatusCode: http.StatusNotFound}), ErrObjectNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	err := translateMinIOError(denied)
	assert.NotErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, denied, err)

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateMinIOError(plain))
}
