package jlserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI() API {
	return API{Secret: []byte("test-secret"), UnauthDelay: time.Millisecond}
}

func Test_Info_isUnauthenticated(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	var body infoModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(body.Version)
}

func Test_CreateToken_wrongSecretIsUnauthorized(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader("not-the-secret"))
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_CreateToken_correctSecretIssuesToken(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader("test-secret"))
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	var body tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(body.Token)
}

func Test_Extract_requiresBearerToken(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract?pattern=[*]", strings.NewReader("[1,2]"))
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_Extract_withValidTokenStreamsRows(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	tok, err := generateToken(api.Secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract?pattern=[*]", strings.NewReader("[1,2,3]"))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("1\n2\n3\n", rec.Body.String())
}

func Test_Extract_badPatternIsBadRequest(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	tok, err := generateToken(api.Secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract?pattern=not-a-pattern", strings.NewReader("[]"))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusBadRequest, rec.Code)
}

func Test_Extract_missingPatternIsBadRequest(t *testing.T) {
	assert := assert.New(t)

	api := testAPI()
	tok, err := generateToken(api.Secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader("[]"))
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusBadRequest, rec.Code)
}
