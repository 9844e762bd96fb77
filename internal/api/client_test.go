package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

func createTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, staticTokens(token), logger.NewTestLogger(t), nil)
	return client, server
}

// ==========================
// Request Shape Tests
// ==========================

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), "tok-123")

	_, err := client.ListBusinessPartners(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"abc"}`))
	}), "")

	_, err := client.Login(context.Background(), "9876543210", 123456)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_JSONWritesSetContentType(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"access_token":"abc"}`))
	}), "")

	_, err := client.Login(context.Background(), "9876543210", 4242)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "9876543210", gotBody["phone"])
	assert.Equal(t, float64(4242), gotBody["otp"], "otp goes over the wire as a number")
}

func TestClient_MultipartWritesCarryBoundary(t *testing.T) {
	var gotContentType string
	var gotPartnerID, gotFile string
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPartnerID = r.FormValue("businessPartnerId")
		if f, header, err := r.FormFile("images"); err == nil {
			gotFile = header.Filename
			f.Close()
		}
		w.Write([]byte(`[{"id":10,"url":"https://cdn/x.jpg"}]`))
	}), "tok")

	stored, err := client.UploadImages(context.Background(), 55, []FilePart{
		{FileName: "front.jpg", Content: strings.NewReader("fake-bytes")},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="),
		"multipart requests must use the writer-generated content type")
	assert.Equal(t, "55", gotPartnerID)
	assert.Equal(t, "front.jpg", gotFile)
	require.Len(t, stored, 1)
	assert.Equal(t, int64(10), stored[0].ID)
}

// ==========================
// Response Handling Tests
// ==========================

func TestClient_SurfacesServerMessage(t *testing.T) {
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"partner has open payments"}`))
	}), "tok")

	err := client.DeleteBusinessPartner(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeAPI, apperrors.CodeOf(err))
	assert.Equal(t, "partner has open payments", apperrors.UserMessage(err))
}

func TestClient_GenericMessageWhenBodyUndecodable(t *testing.T) {
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	}), "tok")

	err := client.DeleteBusinessPartner(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, apperrors.UserMessage(err), "502")
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // dead endpoint

	client := NewClient(server.URL, time.Second, staticTokens("tok"), logger.NewNoOpLogger(), nil)
	_, err := client.ListPayments(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNetwork, apperrors.CodeOf(err))
}

func TestClient_CountNormalization(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "bare number", body: `123`, expected: 123},
		{name: "wrapped", body: `{"count":7}`, expected: 7},
		{name: "garbage", body: `"n/a"`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}), "tok")

			count, err := client.CountUsers(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

// ==========================
// Login Tests
// ==========================

func TestClient_LoginRejectionBecomesAuthError(t *testing.T) {
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid OTP"}`))
	}), "")

	token, err := client.Login(context.Background(), "9876543210", 1)
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, apperrors.ErrCodeAuth, apperrors.CodeOf(err))
	assert.Equal(t, "Invalid OTP", apperrors.UserMessage(err))
}

func TestClient_LoginWithoutTokenFails(t *testing.T) {
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}), "")

	_, err := client.Login(context.Background(), "9876543210", 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTokenMissing, apperrors.CodeOf(err),
		"a 2xx login without a token is its own failure class")
}

func TestClient_FullDocumentUpdate(t *testing.T) {
	var gotMethod, gotPath string
	var gotDoc map[string]interface{}
	client, _ := createTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotDoc)
		w.WriteHeader(http.StatusOK)
	}), "tok")

	partner := testPartner()
	require.NoError(t, client.UpdateBusinessPartner(context.Background(), partner))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/business-partner", gotPath)
	assert.Equal(t, float64(12), gotDoc["id"], "update sends the whole document, id included")
	assert.Equal(t, "Acme Tents", gotDoc["businessName"])
}
