package grocer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errorCode":0,"errorMessage":"","data":{"token":"tok-123","userId":42,"email":"admin@example.com"}}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	result, err := client.Login(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, ID("42"), result.UserID)

	assert.Equal(t, "/auth/login", req.URL.Path)
	assert.Equal(t, http.MethodPost, req.Method)
	// No token yet, no Authorization header
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestGetAllCategoriesSendsBearerToken(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","data":[{"id":1,"categoryName":"Produce","shortDescription":"Fruit and veg","isSubCategory":false}]}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok-123"})
	categories, err := client.GetAllCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/category/getAll", req.URL.Path)
	assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	require.Len(t, categories, 1)
	assert.Equal(t, ID("1"), categories[0].ID)
	assert.Equal(t, "Produce", categories[0].Name)
}

// The category endpoints use the {success,message,data} envelope, the auth
// ones {errorCode,errorMessage,data}. Both shapes must normalize identically.
func TestEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr string
	}{
		{
			name:    "errorCode failure",
			body:    `{"errorCode":104,"errorMessage":"invalid credentials"}`,
			status:  http.StatusOK,
			wantErr: "invalid credentials",
		},
		{
			name:    "success false failure",
			body:    `{"success":false,"message":"category name already exists"}`,
			status:  http.StatusOK,
			wantErr: "category name already exists",
		},
		{
			name:    "non-2xx with message",
			body:    `{"success":false,"message":"category not found"}`,
			status:  http.StatusNotFound,
			wantErr: "category not found",
		},
		{
			name:    "non-2xx without message",
			body:    `{}`,
			status:  http.StatusInternalServerError,
			wantErr: "request failed (status 500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client := NewClient(ClientOpts{BaseURL: ts.URL})
			_, err := client.GetAllCategories(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, ErrKindServer, apiErr.Kind)
			assert.Equal(t, tt.wantErr, apiErr.Message)
		})
	}
}

func TestNonJSONErrorBodyKeptAsPlainText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	_, err := client.GetAllCategories(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrKindServer, apiErr.Kind)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Raw)
}

func TestNonJSONSuccessBodyIsDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	_, err := client.GetAllCategories(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrKindDecode, apiErr.Kind)
	assert.Equal(t, "OK", apiErr.Raw)
}

func TestNetworkErrorClassification(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close() // nothing is listening anymore

	client := NewClient(ClientOpts{BaseURL: url})
	_, err := client.GetAllCategories(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestGetSubCategoriesPath(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	_, err := client.GetSubCategories(context.Background(), ID("7"))
	require.NoError(t, err)
	assert.Equal(t, "/category/getSubCategories/7", req.URL.Path)
}

func TestDeleteCategoryQueryParams(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"deleted"}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL, Token: "tok"})
	err := client.DeleteCategory(context.Background(), ID("12"), ID("3"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/category/softDeleteOrDetach", req.URL.Path)
	assert.Equal(t, "12", req.URL.Query().Get("categoryId"))
	assert.Equal(t, "3", req.URL.Query().Get("parentId"))
}

func TestDeleteCategoryOmitsEmptyParent(t *testing.T) {
	var req *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req = r
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	err := client.DeleteCategory(context.Background(), ID("12"), ID(""))
	require.NoError(t, err)
	assert.False(t, req.URL.Query().Has("parentId"))
}

func TestCreateUpdateCategoryRejectsInvalidPayloadWithoutRequest(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	client := NewClient(ClientOpts{BaseURL: ts.URL})
	_, err := client.CreateUpdateCategory(context.Background(), CategoryPayload{
		Name: "Snacks", // missing short description
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, requests)
}
