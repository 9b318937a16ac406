package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/services"
)

func TestGetBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookGetter(ctrl)

	bookID := uuid.New()
	authorName := "Alan Donovan"
	categoryName := "programming"
	ownerName := "admin"

	r := chi.NewRouter()
	r.Get("/books/{id}", NewGetBookHandler(mockSvc))

	t.Run("joined references are nested in the payload", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), bookID).
			Return(&models.BookDetail{
				BookDB: models.BookDB{
					BookID: bookID, Title: "The Go Programming Language", ISBN: "9780134190440",
					AuthorID: uuid.New(), CategoryID: uuid.New(), UserID: uuid.New(),
				},
				AuthorName:    &authorName,
				CategoryName:  &categoryName,
				OwnerUsername: &ownerName,
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var env response.Envelope
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		data, _ := env.Data.(map[string]interface{})
		author, _ := data["author"].(map[string]interface{})
		assert.Equal(t, "Alan Donovan", author["name"])
		category, _ := data["category"].(map[string]interface{})
		assert.Equal(t, "programming", category["name"])
	})

	t.Run("orphaned references come back null", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), bookID).
			Return(&models.BookDetail{
				BookDB: models.BookDB{BookID: bookID, Title: "Orphaned", ISBN: "9780134190440"},
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		var env response.Envelope
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		data, _ := env.Data.(map[string]interface{})
		assert.Nil(t, data["author"])
		assert.Nil(t, data["category"])
		assert.Nil(t, data["user"])
	})

	t.Run("missing book is 404", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), bookID).
			Return(nil, services.ErrBookNotFound)

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is rejected without a service call", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/books/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBooksHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookGetter(ctrl)

	mockSvc.EXPECT().
		List(gomock.Any(), "go").
		Return([]models.BookDetail{
			{BookDB: models.BookDB{BookID: uuid.New(), Title: "The Go Programming Language"}},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/books?search=go", nil)
	rec := httptest.NewRecorder()

	NewListBooksHandler(mockSvc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	data, _ := env.Data.([]interface{})
	assert.Len(t, data, 1)
}

func TestDownloadBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockBookDownloader(ctrl)

	bookID := uuid.New()
	signedURL := "https://storage.example.com/books/" + bookID.String() + "?X-Amz-Signature=abc"

	r := chi.NewRouter()
	r.Get("/books/{id}/download", NewDownloadBookHandler(mockSvc))

	t.Run("redirects to the presigned URL", func(t *testing.T) {
		mockSvc.EXPECT().
			DownloadURL(gomock.Any(), bookID).
			Return(signedURL, nil)

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String()+"/download", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, signedURL, rec.Header().Get("Location"))
	})

	t.Run("missing book is 404", func(t *testing.T) {
		mockSvc.EXPECT().
			DownloadURL(gomock.Any(), bookID).
			Return("", services.ErrBookNotFound)

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String()+"/download", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
	})
}
