package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-backend/database"
	"food-ordering-backend/helpers"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type stubUserFinder struct {
	users map[string]*models.User
}

func (f *stubUserFinder) FindByAuthID(ctx context.Context, auth0ID string) (*models.User, error) {
	if user, ok := f.users[auth0ID]; ok {
		return user, nil
	}
	return nil, database.ErrNotFound
}

func newAuthRouter(finder UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Authentication(testSecret), ParseUser(finder), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"auth0Id": c.GetString(ContextAuthID),
			"userId":  c.GetString(ContextUserID),
		})
	})
	return router
}

func TestAuthenticationMissingHeader(t *testing.T) {
	router := newAuthRouter(&stubUserFinder{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticationBadToken(t *testing.T) {
	router := newAuthRouter(&stubUserFinder{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestParseUserUnmappedSubjectFailsClosed(t *testing.T) {
	router := newAuthRouter(&stubUserFinder{users: map[string]*models.User{}})

	token, err := helpers.GenerateToken("auth0|stranger", "x@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticatedRequestMapsUser(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Auth0ID: "auth0|abc", Email: "jo@example.com"}
	router := newAuthRouter(&stubUserFinder{users: map[string]*models.User{"auth0|abc": user}})

	token, err := helpers.GenerateToken("auth0|abc", "jo@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), user.ID.Hex())
	assert.Contains(t, recorder.Body.String(), "auth0|abc")
}
