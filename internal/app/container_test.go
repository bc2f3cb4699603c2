package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
)

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(Config{
		Store:      kvstore.NewMemoryStore(),
		JWTSecret:  "secret",
		JWTTTL:     time.Hour,
		BcryptCost: 4,
		PageSize:   12,
		SessionTTL: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, c.Catalog.Len())

	w := httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/resources", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewContainerBadCatalog(t *testing.T) {
	_, err := NewContainer(Config{
		Store:       kvstore.NewMemoryStore(),
		JWTSecret:   "secret",
		CatalogPath: "/does/not/exist.json",
	})
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	store, err := OpenStore(t.Context(), kvstore.Options{Backend: kvstore.BackendLocal, Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	_, err = OpenStore(t.Context(), kvstore.Options{Backend: "nope"})
	assert.Error(t, err)
}
