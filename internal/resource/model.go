package resource

import (
	"errors"
	"net/http"
	"time"

	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "resource not found")
	ErrInvalidPage     = apperror.New(http.StatusBadRequest, "page out of range")
	ErrUnauthenticated = apperror.New(http.StatusUnauthorized, "authentication required")
	ErrSessionNotFound = apperror.New(http.StatusNotFound, "browse session not found")
	ErrDuplicateID     = errors.New("duplicate resource id")
)

// Type is the kind of learning material.
type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
	TypeTool    Type = "tool"
	TypeCourse  Type = "course"
)

// ValidTypes lists every accepted Type in display order.
var ValidTypes = []Type{TypeArticle, TypeVideo, TypeTool, TypeCourse}

// Valid reports whether t is one of ValidTypes.
func (t Type) Valid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Category is the top-level area a resource belongs to.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDevOps   Category = "devops"
	CategoryMobile   Category = "mobile"
	CategoryDesign   Category = "design"
	CategoryTools    Category = "tools"
)

// ValidCategories lists every accepted Category in display order.
var ValidCategories = []Category{
	CategoryFrontend, CategoryBackend, CategoryDevOps,
	CategoryMobile, CategoryDesign, CategoryTools,
}

// Valid reports whether c is one of ValidCategories.
func (c Category) Valid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Resource is a catalog entry. The JSON shape is the persisted form used by
// the key-value store and the seed dataset.
type Resource struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	URL           string    `json:"url"`
	Type          Type      `json:"type"`
	Category      Category  `json:"category"`
	Technologies  []string  `json:"technologies"`
	Languages     []string  `json:"languages"`
	UsefulCount   int       `json:"usefulCount"`
	FavoriteCount int       `json:"favoriteCount"`
	DateAdded     time.Time `json:"dateAdded"`
	Author        string    `json:"author,omitempty"`
}

// Identity is the authentication fact handed to operations on owned data.
type Identity struct {
	Authenticated bool
	UserID        string
}
