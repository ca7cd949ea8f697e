package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/scorepad/model"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("composition not found")
	ErrInvalid  = errors.New("title and notation are required")
)

// Store persists compositions keyed by a generated id.
type Store interface {
	Create(c model.Composition) (model.Composition, error)
	Get(id string) (model.Composition, error)
	Update(c model.Composition) (model.Composition, error)
	Delete(id string) error
	// List returns the user's compositions plus every public one. With an
	// empty userID only public compositions are listed.
	List(userID string) ([]model.Composition, error)
}

func NewID() string {
	return uuid.New().String()
}

func validate(c model.Composition) error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Notation) == "" {
		return ErrInvalid
	}
	return nil
}

func visibleTo(c model.Composition, userID string) bool {
	return c.IsPublic || (userID != "" && c.UserID == userID)
}

func sortByCreation(cs []model.Composition) {
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.Before(cs[j].CreatedAt)
		}
		return cs[i].ID < cs[j].ID
	})
}
