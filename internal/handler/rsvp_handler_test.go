package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/wedding-trivia/internal/domain/entity"
	apperrors "github.com/yourusername/wedding-trivia/internal/pkg/errors"
	"github.com/yourusername/wedding-trivia/internal/service"
)

// fakeGuestRepo — in-memory репозиторий гостей для тестов обработчика
type fakeGuestRepo struct {
	guests map[string]*entity.Guest
}

func newFakeGuestRepo(guests ...*entity.Guest) *fakeGuestRepo {
	repo := &fakeGuestRepo{guests: make(map[string]*entity.Guest)}
	for _, g := range guests {
		copied := *g
		repo.guests[g.AccessCode] = &copied
	}
	return repo
}

func (r *fakeGuestRepo) GetByAccessCode(accessCode string) (*entity.Guest, error) {
	guest, ok := r.guests[accessCode]
	if !ok {
		return nil, fmt.Errorf("%w: guest with access code %s", apperrors.ErrNotFound, accessCode)
	}
	copied := *guest
	return &copied, nil
}

func (r *fakeGuestRepo) Update(guest *entity.Guest) error {
	if _, ok := r.guests[guest.AccessCode]; !ok {
		return fmt.Errorf("%w: guest with access code %s", apperrors.ErrNotFound, guest.AccessCode)
	}
	copied := *guest
	r.guests[guest.AccessCode] = &copied
	return nil
}

func newTestRSVPHandler(guests ...*entity.Guest) *RSVPHandler {
	return NewRSVPHandler(service.NewGuestService(newFakeGuestRepo(guests...)))
}

func testGuest() *entity.Guest {
	return &entity.Guest{
		AccessCode:          "SMITH42",
		MaxGuests:           "2",
		PartyName:           "The Smith Family",
		DietaryRestrictions: "vegetarian",
		HotelAccommodations: "yes",
		RawNames:            "John Smith, Jane Smith",
	}
}

func TestGetGuestHandler_Success(t *testing.T) {
	handler := newTestRSVPHandler(testGuest())

	c, w := newTestGinContext("GET", "/api/rsvp/SMITH42", nil)
	c.Params = []gin.Param{{Key: "accessCode", Value: "SMITH42"}}
	handler.GetGuest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "SMITH42", resp["accessCode"])
	assert.Equal(t, "The Smith Family", resp["partyName"])
}

func TestGetGuestHandler_NotFound(t *testing.T) {
	handler := newTestRSVPHandler(testGuest())

	c, w := newTestGinContext("GET", "/api/rsvp/NOBODY", nil)
	c.Params = []gin.Param{{Key: "accessCode", Value: "NOBODY"}}
	handler.GetGuest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGuestHandler_EmptyAccessCode(t *testing.T) {
	handler := newTestRSVPHandler(testGuest())

	c, w := newTestGinContext("GET", "/api/rsvp/%20", nil)
	c.Params = []gin.Param{{Key: "accessCode", Value: "  "}}
	handler.GetGuest(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateGuestHandler_Success(t *testing.T) {
	repo := newFakeGuestRepo(testGuest())
	handler := NewRSVPHandler(service.NewGuestService(repo))

	c, w := newTestGinContext("PUT", "/api/rsvp/SMITH42", map[string]interface{}{
		"data": map[string]string{"dietaryRestrictions": "vegan", "questions": "Is there parking?"},
	})
	c.Params = []gin.Param{{Key: "accessCode", Value: "SMITH42"}}
	handler.UpdateGuest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	guest, ok := resp["guest"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "vegan", guest["dietaryRestrictions"])
	assert.Equal(t, "Is there parking?", guest["questions"])

	stored, err := repo.GetByAccessCode("SMITH42")
	require.NoError(t, err)
	assert.Equal(t, "vegan", stored.DietaryRestrictions)
}

// Код доступа не должен меняться через обновление
func TestUpdateGuestHandler_AccessCodeImmutable(t *testing.T) {
	repo := newFakeGuestRepo(testGuest())
	handler := NewRSVPHandler(service.NewGuestService(repo))

	c, w := newTestGinContext("PUT", "/api/rsvp/SMITH42", map[string]interface{}{
		"data": map[string]string{"accessCode": "HACKED", "partyName": "New Name"},
	})
	c.Params = []gin.Param{{Key: "accessCode", Value: "SMITH42"}}
	handler.UpdateGuest(c)

	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetByAccessCode("SMITH42")
	require.NoError(t, err)
	assert.Equal(t, "SMITH42", stored.AccessCode)
	assert.Equal(t, "New Name", stored.PartyName)
}

func TestUpdateGuestHandler_BadBody(t *testing.T) {
	handler := newTestRSVPHandler(testGuest())

	c, w := newTestGinContext("PUT", "/api/rsvp/SMITH42", map[string]string{"dietaryRestrictions": "vegan"})
	c.Params = []gin.Param{{Key: "accessCode", Value: "SMITH42"}}
	handler.UpdateGuest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateGuestHandler_NotFound(t *testing.T) {
	handler := newTestRSVPHandler(testGuest())

	c, w := newTestGinContext("PUT", "/api/rsvp/NOBODY", map[string]interface{}{
		"data": map[string]string{"questions": "hi"},
	})
	c.Params = []gin.Param{{Key: "accessCode", Value: "NOBODY"}}
	handler.UpdateGuest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
