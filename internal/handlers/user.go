package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/pkg/dto"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetMe returns the local record for the authenticated caller. The record
// is guaranteed to exist: the lazy-sync middleware created it if this is
// the caller's first contact.
func (h *UserHandler) GetMe(c *drift.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.Unauthorized("not authenticated")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}
