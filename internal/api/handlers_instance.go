// handlers_instance.go - Live loader instance handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
	"github.com/svg-loader/backend/internal/session"
)

// CreateInstanceRequest describes the page to build and the loader to mount on it.
type CreateInstanceRequest struct {
	Containers []string       `json:"containers,omitempty"`
	Preset     string         `json:"preset,omitempty"`
	Options    models.Options `json:"options"`
}

// InstanceHandlerImpl implements the InstanceHandler interface
type InstanceHandlerImpl struct {
	sessions *session.Manager
	resolver optionResolver
}

// NewInstanceHandler creates a new instance handler
func NewInstanceHandler(sessions *session.Manager, presets *preset.Registry, strict bool, maxShapes int) InstanceHandler {
	return &InstanceHandlerImpl{
		sessions: sessions,
		resolver: newOptionResolver(presets, strict, maxShapes),
	}
}

// HandleCreateInstance mounts a new loader. A missing container is reported
// through the state's warning, not as an error.
func (h *InstanceHandlerImpl) HandleCreateInstance(c echo.Context) error {
	var req CreateInstanceRequest
	if err := c.Bind(&req); err != nil {
		return RespondWithError(c, NewBadRequestError("invalid request body", err))
	}

	state, apiErr := createInstance(h.sessions, h.resolver, req)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}
	return c.JSON(http.StatusCreated, state)
}

// HandleListInstances lists all instances
func (h *InstanceHandlerImpl) HandleListInstances(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.List())
}

// HandleGetInstance returns one instance and refreshes its keep-alive
func (h *InstanceHandlerImpl) HandleGetInstance(c echo.Context) error {
	id := c.Param("id")
	h.sessions.Touch(id)
	state, ok := h.sessions.Get(id)
	if !ok {
		return RespondWithError(c, NewNotFoundError("loader instance", id))
	}
	return c.JSON(http.StatusOK, state)
}

// HandleShowInstance shows the instance's loader
func (h *InstanceHandlerImpl) HandleShowInstance(c echo.Context) error {
	return h.lifecycle(c, h.sessions.Show)
}

// HandleHideInstance hides the instance's loader
func (h *InstanceHandlerImpl) HandleHideInstance(c echo.Context) error {
	return h.lifecycle(c, h.sessions.Hide)
}

// HandleToggleInstance toggles the instance's loader
func (h *InstanceHandlerImpl) HandleToggleInstance(c echo.Context) error {
	return h.lifecycle(c, h.sessions.Toggle)
}

// HandleDestroyInstance destroys the instance's loader
func (h *InstanceHandlerImpl) HandleDestroyInstance(c echo.Context) error {
	return h.lifecycle(c, h.sessions.Destroy)
}

// HandleGetDocument returns the markup of the instance's page
func (h *InstanceHandlerImpl) HandleGetDocument(c echo.Context) error {
	id := c.Param("id")
	doc, err := h.sessions.Document(id)
	if err != nil {
		return RespondWithError(c, sessionError(err, id))
	}
	return c.HTMLBlob(http.StatusOK, doc)
}

func (h *InstanceHandlerImpl) lifecycle(c echo.Context, op func(string) (*models.InstanceState, error)) error {
	id := c.Param("id")
	state, err := op(id)
	if err != nil {
		return RespondWithError(c, sessionError(err, id))
	}
	return c.JSON(http.StatusOK, state)
}

func createInstance(sessions *session.Manager, resolver optionResolver, req CreateInstanceRequest) (*models.InstanceState, *APIError) {
	opts, apiErr := resolver.options(RenderRequest{Preset: req.Preset, Options: req.Options})
	if apiErr != nil {
		return nil, apiErr
	}
	if _, apiErr := resolver.resolve(RenderRequest{Options: opts}); apiErr != nil {
		return nil, apiErr
	}

	state, err := sessions.Create(req.Containers, opts)
	if err != nil {
		return nil, NewBadRequestError("failed to create loader instance", err)
	}
	return state, nil
}

// sessionError maps manager errors onto API errors
func sessionError(err error, id string) *APIError {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return NewNotFoundError("loader instance", id)
	case errors.Is(err, session.ErrDestroyed):
		return NewConflictError("loader instance destroyed: " + id)
	default:
		return NewInternalError("loader instance operation failed", err)
	}
}
