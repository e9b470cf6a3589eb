package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/http/response"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/services"
)

// TotalCountHeader carries the unpaginated user count on GET /users.
const TotalCountHeader = "X-Total-Count"

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
	Password  string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"firstName" binding:"omitempty,max=50"`
	LastName  string `json:"lastName" binding:"omitempty,max=50"`
	Password  string `json:"password"`
	Status    string `json:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED"`
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	u, err := h.userService.Create(c.Request.Context(), services.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, u)
}

// GET /users?page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page", services.DefaultPage)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultLimit)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	users, total, err := h.userService.ListPaginated(c.Request.Context(), page, limit)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	response.RespondOK(c, users)
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	u, err := h.userService.FindOne(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, u)
}

// PATCH /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	u, err := h.userService.Update(c.Request.Context(), id, services.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Status:    types.UserStatus(req.Status),
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, u)
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if err := h.userService.Remove(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Validation("invalid query parameter", map[string]string{name: "must be an integer"})
	}
	return n, nil
}
