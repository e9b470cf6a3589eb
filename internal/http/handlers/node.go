package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/http/response"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/services"
)

type NodeHandler struct {
	log         *logger.Logger
	nodeService services.NodeService
}

func NewNodeHandler(log *logger.Logger, nodeService services.NodeService) *NodeHandler {
	return &NodeHandler{
		log:         log.With("handler", "NodeHandler"),
		nodeService: nodeService,
	}
}

type createNodeRequest struct {
	CourseID    string `json:"courseId" binding:"required,uuid"`
	Type        string `json:"type" binding:"omitempty,oneof=TEXT IMAGE VIDEO AUDIO"`
	Content     string `json:"content" binding:"required"`
	IsFlashcard bool   `json:"isFlashcard"`
	IsQuizItem  bool   `json:"isQuizItem"`
}

type updateNodeRequest struct {
	Type        *string `json:"type" binding:"omitempty,oneof=TEXT IMAGE VIDEO AUDIO"`
	Content     *string `json:"content"`
	IsFlashcard *bool   `json:"isFlashcard"`
	IsQuizItem  *bool   `json:"isQuizItem"`
}

// POST /nodes
func (h *NodeHandler) Create(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	var req createNodeRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.RespondAPIError(c, h.log, apierr.Validation("validation failed", map[string]string{
			"courseId": "must be a valid UUID",
		}))
		return
	}
	node, err := h.nodeService.Create(c.Request.Context(), ownerID, services.CreateNodeInput{
		CourseID:    courseID,
		Type:        types.NodeType(req.Type),
		Content:     req.Content,
		IsFlashcard: req.IsFlashcard,
		IsQuizItem:  req.IsQuizItem,
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, node)
}

// GET /nodes/course/:courseId
func (h *NodeHandler) ListForCourse(c *gin.Context) {
	courseID, err := parseIDParam(c, "courseId")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	nodes, err := h.nodeService.ListForCourse(c.Request.Context(), courseID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, nodes)
}

// GET /nodes/:id
func (h *NodeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	node, err := h.nodeService.GetOne(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, node)
}

// PUT /nodes/:id
func (h *NodeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	var req updateNodeRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	patch := services.UpdateNodeInput{
		Content:     req.Content,
		IsFlashcard: req.IsFlashcard,
		IsQuizItem:  req.IsQuizItem,
	}
	if req.Type != nil {
		t := types.NodeType(*req.Type)
		patch.Type = &t
	}
	node, err := h.nodeService.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, node)
}

// DELETE /nodes/:id
func (h *NodeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	if err := h.nodeService.Remove(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondNoContent(c)
}
