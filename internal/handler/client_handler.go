package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recibo/internal/service"
)

// ClientHandler handles client directory endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create handles POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var input service.CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, client)
}

// Get handles GET /api/v1/clients/:clientId
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clientService.Get(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// List handles GET /api/v1/clients
func (h *ClientHandler) List(c *gin.Context) {
	var input service.ListClientsInput
	if err := c.ShouldBindQuery(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	page, pageSize := parsePageQuery(c)
	RespondPaginated(c, clients, PagMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: service.TotalPages(total, pageSize),
	})
}

// Update handles PUT /api/v1/clients/:clientId
func (h *ClientHandler) Update(c *gin.Context) {
	var input service.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), c.Param("clientId"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, client)
}

// Delete handles DELETE /api/v1/clients/:clientId
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.Delete(c.Request.Context(), c.Param("clientId")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "client deleted"})
}
