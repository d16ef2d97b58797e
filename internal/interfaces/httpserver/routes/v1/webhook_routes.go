package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"call-center-server/internal/domain/webhook"
	"call-center-server/internal/interfaces/httpserver/handlers"
	"call-center-server/internal/interfaces/httpserver/requests"
	"call-center-server/internal/interfaces/httpserver/responses"
	"call-center-server/internal/utils/platformerrors"
)

// RegisterWebhookRoutes registers the webhook subscription routes.
func RegisterWebhookRoutes(router gin.IRoutes, handler *handlers.WebhookHandler) {
	router.POST("/webhooks", registerWebhook(handler))
	router.GET("/webhooks", listWebhooks(handler))
	router.GET("/webhooks/:id", getWebhook(handler))
	router.DELETE("/webhooks/:id", deleteWebhook(handler))
}

// registerWebhook godoc
// @Summary      Register a webhook
// @Description  Subscribes a URL to call lifecycle events.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        request body requests.RegisterWebhookRequest true "Webhook subscription"
// @Success      201 {object} responses.WebhookResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /webhooks [post]
func registerWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.RegisterWebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid webhook request: "+err.Error())
			return
		}

		sub, err := handler.Register(c.Request.Context(), req.URL, req.Events, req.Secret)
		if err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}

		c.JSON(http.StatusCreated, newWebhookResponse(sub))
	}
}

// listWebhooks godoc
// @Summary      List webhooks
// @Tags         Webhooks
// @Produce      json
// @Success      200 {object} responses.ListWebhooksResponse
// @Router       /webhooks [get]
func listWebhooks(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs := handler.List(c.Request.Context())
		data := make([]*responses.WebhookResponse, len(subs))
		for i, sub := range subs {
			data[i] = newWebhookResponse(sub)
		}

		c.JSON(http.StatusOK, &responses.ListWebhooksResponse{
			Object: "list",
			Data:   data,
		})
	}
}

// getWebhook godoc
// @Summary      Get a webhook
// @Tags         Webhooks
// @Produce      json
// @Param        id path string true "Webhook ID"
// @Success      200 {object} responses.WebhookResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /webhooks/{id} [get]
func getWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := handler.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get webhook")
			return
		}

		c.JSON(http.StatusOK, newWebhookResponse(sub))
	}
}

// deleteWebhook godoc
// @Summary      Delete a webhook
// @Tags         Webhooks
// @Produce      json
// @Param        id path string true "Webhook ID"
// @Success      200 {object} responses.DeleteWebhookResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /webhooks/{id} [delete]
func deleteWebhook(handler *handlers.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := handler.Unregister(c.Request.Context(), id); err != nil {
			responses.HandleError(c, err, "failed to delete webhook")
			return
		}

		c.JSON(http.StatusOK, &responses.DeleteWebhookResponse{
			ID:      id,
			Object:  "webhook.deleted",
			Deleted: true,
		})
	}
}

func newWebhookResponse(sub *webhook.Subscription) *responses.WebhookResponse {
	return &responses.WebhookResponse{
		ID:        sub.ID,
		Object:    "webhook",
		URL:       sub.URL,
		Events:    sub.Events,
		CreatedAt: sub.CreatedAt,
	}
}
