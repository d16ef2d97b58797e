package v1

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"call-center-server/internal/interfaces/httpserver/handlers"
	callreq "call-center-server/internal/interfaces/httpserver/requests/call"
	"call-center-server/internal/interfaces/httpserver/responses"
	callres "call-center-server/internal/interfaces/httpserver/responses/call"
	"call-center-server/internal/utils/platformerrors"
)

// RegisterCallRoutes registers the call session routes.
func RegisterCallRoutes(router gin.IRoutes, handler *handlers.CallHandler) {
	router.POST("/calls/inbound", inboundCall(handler))
	router.POST("/calls/outbound", outboundCall(handler))
	router.POST("/calls/:id/speech", processSpeech(handler))
	router.POST("/calls/:id/dtmf", processDTMF(handler))
	router.GET("/calls", listCalls(handler))
	router.GET("/calls/:id", getCall(handler))
	router.DELETE("/calls/:id", endCall(handler))
}

// inboundCall godoc
// @Summary      Handle an incoming call
// @Description  Registers a carrier-originated call, answers it, and speaks the greeting.
// @Tags         Calls
// @Accept       json
// @Produce      json
// @Param        request body callreq.InboundCallRequest true "Incoming call details"
// @Success      201 {object} callres.CallResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      429 {object} responses.ErrorResponse
// @Router       /calls/inbound [post]
func inboundCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.InboundCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid inbound call request: "+err.Error())
			return
		}

		sess, err := handler.HandleIncoming(c.Request.Context(), req.CallID, req.From, req.To, req.FlowID)
		if err != nil {
			responses.HandleError(c, err, "failed to handle incoming call")
			return
		}

		c.JSON(http.StatusCreated, callres.NewCallResponse(sess))
	}
}

// outboundCall godoc
// @Summary      Place an outbound call
// @Description  Dials a number and starts the conversation once the call connects.
// @Tags         Calls
// @Accept       json
// @Produce      json
// @Param        request body callreq.OutboundCallRequest true "Outbound call details"
// @Success      201 {object} callres.CallResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      429 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /calls/outbound [post]
func outboundCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.OutboundCallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid outbound call request: "+err.Error())
			return
		}

		sess, err := handler.MakeOutbound(c.Request.Context(), req.To, req.FlowID, req.Context)
		if err != nil {
			responses.HandleError(c, err, "failed to place outbound call")
			return
		}

		c.JSON(http.StatusCreated, callres.NewCallResponse(sess))
	}
}

// processSpeech godoc
// @Summary      Process caller speech
// @Description  Transcribes an audio chunk and advances the conversation one turn.
// @Tags         Calls
// @Accept       json
// @Produce      json
// @Param        id path string true "Call ID"
// @Param        request body callreq.SpeechRequest true "Base64-encoded audio"
// @Success      200 {object} callres.TurnResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /calls/{id}/speech [post]
func processSpeech(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.SpeechRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid speech request: "+err.Error())
			return
		}

		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			platformerrors.WriteValidationError(c, "audio must be base64 encoded")
			return
		}
		if len(audio) == 0 {
			platformerrors.WriteValidationError(c, "audio payload is empty")
			return
		}

		result, err := handler.ProcessSpeech(c.Request.Context(), c.Param("id"), audio, req.Language)
		if err != nil {
			responses.HandleError(c, err, "failed to process speech")
			return
		}

		c.JSON(http.StatusOK, callres.NewTurnResponse(result))
	}
}

// processDTMF godoc
// @Summary      Process a keypad entry
// @Description  Runs a DTMF digit sequence through the same conversation pipeline as speech.
// @Tags         Calls
// @Accept       json
// @Produce      json
// @Param        id path string true "Call ID"
// @Param        request body callreq.DTMFRequest true "DTMF digits"
// @Success      200 {object} callres.TurnResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /calls/{id}/dtmf [post]
func processDTMF(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.DTMFRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid dtmf request: "+err.Error())
			return
		}
		if !validDigits(req.Digits) {
			platformerrors.WriteValidationError(c, "digits may only contain 0-9, * and #")
			return
		}

		result, err := handler.ProcessDTMF(c.Request.Context(), c.Param("id"), req.Digits)
		if err != nil {
			responses.HandleError(c, err, "failed to process dtmf")
			return
		}

		c.JSON(http.StatusOK, callres.NewTurnResponse(result))
	}
}

// listCalls godoc
// @Summary      List active calls
// @Description  Lists all call sessions that have not reached a terminal status.
// @Tags         Calls
// @Produce      json
// @Success      200 {object} callres.ListCallsResponse
// @Router       /calls [get]
func listCalls(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := handler.ListActive(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list calls")
			return
		}

		c.JSON(http.StatusOK, callres.NewListCallsResponse(sessions))
	}
}

// getCall godoc
// @Summary      Get a call session
// @Description  Retrieves a call session by ID, terminal sessions included.
// @Tags         Calls
// @Produce      json
// @Param        id path string true "Call ID"
// @Success      200 {object} callres.CallResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /calls/{id} [get]
func getCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := handler.GetSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get call")
			return
		}

		c.JSON(http.StatusOK, callres.NewCallResponse(sess))
	}
}

// endCall godoc
// @Summary      End a call
// @Description  Hangs up a call and finalizes its transcript and summary.
// @Tags         Calls
// @Produce      json
// @Param        id path string true "Call ID"
// @Success      200 {object} callres.CallResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /calls/{id} [delete]
func endCall(handler *handlers.CallHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callreq.EndCallRequest
		// The body is optional on DELETE; a missing body means no reason.
		_ = c.ShouldBindJSON(&req)

		sess, err := handler.EndCall(c.Request.Context(), c.Param("id"), req.Reason)
		if err != nil {
			responses.HandleError(c, err, "failed to end call")
			return
		}

		c.JSON(http.StatusOK, callres.NewCallResponse(sess))
	}
}

func validDigits(digits string) bool {
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if (r < '0' || r > '9') && r != '*' && r != '#' {
			return false
		}
	}
	return true
}
