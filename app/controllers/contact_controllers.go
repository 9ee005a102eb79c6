package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/huseynesedov/portfolio-backend/config"
	"github.com/huseynesedov/portfolio-backend/pkg/apperr"
	"github.com/huseynesedov/portfolio-backend/pkg/logger"
	"github.com/huseynesedov/portfolio-backend/pkg/mail"
	"github.com/huseynesedov/portfolio-backend/pkg/response"
)

// Sender delivers a contact message. Satisfied by the SMTP mailer; tests
// swap in a recorder.
type Sender func(name, email, message string) error

type ContactController struct {
	send Sender
}

func NewContactController() *ContactController {
	return &ContactController{send: smtpSend}
}

func NewContactControllerWithSender(send Sender) *ContactController {
	return &ContactController{send: send}
}

func smtpSend(name, email, message string) error {
	body := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", name, email, message)
	return mail.To(config.MailTo()).
		ReplyTo(email).
		Subject("Portfolio contact from " + name).
		Text(body).
		Send()
}

// Send godoc
//
//	@Summary	Send a contact message to the site owner
//	@Tags		contact
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Failure	400	{object}	map[string]interface{}
//	@Router		/api/contact [post]
func (c *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.AppError(w, apperr.BadRequest("invalid JSON body"))
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.Message = strings.TrimSpace(body.Message)
	if body.Name == "" || body.Email == "" || body.Message == "" {
		response.ValidationError(w, map[string]string{
			"name":    "required",
			"email":   "required",
			"message": "required",
		})
		return
	}

	if err := c.send(body.Name, body.Email, body.Message); err != nil {
		logger.WithCtx(r.Context()).Error("send contact mail", "error", err)
		response.Error(w, http.StatusBadGateway, "could not deliver message")
		return
	}
	response.SuccessMessage(w, "message sent", nil)
}
