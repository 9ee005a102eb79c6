package controllers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huseynesedov/portfolio-backend/app/controllers"
)

func TestContactSend(t *testing.T) {
	var gotName, gotEmail, gotMessage string
	c := controllers.NewContactControllerWithSender(func(name, email, message string) error {
		gotName, gotEmail, gotMessage = name, email, message
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":" Aysel ","email":"aysel@example.com","message":"Hi!"}`))
	rec := httptest.NewRecorder()
	c.Send(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Aysel", gotName)
	assert.Equal(t, "aysel@example.com", gotEmail)
	assert.Equal(t, "Hi!", gotMessage)
}

func TestContactSendValidation(t *testing.T) {
	called := false
	c := controllers.NewContactControllerWithSender(func(string, string, string) error {
		called = true
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"","email":"a@b.c","message":" "}`))
	rec := httptest.NewRecorder()
	c.Send(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, called, "invalid submissions never reach the mailer")
}

func TestContactSendBadJSON(t *testing.T) {
	c := controllers.NewContactControllerWithSender(func(string, string, string) error { return nil })

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	c.Send(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactSendDeliveryFailure(t *testing.T) {
	c := controllers.NewContactControllerWithSender(func(string, string, string) error {
		return errors.New("smtp unreachable")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"A","email":"a@b.c","message":"hi"}`))
	rec := httptest.NewRecorder()
	c.Send(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
