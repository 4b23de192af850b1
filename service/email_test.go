package service

import (
	"strings"
	"testing"

	"expensetracker/config"

	"github.com/stretchr/testify/assert"
)

func TestSendWelcomeEmailDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})

	err := svc.SendWelcomeEmail("user@example.com", "user")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestWelcomeBodyContainsUsername(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})

	body := svc.welcomeBody("alice")
	assert.Contains(t, body, "alice")
	assert.True(t, strings.Contains(body, "<html>"))
}
