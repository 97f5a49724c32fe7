package config

import (
	"fmt"
	"strings"
)

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromName    string
	FromAddress string
}

func LoadSMTP() SMTPConfig {
	return SMTPConfig{
		Host:        GetString("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		Port:        GetInt("SMTP_PORT", 2525),
		User:        GetString("SMTP_USER", ""),
		Password:    GetString("SMTP_PASS", ""),
		FromName:    GetString("MAIL_FROM_NAME", "Restaurant System"),
		FromAddress: GetString("MAIL_FROM_ADDRESS", "noreply@restaurant.local"),
	}
}

// Validate rejects a configuration that cannot authenticate against the
// SMTP relay.
func (c SMTPConfig) Validate() error {
	var missing []string
	if c.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.Password == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing smtp settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// StaffEmailVars maps each staff role to the variable holding its address.
var StaffEmailVars = map[string]string{
	"MANAGER":   "MANAGER_EMAIL",
	"WAITER":    "WAITER_EMAIL",
	"BARTENDER": "BARTENDER_EMAIL",
	"KITCHEN":   "KITCHEN_EMAIL",
}

// LoadStaffEmails returns the configured address per role and the variables
// left empty.
func LoadStaffEmails() (map[string]string, []string) {
	emails := make(map[string]string, len(StaffEmailVars))
	var missing []string
	for role, key := range StaffEmailVars {
		if addr := GetString(key, ""); addr != "" {
			emails[role] = addr
			continue
		}
		missing = append(missing, key)
	}
	return emails, missing
}
