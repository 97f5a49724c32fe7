package config

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleManager Role = "gerant"
	RoleWaiter  Role = "serveur"
	RoleBar     Role = "bar"
	RoleKitchen Role = "cuisine"
)

// RoleProfile is what a deployment for one staff role is allowed to reach.
type RoleProfile struct {
	Role       Role     `json:"role"`
	Routes     []string `json:"routes"`
	SocketPort int      `json:"socketPort"`
}

var roleProfiles = map[Role]RoleProfile{
	RoleManager: {Role: RoleManager, Routes: []string{"/", "/analytics", "/menu", "/reservations", "/staff", "/settings"}, SocketPort: 3000},
	RoleWaiter:  {Role: RoleWaiter, Routes: []string{"/tables", "/orders", "/payment"}, SocketPort: 3001},
	RoleBar:     {Role: RoleBar, Routes: []string{"/bar"}, SocketPort: 3002},
	RoleKitchen: {Role: RoleKitchen, Routes: []string{"/kitchen"}, SocketPort: 3003},
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleProfiles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RestrictedProfile is served when the role is unknown: only the root page,
// never another role's screens.
func RestrictedProfile() RoleProfile {
	return RoleProfile{Routes: []string{"/"}, SocketPort: roleProfiles[RoleManager].SocketPort}
}

func ProfileFor(r Role) RoleProfile {
	p, ok := roleProfiles[r]
	if !ok {
		return RestrictedProfile()
	}
	routes := make([]string, len(p.Routes))
	copy(routes, p.Routes)
	p.Routes = routes
	return p
}

// Allows reports whether path is one of the role's routes or below one.
// "/" only matches the root itself.
func (p RoleProfile) Allows(path string) bool {
	for _, route := range p.Routes {
		if route == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

func (p RoleProfile) Home() string {
	if len(p.Routes) == 0 {
		return "/"
	}
	return p.Routes[0]
}

func (p RoleProfile) SocketURL(host string) string {
	return fmt.Sprintf("http://%s:%d", host, p.SocketPort)
}
