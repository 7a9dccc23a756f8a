// Package session carrega quem está agindo na requisição atual.
package session

import "github.com/BruksfildServices01/groomer-scheduler/internal/models"

type Actor struct {
	UserID   uint
	Role     string
	ClientID *uint
}

func (a Actor) IsStaff() bool {
	return a.Role == models.RoleOwner || a.Role == models.RoleEmployee
}

func (a Actor) IsOwner() bool {
	return a.Role == models.RoleOwner
}

// OwnsClient indica se o cliente do portal é dono do registro.
func (a Actor) OwnsClient(clientID uint) bool {
	return a.ClientID != nil && *a.ClientID == clientID
}
