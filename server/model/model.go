// Package model holds the domain records that the upstream backend owns.
// The gateway never persists these; they are decoded only when a handler needs
// to look inside a response (filtering, validation), and otherwise passed
// through as raw JSON.
package model

type AssociationType string

const (
	AssociationCooperativa AssociationType = "cooperativa"
	AssociationAssociacao  AssociationType = "associacao"
	AssociationUniao       AssociationType = "uniao"
)

type Association struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Type        AssociationType `json:"type" validate:"required,oneof=cooperativa associacao uniao"`
	FoundedDate string          `json:"foundedDate"`
	MemberCount int             `json:"memberCount"`
	Status      string          `json:"status" validate:"omitempty,oneof=ativa inativa"`
	AdminID     string          `json:"adminId"`
}

type MemberStatus string

const (
	MemberAtivo    MemberStatus = "ativo"
	MemberInativo  MemberStatus = "inativo"
	MemberSuspenso MemberStatus = "suspenso"
)

type Member struct {
	ID             string       `json:"id"`
	AssociationID  string       `json:"associationId" validate:"required"`
	Name           string       `json:"name" validate:"required"`
	Email          string       `json:"email" validate:"required,email"`
	Phone          string       `json:"phone"`
	JoinDate       string       `json:"joinDate"`
	Status         MemberStatus `json:"status" validate:"omitempty,oneof=ativo inativo suspenso"`
	MembershipType string       `json:"membershipType" validate:"omitempty,oneof=regular honorario associado"`
}

type Contribution struct {
	ID          string  `json:"id"`
	MemberID    string  `json:"memberId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=mensalidade doacao evento outra"`
	Status      string  `json:"status" validate:"omitempty,oneof=pendente concluida falhou reembolsada"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type Event struct {
	ID            string `json:"id"`
	AssociationID string `json:"associationId" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Date          string `json:"date" validate:"required"`
	Location      string `json:"location"`
	Capacity      int    `json:"capacity" validate:"gte=0"`
	Attendees     int    `json:"attendees"`
	Status        string `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

type Communication struct {
	ID            string   `json:"id"`
	AssociationID string   `json:"associationId" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=system manual automatic"`
	Severity      string   `json:"severity" validate:"required,oneof=info warning error success"`
	Title         string   `json:"title" validate:"required"`
	Message       string   `json:"message" validate:"required"`
	SenderID      string   `json:"senderId"`
	Recipients    []string `json:"recipients"`
	CreatedAt     string   `json:"createdAt"`
	Archived      bool     `json:"archived"`
}

// Notification is a single entry of the push feed.
type Notification struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	IsRead     bool   `json:"isRead"`
	ReceivedAt string `json:"receivedAt"`
}
