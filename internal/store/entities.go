package store

import (
	"time"
)

// Module groups DTOs that share a namespace and an output project.
type Module struct {
	ID          int64
	Name        string
	Namespace   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Dto is the persisted shape of a DTO definition.
type Dto struct {
	ID         int64
	ModuleID   int64
	Name       string
	Namespace  string
	Comment    string
	Properties []Property
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Property is one persisted DTO field. Position keeps declaration order.
type Property struct {
	ID           int64
	DtoID        int64
	Position     int
	Name         string
	TypeName     string
	TypeFullName string
	Comment      string
	IsNullable   bool
	IsList       bool
	HasGetter    bool
	HasSetter    bool
}
