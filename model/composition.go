package model

import "time"

type Composition struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notation  string    `json:"notation"`
	UserID    string    `json:"userId"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
