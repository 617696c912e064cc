package models

import "time"

// Media describes an object uploaded for a blog. The bytes live in object
// storage under StorageKey.
type Media struct {
	ID         string    `json:"id"`
	BlogID     string    `json:"blogId"`
	StorageKey string    `json:"key"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
