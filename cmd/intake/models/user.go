package models

import "time"

// User is a service account. Username doubles as the document id.
type User struct {
	Username     string `bson:"_id" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	IsVerified   bool   `bson:"is_verified" json:"is_verified"`
	IsAdmin      bool   `bson:"is_admin" json:"is_admin"`
	LinkUpload   bool   `bson:"link_upload" json:"link_upload"`
}

// FileMeta describes a staged upload
type FileMeta struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Extension  string    `bson:"extension" json:"extension"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
