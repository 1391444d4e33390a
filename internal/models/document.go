// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded company-introduction file stored in S3.
// There is no "current" flag: the most recently uploaded document is the
// one exposed for public download.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	MimeType   string    `json:"mime_type"`
	S3Key      string    `json:"-"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
