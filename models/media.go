// file: models/media.go
package models

import (
	"time"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media 上传的媒体文件记录。ContentHash 仅对投票凭证视频计算，
// 同一哈希出现在不同上传者名下视为盗用他人内容，上传被拒绝；
// 同一上传者重复上传相同内容目前不拦截。
type Media struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	URL             string    `gorm:"size:512;not null" json:"url"`
	FilePath        string    `gorm:"size:512" json:"-"`
	MediaType       MediaType `gorm:"size:10;not null" json:"media_type"`
	FileSize        int64     `gorm:"not null;default:0" json:"file_size"`
	MimeType        string    `gorm:"size:100" json:"mime_type"`
	UploadedBy      uint32    `gorm:"not null;index" json:"uploaded_by"`
	UploaderIP      string    `gorm:"size:45" json:"-"`
	ContentHash     *string   `gorm:"size:64;index" json:"content_hash,omitempty"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Media) TableName() string {
	return "rb_media"
}
