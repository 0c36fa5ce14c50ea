// file: services/proof_service.go
package services

import (
	"RecipeBattle/models"
	"crypto/sha256"
	"encoding/hex"
	"gorm.io/gorm"
	"os"
	"path/filepath"
	"strings"
)

// MaxProofFileSize 凭证视频大小上限 20 MiB
const MaxProofFileSize = 20 << 20

// MaxProofDurationSeconds 凭证视频目标时长上限（秒）。
// 目前仅作客户端约定，服务端不探测实际时长。
const MaxProofDurationSeconds = 60

// 扩展名与可接受 MIME 类型必须成对匹配，单边通过也拒绝
var allowedProofMimes = map[string][]string{
	".mp4":  {"video/mp4"},
	".webm": {"video/webm"},
	".mov":  {"video/quicktime"},
	".avi":  {"video/x-msvideo", "video/avi"},
}

// ValidateProofUpload 校验凭证上传：扩展名白名单 + MIME 白名单 + 大小上限。
// 必须在写盘之前调用。
func ValidateProofUpload(filename, mimeType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	accepted, ok := allowedProofMimes[ext]
	if !ok {
		return InvalidArgument("不支持的文件类型，仅接受 mp4/webm/mov/avi")
	}

	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	matched := false
	for _, m := range accepted {
		if mt == m {
			matched = true
			break
		}
	}
	if !matched {
		return InvalidArgument("文件扩展名与 MIME 类型不一致")
	}

	if size <= 0 {
		return InvalidArgument("文件为空")
	}
	if size > MaxProofFileSize {
		return InvalidArgument("文件超过 20MB 上限")
	}
	return nil
}

// ComputeDigest 对完整文件内容计算 SHA256，用于跨用户查重
func ComputeDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsDuplicateDigest 判断相同内容是否已被其他用户上传过。
// 同一用户复用自己的内容不算重复（允许一次烹饪多处使用）。
// 注意：查重与落库之间存在窄竞态窗口，两个不同用户并发上传相同内容
// 可能同时通过检查；因同用户复用合法，无法用唯一索引表达该规则，
// 当前业务下该窗口可接受。
func IsDuplicateDigest(db *gorm.DB, digest string, uploaderID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.Media{}).
		Where("content_hash = ? AND uploaded_by <> ?", digest, uploaderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AutoApprovalEligible 等级达标即自动过审
func AutoApprovalEligible(level int) bool {
	return level >= models.AutoApproveLevel
}

// StoreProofFile 把凭证写入 <root>/proofs/<name>，返回磁盘路径和公开 URL。
// 调用方负责在后续任何失败路径上调用 RemoveProofFile 清理。
func StoreProofFile(root, name string, data []byte) (string, string, error) {
	dir := filepath.Join(root, "proofs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", err
	}
	return path, "/uploads/proofs/" + name, nil
}

// RemoveProofFile 删除磁盘上的凭证文件，文件不存在不算错误
func RemoveProofFile(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
