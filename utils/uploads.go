// file: utils/uploads.go
package utils

import (
	"os"
)

// UploadRoot 上传文件根目录，凭证视频存放在其下 proofs/ 子目录
func UploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}
