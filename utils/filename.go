// file: utils/filename.go
package utils

import (
	"fmt"
	"github.com/google/uuid"
	"strings"
)

// GenerateProofFilename 生成不可猜测的凭证文件名：proof_<uid>_<随机串><ext>。
// 带上传者 ID 前缀便于排查，随机后缀防止碰撞与枚举。
func GenerateProofFilename(userID uint32, ext string) string {
	suffix := strings.Replace(uuid.New().String(), "-", "", -1)
	return fmt.Sprintf("proof_%d_%s%s", userID, suffix, ext)
}
