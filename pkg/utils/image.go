package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrImageTooLarge 图片超过大小上限
var ErrImageTooLarge = errors.New("image exceeds size limit")

// DetectContentType 嗅探内容的 MIME 类型（不带参数）
// 不信任客户端声明的 Content-Type，以文件头为准
func DetectContentType(data []byte) string {
	ct, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return ct
}

// ReadImage 读取图片，最多读取 max+1 字节以判断是否超限
func ReadImage(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read image failed: %w", err)
	}
	if int64(len(data)) > max {
		return nil, ErrImageTooLarge
	}
	return data, nil
}

// ReadImageFile 读取本地图片文件
// 返回文件名（不含目录）、内容
func ReadImageFile(path string, max int64) (string, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open image failed: %w", err)
	}
	defer f.Close()

	data, err := ReadImage(f, max)
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}

// FormatBytes 格式化字节数，用于提示信息
func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
