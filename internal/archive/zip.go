package archive

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
)

// Writer ZIP 归档写入器
// 对 archive/zip 的薄封装: 追加命名条目并流式写出,使用最高压缩级别
// 条目名不做去重,调用方负责保证名称已清洗且唯一
type Writer struct {
	zw *zip.Writer
}

// NewWriter 创建 ZIP 写入器,输出写入 w
func NewWriter(w io.Writer) *Writer {
	zw := zip.NewWriter(w)

	// 最高压缩级别
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	return &Writer{zw: zw}
}

// Add 追加一个命名条目
func (w *Writer) Add(name string, content []byte) error {
	entry, err := w.zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create zip entry %s: %w", name, err)
	}
	if _, err := entry.Write(content); err != nil {
		return fmt.Errorf("failed to write zip entry %s: %w", name, err)
	}
	return nil
}

// Close 完成归档并写出目录结构
func (w *Writer) Close() error {
	return w.zw.Close()
}
