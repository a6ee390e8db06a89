package mathtext

import (
	"io"
	"log"
	"os"
)

// Logger receives one line per expression that falls back to its source.
var Logger = log.New(os.Stderr, "[mathtext] ", log.LstdFlags)

// SetLogger 设置自定义日志记录器；nil 关闭日志输出
func SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	Logger = logger
}
