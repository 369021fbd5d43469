package converter

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FindChromePath 查找Chrome或Chromium可执行文件路径
//
// override 非空时只检查该路径。
func FindChromePath(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("配置的浏览器路径不可用: %w", err)
		}
		return override, nil
	}

	var paths []string

	switch runtime.GOOS {
	case "darwin": // macOS
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			"/opt/homebrew/bin/chromium",
		}
	case "linux":
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	case "windows":
		paths = []string{
			"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
			"C:\\Program Files (x86)\\Microsoft\\Edge\\Application\\msedge.exe",
		}
	}

	// 1. 检查已知路径，homebrew 的 .sh 包装脚本保留原路径
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if realPath, err := filepath.EvalSymlinks(path); err == nil && filepath.Ext(realPath) != ".sh" {
			return realPath, nil
		}
		return path, nil
	}

	// 2. 在 PATH 中查找
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "msedge", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("未找到Chrome或Chromium浏览器，PDF输出需要安装 Google Chrome 或在配置中指定 pdf.chromePath")
}
