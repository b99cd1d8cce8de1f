package utils

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	labelSourceOnce sync.Once
	labelSource     *text.GoTextFaceSource
	labelSourceErr  error
)

// LabelFace 返回界面文字字体（Go Regular），字体源只解析一次
func LabelFace(size float64) (*text.GoTextFace, error) {
	labelSourceOnce.Do(func() {
		labelSource, labelSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if labelSourceErr != nil {
		return nil, fmt.Errorf("failed to load label font: %w", labelSourceErr)
	}
	return &text.GoTextFace{Source: labelSource, Size: size}, nil
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if measureTextWidth(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}

		// 单词太长，按字符拆开
		for measureTextWidth(word, font) > maxWidth {
			head := splitToWidth(word, font, maxWidth)
			lines = append(lines, head)
			word = word[len(head):]
		}
		currentLine = word
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// splitToWidth 返回 s 中不超过 maxWidth 的最长前缀，至少包含一个字符
func splitToWidth(s string, font *text.GoTextFace, maxWidth float64) string {
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end > 0 && measureTextWidth(s[:end+size], font) > maxWidth {
			break
		}
		end += size
	}
	return s[:end]
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
