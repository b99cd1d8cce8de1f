package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font, err := LabelFace(16)
	if err != nil {
		t.Fatalf("LabelFace() error: %v", err)
	}

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{
			name:      "短文本不换行",
			input:     "Done",
			maxWidth:  200,
			expectMin: 1,
		},
		{
			name:      "说明文字换行",
			input:     "Drag your finger to change the button location and then click Done",
			maxWidth:  260,
			expectMin: 2,
		},
		{
			name:      "超长单词强制断行",
			input:     strings.Repeat("W", 60),
			maxWidth:  100,
			expectMin: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)
			if len(lines) < tt.expectMin {
				t.Errorf("WrapText() got %d lines, want at least %d: %q", len(lines), tt.expectMin, lines)
			}
			for i, line := range lines {
				if line == "" {
					t.Errorf("line %d is empty", i)
				}
				if w := measureTextWidth(line, font); w > tt.maxWidth {
					t.Errorf("line %d %q width %.1f exceeds %.1f", i, line, w, tt.maxWidth)
				}
			}
			if joined := strings.Join(lines, ""); strings.ReplaceAll(tt.input, " ", "") != strings.ReplaceAll(joined, " ", "") {
				t.Errorf("wrapped text lost characters: %q", lines)
			}
		})
	}
}

func TestWrapTextEdgeCases(t *testing.T) {
	if got := WrapText("", nil, 100); len(got) != 1 || got[0] != "" {
		t.Errorf("WrapText(empty) = %q", got)
	}
	if got := WrapText("abc", nil, 100); len(got) != 1 || got[0] != "abc" {
		t.Errorf("WrapText(nil font) = %q", got)
	}
}
