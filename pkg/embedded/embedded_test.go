package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func resetEmbedded() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetEmbedded()
	defer resetEmbedded()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Expected Init(nil) to leave the package uninitialized")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	resetEmbedded()

	_, err := ReadFile("data/screen.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() before Init() = %v, want ErrNotInitialized", err)
	}
	if Exists("data/screen.yaml") {
		t.Error("Exists() before Init() should be false")
	}
}

func TestReadFile(t *testing.T) {
	resetEmbedded()
	defer resetEmbedded()

	Init(fstest.MapFS{
		"data/screen.yaml": &fstest.MapFile{Data: []byte("buttonDiameter: 60\n")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/screen.yaml", false},
		{"带 ./ 前缀", "./data/screen.yaml", false},
		{"不存在的文件", "data/missing.yaml", true},
		{"未知前缀", "assets/screen.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error: %v", tt.path, err)
			}
			if string(data) != "buttonDiameter: 60\n" {
				t.Errorf("ReadFile(%q) = %q", tt.path, data)
			}
		})
	}

	if !Exists("data/screen.yaml") {
		t.Error("Exists() should find data/screen.yaml")
	}
	if Exists("data/missing.yaml") || Exists("screen.yaml") {
		t.Error("Exists() should reject missing or unprefixed paths")
	}
}
