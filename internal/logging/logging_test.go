package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sethgrid/deskpet/internal/pet"
)

func TestFileLogger(t *testing.T) {
	tests := []struct {
		name   string
		cfg    pet.LoggingConfig
		logged bool
		want   string
	}{
		{name: "console info", cfg: pet.LoggingConfig{Level: "info", Format: "console"}, logged: true, want: "INFO"},
		{name: "json", cfg: pet.LoggingConfig{Level: "debug", Format: "json"}, logged: true, want: `"msg":"hello"`},
		{name: "level filters", cfg: pet.LoggingConfig{Level: "error"}, logged: false},
		{name: "bad level is info", cfg: pet.LoggingConfig{Level: "chatty"}, logged: true, want: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "deskpet.log")
			log, err := New(tt.cfg, path)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			log.Info("hello")
			log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			out := string(data)
			if !tt.logged {
				if out != "" {
					t.Errorf("expected nothing logged, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("log %q does not contain %q", out, tt.want)
			}
			if strings.Contains(out, "\x1b[") {
				t.Error("file log contains colour escapes")
			}
		})
	}
}
