package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "neophyte.log")

	logger, closer, err := New("debug", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info().Str("component", "test").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"hello"`) {
		t.Fatalf("log file %q missing message", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New("loud", ""); err == nil {
		t.Fatal("New accepted unknown level")
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	tests := []struct {
		name    string
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "trace", level: "trace", want: zerolog.TraceLevel},
		{name: "empty means info", level: "", want: zerolog.InfoLevel},
		{name: "unknown", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLevel(%q) = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if err == nil && zerolog.GlobalLevel() != tt.want {
				t.Fatalf("GlobalLevel() = %v, want %v", zerolog.GlobalLevel(), tt.want)
			}
		})
	}
}
