package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZap_KeysAndValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Debug("resolving release", "owner", "yyyumeniku", "repo", "HyPrism")
	log.Warn("icon missing", "path", "/nowhere")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Message != "resolving release" || first.Level != zapcore.DebugLevel {
		t.Errorf("unexpected first entry: %+v", first.Entry)
	}
	fields := first.ContextMap()
	if fields["owner"] != "yyyumeniku" || fields["repo"] != "HyPrism" {
		t.Errorf("unexpected fields: %v", fields)
	}

	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("second entry level = %v, want warn", entries[1].Level)
	}
}

func TestNewZap(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"default", "", false},
		{"debug", "debug", false},
		{"error", "error", false},
		{"invalid", "loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, sync, err := NewZap(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewZap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if log == nil || sync == nil {
				t.Fatal("NewZap() returned nil logger or sync func")
			}
		})
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) should return a usable logger")
	}
	OrNop(nil).Error("discarded")

	core, _ := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core))
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
}
