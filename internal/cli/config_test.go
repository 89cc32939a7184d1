package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"full config", []string{"--output", filepath.Join(dir, "full.yaml")}, "backend:", false},
		{"minimal config", []string{"--minimal", "--output", filepath.Join(dir, "nested", "min.yaml")}, "provider:", false},
		{"existing file without force", []string{"--output", filepath.Join(dir, "full.yaml")}, "", true},
		{"existing file with force", []string{"--force", "--output", filepath.Join(dir, "full.yaml")}, "backend:", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append([]string{"--no-emoji", "config", "init"}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.Contains(out, "[OK] Configuration file created at:") {
				t.Errorf("unexpected output %q", out)
			}

			path := tt.args[len(tt.args)-1]
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("config was not written: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("config does not contain %q", tt.want)
			}
		})
	}
}

func TestConfigValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name:    "valid",
			content: offlineConfig,
			want:    "Backend: offline",
		},
		{
			name:    "valid with ping",
			content: offlineConfig,
			args:    []string{"--ping"},
			want:    "Backend is reachable",
		},
		{
			name:    "invalid cache backend",
			content: "cache:\n  backend: memcached\n",
			want:    "Configuration validation failed",
			wantErr: true,
		},
		{
			name:    "invalid auto-apply field",
			content: "filters:\n  auto_apply: [color]\n",
			want:    "Configuration validation failed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", writeConfig(t, tt.content), "config", "validate"}, tt.args...)
			out, err := executeCommand(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v (output %q)", err, tt.wantErr, out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfg := writeConfig(t, offlineConfig)

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"yaml", "provider: offline", false},
		{"json", `"provider": "offline"`, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := executeCommand(t, "--config", cfg, "config", "show", "--format", tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}

func TestConfigPathCommand(t *testing.T) {
	out, err := executeCommand(t, "--no-emoji", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	for _, want := range []string{"search paths", ".trendlens.yaml", "TRENDLENS_"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}
