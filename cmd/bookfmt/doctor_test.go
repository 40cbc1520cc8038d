package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRunDoctorCmd_JSON(t *testing.T) {
	te := newTestEnv("", nil)

	code := runDoctorCmd([]string{"--json"}, te.Environment)

	var result doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, te.stdout.String())
	}
	if !result.System.TempWritable || !result.System.AssetsLoaded {
		t.Errorf("System = %+v", result.System)
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Errorf("Env = %+v", result.Env)
	}

	wantCode := ExitSuccess
	if result.Status == statusErrors {
		wantCode = ExitGeneral
	}
	if code != wantCode {
		t.Errorf("exit code = %d, want %d for status %q", code, wantCode, result.Status)
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: &doctorResult{
				Status: statusReady,
				Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: true},
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				System: systemInfo{TempWritable: true, AssetsLoaded: true},
			},
			want: []string{"[OK] Found at /usr/bin/chromium", "Chromium 120", "Sandbox: enabled", "linux/amd64", "Ready to convert"},
		},
		{
			name: "warnings",
			result: &doctorResult{
				Status:   statusWarnings,
				Env:      envInfo{OS: "linux", Arch: "arm64", CI: true},
				System:   systemInfo{TempWritable: true, AssetsLoaded: true},
				Warnings: []string{"set ROD_NO_SANDBOX"},
			},
			want: []string{"[WARN] Not found", "CI: detected", "[WARN] set ROD_NO_SANDBOX", "Ready with warnings"},
		},
		{
			name: "errors",
			result: &doctorResult{
				Status: statusErrors,
				Errors: []string{"Temp directory not writable: /tmp"},
			},
			want: []string{"Temp directory: not writable", "[ERROR] Temp directory not writable", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			printDoctorResult(&buf, tt.result)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestCheckEnvironment_SandboxWarning(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")

	result := &doctorResult{}
	checkEnvironment(result)

	if !result.Env.CI {
		t.Error("CI not detected")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "ROD_NO_SANDBOX") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}
