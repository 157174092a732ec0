package output

import (
	"errors"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUsage", ExitUsage, 1},
		{"ExitMetadata", ExitMetadata, 2},
		{"ExitTemplate", ExitTemplate, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("yaml: line 2: mapping values are not allowed in this context")

	tests := []struct {
		name         string
		err          *ExitError
		wantCode     int
		wantMessage  string
		wantErrorStr string
	}{
		{
			name:         "usage error",
			err:          NewUsageError("Usage: resolve <template_path>"),
			wantCode:     ExitUsage,
			wantMessage:  "Usage: resolve <template_path>",
			wantErrorStr: "Usage: resolve <template_path>",
		},
		{
			name:         "metadata error",
			err:          NewMetadataError("loading metadata", cause),
			wantCode:     ExitMetadata,
			wantMessage:  "loading metadata",
			wantErrorStr: "loading metadata: " + cause.Error(),
		},
		{
			name:         "template error without cause",
			err:          NewTemplateError("rendering t.txt", nil),
			wantCode:     ExitTemplate,
			wantMessage:  "rendering t.txt",
			wantErrorStr: "rendering t.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			if tt.err.Error() != tt.wantErrorStr {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantErrorStr)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("template not found")
	err := NewTemplateError("rendering missing.txt", underlying)

	if err.Code != ExitTemplate {
		t.Errorf("Code = %d, want %d", err.Code, ExitTemplate)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "ExitError usage",
			err:      NewUsageError("bad input"),
			expected: ExitUsage,
		},
		{
			name:     "ExitError metadata",
			err:      NewMetadataError("no metadata", nil),
			expected: ExitMetadata,
		},
		{
			name:     "ExitError template",
			err:      NewTemplateError("bad template", nil),
			expected: ExitTemplate,
		},
		{
			name:     "wrapped ExitError",
			err:      errors.Join(errors.New("context"), NewTemplateError("bad template", nil)),
			expected: ExitTemplate,
		},
		{
			name:     "regular error defaults to usage error",
			err:      errors.New("unknown flag: --nope"),
			expected: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
