package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDisplaySettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadDisplaySettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadDisplaySettings: %v", err)
	}
	if settings.RotationSeconds != 12 || settings.MaxSlides != 25 {
		t.Fatalf("settings = %+v, want defaults", settings)
	}
}

func TestLoadDisplaySettings_EmptyPathUsesDefaults(t *testing.T) {
	settings, err := LoadDisplaySettings("")
	if err != nil {
		t.Fatalf("LoadDisplaySettings: %v", err)
	}
	if settings != DefaultDisplaySettings() {
		t.Fatalf("settings = %+v, want defaults", settings)
	}
}

func TestLoadDisplaySettings_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	body := `rotationSeconds: 20
showNewOnly: true
manufacturers:
  - Kawasaki
  - Honda
maxSlides: 10
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := LoadDisplaySettings(path)
	if err != nil {
		t.Fatalf("LoadDisplaySettings: %v", err)
	}
	if settings.RotationSeconds != 20 || !settings.ShowNewOnly || settings.MaxSlides != 10 {
		t.Fatalf("settings = %+v", settings)
	}
	if len(settings.Manufacturers) != 2 || settings.Manufacturers[0] != "Kawasaki" {
		t.Fatalf("manufacturers = %v", settings.Manufacturers)
	}
}

func TestLoadDisplaySettings_ClampsNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	if err := os.WriteFile(path, []byte("rotationSeconds: 0\nmaxSlides: -5\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	settings, err := LoadDisplaySettings(path)
	if err != nil {
		t.Fatalf("LoadDisplaySettings: %v", err)
	}
	if settings.RotationSeconds != 12 || settings.MaxSlides != 25 {
		t.Fatalf("settings = %+v, want clamped defaults", settings)
	}
}

func TestLoadDisplaySettings_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	if err := os.WriteFile(path, []byte("rotationSeconds: [not a number"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := LoadDisplaySettings(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadDisplaySettings_BadYAMLReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "display.yaml")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	settings, _ := LoadDisplaySettings(path)
	if settings != DefaultDisplaySettings() {
		t.Fatalf("settings = %+v, want defaults on parse failure", settings)
	}
}
