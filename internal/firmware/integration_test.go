// SPDX-License-Identifier: MPL-2.0

// Integration tests exercising the full environment-build, device-compile,
// and packaging pipeline against a real container engine. They require
// Docker or Podman to be available and are skipped in short mode.

package firmware

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/testcontainers/testcontainers-go"

	"fpbuild/internal/container"
	"fpbuild/internal/image"
)

// checkTestcontainersAvailable safely checks if testcontainers can be used.
// Returns true if containers are available, false otherwise.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

func TestFirmwarePipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	engine, err := container.AutoDetectEngine()
	if err != nil {
		t.Skipf("skipping integration tests: no container engine available: %v", err)
	}
	if !engine.Available() {
		t.Skip("skipping integration tests: container engine not available")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping integration tests: testcontainers provider not available")
	}

	design := setupIntegrationDesign(t)
	spec := EnvironmentSpec{
		Design:   design,
		Name:     "it",
		Image:    "fpbuild-test",
		BuildDir: "docker_env",
		Manifest: "build_image.Dockerfile",
	}

	t.Cleanup(func() {
		if err := engine.RemoveImage(context.Background(), spec.Tag(), true); err != nil {
			t.Logf("Warning: failed to remove test image: %v", err)
		}
	})

	t.Run("BuildEnvironment", func(t *testing.T) {
		result, err := BuildEnvironment(context.Background(), engine, spec)
		if err != nil {
			t.Fatalf("BuildEnvironment() error: %v", err)
		}
		if len(result.Stdout) == 0 {
			t.Error("BuildEnvironment() returned an empty build log")
		}

		exists, err := engine.ImageExists(context.Background(), spec.Tag())
		if err != nil {
			t.Fatalf("ImageExists() error: %v", err)
		}
		if !exists {
			t.Errorf("environment image %s not present after build", spec.Tag())
		}
	})

	t.Run("BuildDevice", func(t *testing.T) {
		outputDir := filepath.Join(t.TempDir(), "out")
		req := DeviceRequest{
			Image:      spec.Image,
			Name:       spec.Name,
			Design:     design,
			Deployment: "itest",
			Device:     "car0",
			InputDir:   "car",
			OutputDir:  outputDir,
			Defines:    map[string]string{"CAR_ID": "1"},
			Target:     "car",
		}

		result, err := BuildDevice(context.Background(), engine, req)
		if err != nil {
			t.Fatalf("BuildDevice() error: %v", err)
		}
		t.Logf("build output:\n%s", result.Stdout)

		img, err := os.ReadFile(filepath.Join(outputDir, "car0.img"))
		if err != nil {
			t.Fatalf("packaged image not written: %v", err)
		}
		if len(img) != image.FlashSize+image.EEPROMSize {
			t.Errorf("image length = %#x, want %#x", len(img), image.FlashSize+image.EEPROMSize)
		}
	})

	t.Run("CompileFailure", func(t *testing.T) {
		req := DeviceRequest{
			Image:      spec.Image,
			Name:       spec.Name,
			Design:     design,
			Deployment: "itest",
			Device:     "car1",
			InputDir:   "car",
			OutputDir:  filepath.Join(t.TempDir(), "out"),
			Target:     "broken",
		}

		_, err := BuildDevice(context.Background(), engine, req)
		var compileErr *CompileError
		if err == nil {
			t.Fatal("BuildDevice() succeeded, want compile failure")
		}
		if !errors.As(err, &compileErr) {
			t.Fatalf("BuildDevice() = %v, want *CompileError", err)
		}
		if compileErr.ExitCode == 0 {
			t.Error("compile error carries exit code 0")
		}
	})
}

// setupIntegrationDesign lays out a design repository whose Makefile writes
// the artifact files the packaging step expects.
func setupIntegrationDesign(t *testing.T) string {
	t.Helper()
	design := t.TempDir()

	buildDir := filepath.Join(design, "docker_env")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatal(err)
	}
	dockerfile := `FROM alpine:latest
RUN apk add --no-cache bash make
`
	if err := os.WriteFile(filepath.Join(buildDir, "build_image.Dockerfile"), []byte(dockerfile), 0o644); err != nil {
		t.Fatal(err)
	}

	carDir := filepath.Join(design, "car")
	if err := os.MkdirAll(carDir, 0o755); err != nil {
		t.Fatal(err)
	}
	makefile := `car:
	test -d $(SECRETS_DIR)
	printf 'firmware-$(CAR_ID)' > $(BIN_PATH)
	printf 'elf' > $(ELF_PATH)
	printf 'eeprom' > $(EEPROM_PATH)

broken:
	exit 3
`
	if err := os.WriteFile(filepath.Join(carDir, "Makefile"), []byte(makefile), 0o644); err != nil {
		t.Fatal(err)
	}

	return design
}
