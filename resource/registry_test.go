package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipelat/pipelat/errors"
)

const cpuYAML = `name: epyc_7763
kind: cpu
cores: 64
core_frequency: 2.45e9
flops_per_cycle: 32
memory_channels: 8
memory_width: 64
memory_frequency: 3200e6
network_speed: 100e9
time_in_driver: 5
`

const gpuYAML = `kind: gpu
flops: 19.5e12
bandwidth: 2.0e12
network_speed: 200e9
time_in_driver: 5
`

func writeProfile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadFileAndGet(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "epyc.yaml", cpuYAML)

	reg := NewRegistry()
	c, err := reg.LoadFile(filepath.Join(dir, "epyc.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Name() != "epyc_7763" {
		t.Fatalf("name from YAML should win, got %s", c.Name())
	}

	got, err := reg.Get("epyc_7763")
	if err != nil || got != c {
		t.Fatalf("expected same descriptor, got %v (%v)", got, err)
	}
}

func TestLoadFileNameDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "a100_80gb.yaml", gpuYAML)

	reg := NewRegistry()
	c, err := reg.LoadFile(filepath.Join(dir, "a100_80gb.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Name() != "a100_80gb" {
		t.Fatalf("expected filename-derived name, got %s", c.Name())
	}
}

func TestLoadDirSkipsBadProfiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "good.yaml", cpuYAML)
	writeProfile(t, dir, "bad.yaml", "kind: cpu\ncores: -1\n")
	writeProfile(t, dir, "notes.txt", "not a profile")

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err != nil {
		t.Fatalf("load dir failed: %v", err)
	}

	names := reg.Names()
	if len(names) != 1 || names[0] != "epyc_7763" {
		t.Fatalf("expected only the good profile, got %v", names)
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	c := MustNew(Spec{
		Name: "dup", Kind: KindGPU,
		Flops: 1e12, Bandwidth: 1e12, NetworkSpeed: 1e9,
	})
	if err := reg.Register(c); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	err := reg.Register(c)
	if !errors.IsCode(err, errors.ErrCodeAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestGetMissingFails(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("nope"); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
