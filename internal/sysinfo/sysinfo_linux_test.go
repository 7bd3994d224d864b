//go:build linux

package sysinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContainerWith_DockerenvMarker(t *testing.T) {
	dir := t.TempDir()
	dockerenv := filepath.Join(dir, ".dockerenv")
	require.NoError(t, os.WriteFile(dockerenv, nil, 0o644))

	isContainer, runtime := detectContainerWith(
		dockerenv,
		filepath.Join(dir, ".containerenv"),
		filepath.Join(dir, "cgroup"),
	)

	assert.True(t, isContainer)
	assert.NotEmpty(t, runtime)
}

func TestDetectContainerWith_ContainerenvMarker(t *testing.T) {
	dir := t.TempDir()
	containerenv := filepath.Join(dir, ".containerenv")
	require.NoError(t, os.WriteFile(containerenv, nil, 0o644))

	isContainer, runtime := detectContainerWith(
		filepath.Join(dir, ".dockerenv"),
		containerenv,
		filepath.Join(dir, "cgroup"),
	)

	assert.True(t, isContainer)
	assert.NotEmpty(t, runtime)
}

func TestDetectContainerWith_CgroupKubepods(t *testing.T) {
	dir := t.TempDir()
	cgroup := filepath.Join(dir, "cgroup")
	require.NoError(t, os.WriteFile(cgroup, []byte("0::/kubepods/besteffort/pod1234\n"), 0o644))

	isContainer, runtime := detectContainerWith(
		filepath.Join(dir, ".dockerenv"),
		filepath.Join(dir, ".containerenv"),
		cgroup,
	)

	assert.True(t, isContainer)
	assert.NotEmpty(t, runtime)
}

func TestDetectContainerWith_NoIndicators(t *testing.T) {
	if real, _ := detectContainer(); real {
		t.Skip("test host is itself a container; gopsutil reports it regardless of paths")
	}
	dir := t.TempDir()
	cgroup := filepath.Join(dir, "cgroup")
	require.NoError(t, os.WriteFile(cgroup, []byte("0::/init.scope\n"), 0o644))

	isContainer, runtime := detectContainerWith(
		filepath.Join(dir, ".dockerenv"),
		filepath.Join(dir, ".containerenv"),
		cgroup,
	)

	assert.False(t, isContainer)
	assert.Empty(t, runtime)
}

func TestDetectOS_NeverFails(t *testing.T) {
	d := &LinuxDetector{}

	info, err := d.DetectOS()

	require.NoError(t, err)
	assert.Equal(t, "linux", info.Name)
	assert.NotEmpty(t, info.Arch)
}
