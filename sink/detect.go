package sink

import (
	"os"
)

// TargetDirEnvVar overrides the detected target directory when set.
const TargetDirEnvVar = "VIDGRAB_TARGET_DIR"

// Detect probes the environment once and returns a builder for the best
// available file sink: the directory named by TargetDirEnvVar if set, else
// the working directory, falling back to the system temp directory when the
// preferred directory is not writable. Callers run the probe at startup and
// inject the result.
func Detect() *FileBuilder {
	builder := NewFileBuilder()
	if dir := os.Getenv(TargetDirEnvVar); dir != "" {
		builder = builder.WithTargetDir(dir)
	}
	if !writable(builder.targetDir) {
		builder = builder.WithTargetDir(os.TempDir())
	}
	return builder
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0775); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".vidgrab-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
