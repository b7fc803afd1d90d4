package captions

import (
	"subfix/internal/fileutil"
	"subfix/internal/services"
)

const artifactPerm = 0o644

// WriteOriginal stores the caption text exactly as received.
func WriteOriginal(path, text string) error {
	return writeArtifact(path, text)
}

// WriteFixed joins the fixed lines with "\n" and stores them.
func WriteFixed(path string, lines []string) error {
	return writeArtifact(path, Join(lines))
}

func writeArtifact(path, text string) error {
	if err := fileutil.EnsureParent(path); err != nil {
		return services.Wrap(services.ErrValidation, "captions", "write", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(text), artifactPerm); err != nil {
		return services.Wrap(services.ErrValidation, "captions", "write", path, err)
	}
	return nil
}
