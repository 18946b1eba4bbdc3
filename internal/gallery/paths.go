package gallery

import (
	"path"
	"strings"
)

const (
	hpoFolderSuffix = "*"
	buildupSuffix   = "_buildup.gif"
)

func RawPath(img InputImage) string {
	return path.Join("images", img.Type, "raw", img.Filename)
}

func resultFolder(folder string, hpo bool) string {
	if hpo {
		return folder + hpoFolderSuffix
	}
	return folder
}

// ResultPath is the full resolution result of a model for img.
func ResultPath(img InputImage, folder string, hpo bool) string {
	return path.Join("images", img.Type, resultFolder(folder, hpo), img.Filename)
}

func ThumbnailPath(img InputImage, folder string, hpo bool) string {
	return path.Join("images", img.Type, resultFolder(folder, hpo), "thumbnails", img.Filename)
}

// BuildupPath swaps the extension of a still image path for the animated
// build-up suffix.
func BuildupPath(still string) string {
	return strings.TrimSuffix(still, path.Ext(still)) + buildupSuffix
}
