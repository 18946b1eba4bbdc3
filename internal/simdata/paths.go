package simdata

import (
	"strconv"
	"strings"
)

// VariantImagePath returns the site path of a variant's image. Ids name the
// SCAM image; the other variants swap the first "SCAM" for their own tag.
func VariantImagePath(variant, imageID string) string {
	file := imageID + ".webp"
	if variant != VariantSCAM {
		file = strings.Replace(file, VariantSCAM, variant, 1)
	}
	return "data_images/" + variant + "/" + file
}

// VariantKey is the index variant name of base for a family and prompt.
// Only LVLM variants are prompt specific.
func VariantKey(base string, family Family, prompt int) string {
	if family == FamilyLVLM {
		return base + "_" + strconv.Itoa(prompt)
	}
	return base
}
