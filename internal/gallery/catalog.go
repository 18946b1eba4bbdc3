package gallery

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

var (
	ErrUnknownFolder = errors.New("unknown model folder")
	ErrUnknownImage  = errors.New("unknown input image")
	ErrUnknownItem   = errors.New("no rendered item for key")
	ErrInvalidConfig = errors.New("invalid gallery catalog")
)

// ModelDescriptor is one selectable model. Folder is its unique key.
type ModelDescriptor struct {
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	Description string `json:"description"`
	PaperURL    string `json:"paper_url"`
	GithubURL   string `json:"github_url"`
}

type ModelGroup struct {
	Name   string            `json:"name"`
	Models []ModelDescriptor `json:"models"`
}

// InputImage identifies an input by dataset type and file name.
type InputImage struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

// Catalog is the static gallery configuration.
type Catalog struct {
	Groups        []ModelGroup `json:"groups"`
	Images        []InputImage `json:"images"`
	DefaultImage  InputImage   `json:"default_image"`
	DefaultModels []string     `json:"default_models"`

	byFolder map[string]ModelDescriptor
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := sonic.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

// NewCatalog builds a catalog in code.
func NewCatalog(groups []ModelGroup, images []InputImage, defaultImage InputImage, defaultModels []string) (*Catalog, error) {
	c := &Catalog{Groups: groups, Images: images, DefaultImage: defaultImage, DefaultModels: defaultModels}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() error {
	c.byFolder = make(map[string]ModelDescriptor)
	for _, g := range c.Groups {
		for _, m := range g.Models {
			if m.Folder == "" {
				return fmt.Errorf("%w: model %q has no folder", ErrInvalidConfig, m.Name)
			}
			if _, dup := c.byFolder[m.Folder]; dup {
				return fmt.Errorf("%w: duplicate folder %q", ErrInvalidConfig, m.Folder)
			}
			c.byFolder[m.Folder] = m
		}
	}

	for _, f := range c.DefaultModels {
		if _, ok := c.byFolder[f]; !ok {
			return fmt.Errorf("%w: default model %w: %q", ErrInvalidConfig, ErrUnknownFolder, f)
		}
	}
	if c.DefaultImage.Filename == "" && len(c.Images) > 0 {
		c.DefaultImage = c.Images[0]
	}
	if c.DefaultImage.Filename == "" {
		return fmt.Errorf("%w: no default image", ErrInvalidConfig)
	}
	if !c.HasImage(c.DefaultImage) {
		return fmt.Errorf("%w: default image %w: %+v", ErrInvalidConfig, ErrUnknownImage, c.DefaultImage)
	}
	return nil
}

// Model looks a model up by folder.
func (c *Catalog) Model(folder string) (ModelDescriptor, bool) {
	m, ok := c.byFolder[folder]
	return m, ok
}

// Folders lists every model folder in catalog order.
func (c *Catalog) Folders() []string {
	var out []string
	for _, g := range c.Groups {
		for _, m := range g.Models {
			out = append(out, m.Folder)
		}
	}
	return out
}

// HasImage reports whether img is selectable. A catalog without an image
// list accepts any image.
func (c *Catalog) HasImage(img InputImage) bool {
	if len(c.Images) == 0 {
		return true
	}
	for _, i := range c.Images {
		if i == img {
			return true
		}
	}
	return false
}
