package assets

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// URLPrefix is where the assets directory is mounted.
const URLPrefix = "/assets/"

const (
	LogoFile       = "Tata_Motors_logo.png"
	DefaultImage   = "All_tata_cars.jpeg"
	DefaultCaption = "All Tata Models"
)

type Model struct {
	Name  string
	Image string
}

// DefaultModels is the product catalog offered in the Model control, in
// display order.
var DefaultModels = []Model{
	{Name: "Tiago", Image: "Tiago.jpeg"},
	{Name: "Tiago EV", Image: "Tiago.jpeg"},
	{Name: "Harrier", Image: "Harrier.jpeg"},
	{Name: "Safari", Image: "Safari.jpeg"},
	{Name: "Nexon", Image: "Nexon.jpeg"},
	{Name: "Punch", Image: "Punch.jpeg"},
	{Name: "Curvv", Image: "Curvv.jpeg"},
}

// Catalog maps product models to image files under a local directory.
type Catalog struct {
	dir    string
	models []Model
	images map[string]string
}

func NewCatalog(dir string, catalog []Model) *Catalog {
	images := make(map[string]string, len(catalog))
	for _, m := range catalog {
		images[m.Name] = m.Image
	}
	return &Catalog{
		dir:    dir,
		models: catalog,
		images: images,
	}
}

func (c *Catalog) Dir() string { return c.dir }

// ModelNames returns the catalog names in display order.
func (c *Catalog) ModelNames() []string {
	names := make([]string, 0, len(c.models))
	for _, m := range c.models {
		names = append(names, m.Name)
	}
	return names
}

// ImageFor picks the image file and caption for a selected model. Models
// outside the catalog keep their caption but show the default image.
func (c *Catalog) ImageFor(model string) (file, caption string) {
	if model == "" || model == models.All {
		return DefaultImage, DefaultCaption
	}
	file, ok := c.images[model]
	if !ok {
		file = DefaultImage
	}
	return file, model
}

// URL resolves file to its public URL. It returns an ASSET_MISSING error
// when the file does not exist under the assets directory.
func (c *Catalog) URL(file string) (string, error) {
	src := path.Join(URLPrefix, file)
	if _, err := os.Stat(filepath.Join(c.dir, file)); err != nil {
		return src, errors.AssetMissing(err, fmt.Sprintf("asset %s not found", file))
	}
	return src, nil
}

// ProductImage builds the image section for a selected model.
func (c *Catalog) ProductImage(model string) (models.ProductImage, error) {
	file, caption := c.ImageFor(model)
	src, err := c.URL(file)
	return models.ProductImage{
		Src:       src,
		Caption:   caption,
		Available: err == nil,
	}, err
}

// Handler serves the assets directory under URLPrefix.
func (c *Catalog) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(c.dir)))
}
