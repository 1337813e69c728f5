package layout

import (
	_ "embed"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	classContainer = "panel-container"
	classOpenClick = "open-click"
	classOpenHover = "open-hover"
	classNoDisable = "no-disable"
	classDebug     = "debug"
)

//go:embed default_layout.toml
var defaultLayout []byte

// Container is one panel container in the layout document.
type Container struct {
	ID       string `koanf:"id"`
	Class    string `koanf:"class"`
	TabClass string `koanf:"tab_class"`
	ZIndex   *int   `koanf:"z_index"`
	Title    string `koanf:"title"`
}

// Classes returns the container's class list.
func (c Container) Classes() []string {
	return strings.Fields(c.Class)
}

// TabClasses returns the tab's class list.
func (c Container) TabClasses() []string {
	return strings.Fields(c.TabClass)
}

// HasClass reports whether the container carries class.
func (c Container) HasClass(class string) bool {
	return slices.Contains(c.Classes(), class)
}

// Markup is the parsed layout document.
type Markup struct {
	Panels []Container `koanf:"panel"`
}

// Container returns the container with id.
func (m Markup) Container(id string) (Container, bool) {
	for _, c := range m.Panels {
		if c.ID == id {
			return c, true
		}
	}
	return Container{}, false
}

// LoadMarkup reads the layout document at path, or the built-in document
// when path is empty or missing.
func LoadMarkup(path string) (Markup, error) {
	k := koanf.New(".")

	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = k.Load(file.Provider(path), toml.Parser())
	} else {
		err = k.Load(rawbytes.Provider(defaultLayout), toml.Parser())
	}
	if err != nil {
		return Markup{}, err
	}
	return unmarshalMarkup(k)
}

// ParseMarkup parses a layout document held in memory.
func ParseMarkup(doc []byte) (Markup, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(doc), toml.Parser()); err != nil {
		return Markup{}, err
	}
	return unmarshalMarkup(k)
}

func unmarshalMarkup(k *koanf.Koanf) (Markup, error) {
	var m Markup
	if err := k.Unmarshal("", &m); err != nil {
		return Markup{}, err
	}
	return m, nil
}
